package todos

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/buker/go-records/internal/validate"
)

type errorBody struct {
	Msg    string            `json:"msg"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSONError writes msg as a JSON error body with the given status.
func JSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, errorBody{Msg: msg})
}

func validationError(w http.ResponseWriter, err *validate.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	writeJSON(w, errorBody{Msg: "validation failed", Fields: err.Fields})
}

// writeJSON encodes v to w. The status line is already sent, so a failed
// write usually means the client went away.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debugf("write response: %v", err)
	}
}

// JSONMiddleware sets the JSON content type on every response.
func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
