package todos

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	muxlogrus "github.com/pytimer/mux-logrus"
	log "github.com/sirupsen/logrus"
	"gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/buker/go-records/internal/store"
)

// RouterConfig wires the todo router.
type RouterConfig struct {
	Store store.TodoStore
	// Instrumentation records per-route request metrics when set. It registers
	// on the default prometheus registry, so build it once per process.
	Instrumentation *middleware.Instrumentation
}

// NewRouter builds the handler serving the todo API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(JSONMiddleware)
	r.Use(muxlogrus.NewLogger().Middleware)
	if cfg.Instrumentation != nil {
		r.Use(cfg.Instrumentation.Middleware)
	}

	h := NewTodoHandler(cfg.Store)

	r.HandleFunc("/", h.ReadAll).Methods("GET")
	r.HandleFunc("/todo", h.Filter).Methods("GET")
	r.HandleFunc("/todo/add-task", h.Create).Methods("POST")
	r.HandleFunc("/todo/{todo_id}", h.Read).Methods("GET")
	r.HandleFunc("/todo/{todo_id}", h.Update).Methods("PUT")
	r.HandleFunc("/todo/{todo_id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
	})
	return recoverer(sentryHandler.Handle(r))
}

// NewMetricsRouter exposes the default prometheus registry at /metrics.
func NewMetricsRouter() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

// recoverer turns a panic that sentry re-raised into a 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}).Errorf("Recovered from panic: %v", rec)
				JSONError(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
