// Package todos serves the persisted todo list over gorilla/mux.
package todos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
	"github.com/buker/go-records/internal/telemetry"
	"github.com/buker/go-records/internal/validate"
)

const requestTimeout = 5 * time.Second

type TodoHandler struct {
	Store     store.TodoStore
	Validator *validate.Validator
}

func NewTodoHandler(s store.TodoStore) *TodoHandler {
	return &TodoHandler{
		Store:     s,
		Validator: validate.New(),
	}
}

// GET /
func (h *TodoHandler) ReadAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	todos, err := h.Store.List(ctx)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, todos)
}

// GET /todo?priority=&complete=
func (h *TodoHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var filter models.TodoFilter

	if v := r.URL.Query().Get("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			JSONError(w, "priority must be an integer", http.StatusBadRequest)
			return
		}
		filter.Priority = &p
	}
	if v := r.URL.Query().Get("complete"); v != "" {
		c, err := strconv.ParseBool(v)
		if err != nil {
			JSONError(w, "complete must be a boolean", http.StatusBadRequest)
			return
		}
		filter.Complete = &c
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	todos, err := h.Store.Filter(ctx, filter)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, todos)
}

// GET /todo/{todo_id}
func (h *TodoHandler) Read(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	todo, err := h.Store.Get(ctx, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, todo)
}

// POST /todo/add-task
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	todo, err := h.Store.Create(ctx, req.Todo(0))
	if err != nil {
		storeError(w, r, err)
		return
	}

	log.WithField("id", todo.ID).Info("Todo added")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, todo)
}

// PUT /todo/{todo_id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if _, err := h.Store.Replace(ctx, id, req.Todo(id)); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /todo/{todo_id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		storeError(w, r, err)
		return
	}

	log.WithField("id", id).Info("Todo deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) decode(w http.ResponseWriter, r *http.Request) (models.TodoRequest, bool) {
	var req models.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return req, false
	}

	if err := h.Validator.Struct(req); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			validationError(w, verr)
			return req, false
		}
		JSONError(w, err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["todo_id"], 10, 64)
	if err != nil {
		JSONError(w, "todo_id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	if id <= 0 {
		validationError(w, &validate.Error{Fields: map[string]string{"todo_id": "gt=0"}})
		return 0, false
	}
	return id, true
}

func storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		JSONError(w, "Item not found.", http.StatusNotFound)
		return
	}
	log.Errorf("Todo store failure: %v", err)
	telemetry.CaptureError(r, err)
	JSONError(w, "internal error", http.StatusInternalServerError)
}
