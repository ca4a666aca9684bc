package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/bedirhan/todo-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

// TodoHandler is the HTTP layer over the task store.
type TodoHandler struct {
	tasks repository.TaskStore
}

func NewTodoHandler(tasks repository.TaskStore) *TodoHandler {
	return &TodoHandler{tasks: tasks}
}

// Routes mounts the todo endpoints. The {id:[0-9]+} constraint keeps
// non-numeric ids out of the handlers entirely.
func (h *TodoHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/reorder", h.Reorder)
	r.Delete("/{id:[0-9]+}", h.Delete)
	r.Put("/{id:[0-9]+}", h.Toggle)
	r.Put("/{id:[0-9]+}/title", h.Rename)
}

func taskID(r *http.Request) int64 {
	// the route pattern guarantees digits
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

// List handles GET /api/todos. Tasks come back highest effective order
// first, ties broken by id descending.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListOrdered(r.Context())
	if err != nil {
		h.internalError(w, r, "task_list_failed", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/todos. The new task lands on top of the list:
// its order index is one above the current maximum effective order.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if fieldErrors := checkRequest(req); fieldErrors != nil {
		writeValidationError(w, fieldErrors)
		return
	}

	max, err := h.tasks.MaxOrder(r.Context())
	if err != nil {
		h.internalError(w, r, "task_max_order_failed", err)
		return
	}

	completed := false
	order := max + 1
	task := models.Task{
		Title:      req.Title,
		Completed:  &completed,
		OrderIndex: &order,
		DueDate:    req.DueDate,
	}
	if err := h.tasks.Save(r.Context(), &task); err != nil {
		h.internalError(w, r, "task_create_failed", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, task)
}

// Delete handles DELETE /api/todos/{id}. Removing an id that does not exist
// is a no-op, not an error.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), taskID(r)); err != nil {
		h.internalError(w, r, "task_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles PUT /api/todos/{id} and flips the completed flag. A NULL
// completed value counts as false, so the first toggle on a legacy row
// yields true.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	task, err := h.tasks.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Todo not found: %d", id))
			return
		}
		h.internalError(w, r, "task_lookup_failed", err)
		return
	}

	flipped := !task.EffectiveCompleted()
	task.Completed = &flipped
	if err := h.tasks.Save(r.Context(), &task); err != nil {
		h.internalError(w, r, "task_toggle_failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// Rename handles PUT /api/todos/{id}/title. The due date is always replaced
// with the request value; sending none clears a stored date.
func (h *TodoHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if fieldErrors := checkRequest(req); fieldErrors != nil {
		writeValidationError(w, fieldErrors)
		return
	}

	id := taskID(r)
	task, err := h.tasks.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Todo not found: %d", id))
			return
		}
		h.internalError(w, r, "task_lookup_failed", err)
		return
	}

	task.Title = req.Title
	task.DueDate = req.DueDate
	if err := h.tasks.Save(r.Context(), &task); err != nil {
		h.internalError(w, r, "task_rename_failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// Reorder handles PUT /api/todos/reorder. The body is the full list of ids
// in the desired top-to-bottom order; the first id gets the highest order
// value. Ids with no matching task are skipped and consume no order value,
// which keeps the endpoint tolerant of stale client state.
func (h *TodoHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	tasks, err := h.tasks.FindByIDs(r.Context(), ids)
	if err != nil {
		h.internalError(w, r, "task_batch_lookup_failed", err)
		return
	}

	byID := make(map[int64]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	order := int64(len(ids))
	matched := make([]models.Task, 0, len(tasks))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		o := order
		t.OrderIndex = &o
		matched = append(matched, t)
		order--
	}

	if err := h.tasks.SaveAll(r.Context(), matched); err != nil {
		h.internalError(w, r, "task_reorder_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) internalError(w http.ResponseWriter, r *http.Request, event string, err error) {
	slog.Error(event,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	writeError(w, http.StatusInternalServerError, "Unexpected server error")
}
