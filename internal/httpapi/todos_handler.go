package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"carewatch/internal/domain"
	"carewatch/internal/service"

	"go.uber.org/zap"
)

// TodosHandler 护理任务 Handler
type TodosHandler struct {
	svc    *service.MonitorService
	logger *zap.Logger
}

// NewTodosHandler 创建任务 Handler
func NewTodosHandler(svc *service.MonitorService, logger *zap.Logger) *TodosHandler {
	return &TodosHandler{svc: svc, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *TodosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/care/api/v1/todos" && r.Method == http.MethodGet:
		h.ListTodos(w, r)
	case path == "/care/api/v1/todos" && r.Method == http.MethodPost:
		h.AddTodo(w, r)
	// Toggle（路径更具体，必须在 Update 之前匹配）
	case strings.HasSuffix(path, "/toggle") && r.Method == http.MethodPost:
		todoID := strings.TrimSuffix(path, "/toggle")
		todoID = strings.TrimPrefix(todoID, "/care/api/v1/todos/")
		if todoID != "" && !strings.Contains(todoID, "/") {
			h.ToggleTodo(w, r, todoID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(path, "/care/api/v1/todos/") && r.Method == http.MethodPut:
		todoID := strings.TrimPrefix(path, "/care/api/v1/todos/")
		if todoID != "" && !strings.Contains(todoID, "/") {
			h.UpdateTodo(w, r, todoID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasPrefix(path, "/care/api/v1/todos/") && r.Method == http.MethodDelete:
		todoID := strings.TrimPrefix(path, "/care/api/v1/todos/")
		if todoID != "" && !strings.Contains(todoID, "/") {
			h.RemoveTodo(w, r, todoID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ListTodos GET /care/api/v1/todos
func (h *TodosHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos := h.svc.Todos()
	if todos == nil {
		todos = []domain.TodoItem{}
	}
	writeOK(w, todos)
}

// AddTodo POST /care/api/v1/todos
func (h *TodosHandler) AddTodo(w http.ResponseWriter, r *http.Request) {
	var item domain.TodoItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}

	created, err := h.svc.AddTodo(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, created)
}

// ToggleTodo POST /care/api/v1/todos/{id}/toggle
func (h *TodosHandler) ToggleTodo(w http.ResponseWriter, r *http.Request, todoID string) {
	toggled, err := h.svc.ToggleTodo(r.Context(), todoID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, toggled)
}

// UpdateTodo PUT /care/api/v1/todos/{id}
func (h *TodosHandler) UpdateTodo(w http.ResponseWriter, r *http.Request, todoID string) {
	var update domain.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}

	updated, err := h.svc.UpdateTodo(r.Context(), todoID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, updated)
}

// RemoveTodo DELETE /care/api/v1/todos/{id}
func (h *TodosHandler) RemoveTodo(w http.ResponseWriter, r *http.Request, todoID string) {
	if err := h.svc.RemoveTodo(r.Context(), todoID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]string{"todo_id": todoID})
}
