// Package httpapi exposes the task and todo collections over JSON/HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MihkelHunter/taskflow/internal/analytics"
	"github.com/MihkelHunter/taskflow/internal/search"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

// Server routes API requests to a todo.Service.
type Server struct {
	svc    *todo.Service
	logger *log.Logger
	mux    *http.ServeMux
}

// New builds the handler tree, including /metrics backed by its own registry.
func New(svc *todo.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(svc))

	s.mux.HandleFunc("GET /api/tasks", s.listTasks)
	s.mux.HandleFunc("POST /api/tasks", s.createTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	s.mux.HandleFunc("POST /api/tasks/{id}/focus", s.completeFocus)

	s.mux.HandleFunc("GET /api/todos", s.listTodos)
	s.mux.HandleFunc("POST /api/todos", s.createTodo)
	s.mux.HandleFunc("GET /api/todos/{id}", s.getTodo)
	s.mux.HandleFunc("PUT /api/todos/{id}", s.updateTodo)
	s.mux.HandleFunc("DELETE /api/todos/{id}", s.deleteTodo)
	s.mux.HandleFunc("POST /api/todos/{id}/toggle", s.toggleTodo)

	s.mux.HandleFunc("GET /api/stats", s.stats)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// ServeHTTP reloads the collections before routing, since the CLI and the
// desktop app write to the same database while the server runs.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.svc.Reload()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
}

// ── Tasks ────────────────────────────────────────────────────────────────────

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks := search.Filter(s.svc.Tasks(), r.URL.Query().Get("q"))
	if status := r.URL.Query().Get("status"); status != "" {
		st, err := todo.ParseStatus(status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		tasks = todo.TasksWithStatus(tasks, st)
	}
	writeJSON(w, http.StatusOK, nonNil(tasks))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var d todo.TaskDraft
	if !decode(w, r, &d) {
		return
	}
	t, err := s.svc.AddTask(d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	t, ok := s.svc.Task(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var t todo.Task
	if !decode(w, r, &t) {
		return
	}
	t.ID = r.PathValue("id")
	updated, ok, err := s.svc.ReplaceTask(t)
	switch {
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	case !ok:
		writeError(w, http.StatusNotFound, errNotFound)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.svc.DeleteTask(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) completeFocus(w http.ResponseWriter, r *http.Request) {
	t, ok := s.svc.CompleteFocusSession(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ── Todos ────────────────────────────────────────────────────────────────────

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	todos := search.Filter(s.svc.Todos(), r.URL.Query().Get("q"))
	if rec, ok := r.URL.Query()["recurrence"]; ok {
		rc, err := todo.ParseRecurrence(rec[0])
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		todos = todo.TodosWithRecurrence(todos, rc)
	}
	switch r.URL.Query().Get("completed") {
	case "true":
		todos = todo.TodosWithCompletion(todos, true)
	case "false":
		todos = todo.TodosWithCompletion(todos, false)
	}
	writeJSON(w, http.StatusOK, nonNil(todos))
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var d todo.TodoDraft
	if !decode(w, r, &d) {
		return
	}
	t, err := s.svc.AddTodo(d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	t, ok := s.svc.Todo(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	var t todo.Todo
	if !decode(w, r, &t) {
		return
	}
	t.ID = r.PathValue("id")
	updated, ok, err := s.svc.ReplaceTodo(t)
	switch {
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	case !ok:
		writeError(w, http.StatusNotFound, errNotFound)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	s.svc.DeleteTodo(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTodo(w http.ResponseWriter, r *http.Request) {
	t, ok := s.svc.ToggleTodo(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ── Stats ────────────────────────────────────────────────────────────────────

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Summarize(s.svc.Tasks(), s.svc.Todos()))
}

// ── Helpers ──────────────────────────────────────────────────────────────────

var errNotFound = errors.New("not found")

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
