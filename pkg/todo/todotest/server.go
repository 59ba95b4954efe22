// Package todotest provides an in-process fake of the public todo API.
package todotest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/samvad-hq/todo-client/internal/domain"
)

// FixtureSize matches the number of todos served by the reference dataset.
const FixtureSize = 200

// Request is a request observed by the fake server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// Server is an httptest server that behaves like the reference todo API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	todos    map[int]domain.Todo
	requests []Request
}

// NewServer starts a fake todo API serving the fixture dataset under /todos.
func NewServer() *Server {
	s := &Server{todos: Fixture()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// BaseURL returns the todo resource root of the server.
func (s *Server) BaseURL() string { return s.URL + "/todos" }

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Set replaces the todo stored under todo.ID.
func (s *Server) Set(todo domain.Todo) {
	s.mu.Lock()
	s.todos[todo.ID] = todo
	s.mu.Unlock()
}

// Fixture returns the reference dataset keyed by id.
func Fixture() map[int]domain.Todo {
	todos := make(map[int]domain.Todo, FixtureSize)
	for id := 1; id <= FixtureSize; id++ {
		todos[id] = domain.Todo{
			UserID:    (id-1)/20 + 1,
			ID:        id,
			Title:     fmt.Sprintf("fixture todo %d", id),
			Completed: id%3 == 0,
		}
	}
	todos[1] = domain.Todo{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false}
	return todos
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(raw),
	})
	s.mu.Unlock()

	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/todos" {
		s.handleCollection(w, r, raw)
		return
	}

	idPart, ok := strings.CutPrefix(path, "/todos/")
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	s.handleItem(w, r, id, raw)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, body []byte) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		list := make([]domain.Todo, 0, len(s.todos))
		for id := 1; id <= len(s.todos); id++ {
			if todo, ok := s.todos[id]; ok {
				list = append(list, todo)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		payload["id"] = FixtureSize + 1
		writeJSON(w, http.StatusCreated, payload)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{})
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request, id int, body []byte) {
	s.mu.Lock()
	todo, exists := s.todos[id]
	s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if !exists {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, todo)
	case http.MethodPut:
		if !exists {
			writeJSON(w, http.StatusInternalServerError, map[string]any{})
			return
		}
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		payload["id"] = id
		writeJSON(w, http.StatusOK, payload)
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
