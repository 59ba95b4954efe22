// Package mirror runs a single list, dedupe, publish pass over the todo API.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/todo-client/internal/domain"
	"github.com/samvad-hq/todo-client/internal/logger"
	"github.com/samvad-hq/todo-client/pkg/publishers"
)

// Result summarizes one mirror pass.
type Result struct {
	Fetched   int `json:"fetched"`
	Fresh     int `json:"fresh"`
	Published int `json:"published"`
}

// Service mirrors the remote todo collection into the configured sinks.
type Service struct {
	source    string
	lister    TodoLister
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewService wires a mirror pass. A nil deduper republishes every todo on each pass.
func NewService(source string, lister TodoLister, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		source:    source,
		lister:    lister,
		publisher: pub,
		log:       log,
		deduper:   deduper,
	}
}

// Run lists every todo and publishes the ones not delivered before.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var res Result
	if s == nil || s.lister == nil || s.publisher == nil {
		return res, fmt.Errorf("mirror service is not initialized")
	}

	start := time.Now()
	todos, err := s.lister.FindAll(ctx)
	if err != nil {
		return res, fmt.Errorf("list todos: %w", err)
	}
	res.Fetched = len(todos)

	fresh := s.filterFresh(todos)
	res.Fresh = len(fresh)

	var errs []error
	for _, todo := range fresh {
		if ctx.Err() != nil {
			break
		}

		evt := publishers.NewEvent(s.source, todo)
		delivered, err := s.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish todo %d: %w", todo.ID, err))
		}
		if delivered == 0 {
			continue
		}
		res.Published++
		s.markDelivered(evt)
	}

	s.log.InfoObj("mirror pass completed", "mirror_result", map[string]any{
		"source":     s.source,
		"fetched":    res.Fetched,
		"fresh":      res.Fresh,
		"published":  res.Published,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	return res, errors.Join(errs...)
}

// filterFresh drops todos whose current fingerprint was already delivered.
// Lookup failures keep the todo.
func (s *Service) filterFresh(todos []domain.Todo) []domain.Todo {
	if s.deduper == nil {
		return todos
	}

	out := make([]domain.Todo, 0, len(todos))
	for _, todo := range todos {
		key := todo.Fingerprint()
		seen, err := s.deduper.SeenTodo(key)
		if err != nil {
			s.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"todo_id": todo.ID,
				"error":   err.Error(),
			})
			out = append(out, todo)
			continue
		}
		if !seen {
			out = append(out, todo)
		}
	}
	return out
}

func (s *Service) markDelivered(evt publishers.Event) {
	if s.deduper == nil {
		return
	}
	if err := s.deduper.MarkTodo(evt.Fingerprint); err != nil {
		s.log.WarnObj("dedupe mark failed", "dedupe_error", map[string]any{
			"todo_id": evt.Todo.ID,
			"error":   err.Error(),
		})
	}
}
