package mirror

import (
	"context"

	"github.com/samvad-hq/todo-client/internal/domain"
	"github.com/samvad-hq/todo-client/pkg/publishers"
)

// TodoLister returns the full remote todo collection.
type TodoLister interface {
	FindAll(ctx context.Context) ([]domain.Todo, error)
}

// EventPublisher publishes todo events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which todo fingerprints were already delivered.
type Deduper interface {
	SeenTodo(key string) (bool, error)
	MarkTodo(key string) error
}
