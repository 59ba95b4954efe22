package publishers

import (
	"strconv"
	"time"

	"github.com/samvad-hq/todo-client/internal/domain"
)

// ActionUpserted marks a todo that is new or changed since the last delivery.
const ActionUpserted = "todo.upserted"

// Event represents the payload published downstream.
type Event struct {
	Source      string      `json:"source"`
	Action      string      `json:"action"`
	Todo        domain.Todo `json:"todo"`
	Fingerprint string      `json:"fingerprint"`
	MirroredAt  time.Time   `json:"mirrored_at"`
}

// NewEvent constructs an upsert Event for a todo read from source.
func NewEvent(source string, todo domain.Todo) Event {
	return Event{
		Source:      source,
		Action:      ActionUpserted,
		Todo:        todo,
		Fingerprint: todo.Fingerprint(),
		MirroredAt:  time.Now().UTC(),
	}
}

// Attributes returns the message attributes sinks attach to the payload.
func (e Event) Attributes() map[string]string {
	return map[string]string{
		"action":  e.Action,
		"todo_id": strconv.Itoa(e.Todo.ID),
		"user_id": strconv.Itoa(e.Todo.UserID),
	}
}
