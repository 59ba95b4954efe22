package domain

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-json"
)

// Todo is a single task managed by the remote todo service.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// wireTodo mirrors Todo with pointer fields so absent keys can be told apart
// from zero values.
type wireTodo struct {
	UserID    *int    `json:"userId"`
	ID        *int    `json:"id"`
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (w *wireTodo) validate() error {
	return validation.ValidateStruct(w,
		validation.Field(&w.UserID, validation.NotNil),
		validation.Field(&w.ID, validation.NotNil),
		validation.Field(&w.Title, validation.NotNil),
		validation.Field(&w.Completed, validation.NotNil),
	)
}

// UnmarshalJSON decodes a todo object, rejecting objects that omit any field.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var w wireTodo
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := w.validate(); err != nil {
		return fmt.Errorf("invalid todo: %w", err)
	}

	*t = Todo{
		UserID:    *w.UserID,
		ID:        *w.ID,
		Title:     *w.Title,
		Completed: *w.Completed,
	}
	return nil
}

// Fingerprint returns a key that changes whenever any field of the todo changes.
func (t Todo) Fingerprint() string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d|%d|%s|%t", t.UserID, t.ID, t.Title, t.Completed)))
	return fmt.Sprintf("%d:%s", t.ID, hex.EncodeToString(sum[:]))
}
