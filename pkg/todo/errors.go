package todo

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by FindByID when the service answers 404.
var ErrNotFound = errors.New("todo not found")

// TransportError reports a failure to send a request or read its response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected JSON shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a todo that could not be serialized for sending.
type EncodeError struct {
	Op  string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s request: %v", e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
