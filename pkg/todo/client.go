// Package todo is a client for a REST todo resource such as
// https://jsonplaceholder.typicode.com/todos.
//
// FindAll and FindByID decode the response into domain.Todo values. Create,
// Update and Delete hand back the raw response because the service does not
// promise to echo a todo for those verbs; callers inspect the status code.
package todo

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/todo-client/internal/domain"
	"github.com/samvad-hq/todo-client/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public reference todo resource.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com/todos"
	// DefaultTimeout applies when the client builds its own transport.
	DefaultTimeout = 15 * time.Second
)

// Todo re-exports the domain type for callers outside this module.
type Todo = domain.Todo

// Client sends todo requests against a single base resource URL.
// It holds no per-request state; the transport and codec are shared by all calls.
type Client struct {
	baseURL   string
	transport httpclient.Client
	codec     Codec
	headers   map[string]string
}

// Option customizes a Client.
type Option func(*Client)

// WithCodec replaces the JSON codec.
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
				continue
			}
			c.headers[k] = v
		}
	}
}

// NewClient builds a client for baseURL. A nil transport gets a resty transport
// with DefaultTimeout.
func NewClient(baseURL string, transport httpclient.Client, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(DefaultTimeout)
	}

	c := &Client{
		baseURL:   baseURL,
		transport: transport,
		codec:     DefaultCodec(),
		headers:   map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resource root requests are built against.
func (c *Client) BaseURL() string { return c.baseURL }

// FindAll lists every todo.
func (c *Client) FindAll(ctx context.Context) ([]domain.Todo, error) {
	resp, err := c.send(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var todos []domain.Todo
	if err := c.codec.Unmarshal(resp.Body(), &todos); err != nil {
		return nil, &DecodeError{Op: "find all", Err: err}
	}
	if todos == nil {
		return nil, &DecodeError{Op: "find all", Err: errors.New("expected a JSON array, got null")}
	}
	return todos, nil
}

// FindByID fetches a single todo. A 404 yields ErrNotFound.
func (c *Client) FindByID(ctx context.Context, id int) (domain.Todo, error) {
	resp, err := c.send(ctx, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return domain.Todo{}, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.Todo{}, ErrNotFound
	}

	var todo domain.Todo
	if err := c.codec.Unmarshal(resp.Body(), &todo); err != nil {
		return domain.Todo{}, &DecodeError{Op: "find by id", Err: err}
	}
	return todo, nil
}

// Create posts a new todo and returns the raw response (201 on success).
func (c *Client) Create(ctx context.Context, todo domain.Todo) (httpclient.Response, error) {
	body, err := c.codec.Marshal(todo)
	if err != nil {
		return nil, &EncodeError{Op: "create", Err: err}
	}
	return c.send(ctx, http.MethodPost, c.baseURL, body)
}

// Update replaces the todo at todo.ID and returns the raw response (200 on success).
func (c *Client) Update(ctx context.Context, todo domain.Todo) (httpclient.Response, error) {
	body, err := c.codec.Marshal(todo)
	if err != nil {
		return nil, &EncodeError{Op: "update", Err: err}
	}
	return c.send(ctx, http.MethodPut, c.itemURL(todo.ID), body)
}

// Delete removes the todo at todo.ID and returns the raw response (200 on success).
func (c *Client) Delete(ctx context.Context, todo domain.Todo) (httpclient.Response, error) {
	return c.send(ctx, http.MethodDelete, c.itemURL(todo.ID), nil)
}

func (c *Client) itemURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

func (c *Client) send(ctx context.Context, method, url string, body []byte) (httpclient.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	if body != nil {
		headers["Content-Type"] = "application/json; charset=UTF-8"
	}

	var (
		resp httpclient.Response
		err  error
	)
	if method == http.MethodGet {
		resp, err = c.transport.Get(ctx, url, headers)
	} else {
		resp, err = c.transport.Do(ctx, method, url, headers, body)
	}
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	return resp, nil
}
