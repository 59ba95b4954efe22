// Package cli exposes the todo client operations and the mirror runtime as cobra commands.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/samvad-hq/todo-client/internal/config"
	"github.com/samvad-hq/todo-client/internal/logger"
	"github.com/samvad-hq/todo-client/pkg/httpclient"
	"github.com/samvad-hq/todo-client/pkg/todo"
)

// Deps carries the process-wide collaborators the commands need.
type Deps struct {
	Config *config.Config
	Log    logger.Logger
}

type rootOptions struct {
	deps    Deps
	baseURL string
	timeout time.Duration
}

// NewRootCommand builds the `todo` command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Log == nil {
		deps.Log = logger.NopLogger{}
	}
	if deps.Config == nil {
		deps.Config = &config.Config{}
	}

	opts := &rootOptions{deps: deps}
	defaultTimeout := deps.Config.HTTPTimeout
	if defaultTimeout <= 0 {
		defaultTimeout = todo.DefaultTimeout
	}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Work with a REST todo resource",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", deps.Config.BaseURL, "todo resource root, e.g. https://host/todos")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "HTTP request timeout")

	root.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
		newMirrorCommand(opts),
	)
	return root
}

func (o *rootOptions) client() *todo.Client {
	var headers map[string]string
	if ua := o.deps.Config.UserAgent; ua != "" {
		headers = map[string]string{"User-Agent": ua}
	}
	return todo.NewClient(o.baseURL, httpclient.NewRestyClient(o.timeout), todo.WithHeaders(headers))
}

// parseID converts a plain decimal argument into a todo id. Octal, hex and
// fractional spellings are rejected.
func parseID(raw string) (int, error) {
	if !isDecimal(raw) || (len(raw) > 1 && raw[0] == '0') {
		return 0, fmt.Errorf("invalid todo id %q: must be a positive decimal integer", raw)
	}
	id, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q: %w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q: must be positive", raw)
	}
	return id, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func printTodo(w io.Writer, t todo.Todo) {
	mark := color.RedString("[ ]")
	if t.Completed {
		mark = color.GreenString("[x]")
	}
	fmt.Fprintf(w, "%s %d (user %d) %s\n", mark, t.ID, t.UserID, t.Title)
}

func printResponse(w io.Writer, resp httpclient.Response) {
	fmt.Fprintf(w, "status %d\n", resp.StatusCode())
	if body := resp.Body(); len(body) > 0 {
		fmt.Fprintf(w, "%s\n", body)
	}
}
