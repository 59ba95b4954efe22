package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/todo-client/pkg/todo"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			todos, err := opts.client().FindAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range todos {
				printTodo(out, t)
			}
			fmt.Fprintf(out, "%d todos\n", len(todos))
			return nil
		},
	}
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := opts.client().FindByID(cmd.Context(), id)
			if errors.Is(err, todo.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), err.Error())
				return err
			}
			if err != nil {
				return err
			}
			printTodo(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

// todoFlags holds the writable todo fields shared by create and update.
type todoFlags struct {
	id        string
	userID    string
	title     string
	completed bool
}

func (f *todoFlags) bind(cmd *cobra.Command, withID bool) {
	if withID {
		cmd.Flags().StringVar(&f.id, "id", "", "todo id")
	}
	cmd.Flags().StringVar(&f.userID, "user-id", "1", "owning user id")
	cmd.Flags().StringVar(&f.title, "title", "", "todo title")
	cmd.Flags().BoolVar(&f.completed, "completed", false, "mark the todo completed")
}

func (f *todoFlags) build(id string) (todo.Todo, error) {
	parsedID, err := parseID(id)
	if err != nil {
		return todo.Todo{}, err
	}
	userID, err := parseID(f.userID)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("user-id: %w", err)
	}
	return todo.Todo{UserID: userID, ID: parsedID, Title: f.title, Completed: f.completed}, nil
}

func newCreateCommand(opts *rootOptions) *cobra.Command {
	flags := &todoFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := flags.build(flags.id)
			if err != nil {
				return err
			}
			resp, err := opts.client().Create(cmd.Context(), t)
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	flags.bind(cmd, true)
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	flags := &todoFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.build(args[0])
			if err != nil {
				return err
			}
			resp, err := opts.client().Update(cmd.Context(), t)
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	flags.bind(cmd, false)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := opts.client().Delete(cmd.Context(), todo.Todo{ID: id})
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}
