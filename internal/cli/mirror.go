package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/todo-client/internal/app"
)

func newMirrorCommand(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Publish new or changed todos to the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *opts.deps.Config
			cfg.BaseURL = opts.baseURL
			cfg.HTTPTimeout = opts.timeout

			m, err := app.NewMirror(cmd.Context(), &cfg, opts.deps.Log)
			if err != nil {
				return fmt.Errorf("init mirror: %w", err)
			}
			if !once {
				return m.Run(cmd.Context())
			}
			defer m.Close()

			res, err := m.RunOnce(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, fresh %d, published %d\n", res.Fetched, res.Fresh, res.Published)
			return err
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run a single pass and exit")
	return cmd
}
