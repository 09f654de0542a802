package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecost/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON API under /api/v1 until interrupted.

Results are cached in the configured cache backend and the theme preference
is read from and written to the configured preference backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := c.Config.OpenPrefs(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(runner, store, c.Logger)
			srv.Defaults = c.Config.Defaults.Settings()
			srv.Currency = c.currency()

			printInfo("Serving on %s", StyleLink.Render(addr))
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
