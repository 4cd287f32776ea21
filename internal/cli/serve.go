package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var maxBody int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Start the HTTP API. Results are cached in the file cache, or in Redis
when --redis or [cache] redis_addr is set, which lets several servers share
one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, api.WithLogger(c.Logger), api.WithMaxBodyBytes(maxBody))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", 8<<20, "largest accepted request body in bytes")
	return cmd
}
