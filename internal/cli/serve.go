package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/cache"
	"github.com/matzehuels/archmodel/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		forward bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a workspace receiver",
		Long: `Run an HTTP server that accepts workspaces published by the http sink.

Requests must be signed with workspace.api_key and workspace.api_secret.
Received workspaces are kept in memory and can be read back with
"archmodel pull". With --forward (or server.forward) each accepted workspace
is also published to the sink selected by sink.type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("forward") {
				forward = cfg.Server.Forward
			}

			store := cache.NewMemoryCache(0)
			defer store.Close()

			opts := server.Options{
				APIKey:         cfg.Workspace.APIKey,
				APISecret:      cfg.Workspace.APISecret,
				Store:          store,
				MaxBodyBytes:   cfg.Server.MaxBodyBytes,
				ForwardTimeout: cfg.Sink.Timeout,
				Logger:         c.Logger,
			}
			if forward {
				s, _, closeSink, err := c.newSink(ctx, "")
				if err != nil {
					return err
				}
				defer closeSink()
				opts.Forward = s
				opts.ForwardCredentials = c.credentials()
				c.Logger.Info("forwarding workspaces", "sink", s.Name())
			}

			srv, err := server.New(opts)
			if err != nil {
				return err
			}
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().BoolVar(&forward, "forward", false, "publish received workspaces to sink.type")
	return cmd
}
