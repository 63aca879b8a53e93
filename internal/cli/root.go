package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/config"
	"github.com/matzehuels/archmodel/pkg/observability"
)

// setup runs before every subcommand: it loads the configuration, applies
// the log level, installs tracing and registers logging hooks.
//
// Log level precedence: --verbose, then logging.level from the config.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	tracing, err := observability.SetupTracing(observability.TracingConfig{
		Exporter: cfg.Tracing.Exporter,
		File:     cfg.Tracing.File,
	})
	if err != nil {
		return err
	}
	c.tracing = tracing

	hooks := &logHooks{logger: c.Logger}
	observability.SetPublishHooks(hooks)
	observability.SetHTTPHooks(hooks)
	observability.SetCacheHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// teardown flushes pending spans.
func (c *CLI) teardown(ctx context.Context) error {
	if c.tracing == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return c.tracing.Shutdown(ctx)
}
