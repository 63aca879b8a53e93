package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/buildinfo"
	"github.com/matzehuels/archmodel/pkg/cache"
	"github.com/matzehuels/archmodel/pkg/config"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/observability"
	"github.com/matzehuels/archmodel/pkg/sink"
)

// appName is the application name used for directories and display.
const appName = "archmodel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set by the root command before any subcommand runs.
	cfgFile string
	verbose bool
	cfg     *config.Config
	tracing *observability.Tracing

	// out receives command output. Default: os.Stdout.
	out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "archmodel builds C4 architecture models and publishes them",
		Long: `archmodel reads a software architecture model (people, software systems,
containers, components and the relationships between them) from a YAML, TOML
or JSON definition, adds views, documentation and styles, and exports the
workspace as JSON or HCL to a file, a Redis or MongoDB store, or a remote
workspace API.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./archmodel.toml or ~/.config/archmodel/)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.pullCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the publish digest cache.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	cfg := c.settings()
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns cache.dir from the config, or the per-user cache directory.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// publishKeyer names publish digest entries. Digests recorded under one API
// key do not suppress a publish made with another.
func (c *CLI) publishKeyer() cache.Keyer {
	key := c.settings().Workspace.APIKey
	if key == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, "account:"+cache.Hash([]byte(key))[:12]+":")
}

// newSink creates the sink selected by sink.type. The returned target names
// where and how the sink writes, for publish digest keys. The returned close
// function releases connections and is never nil.
func (c *CLI) newSink(ctx context.Context, sinkType string) (export.Sink, string, func() error, error) {
	cfg := *c.settings()
	if sinkType != "" {
		cfg.Sink.Type = sinkType
	}
	if err := cfg.RequireSink(); err != nil {
		return nil, "", nil, err
	}
	noop := func() error { return nil }

	switch cfg.Sink.Type {
	case config.SinkHTTP:
		s, err := sink.NewHTTPSink(cfg.HTTP.URL, sink.WithRetries(cfg.Sink.Retries, time.Second))
		return s, cfg.HTTP.URL, noop, err
	case config.SinkFile:
		s, err := sink.NewFileSink(cfg.File.Dir, export.Format(cfg.File.Format))
		return s, cfg.File.Dir + " (" + cfg.File.Format + ")", noop, err
	case config.SinkWriter:
		s, err := sink.NewWriterSink(c.out, export.Format(cfg.File.Format))
		return s, "stdout", noop, err
	case config.SinkRedis:
		client := sink.NewRedisClient(sink.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		target := cfg.Redis.Addr + "/" + strconv.Itoa(cfg.Redis.DB)
		return sink.NewRedisSink(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL), target, client.Close, nil
	case config.SinkMongo:
		s, disconnect, err := sink.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, "", nil, err
		}
		target := cfg.Mongo.Database + "." + cfg.Mongo.Collection
		return s, target, func() error { return disconnect(context.Background()) }, nil
	}
	return nil, "", nil, errors.New(errors.ErrCodeInvalidConfig, "unknown sink type %q", cfg.Sink.Type)
}

// credentials returns the configured API key pair.
func (c *CLI) credentials() export.Credentials {
	ws := c.settings().Workspace
	return export.Credentials{APIKey: ws.APIKey, APISecret: ws.APISecret}
}
