package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/config"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/observability"
)

// publishOpts holds the command-line flags for the publish command.
type publishOpts struct {
	workspaceID string
	sinkType    string
	timeout     time.Duration
	force       bool
	noCache     bool
	implicit    bool
}

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	var opts publishOpts

	cmd := &cobra.Command{
		Use:   "publish [definition]",
		Short: "Publish a workspace to the configured sink",
		Long: `Publish a workspace to the configured sink.

The sink is chosen by sink.type in the config file: http (a remote workspace
API, HMAC-signed with workspace.api_key and workspace.api_secret), file,
writer (stdout), redis or mongo.

The digest of each successful publish is cached per sink and workspace. A
workspace whose export has not changed since is skipped unless --force is
given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.workspaceID, "workspace", "w", "", "workspace id (default: workspace.id)")
	cmd.Flags().StringVarP(&opts.sinkType, "sink", "s", "", "sink type: http, file, writer, redis, mongo (default: sink.type)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "publish timeout (default: sink.timeout)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "publish even if unchanged since the last publish")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "neither read nor record publish digests")
	cmd.Flags().BoolVar(&opts.implicit, "implicit", false, "derive implicit relationships between ancestors")
	return cmd
}

func (c *CLI) runPublish(ctx context.Context, path string, opts publishOpts) error {
	cfg := c.settings()
	id := opts.workspaceID
	if id == "" {
		id = cfg.Workspace.ID
	}
	if id == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "workspace id required (--workspace or workspace.id)")
	}
	timeout := opts.timeout
	if timeout == 0 {
		timeout = cfg.Sink.Timeout
	}

	ws, err := c.loadWorkspace(ctx, path, opts.implicit)
	if err != nil {
		return err
	}
	doc := export.Export(ws)
	data, err := export.Marshal(doc)
	if err != nil {
		return err
	}
	digest := export.Digest(data)

	s, target, closeSink, err := c.newSink(ctx, opts.sinkType)
	if err != nil {
		return err
	}
	defer closeSink()

	// Output to a writer is never skipped.
	noCache := opts.noCache || s.Name() == config.SinkWriter
	store, err := c.newCache(noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()
	key := c.publishKeyer().PublishKey(s.Name(), target, id)

	if !opts.force {
		prev, ok, err := store.Get(ctx, key)
		if err != nil {
			c.Logger.Warn("read publish cache", "err", err)
		}
		if ok && string(prev) == digest {
			observability.Publish().OnPublishSkipped(ctx, s.Name(), id, digest)
			printInfo("%s unchanged since last publish to %s", ws.Name(), s.Name())
			printDetail("digest %s (use --force to publish anyway)", digest[:12])
			return nil
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Publishing %s to %s...", ws.Name(), s.Name()))
	spinner.Start()

	dest := export.Target{WorkspaceID: id, Credentials: c.credentials()}
	if err := export.Publish(ctx, doc, s, dest, export.PublishOptions{Timeout: timeout}); err != nil {
		spinner.StopWithError("Publish failed")
		if errors.IsSinkError(err) {
			printDetail("%s rejected or did not receive the workspace; nothing was recorded", s.Name())
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Published %s to %s", ws.Name(), s.Name()))
	printDetail("workspace %s · digest %s", id, digest[:12])

	if err := store.Set(ctx, key, []byte(digest), 0); err != nil {
		c.Logger.Warn("record publish digest", "err", err)
	}
	return nil
}
