package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/sink"
)

// pullCommand creates the pull command.
func (c *CLI) pullCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "pull [workspace-id]",
		Short: "Download a workspace from the remote workspace API",
		Long: `Download a workspace from the remote workspace API at http.url.

The request is signed with workspace.api_key and workspace.api_secret. The
workspace id defaults to workspace.id.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := c.settings().Workspace.ID
			if len(args) == 1 {
				id = args[0]
			}
			if format == "" {
				format = formatFromPath(output)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			doc, err := c.fetch(cmd.Context(), id)
			if err != nil {
				return err
			}

			if output == "" {
				data, err := export.Encode(doc, f)
				if err != nil {
					return err
				}
				_, err = c.out.Write(data)
				return err
			}
			if err := export.WriteFile(doc, output, f); err != nil {
				return err
			}
			printSuccess("Pulled %s", doc.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json (default), hcl; inferred from --output")
	return cmd
}

func (c *CLI) fetch(ctx context.Context, id string) (*export.Document, error) {
	cfg := c.settings()
	if cfg.HTTP.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "http.url required to pull")
	}
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "workspace id required (argument or workspace.id)")
	}
	s, err := sink.NewHTTPSink(cfg.HTTP.URL, sink.WithRetries(cfg.Sink.Retries, time.Second))
	if err != nil {
		return nil, err
	}

	if cfg.Sink.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Sink.Timeout)
		defer cancel()
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching workspace %s...", id))
	spinner.Start()
	doc, err := s.Fetch(ctx, id, c.credentials())
	spinner.Stop()
	return doc, err
}
