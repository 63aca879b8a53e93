package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/definition"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

// loadWorkspace reads and builds a definition file.
func (c *CLI) loadWorkspace(ctx context.Context, path string, implicit bool) (*workspace.Workspace, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	f, err := definition.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if implicit {
		f.ImplicitRelationships = true
	}
	ws, err := definition.Build(f, definition.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Built %s", ws.Name()))
	return ws, nil
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var implicit bool

	cmd := &cobra.Command{
		Use:   "validate [definition]",
		Short: "Build a workspace definition and summarize it",
		Long: `Build a workspace definition and summarize it.

Every element, relationship, view, documentation section and style is
checked as it is added. The first problem is reported with the definition
entry it came from, e.g. relationships[3] User -> Notes/Web app.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.loadWorkspace(cmd.Context(), args[0], implicit)
			if err != nil {
				return err
			}
			m := ws.Model()
			printSuccess("%s", StyleTitle.Render(ws.Name()))
			printStats(m.Len(), m.RelationshipCount(), ws.Views().Len())
			for _, v := range ws.Views().Views() {
				printKeyValue(v.Key(), fmt.Sprintf("%s view, %d elements, %d relationships",
					v.Kind(), len(v.Elements()), len(v.Relationships())))
			}
			if n := len(m.ImplicitRelationships()); n > 0 {
				printDetail("%d implicit relationships", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&implicit, "implicit", false, "derive implicit relationships between ancestors")
	return cmd
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		format   string
		implicit bool
	)

	cmd := &cobra.Command{
		Use:   "export [definition]",
		Short: "Export a workspace as JSON or HCL",
		Long: `Export a workspace as JSON or HCL.

The JSON form is canonical: the same workspace always produces the same
bytes, so exports can be committed and compared. Without --output the
export is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromPath(output)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ws, err := c.loadWorkspace(cmd.Context(), args[0], implicit)
			if err != nil {
				return err
			}
			doc := export.Export(ws)

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
			printSuccess("Exported %s", ws.Name())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json (default), hcl; inferred from --output")
	cmd.Flags().BoolVar(&implicit, "implicit", false, "derive implicit relationships between ancestors")
	return cmd
}

// formatFromPath picks the export format matching a file extension.
func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return string(export.FormatHCL)
	}
	return string(export.FormatJSON)
}

// readDocument loads an exported workspace, or builds one from a definition.
//
// JSON files are tried as exports first, since definitions may also be JSON.
func (c *CLI) readDocument(ctx context.Context, path string) (*export.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := export.ReadFile(path)
		if err == nil || errors.Is(err, errors.ErrCodeFileNotFound) {
			return doc, err
		}
	}
	ws, err := c.loadWorkspace(ctx, path, false)
	if err != nil {
		return nil, err
	}
	return export.Export(ws), nil
}
