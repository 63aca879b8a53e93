package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archmodel/pkg/export"
)

var (
	styleInsert = lipgloss.NewStyle().Foreground(colorGreen)
	styleDelete = lipgloss.NewStyle().Foreground(colorRed)
)

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		contextLines int
		exit         bool
	)

	cmd := &cobra.Command{
		Use:   "diff [before] [after]",
		Short: "Compare two workspaces",
		Long: `Compare two workspaces line by line in their canonical JSON form.

Each argument is either an exported workspace (.json) or a definition
(.yaml, .toml or .json), so a definition can be checked against what was
last exported or pulled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			before, err := c.readDocument(ctx, args[0])
			if err != nil {
				return err
			}
			after, err := c.readDocument(ctx, args[1])
			if err != nil {
				return err
			}
			a, err := export.Marshal(before)
			if err != nil {
				return err
			}
			b, err := export.Marshal(after)
			if err != nil {
				return err
			}

			lines := export.Diff(a, b)
			if !export.Changed(lines) {
				printSuccess("No changes")
				return nil
			}
			writeDiff(c.out, lines, contextLines)
			if exit {
				return errChanged
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&contextLines, "context", "U", 3, "unchanged lines shown around each change")
	cmd.Flags().BoolVar(&exit, "exit-code", false, "exit with status 1 if the workspaces differ")
	return cmd
}

// errChanged is returned by diff --exit-code when the workspaces differ.
var errChanged = errors.New("workspaces differ")

// writeDiff prints changed lines with up to contextLines unchanged lines around
// each change. Skipped runs are marked with "...".
func writeDiff(w io.Writer, lines []export.DiffLine, contextLines int) {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == export.DiffEqual {
			continue
		}
		for j := max(0, i-contextLines); j <= min(len(lines)-1, i+contextLines); j++ {
			keep[j] = true
		}
	}

	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			fmt.Fprintln(w, StyleDim.Render("..."))
			skipped = false
		}
		switch l.Op {
		case export.DiffInsert:
			fmt.Fprintln(w, styleInsert.Render(l.String()))
		case export.DiffDelete:
			fmt.Fprintln(w, styleDelete.Render(l.String()))
		default:
			fmt.Fprintln(w, l.String())
		}
	}
	if skipped {
		fmt.Fprintln(w, StyleDim.Render("..."))
	}
}
