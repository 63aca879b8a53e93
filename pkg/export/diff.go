package export

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is the kind of a [DiffLine].
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a snapshot diff.
type DiffLine struct {
	Op   DiffOp
	Text string // Without trailing newline
}

// String renders the line with a unified-diff prefix.
func (l DiffLine) String() string {
	switch l.Op {
	case DiffInsert:
		return "+" + l.Text
	case DiffDelete:
		return "-" + l.Text
	default:
		return " " + l.Text
	}
}

// Diff compares two encoded snapshots line by line. Canonical JSON puts one
// field per line, so the result reads as a field-level change list.
func Diff(before, after []byte) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Changed reports whether a diff contains any insertion or deletion.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}
