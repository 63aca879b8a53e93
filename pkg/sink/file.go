package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
)

// FileSink writes each workspace to {dir}/{id}{ext}.
//
// Files are replaced atomically: readers see either the previous snapshot or
// the new one. Credentials are ignored.
type FileSink struct {
	dir    string
	format export.Format
}

// NewFileSink creates dir if needed. An empty format means JSON.
func NewFileSink(dir string, format export.Format) (*FileSink, error) {
	f, err := export.ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file sink directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSink, err, "create %s", dir)
	}
	return &FileSink{dir: dir, format: f}, nil
}

// Name implements [export.Sink].
func (s *FileSink) Name() string { return "file" }

// Path returns the file a workspace is written to.
func (s *FileSink) Path(workspaceID string) string {
	return filepath.Join(s.dir, workspaceID+s.format.Extension())
}

// Put implements [export.Sink].
func (s *FileSink) Put(ctx context.Context, workspaceID string, _ export.Credentials, doc *export.Document) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write aborted")
	}
	data, err := export.Encode(doc, s.format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "encode workspace")
	}

	path := s.Path(workspaceID)
	tmp, err := os.CreateTemp(s.dir, ".archmodel-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeSink, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "replace %s", path)
	}
	return nil
}
