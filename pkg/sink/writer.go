package sink

import (
	"context"
	"io"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
)

// WriterSink encodes each workspace to w. Credentials are ignored.
type WriterSink struct {
	w      io.Writer
	format export.Format
}

// NewWriterSink returns a sink writing to w in the given format.
func NewWriterSink(w io.Writer, format export.Format) (*WriterSink, error) {
	f, err := export.ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &WriterSink{w: w, format: f}, nil
}

func (s *WriterSink) Name() string { return "writer" }

func (s *WriterSink) Put(ctx context.Context, _ string, _ export.Credentials, doc *export.Document) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write aborted")
	}
	data, err := export.Encode(doc, s.format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "encode workspace")
	}
	if _, err := s.w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write workspace")
	}
	return nil
}
