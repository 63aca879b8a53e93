package export

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/observability"
)

// Credentials is the API key pair a sink authenticates with.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Empty reports whether no credentials are set.
func (c Credentials) Empty() bool { return c.APIKey == "" && c.APISecret == "" }

// Sink accepts a serialized workspace for storage or rendering.
//
// Put must either store the whole document or fail; there is no partial
// success. Errors should carry a SINK_ERROR, SINK_REJECTED, UNAUTHORIZED,
// NETWORK_ERROR or TIMEOUT code. Put must honor ctx cancellation.
type Sink interface {
	Put(ctx context.Context, workspaceID string, creds Credentials, doc *Document) error

	// Name identifies the sink in logs and cache keys ("http", "file", ...).
	Name() string
}

// Target addresses the remote workspace a document is published to.
type Target struct {
	WorkspaceID string
	Credentials Credentials
}

// PublishOptions configures [Publish].
type PublishOptions struct {
	// Timeout bounds the sink call. Zero means no timeout beyond ctx.
	Timeout time.Duration
}

var tracer = otel.Tracer("github.com/matzehuels/archmodel/pkg/export")

// Publish hands doc to sink in a single call.
//
// The sink's error is returned unchanged: Publish never retries and never
// touches the workspace the document came from, so a failed publish can
// simply be repeated. Returns INVALID_INPUT before calling the sink if doc is
// nil or the workspace id is malformed.
func Publish(ctx context.Context, doc *Document, sink Sink, target Target, opts PublishOptions) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to publish")
	}
	if sink == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no sink configured")
	}
	if err := errors.ValidateWorkspaceID(target.WorkspaceID); err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "export.Publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("archmodel.sink", sink.Name()),
		attribute.String("archmodel.workspace_id", target.WorkspaceID),
		attribute.Int("archmodel.elements", len(doc.ElementIDs())),
	)

	hooks := observability.Publish()
	hooks.OnPublishStart(ctx, sink.Name(), target.WorkspaceID)
	start := time.Now()

	err := sink.Put(ctx, target.WorkspaceID, target.Credentials, doc)

	hooks.OnPublishComplete(ctx, sink.Name(), target.WorkspaceID, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errors.GetCode(err)))
	}
	return err
}
