// Package cli implements the archmodel command-line interface.
//
// The CLI loads a workspace definition, builds the architecture model and
// hands the exported workspace to a sink. It is built on cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - validate: Build a definition and report what it contains
//   - export: Write the exported workspace as JSON or HCL
//   - publish: Send the workspace to the configured sink
//   - pull: Download a workspace from a remote workspace API
//   - diff: Compare two workspaces line by line
//   - serve: Run a workspace receiver
//   - cache: Manage the publish digest cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and observability hooks log publish, HTTP
// and cache events at debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archmodel/pkg/observability"
)

// newLogger returns a logger writing to w with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took, e.g. "Built Private apps (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports observability events through the CLI logger.
type logHooks struct {
	observability.NoopCacheHooks
	logger *log.Logger
}

func (h *logHooks) OnPublishStart(_ context.Context, sink, workspaceID string) {
	h.logger.Debug("publish start", "sink", sink, "workspace", workspaceID)
}

func (h *logHooks) OnPublishComplete(_ context.Context, sink, workspaceID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("publish failed", "sink", sink, "workspace", workspaceID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("publish complete", "sink", sink, "workspace", workspaceID, "duration", d)
}

func (h *logHooks) OnPublishSkipped(_ context.Context, sink, workspaceID, digest string) {
	h.logger.Debug("publish skipped", "sink", sink, "workspace", workspaceID, "digest", digest)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}
