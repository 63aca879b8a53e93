// Package observability provides hooks and tracing for archmodel.
//
// Libraries emit events through hook interfaces with no-op defaults; the CLI
// registers real implementations at startup. This keeps model, export and
// sink packages free of any logging or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPublishHooks(&logPublishHooks{logger})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Publish().OnPublishStart(ctx, sink.Name(), workspaceID)
//	err := sink.Put(ctx, workspaceID, creds, doc)
//	observability.Publish().OnPublishComplete(ctx, sink.Name(), workspaceID, time.Since(start), err)
//
// Tracing is separate: [SetupTracing] installs an OpenTelemetry tracer
// provider, and packages create spans through the global otel API.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Publish Hooks
// =============================================================================

// PublishHooks receives events from export.Publish.
type PublishHooks interface {
	OnPublishStart(ctx context.Context, sink, workspaceID string)
	OnPublishComplete(ctx context.Context, sink, workspaceID string, duration time.Duration, err error)

	// OnPublishSkipped records a publish avoided because the snapshot digest
	// matched the last successful publish.
	OnPublishSkipped(ctx context.Context, sink, workspaceID, digest string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP sink.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPublishHooks is a no-op implementation of PublishHooks.
type NoopPublishHooks struct{}

func (NoopPublishHooks) OnPublishStart(context.Context, string, string) {}
func (NoopPublishHooks) OnPublishComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopPublishHooks) OnPublishSkipped(context.Context, string, string, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the process-wide hooks. Setters are expected at startup;
// getters run on every publish, cache access and HTTP request.
type registry struct {
	mu      sync.RWMutex
	publish PublishHooks
	cache   CacheHooks
	http    HTTPHooks
}

var hooks = &registry{
	publish: NoopPublishHooks{},
	cache:   NoopCacheHooks{},
	http:    NoopHTTPHooks{},
}

// set stores h in dst unless h is nil.
func set[T any](dst *T, h T) {
	if any(h) == nil {
		return
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	*dst = h
}

func get[T any](src *T) T {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return *src
}

// SetPublishHooks registers publish hooks. A nil h is ignored.
func SetPublishHooks(h PublishHooks) { set(&hooks.publish, h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&hooks.cache, h) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&hooks.http, h) }

// Publish returns the registered publish hooks.
func Publish() PublishHooks { return get(&hooks.publish) }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return get(&hooks.cache) }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return get(&hooks.http) }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.publish = NoopPublishHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.http = NoopHTTPHooks{}
}
