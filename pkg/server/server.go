// Package server implements a receiver for published workspaces.
//
// It speaks the same protocol as [sink.HTTPSink]:
//
//	PUT /workspace/{id}   store a workspace (HMAC-signed JSON body)
//	GET /workspace/{id}   return the last stored workspace (HMAC-signed)
//	GET /healthz          liveness probe
//
// Each nonce is accepted once within [Options.NonceTTL]; a replayed signed
// request is rejected as UNAUTHORIZED.
//
// Received documents are validated, re-encoded canonically and kept in a
// [cache.Cache]. With a forward sink configured, each accepted workspace is
// also published downstream; a failed forward is reported to the client as
// 502 and the stored copy is kept.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/archmodel/pkg/cache"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/sink"
)

const (
	defaultMaxBody  = 10 << 20
	defaultNonceTTL = 15 * time.Minute
)

// Options configures a [Server].
type Options struct {
	// APIKey and APISecret authenticate every workspace request.
	APIKey    string
	APISecret string

	// Store holds received workspaces. Default: an in-memory cache.
	Store cache.Cache

	// Keyer names store entries. Default: [cache.DefaultKeyer].
	Keyer cache.Keyer

	// Forward, if set, receives every accepted workspace.
	Forward            export.Sink
	ForwardCredentials export.Credentials
	ForwardTimeout     time.Duration

	// MaxBodyBytes bounds request bodies. Default: 10 MiB.
	MaxBodyBytes int64

	// NonceTTL is how long a used nonce is remembered. Default: 15 minutes.
	NonceTTL time.Duration

	Logger *log.Logger
}

// Server is the workspace receiver. It is safe for concurrent use.
type Server struct {
	opts   Options
	router chi.Router
	nonces *cache.MemoryCache
}

// New creates a server. Returns INVALID_CONFIG without an API key pair.
func New(opts Options) (*Server, error) {
	if opts.APIKey == "" || opts.APISecret == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server requires an API key and secret")
	}
	if opts.Store == nil {
		opts.Store = cache.NewMemoryCache(time.Hour)
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	if opts.NonceTTL <= 0 {
		opts.NonceTTL = defaultNonceTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Server{opts: opts, nonces: cache.NewMemoryCache(opts.NonceTTL)}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Put("/workspace/{id}", s.handlePut)
	r.Get("/workspace/{id}", s.handleGet)
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully, waiting up to five seconds for requests in flight.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// putResponse acknowledges a stored workspace.
type putResponse struct {
	Workspace string `json:"workspace"`
	Digest    string `json:"digest"`
	Forwarded bool   `json:"forwarded"`
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeSinkRejected, err, "request body too large"))
		return
	}
	if err := s.authenticate(r, body); err != nil {
		writeError(w, err)
		return
	}

	doc, err := export.Decode(bytes.NewReader(body))
	if err != nil {
		writeError(w, err)
		return
	}
	canonical, err := export.Marshal(doc)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode workspace"))
		return
	}

	ctx := r.Context()
	if err := s.opts.Store.Set(ctx, s.opts.Keyer.WorkspaceKey(id), canonical, 0); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store workspace"))
		return
	}
	resp := putResponse{Workspace: id, Digest: export.Digest(canonical)}
	s.opts.Logger.Info("stored workspace", "workspace", id, "name", doc.Name, "digest", resp.Digest[:12])

	if s.opts.Forward != nil {
		err := export.Publish(ctx, doc, s.opts.Forward, export.Target{WorkspaceID: id, Credentials: s.opts.ForwardCredentials},
			export.PublishOptions{Timeout: s.opts.ForwardTimeout})
		if err != nil {
			s.opts.Logger.Error("forward failed", "workspace", id, "sink", s.opts.Forward.Name(), "err", err)
			writeJSON(w, http.StatusBadGateway, errorBody(err))
			return
		}
		resp.Forwarded = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateWorkspaceID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.authenticate(r, nil); err != nil {
		writeError(w, err)
		return
	}

	data, ok, err := s.opts.Store.Get(r.Context(), s.opts.Keyer.WorkspaceKey(id))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load workspace"))
		return
	}
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "workspace %s not found", id))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(sink.HeaderContentSHA256, export.Digest(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// authenticate verifies the request signature and consumes its nonce.
func (s *Server) authenticate(r *http.Request, body []byte) error {
	if err := sink.Verify(r, body, s.opts.APIKey, s.opts.APISecret); err != nil {
		return err
	}
	if !s.nonces.Add(r.Context(), "nonce:"+r.Header.Get(sink.HeaderNonce), nil, s.opts.NonceTTL) {
		return errors.New(errors.ErrCodeUnauthorized, "nonce already used")
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err error) errorResponse {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errorResponse{Code: string(code), Message: errors.UserMessage(err)}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorBody(err))
}

// statusOf maps error codes to HTTP statuses. The sink maps them back.
func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSinkRejected:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
