package sink

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/archmodel/pkg/buildinfo"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/httputil"
	"github.com/matzehuels/archmodel/pkg/observability"
)

const (
	httpTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is kept for the
	// error message.
	maxErrorBody = 4 << 10
)

// HTTPSink uploads workspaces with PUT {baseURL}/workspace/{id}.
//
// Requests are signed with the target's API key pair (see [Sign]). Without
// [WithRetries] a transport failure or 5xx response is returned after the
// first attempt.
type HTTPSink struct {
	baseURL string
	client  *http.Client
	retries int
	delay   time.Duration
	nonce   func() string
}

// HTTPOption configures an [HTTPSink].
type HTTPOption func(*HTTPSink)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSink) { s.client = c }
}

// WithRetries retries transport failures, 429 and 5xx responses up to
// retries more times, doubling delay after each attempt.
func WithRetries(retries int, delay time.Duration) HTTPOption {
	return func(s *HTTPSink) {
		s.retries = max(retries, 0)
		s.delay = delay
	}
}

// NewHTTPSink creates a sink for the API rooted at baseURL.
// Returns INVALID_INPUT unless baseURL is an http or https URL.
func NewHTTPSink(baseURL string, opts ...HTTPOption) (*HTTPSink, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid sink URL")
	}
	s := &HTTPSink{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: httpTimeout},
		delay:   time.Second,
		nonce:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name implements [export.Sink].
func (s *HTTPSink) Name() string { return "http" }

// Put implements [export.Sink].
func (s *HTTPSink) Put(ctx context.Context, workspaceID string, creds export.Credentials, doc *export.Document) error {
	if creds.APIKey == "" || creds.APISecret == "" {
		return errors.New(errors.ErrCodeUnauthorized, "API key and secret required")
	}
	body, err := export.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "encode workspace")
	}
	endpoint := s.baseURL + "/workspace/" + url.PathEscape(workspaceID)

	attempt := func() error { return s.put(ctx, endpoint, creds, body) }
	if s.retries > 0 {
		err = httputil.Retry(ctx, s.retries+1, s.delay, attempt)
	} else {
		err = attempt()
	}
	return classify(ctx, err)
}

func (s *HTTPSink) put(ctx context.Context, endpoint string, creds export.Credentials, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	signRequest(req, creds.APIKey, creds.APISecret, s.nonce(), body)

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "upload workspace")}
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	return checkStatus(resp.StatusCode, strings.TrimSpace(string(msg)))
}

func checkStatus(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "status %d: %s", code, msg)
	case code == http.StatusBadRequest || code == http.StatusNotFound ||
		code == http.StatusConflict || code == http.StatusUnprocessableEntity ||
		code == http.StatusRequestEntityTooLarge:
		return errors.New(errors.ErrCodeSinkRejected, "status %d: %s", code, msg)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d: %s", code, msg)}
	default:
		return errors.New(errors.ErrCodeSink, "unexpected status %d: %s", code, msg)
	}
}

// classify strips retry markers and reports an expired deadline as TIMEOUT.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errors.Wrap(errors.ErrCodeTimeout, err, "upload timed out")
	case context.Canceled:
		return errors.Wrap(errors.ErrCodeSink, err, "upload cancelled")
	}
	if r, ok := err.(*httputil.RetryableError); ok {
		return r.Err
	}
	return err
}

// Fetch downloads the workspace stored under workspaceID with a signed GET.
// Returns NOT_FOUND if the remote holds no such workspace.
func (s *HTTPSink) Fetch(ctx context.Context, workspaceID string, creds export.Credentials) (*export.Document, error) {
	if err := errors.ValidateWorkspaceID(workspaceID); err != nil {
		return nil, err
	}
	if creds.APIKey == "" || creds.APISecret == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "API key and secret required")
	}
	endpoint := s.baseURL + "/workspace/" + url.PathEscape(workspaceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSink, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	signRequest(req, creds.APIKey, creds.APISecret, s.nonce(), nil)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classify(ctx, errors.Wrap(errors.ErrCodeNetwork, err, "download workspace"))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "workspace %s not found", workspaceID)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, classify(ctx, checkStatus(resp.StatusCode, strings.TrimSpace(string(msg))))
	}
	return export.Decode(resp.Body)
}
