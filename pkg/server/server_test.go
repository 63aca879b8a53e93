package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/archmodel/pkg/cache"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/sink"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

var creds = export.Credentials{APIKey: "key", APISecret: "secret"}

func testDoc(t *testing.T) *export.Document {
	t.Helper()
	ws := workspace.New("Shop", "")
	m := ws.Model()
	customer, err := m.AddPerson("Customer", "")
	require.NoError(t, err)
	store, err := m.AddSoftwareSystem("Store", "")
	require.NoError(t, err)
	_, err = m.Uses(customer, store, "Buys", "")
	require.NoError(t, err)
	return export.Export(ws)
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *sink.HTTPSink) {
	t.Helper()
	opts.APIKey, opts.APISecret = creds.APIKey, creds.APISecret
	s, err := New(opts)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client, err := sink.NewHTTPSink(ts.URL, sink.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return ts, client
}

func TestPublishThenFetch(t *testing.T) {
	store := cache.NewMemoryCache(0)
	_, client := newTestServer(t, Options{Store: store})
	doc := testDoc(t)
	ctx := context.Background()

	err := export.Publish(ctx, doc, client, export.Target{WorkspaceID: "shop", Credentials: creds}, export.PublishOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	got, err := client.Fetch(ctx, "shop", creds)
	require.NoError(t, err)
	require.Equal(t, doc, got)

	_, err = client.Fetch(ctx, "other", creds)
	require.True(t, errors.Is(err, errors.ErrCodeNotFound), "err = %v", err)
}

func TestRejectsBadSignature(t *testing.T) {
	_, client := newTestServer(t, Options{})
	doc := testDoc(t)

	err := client.Put(context.Background(), "shop", export.Credentials{APIKey: "key", APISecret: "nope"}, doc)
	require.True(t, errors.Is(err, errors.ErrCodeUnauthorized), "err = %v", err)

	err = client.Put(context.Background(), "shop", export.Credentials{APIKey: "other", APISecret: "secret"}, doc)
	require.True(t, errors.Is(err, errors.ErrCodeUnauthorized), "err = %v", err)
}

func TestRejectsUnsignedAndMalformed(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := ts.Client().Post(ts.URL+"/workspace/shop", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// A correctly signed body that is not a valid workspace.
	body := []byte(`{"name": "x", "bogus": true}`)
	req := signed(t, http.MethodPut, ts.URL+"/workspace/shop", body)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	require.Equal(t, string(errors.ErrCodeInvalidFormat), e.Code)
}

func TestRejectsReplayedRequest(t *testing.T) {
	store := cache.NewMemoryCache(0)
	ts, _ := newTestServer(t, Options{Store: store})
	body, err := export.Marshal(testDoc(t))
	require.NoError(t, err)

	resp, err := ts.Client().Do(signed(t, http.MethodPut, ts.URL+"/workspace/shop", body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same headers and body, so the same nonce.
	resp, err = ts.Client().Do(signed(t, http.MethodPut, ts.URL+"/workspace/shop", body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	require.Equal(t, string(errors.ErrCodeUnauthorized), e.Code)
	require.Contains(t, e.Message, "nonce")
}

func TestBodyLimit(t *testing.T) {
	_, client := newTestServer(t, Options{MaxBodyBytes: 64})
	err := client.Put(context.Background(), "shop", creds, testDoc(t))
	require.True(t, errors.Is(err, errors.ErrCodeSinkRejected), "err = %v", err)
}

func TestRejectsBadWorkspaceID(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	req := signed(t, http.MethodGet, ts.URL+"/workspace/..", nil)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type recordingSink struct {
	ids  []string
	fail error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Put(_ context.Context, id string, _ export.Credentials, _ *export.Document) error {
	s.ids = append(s.ids, id)
	return s.fail
}

func TestForward(t *testing.T) {
	fwd := &recordingSink{}
	store := cache.NewMemoryCache(0)
	_, client := newTestServer(t, Options{Store: store, Forward: fwd})

	require.NoError(t, client.Put(context.Background(), "shop", creds, testDoc(t)))
	require.Equal(t, []string{"shop"}, fwd.ids)

	fwd.fail = errors.New(errors.ErrCodeSink, "disk full")
	err := client.Put(context.Background(), "shop", creds, testDoc(t))
	require.Error(t, err)
	require.Equal(t, []string{"shop", "shop"}, fwd.ids)
	require.Equal(t, 1, store.Len(), "stored copy is kept when forwarding fails")
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Options{APIKey: "key"})
	require.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeSinkRejected, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusOf(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

// signed builds a request carrying valid signature headers for body.
func signed(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	sha := sink.ContentSHA256(body)
	req.Header.Set(sink.HeaderAPIKey, creds.APIKey)
	req.Header.Set(sink.HeaderNonce, "n-1")
	req.Header.Set(sink.HeaderContentSHA256, sha)
	req.Header.Set(sink.HeaderAuthorization, "HMAC "+creds.APIKey+":"+sink.Sign(creds.APISecret, method, req.URL.Path, sha, "n-1"))
	return req
}
