package sink

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// Request headers carrying the signature.
const (
	HeaderAPIKey        = "X-Api-Key"
	HeaderNonce         = "X-Nonce"
	HeaderContentSHA256 = "X-Content-Sha256"
	HeaderAuthorization = "Authorization"

	authScheme = "HMAC "
)

// Sign returns the hex HMAC-SHA256 of method, path, body digest and nonce,
// newline separated, keyed by secret.
func Sign(secret, method, path, contentSHA, nonce string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(method + "\n" + path + "\n" + contentSHA + "\n" + nonce))
	return hex.EncodeToString(mac.Sum(nil))
}

// ContentSHA256 returns the hex SHA-256 of body.
func ContentSHA256(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// signRequest sets the signature headers on req.
func signRequest(req *http.Request, key, secret, nonce string, body []byte) {
	sha := ContentSHA256(body)
	req.Header.Set(HeaderAPIKey, key)
	req.Header.Set(HeaderNonce, nonce)
	req.Header.Set(HeaderContentSHA256, sha)
	req.Header.Set(HeaderAuthorization, authScheme+key+":"+Sign(secret, req.Method, req.URL.Path, sha, nonce))
}

// Verify checks the signature headers of r against body and the expected key
// pair. It returns UNAUTHORIZED on any mismatch.
func Verify(r *http.Request, body []byte, key, secret string) error {
	auth := r.Header.Get(HeaderAuthorization)
	if !strings.HasPrefix(auth, authScheme) {
		return errors.New(errors.ErrCodeUnauthorized, "missing HMAC authorization")
	}
	gotKey, sig, ok := strings.Cut(strings.TrimPrefix(auth, authScheme), ":")
	if !ok || gotKey != key || r.Header.Get(HeaderAPIKey) != key {
		return errors.New(errors.ErrCodeUnauthorized, "unknown API key")
	}

	sha := ContentSHA256(body)
	if r.Header.Get(HeaderContentSHA256) != sha {
		return errors.New(errors.ErrCodeUnauthorized, "content digest mismatch")
	}
	nonce := r.Header.Get(HeaderNonce)
	if nonce == "" {
		return errors.New(errors.ErrCodeUnauthorized, "missing nonce")
	}

	want := Sign(secret, r.Method, r.URL.Path, sha, nonce)
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return errors.New(errors.ErrCodeUnauthorized, "signature mismatch")
	}
	return nil
}
