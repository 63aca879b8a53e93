package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds element names, view keys and section titles.
const maxNameLength = 256

// ValidateName validates an element name, view key or section title.
//
// The rules are conservative:
//   - No empty or whitespace-only names
//   - No control characters (newlines included)
//   - No "/" since definitions use it as the path separator
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name contains invalid control characters", kind)
		}
	}

	if strings.Contains(name, "/") {
		return New(ErrCodeInvalidInput, "%s name cannot contain '/': %q", kind, name)
	}

	return nil
}

// workspaceIDRegex matches identifiers accepted by every sink: they end up in
// URL paths, file names and Redis keys.
var workspaceIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateWorkspaceID validates a workspace identifier used by sinks.
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "workspace id cannot be empty")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "workspace id cannot contain '..'")
	}
	if !workspaceIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid workspace id: %q", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
