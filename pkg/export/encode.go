package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// Format names an encoding of a [Document].
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatHCL:
		return FormatHCL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q (want json or hcl)", s)
}

// =============================================================================
// Encoding API
// =============================================================================

// Marshal encodes a document as canonical JSON: two-space indentation, fields
// in declaration order, a trailing newline. Equal documents always marshal to
// equal bytes.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a document as canonical JSON to w.
func Write(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Encode marshals a document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return Marshal(doc)
	case FormatHCL:
		return MarshalHCL(doc), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", format)
}

// WriteFile writes a document to path in the given format with 0644
// permissions.
func WriteFile(doc *Document, path string, format Format) error {
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Digest returns the hex SHA-256 of encoded document bytes. Sinks send it
// alongside the body, and the publish cache uses it to detect unchanged
// workspaces.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Decoding API
// =============================================================================

// Decode reads a JSON document from r and validates it. Unknown fields are
// rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode workspace")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile decodes the JSON document stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the referential integrity of a decoded document: element
// ids are unique, and every relationship, view, animation step and section
// refers to an element that is present.
func (d *Document) Validate() error {
	if d.Name == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "workspace name is missing")
	}

	ids := d.ElementIDs()
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		if known[id] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate element id %q", id)
		}
		known[id] = true
	}

	for _, r := range d.Model.Relationships {
		if !known[r.SourceID] || !known[r.DestinationID] {
			return errors.New(errors.ErrCodeInvalidFormat, "relationship %s: unknown endpoint %s -> %s", r.ID, r.SourceID, r.DestinationID)
		}
	}

	keys := make(map[string]bool)
	for _, v := range d.AllViews() {
		if keys[v.Key] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate view key %q", v.Key)
		}
		keys[v.Key] = true
		if !known[v.Scope] {
			return errors.New(errors.ErrCodeInvalidFormat, "view %q: unknown scope %q", v.Key, v.Scope)
		}
		for _, id := range v.Elements {
			if !known[id] {
				return errors.New(errors.ErrCodeInvalidFormat, "view %q: unknown element %q", v.Key, id)
			}
		}
		for _, a := range v.Animations {
			if i := slices.IndexFunc(a.Elements, func(id string) bool { return !known[id] }); i >= 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "view %q: animation %d has unknown element %q", v.Key, a.Order, a.Elements[i])
			}
		}
	}

	for _, s := range d.Documentation.Sections {
		if !known[s.ElementID] {
			return errors.New(errors.ErrCodeInvalidFormat, "section %q: unknown element %q", s.Title, s.ElementID)
		}
	}
	return nil
}
