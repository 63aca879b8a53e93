package definition

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

// Format names a definition file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDefinition, "unsupported definition file %q (want .yaml, .toml or .json)", path)
}

// Options configures [Load] and [Build].
type Options struct {
	// Logger receives one debug line per builder step. Nil discards.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// Parse decodes a definition. Unknown keys are rejected so that typos do not
// silently drop parts of the model.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "parse yaml")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "parse toml: unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "parse json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown definition format %q", format)
	}
	return &f, nil
}

// Load reads, parses and builds the definition at path.
func Load(path string, opts Options) (*workspace.Workspace, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("loaded definition", "path", path)
	return Build(f, opts)
}

// ReadFile reads and parses the definition at path, inlining section files
// resolved relative to the directory of path.
func ReadFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "read %s", path)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := f.readSectionFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readSectionFiles(dir string) error {
	for i := range f.Documentation {
		s := &f.Documentation[i]
		if s.File == "" {
			continue
		}
		if s.Content != "" {
			return entryError(sectionEntry(i, *s), errors.New(errors.ErrCodeInvalidInput, "content and file are mutually exclusive"))
		}
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return entryError(sectionEntry(i, *s), err)
		}
		s.Content = string(data)
		s.File = ""
	}
	return nil
}
