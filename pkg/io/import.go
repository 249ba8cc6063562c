package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gdlkit/pkg/errors"
)

// Format names a description encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell description format of %q (want .json, .yaml, .yml or .toml)", path)
}

// ParseFormat accepts a format name or a media type such as
// "application/yaml".
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "json", "application/json":
		return FormatJSON, nil
	case "yaml", "yml", "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	case "toml", "application/toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", s)
}

// ReadJSON decodes a JSON description from r. Unknown fields are rejected so
// that a misspelt attribute is not silently dropped.
func ReadJSON(r io.Reader) (*Description, error) {
	var d Description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON description")
	}
	return &d, nil
}

// ReadYAML decodes a YAML description from r.
func ReadYAML(r io.Reader) (*Description, error) {
	var d Description
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML description")
	}
	return &d, nil
}

// ReadTOML decodes a TOML description from r.
func ReadTOML(r io.Reader) (*Description, error) {
	var d Description
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML description")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode TOML description: unknown key %q", undecoded[0].String())
	}
	return &d, nil
}

// Read decodes a description in the given format.
func Read(r io.Reader, format Format) (*Description, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", format)
}

// Import reads the description file at path, choosing the decoder by
// extension.
func Import(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}
