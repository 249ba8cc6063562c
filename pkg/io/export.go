package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// WriteJSON encodes d as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(d *Description, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(d *Description, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes d as TOML.
func WriteTOML(d *Description, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes d in the given format.
func Write(d *Description, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatYAML:
		return WriteYAML(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	}
	return fmt.Errorf("unsupported description format %q", format)
}

// Export writes d to path in the encoding its extension names.
func Export(d *Description, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
