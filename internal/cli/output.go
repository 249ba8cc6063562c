package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path. "-" is standard output;
// otherwise the file is created, along with its directory, overwriting any
// existing file.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == stdinArg {
		return nopCloser{c.stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func (c *CLI) writeFile(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// artifactWriteParams describes the files written by render.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string // file (single format) or base path (multiple)
}

// writeArtifacts writes each requested format and returns the paths in
// format order. With several formats output is a base path whose known
// extension, if any, is replaced per format.
func (c *CLI) writeArtifacts(p artifactWriteParams) ([]string, error) {
	var paths []string
	for _, format := range p.formats {
		var path string
		switch {
		case len(p.formats) == 1:
			path = c.outputPath(p.output, p.input, format)
		case p.output != "":
			path = basePath(p.output) + extension(format)
		default:
			path = c.outputPath("", p.input, format)
		}
		if err := c.writeFile(path, p.artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known output extension from path.
func basePath(path string) string {
	ext := filepath.Ext(path)
	name := strings.TrimPrefix(ext, ".")
	if ext == docExt || pipeline.ValidFormats[name] {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

func extension(format string) string {
	if format == pipeline.FormatGDL {
		return docExt
	}
	return "." + format
}
