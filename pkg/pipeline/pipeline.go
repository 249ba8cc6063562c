// Package pipeline turns graph descriptions into GDL documents and previews.
//
// The pipeline has two stages:
//
//  1. Dump: validate the description, build the graph tree and serialize it
//     to GDL text. Optionally save the document to a [store.Store].
//  2. Render: produce the requested artifacts from the document: the GDL
//     text itself, Graphviz DOT, or an SVG, PDF or PNG preview.
//
// [Runner] caches both stages. Serialized documents are keyed by the hash of
// the description they were built from, previews by the hash of the
// document text and the render options. Each build uses a fresh
// [gdl.Builder], so anonymous titles in a document depend only on its
// description and cached text matches a rebuild byte for byte.
//
// # Usage
//
//	r := pipeline.NewRunner(c, nil, nil, logger)
//	res, err := r.Render(ctx, desc, pipeline.Options{Formats: []string{"gdl", "svg"}})
//	os.WriteFile("graph.vcg", res.Artifacts["gdl"], 0o644)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
)

// Output formats.
const (
	FormatGDL = "gdl"
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats lists the formats [Runner.Render] produces.
var ValidFormats = map[string]bool{
	FormatGDL: true,
	FormatDOT: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// ValidLayouts lists the Graphviz engines accepted for previews.
var ValidLayouts = map[string]bool{
	"dot":   true,
	"neato": true,
	"fdp":   true,
	"circo": true,
	"twopi": true,
}

// Defaults.
const (
	DefaultLayout = "dot"
	DefaultScale  = 2.0
	DefaultTTL    = 7 * 24 * time.Hour
)

// Options configures a pipeline run.
type Options struct {
	// Formats to produce by Render. Defaults to gdl.
	Formats []string `json:"formats,omitempty"`

	// Preview options
	Layout   string  `json:"layout,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`

	// Save stores the document when the runner has a store.
	Save bool `json:"save,omitempty"`

	// Refresh bypasses cached results. Fresh results are still cached.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Title of the root graph, or "(anonymous)".
	Title string

	// GDL is the serialized document.
	GDL []byte

	// Hash is the content hash of GDL.
	Hash string

	// DocumentID is set when the document was saved.
	DocumentID string

	// Artifacts contains rendered outputs keyed by format. Dump leaves it
	// empty.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GraphCount int
	NodeCount  int
	EdgeCount  int
	DumpTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DumpHit   bool // Whether the document text came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: gdl, dot, svg, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a Graphviz engine is supported.
func ValidateLayout(layout string) error {
	if !ValidLayouts[layout] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid layout: %q (must be one of: dot, neato, fdp, circo, twopi)", layout)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGDL}
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// NeedsPreview reports whether any requested format needs Graphviz.
func (o *Options) NeedsPreview() bool {
	for _, f := range o.Formats {
		if f != FormatGDL {
			return true
		}
	}
	return false
}

// ArtifactKeyOpts returns cache key options for a rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
	if format != FormatDOT {
		opts.Layout = o.Layout
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// DescriptionHash returns the content hash of d's canonical JSON encoding.
func DescriptionHash(d *gdlio.Description) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode description")
	}
	return cache.Hash(data), nil
}
