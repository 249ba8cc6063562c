package pipeline

import (
	"bytes"
	stderrors "errors"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/gdl"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
)

// Build validates desc and builds its graph tree with a fresh builder.
// The caller owns the tree and should Free it.
func Build(desc *gdlio.Description) (*gdl.Graph, error) {
	if desc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "description is required")
	}
	return gdlio.Build(desc, gdl.NewBuilder())
}

// Serialize writes g as GDL text.
func Serialize(g *gdl.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		return nil, graphError(err, "serialize %s", g.Title())
	}
	return buf.Bytes(), nil
}

// Dump builds desc and serializes it without caching.
func Dump(desc *gdlio.Description) ([]byte, error) {
	g, err := Build(desc)
	if err != nil {
		return nil, err
	}
	defer g.Free()
	return Serialize(g)
}

// graphError codes an error returned by the document model or a converter
// walking it.
func graphError(err error, format string, args ...any) error {
	if stderrors.Is(err, gdl.ErrSubgraphCycle) {
		return errors.Wrap(errors.ErrCodeCycle, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, format, args...)
}
