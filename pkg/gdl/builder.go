package gdl

import (
	"strconv"
	"sync/atomic"
)

// AnonymousPrefix starts every generated title.
const AnonymousPrefix = "anonymous."

// Builder creates graphs and nodes and numbers the ones created without a
// title. Nodes and graphs draw from a single sequence, so the first
// anonymous entity of either type is "anonymous.0", the next "anonymous.1",
// and so on. Numbers are never reused.
//
// Graphs remember the builder that created them, so the convenience
// constructors on [Graph] keep numbering from the same sequence.
//
// The zero value is ready to use. A Builder is safe for concurrent use; the
// trees it creates are not.
type Builder struct {
	seq atomic.Uint64
}

// NewBuilder returns a builder whose numbering starts at zero.
func NewBuilder() *Builder { return &Builder{} }

var defaultBuilder Builder

// DefaultBuilder returns the process-wide builder behind the package-level
// constructors.
func DefaultBuilder() *Builder { return &defaultBuilder }

func (b *Builder) anonymousTitle() string {
	return AnonymousPrefix + strconv.FormatUint(b.seq.Add(1)-1, 10)
}

// NewGraph creates an unattached graph with the given title.
func (b *Builder) NewGraph(title string) *Graph {
	return newGraph(b, title)
}

// NewAnonymousGraph creates an unattached graph with a generated title.
func (b *Builder) NewAnonymousGraph() *Graph {
	return newGraph(b, b.anonymousTitle())
}

// NewNode creates an unattached node with the given title.
func (b *Builder) NewNode(title string) *Node {
	return newNode(title)
}

// NewAnonymousNode creates an unattached node with a generated title.
func (b *Builder) NewAnonymousNode() *Node {
	return newNode(b.anonymousTitle())
}

// NewEdge creates an unattached edge; it is the same as the package-level
// [NewEdge] and exists so a builder covers every entity type.
func (b *Builder) NewEdge(source, target string) *Edge {
	return NewEdge(source, target)
}

// NewGraph creates an unattached graph using the default builder.
func NewGraph(title string) *Graph { return defaultBuilder.NewGraph(title) }

// NewAnonymousGraph creates an unattached, anonymous graph using the default builder.
func NewAnonymousGraph() *Graph { return defaultBuilder.NewAnonymousGraph() }

// NewNode creates an unattached node using the default builder.
func NewNode(title string) *Node { return defaultBuilder.NewNode(title) }

// NewAnonymousNode creates an unattached, anonymous node using the default builder.
func NewAnonymousNode() *Node { return defaultBuilder.NewAnonymousNode() }
