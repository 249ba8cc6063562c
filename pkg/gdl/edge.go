package gdl

import "fmt"

// EdgeKind classifies an edge. It selects the block keyword the edge is
// written with and is not itself an attribute: it has no set-flag and is
// always emitted.
type EdgeKind int

const (
	// KindEdge is an ordinary edge. It is the kind of every new edge.
	KindEdge EdgeKind = iota
	// KindBackEdge is an edge the viewer lays out against the main direction.
	KindBackEdge
	// KindNearEdge keeps both endpoints on the same level, side by side.
	KindNearEdge
	KindLeftNearEdge
	KindRightNearEdge
	// KindBentNearEdge is a near edge drawn with a bend.
	KindBentNearEdge
	KindLeftBentNearEdge
	KindRightBentNearEdge
)

var edgeKindKeywords = [...]string{
	KindEdge:              "edge",
	KindBackEdge:          "backedge",
	KindNearEdge:          "nearedge",
	KindLeftNearEdge:      "leftnearedge",
	KindRightNearEdge:     "rightnearedge",
	KindBentNearEdge:      "bentnearedge",
	KindLeftBentNearEdge:  "leftbentnearedge",
	KindRightBentNearEdge: "rightbentnearedge",
}

// Valid reports whether k is one of the declared kinds.
func (k EdgeKind) Valid() bool {
	return k >= KindEdge && int(k) < len(edgeKindKeywords)
}

// String returns the block keyword for k, e.g. "backedge".
func (k EdgeKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
	return edgeKindKeywords[k]
}

// ParseEdgeKind returns the kind whose keyword is s.
func ParseEdgeKind(s string) (EdgeKind, bool) {
	for k, kw := range edgeKindKeywords {
		if kw == s {
			return EdgeKind(k), true
		}
	}
	return 0, false
}

// keyword returns the block keyword, panicking on an undeclared kind.
func (k EdgeKind) keyword() string {
	if !k.Valid() {
		panic(fmt.Sprintf("gdl: unknown edge kind %d", int(k)))
	}
	return edgeKindKeywords[k]
}

// Edge connects two nodes by title. The endpoints are plain strings and are
// not checked against any node: they may name nodes in other subgraphs, or
// nodes that do not exist at all.
type Edge struct {
	attrs attrs
	kind  EdgeKind
	owner *Graph
}

// NewEdge creates an unattached edge of kind [KindEdge] from source to
// target. Both endpoint attributes are marked set.
func NewEdge(source, target string) *Edge {
	e := &Edge{attrs: newAttrs("edge", int(edgeAttrCount))}
	e.SetSourceName(source)
	e.SetTargetName(target)
	return e
}

// IsSet reports whether attr has been assigned.
func (e *Edge) IsSet(attr EdgeAttr) bool { return e.attrs.isSet(int(attr)) }

// Kind returns the edge classification.
func (e *Edge) Kind() EdgeKind {
	e.attrs.live()
	return e.kind
}

// SetKind changes the edge classification. An undeclared kind is accepted
// here and rejected when the edge is written.
func (e *Edge) SetKind(k EdgeKind) {
	e.attrs.live()
	e.kind = k
}

func (e *Edge) Label() string      { return e.attrs.str(int(EdgeLabel)) }
func (e *Edge) LineStyle() string  { return e.attrs.str(int(EdgeLineStyle)) }
func (e *Edge) SourceName() string { return e.attrs.str(int(EdgeSourceName)) }
func (e *Edge) TargetName() string { return e.attrs.str(int(EdgeTargetName)) }
func (e *Edge) Thickness() int     { return e.attrs.num(int(EdgeThickness)) }

func (e *Edge) SetLabel(v string)      { e.attrs.setStr(int(EdgeLabel), v) }
func (e *Edge) SetLineStyle(v string)  { e.attrs.setStr(int(EdgeLineStyle), v) }
func (e *Edge) SetSourceName(v string) { e.attrs.setStr(int(EdgeSourceName), v) }
func (e *Edge) SetTargetName(v string) { e.attrs.setStr(int(EdgeTargetName), v) }
func (e *Edge) SetThickness(v int)     { e.attrs.setNum(int(EdgeThickness), v) }

// Free releases the edge's strings. The edge must not be used afterwards;
// doing so panics. Freeing does not detach the edge from its graph, since
// teardown is always of a whole tree via [Graph.Free].
func (e *Edge) Free() {
	e.attrs.live()
	e.attrs.free()
	e.owner = nil
}
