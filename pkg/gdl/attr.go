package gdl

import "fmt"

// NodeAttr identifies one of the attributes declared by [Node].
// The declaration order is the order in which attributes are serialized.
type NodeAttr int

const (
	NodeBorderColor NodeAttr = iota
	NodeBorderWidth
	NodeColor
	NodeHorizontalOrder
	NodeLabel
	NodeTitle
	NodeVerticalOrder
	nodeAttrCount
)

// EdgeAttr identifies one of the attributes declared by [Edge].
type EdgeAttr int

const (
	EdgeLabel EdgeAttr = iota
	EdgeLineStyle
	EdgeSourceName
	EdgeTargetName
	EdgeThickness
	edgeAttrCount
)

// GraphAttr identifies one of the attributes declared by [Graph].
//
// GraphColorEntry is the table-level flag of the 256-slot colour table; it
// becomes set as soon as any slot is written with [Graph.SetColorEntry].
type GraphAttr int

const (
	GraphColor GraphAttr = iota
	GraphColorEntry
	GraphFolding
	GraphLabel
	GraphLayoutAlgorithm
	GraphNearEdges
	GraphNodeAlignment
	GraphOrientation
	GraphPortSharing
	GraphShape
	GraphSplines
	GraphTitle
	GraphVerticalOrder
	GraphXSpace
	GraphYSpace
	GraphNodeBorderWidth
	GraphNodeColor
	GraphNodeShape
	GraphNodeTextColor
	GraphEdgeColor
	GraphEdgeThickness
	graphAttrCount
)

// valueKind selects how an attribute value is stored and printed.
type valueKind int

const (
	bareValue   valueKind = iota // identifier-like token, printed as is
	quotedValue                  // string, printed quoted and escaped
	intValue                     // integer, printed in decimal
)

type attrSpec struct {
	name string
	kind valueKind
}

var nodeAttrSpecs = [nodeAttrCount]attrSpec{
	NodeBorderColor:     {"bordercolor", bareValue},
	NodeBorderWidth:     {"borderwidth", intValue},
	NodeColor:           {"color", bareValue},
	NodeHorizontalOrder: {"horizontal_order", intValue},
	NodeLabel:           {"label", quotedValue},
	NodeTitle:           {"title", quotedValue},
	NodeVerticalOrder:   {"vertical_order", intValue},
}

var edgeAttrSpecs = [edgeAttrCount]attrSpec{
	EdgeLabel:      {"label", quotedValue},
	EdgeLineStyle:  {"linestyle", bareValue},
	EdgeSourceName: {"sourcename", quotedValue},
	EdgeTargetName: {"targetname", quotedValue},
	EdgeThickness:  {"thickness", intValue},
}

// The colour table has no scalar spec; it is written separately.
var graphAttrSpecs = [graphAttrCount]attrSpec{
	GraphColor:           {"color", bareValue},
	GraphColorEntry:      {"colorentry", bareValue},
	GraphFolding:         {"folding", intValue},
	GraphLabel:           {"label", quotedValue},
	GraphLayoutAlgorithm: {"layout_algorithm", bareValue},
	GraphNearEdges:       {"near_edges", bareValue},
	GraphNodeAlignment:   {"node_alignment", bareValue},
	GraphOrientation:     {"orientation", bareValue},
	GraphPortSharing:     {"port_sharing", bareValue},
	GraphShape:           {"shape", bareValue},
	GraphSplines:         {"splines", bareValue},
	GraphTitle:           {"title", quotedValue},
	GraphVerticalOrder:   {"vertical_order", intValue},
	GraphXSpace:          {"xspace", intValue},
	GraphYSpace:          {"yspace", intValue},
	GraphNodeBorderWidth: {"node.borderwidth", intValue},
	GraphNodeColor:       {"node.color", bareValue},
	GraphNodeShape:       {"node.shape", bareValue},
	GraphNodeTextColor:   {"node.textcolor", bareValue},
	GraphEdgeColor:       {"edge.color", bareValue},
	GraphEdgeThickness:   {"edge.thickness", intValue},
}

// String returns the attribute's keyword in the output format.
func (a NodeAttr) String() string {
	if a < 0 || a >= nodeAttrCount {
		return fmt.Sprintf("NodeAttr(%d)", int(a))
	}
	return nodeAttrSpecs[a].name
}

// String returns the attribute's keyword in the output format.
func (a EdgeAttr) String() string {
	if a < 0 || a >= edgeAttrCount {
		return fmt.Sprintf("EdgeAttr(%d)", int(a))
	}
	return edgeAttrSpecs[a].name
}

// String returns the attribute's keyword in the output format.
func (a GraphAttr) String() string {
	if a < 0 || a >= graphAttrCount {
		return fmt.Sprintf("GraphAttr(%d)", int(a))
	}
	return graphAttrSpecs[a].name
}

// attrs stores the values of an entity's declared attributes together with
// one set-flag per slot. Every entity type has fewer than 32 attributes, so
// the flags fit in a single word.
//
// Reading a slot that was never written yields the zero value. Once a flag is
// set it stays set for the lifetime of the entity.
type attrs struct {
	set    uint32
	vals   []attrValue
	freed  bool
	entity string
}

type attrValue struct {
	s string
	n int
}

func newAttrs(entity string, count int) attrs {
	return attrs{vals: make([]attrValue, count), entity: entity}
}

func (a *attrs) live() {
	if a.freed {
		panic("gdl: use of freed " + a.entity)
	}
}

func (a *attrs) isSet(i int) bool {
	a.live()
	return a.set&(1<<uint(i)) != 0
}

func (a *attrs) str(i int) string {
	a.live()
	return a.vals[i].s
}

func (a *attrs) num(i int) int {
	a.live()
	return a.vals[i].n
}

func (a *attrs) setStr(i int, s string) {
	a.live()
	a.vals[i].s = s
	a.set |= 1 << uint(i)
}

func (a *attrs) setNum(i int, n int) {
	a.live()
	a.vals[i].n = n
	a.set |= 1 << uint(i)
}

func (a *attrs) free() {
	a.vals = nil
	a.freed = true
}

// RGB is one entry of a graph's colour table.
type RGB struct {
	R, G, B int
}

// ColorTableSize is the number of slots in a graph's colour table.
const ColorTableSize = 256

// colorTable is the 256-slot colour table of a graph. Each slot carries its
// own set-flag, independent of the table-level GraphColorEntry flag.
type colorTable struct {
	set     [ColorTableSize / 64]uint64
	entries [ColorTableSize]RGB
}

func checkColorIndex(i int) {
	if i < 0 || i >= ColorTableSize {
		panic(fmt.Sprintf("gdl: colour index %d out of range [0,%d]", i, ColorTableSize-1))
	}
}

func (t *colorTable) put(i int, c RGB) {
	checkColorIndex(i)
	t.entries[i] = c
	t.set[i/64] |= 1 << uint(i%64)
}

func (t *colorTable) get(i int) (RGB, bool) {
	checkColorIndex(i)
	return t.entries[i], t.set[i/64]&(1<<uint(i%64)) != 0
}
