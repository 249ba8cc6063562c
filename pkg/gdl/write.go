package gdl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSubgraphCycle is returned when a graph is reached again while it is
// still being written, i.e. it was attached below one of its own subgraphs.
var ErrSubgraphCycle = errors.New("subgraph cycle")

// Dump writes the complete document for g to w.
//
// If Dump returns an error, an unspecified amount of output may already
// have been written.
func Dump(w io.Writer, g *Graph) error {
	_, err := g.WriteTo(w)
	return err
}

// WriteTo writes g, its attributes and everything below it to w, and
// implements [io.WriterTo].
//
// Output is deterministic: attributes appear in their declared order (not the
// order they were set in), and children appear as all nodes, then all
// subgraphs, then all edges, each group in insertion order.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	dw := newDocWriter(w)
	dw.graph(g)
	return dw.finish()
}

// WriteTo writes the node block for n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	dw := newDocWriter(w)
	dw.node(n)
	return dw.finish()
}

// WriteTo writes the edge block for e to w. It panics if e has an
// undeclared kind.
func (e *Edge) WriteTo(w io.Writer) (int64, error) {
	dw := newDocWriter(w)
	dw.edge(e)
	return dw.finish()
}

// String returns the document for g. A cycle among subgraphs truncates the
// output at the point it was detected; use [Graph.WriteTo] to see the error.
func (g *Graph) String() string {
	var sb strings.Builder
	_, _ = g.WriteTo(&sb)
	return sb.String()
}

// docWriter keeps the first error it sees and turns every later write into
// a no-op, so the emitters below can write unconditionally.
type docWriter struct {
	bw   *bufio.Writer
	sink *countingWriter
	err  error

	// graphs currently open on the recursion path
	open map[*Graph]bool
}

// countingWriter counts the bytes the underlying writer accepted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func newDocWriter(w io.Writer) *docWriter {
	sink := &countingWriter{w: w}
	return &docWriter{bw: bufio.NewWriter(sink), sink: sink}
}

// finish flushes whatever was buffered before the first error and reports
// how many bytes reached the sink.
func (w *docWriter) finish() (int64, error) {
	if err := w.bw.Flush(); w.err == nil {
		w.err = err
	}
	return w.sink.n, w.err
}

func (w *docWriter) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.bw.WriteString(s)
}

// quoted writes s between double quotes, putting a backslash before every
// double quote in s. Nothing else is escaped.
func (w *docWriter) quoted(s string) {
	w.write(`"`)
	for {
		i := strings.IndexByte(s, '"')
		if i < 0 {
			break
		}
		w.write(s[:i])
		w.write(`\"`)
		s = s[i+1:]
	}
	w.write(s)
	w.write(`"`)
}

func (w *docWriter) attr(spec attrSpec, a *attrs, i int) {
	if !a.isSet(i) {
		return
	}
	w.write(spec.name)
	w.write(": ")
	switch spec.kind {
	case quotedValue:
		w.quoted(a.str(i))
	case intValue:
		w.write(strconv.Itoa(a.num(i)))
	default:
		w.write(a.str(i))
	}
	w.write("\n")
}

func (w *docWriter) node(n *Node) {
	n.attrs.live()
	w.write("node: {\n")
	for i, spec := range nodeAttrSpecs {
		w.attr(spec, &n.attrs, i)
	}
	w.write("}\n")
}

func (w *docWriter) edge(e *Edge) {
	e.attrs.live()
	w.write(e.kind.keyword())
	w.write(": {\n")
	for i, spec := range edgeAttrSpecs {
		w.attr(spec, &e.attrs, i)
	}
	w.write("}\n")
}

func (w *docWriter) graph(g *Graph) {
	g.attrs.live()
	if w.err != nil {
		return
	}
	if w.open[g] {
		w.err = fmt.Errorf("%w: graph %q contains itself", ErrSubgraphCycle, g.Title())
		return
	}
	if w.open == nil {
		w.open = make(map[*Graph]bool)
	}
	w.open[g] = true
	defer delete(w.open, g)

	w.write("graph: {\n")
	if g.attrs.isSet(int(GraphColorEntry)) {
		w.colorTable(g.colors)
	}
	for i, spec := range graphAttrSpecs {
		if GraphAttr(i) == GraphColorEntry {
			continue
		}
		w.attr(spec, &g.attrs, i)
	}
	for _, n := range g.nodes {
		w.node(n)
	}
	for _, sub := range g.subgraphs {
		w.graph(sub)
	}
	for _, e := range g.edges {
		w.edge(e)
	}
	w.write("}\n")
}

func (w *docWriter) colorTable(t *colorTable) {
	if t == nil {
		return
	}
	for i := range ColorTableSize {
		c, ok := t.get(i)
		if !ok {
			continue
		}
		w.write(fmt.Sprintf("colorentry %d: %d %d %d\n", i, c.R, c.G, c.B))
	}
}
