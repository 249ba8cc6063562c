package gdl

// Node is a vertex of a graph. Its title is the key used by
// [Graph.FindNode] and the name edges refer to.
type Node struct {
	attrs  attrs
	parent *Graph
}

func newNode(title string) *Node {
	n := &Node{attrs: newAttrs("node", int(nodeAttrCount))}
	n.SetTitle(title)
	return n
}

// Parent returns the graph the node was added to, or nil. The reference is
// not owning.
func (n *Node) Parent() *Graph {
	n.attrs.live()
	return n.parent
}

// IsSet reports whether attr has been assigned.
func (n *Node) IsSet(attr NodeAttr) bool { return n.attrs.isSet(int(attr)) }

func (n *Node) BorderColor() string  { return n.attrs.str(int(NodeBorderColor)) }
func (n *Node) BorderWidth() int     { return n.attrs.num(int(NodeBorderWidth)) }
func (n *Node) Color() string        { return n.attrs.str(int(NodeColor)) }
func (n *Node) HorizontalOrder() int { return n.attrs.num(int(NodeHorizontalOrder)) }
func (n *Node) Label() string        { return n.attrs.str(int(NodeLabel)) }
func (n *Node) Title() string        { return n.attrs.str(int(NodeTitle)) }
func (n *Node) VerticalOrder() int   { return n.attrs.num(int(NodeVerticalOrder)) }

func (n *Node) SetBorderColor(v string)  { n.attrs.setStr(int(NodeBorderColor), v) }
func (n *Node) SetBorderWidth(v int)     { n.attrs.setNum(int(NodeBorderWidth), v) }
func (n *Node) SetColor(v string)        { n.attrs.setStr(int(NodeColor), v) }
func (n *Node) SetHorizontalOrder(v int) { n.attrs.setNum(int(NodeHorizontalOrder), v) }
func (n *Node) SetLabel(v string)        { n.attrs.setStr(int(NodeLabel), v) }
func (n *Node) SetTitle(v string)        { n.attrs.setStr(int(NodeTitle), v) }
func (n *Node) SetVerticalOrder(v int)   { n.attrs.setNum(int(NodeVerticalOrder), v) }

// Free releases the node's strings. The node must not be used afterwards;
// doing so panics.
func (n *Node) Free() {
	n.attrs.live()
	n.attrs.free()
	n.parent = nil
}
