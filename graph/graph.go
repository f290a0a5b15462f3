// Package graph implements the per-workspace layout tree: an id-addressed
// collection of row/column group nodes and window leaves, the edges that
// connect them, and the structural mutation and navigation primitives a
// tiling window manager needs.
//
// Unlike a generic reflective tree of embedded structs, a Graph is the
// map-of-nodes plus ordered-edge-list shape the window manager's own
// save format and directional navigation both depend on, so nodes are
// cheap to relocate (MoveNode, SwapNodes) without walking or re-typing
// anything.
package graph

import (
	"github.com/nog-wm/nog/errs"
)

// WindowID is the opaque identifier the platform assigns to a top-level
// window. It uniquely identifies a window for its lifetime.
type WindowID uint64

// NodeID is a monotonically assigned id, scoped to a single Graph.
type NodeID int

// GroupKind distinguishes the two ways a Group node lays out its children.
type GroupKind int

const (
	// Row lays its children out left-to-right.
	Row GroupKind = iota
	// Col lays its children out top-to-bottom.
	Col
)

func (k GroupKind) String() string {
	if k == Col {
		return "col"
	}
	return "row"
}

// Node is a tagged variant: either a Group (Row or Col) or a Window leaf.
type Node struct {
	kind     nodeKind
	group    GroupKind
	windowID WindowID
}

type nodeKind int

const (
	kindGroup nodeKind = iota
	kindWindow
)

// IsGroup reports whether n is a Group(Row) or Group(Col) node.
func (n Node) IsGroup() bool { return n.kind == kindGroup }

// IsWindow reports whether n is a Window leaf.
func (n Node) IsWindow() bool { return n.kind == kindWindow }

// GroupKind returns n's row/col orientation. Only meaningful if IsGroup.
func (n Node) GroupKind() GroupKind { return n.group }

// WindowID returns the window n wraps. Only meaningful if IsWindow.
func (n Node) WindowID() WindowID { return n.windowID }

func groupNode(k GroupKind) Node { return Node{kind: kindGroup, group: k} }
func windowNode(w WindowID) Node { return Node{kind: kindWindow, windowID: w} }

// edge is an ordered (parent, child) pair. Edges sharing the same Parent
// appear in their visual order: left-to-right for a Row parent, top-to-
// bottom for a Col parent.
type edge struct {
	Parent NodeID
	Child  NodeID
}

// Graph is a per-workspace tree of row/column groups and window leaves.
//
// Graph is not safe for concurrent use: per the window manager's ownership
// model, only the reactor thread ever mutates a Graph.
type Graph struct {
	nodes map[NodeID]Node
	edges []edge
	root  NodeID
	maxID NodeID
	dirty bool
}

// New returns a Graph containing a single Group(Row) root.
func New() *Graph {
	g := &Graph{
		nodes: map[NodeID]Node{0: groupNode(Row)},
		root:  0,
		maxID: 0,
	}
	return g
}

// Root returns the id of the graph's root Group(Row) node.
func (g *Graph) Root() NodeID { return g.root }

// Dirty reports whether any structural mutation has happened since the
// last ClearDirty call.
func (g *Graph) Dirty() bool { return g.dirty }

// ClearDirty resets the dirty flag, normally called by the reactor right
// after it rerenders.
func (g *Graph) ClearDirty() { g.dirty = false }

// MaxID returns the largest node id ever allocated in this graph.
func (g *Graph) MaxID() NodeID { return g.maxID }

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) nextID() NodeID {
	g.maxID++
	return g.maxID
}

func (g *Graph) markDirty() { g.dirty = true }

// parentEdgeIndex returns the index into g.edges of the edge whose Child
// is id, or -1 if id has no parent edge (i.e. id is the root, or absent).
func (g *Graph) parentEdgeIndex(id NodeID) int {
	for i, e := range g.edges {
		if e.Child == id {
			return i
		}
	}
	return -1
}

// childEdgeIndices returns, in order, the indices into g.edges of every
// edge whose Parent is parent.
func (g *Graph) childEdgeIndices(parent NodeID) []int {
	var idx []int
	for i, e := range g.edges {
		if e.Parent == parent {
			idx = append(idx, i)
		}
	}
	return idx
}

// GetChildren returns parent's children in edge (visual) order.
func (g *Graph) GetChildren(parent NodeID) []NodeID {
	idx := g.childEdgeIndices(parent)
	out := make([]NodeID, len(idx))
	for i, ei := range idx {
		out[i] = g.edges[ei].Child
	}
	return out
}

// Parent returns id's parent, or false if id is the root or absent.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	i := g.parentEdgeIndex(id)
	if i < 0 {
		return 0, false
	}
	return g.edges[i].Parent, true
}

func (g *Graph) insertChild(parent, child NodeID, index *int) {
	existing := g.childEdgeIndices(parent)
	e := edge{Parent: parent, Child: child}
	if index == nil || *index >= len(existing) {
		g.edges = append(g.edges, e)
		return
	}
	at := *index
	if at < 0 {
		at = 0
	}
	pos := existing[at]
	g.edges = append(g.edges, edge{})
	copy(g.edges[pos+1:], g.edges[pos:])
	g.edges[pos] = e
}

func (g *Graph) addChild(parent NodeID, n Node) (NodeID, error) {
	p, ok := g.nodes[parent]
	if !ok {
		return 0, errs.NewGraphError(errs.NodeNotFound, int(parent))
	}
	if !p.IsGroup() {
		return 0, errs.NewGraphError(errs.NotAGroupNode, int(parent))
	}
	id := g.nextID()
	g.nodes[id] = n
	g.insertChild(parent, id, nil)
	g.markDirty()
	return id, nil
}

// AddRow adds a new Group(Row) child of parent and returns its id.
func (g *Graph) AddRow(parent NodeID) (NodeID, error) { return g.addChild(parent, groupNode(Row)) }

// AddCol adds a new Group(Col) child of parent and returns its id.
func (g *Graph) AddCol(parent NodeID) (NodeID, error) { return g.addChild(parent, groupNode(Col)) }

// AddWindow adds a new Window(win) child of parent and returns its id.
func (g *Graph) AddWindow(parent NodeID, win WindowID) (NodeID, error) {
	return g.addChild(parent, windowNode(win))
}

// DeleteNode removes id, its parent edge, and recursively all of its
// descendants. Deleting the root is not permitted.
func (g *Graph) DeleteNode(id NodeID) error {
	if id == g.root {
		return errs.NewGraphError(errs.NotAGroupNode, int(id))
	}
	if _, ok := g.nodes[id]; !ok {
		return errs.NewGraphError(errs.NodeNotFound, int(id))
	}
	g.deleteSubtree(id)
	g.markDirty()
	return nil
}

func (g *Graph) deleteSubtree(id NodeID) {
	for _, c := range g.GetChildren(id) {
		g.deleteSubtree(c)
	}
	delete(g.nodes, id)
	filtered := g.edges[:0]
	for _, e := range g.edges {
		if e.Child != id && e.Parent != id {
			filtered = append(filtered, e)
		}
	}
	g.edges = filtered
}

// MoveNode removes node's existing parent edge and inserts a new one under
// newParent. If index is nil, node is appended after newParent's existing
// children; otherwise it is inserted so that, among newParent's existing
// children, the index-th position (0-based) is taken by node. Moving the
// root is not permitted.
func (g *Graph) MoveNode(newParent, node NodeID, index *int) error {
	if node == g.root {
		return errs.NewGraphError(errs.NotAGroupNode, int(node))
	}
	if _, ok := g.nodes[node]; !ok {
		return errs.NewGraphError(errs.NodeNotFound, int(node))
	}
	np, ok := g.nodes[newParent]
	if !ok {
		return errs.NewGraphError(errs.NodeNotFound, int(newParent))
	}
	if !np.IsGroup() {
		return errs.NewGraphError(errs.NotAGroupNode, int(newParent))
	}
	if pi := g.parentEdgeIndex(node); pi >= 0 {
		g.edges = append(g.edges[:pi], g.edges[pi+1:]...)
	}
	g.insertChild(newParent, node, index)
	g.markDirty()
	return nil
}

// SwapNodes rewrites every edge naming a as child to name b, and every
// edge naming b as child to name a, leaving each node's own subtree
// (and position among its new siblings) otherwise untouched. Both ids
// must exist and neither may be the root.
func (g *Graph) SwapNodes(a, b NodeID) error {
	if _, ok := g.nodes[a]; !ok {
		return errs.NewGraphError(errs.NodeNotFound, int(a))
	}
	if _, ok := g.nodes[b]; !ok {
		return errs.NewGraphError(errs.NodeNotFound, int(b))
	}
	ai := g.parentEdgeIndex(a)
	bi := g.parentEdgeIndex(b)
	if ai < 0 {
		return errs.NewGraphError(errs.NotAGroupNode, int(a))
	}
	if bi < 0 {
		return errs.NewGraphError(errs.NotAGroupNode, int(b))
	}
	g.edges[ai].Child = b
	g.edges[bi].Child = a
	g.markDirty()
	return nil
}

// GetWindowNode returns the id of the node wrapping win, if any.
func (g *Graph) GetWindowNode(win WindowID) (NodeID, bool) {
	for id, n := range g.nodes {
		if n.IsWindow() && n.windowID == win {
			return id, true
		}
	}
	return 0, false
}
