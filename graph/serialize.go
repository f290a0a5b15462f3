package graph

// NodeRecord is a flattened view of one graph node, used by session
// serialization, which otherwise has no access to a Graph's internal
// node representation.
type NodeRecord struct {
	ID       NodeID
	IsWindow bool
	Group    GroupKind
	WindowID WindowID
}

// EdgeRecord is a flattened (child, parent) pair, matching the session
// file's edge-paragraph order (child first).
type EdgeRecord struct {
	Child  NodeID
	Parent NodeID
}

// Nodes returns every node in the graph, in no particular order.
func (g *Graph) Nodes() []NodeRecord {
	out := make([]NodeRecord, 0, len(g.nodes))
	for id, n := range g.nodes {
		out = append(out, NodeRecord{ID: id, IsWindow: n.IsWindow(), Group: n.group, WindowID: n.windowID})
	}
	return out
}

// Edges returns every parent edge, child first, in edge-list order.
func (g *Graph) Edges() []EdgeRecord {
	out := make([]EdgeRecord, len(g.edges))
	for i, e := range g.edges {
		out[i] = EdgeRecord{Child: e.Child, Parent: e.Parent}
	}
	return out
}

// Rebuild reconstructs a Graph from previously-serialized node and edge
// records, preserving every node id exactly and setting max_id to the
// largest id present; the rebuilt graph starts clean (dirty == false).
func Rebuild(root NodeID, nodes []NodeRecord, edges []EdgeRecord) *Graph {
	g := &Graph{nodes: map[NodeID]Node{}, root: root}
	for _, r := range nodes {
		if r.ID > g.maxID {
			g.maxID = r.ID
		}
		if r.IsWindow {
			g.nodes[r.ID] = windowNode(r.WindowID)
		} else {
			g.nodes[r.ID] = groupNode(r.Group)
		}
	}
	for _, e := range edges {
		g.edges = append(g.edges, edge{Parent: e.Parent, Child: e.Child})
	}
	g.dirty = false
	return g
}
