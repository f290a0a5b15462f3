package graph

import "github.com/nog-wm/nog/geom"

// Placement is the rectangle a Render pass assigns to one Window node.
type Placement struct {
	WindowID WindowID
	Rect     geom.Rect
}

// Render walks the graph from the root, splitting area among Row/Col
// groups and returning the rectangle assigned to every Window node.
//
// A Group(Row) splits its rectangle into max(1, len(children)) equal-width
// columns (integer division), with any residual width absorbed into the
// last child; Group(Col) does the analogous vertical split. A Group with
// zero children occupies no area and contributes no placements -- callers
// must not invoke the platform API for it.
func (g *Graph) Render(area geom.Rect) []Placement {
	var out []Placement
	g.renderNode(g.root, area, &out)
	return out
}

func (g *Graph) renderNode(id NodeID, area geom.Rect, out *[]Placement) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	if n.IsWindow() {
		*out = append(*out, Placement{WindowID: n.windowID, Rect: area})
		return
	}

	children := g.GetChildren(id)
	if len(children) == 0 {
		return
	}

	switch n.group {
	case Row:
		g.splitHorizontal(children, area, out)
	case Col:
		g.splitVertical(children, area, out)
	}
}

func (g *Graph) splitHorizontal(children []NodeID, area geom.Rect, out *[]Placement) {
	n := len(children)
	colW := area.Size.W / n
	x := area.Pos.X
	for i, c := range children {
		w := colW
		if i == n-1 {
			w = area.Size.W - colW*(n-1)
		}
		rect := geom.Rect{Pos: geom.Point{X: x, Y: area.Pos.Y}, Size: geom.Size{W: w, H: area.Size.H}}
		g.renderNode(c, rect, out)
		x += w
	}
}

func (g *Graph) splitVertical(children []NodeID, area geom.Rect, out *[]Placement) {
	n := len(children)
	rowH := area.Size.H / n
	y := area.Pos.Y
	for i, c := range children {
		h := rowH
		if i == n-1 {
			h = area.Size.H - rowH*(n-1)
		}
		rect := geom.Rect{Pos: geom.Point{X: area.Pos.X, Y: y}, Size: geom.Size{W: area.Size.W, H: h}}
		g.renderNode(c, rect, out)
		y += h
	}
}
