// Package geom holds the minimal screen-coordinate types shared by the
// layout graph, the workspace/display render path, and the platform API,
// kept separate from all three so that none of them has to import another
// just to talk about a rectangle.
package geom

// Point is a screen-space position, in pixels, relative to the virtual
// desktop origin.
type Point struct {
	X, Y int
}

// Size is a width/height pair, in pixels.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle described by its top-left corner and
// its size.
type Rect struct {
	Pos  Point
	Size Size
}

// NewRect is a convenience constructor.
func NewRect(x, y, w, h int) Rect {
	return Rect{Pos: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Inset shrinks r by n on every side. A negative n grows it.
func (r Rect) Inset(n int) Rect {
	return Rect{
		Pos:  Point{X: r.Pos.X + n, Y: r.Pos.Y + n},
		Size: Size{W: r.Size.W - 2*n, H: r.Size.H - 2*n},
	}
}
