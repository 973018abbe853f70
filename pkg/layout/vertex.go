package layout

import "github.com/kokodio/tdd/pkg/geom"

// Vertex is a candidate anchor on the boundary of a placed rectangle.
//
// Location is a corner of the rectangle, Length the length of the edge that
// starts at that corner, and Direction selects which corner it is and how a
// new rectangle is attached to it (see [Vertex.Anchor]).
type Vertex struct {
	Location  geom.Point `json:"location"`
	Length    int        `json:"length"`
	Direction Direction  `json:"direction"`
}

// VertexAt returns the vertex of r for direction d:
//
//	Up:    top-left corner,     length = width
//	Right: top-right corner,    length = height
//	Down:  bottom-right corner, length = width
//	Left:  bottom-left corner,  length = height
func VertexAt(r geom.Rectangle, d Direction) Vertex {
	switch d {
	case Up:
		return Vertex{Location: geom.Pt(r.Left(), r.Top()), Length: r.Width(), Direction: Up}
	case Right:
		return Vertex{Location: geom.Pt(r.Right(), r.Top()), Length: r.Height(), Direction: Right}
	case Down:
		return Vertex{Location: geom.Pt(r.Right(), r.Bottom()), Length: r.Width(), Direction: Down}
	case Left:
		return Vertex{Location: geom.Pt(r.Left(), r.Bottom()), Length: r.Height(), Direction: Left}
	}
	panic("layout: invalid direction " + d.String())
}

// Vertices returns the four vertices of r. The batch starts one rotation
// past start and walks the full cycle, so every direction appears once.
func Vertices(r geom.Rectangle, start Direction) [4]Vertex {
	var out [4]Vertex
	d := start
	for i := range out {
		d = d.Next()
		out[i] = VertexAt(r, d)
	}
	return out
}

// Anchor returns the top-left corner of a rectangle of the given size
// attached to v. Up places it above the corner, Right to the right, Down
// below and Left to the left, each flush with the corner.
func (v Vertex) Anchor(size geom.Size) geom.Point {
	p := v.Location
	switch v.Direction {
	case Up:
		return geom.Pt(p.X, p.Y-size.Height)
	case Right:
		return p
	case Down:
		return geom.Pt(p.X-size.Width, p.Y)
	case Left:
		return geom.Pt(p.X-size.Width, p.Y-size.Height)
	}
	panic("layout: invalid direction " + v.Direction.String())
}

// Candidate returns the rectangle of the given size anchored at v.
func (v Vertex) Candidate(size geom.Size) geom.Rectangle {
	return geom.Rectangle{Location: v.Anchor(size), Size: size}
}
