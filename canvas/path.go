package canvas

// PathVerb is a single path element kind. Adapted from gg's path.go
// PathElement interface hierarchy (MoveTo/LineTo/QuadTo/CubicTo/Close), but
// collapsed to a closed enum plus a flat point array, since the recorder
// only ever needs to walk, bound and serialize a path — it never draws one.
type PathVerb uint8

const (
	VerbMove PathVerb = iota
	VerbLine
	VerbQuad
	VerbCubic
	VerbClose
)

// NumPoints returns how many (x, y) pairs follow a verb of this kind.
func (v PathVerb) NumPoints() int {
	switch v {
	case VerbMove, VerbLine:
		return 1
	case VerbQuad:
		return 2
	case VerbCubic:
		return 3
	default:
		return 0
	}
}

// Path is an immutable-once-built vector path: a sequence of verbs plus the
// points they consume. Bounds are memoized the first time they're asked
// for, since the recorder's path table may query the same path's bounds
// from more than one clip/draw command.
type Path struct {
	Verbs  []PathVerb
	Points []Point

	bounds      Rect
	boundsValid bool
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// PathBuilder accumulates verbs the way gg's *Path accumulates
// PathElements, but feeds a canvas.Path instead of driving a rasterizer.
type PathBuilder struct {
	path Path
}

// NewPathBuilder returns an empty builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{path: Path{Verbs: make([]PathVerb, 0, 16), Points: make([]Point, 0, 16)}}
}

func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.Verbs = append(b.path.Verbs, VerbMove)
	b.path.Points = append(b.path.Points, Point{x, y})
	return b
}

func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.Verbs = append(b.path.Verbs, VerbLine)
	b.path.Points = append(b.path.Points, Point{x, y})
	return b
}

func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.Verbs = append(b.path.Verbs, VerbQuad)
	b.path.Points = append(b.path.Points, Point{cx, cy}, Point{x, y})
	return b
}

func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.Verbs = append(b.path.Verbs, VerbCubic)
	b.path.Points = append(b.path.Points, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
	return b
}

func (b *PathBuilder) Close() *PathBuilder {
	b.path.Verbs = append(b.path.Verbs, VerbClose)
	return b
}

func (b *PathBuilder) Rectangle(x, y, w, h float64) *PathBuilder {
	return b.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Build finalizes the path. The builder must not be reused afterwards.
func (b *PathBuilder) Build() *Path {
	p := b.path
	return &p
}

// Bounds returns the path's control-point bounding box (not the tight
// curve bounds — control points of a quad/cubic can lie outside the
// rendered curve, same caveat SkPath documents for conservative bounds).
func (p *Path) Bounds() Rect {
	if p.boundsValid {
		return p.bounds
	}
	if len(p.Points) == 0 {
		p.boundsValid = true
		return p.bounds
	}
	r := Rect{Left: p.Points[0].X, Top: p.Points[0].Y, Right: p.Points[0].X, Bottom: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		if pt.X < r.Left {
			r.Left = pt.X
		}
		if pt.X > r.Right {
			r.Right = pt.X
		}
		if pt.Y < r.Top {
			r.Top = pt.Y
		}
		if pt.Y > r.Bottom {
			r.Bottom = pt.Y
		}
	}
	p.bounds = r
	p.boundsValid = true
	return r
}

// Bytes returns a stable encoding of the path: verb count, then each verb
// byte, then each point's two float64s. It is not written into the
// command stream (draw_path and clip_path store a path-table handle) and
// the path table does not dedup; tests use it to check that different
// paths encode differently.
func (p *Path) Bytes() []byte {
	out := make([]byte, 0, 1+len(p.Verbs)+len(p.Points)*16)
	out = append(out, byte(len(p.Verbs)))
	for _, v := range p.Verbs {
		out = append(out, byte(v))
	}
	for _, pt := range p.Points {
		var b [8]byte
		putFloat64(b[:], pt.X)
		out = append(out, b[:]...)
		putFloat64(b[:], pt.Y)
		out = append(out, b[:]...)
	}
	return out
}
