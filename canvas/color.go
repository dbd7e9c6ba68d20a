package canvas

// RGBA is a color with components in [0, 1].
//
// Adapted from gg's color.go: kept as a plain value type so paints can be
// interned by value and serialized deterministically.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) RGBA { return RGBA{R: r, G: g, B: b, A: 1} }

// Opaque returns a copy of c with alpha forced to 1.
func (c RGBA) Opaque() RGBA { return RGBA{R: c.R, G: c.G, B: c.B, A: 1} }

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c RGBA) WithAlpha(a float64) RGBA { return RGBA{R: c.R, G: c.G, B: c.B, A: a} }

var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
