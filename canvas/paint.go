package canvas

import "fmt"

// Brush represents what a paint fills or strokes with. Sealed the way gg's
// brush.go seals its Brush interface — only types in this package may
// implement it — because the Flat Dictionary and the save-layer paint
// merge rule both need to exhaustively switch on brush kind.
type Brush interface {
	brushMarker()
}

// SolidBrush is a single solid color. It is the only brush kind the
// "simple paint" predicate accepts.
type SolidBrush struct {
	Color RGBA
}

func (SolidBrush) brushMarker() {}

// Solid creates a SolidBrush.
func Solid(c RGBA) SolidBrush { return SolidBrush{Color: c} }

// GradientBrush is a linear or radial gradient. Adapted from gg's brush
// family; the recorder never samples it, it only needs to serialize it and
// exclude it from the simple-paint fast path.
type GradientBrush struct {
	Stops      []GradientStop
	Start, End Point
	Radial     bool
}

// GradientStop is one color stop in a gradient.
type GradientStop struct {
	Offset float64
	Color  RGBA
}

func (GradientBrush) brushMarker() {}

// PatternBrush tiles a bitmap. Like GradientBrush, carried only for
// serialization purposes.
type PatternBrush struct {
	Bitmap *Bitmap
}

func (PatternBrush) brushMarker() {}

// Effects bundles the paint sub-objects whose mere presence disqualifies a
// paint from the "simple paint" fast path: SkPaint's shader, mask filter,
// color filter, xfer mode, path effect, rasterizer, looper and image
// filter all collapse into "is Effects nil" here.
type Effects struct {
	XferMode        XferMode
	PathEffect      []float64 // dash intervals; nil means no path effect
	MaskBlurSigma   float64
	ColorFilter     *ColorFilterDesc
	ImageFilterDesc string
}

// XferMode names a transfer (blend) mode.
type XferMode int

const (
	XferModeSrcOver XferMode = iota
	XferModeSrc
	XferModeMultiply
	XferModeScreen
)

// ColorFilterDesc is an opaque descriptor for a color filter; the recorder
// never interprets it, only hashes its Bytes for the Flat Dictionary key.
type ColorFilterDesc struct {
	Kind  string
	Bytes []byte
}

type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

type PaintStyle int

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
	PaintStyleStrokeAndFill
)

// Paint is the canvas-side paint the recorder serializes into the Flat
// Dictionary. Trimmed from gg's Paint: gg's Pattern/legacy-compat fields
// are dropped, and an Effects bundle replaces the would-be shader/filter
// fields gg never needed because it always rasterizes immediately.
type Paint struct {
	Brush      Brush
	Style      PaintStyle
	LineWidth  float64
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64
	FillRule   FillRule
	Antialias  bool
	Effects    *Effects
}

// NewPaint returns a paint with gg's own defaults (black fill, hairline
// stroke width of 1, miter joins, antialiased).
func NewPaint() *Paint {
	return &Paint{
		Brush:      Solid(Black),
		Style:      PaintStyleFill,
		LineWidth:  1.0,
		LineCap:    LineCapButt,
		LineJoin:   LineJoinMiter,
		MiterLimit: 10.0,
		FillRule:   FillRuleNonZero,
		Antialias:  true,
	}
}

// Clone returns a deep-enough copy for the recorder's purposes (Effects is
// shared, since the recorder never mutates a paint's Effects in place).
func (p *Paint) Clone() *Paint {
	c := *p
	return &c
}

// IsSimple reports whether this paint qualifies for the save-layer merge
// optimization: no effects, and a solid-color brush. This is the Go-shaped
// equivalent of SkPaint::isSimple (no shader, no mask filter, no color
// filter, no xfermode beyond src-over, no path effect, no rasterizer, no
// looper, no image filter).
func (p *Paint) IsSimple() bool {
	if p.Effects != nil {
		return false
	}
	_, ok := p.Brush.(SolidBrush)
	return ok
}

// SolidColor returns the paint's color and true if its brush is solid.
func (p *Paint) SolidColor() (RGBA, bool) {
	sb, ok := p.Brush.(SolidBrush)
	if !ok {
		return RGBA{}, false
	}
	return sb.Color, true
}

// Bytes returns a stable, content-addressable encoding of the paint's
// observable state. Two paints with equal Bytes are indistinguishable to
// anything downstream, which is exactly the Flat Dictionary's dedup key.
func (p *Paint) Bytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, byte(p.Style), byte(p.LineCap), byte(p.LineJoin), byte(p.FillRule))
	if p.Antialias {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	var f [8]byte
	putFloat64(f[:], p.LineWidth)
	out = append(out, f[:]...)
	putFloat64(f[:], p.MiterLimit)
	out = append(out, f[:]...)
	out = append(out, brushBytes(p.Brush)...)
	if p.Effects != nil {
		out = append(out, 1, byte(p.Effects.XferMode))
		putFloat64(f[:], p.Effects.MaskBlurSigma)
		out = append(out, f[:]...)
		out = append(out, byte(len(p.Effects.PathEffect)))
		for _, v := range p.Effects.PathEffect {
			putFloat64(f[:], v)
			out = append(out, f[:]...)
		}
		if p.Effects.ColorFilter != nil {
			out = append(out, 1)
			putFloat64(f[:], float64(len(p.Effects.ColorFilter.Kind)))
			out = append(out, f[:]...)
			out = append(out, []byte(p.Effects.ColorFilter.Kind)...)
			putFloat64(f[:], float64(len(p.Effects.ColorFilter.Bytes)))
			out = append(out, f[:]...)
			out = append(out, p.Effects.ColorFilter.Bytes...)
		} else {
			out = append(out, 0)
		}
		putFloat64(f[:], float64(len(p.Effects.ImageFilterDesc)))
		out = append(out, f[:]...)
		out = append(out, []byte(p.Effects.ImageFilterDesc)...)
	} else {
		out = append(out, 0)
	}
	return out
}

func brushBytes(b Brush) []byte {
	switch v := b.(type) {
	case SolidBrush:
		out := make([]byte, 1, 33)
		out[0] = 's'
		var f [8]byte
		putFloat64(f[:], v.Color.R)
		out = append(out, f[:]...)
		putFloat64(f[:], v.Color.G)
		out = append(out, f[:]...)
		putFloat64(f[:], v.Color.B)
		out = append(out, f[:]...)
		putFloat64(f[:], v.Color.A)
		out = append(out, f[:]...)
		return out
	case GradientBrush:
		out := []byte{'g'}
		var f [8]byte
		putFloat64(f[:], v.Start.X)
		out = append(out, f[:]...)
		putFloat64(f[:], v.Start.Y)
		out = append(out, f[:]...)
		putFloat64(f[:], v.End.X)
		out = append(out, f[:]...)
		putFloat64(f[:], v.End.Y)
		out = append(out, f[:]...)
		if v.Radial {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
		for _, s := range v.Stops {
			putFloat64(f[:], s.Offset)
			out = append(out, f[:]...)
			out = append(out, brushBytes(Solid(s.Color))...)
		}
		return out
	case PatternBrush:
		out := []byte{'p'}
		return append(out, bitmapBytes(v.Bitmap)...)
	default:
		return []byte{'?'}
	}
}

// bitmapBytes returns a content-addressable key for a pattern brush's
// bitmap: PixelRef identity (the same identity internal/restable/
// bitmaps.go's bitmapKey dedups on) plus dimensions and pixel content, so
// two different bitmaps never collide even when one has a nil PixelRef.
func bitmapBytes(b *Bitmap) []byte {
	if b == nil {
		return []byte{0}
	}
	out := []byte{1}
	out = append(out, []byte(fmt.Sprintf("%p", b.PixelRef))...)
	var f [8]byte
	putFloat64(f[:], float64(b.Width))
	out = append(out, f[:]...)
	putFloat64(f[:], float64(b.Height))
	out = append(out, f[:]...)
	out = append(out, b.Data...)
	return out
}
