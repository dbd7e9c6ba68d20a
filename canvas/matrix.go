package canvas

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transform, represented the same way
// golang.org/x/image/draw represents one: six floats in row-major order.
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
//
// Reusing f64.Aff3 instead of a bespoke six-field struct means the
// matrix-to-bytes routine is just "serialize the six floats" and the type
// interoperates directly with any x/image/draw based consumer of the
// replayed stream.
type Matrix f64.Aff3

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{1, 0, 0, 0, 1, 0} }

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix { return Matrix{1, 0, x, 0, 1, y} }

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, 0, sy, 0} }

// Rotate returns a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return Matrix{c, -s, 0, s, c, 0}
}

// Skew returns a shear matrix.
func Skew(sx, sy float64) Matrix { return Matrix{1, sx, 0, sy, 1, 0} }

// Concat returns m followed by other (other applied in m's coordinate
// space, matching the canvas "concat" operation).
func (m Matrix) Concat(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[3],
		m[0]*other[1] + m[1]*other[4],
		m[0]*other[2] + m[1]*other[5] + m[2],
		m[3]*other[0] + m[4]*other[3],
		m[3]*other[1] + m[4]*other[4],
		m[3]*other[2] + m[4]*other[5] + m[5],
	}
}

// TransformPoint applies the transform to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Aff3 returns the underlying x/image/math/f64 representation.
func (m Matrix) Aff3() f64.Aff3 { return f64.Aff3(m) }

// IsIdentity reports whether m performs no transformation.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Bytes returns the stable 48-byte little-endian encoding of the six
// matrix components (as float64), for anywhere a matrix needs to be
// hashed. The command encoder does not use it: set_matrix and concat
// payloads are written as six 32-bit floats.
func (m Matrix) Bytes() [48]byte {
	var out [48]byte
	for i, v := range m {
		putFloat64(out[i*8:i*8+8], v)
	}
	return out
}

func putFloat64(dst []byte, v float64) {
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		dst[i] = byte(bits >> (8 * i))
	}
}

// Rect is an axis-aligned rectangle in (left, top, right, bottom) order.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a rectangle from a position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Bytes returns the stable 32-byte encoding of the four scalars.
func (r Rect) Bytes() [32]byte {
	var out [32]byte
	putFloat64(out[0:8], r.Left)
	putFloat64(out[8:16], r.Top)
	putFloat64(out[16:24], r.Right)
	putFloat64(out[24:32], r.Bottom)
	return out
}

// RRect is an axis-aligned rectangle with per-corner radii (upper-left,
// upper-right, lower-right, lower-left, matching the order the original
// SkRRect serializes its radii in).
type RRect struct {
	Rect             Rect
	RadiusX, RadiusY [4]float64
}

// IsRect reports whether all radii are zero, i.e. the rrect degenerates to
// a plain rect. clipRRect uses this to redirect into clipRect, mirroring
// SkPictureRecord::clipRRect.
func (r RRect) IsRect() bool {
	for i := 0; i < 4; i++ {
		if r.RadiusX[i] != 0 || r.RadiusY[i] != 0 {
			return false
		}
	}
	return true
}

// Bytes returns a stable encoding: the rect followed by the eight radii.
func (r RRect) Bytes() []byte {
	out := make([]byte, 0, 32+64)
	rb := r.Rect.Bytes()
	out = append(out, rb[:]...)
	for _, v := range r.RadiusX {
		var b [8]byte
		putFloat64(b[:], v)
		out = append(out, b[:]...)
	}
	for _, v := range r.RadiusY {
		var b [8]byte
		putFloat64(b[:], v)
		out = append(out, b[:]...)
	}
	return out
}
