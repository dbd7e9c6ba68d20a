package canvas

import (
	"math"
	"testing"
)

func TestIdentityIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Fatalf("Identity() should report IsIdentity")
	}
	if Translate(1, 0).IsIdentity() {
		t.Fatalf("a translation should not report IsIdentity")
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Translate(3, 4)
	x, y := m.TransformPoint(1, 1)
	if x != 4 || y != 5 {
		t.Fatalf("Translate(3,4).TransformPoint(1,1) = (%v,%v), want (4,5)", x, y)
	}
}

func TestConcatAppliesInOrder(t *testing.T) {
	m := Translate(10, 0).Concat(Scale(2, 2))
	x, y := m.TransformPoint(1, 1)
	if x != 12 || y != 2 {
		t.Fatalf("Translate then Scale at (1,1) = (%v,%v), want (12,2)", x, y)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	m := Rotate(math.Pi / 2)
	x, y := m.TransformPoint(1, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y-1) > 1e-9 {
		t.Fatalf("Rotate(pi/2) at (1,0) = (%v,%v), want (0,1)", x, y)
	}
}

func TestMatrixBytesDeterministic(t *testing.T) {
	a := Translate(1, 2).Bytes()
	b := Translate(1, 2).Bytes()
	if a != b {
		t.Fatalf("two identical matrices produced different byte encodings")
	}
	c := Translate(1, 3).Bytes()
	if a == c {
		t.Fatalf("two different matrices produced identical byte encodings")
	}
}

func TestRectIsEmpty(t *testing.T) {
	cases := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"positive area", NewRect(0, 0, 10, 10), false},
		{"inverted", Rect{Left: 10, Top: 10, Right: 0, Bottom: 0}, true},
		{"zero width", Rect{Left: 5, Top: 0, Right: 5, Bottom: 10}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.r.IsEmpty(); got != c.want {
				t.Fatalf("IsEmpty() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRRectIsRect(t *testing.T) {
	plain := RRect{Rect: NewRect(0, 0, 10, 10)}
	if !plain.IsRect() {
		t.Fatalf("an rrect with all-zero radii should report IsRect")
	}
	rounded := RRect{Rect: NewRect(0, 0, 10, 10), RadiusX: [4]float64{2, 0, 0, 0}}
	if rounded.IsRect() {
		t.Fatalf("an rrect with a nonzero radius should not report IsRect")
	}
}

func TestRRectBytesIncludesRadii(t *testing.T) {
	base := RRect{Rect: NewRect(0, 0, 10, 10)}
	rounded := RRect{Rect: NewRect(0, 0, 10, 10), RadiusX: [4]float64{2, 2, 2, 2}, RadiusY: [4]float64{2, 2, 2, 2}}
	if string(base.Bytes()) == string(rounded.Bytes()) {
		t.Fatalf("rrects with different radii hashed identically")
	}
	if len(base.Bytes()) != 32+64 {
		t.Fatalf("RRect.Bytes() length = %d, want %d", len(base.Bytes()), 32+64)
	}
}
