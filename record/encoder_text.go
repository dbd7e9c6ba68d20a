package record

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/opcode"
)

// canonicalText returns text in Unicode Normalization Form C, so that two
// logically identical strings that merely differ in composed/decomposed
// form always serialize to the same bytes — the same "pure function of
// observable state" requirement the Flat Dictionary imposes on paints.
func canonicalText(text string) []byte {
	return norm.NFC.AppendString(nil, text)
}

func (e *encoder) writeTextBytes(text []byte) {
	e.w.AppendU32(uint32(len(text)))
	e.w.AppendPadded(text)
}

func textPayload(text []byte) uint32 {
	return 4 + uint32(align4(len(text)))
}

// fontMetrics computes a paint's cached font top/bottom via compute,
// reusing the per-FlatRef cache the Flat Dictionary maintains so repeated
// fast-bounds text draws with the same paint only pay the computation
// once.
func (e *encoder) fontMetrics(paint *canvas.Paint, compute func() (top, bottom float32)) (float32, float32) {
	if paint == nil {
		return compute()
	}
	return e.paints.FindAndReturnFlat(paint).FontMetrics(compute)
}

// writeDrawText appends a horizontal text draw. When fast is true (the
// paint has fast-computable bounds) the encoder emits the _TOP_BOTTOM
// variant with two extra scalars derived from the cached font metrics.
func (e *encoder) writeDrawText(text string, x, y float64, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) uint32 {
	canon := canonicalText(text)
	op := opcode.DrawText
	payload := 4 + textPayload(canon) + 8
	var minY, maxY float32
	if fast {
		op = opcode.DrawTextTopBottom
		payload += 8
		top, bottom := e.fontMetrics(paint, computeMetrics)
		minY, maxY = float32(y)+top, float32(y)+bottom
	}
	start := e.beginCommand(op, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeTextBytes(canon)
	e.w.AppendF32(float32(x))
	e.w.AppendF32(float32(y))
	if fast {
		e.w.AppendF32(minY)
		e.w.AppendF32(maxY)
	}
	return start
}

// writeDrawPosText appends a per-glyph-positioned text draw. If every
// point shares the same Y, it rewrites to the horizontal variant storing
// one constant Y plus an array of X's; otherwise it stores
// full (x, y) pairs.
func (e *encoder) writeDrawPosText(text string, points []canvas.Point, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) uint32 {
	canon := canonicalText(text)
	constY, isH := constantY(points)

	if isH {
		return e.writePosTextH(canon, points, constY, paint, fast, computeMetrics)
	}
	return e.writePosTextFull(canon, points, paint, fast, computeMetrics)
}

func constantY(points []canvas.Point) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	y := points[0].Y
	for _, p := range points[1:] {
		if p.Y != y {
			return 0, false
		}
	}
	return y, true
}

func (e *encoder) writePosTextH(canon []byte, points []canvas.Point, constY float64, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) uint32 {
	op := opcode.DrawPosTextH
	payload := 4 + textPayload(canon) + 4 + 4 + uint32(len(points))*4 // paint + text + count + constY + xs
	var minY, maxY float32
	if fast {
		op = opcode.DrawPosTextHTopBottom
		payload += 8
		top, bottom := e.fontMetrics(paint, computeMetrics)
		minY, maxY = float32(constY)+top, float32(constY)+bottom
	}
	start := e.beginCommand(op, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeTextBytes(canon)
	e.w.AppendU32(uint32(len(points)))
	e.w.AppendF32(float32(constY))
	for _, p := range points {
		e.w.AppendF32(float32(p.X))
	}
	if fast {
		e.w.AppendF32(minY)
		e.w.AppendF32(maxY)
	}
	return start
}

func (e *encoder) writePosTextFull(canon []byte, points []canvas.Point, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) uint32 {
	op := opcode.DrawPosText
	payload := 4 + textPayload(canon) + 4 + uint32(len(points))*pointSize
	var minY, maxY float32
	if fast {
		op = opcode.DrawPosTextTopBottom
		payload += 8
		top, bottom := e.fontMetrics(paint, computeMetrics)
		minY, maxY = bounds(points, top, bottom)
	}
	start := e.beginCommand(op, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeTextBytes(canon)
	e.w.AppendU32(uint32(len(points)))
	for _, p := range points {
		e.writePoint(p)
	}
	if fast {
		e.w.AppendF32(minY)
		e.w.AppendF32(maxY)
	}
	return start
}

func bounds(points []canvas.Point, top, bottom float32) (minY, maxY float32) {
	if len(points) == 0 {
		return 0, 0
	}
	minY, maxY = float32(points[0].Y)+top, float32(points[0].Y)+bottom
	for _, p := range points[1:] {
		if v := float32(p.Y) + top; v < minY {
			minY = v
		}
		if v := float32(p.Y) + bottom; v > maxY {
			maxY = v
		}
	}
	return minY, maxY
}

func (e *encoder) writeDrawTextOnPath(text string, path *canvas.Path, matrix *canvas.Matrix, paint *canvas.Paint) uint32 {
	canon := canonicalText(text)
	hasMatrix := matrix != nil
	pathHandle := e.paths.Append(path)
	payload := 4 + textPayload(canon) + 4 + 4
	if hasMatrix {
		payload += matrixSize
	}
	start := e.beginCommand(opcode.DrawTextOnPath, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeTextBytes(canon)
	e.w.AppendU32(uint32(pathHandle))
	e.w.AppendBool(hasMatrix)
	if hasMatrix {
		e.writeMatrix(*matrix)
	}
	return start
}

// Vertex is one entry of a draw_vertices command: a position with
// optional per-vertex color and texture coordinate.
type Vertex struct {
	Pos      canvas.Point
	Color    canvas.RGBA
	HasColor bool
	TexCoord canvas.Point
	HasTex   bool
}

// VertexMode selects the vertex topology, mirroring SkCanvas::VertexMode.
type VertexMode uint8

const (
	VertexModeTriangles VertexMode = iota
	VertexModeTriangleStrip
	VertexModeTriangleFan
)

func (e *encoder) writeDrawVertices(mode VertexMode, verts []Vertex, indices []uint16, paint *canvas.Paint) uint32 {
	hasColors, hasTex := false, false
	if len(verts) > 0 {
		hasColors, hasTex = verts[0].HasColor, verts[0].HasTex
	}
	payload := uint32(4+4+4) + uint32(len(verts))*pointSize // paint + mode + count + positions
	if hasColors {
		payload += uint32(len(verts)) * 4
	}
	if hasTex {
		payload += uint32(len(verts)) * pointSize
	}
	payload += 4 + uint32(len(indices))*4
	start := e.beginCommand(opcode.DrawVertices, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(mode))
	e.w.AppendU32(uint32(len(verts)))
	for _, v := range verts {
		e.writePoint(v.Pos)
	}
	if hasColors {
		for _, v := range verts {
			e.w.AppendU32(packColor32(v.Color))
		}
	}
	if hasTex {
		for _, v := range verts {
			e.writePoint(v.TexCoord)
		}
	}
	e.w.AppendU32(uint32(len(indices)))
	for _, idx := range indices {
		e.w.AppendU32(uint32(idx))
	}
	return start
}
