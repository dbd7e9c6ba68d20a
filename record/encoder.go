// Package record implements the Op Encoder, Peephole Optimizer and
// Recorder Facade: the package a caller imports to turn a sequence of
// drawing calls into a compact, optimized byte stream.
package record

import (
	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/dict"
	"github.com/gogpu/picrec/internal/opcode"
	"github.com/gogpu/picrec/internal/restable"
	"github.com/gogpu/picrec/internal/restack"
	"github.com/gogpu/picrec/internal/stream"
)

// encoder owns the byte stream and every resource table a command might
// reference. It has no notion of "current matrix/clip" — that shadow
// state lives one layer up, in Recorder — so it can be exercised and
// tested in isolation from the public drawing API.
type encoder struct {
	w        *stream.Writer
	paints   *dict.Dictionary
	paths    restable.Paths
	bitmaps  restable.Bitmaps
	pictures restable.SubPictures
	restack  restack.Stack
}

func newEncoder() *encoder {
	return &encoder{
		w:      stream.NewWriter(),
		paints: dict.NewDictionary(),
	}
}

// paintHandle resolves paint to its dictionary handle, 0 for "no paint".
func (e *encoder) paintHandle(paint *canvas.Paint) uint32 {
	if paint == nil {
		return 0
	}
	return uint32(e.paints.FindAndReturnFlat(paint).Index())
}

// beginCommand writes op's header (including the extended-size word if
// payloadSize pushes the total past the 24-bit field) and returns the
// command's start offset. Callers append exactly payloadSize more bytes
// afterward — that contract is what makes a command's declared size
// always match its actual encoded length, by construction.
func (e *encoder) beginCommand(op opcode.Op, payloadSize uint32) uint32 {
	start := e.w.Len()
	headerBytes := uint32(4)
	if payloadSize+4 >= opcode.SizeOverflowSentinel {
		headerBytes = 8
	}
	total := headerBytes + payloadSize
	e.w.AppendU32(opcode.PackHeader(op, total))
	if headerBytes == 8 {
		e.w.AppendU32(total)
	}
	return start
}

func (e *encoder) writeRect(r canvas.Rect) {
	e.w.AppendF32(float32(r.Left))
	e.w.AppendF32(float32(r.Top))
	e.w.AppendF32(float32(r.Right))
	e.w.AppendF32(float32(r.Bottom))
}

func (e *encoder) writeRRect(r canvas.RRect) {
	e.writeRect(r.Rect)
	for _, v := range r.RadiusX {
		e.w.AppendF32(float32(v))
	}
	for _, v := range r.RadiusY {
		e.w.AppendF32(float32(v))
	}
}

func (e *encoder) writeMatrix(m canvas.Matrix) {
	for _, v := range m {
		e.w.AppendF32(float32(v))
	}
}

func (e *encoder) writePoint(p canvas.Point) {
	e.w.AppendF32(float32(p.X))
	e.w.AppendF32(float32(p.Y))
}

// rectSize, rrectSize and matrixSize are the fixed payload sizes of the
// scalar groups writeRect/writeRRect/writeMatrix append, used by callers
// to compute a command's total payload size up front.
const (
	rectSize   = 4 * 4
	rrectSize  = rectSize + 8*4
	matrixSize = 6 * 4
	pointSize  = 2 * 4
)

// packClipParam packs a clip command's region-op and antialias flag into
// a single u32 word: `(region_op << 1) | antialias`.
func packClipParam(op canvas.RegionOp, antialias bool) uint32 {
	v := uint32(op) << 1
	if antialias {
		v |= 1
	}
	return v
}

func unpackClipParam(v uint32) (op canvas.RegionOp, antialias bool) {
	return canvas.RegionOp(v >> 1), v&1 != 0
}
