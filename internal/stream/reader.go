package stream

import "math"

// Reader walks a finished (or in-progress) Writer's bytes one command
// header at a time. It never interprets payloads, only headers, which is
// all the skippability tests and the optimizer's pattern matcher need.
type Reader struct {
	buf []byte
	off uint32
}

// NewReader wraps a byte slice (typically Writer.Bytes()) for header-only
// traversal.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Offset returns the reader's current position.
func (r *Reader) Offset() uint32 { return r.off }

// Done reports whether the reader has consumed the whole buffer.
func (r *Reader) Done() bool { return int(r.off) >= len(r.buf) }

// ReadU32 reads a little-endian u32 at the reader's current offset and
// advances past it.
func (r *Reader) ReadU32() uint32 {
	b := r.buf[r.off : r.off+4]
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	r.off += 4
	return v
}

// ReadF32 reads a little-endian 32-bit float and advances past it.
func (r *Reader) ReadF32() float32 {
	return math.Float32frombits(r.ReadU32())
}

// Skip advances the reader by n bytes without interpretation.
func (r *Reader) Skip(n uint32) { r.off += n }

// PeekU32At reads a little-endian u32 at an arbitrary offset without
// moving the reader.
func PeekU32At(buf []byte, off uint32) uint32 {
	b := buf[off : off+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
