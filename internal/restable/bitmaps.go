package restable

import "github.com/gogpu/picrec/canvas"

// InvalidHandle is the sentinel "invalid slot" handle for a bitmap insert
// that cannot be satisfied (e.g. a nil bitmap): the recorder writes this
// value into the stream so the reader can detect and skip the command,
// and recording continues.
const InvalidHandle = 0

type bitmapKey struct {
	ref any
	sub canvas.SubRect
}

// Bitmaps deduplicates bitmap inserts by pixel-ref identity plus sub-rect:
// two Bitmap values that share a PixelRef and describe the same
// sub-region resolve to the same handle.
type Bitmaps struct {
	byKey   map[bitmapKey]int
	entries []*canvas.Bitmap
}

// Insert returns bitmap's handle, reusing an existing entry when bitmap's
// pixel-ref and sub-rect were already seen. A nil bitmap or nil PixelRef
// returns InvalidHandle without appending anything.
func (t *Bitmaps) Insert(bitmap *canvas.Bitmap, sub canvas.SubRect) int {
	if bitmap == nil || bitmap.PixelRef == nil {
		return InvalidHandle
	}
	if t.byKey == nil {
		t.byKey = make(map[bitmapKey]int)
	}
	key := bitmapKey{ref: bitmap.PixelRef, sub: sub}
	if h, ok := t.byKey[key]; ok {
		return h
	}
	t.entries = append(t.entries, bitmap)
	h := len(t.entries)
	t.byKey[key] = h
	return h
}

// At returns the bitmap at the given 1-based handle.
func (t *Bitmaps) At(handle int) *canvas.Bitmap {
	return t.entries[handle-1]
}

// Len returns the number of distinct bitmaps inserted so far.
func (t *Bitmaps) Len() int { return len(t.entries) }
