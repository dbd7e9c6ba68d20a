// Package restable implements the three append-indexed resource tables a
// recorded stream references by handle: Paths (no dedup), Bitmaps (dedup
// by pixel-ref identity + sub-rect), and Sub-Pictures (dedup by pointer
// identity, with a reference-count bump on repeat insert).
package restable

import "github.com/gogpu/picrec/canvas"

// Paths is an append-only table of recorded paths. Handles are insertion
// order, 1-based so 0 can be reserved the way paint/picture handles
// reserve it elsewhere in the stream, even though a path handle of 0
// never appears on the wire (every draw_path command always has a path).
type Paths struct {
	entries []*canvas.Path
}

// Append copies path into the table and returns its handle. No dedup:
// distinct insertions of an identical path always get distinct handles.
func (t *Paths) Append(path *canvas.Path) int {
	c := &canvas.Path{
		Verbs:  append([]canvas.PathVerb(nil), path.Verbs...),
		Points: append([]canvas.Point(nil), path.Points...),
	}
	t.entries = append(t.entries, c)
	return len(t.entries)
}

// At returns the path at the given 1-based handle.
func (t *Paths) At(handle int) *canvas.Path {
	return t.entries[handle-1]
}

// Len returns the number of paths appended so far.
func (t *Paths) Len() int { return len(t.entries) }
