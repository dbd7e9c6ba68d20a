package restable

import "github.com/gogpu/picrec/canvas"

// SubPictures is an identity-keyed table of sub-pictures referenced by
// draw_picture commands. On first insert the picture is retained (its
// reference count bumped); a subsequent insert of the same *canvas.Picture
// returns the existing handle and bumps the count again instead of
// appending a duplicate entry.
type SubPictures struct {
	byIdentity map[*canvas.Picture]int
	entries    []*canvas.Picture
}

// Insert returns picture's 1-based handle, bumping its ref count whether
// or not this is the first time picture has been seen.
func (t *SubPictures) Insert(picture *canvas.Picture) int {
	if t.byIdentity == nil {
		t.byIdentity = make(map[*canvas.Picture]int)
	}
	picture.Ref()
	if h, ok := t.byIdentity[picture]; ok {
		return h
	}
	t.entries = append(t.entries, picture)
	h := len(t.entries)
	t.byIdentity[picture] = h
	return h
}

// At returns the picture at the given 1-based handle.
func (t *SubPictures) At(handle int) *canvas.Picture {
	return t.entries[handle-1]
}

// Len returns the number of distinct sub-pictures referenced so far.
func (t *SubPictures) Len() int { return len(t.entries) }
