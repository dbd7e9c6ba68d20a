// Package dict implements the Flat Dictionary: a content-addressed
// intern table for serialized paints. Same paint bytes always resolve to
// the same 1-based index.
package dict

import "github.com/gogpu/picrec/canvas"

// FlatRef is an interned paint: its dictionary index, its canonical
// bytes, and (lazily) the font top/bottom metrics a text draw needs
// computed only once per distinct paint.
type FlatRef struct {
	index int
	bytes []byte
	paint *canvas.Paint

	metricsValid bool
	fontTop      float32
	fontBottom   float32
}

// Index returns the FlatRef's 1-based dictionary index.
func (f *FlatRef) Index() int { return f.index }

// Bytes returns the paint's canonical serialized form.
func (f *FlatRef) Bytes() []byte { return f.bytes }

// Unflatten returns the copy of the paint that FindAndReturnFlat took when
// this entry was interned (not the caller's own pointer). Go's FlatRef
// keeps the paint value directly rather than SkFlatData's
// flatten/unflatten round trip through a generic object heap, since the
// only consumer (the peephole optimizer's paint merge rule) needs the
// paint's fields, not a byte-for-byte reconstruction.
func (f *FlatRef) Unflatten() *canvas.Paint { return f.paint }

// FontMetrics returns the cached font top/bottom for this paint,
// computing and caching them via compute on first use. Mirrors
// SkFlatData's cached "top"/"bottom" used by fast text-bounds opcodes.
func (f *FlatRef) FontMetrics(compute func() (top, bottom float32)) (float32, float32) {
	if !f.metricsValid {
		f.fontTop, f.fontBottom = compute()
		f.metricsValid = true
	}
	return f.fontTop, f.fontBottom
}

// Dictionary interns canvas.Paint values by their canonical byte
// encoding. The zero value is ready to use.
type Dictionary struct {
	byBytes map[string]*FlatRef
	entries []*FlatRef // entries[i] has Index() == i+1
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byBytes: make(map[string]*FlatRef)}
}

// FindAndReturnFlat interns paint, returning the existing FlatRef if an
// observably equal paint was already interned, or a freshly appended one
// otherwise. Handle 0 is never returned by this method; callers map a nil
// paint to handle 0 themselves before calling it, since 0 means no paint
// on the wire.
func (d *Dictionary) FindAndReturnFlat(paint *canvas.Paint) *FlatRef {
	if d.byBytes == nil {
		d.byBytes = make(map[string]*FlatRef)
	}
	key := string(paint.Bytes())
	if ref, ok := d.byBytes[key]; ok {
		return ref
	}
	ref := &FlatRef{index: len(d.entries) + 1, bytes: []byte(key), paint: paint.Clone()}
	d.entries = append(d.entries, ref)
	d.byBytes[key] = ref
	return ref
}

// Len returns the number of distinct paints interned so far.
func (d *Dictionary) Len() int { return len(d.entries) }

// At returns the FlatRef at the given 1-based index.
func (d *Dictionary) At(index int) *FlatRef {
	return d.entries[index-1]
}
