package canvas

// RegionOp names how a clip combines with the existing clip, matching
// SkRegion::Op's six-member enum verbatim.
type RegionOp uint8

const (
	RegionOpDifference RegionOp = iota
	RegionOpIntersect
	RegionOpUnion
	RegionOpXOR
	RegionOpReverseDifference
	RegionOpReplace
)

// Expands reports whether this op can enlarge the clip region (union,
// xor, reverse-difference, replace). Reproduced verbatim from
// SkPictureRecord.cpp's regionOpExpands. Every clip recorded inside an
// open save gets a restore-offset placeholder; a clip whose op expands
// first zeroes the placeholders already in the chain, since a
// playback-time skip must not skip over a clip that might expand what it
// is allowed to draw into.
func (op RegionOp) Expands() bool {
	switch op {
	case RegionOpUnion, RegionOpXOR, RegionOpReverseDifference, RegionOpReplace:
		return true
	case RegionOpIntersect, RegionOpDifference:
		return false
	default:
		return false
	}
}

// Region is an opaque clip region, carried only so clip_region commands
// have a payload to serialize; the recorder never evaluates region
// membership itself.
type Region struct {
	Bounds Rect
	// Encoded is a caller-supplied serialization of the region's interior
	// (scanline runs, a path, whatever the host canvas uses). The
	// recorder treats it as an opaque blob.
	Encoded []byte
}

// Bytes returns a stable encoding of the region.
func (r Region) Bytes() []byte {
	out := make([]byte, 0, 32+len(r.Encoded))
	rb := r.Bounds.Bytes()
	out = append(out, rb[:]...)
	out = append(out, r.Encoded...)
	return out
}
