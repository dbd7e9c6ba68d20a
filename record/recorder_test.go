package record

import (
	"strings"
	"testing"

	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/opcode"
)

func TestBeginEndRecordingCollapsesToEmptyStream(t *testing.T) {
	r := NewRecorder(Options{})
	r.BeginRecording()
	r.EndRecording()

	if got := len(r.Bytes()); got != 0 {
		t.Fatalf("an empty recording produced %d bytes, want 0 (collapsed away)", got)
	}
}

func TestBeginEndRecordingWithDrawsKeepsTheSave(t *testing.T) {
	r := NewRecorder(Options{})
	r.BeginRecording()
	r.DrawClear(canvas.Black)
	r.EndRecording()

	if got := len(r.Bytes()); got == 0 {
		t.Fatalf("a recording with a draw call collapsed to zero bytes")
	}
}

func TestSaveCountTracksDepth(t *testing.T) {
	r := NewRecorder(Options{})
	if r.SaveCount() != 0 {
		t.Fatalf("fresh recorder SaveCount = %d, want 0", r.SaveCount())
	}
	d1 := r.Save(canvas.SaveFlags(0))
	if d1 != 1 {
		t.Fatalf("Save returned depth %d, want 1", d1)
	}
	d2 := r.Save(canvas.SaveFlags(0))
	if d2 != 2 {
		t.Fatalf("nested Save returned depth %d, want 2", d2)
	}
	r.Restore()
	if r.SaveCount() != 1 {
		t.Fatalf("SaveCount after one Restore = %d, want 1", r.SaveCount())
	}
	r.Restore()
	if r.SaveCount() != 0 {
		t.Fatalf("SaveCount after both Restores = %d, want 0", r.SaveCount())
	}
}

func TestRestoreWithoutMatchingSaveIsANoop(t *testing.T) {
	r := NewRecorder(Options{})
	before := len(r.Bytes())
	r.Restore() // no Save/BeginRecording preceded this
	if got := len(r.Bytes()); got != before {
		t.Fatalf("unmatched Restore wrote %d bytes, want 0", got-before)
	}
}

func TestIsDrawingToLayerTracksFirstSaveLayer(t *testing.T) {
	r := NewRecorder(Options{})
	if r.IsDrawingToLayer() {
		t.Fatalf("fresh recorder reports IsDrawingToLayer")
	}
	r.Save(canvas.SaveFlags(0))
	if r.IsDrawingToLayer() {
		t.Fatalf("a plain Save reports IsDrawingToLayer")
	}
	r.SaveLayer(nil, nil)
	if !r.IsDrawingToLayer() {
		t.Fatalf("after SaveLayer, IsDrawingToLayer should be true")
	}
	r.Restore()
	if !r.IsDrawingToLayer() {
		t.Fatalf("restoring an inner save should not clear IsDrawingToLayer while the layer's save is still open")
	}
	r.Restore()
	if r.IsDrawingToLayer() {
		t.Fatalf("restoring the save_layer itself should clear IsDrawingToLayer")
	}
}

func TestMatrixTracksConcatTranslateScaleRotate(t *testing.T) {
	r := NewRecorder(Options{})
	if !r.Matrix().IsIdentity() {
		t.Fatalf("fresh recorder matrix is not identity")
	}
	r.Translate(5, 7)
	x, y := r.Matrix().TransformPoint(0, 0)
	if x != 5 || y != 7 {
		t.Fatalf("after Translate(5,7), origin maps to (%v,%v), want (5,7)", x, y)
	}
}

func TestSaveRestoreRoundTripsMatrixAndClip(t *testing.T) {
	r := NewRecorder(Options{})
	r.ClipRect(canvas.NewRect(0, 0, 100, 100), canvas.RegionOpIntersect, true)
	before := r.Matrix()
	beforeClip := r.ClipBounds()

	r.Save(canvas.SaveFlags(0))
	r.Translate(10, 10)
	r.ClipRect(canvas.NewRect(0, 0, 5, 5), canvas.RegionOpIntersect, true)
	r.Restore()

	if r.Matrix() != before {
		t.Fatalf("matrix after Restore = %v, want %v", r.Matrix(), before)
	}
	if r.ClipBounds() != beforeClip {
		t.Fatalf("clip bounds after Restore = %v, want %v", r.ClipBounds(), beforeClip)
	}
}

func TestClipRectIntersectNarrowsBounds(t *testing.T) {
	r := NewRecorder(Options{})
	r.ClipRect(canvas.NewRect(0, 0, 100, 100), canvas.RegionOpIntersect, true)
	r.ClipRect(canvas.NewRect(50, 50, 150, 150), canvas.RegionOpIntersect, true)

	got := r.ClipBounds()
	want := canvas.Rect{Left: 50, Top: 50, Right: 100, Bottom: 100}
	if got != want {
		t.Fatalf("clip bounds = %v, want %v", got, want)
	}
}

func TestClipRRectDegenerateToRectRedirectsAtRecorderLevel(t *testing.T) {
	r := NewRecorder(Options{})
	rrect := canvas.RRect{Rect: canvas.NewRect(0, 0, 10, 10)}
	r.ClipRRect(rrect, canvas.RegionOpIntersect, true)

	reader := newHeaderOnlyReader(r.Bytes())
	op, _ := reader(0)
	if op != opcode.ClipRect {
		t.Fatalf("degenerate clip_rrect recorded as %v, want clip_rect", op)
	}
}

func TestClipPathConservativeUpdateGatedByOption(t *testing.T) {
	path := canvas.NewPathBuilder().MoveTo(10, 10).LineTo(20, 10).LineTo(20, 20).Close().Build()

	withOpt := NewRecorder(Options{UsePathBoundsForClip: true})
	withOpt.ClipPath(path, canvas.RegionOpIntersect, true)
	fresh := NewRecorder(Options{}).ClipBounds()
	if withOpt.ClipBounds() == fresh {
		t.Fatalf("UsePathBoundsForClip=true should narrow the shadow clip from the path's bounds")
	}

	withoutOpt := NewRecorder(Options{UsePathBoundsForClip: false})
	withoutOpt.ClipPath(path, canvas.RegionOpIntersect, true)
	if withoutOpt.ClipBounds() != fresh {
		t.Fatalf("UsePathBoundsForClip=false should leave the shadow clip untouched")
	}
}

func TestDrawRRectDegenerateRedirectsToDrawRect(t *testing.T) {
	r := NewRecorder(Options{})
	rrect := canvas.RRect{Rect: canvas.NewRect(0, 0, 10, 10)}
	r.DrawRRect(rrect, canvas.NewPaint())

	reader := newHeaderOnlyReader(r.Bytes())
	op, _ := reader(0)
	if op != opcode.DrawRect {
		t.Fatalf("degenerate draw_rrect recorded as %v, want draw_rect", op)
	}
}

func TestRestoreToCountFlushesNestedSaves(t *testing.T) {
	r := NewRecorder(Options{})
	base := r.SaveCount()
	r.Save(canvas.SaveFlags(0))
	r.Save(canvas.SaveFlags(0))
	r.Save(canvas.SaveFlags(0))
	r.RestoreToCount(base)
	if r.SaveCount() != base {
		t.Fatalf("SaveCount after RestoreToCount(%d) = %d", base, r.SaveCount())
	}
}

func TestDisableRecordOptimizationsKeepsEverySave(t *testing.T) {
	r := NewRecorder(Options{DisableRecordOptimizations: true})
	r.BeginRecording()
	r.EndRecording()

	if got := len(r.Bytes()); got == 0 {
		t.Fatalf("with optimizations disabled, an empty save/restore pair should still be recorded, got 0 bytes")
	}
}

func TestRestoreBackpatchesAfterWritingTheRestoreCommand(t *testing.T) {
	r := NewRecorder(Options{})
	r.Save(canvas.FlagMatrixClip)
	r.ClipRect(canvas.NewRect(0, 0, 1, 1), canvas.RegionOpIntersect, true)
	// A draw call keeps the save/clip span from collapsing via
	// collapse_save_clip_restore, which only fires when every command
	// between save and restore is matrix/clip-only.
	r.DrawClear(canvas.Black)

	slotOffsetBeforeRestore := findClipSlotOffset(t, r)
	r.Restore()

	want := uint32(len(r.Bytes()))
	got := readU32(r.Bytes(), slotOffsetBeforeRestore)
	if got != want {
		t.Fatalf("restore-jump slot backpatched to %d, want %d (offset of the byte after the restore)", got, want)
	}
}

func readU32(buf []byte, off uint32) uint32 {
	b := buf[off : off+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// findClipSlotOffset locates the restore-jump slot the just-recorded
// clip_rect reserved: the last 4 bytes of its command.
func findClipSlotOffset(t *testing.T, r *Recorder) uint32 {
	t.Helper()
	buf := r.Bytes()
	reader := newHeaderOnlyReader(buf)
	var off uint32
	var lastClipEnd uint32
	for off < uint32(len(buf)) {
		op, size := reader(off)
		if op == opcode.ClipRect {
			lastClipEnd = off + size
		}
		off += size
	}
	if lastClipEnd == 0 {
		t.Fatalf("no clip_rect found in %v", buf)
	}
	return lastClipEnd - 4
}

// newHeaderOnlyReader returns a function reading (op, size) at an
// arbitrary offset into buf, following the extended-size word when the
// inline 24-bit field overflowed.
func newHeaderOnlyReader(buf []byte) func(off uint32) (opcode.Op, uint32) {
	return func(off uint32) (opcode.Op, uint32) {
		header := readU32(buf, off)
		op, size := opcode.UnpackHeader(header)
		if size == opcode.SizeOverflowSentinel {
			size = readU32(buf, off+4)
		}
		return op, size
	}
}

func TestCommentGroupRoundTrip(t *testing.T) {
	r := NewRecorder(Options{})
	r.BeginCommentGroup("group")
	r.AddComment("key", "value")
	r.EndCommentGroup()

	reader := newHeaderOnlyReader(r.Bytes())
	var ops []opcode.Op
	var off uint32
	for off < uint32(len(r.Bytes())) {
		op, size := reader(off)
		ops = append(ops, op)
		off += size
	}
	want := []opcode.Op{opcode.BeginCommentGroup, opcode.AddComment, opcode.EndCommentGroup}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
}

func TestStringSummaryReportsPaintCount(t *testing.T) {
	r := NewRecorder(Options{})
	r.DrawRect(canvas.NewRect(0, 0, 1, 1), canvas.NewPaint())
	s := r.String()
	if s == "" {
		t.Fatalf("String() returned empty")
	}
	if !strings.Contains(s, "paints=1") {
		t.Fatalf("String() = %q, want it to report paints=1", s)
	}
}
