package restack

import (
	"testing"

	"github.com/gogpu/picrec/internal/stream"
)

// TestTwoClipsBothSlotsBackpatched covers two clip_rects inside a save,
// then restore. Both slots should end up holding the offset of the byte
// after the restore.
func TestTwoClipsBothSlotsBackpatched(t *testing.T) {
	w := stream.NewWriter()
	var s Stack

	saveOffset := w.Len()
	s.Push(saveOffset)

	slot1, ok := s.RecordRestoreOffsetPlaceholder(w, false)
	if !ok {
		t.Fatal("expected a slot to be written")
	}
	slot2, ok := s.RecordRestoreOffsetPlaceholder(w, false)
	if !ok {
		t.Fatal("expected a second slot to be written")
	}

	restoreOffset := w.Len() + 4 // where bytes_written will land after the restore command
	s.FillRestoreOffsetPlaceholdersForCurrentStackLevel(w, restoreOffset)
	s.Pop()

	if got := w.ReadU32At(slot1); got != restoreOffset {
		t.Errorf("slot1 = %d, want %d", got, restoreOffset)
	}
	if got := w.ReadU32At(slot2); got != restoreOffset {
		t.Errorf("slot2 = %d, want %d", got, restoreOffset)
	}
}

// TestUnionClipZeroesPriorSlot covers a clip_rect followed by a union
// clip_rect: the union zeroes the prior slot, and after the subsequent
// restore only the union's slot is back-patched.
func TestUnionClipZeroesPriorSlot(t *testing.T) {
	w := stream.NewWriter()
	var s Stack

	s.Push(w.Len())

	firstSlot, _ := s.RecordRestoreOffsetPlaceholder(w, false)
	unionSlot, _ := s.RecordRestoreOffsetPlaceholder(w, true)

	if got := w.ReadU32At(firstSlot); got != 0 {
		t.Fatalf("first slot should be zeroed by the union clip, got %d", got)
	}

	restoreOffset := w.Len() + 4
	s.FillRestoreOffsetPlaceholdersForCurrentStackLevel(w, restoreOffset)
	s.Pop()

	if got := w.ReadU32At(unionSlot); got != restoreOffset {
		t.Errorf("union slot = %d, want %d", got, restoreOffset)
	}
	if got := w.ReadU32At(firstSlot); got != 0 {
		t.Errorf("zeroed slot should stay zeroed after restore, got %d", got)
	}
}

func TestNoOpenSaveReturnsFalse(t *testing.T) {
	w := stream.NewWriter()
	var s Stack
	if _, ok := s.RecordRestoreOffsetPlaceholder(w, false); ok {
		t.Fatal("expected ok=false with no open save level")
	}
}

func TestPushPopDepth(t *testing.T) {
	var s Stack
	if !s.Empty() {
		t.Fatal("new stack should be empty")
	}
	s.Push(0)
	s.Push(4)
	if s.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", s.Depth())
	}
	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", s.Depth())
	}
}
