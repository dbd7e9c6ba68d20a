// Package restack implements the restore-offset stack and its
// stream-embedded back-patching: a singly-linked list of
// 32-bit "restore-jump slots" threaded through already-written clip
// commands, back-patched at restore time so a player can skip an entire
// save block in O(1) once it knows the clip rejects.
//
// Grounded directly on SkPictureRecord.cpp's fRestoreOffsetStack,
// recordRestoreOffsetPlaceholder and fillRestoreOffsetPlaceholdersForCurrentStackLevel.
package restack

import "github.com/gogpu/picrec/internal/stream"

// entry mirrors fRestoreOffsetStack's int32_t convention: a value <= 0
// means "no clip recorded yet at this save level; -value is the save
// command's own offset", a value > 0 means "the offset of the most
// recently emitted restore-jump slot at this level".
type entry int64

// Stack is the per-recording restore-offset stack. The zero value is an
// empty stack.
type Stack struct {
	entries []entry
}

// Push records a new save level starting at saveOffset (the offset the
// save/save_layer command itself was written at).
func (s *Stack) Push(saveOffset uint32) {
	s.entries = append(s.entries, -entry(saveOffset))
}

// Pop discards the current save level's entry, called once its matching
// restore has been fully back-patched.
func (s *Stack) Pop() {
	s.entries = s.entries[:len(s.entries)-1]
}

// Depth returns the number of outstanding save levels.
func (s *Stack) Depth() int { return len(s.entries) }

// Empty reports whether there is no outstanding save level at all.
func (s *Stack) Empty() bool { return len(s.entries) == 0 }

// RecordRestoreOffsetPlaceholder writes a new restore-jump slot for a clip
// command being emitted inside the current save level (the top of the
// stack), threading it onto the existing chain, and returns the offset
// the slot was written at. It returns false if there is no open save
// level at all, which is the caller's cue to reserve the extra 4 bytes
// only when there is one to call this for.
//
// When expands is true (the clip's region op can only grow the clip:
// union, xor, reverse-difference, replace) every existing slot in the
// current chain is first zeroed, disabling its jump, because a clip that
// can expand must not be hideable behind an earlier, possibly-empty
// clip's jump-to-restore.
func (s *Stack) RecordRestoreOffsetPlaceholder(w *stream.Writer, expands bool) (slotOffset uint32, ok bool) {
	if s.Empty() {
		return 0, false
	}
	top := len(s.entries) - 1
	prev := s.entries[top]

	if expands {
		s.fillChain(w, top, 0)
		prev = 0
	}

	off := w.AppendU32(uint32(int64(prev)))
	s.entries[top] = entry(off)
	return off, true
}

// FillRestoreOffsetPlaceholdersForCurrentStackLevel walks the chain at the
// top of the stack, overwriting every slot with restoreOffset (the offset
// the matching restore command will occupy), until it reaches the
// negated save offset that terminates the chain. Called once, at
// restore time, before the stack entry for this level is popped.
func (s *Stack) FillRestoreOffsetPlaceholdersForCurrentStackLevel(w *stream.Writer, restoreOffset uint32) {
	if s.Empty() {
		return
	}
	s.fillChain(w, len(s.entries)-1, restoreOffset)
}

// fillChain walks the slot chain starting at entries[level], overwriting
// each slot with value, stopping once a non-positive link (the negated
// save offset) is reached. entries[level] itself is left untouched; only
// the in-stream slots are rewritten, matching the original's behavior of
// leaving fRestoreOffsetStack.top() for the caller to reset afterward.
func (s *Stack) fillChain(w *stream.Writer, level int, value uint32) {
	offset := s.entries[level]
	for offset > 0 {
		next := w.ReadU32At(uint32(offset))
		w.WriteU32At(uint32(offset), value)
		offset = entry(int32(next))
	}
}

// Top returns the current top-of-stack entry's raw slot offset and
// whether it denotes an open clip chain (true) or points at the save
// command itself with no clips recorded yet (false). Used only by tests.
func (s *Stack) Top() (slotOffset uint32, hasClip bool) {
	top := s.entries[len(s.entries)-1]
	if top > 0 {
		return uint32(top), true
	}
	return uint32(-top), false
}

// PeekRaw returns the current top-of-stack entry's raw value: positive
// means "offset of the most recent clip's restore-jump slot", non-positive
// means "-(save command's own offset)". Optimizations that need to find
// the save command itself walk this value back through the stream (read
// only, before any back-patching has happened) via ResolveSaveOffset.
func (s *Stack) PeekRaw() int64 { return int64(s.entries[len(s.entries)-1]) }

// ResolveSaveOffset walks a raw stack value (as returned by PeekRaw) back
// through the stream's restore-jump chain without mutating anything,
// stopping at the negated save offset that terminates it, and returns
// that save command's own stream offset.
func ResolveSaveOffset(peek func(off uint32) uint32, raw int64) uint32 {
	for raw > 0 {
		raw = int64(int32(peek(uint32(raw))))
	}
	return uint32(-raw)
}
