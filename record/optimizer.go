package record

import (
	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/opcode"
	"github.com/gogpu/picrec/internal/restack"
)

// commandInfo mirrors SkPictureRecord.cpp's CommandInfo: the opcode, size
// and start offset of one command matched by the pattern matcher.
type commandInfo struct {
	op     opcode.Op
	offset uint32
	size   uint32
}

// patternSlot is one element of a pattern passed to matchPattern: either a
// specific opcode or the "bitmap flavor" wildcard matching any of the
// four draw_bitmap* variants.
type patternSlot struct {
	op        opcode.Op
	anyBitmap bool
}

func slot(op opcode.Op) patternSlot { return patternSlot{op: op} }
func bitmapFlavor() patternSlot     { return patternSlot{anyBitmap: true} }

// peekOpAndSize reads the opcode and true size of the command starting at
// offset, following the extended-size word when present.
func peekOpAndSize(w writerPeeker, offset uint32) (opcode.Op, uint32) {
	header := w.ReadU32At(offset)
	op, size := opcode.UnpackHeader(header)
	if size == opcode.SizeOverflowSentinel {
		size = w.ReadU32At(offset + 4)
	}
	return op, size
}

// writerPeeker is the subset of *stream.Writer the optimizer needs; kept
// as an interface only so optimizer_test.go can exercise matchPattern
// against a hand-built buffer without constructing a full encoder.
type writerPeeker interface {
	ReadU32At(off uint32) uint32
	Len() uint32
}

// matchPattern walks forward from offset, skipping noops, comparing each
// command's opcode against the corresponding pattern slot. It succeeds
// only if every slot matches in order and the final matched command ends
// exactly at the stream's current end.
func matchPattern(w writerPeeker, offset uint32, pattern []patternSlot) ([]commandInfo, bool) {
	result := make([]commandInfo, 0, len(pattern))
	cur := offset
	for _, want := range pattern {
		if cur >= w.Len() {
			return nil, false
		}
		op, size := peekOpAndSize(w, cur)
		for op == opcode.Noop && cur < w.Len() {
			cur += size
			if cur >= w.Len() {
				return nil, false
			}
			op, size = peekOpAndSize(w, cur)
		}
		if want.anyBitmap {
			if !op.IsBitmapFlavor() {
				return nil, false
			}
		} else if op != want.op {
			return nil, false
		}
		result = append(result, commandInfo{op: op, offset: cur, size: size})
		cur += size
	}
	if cur != w.Len() {
		return nil, false
	}
	return result, true
}

// optimizer runs the fixed, ordered peephole transform list at each
// restore. It holds only what the transforms need: the
// encoder (stream + paint dictionary) and the optional BBH/state-tree
// collaborators.
type optimizer struct {
	e   *encoder
	bbh BoundingHierarchy
	st  StateTree
}

// tryOptimize attempts each transform in order against the save level
// whose raw restore-offset-stack entry is rawTop. rawTop
// may be a positive "most recent clip slot" offset or a non-positive
// negated save offset; tryOptimize resolves it back to the save command's
// own offset via a read-only walk before running any transform, mirroring
// SkPictureRecord::restore passing fRestoreOffsetStack.top() straight to
// each gPictureRecordOpts proc. Returns true if an optimization fired, in
// which case the caller must NOT emit a restore command.
func (o *optimizer) tryOptimize(rawTop int64, hasBBH bool) bool {
	saveOffset := restack.ResolveSaveOffset(o.e.w.ReadU32At, rawTop)
	if !hasBBH && o.collapseSaveClipRestore(saveOffset) {
		return true
	}
	if o.removeSaveLayer1(saveOffset) {
		return true
	}
	if o.removeSaveLayer2(saveOffset) {
		return true
	}
	return false
}

// collapseSaveClipRestore rewinds the whole save/restore span away when
// the save at saveOffset was a plain save with FlagMatrixClip and every
// command since is a matrix or clip op.
func (o *optimizer) collapseSaveClipRestore(saveOffset uint32) bool {
	restoreOffset := o.e.w.Len()

	op, size := peekOpAndSize(o.e.w, saveOffset)
	if op == opcode.SaveLayer {
		return false
	}
	flags := canvas.SaveFlags(o.e.w.ReadU32At(saveOffset + 4))
	if flags != canvas.FlagMatrixClip {
		return false
	}

	cur := saveOffset + size
	for cur < restoreOffset {
		op, sz := peekOpAndSize(o.e.w, cur)
		if !op.IsMatrixOrClip() {
			return false
		}
		cur += sz
	}

	o.e.w.RewindTo(saveOffset)
	if o.bbh != nil {
		o.bbh.RewindInserts(saveOffset)
	}
	Logger().Debug("record: collapsed empty save/clip span", "save_offset", saveOffset)
	return true
}

// dbmPattern is shared by remove_save_layer1/2.
var dbmPattern = bitmapFlavor()

// removeSaveLayer1 folds a save_layer (no bounds), draw_bitmap*, restore
// triple into a single draw_bitmap*.
func (o *optimizer) removeSaveLayer1(saveOffset uint32) bool {
	result, ok := matchPattern(o.e.w, saveOffset, []patternSlot{slot(opcode.SaveLayer), dbmPattern})
	if !ok {
		return false
	}
	if result[0].size == opcode.SaveLayerWithBoundsSize {
		return false
	}
	if o.mergeSaveLayerPaintIntoDrawBitmap(result[0], result[1]) {
		if o.st != nil {
			o.st.SaveCollapsed(saveOffset)
		}
		return true
	}
	return false
}

// removeSaveLayer2 applies the same fold through a nested save/clip_rect
// composition pattern.
func (o *optimizer) removeSaveLayer2(saveOffset uint32) bool {
	result, ok := matchPattern(o.e.w, saveOffset, []patternSlot{
		slot(opcode.SaveLayer), slot(opcode.Save), slot(opcode.ClipRect), dbmPattern, slot(opcode.Restore),
	})
	if !ok {
		return false
	}
	if result[0].size == opcode.SaveLayerWithBoundsSize {
		return false
	}
	if o.mergeSaveLayerPaintIntoDrawBitmap(result[0], result[3]) {
		if o.st != nil {
			o.st.SaveCollapsed(saveOffset)
		}
		return true
	}
	return false
}

// mergeSaveLayerPaintIntoDrawBitmap folds a save_layer's paint into the
// draw_bitmap* it wraps, grounded verbatim on
// merge_savelayer_paint_into_drawbitmp.
func (o *optimizer) mergeSaveLayerPaintIntoDrawBitmap(saveLayerInfo, dbmInfo commandInfo) bool {
	slOffset, _ := opcode.PaintOffset(opcode.SaveLayer, saveLayerInfo.size)
	dbmOffset, _ := opcode.PaintOffset(dbmInfo.op, dbmInfo.size)

	slPaintID := o.e.w.ReadU32At(saveLayerInfo.offset + slOffset)
	dbmPaintID := o.e.w.ReadU32At(dbmInfo.offset + dbmOffset)

	if slPaintID == 0 {
		o.noopSaveLayer(saveLayerInfo.offset)
		return true
	}

	if dbmPaintID == 0 {
		o.noopSaveLayer(saveLayerInfo.offset)
		o.e.w.WriteU32At(dbmInfo.offset+dbmOffset, slPaintID)
		return true
	}

	slPaint := o.e.paints.At(int(slPaintID)).Unflatten()
	if slPaint == nil || !slPaint.IsSimple() {
		return false
	}
	slColor, ok := slPaint.SolidColor()
	if !ok {
		return false
	}
	layerColor := slColor.Opaque()

	dbmPaint := o.e.paints.At(int(dbmPaintID)).Unflatten()
	if dbmPaint == nil {
		return false
	}
	dbmColor, ok := dbmPaint.SolidColor()
	if !ok || dbmColor != layerColor {
		return false
	}

	merged := dbmPaint.Clone()
	merged.Brush = canvas.Solid(dbmColor.WithAlpha(slColor.A))

	newID := o.e.paints.FindAndReturnFlat(merged).Index()
	o.noopSaveLayer(saveLayerInfo.offset)
	o.e.w.WriteU32At(dbmInfo.offset+dbmOffset, uint32(newID))
	Logger().Debug("record: folded save_layer paint into draw_bitmap", "save_layer_offset", saveLayerInfo.offset)
	return true
}

func (o *optimizer) noopSaveLayer(offset uint32) {
	o.e.w.WriteU32At(offset, opcode.ConvertToNoop(o.e.w.ReadU32At(offset)))
}
