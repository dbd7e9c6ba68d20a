package record

import (
	"fmt"
	"math"

	"github.com/gogpu/picrec/canvas"
)

// Options carries the flags selected once, at construction, that govern
// how a Recorder behaves for its whole lifetime.
type Options struct {
	// DisableRecordOptimizations bypasses the peephole optimizer list
	// entirely; every save gets a matching restore in the stream.
	DisableRecordOptimizations bool
	// UsePathBoundsForClip selects a conservative, bounds-only update of
	// the shadow canvas's clip for clipPath/clipRRect. When it is false,
	// clipPath/clipRRect leave the shadow clip bounds unchanged; the exact
	// clipped region is not tracked either way.
	UsePathBoundsForClip bool
	// OptimizeForClipPlayback is reserved for future use.
	OptimizeForClipPlayback bool
	// BoundingHierarchy and StateTree are optional replay-time
	// accelerators the optimizer notifies when it rewrites the stream.
	BoundingHierarchy BoundingHierarchy
	StateTree         StateTree
}

const noSavedLayerIndex = -1

// unboundedClip is the shadow canvas's clip bounds before any clip call has
// narrowed it: everything, the intersect identity. The zero Rect can't play
// this role since it IsEmpty, which would make the very first intersecting
// clip collapse to empty instead of adopting its own bounds.
var unboundedClip = canvas.Rect{Left: -math.MaxFloat64, Top: -math.MaxFloat64, Right: math.MaxFloat64, Bottom: math.MaxFloat64}

// canvasState is one entry of the shadow canvas's save stack: everything
// a restore must roll back.
type canvasState struct {
	matrix     canvas.Matrix
	clipBounds canvas.Rect
}

// Recorder is the public drawing API: it delegates every verb to the Op
// Encoder, forwards matrix/clip changes to a shadow canvas, and runs the
// Peephole Optimizer at each Restore. Not safe for concurrent use: a
// Recorder is driven by exactly one goroutine for the lifetime of a
// recording.
type Recorder struct {
	enc  *encoder
	opt  *optimizer
	opts Options

	matrix     canvas.Matrix
	clipBounds canvas.Rect
	stateStack []canvasState

	firstSavedLayerIndex int
	initialSaveCount     int
}

// NewRecorder returns an empty Recorder. Call BeginRecording before
// issuing any drawing calls and EndRecording when done, mirroring
// SkPictureRecord's lifecycle.
func NewRecorder(opts Options) *Recorder {
	enc := newEncoder()
	return &Recorder{
		enc:                  enc,
		opt:                  &optimizer{e: enc, bbh: opts.BoundingHierarchy, st: opts.StateTree},
		opts:                 opts,
		matrix:               canvas.Identity(),
		clipBounds:           unboundedClip,
		firstSavedLayerIndex: noSavedLayerIndex,
		initialSaveCount:     noSavedLayerIndex,
	}
}

// Bytes returns the recorded stream's current contents. The slice aliases
// the recorder's internal buffer and is invalidated by the next call that
// appends to it.
func (r *Recorder) Bytes() []byte { return r.enc.w.Bytes() }

// SaveCount returns the number of outstanding save/save_layer levels.
func (r *Recorder) SaveCount() int { return r.enc.restack.Depth() }

// IsDrawingToLayer reports whether there is an open save_layer on the
// stack.
func (r *Recorder) IsDrawingToLayer() bool {
	return r.firstSavedLayerIndex != noSavedLayerIndex
}

// BeginRecording remembers the current save depth, then emits the
// top-level save the recorder's lifecycle starts with, so EndRecording can
// restore all the way back to the depth recording started at.
func (r *Recorder) BeginRecording() {
	r.initialSaveCount = r.SaveCount()
	r.Save(canvas.FlagMatrixClip)
}

// EndRecording restores back to the depth BeginRecording started at,
// flushing every pending save.
func (r *Recorder) EndRecording() {
	r.RestoreToCount(r.initialSaveCount)
}

// RestoreToCount calls Restore until SaveCount reaches count.
func (r *Recorder) RestoreToCount(count int) {
	for r.SaveCount() > count {
		r.Restore()
	}
}

func (r *Recorder) pushState() {
	r.stateStack = append(r.stateStack, canvasState{matrix: r.matrix, clipBounds: r.clipBounds})
}

func (r *Recorder) popState() {
	n := len(r.stateStack) - 1
	st := r.stateStack[n]
	r.stateStack = r.stateStack[:n]
	r.matrix, r.clipBounds = st.matrix, st.clipBounds
}

// Save pushes the current matrix/clip state and returns the new save
// depth (SaveCount after the push).
func (r *Recorder) Save(flags canvas.SaveFlags) int {
	r.enc.writeSave(flags)
	r.pushState()
	return r.SaveCount()
}

// SaveLayer pushes a new layer, optionally bounded, and returns the new
// save depth.
func (r *Recorder) SaveLayer(bounds *canvas.Rect, paint *canvas.Paint) int {
	r.enc.writeSaveLayer(bounds, paint, canvas.SaveFlags(0))
	r.pushState()
	if r.firstSavedLayerIndex == noSavedLayerIndex {
		r.firstSavedLayerIndex = r.SaveCount()
	}
	return r.SaveCount()
}

// Restore pops the most recent save/save_layer. If the peephole optimizer
// fires, no restore command is written to the stream at all.
func (r *Recorder) Restore() {
	if r.enc.restack.Empty() {
		Logger().Warn("record: Restore called with no matching Save")
		return
	}

	if r.enc.restack.Depth() == r.firstSavedLayerIndex {
		r.firstSavedLayerIndex = noSavedLayerIndex
	}

	rawTop := r.enc.restack.PeekRaw()
	optimized := false
	if !r.opts.DisableRecordOptimizations {
		optimized = r.opt.tryOptimize(rawTop, r.opts.BoundingHierarchy != nil)
	}
	if !optimized {
		r.enc.writeRestore()
		r.enc.restack.FillRestoreOffsetPlaceholdersForCurrentStackLevel(r.enc.w, r.enc.w.Len())
	}
	r.enc.restack.Pop()
	r.popState()
}

func (r *Recorder) ClipRect(rect canvas.Rect, op canvas.RegionOp, antialias bool) {
	r.enc.writeClipRect(rect, op, antialias)
	r.updateClipExact(rect, op)
}

func (r *Recorder) ClipRRect(rrect canvas.RRect, op canvas.RegionOp, antialias bool) {
	if rrect.IsRect() {
		r.ClipRect(rrect.Rect, op, antialias)
		return
	}
	r.enc.writeClipRRect(rrect, op, antialias)
	r.updateClipConservatively(rrect.Rect, op)
}

func (r *Recorder) ClipPath(path *canvas.Path, op canvas.RegionOp, antialias bool) {
	r.enc.writeClipPath(path, op, antialias)
	r.updateClipConservatively(path.Bounds(), op)
}

func (r *Recorder) ClipRegion(region canvas.Region, op canvas.RegionOp) {
	r.enc.writeClipRegion(region, op)
	r.updateClipExact(region.Bounds, op)
}

// updateClipExact intersects/unions clipBounds exactly for rect-shaped
// clips, which always have precise bounds.
func (r *Recorder) updateClipExact(bounds canvas.Rect, op canvas.RegionOp) {
	r.clipBounds = combineClip(r.clipBounds, bounds, op)
}

// updateClipConservatively applies the "use path bounds for clip" option:
// when set, clipPath/clipRRect update the shadow clip using
// only the shape's bounding box (a cheap over-approximation); when unset,
// the shadow clip is left untouched, signaling "unknown, assume nothing
// was excluded" — both are conservative in the sense that they never
// claim a tighter clip than what's really in effect.
func (r *Recorder) updateClipConservatively(bounds canvas.Rect, op canvas.RegionOp) {
	if !r.opts.UsePathBoundsForClip {
		return
	}
	r.clipBounds = combineClip(r.clipBounds, bounds, op)
}

func combineClip(current, bounds canvas.Rect, op canvas.RegionOp) canvas.Rect {
	switch op {
	case canvas.RegionOpIntersect:
		return intersectRect(current, bounds)
	case canvas.RegionOpReplace:
		return bounds
	default:
		// Expanding ops (union, xor, reverse-difference) and difference
		// can only be approximated conservatively by leaving the bounds
		// as the union, matching SkRasterClip's bounds-only fast path.
		return unionRect(current, bounds)
	}
}

func intersectRect(a, b canvas.Rect) canvas.Rect {
	r := canvas.Rect{
		Left: max(a.Left, b.Left), Top: max(a.Top, b.Top),
		Right: min(a.Right, b.Right), Bottom: min(a.Bottom, b.Bottom),
	}
	if r.IsEmpty() {
		return canvas.Rect{}
	}
	return r
}

func unionRect(a, b canvas.Rect) canvas.Rect {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return canvas.Rect{
		Left: min(a.Left, b.Left), Top: min(a.Top, b.Top),
		Right: max(a.Right, b.Right), Bottom: max(a.Bottom, b.Bottom),
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ClipBounds returns the shadow canvas's current (possibly conservative)
// clip bounds.
func (r *Recorder) ClipBounds() canvas.Rect { return r.clipBounds }

// Matrix returns the shadow canvas's current transform.
func (r *Recorder) Matrix() canvas.Matrix { return r.matrix }

func (r *Recorder) Concat(m canvas.Matrix) {
	r.enc.writeConcat(m)
	r.matrix = r.matrix.Concat(m)
}

func (r *Recorder) SetMatrix(m canvas.Matrix) {
	r.enc.writeSetMatrix(m)
	r.matrix = m
}

func (r *Recorder) Translate(dx, dy float64) {
	r.enc.writeTranslate(dx, dy)
	r.matrix = r.matrix.Concat(canvas.Translate(dx, dy))
}

func (r *Recorder) Scale(sx, sy float64) {
	r.enc.writeScale(sx, sy)
	r.matrix = r.matrix.Concat(canvas.Scale(sx, sy))
}

func (r *Recorder) Rotate(angle float64) {
	r.enc.writeRotate(angle)
	r.matrix = r.matrix.Concat(canvas.Rotate(angle))
}

func (r *Recorder) Skew(sx, sy float64) {
	r.enc.writeSkew(sx, sy)
	r.matrix = r.matrix.Concat(canvas.Skew(sx, sy))
}

func (r *Recorder) DrawClear(color canvas.RGBA)                    { r.enc.writeDrawClear(color) }
func (r *Recorder) DrawPaint(paint *canvas.Paint)                  { r.enc.writeDrawPaint(paint) }
func (r *Recorder) DrawRect(rect canvas.Rect, paint *canvas.Paint) { r.enc.writeDrawRect(rect, paint) }
func (r *Recorder) DrawOval(rect canvas.Rect, paint *canvas.Paint) { r.enc.writeDrawOval(rect, paint) }
func (r *Recorder) DrawRRect(rrect canvas.RRect, paint *canvas.Paint) {
	if rrect.IsRect() {
		r.DrawRect(rrect.Rect, paint)
		return
	}
	r.enc.writeDrawRRect(rrect, paint)
}
func (r *Recorder) DrawPath(path *canvas.Path, paint *canvas.Paint) { r.enc.writeDrawPath(path, paint) }
func (r *Recorder) DrawPoints(mode PointMode, pts []canvas.Point, paint *canvas.Paint) {
	r.enc.writeDrawPoints(mode, pts, paint)
}

func (r *Recorder) DrawBitmap(bitmap *canvas.Bitmap, sub canvas.SubRect, x, y float64, paint *canvas.Paint) {
	r.enc.writeDrawBitmap(bitmap, sub, x, y, paint)
}
func (r *Recorder) DrawBitmapRect(bitmap *canvas.Bitmap, sub canvas.SubRect, src *canvas.Rect, dst canvas.Rect, paint *canvas.Paint) {
	r.enc.writeDrawBitmapRect(bitmap, sub, src, dst, paint)
}
func (r *Recorder) DrawBitmapMatrix(bitmap *canvas.Bitmap, sub canvas.SubRect, m canvas.Matrix, paint *canvas.Paint) {
	r.enc.writeDrawBitmapMatrix(bitmap, sub, m, paint)
}
func (r *Recorder) DrawBitmapNine(bitmap *canvas.Bitmap, sub canvas.SubRect, center, dst canvas.Rect, paint *canvas.Paint) {
	r.enc.writeDrawBitmapNine(bitmap, sub, center, dst, paint)
}
func (r *Recorder) DrawSprite(bitmap *canvas.Bitmap, sub canvas.SubRect, left, top int, paint *canvas.Paint) {
	r.enc.writeDrawSprite(bitmap, sub, left, top, paint)
}

func (r *Recorder) DrawText(text string, x, y float64, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) {
	r.enc.writeDrawText(text, x, y, paint, fast, computeMetrics)
}
func (r *Recorder) DrawPosText(text string, points []canvas.Point, paint *canvas.Paint, fast bool, computeMetrics func() (top, bottom float32)) {
	r.enc.writeDrawPosText(text, points, paint, fast, computeMetrics)
}
func (r *Recorder) DrawTextOnPath(text string, path *canvas.Path, matrix *canvas.Matrix, paint *canvas.Paint) {
	r.enc.writeDrawTextOnPath(text, path, matrix, paint)
}

func (r *Recorder) DrawVertices(mode VertexMode, verts []Vertex, indices []uint16, paint *canvas.Paint) {
	r.enc.writeDrawVertices(mode, verts, indices, paint)
}

func (r *Recorder) DrawPicture(picture *canvas.Picture) { r.enc.writeDrawPicture(picture) }
func (r *Recorder) DrawData(data []byte)                { r.enc.writeDrawData(data) }

func (r *Recorder) BeginCommentGroup(description string) { r.enc.writeBeginCommentGroup(description) }
func (r *Recorder) AddComment(key, value string)         { r.enc.writeAddComment(key, value) }
func (r *Recorder) EndCommentGroup()                     { r.enc.writeEndCommentGroup() }

// String renders a short human-readable summary, handy for CLI dumps.
func (r *Recorder) String() string {
	return fmt.Sprintf("Recorder{bytes=%d, saveDepth=%d, paints=%d}", r.enc.w.Len(), r.SaveCount(), r.enc.paints.Len())
}
