package record

import (
	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/opcode"
)

// writeSave appends a save command and pushes a new restore-offset stack
// level rooted at this command's own offset.
func (e *encoder) writeSave(flags canvas.SaveFlags) uint32 {
	start := e.beginCommand(opcode.Save, 4)
	e.w.AppendU32(uint32(flags))
	e.restack.Push(start)
	return start
}

// writeSaveLayer appends a save_layer command. bounds may be nil.
func (e *encoder) writeSaveLayer(bounds *canvas.Rect, paint *canvas.Paint, flags canvas.SaveFlags) uint32 {
	hasBounds := bounds != nil
	payload := uint32(4 + 4 + 4) // hasBounds + paint + flags
	if hasBounds {
		payload += rectSize
	}
	start := e.beginCommand(opcode.SaveLayer, payload)
	e.w.AppendBool(hasBounds)
	if hasBounds {
		e.writeRect(*bounds)
	}
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(flags))
	e.restack.Push(start)
	return start
}

// writeRestore appends an (unoptimized) restore command. Recorder.Restore
// calls this first, then back-patches the restore-offset chain via restack
// with the stream length just after the restore, then pops the stack.
func (e *encoder) writeRestore() uint32 {
	return e.beginCommand(opcode.Restore, 0)
}

// clipExtra returns the extra 4 bytes a clip command reserves for its
// restore-jump slot, present only when there is an open save level.
func (e *encoder) clipExtra() uint32 {
	if e.restack.Empty() {
		return 0
	}
	return 4
}

func (e *encoder) writeClipRect(rect canvas.Rect, op canvas.RegionOp, antialias bool) uint32 {
	start := e.beginCommand(opcode.ClipRect, rectSize+4+e.clipExtra())
	e.writeRect(rect)
	e.w.AppendU32(packClipParam(op, antialias))
	e.restack.RecordRestoreOffsetPlaceholder(e.w, op.Expands())
	return start
}

func (e *encoder) writeClipRRect(rrect canvas.RRect, op canvas.RegionOp, antialias bool) uint32 {
	start := e.beginCommand(opcode.ClipRRect, rrectSize+4+e.clipExtra())
	e.writeRRect(rrect)
	e.w.AppendU32(packClipParam(op, antialias))
	e.restack.RecordRestoreOffsetPlaceholder(e.w, op.Expands())
	return start
}

func (e *encoder) writeClipPath(path *canvas.Path, op canvas.RegionOp, antialias bool) uint32 {
	handle := e.paths.Append(path)
	start := e.beginCommand(opcode.ClipPath, 4+4+e.clipExtra())
	e.w.AppendU32(uint32(handle))
	e.w.AppendU32(packClipParam(op, antialias))
	e.restack.RecordRestoreOffsetPlaceholder(e.w, op.Expands())
	return start
}

func (e *encoder) writeClipRegion(region canvas.Region, op canvas.RegionOp) uint32 {
	body := region.Bytes()
	start := e.beginCommand(opcode.ClipRegion, 4+uint32(align4(len(body)))+4+e.clipExtra())
	e.w.AppendU32(uint32(len(body)))
	e.w.AppendPadded(body)
	e.w.AppendU32(packClipParam(op, false))
	e.restack.RecordRestoreOffsetPlaceholder(e.w, op.Expands())
	return start
}

func (e *encoder) writeConcat(m canvas.Matrix) uint32 {
	start := e.beginCommand(opcode.Concat, matrixSize)
	e.writeMatrix(m)
	return start
}

func (e *encoder) writeSetMatrix(m canvas.Matrix) uint32 {
	start := e.beginCommand(opcode.SetMatrix, matrixSize)
	e.writeMatrix(m)
	return start
}

func (e *encoder) writeTranslate(dx, dy float64) uint32 {
	start := e.beginCommand(opcode.Translate, 8)
	e.w.AppendF32(float32(dx))
	e.w.AppendF32(float32(dy))
	return start
}

func (e *encoder) writeScale(sx, sy float64) uint32 {
	start := e.beginCommand(opcode.Scale, 8)
	e.w.AppendF32(float32(sx))
	e.w.AppendF32(float32(sy))
	return start
}

func (e *encoder) writeRotate(angle float64) uint32 {
	start := e.beginCommand(opcode.Rotate, 4)
	e.w.AppendF32(float32(angle))
	return start
}

func (e *encoder) writeSkew(sx, sy float64) uint32 {
	start := e.beginCommand(opcode.Skew, 8)
	e.w.AppendF32(float32(sx))
	e.w.AppendF32(float32(sy))
	return start
}

func align4(n int) int { return (n + 3) &^ 3 }
