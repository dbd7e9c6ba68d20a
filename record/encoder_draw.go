package record

import (
	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/internal/opcode"
)

func packColor32(c canvas.RGBA) uint32 {
	clamp := func(v float64) uint32 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint32(v*255 + 0.5)
	}
	return clamp(c.A)<<24 | clamp(c.R)<<16 | clamp(c.G)<<8 | clamp(c.B)
}

func (e *encoder) writeDrawClear(color canvas.RGBA) uint32 {
	start := e.beginCommand(opcode.DrawClear, 4)
	e.w.AppendU32(packColor32(color))
	return start
}

func (e *encoder) writeDrawPaint(paint *canvas.Paint) uint32 {
	start := e.beginCommand(opcode.DrawPaint, 4)
	e.w.AppendU32(e.paintHandle(paint))
	return start
}

func (e *encoder) writeDrawRect(rect canvas.Rect, paint *canvas.Paint) uint32 {
	start := e.beginCommand(opcode.DrawRect, 4+rectSize)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeRect(rect)
	return start
}

func (e *encoder) writeDrawOval(rect canvas.Rect, paint *canvas.Paint) uint32 {
	start := e.beginCommand(opcode.DrawOval, 4+rectSize)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeRect(rect)
	return start
}

func (e *encoder) writeDrawRRect(rrect canvas.RRect, paint *canvas.Paint) uint32 {
	start := e.beginCommand(opcode.DrawRRect, 4+rrectSize)
	e.w.AppendU32(e.paintHandle(paint))
	e.writeRRect(rrect)
	return start
}

func (e *encoder) writeDrawPath(path *canvas.Path, paint *canvas.Paint) uint32 {
	handle := e.paths.Append(path)
	start := e.beginCommand(opcode.DrawPath, 4+4)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	return start
}

// PointMode selects how draw_points interprets its point array, mirroring
// SkCanvas::PointMode (individual points, a polyline, or a polygon).
type PointMode uint8

const (
	PointModePoints PointMode = iota
	PointModeLines
	PointModePolygon
)

func (e *encoder) writeDrawPoints(mode PointMode, pts []canvas.Point, paint *canvas.Paint) uint32 {
	payload := uint32(4+4+4) + uint32(len(pts))*pointSize
	start := e.beginCommand(opcode.DrawPoints, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(mode))
	e.w.AppendU32(uint32(len(pts)))
	for _, p := range pts {
		e.writePoint(p)
	}
	return start
}

func (e *encoder) writeDrawBitmap(bitmap *canvas.Bitmap, sub canvas.SubRect, x, y float64, paint *canvas.Paint) uint32 {
	handle := e.bitmaps.Insert(bitmap, sub)
	if handle == 0 {
		Logger().Warn("record: draw_bitmap inserted invalid handle", "reason", "nil bitmap or pixel-ref")
	}
	start := e.beginCommand(opcode.DrawBitmap, 4+4+8)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	e.w.AppendF32(float32(x))
	e.w.AppendF32(float32(y))
	return start
}

func (e *encoder) writeDrawBitmapRect(bitmap *canvas.Bitmap, sub canvas.SubRect, src *canvas.Rect, dst canvas.Rect, paint *canvas.Paint) uint32 {
	handle := e.bitmaps.Insert(bitmap, sub)
	hasSrc := src != nil
	payload := uint32(4 + 4 + 4 + rectSize)
	if hasSrc {
		payload += rectSize
	}
	start := e.beginCommand(opcode.DrawBitmapRect, payload)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	e.w.AppendBool(hasSrc)
	if hasSrc {
		e.writeRect(*src)
	}
	e.writeRect(dst)
	return start
}

func (e *encoder) writeDrawBitmapMatrix(bitmap *canvas.Bitmap, sub canvas.SubRect, m canvas.Matrix, paint *canvas.Paint) uint32 {
	handle := e.bitmaps.Insert(bitmap, sub)
	start := e.beginCommand(opcode.DrawBitmapMatrix, 4+4+matrixSize)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	e.writeMatrix(m)
	return start
}

func (e *encoder) writeDrawBitmapNine(bitmap *canvas.Bitmap, sub canvas.SubRect, center, dst canvas.Rect, paint *canvas.Paint) uint32 {
	handle := e.bitmaps.Insert(bitmap, sub)
	start := e.beginCommand(opcode.DrawBitmapNine, 4+4+rectSize+rectSize)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	e.writeRect(center)
	e.writeRect(dst)
	return start
}

func (e *encoder) writeDrawSprite(bitmap *canvas.Bitmap, sub canvas.SubRect, left, top int, paint *canvas.Paint) uint32 {
	handle := e.bitmaps.Insert(bitmap, sub)
	start := e.beginCommand(opcode.DrawSprite, 4+4+8)
	e.w.AppendU32(e.paintHandle(paint))
	e.w.AppendU32(uint32(handle))
	e.w.AppendU32(uint32(int32(left)))
	e.w.AppendU32(uint32(int32(top)))
	return start
}

func (e *encoder) writeDrawPicture(picture *canvas.Picture) uint32 {
	handle := e.pictures.Insert(picture)
	start := e.beginCommand(opcode.DrawPicture, 4)
	e.w.AppendU32(uint32(handle))
	return start
}

func (e *encoder) writeDrawData(data []byte) uint32 {
	start := e.beginCommand(opcode.DrawData, 4+uint32(align4(len(data))))
	e.w.AppendU32(uint32(len(data)))
	e.w.AppendPadded(data)
	return start
}

func (e *encoder) writeBeginCommentGroup(description string) uint32 {
	start := e.beginCommand(opcode.BeginCommentGroup, 4+uint32(align4(len(description))))
	e.w.AppendString(description)
	return start
}

func (e *encoder) writeAddComment(key, value string) uint32 {
	payload := 4 + uint32(align4(len(key))) + 4 + uint32(align4(len(value)))
	start := e.beginCommand(opcode.AddComment, payload)
	e.w.AppendString(key)
	e.w.AppendString(value)
	return start
}

func (e *encoder) writeEndCommentGroup() uint32 {
	return e.beginCommand(opcode.EndCommentGroup, 0)
}
