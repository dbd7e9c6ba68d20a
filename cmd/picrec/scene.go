package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/record"
)

// sceneOp is one entry of a scene script: a discriminated union over every
// drawing call the CLI knows how to replay, decoded from a single flat YAML
// mapping keyed by "op". Fields irrelevant to a given op are simply left
// zero in the YAML and ignored here.
type sceneOp struct {
	Op string `yaml:"op"`

	Flags []string `yaml:"flags,omitempty"`

	Rect      []float64 `yaml:"rect,omitempty"`       // left, top, right, bottom
	Radii     []float64 `yaml:"radii,omitempty"`      // ul, ur, lr, ll (same value used for x and y)
	Color     []float64 `yaml:"color,omitempty"`      // r, g, b, a in [0, 1]
	RegionOp  string    `yaml:"region_op,omitempty"`
	Antialias bool      `yaml:"antialias,omitempty"`

	DX    float64 `yaml:"dx,omitempty"`
	DY    float64 `yaml:"dy,omitempty"`
	SX    float64 `yaml:"sx,omitempty"`
	SY    float64 `yaml:"sy,omitempty"`
	Angle float64 `yaml:"angle,omitempty"`

	Text string  `yaml:"text,omitempty"`
	X    float64 `yaml:"x,omitempty"`
	Y    float64 `yaml:"y,omitempty"`

	Comment string `yaml:"comment,omitempty"`
	Key     string `yaml:"key,omitempty"`
	Value   string `yaml:"value,omitempty"`
}

// scene is the top-level YAML document: a named sequence of ops.
type scene struct {
	Name string    `yaml:"name"`
	Ops  []sceneOp `yaml:"ops"`
}

func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene script: %w", err)
	}
	var s scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene script: %w", err)
	}
	return &s, nil
}

var regionOps = map[string]canvas.RegionOp{
	"difference":          canvas.RegionOpDifference,
	"intersect":           canvas.RegionOpIntersect,
	"union":               canvas.RegionOpUnion,
	"xor":                 canvas.RegionOpXOR,
	"reverse_difference":  canvas.RegionOpReverseDifference,
	"replace":             canvas.RegionOpReplace,
}

var saveFlagBits = map[string]canvas.SaveFlags{
	"has_alpha_layer":  canvas.FlagHasAlphaLayer,
	"full_color_layer": canvas.FlagFullColorLayer,
	"clip_to_layer":    canvas.FlagClipToLayer,
	"matrix_clip":      canvas.FlagMatrixClip,
}

func parseRegionOp(name string) (canvas.RegionOp, error) {
	if name == "" {
		return canvas.RegionOpIntersect, nil
	}
	op, ok := regionOps[name]
	if !ok {
		return 0, fmt.Errorf("unknown region_op %q", name)
	}
	return op, nil
}

func parseFlags(names []string) (canvas.SaveFlags, error) {
	var flags canvas.SaveFlags
	for _, name := range names {
		bit, ok := saveFlagBits[name]
		if !ok {
			return 0, fmt.Errorf("unknown save flag %q", name)
		}
		flags |= bit
	}
	return flags, nil
}

func parseRect(vals []float64) (canvas.Rect, error) {
	if len(vals) != 4 {
		return canvas.Rect{}, fmt.Errorf("rect needs 4 values, got %d", len(vals))
	}
	return canvas.Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

func parseColor(vals []float64) (canvas.RGBA, error) {
	switch len(vals) {
	case 0:
		return canvas.Black, nil
	case 4:
		return canvas.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
	default:
		return canvas.RGBA{}, fmt.Errorf("color needs 4 values, got %d", len(vals))
	}
}

func paintFromColor(vals []float64) (*canvas.Paint, error) {
	c, err := parseColor(vals)
	if err != nil {
		return nil, err
	}
	p := canvas.NewPaint()
	p.Brush = canvas.Solid(c)
	return p, nil
}

// replay drives r through every op in s, in order. It stops at the first
// op it can't interpret, returning an error that names the op's index.
func replay(r *record.Recorder, s *scene) error {
	for i, op := range s.Ops {
		if err := replayOne(r, op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func replayOne(r *record.Recorder, op sceneOp) error {
	switch op.Op {
	case "begin_recording":
		r.BeginRecording()
	case "end_recording":
		r.EndRecording()
	case "save":
		flags, err := parseFlags(op.Flags)
		if err != nil {
			return err
		}
		r.Save(flags)
	case "save_layer":
		var bounds *canvas.Rect
		if len(op.Rect) > 0 {
			rect, err := parseRect(op.Rect)
			if err != nil {
				return err
			}
			bounds = &rect
		}
		paint, err := paintFromColor(op.Color)
		if err != nil {
			return err
		}
		r.SaveLayer(bounds, paint)
	case "restore":
		r.Restore()
	case "clip_rect":
		rect, err := parseRect(op.Rect)
		if err != nil {
			return err
		}
		regionOp, err := parseRegionOp(op.RegionOp)
		if err != nil {
			return err
		}
		r.ClipRect(rect, regionOp, op.Antialias)
	case "clip_rrect":
		rect, err := parseRect(op.Rect)
		if err != nil {
			return err
		}
		regionOp, err := parseRegionOp(op.RegionOp)
		if err != nil {
			return err
		}
		r.ClipRRect(rrectFromRadii(rect, op.Radii), regionOp, op.Antialias)
	case "translate":
		r.Translate(op.DX, op.DY)
	case "scale":
		r.Scale(op.SX, op.SY)
	case "rotate":
		r.Rotate(op.Angle)
	case "draw_clear":
		c, err := parseColor(op.Color)
		if err != nil {
			return err
		}
		r.DrawClear(c)
	case "draw_rect":
		rect, err := parseRect(op.Rect)
		if err != nil {
			return err
		}
		paint, err := paintFromColor(op.Color)
		if err != nil {
			return err
		}
		r.DrawRect(rect, paint)
	case "draw_oval":
		rect, err := parseRect(op.Rect)
		if err != nil {
			return err
		}
		paint, err := paintFromColor(op.Color)
		if err != nil {
			return err
		}
		r.DrawOval(rect, paint)
	case "draw_rrect":
		rect, err := parseRect(op.Rect)
		if err != nil {
			return err
		}
		paint, err := paintFromColor(op.Color)
		if err != nil {
			return err
		}
		r.DrawRRect(rrectFromRadii(rect, op.Radii), paint)
	case "draw_text":
		paint, err := paintFromColor(op.Color)
		if err != nil {
			return err
		}
		r.DrawText(op.Text, op.X, op.Y, paint, false, nil)
	case "begin_comment_group":
		r.BeginCommentGroup(op.Comment)
	case "add_comment":
		r.AddComment(op.Key, op.Value)
	case "end_comment_group":
		r.EndCommentGroup()
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}

func rrectFromRadii(rect canvas.Rect, radii []float64) canvas.RRect {
	var rx, ry [4]float64
	for i := 0; i < 4 && i < len(radii); i++ {
		rx[i], ry[i] = radii[i], radii[i]
	}
	return canvas.RRect{Rect: rect, RadiusX: rx, RadiusY: ry}
}
