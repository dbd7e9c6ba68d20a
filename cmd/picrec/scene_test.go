package main

import (
	"testing"

	"github.com/gogpu/picrec/canvas"
	"github.com/gogpu/picrec/record"
)

func TestReplayNestedLayersScript(t *testing.T) {
	s, err := loadScene("testdata/nested_layers.yaml")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	r := record.NewRecorder(record.Options{})
	r.BeginRecording()
	if err := replay(r, s); err != nil {
		t.Fatalf("replay: %v", err)
	}
	r.EndRecording()

	if len(r.Bytes()) == 0 {
		t.Fatalf("replaying a non-empty scene produced zero bytes")
	}
}

func TestReplayUnknownOpFails(t *testing.T) {
	s := &scene{Ops: []sceneOp{{Op: "spin_the_wheel"}}}
	r := record.NewRecorder(record.Options{})
	if err := replay(r, s); err == nil {
		t.Fatalf("replay should fail on an unknown op")
	}
}

func TestParseRegionOpKnownAndUnknown(t *testing.T) {
	cases := []struct {
		name    string
		want    canvas.RegionOp
		wantErr bool
	}{
		{"", canvas.RegionOpIntersect, false},
		{"union", canvas.RegionOpUnion, false},
		{"xor", canvas.RegionOpXOR, false},
		{"not_a_real_op", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseRegionOp(c.name)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parseRegionOp(%q) should have failed", c.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRegionOp(%q): %v", c.name, err)
			}
			if got != c.want {
				t.Fatalf("parseRegionOp(%q) = %v, want %v", c.name, got, c.want)
			}
		})
	}
}

func TestParseFlagsCombinesBits(t *testing.T) {
	got, err := parseFlags([]string{"matrix_clip", "clip_to_layer"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	want := canvas.FlagMatrixClip | canvas.FlagClipToLayer
	if got != want {
		t.Fatalf("parseFlags = %v, want %v", got, want)
	}
}

func TestParseRectRejectsWrongArity(t *testing.T) {
	if _, err := parseRect([]float64{1, 2, 3}); err == nil {
		t.Fatalf("parseRect should reject a 3-element slice")
	}
}

func TestRRectFromRadiiDegenerateWhenNoneGiven(t *testing.T) {
	rect := canvas.NewRect(0, 0, 10, 10)
	rrect := rrectFromRadii(rect, nil)
	if !rrect.IsRect() {
		t.Fatalf("rrectFromRadii with no radii should degenerate to a plain rect")
	}
}
