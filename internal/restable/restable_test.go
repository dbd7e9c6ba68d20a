package restable

import (
	"testing"

	"github.com/gogpu/picrec/canvas"
)

func TestPathsNoDedup(t *testing.T) {
	var paths Paths
	p := canvas.NewPathBuilder().Rectangle(0, 0, 10, 10).Build()
	h1 := paths.Append(p)
	h2 := paths.Append(p)
	if h1 == h2 {
		t.Fatalf("expected distinct handles for distinct appends, got %d and %d", h1, h2)
	}
	if paths.Len() != 2 {
		t.Fatalf("Len = %d, want 2", paths.Len())
	}
}

func TestBitmapsDedupByIdentityAndSubRect(t *testing.T) {
	var bitmaps Bitmaps
	ref := new(int)
	bm := &canvas.Bitmap{PixelRef: ref, Width: 100, Height: 100}

	h1 := bitmaps.Insert(bm, canvas.SubRect{Width: 10, Height: 10})
	h2 := bitmaps.Insert(bm, canvas.SubRect{Width: 10, Height: 10})
	if h1 != h2 {
		t.Fatalf("same pixel-ref and sub-rect should dedup: got %d and %d", h1, h2)
	}

	h3 := bitmaps.Insert(bm, canvas.SubRect{Width: 20, Height: 20})
	if h3 == h1 {
		t.Fatalf("different sub-rect should not dedup with %d", h1)
	}
}

func TestBitmapsInvalidHandle(t *testing.T) {
	var bitmaps Bitmaps
	if h := bitmaps.Insert(nil, canvas.SubRect{}); h != InvalidHandle {
		t.Fatalf("nil bitmap should yield InvalidHandle, got %d", h)
	}
}

func TestSubPicturesDedupByIdentityAndRefCount(t *testing.T) {
	var pics SubPictures
	pic := canvas.NewPicture(canvas.Rect{})

	h1 := pics.Insert(pic)
	h2 := pics.Insert(pic)
	if h1 != h2 {
		t.Fatalf("same picture pointer should dedup: got %d and %d", h1, h2)
	}
	if pic.RefCount() != 2 {
		t.Fatalf("RefCount = %d, want 2 (bumped on both inserts)", pic.RefCount())
	}

	other := canvas.NewPicture(canvas.Rect{})
	h3 := pics.Insert(other)
	if h3 == h1 {
		t.Fatalf("distinct picture pointer should not dedup with %d", h1)
	}
}
