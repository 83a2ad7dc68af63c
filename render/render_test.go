package render

import (
	"testing"

	"github.com/synless/synless/geom"
)

func TestResolveSizesFixedThenProportional(t *testing.T) {
	r := &Renderer{}
	entries := []Entry{
		{Size: Fixed(10)},
		{Size: Proportional(1)},
		{Size: Proportional(1)},
	}
	sizes, err := r.resolveSizes(entries, 30, true, geom.Rect{Width: 30, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sizes[0] != 10 || sizes[1] != 10 || sizes[2] != 10 {
		t.Fatalf("expected an even 10/10/10 split of the remaining budget, got %v", sizes)
	}
}

func TestResolveSizesProportionalWeights(t *testing.T) {
	r := &Renderer{}
	entries := []Entry{
		{Size: Proportional(1)},
		{Size: Proportional(3)},
	}
	sizes, err := r.resolveSizes(entries, 20, true, geom.Rect{Width: 20, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sizes[0] != 5 || sizes[1] != 15 {
		t.Fatalf("expected a 1:3 weighted split of 20 (5/15), got %v", sizes)
	}
}

func TestResolveSizesRejectsDynHeightHorizontally(t *testing.T) {
	r := &Renderer{}
	entries := []Entry{{Size: DynHeight(), Pane: Doc("x", CursorShow, Beginning())}}
	if _, err := r.resolveSizes(entries, 10, true, geom.Rect{Width: 10, Height: 1}); err == nil {
		t.Fatalf("expected an error using DynHeight inside Horz")
	}
}
