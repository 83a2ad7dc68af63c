package requirement

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// byBound sorts a Staircase into a canonical order so two
// independently-built staircases holding the same Pareto points can be
// compared with cmp.Diff regardless of insertion order.
func byBound(s Staircase) Staircase {
	out := append(Staircase(nil), s...)
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i].Bound(), out[j].Bound()
		if bi.Width != bj.Width {
			return bi.Width < bj.Width
		}
		if bi.Height != bj.Height {
			return bi.Height < bj.Height
		}
		return bi.Indent < bj.Indent
	})
	return out
}

func TestStaircaseInsertParetoPrunes(t *testing.T) {
	var s Staircase
	s = s.Insert(SingleLine(10))
	s = s.Insert(MultiLine(3, 3, 3, 2))
	// SingleLine(12) has Bound{12,0,12}; SingleLine(10)'s Bound{10,0,10}
	// dominates it, so the insert must be a no-op.
	s = s.Insert(SingleLine(12))
	for _, r := range s {
		if r.Shape == ShapeSingleLine && r.First == 12 {
			t.Fatalf("dominated point survived insertion, staircase=%v", s)
		}
	}
	if len(s) != 2 {
		t.Fatalf("expected the two Pareto-minimal points, got %v", s)
	}
	// The reverse insertion must prune the dominated point already held.
	s = s.Insert(SingleLine(8))
	for _, r := range s {
		if r.Shape == ShapeSingleLine && r.First == 10 {
			t.Fatalf("expected SingleLine(8) to displace SingleLine(10), staircase=%v", s)
		}
	}
}

func TestStaircaseChooseTieBreak(t *testing.T) {
	s := Staircase{
		MultiLine(2, 2, 2, 1),
		SingleLine(5),
	}
	chosen, ok := s.Choose(10)
	if !ok {
		t.Fatal("expected a feasible choice")
	}
	if chosen.Height != 0 {
		t.Fatalf("expected the single-line (height 0) point to win the tie-break, got height %d", chosen.Height)
	}
}

func TestStaircaseChooseOverflowMinimizes(t *testing.T) {
	s := Staircase{
		SingleLine(20),
		SingleLine(15),
	}
	chosen, ok := s.Choose(10)
	if !ok {
		t.Fatal("expected an overflow fallback choice")
	}
	if chosen.First != 15 {
		t.Fatalf("expected the point with least overflow (15), got %d", chosen.First)
	}
}

func TestConcatSingleLine(t *testing.T) {
	r := Concat(SingleLine(3), SingleLine(4))
	if r.Shape != ShapeSingleLine || r.First != 7 {
		t.Fatalf("expected single-line width 7, got %+v", r)
	}
}

func TestConcatPropagatesMultiLine(t *testing.T) {
	r := Concat(SingleLine(3), MultiLine(2, 5, 1, 2))
	if r.Shape != ShapeMultiLine {
		t.Fatalf("expected multi-line result, got %+v", r)
	}
	if r.First != 3+2 {
		t.Fatalf("expected first line 5, got %d", r.First)
	}
	if r.Height != 2 {
		t.Fatalf("expected height 2, got %d", r.Height)
	}
}

func TestFlushSingleLine(t *testing.T) {
	r := Flush(SingleLine(5))
	if r.Height != 1 || r.Last != 0 {
		t.Fatalf("expected flush to start a new empty last line, got %+v", r)
	}
}

func TestNestStacks(t *testing.T) {
	r := MultiLine(1, 2, 3, 1)
	once := Nest(2, r)
	twice := Nest(3, once)
	if twice.Middle != r.Middle+5 || twice.Last != r.Last+5 {
		t.Fatalf("expected nest amounts to stack (sum to 5), got %+v", twice)
	}
}

func TestNoWrapDropsMultiLine(t *testing.T) {
	s := Staircase{SingleLine(3), MultiLine(1, 1, 1, 1)}
	out := NoWrap(s)
	if len(out) != 1 || out[0].Shape != ShapeSingleLine {
		t.Fatalf("expected only the single-line point to survive NoWrap, got %v", out)
	}
}

func TestNoWrapInfeasibleWhenOnlyMultiLine(t *testing.T) {
	s := Staircase{MultiLine(1, 1, 1, 1)}
	out := NoWrap(s)
	if len(out) != 0 {
		t.Fatalf("expected NoWrap to leave nothing feasible, got %v", out)
	}
}

// TestStaircaseMergeIsOrderIndependent builds the same Pareto-minimal
// set two different ways -- inserting in one order, then the reverse --
// and checks the resulting staircases agree structurally, regardless
// of which element happened to be inserted first.
func TestStaircaseMergeIsOrderIndependent(t *testing.T) {
	points := []Requirement{
		SingleLine(10),
		MultiLine(3, 3, 3, 2),
		MultiLine(4, 2, 1, 1),
		SingleLine(6),
	}
	var forward, backward Staircase
	for _, p := range points {
		forward = forward.Insert(p)
	}
	for i := len(points) - 1; i >= 0; i-- {
		backward = backward.Insert(points[i])
	}
	if diff := cmp.Diff(byBound(forward), byBound(backward)); diff != "" {
		t.Fatalf("staircase depends on insertion order (-forward +backward):\n%s", diff)
	}
}
