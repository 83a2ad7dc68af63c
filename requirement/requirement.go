// Package requirement implements the measurement calculus spec.md
// §4.D describes: for a notation applied at a given width, the
// Pareto-minimal set of bounds (the "staircase") under which it can be
// laid out, plus the tie-break that turns a staircase into one chosen
// Bound.
//
// There is no teacher file that does exactly this — pretty-printing
// measurement is a narrow, specific algorithm the retrieved corpus
// doesn't carry — so this package is grounded on the teacher's
// two-phase layout shape instead: kungfusheep-glyph's flexlayout.go
// splits layout into a top-down DistributeWidths pass and a bottom-up
// LayoutChildren pass that computes a container's height from its
// children's already-computed heights. The same bottom-up-then-top-down
// shape appears here: Stairs are computed bottom-up (this package),
// and Choice is resolved top-down against the remaining width (package
// layout).
package requirement

import "github.com/synless/synless/geom"

// Shape tags which of the three line-count regimes a Requirement
// describes.
type Shape uint8

const (
	// ShapeSingleLine: the subtree occupies exactly one line.
	ShapeSingleLine Shape = iota
	// ShapeMultiLine: the subtree spans >=2 lines; continuation lines
	// may be indented relative to the first.
	ShapeMultiLine
	// ShapeAligned: like MultiLine, but continuation lines begin at
	// the same column the first line started at (no added indent).
	ShapeAligned
)

// Requirement is one candidate realization of a notation: the widths
// of its first, interior ("middle", the max over all interior lines),
// and last line, and how many newlines it contains. SingleLine
// realizations have First == Middle == Last == the one line's width
// and Height == 0.
type Requirement struct {
	Shape  Shape
	First  uint32
	Middle uint32
	Last   uint32
	Height uint32
}

// SingleLine builds a one-line requirement of the given width.
func SingleLine(width uint32) Requirement {
	return Requirement{Shape: ShapeSingleLine, First: width, Middle: width, Last: width}
}

// MultiLine builds a multi-line requirement.
func MultiLine(first, middle, last, height uint32) Requirement {
	return Requirement{Shape: ShapeMultiLine, First: first, Middle: middle, Last: last, Height: height}
}

// Aligned builds an aligned continuation requirement. First is
// supplied by the caller context (the column the notation starts at)
// and is not tracked here; only middle/last/height matter, per
// spec.md's {middle, last} aligned variant.
func Aligned(middle, last, height uint32) Requirement {
	return Requirement{Shape: ShapeAligned, Middle: middle, Last: last, Height: height}
}

// Bound reduces a Requirement to the (width, height, indent) triple
// the Pareto order compares on.
func (r Requirement) Bound() geom.Bound {
	width := r.First
	if r.Middle > width {
		width = r.Middle
	}
	if r.Last > width {
		width = r.Last
	}
	indent := r.Last
	if r.Shape == ShapeSingleLine {
		indent = r.First
	}
	return geom.Bound{Width: width, Height: r.Height, Indent: indent}
}

// FitsWidth reports whether every line of r is within width w.
func (r Requirement) FitsWidth(w uint32) bool {
	return r.Bound().Width <= w
}

// Staircase is a Pareto-minimal set of Requirements: no element's
// Bound is <= another's. Layout choice works over staircases, never
// over a single Requirement, so that a width constraint discovered
// later can pick whichever point still fits.
type Staircase []Requirement

// Insert adds r to the staircase, dropping any existing element r
// dominates and skipping the insert entirely if r is itself dominated
// by an existing element. Keeps the set Pareto-minimal: a point
// survives only if no other point is <= it in every component.
func (s Staircase) Insert(r Requirement) Staircase {
	rb := r.Bound()
	out := s[:0:0]
	for _, existing := range s {
		eb := existing.Bound()
		if eb.LessEq(rb) {
			return s // an existing point already dominates (or equals) r
		}
		if rb.LessEq(eb) {
			continue // r dominates existing; drop it
		}
		out = append(out, existing)
	}
	out = append(out, r)
	return out
}

// Merge folds every element of other into s.
func (s Staircase) Merge(other Staircase) Staircase {
	for _, r := range other {
		s = s.Insert(r)
	}
	return s
}

// Feasible returns the subset of s that fits within width w.
func (s Staircase) Feasible(w uint32) Staircase {
	var out Staircase
	for _, r := range s {
		if r.FitsWidth(w) {
			out = append(out, r)
		}
	}
	return out
}

// Choose applies the tie-break rule of spec.md §4.D: among feasible
// points, minimum height, then minimum last-line indent, then minimum
// width. If none fit w, Choose instead returns the point that
// minimizes overflow (max(0, width-w)), applying the same tie-break
// among equally-overflowing points — the overflow policy of §4.D/§7.
func (s Staircase) Choose(w uint32) (Requirement, bool) {
	if len(s) == 0 {
		return Requirement{}, false
	}
	feasible := s.Feasible(w)
	pool := feasible
	overflowing := len(feasible) == 0
	if overflowing {
		pool = s
	}
	best := pool[0]
	bestOverflow := overflow(best, w)
	for _, r := range pool[1:] {
		if overflowing {
			of := overflow(r, w)
			if of < bestOverflow || (of == bestOverflow && less(r, best)) {
				best, bestOverflow = r, of
			}
			continue
		}
		if less(r, best) {
			best = r
		}
	}
	return best, true
}

func overflow(r Requirement, w uint32) uint32 {
	width := r.Bound().Width
	if width <= w {
		return 0
	}
	return width - w
}

// less implements the tie-break total order: height, then indent, then
// width.
func less(a, b Requirement) bool {
	ab, bb := a.Bound(), b.Bound()
	if ab.Height != bb.Height {
		return ab.Height < bb.Height
	}
	if ab.Indent != bb.Indent {
		return ab.Indent < bb.Indent
	}
	return ab.Width < bb.Width
}

// Concat combines a requirement for "left" and one for "right" into
// the requirement of their concatenation: right begins at the column
// left's last line ends. Single-line + single-line stays single-line;
// any multi-line operand makes the result multi-line (or aligned, if
// right is aligned and left is single-line so right's continuation
// column equals the concat's own start column).
func Concat(left, right Requirement) Requirement {
	if left.Shape == ShapeSingleLine && right.Shape == ShapeSingleLine {
		return SingleLine(left.First + right.First)
	}
	if left.Shape == ShapeSingleLine {
		// right starts partway across left's one line.
		first := left.First + firstLine(right)
		switch right.Shape {
		case ShapeAligned:
			return Requirement{Shape: ShapeAligned, First: first, Middle: right.Middle, Last: right.Last, Height: right.Height}
		default:
			return Requirement{Shape: ShapeMultiLine, First: first, Middle: right.Middle, Last: right.Last, Height: right.Height}
		}
	}
	if right.Shape == ShapeSingleLine {
		last := left.Last + right.First
		return Requirement{Shape: ShapeMultiLine, First: left.First, Middle: left.Middle, Last: last, Height: left.Height}
	}
	// Both multi-line: left's tail line merges with right's first
	// line; left's interior and right's interior both contribute to
	// the new interior maximum, and left's own last line (before the
	// merge) becomes interior too since it's no longer the final line.
	mergedLine := left.Last + firstLine(right)
	middle := max3(left.Middle, right.Middle, mergedLine)
	return Requirement{Shape: ShapeMultiLine, First: left.First, Middle: middle, Last: right.Last, Height: left.Height + right.Height}
}

func firstLine(r Requirement) uint32 {
	if r.Shape == ShapeSingleLine {
		return r.First
	}
	if r.Shape == ShapeAligned {
		// An aligned requirement's first line is the caller's own
		// continuation column; from Concat's point of view (laying
		// out right immediately after left on the same line) its
		// first line width is 0 extra columns contributed beyond
		// where it starts, since "first" isn't tracked for Aligned.
		return 0
	}
	return r.First
}

func max3(a, b, c uint32) uint32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// Flush turns any requirement into a multi-line requirement whose
// last line is empty (continuation resumes at the current indentation
// column, which an enclosing Nest raises).
func Flush(r Requirement) Requirement {
	switch r.Shape {
	case ShapeSingleLine:
		return Requirement{Shape: ShapeMultiLine, First: r.First, Middle: 0, Last: 0, Height: 1}
	default:
		return Requirement{Shape: ShapeMultiLine, First: r.First, Middle: max3(r.Middle, r.Last, 0), Last: 0, Height: r.Height + 1}
	}
}

// Nest increases the starting column of every continuation line by k,
// stacking with any enclosing Nest (spec.md §9).
func Nest(k uint32, r Requirement) Requirement {
	if r.Height == 0 {
		return r // a single line has no continuation to indent
	}
	out := r
	out.Middle += k
	out.Last += k
	return out
}

// NoWrap drops the requirement's ability to span multiple lines; a
// MultiLine or Aligned requirement becomes infeasible (represented by
// the caller discarding it — NoWrap over a staircase filters to just
// the SingleLine points).
func NoWrap(s Staircase) Staircase {
	var out Staircase
	for _, r := range s {
		if r.Shape == ShapeSingleLine {
			out = out.Insert(r)
		}
	}
	return out
}
