// Package layout implements spec.md §4.H: composing a notation set, a
// document tree, and a target width into a concrete LayoutTree. The
// two-phase shape — bottom-up measurement, then top-down choice
// resolution — is grounded on the teacher's flexlayout.go, whose
// FlexNode.DistributeWidths/LayoutChildren split (top-down width
// distribution, then bottom-up height calculation) is the same
// two-pass idea applied to a fixed grid instead of a Pareto lattice.
package layout

import (
	"fmt"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/requirement"
	"github.com/synless/synless/style"
	"github.com/synless/synless/synlerr"
)

// Kind mirrors the concrete Layout node constructors spec.md §4.H
// names: Literal, Text, Child, Concat, Flush. Nest/NoWrap/Choice/
// IfEmptyText/Repeat are resolved away during layout and never appear
// in the output tree.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindText
	KindChild
	KindConcat
	KindFlush
)

// Layout is one node of the concrete, positioned layout tree the
// renderer walks.
type Layout struct {
	Kind   Kind
	Region geom.Rect

	Literal string
	Style   style.Style

	// KindText: whose text payload to paint; KindChild: which node the
	// substituted subtree belongs to (the renderer re-walks the layout
	// by node id to place the cursor).
	Node forest.NodeID

	ChildIndex int     // KindChild
	Child      *Layout // KindChild

	Left, Right *Layout // KindConcat

	Inner *Layout // KindFlush
}

// foldSlot is what a Repeat fold's Left/Right/Surrounded sentinel
// resolves to: the staircase for feasibility checks (evalStaircase),
// and a thunk that lazily builds the concrete Layout for that slot at
// whatever position it turns out to be referenced from (build).
type foldSlot struct {
	stair requirement.Staircase
	build func(pos geom.Pos, indentCol uint32) (*Layout, geom.Pos, error)
}

// env carries the Repeat fold sentinels (Left/Right/Surrounded) while
// evaluating a join or surround sub-notation. nil fields mean "not
// currently folding".
type env struct {
	left, right, surrounded *foldSlot
}

// engine holds the read-only inputs for one layout pass plus the
// bottom-up memo table (spec.md §4.H complexity target: each node's
// staircase computed once).
type engine struct {
	f     *forest.Forest
	ns    *lang.NotationSet
	width uint32
	memo  map[forest.NodeID]requirement.Staircase
}

// Compute produces the positioned layout of root under notation set ns
// at the given width, per spec.md §4.H.
func Compute(f *forest.Forest, ns *lang.NotationSet, root forest.NodeID, width uint32) (*Layout, error) {
	e := &engine{f: f, ns: ns, width: width, memo: make(map[forest.NodeID]requirement.Staircase)}
	s, err := e.staircaseOf(root)
	if err != nil {
		return nil, err
	}
	if _, ok := s.Choose(width); !ok {
		return nil, fmt.Errorf("layout: %w", synlerr.ErrLayoutInfeasible)
	}
	construct, err := f.Construct(root)
	if err != nil {
		return nil, err
	}
	n, err := ns.Get(construct)
	if err != nil {
		return nil, err
	}
	l, _, err := e.build(n, root, nil, geom.Zero(), 0)
	return l, err
}

// staircaseOf is the memoized, bottom-up entry point for a node's
// requirement staircase (spec.md §4.H step 1).
func (e *engine) staircaseOf(id forest.NodeID) (requirement.Staircase, error) {
	if s, ok := e.memo[id]; ok {
		return s, nil
	}
	construct, err := e.f.Construct(id)
	if err != nil {
		return nil, err
	}
	n, err := e.ns.Get(construct)
	if err != nil {
		return nil, err
	}
	s, err := e.evalStaircase(n, id, nil)
	if err != nil {
		return nil, err
	}
	e.memo[id] = s
	return s, nil
}

// evalStaircase implements the requirement rules of spec.md §4.D for
// one notation expression in the context of node id.
func (e *engine) evalStaircase(n notation.Notation, id forest.NodeID, v *env) (requirement.Staircase, error) {
	switch n.Kind {
	case notation.KindEmpty:
		return requirement.Staircase{requirement.SingleLine(0)}, nil

	case notation.KindLiteral:
		return requirement.Staircase{requirement.SingleLine(uint32(len([]rune(n.Literal))))}, nil

	case notation.KindText:
		text, err := e.f.Text(id)
		if err != nil {
			return nil, err
		}
		return requirement.Staircase{requirement.SingleLine(uint32(len(text)))}, nil

	case notation.KindChild:
		children, err := e.f.Children(id)
		if err != nil {
			return nil, err
		}
		if n.ChildIndex < 0 || n.ChildIndex >= len(children) {
			return nil, fmt.Errorf("layout: %v: %w", id, synlerr.ErrArityViolation)
		}
		return e.staircaseOf(children[n.ChildIndex])
	}

	return e.evalComposite(n, id, v)
}

// evalComposite handles the notation kinds whose requirement depends
// on the requirement of one or more sub-notations, kept separate from
// evalStaircase's leaf cases purely to keep each function under a
// manageable size.
func (e *engine) evalComposite(n notation.Notation, id forest.NodeID, v *env) (requirement.Staircase, error) {
	switch n.Kind {
	case notation.KindConcat:
		left, err := e.evalStaircase(*n.Left, id, v)
		if err != nil {
			return nil, err
		}
		right, err := e.evalStaircase(*n.Right, id, v)
		if err != nil {
			return nil, err
		}
		var out requirement.Staircase
		for _, l := range left {
			for _, r := range right {
				out = out.Insert(requirement.Concat(l, r))
			}
		}
		return out, nil

	case notation.KindFlush:
		inner, err := e.evalStaircase(*n.Inner, id, v)
		if err != nil {
			return nil, err
		}
		var out requirement.Staircase
		for _, r := range inner {
			out = out.Insert(requirement.Flush(r))
		}
		return out, nil

	case notation.KindNest:
		inner, err := e.evalStaircase(*n.Inner, id, v)
		if err != nil {
			return nil, err
		}
		var out requirement.Staircase
		for _, r := range inner {
			out = out.Insert(requirement.Nest(n.NestAmount, r))
		}
		return out, nil

	case notation.KindNoWrap:
		inner, err := e.evalStaircase(*n.Inner, id, v)
		if err != nil {
			return nil, err
		}
		out := requirement.NoWrap(inner)
		if len(out) == 0 {
			return nil, fmt.Errorf("layout: %v: no_wrap region cannot fit one line: %w", id, synlerr.ErrLayoutInfeasible)
		}
		return out, nil

	case notation.KindChoice:
		a, err := e.evalStaircase(*n.Preferred, id, v)
		if err != nil {
			return nil, err
		}
		if len(a.Feasible(e.width)) > 0 {
			return a, nil
		}
		b, err := e.evalStaircase(*n.Fallback, id, v)
		if err != nil {
			return nil, err
		}
		if len(b.Feasible(e.width)) > 0 {
			return b, nil
		}
		return a.Merge(b), nil

	case notation.KindIfEmptyText:
		text, err := e.f.Text(id)
		if err != nil {
			return nil, err
		}
		if len(text) == 0 {
			return e.evalStaircase(*n.WhenEmpty, id, v)
		}
		return e.evalStaircase(*n.WhenNonEmpty, id, v)

	case notation.KindRepeat:
		return e.evalRepeat(n.Repeat, id)

	case notation.KindSentinel:
		slot := sentinelSlot(n.Sentinel, v)
		if slot == nil {
			return nil, fmt.Errorf("layout: %v: sentinel used outside its Repeat context", id)
		}
		return slot.stair, nil
	}
	return nil, fmt.Errorf("layout: unknown notation kind %d", n.Kind)
}

func (e *engine) evalRepeat(r *notation.Repeat, id forest.NodeID) (requirement.Staircase, error) {
	children, err := e.f.Children(id)
	if err != nil {
		return nil, err
	}
	switch len(children) {
	case 0:
		return e.evalStaircase(r.Empty, id, nil)
	case 1:
		return e.evalStaircase(r.Lone, id, nil)
	}
	acc, err := e.staircaseOf(children[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(children); i++ {
		next, err := e.staircaseOf(children[i])
		if err != nil {
			return nil, err
		}
		acc, err = e.evalStaircase(r.Join, id, &env{left: &foldSlot{stair: acc}, right: &foldSlot{stair: next}})
		if err != nil {
			return nil, err
		}
	}
	return e.evalStaircase(r.Surround, id, &env{surrounded: &foldSlot{stair: acc}})
}

func sentinelSlot(s notation.Sentinel, v *env) *foldSlot {
	if v == nil {
		return nil
	}
	switch s {
	case notation.Left:
		return v.left
	case notation.Right:
		return v.right
	case notation.Surrounded:
		return v.surrounded
	}
	return nil
}
