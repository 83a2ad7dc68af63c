package layout

import (
	"fmt"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/requirement"
	"github.com/synless/synless/synlerr"
)

// build is spec.md §4.H step 2/3: resolve any remaining Choice against
// the real remaining width at this exact position, then produce
// concrete, absolutely-positioned Layout nodes. pos is where this
// notation starts printing; indentCol is the column a Flush inside it
// returns to (which Nest raises, stacking with any outer Nest).
func (e *engine) build(n notation.Notation, id forest.NodeID, v *env, pos geom.Pos, indentCol uint32) (*Layout, geom.Pos, error) {
	switch n.Kind {
	case notation.KindEmpty:
		return &Layout{Kind: KindLiteral, Region: geom.Rect{Pos: pos, Width: 0, Height: 1}}, pos, nil

	case notation.KindLiteral:
		w := uint32(len([]rune(n.Literal)))
		end := geom.Pos{Row: pos.Row, Col: pos.Col + w}
		return &Layout{
			Kind:    KindLiteral,
			Literal: n.Literal,
			Style:   n.Style,
			Region:  geom.Rect{Pos: pos, Width: w, Height: 1},
		}, end, nil

	case notation.KindText:
		text, err := e.f.Text(id)
		if err != nil {
			return nil, pos, err
		}
		w := uint32(len(text))
		end := geom.Pos{Row: pos.Row, Col: pos.Col + w}
		return &Layout{
			Kind:   KindText,
			Style:  n.Style,
			Node:   id,
			Region: geom.Rect{Pos: pos, Width: w, Height: 1},
		}, end, nil

	case notation.KindChild:
		children, err := e.f.Children(id)
		if err != nil {
			return nil, pos, err
		}
		if n.ChildIndex < 0 || n.ChildIndex >= len(children) {
			return nil, pos, fmt.Errorf("layout: %v: %w", id, synlerr.ErrArityViolation)
		}
		childID := children[n.ChildIndex]
		childN, err := e.notationFor(childID)
		if err != nil {
			return nil, pos, err
		}
		child, end, err := e.build(childN, childID, nil, pos, indentCol)
		if err != nil {
			return nil, pos, err
		}
		return &Layout{Kind: KindChild, ChildIndex: n.ChildIndex, Node: childID, Child: child, Region: child.Region}, end, nil

	case notation.KindConcat:
		left, leftEnd, err := e.build(*n.Left, id, v, pos, indentCol)
		if err != nil {
			return nil, pos, err
		}
		right, rightEnd, err := e.build(*n.Right, id, v, leftEnd, indentCol)
		if err != nil {
			return nil, pos, err
		}
		return &Layout{
			Kind:   KindConcat,
			Left:   left,
			Right:  right,
			Region: spanning(pos, rightEnd, left, right),
		}, rightEnd, nil

	case notation.KindFlush:
		inner, innerEnd, err := e.build(*n.Inner, id, v, pos, indentCol)
		if err != nil {
			return nil, pos, err
		}
		end := geom.Pos{Row: innerEnd.Row + 1, Col: indentCol}
		return &Layout{
			Kind:   KindFlush,
			Inner:  inner,
			Region: geom.Rect{Pos: pos, Width: inner.Region.Width, Height: end.Row - pos.Row + 1},
		}, end, nil

	case notation.KindNest:
		return e.build(*n.Inner, id, v, pos, indentCol+n.NestAmount)

	case notation.KindNoWrap:
		return e.build(*n.Inner, id, v, pos, indentCol)

	case notation.KindChoice:
		return e.buildChoice(n, id, v, pos, indentCol)

	case notation.KindIfEmptyText:
		text, err := e.f.Text(id)
		if err != nil {
			return nil, pos, err
		}
		if len(text) == 0 {
			return e.build(*n.WhenEmpty, id, v, pos, indentCol)
		}
		return e.build(*n.WhenNonEmpty, id, v, pos, indentCol)

	case notation.KindRepeat:
		return e.buildRepeat(n.Repeat, id, pos, indentCol)

	case notation.KindSentinel:
		slot := sentinelSlot(n.Sentinel, v)
		if slot == nil || slot.build == nil {
			return nil, pos, fmt.Errorf("layout: %v: sentinel used outside its Repeat context", id)
		}
		return slot.build(pos, indentCol)
	}
	return nil, pos, fmt.Errorf("layout: unknown notation kind %d", n.Kind)
}

func (e *engine) notationFor(id forest.NodeID) (notation.Notation, error) {
	construct, err := e.f.Construct(id)
	if err != nil {
		return notation.Notation{}, err
	}
	return e.ns.Get(construct)
}

// remainingAt returns how many columns are left in the current line at
// col, given the overall pane width.
func (e *engine) remainingAt(col uint32) uint32 {
	if col >= e.width {
		return 0
	}
	return e.width - col
}

func (e *engine) buildChoice(n notation.Notation, id forest.NodeID, v *env, pos geom.Pos, indentCol uint32) (*Layout, geom.Pos, error) {
	remaining := e.remainingAt(pos.Col)
	aStair, err := e.evalStaircase(*n.Preferred, id, v)
	if err != nil {
		return nil, pos, err
	}
	if len(aStair.Feasible(remaining)) > 0 {
		return e.build(*n.Preferred, id, v, pos, indentCol)
	}
	bStair, err := e.evalStaircase(*n.Fallback, id, v)
	if err != nil {
		return nil, pos, err
	}
	if len(bStair.Feasible(remaining)) > 0 {
		return e.build(*n.Fallback, id, v, pos, indentCol)
	}
	// Neither alternative fits: take the union and let whichever side
	// contributed the least-overflowing point win (spec.md §4.D/§7
	// overflow policy).
	union := aStair.Merge(bStair)
	chosen, ok := union.Choose(remaining)
	if !ok {
		return nil, pos, fmt.Errorf("layout: %v: %w", id, synlerr.ErrLayoutInfeasible)
	}
	if contains(aStair, chosen) {
		return e.build(*n.Preferred, id, v, pos, indentCol)
	}
	return e.build(*n.Fallback, id, v, pos, indentCol)
}

func contains(s requirement.Staircase, r requirement.Requirement) bool {
	for _, x := range s {
		if x.Bound() == r.Bound() {
			return true
		}
	}
	return false
}

func (e *engine) buildRepeat(r *notation.Repeat, id forest.NodeID, pos geom.Pos, indentCol uint32) (*Layout, geom.Pos, error) {
	children, err := e.f.Children(id)
	if err != nil {
		return nil, pos, err
	}
	switch len(children) {
	case 0:
		return e.build(r.Empty, id, nil, pos, indentCol)
	case 1:
		return e.build(r.Lone, id, nil, pos, indentCol)
	}

	// Prefix staircases are position-independent; compute them once so
	// the lazy prefix builds below don't redo the fold measurement.
	stairs := make([]requirement.Staircase, len(children))
	acc, err := e.staircaseOf(children[0])
	if err != nil {
		return nil, pos, err
	}
	stairs[0] = acc
	for i := 1; i < len(children); i++ {
		childStair, err := e.staircaseOf(children[i])
		if err != nil {
			return nil, pos, err
		}
		acc, err = e.evalStaircase(r.Join, id, &env{
			left:  &foldSlot{stair: stairs[i-1]},
			right: &foldSlot{stair: childStair},
		})
		if err != nil {
			return nil, pos, err
		}
		stairs[i] = acc
	}

	// buildPrefix lays out the fold of children[0..i] at whatever
	// position the enclosing notation requests, so a Surround (or an
	// unusual Join) that prefixes the sentinel with its own content
	// still gets the fold anchored at the shifted column.
	var buildPrefix func(i int, p geom.Pos, ind uint32) (*Layout, geom.Pos, error)
	buildPrefix = func(i int, p geom.Pos, ind uint32) (*Layout, geom.Pos, error) {
		if i == 0 {
			return e.buildListChild(children[0], 0, p, ind)
		}
		childStair, err := e.staircaseOf(children[i])
		if err != nil {
			return nil, p, err
		}
		v := &env{
			left: &foldSlot{
				stair: stairs[i-1],
				build: func(pp geom.Pos, ii uint32) (*Layout, geom.Pos, error) {
					return buildPrefix(i-1, pp, ii)
				},
			},
			right: &foldSlot{
				stair: childStair,
				build: func(pp geom.Pos, ii uint32) (*Layout, geom.Pos, error) {
					return e.buildListChild(children[i], i, pp, ii)
				},
			},
		}
		return e.build(r.Join, id, v, p, ind)
	}

	last := len(children) - 1
	surroundSlot := &foldSlot{
		stair: stairs[last],
		build: func(p geom.Pos, ind uint32) (*Layout, geom.Pos, error) {
			return buildPrefix(last, p, ind)
		},
	}
	return e.build(r.Surround, id, &env{surrounded: surroundSlot}, pos, indentCol)
}

// buildListChild lays out one element of a Flexible-arity node's child
// list, wrapped in a KindChild node carrying the child's id so the
// cursor locator can find list elements the same way it finds Fixed
// arity children.
func (e *engine) buildListChild(childID forest.NodeID, index int, pos geom.Pos, indentCol uint32) (*Layout, geom.Pos, error) {
	n, err := e.notationFor(childID)
	if err != nil {
		return nil, pos, err
	}
	built, end, err := e.build(n, childID, nil, pos, indentCol)
	if err != nil {
		return nil, pos, err
	}
	return &Layout{Kind: KindChild, ChildIndex: index, Node: childID, Child: built, Region: built.Region}, end, nil
}

// spanning computes the bounding region of a Concat from its two
// already-positioned operands.
func spanning(start, end geom.Pos, left, right *Layout) geom.Rect {
	width := left.Region.Width
	if end.Row == start.Row {
		if w := end.Col - start.Col; w > width {
			width = w
		}
	}
	if right.Region.Width > width {
		width = right.Region.Width
	}
	return geom.Rect{Pos: start, Width: width, Height: end.Row - start.Row + 1}
}
