// Package notation implements the layout combinator algebra attached to
// each construct of a language: the small language spec.md §3/§4.C
// describes for expressing hard line breaks, optional line breaks,
// indentation, alignment, and no-wrap regions.
//
// Notations are value types, built once at language-load time and
// shared immutably thereafter — the teacher's Component tree
// (template.go) is mutable and rebuilt every frame; a notation is the
// opposite on purpose, since spec.md requires structural equality and
// memoisation over it (§9 "Dynamic dispatch on notations").
package notation

import "github.com/synless/synless/style"

// Sentinel identifies one of the fixed placeholder slots used inside a
// Repeat's join/surround sub-notations.
type Sentinel uint8

const (
	// Left is the accumulator so far, inside a Repeat's join notation.
	Left Sentinel = iota
	// Right is the next child being folded in, inside a Repeat's join
	// notation.
	Right
	// Surrounded is the fully folded result, inside a Repeat's surround
	// notation.
	Surrounded
)

// Kind tags which alternative a Notation value holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindLiteral
	KindText
	KindChild
	KindConcat
	KindFlush
	KindNest
	KindNoWrap
	KindChoice
	KindIfEmptyText
	KindRepeat
	KindSentinel
)

// Repeat folds a Flexible-arity node's children into a single
// notation: Empty when there are no children, Lone when there is
// exactly one (Lone may reference Child(0)), otherwise Join folds pairs
// left-to-right using the Left/Right sentinels and Surround wraps the
// fold using the Surrounded sentinel.
type Repeat struct {
	Empty    Notation
	Lone     Notation
	Join     Notation
	Surround Notation
}

// Notation is a tagged union over the layout constructors of spec.md
// §3. Exactly one field is meaningful per Kind; exhaustive switch over
// Kind is the only way notations are interpreted anywhere in this
// module (spec.md §9: "interpret by exhaustive case analysis, not by
// v-tables").
type Notation struct {
	Kind Kind

	// KindLiteral, KindText
	Literal string
	Style   style.Style

	// KindChild
	ChildIndex int

	// KindConcat
	Left, Right *Notation

	// KindFlush, KindNest, KindNoWrap: the wrapped notation
	Inner *Notation
	// KindNest: additional indent columns, stacked with any enclosing
	// Nest per spec.md §9 ("the spec fixes it to stack").
	NestAmount uint32

	// KindChoice
	Preferred, Fallback *Notation

	// KindIfEmptyText
	WhenEmpty, WhenNonEmpty *Notation

	// KindRepeat
	Repeat *Repeat

	// KindSentinel
	Sentinel Sentinel
}

// Empty lays out as nothing: zero width, one line.
func Empty() Notation { return Notation{Kind: KindEmpty} }

// Literal lays out a fixed string in the given style.
func Literal(s string, st style.Style) Notation {
	return Notation{Kind: KindLiteral, Literal: s, Style: st}
}

// Text substitutes the node's own text payload, styled.
func Text(st style.Style) Notation {
	return Notation{Kind: KindText, Style: st}
}

// Child substitutes the notation-set's choice for the child at index i.
func Child(i int) Notation {
	return Notation{Kind: KindChild, ChildIndex: i}
}

// Concat lays out left, then right starting at left's end column.
func Concat(left, right Notation) Notation {
	return Notation{Kind: KindConcat, Left: &left, Right: &right}
}

// Flush lays out inner, then forces a newline; the next line starts at
// the current indentation column (0 unless an enclosing Nest raised it).
func Flush(inner Notation) Notation {
	return Notation{Kind: KindFlush, Inner: &inner}
}

// Nest increases the indentation of inner's continuation lines by k
// columns. Nesting stacks: Nest(2, Nest(3, x)) indents continuation
// lines of x by 5.
func Nest(k uint32, inner Notation) Notation {
	return Notation{Kind: KindNest, NestAmount: k, Inner: &inner}
}

// NoWrap forbids inner from being laid out across more than one line.
func NoWrap(inner Notation) Notation {
	return Notation{Kind: KindNoWrap, Inner: &inner}
}

// Choice prefers a, falling back to b if a cannot fit the current
// width budget.
func Choice(a, b Notation) Notation {
	return Notation{Kind: KindChoice, Preferred: &a, Fallback: &b}
}

// IfEmptyText branches on whether the node's text payload is empty.
func IfEmptyText(then, els Notation) Notation {
	return Notation{Kind: KindIfEmptyText, WhenEmpty: &then, WhenNonEmpty: &els}
}

// MakeRepeat builds the Repeat alternative of a Notation for a
// Flexible-arity construct.
func MakeRepeat(r Repeat) Notation {
	return Notation{Kind: KindRepeat, Repeat: &r}
}

// SentinelNotation references one of the Repeat placeholder slots.
func SentinelNotation(s Sentinel) Notation {
	return Notation{Kind: KindSentinel, Sentinel: s}
}

// Equal reports structural equality, used for notation memoisation
// (spec.md §9).
func Equal(a, b Notation) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindEmpty:
		return true
	case KindLiteral:
		return a.Literal == b.Literal && a.Style == b.Style
	case KindText:
		return a.Style == b.Style
	case KindChild:
		return a.ChildIndex == b.ChildIndex
	case KindConcat:
		return Equal(*a.Left, *b.Left) && Equal(*a.Right, *b.Right)
	case KindFlush, KindNoWrap:
		return Equal(*a.Inner, *b.Inner)
	case KindNest:
		return a.NestAmount == b.NestAmount && Equal(*a.Inner, *b.Inner)
	case KindChoice:
		return Equal(*a.Preferred, *b.Preferred) && Equal(*a.Fallback, *b.Fallback)
	case KindIfEmptyText:
		return Equal(*a.WhenEmpty, *b.WhenEmpty) && Equal(*a.WhenNonEmpty, *b.WhenNonEmpty)
	case KindRepeat:
		return Equal(a.Repeat.Empty, b.Repeat.Empty) &&
			Equal(a.Repeat.Lone, b.Repeat.Lone) &&
			Equal(a.Repeat.Join, b.Repeat.Join) &&
			Equal(a.Repeat.Surround, b.Repeat.Surround)
	case KindSentinel:
		return a.Sentinel == b.Sentinel
	}
	return false
}
