package render

import "github.com/synless/synless/style"

// PaneSizeKind tags how much of a Horz/Vert budget one entry claims.
type PaneSizeKind uint8

const (
	// SizeFixed claims exactly N cells.
	SizeFixed PaneSizeKind = iota
	// SizeProportional divides whatever remains after Fixed entries in
	// proportion to its Weight among the other Proportional entries.
	SizeProportional
	// SizeDynHeight (Vert only) claims the height of the layout its
	// DocProvider returns; that layout is computed at whatever width the
	// provider chooses, not at the width allocated to the pane.
	SizeDynHeight
)

// PaneSize describes one entry's share of a Horz/Vert allocation.
type PaneSize struct {
	Kind   PaneSizeKind
	N      uint32 // SizeFixed
	Weight uint32 // SizeProportional
}

// Fixed claims exactly n cells.
func Fixed(n uint32) PaneSize { return PaneSize{Kind: SizeFixed, N: n} }

// Proportional claims a weight-proportional share of the remaining
// budget.
func Proportional(weight uint32) PaneSize { return PaneSize{Kind: SizeProportional, Weight: weight} }

// DynHeight claims exactly the height its document needs.
func DynHeight() PaneSize { return PaneSize{Kind: SizeDynHeight} }

// CursorVisibility controls whether a Doc pane paints the cursor
// highlight.
type CursorVisibility uint8

const (
	CursorShow CursorVisibility = iota
	CursorHide
)

// ScrollKind tags a Doc pane's vertical scroll rule.
type ScrollKind uint8

const (
	// ScrollBeginning always shows the document from row 0.
	ScrollBeginning ScrollKind = iota
	// ScrollCursorHeight keeps the cursor's row at floor(pane_height *
	// Fraction).
	ScrollCursorHeight
)

// ScrollStrategy is a Doc pane's vertical scroll rule.
type ScrollStrategy struct {
	Kind     ScrollKind
	Fraction float64 // ScrollCursorHeight, in [0,1]
}

// Beginning is the ScrollBeginning strategy.
func Beginning() ScrollStrategy { return ScrollStrategy{Kind: ScrollBeginning} }

// CursorHeight is the ScrollCursorHeight strategy.
func CursorHeight(fraction float64) ScrollStrategy {
	return ScrollStrategy{Kind: ScrollCursorHeight, Fraction: fraction}
}

// Offset computes the scroll offset (first visible document row) for a
// pane of the given height with the cursor at cursorRow, per spec.md
// §8 scenario 5: offset = cursorRow - floor(paneHeight*fraction),
// clamped to never go negative.
func (s ScrollStrategy) Offset(paneHeight int, cursorRow int) int {
	if s.Kind == ScrollBeginning {
		return 0
	}
	target := int(float64(paneHeight) * s.Fraction)
	offset := cursorRow - target
	if offset < 0 {
		return 0
	}
	return offset
}

// PaneKind tags which alternative a PaneNotation holds.
type PaneKind uint8

const (
	PaneEmpty PaneKind = iota
	PaneFill
	PaneDoc
	PaneHorz
	PaneVert
)

// Entry pairs a child pane with its share of the parent's budget,
// inside a Horz or Vert composition.
type Entry struct {
	Size PaneSize
	Pane PaneNotation
}

// PaneNotation describes how a rectangular terminal region is composed
// (spec.md §4.I "Pane composition"): a leaf that paints nothing, a
// solid fill, a single document viewport, or a row/column of further
// panes.
type PaneNotation struct {
	Kind PaneKind

	FillChar  rune       // PaneFill
	FillStyle style.Style // PaneFill

	DocLabel         string           // PaneDoc: key into the Renderer's document provider
	CursorVisibility CursorVisibility // PaneDoc
	ScrollStrategy   ScrollStrategy   // PaneDoc

	Entries []Entry // PaneHorz, PaneVert
}

// Empty is a pane that paints nothing.
func Empty() PaneNotation { return PaneNotation{Kind: PaneEmpty} }

// Fill paints ch across the whole pane.
func Fill(ch rune, st style.Style) PaneNotation {
	return PaneNotation{Kind: PaneFill, FillChar: ch, FillStyle: st}
}

// Doc shows one document viewport.
func Doc(label string, cv CursorVisibility, scroll ScrollStrategy) PaneNotation {
	return PaneNotation{Kind: PaneDoc, DocLabel: label, CursorVisibility: cv, ScrollStrategy: scroll}
}

// Horz lays out entries left to right.
func Horz(entries ...Entry) PaneNotation { return PaneNotation{Kind: PaneHorz, Entries: entries} }

// Vert lays out entries top to bottom.
func Vert(entries ...Entry) PaneNotation { return PaneNotation{Kind: PaneVert, Entries: entries} }
