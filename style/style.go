// Package style defines the fixed 16-slot color palette and emphasis
// attributes used to paint cells into a terminal, adapted from the
// teacher's Color/Attribute/Style trio (tui.go) to the fixed
// Base00..Base0F palette spec.md mandates instead of the teacher's
// open 24-bit/256-color model.
package style

// Color is one slot of the fixed 16-color palette. The renderer maps
// these directly to ANSI SGR codes; there is no RGB or 256-color mode
// because the palette is the contract between notation authors and
// whatever terminal theme is active, not a raw color value.
type Color uint8

const (
	Base00 Color = iota
	Base01
	Base02
	Base03
	Base04
	Base05
	Base06
	Base07
	Base08
	Base09
	Base0A
	Base0B
	Base0C
	Base0D
	Base0E
	Base0F
)

// Emph is a bitset of text emphasis attributes, following the teacher's
// Attribute bitset (tui.go) combined with With/Without helpers.
type Emph uint8

const (
	EmphNone      Emph = 0
	EmphBold      Emph = 1 << iota
	EmphUnderline Emph = 1 << iota
	EmphReverse   Emph = 1 << iota
)

// Has reports whether e contains attr.
func (e Emph) Has(attr Emph) bool { return e&attr != 0 }

// With returns e with attr added.
func (e Emph) With(attr Emph) Emph { return e | attr }

// Without returns e with attr removed.
func (e Emph) Without(attr Emph) Emph { return e &^ attr }

// Style is the full paint state of a cell: foreground, background, and
// emphasis attributes.
type Style struct {
	FG   Color
	BG   Color
	Emph Emph
}

// Default is the style used when a construct's notation specifies
// none: Base05 foreground (the palette's conventional "plain text"
// slot) on Base00, no emphasis.
func Default() Style {
	return Style{FG: Base05, BG: Base00}
}

// Bold returns a copy of s with bold added.
func (s Style) Bold() Style { s.Emph = s.Emph.With(EmphBold); return s }

// Underline returns a copy of s with underline added.
func (s Style) Underline() Style { s.Emph = s.Emph.With(EmphUnderline); return s }

// Reverse returns a copy of s with reverse video added.
func (s Style) Reverse() Style { s.Emph = s.Emph.With(EmphReverse); return s }

// Foreground returns a copy of s with the foreground color replaced.
func (s Style) Foreground(c Color) Style { s.FG = c; return s }

// Background returns a copy of s with the background color replaced.
func (s Style) Background(c Color) Style { s.BG = c; return s }

// Theme names the palette slots a renderer falls back on for
// structural chrome that isn't part of any notation: the cursor
// highlight and the "best-effort overflow" warning marker. Adapted
// from the teacher's Theme bundle (theme.go), trimmed to two roles; the
// core renderer reads only CursorHighlight and does not mark overflowed
// lines. Per-construct styling always comes from the notation set,
// never from the theme.
type Theme struct {
	CursorHighlight Style
	OverflowMarker  Style
}

// DefaultTheme is a reasonable dark-on-light-independent default: the
// cursor is reverse video, and the overflow marker style is Base08
// (the palette's conventional "error/red" slot).
var DefaultTheme = Theme{
	CursorHighlight: Style{FG: Base05, BG: Base00, Emph: EmphReverse},
	OverflowMarker:  Style{FG: Base08, BG: Base00, Emph: EmphBold},
}
