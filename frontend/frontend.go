// Package frontend declares the capability boundary between the core
// and whatever paints cells and reads keys (spec.md §6 "Front-end
// contract"). The core never imports a terminal library directly; it
// only calls Frontend, so a test can stand in a fake and the terminal
// implementation (package term) lives entirely on the other side of
// this interface. The Key enum is grounded on
// original_source/frontends/src/key.rs, itself adapted from the
// termion crate's event::Key.
package frontend

import (
	"github.com/synless/synless/geom"
	"github.com/synless/synless/style"
)

// Key is one keypress, independent of which terminal library produced
// it.
type Key struct {
	Kind KeyKind
	Ch   rune // Char, Alt, Ctrl
	Fn   uint8 // F
}

// KeyKind tags which alternative a Key holds.
type KeyKind uint8

const (
	KeyBackspace KeyKind = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF
	KeyChar
	KeyAlt
	KeyCtrl
	KeyNull
	KeyEsc
)

// Char builds a plain-character key.
func Char(c rune) Key { return Key{Kind: KeyChar, Ch: c} }

// Alt builds an alt-modified character key.
func Alt(c rune) Key { return Key{Kind: KeyAlt, Ch: c} }

// Ctrl builds a ctrl-modified character key.
func Ctrl(c rune) Key { return Key{Kind: KeyCtrl, Ch: c} }

// F builds a function key, 1 through 12.
func F(n uint8) Key { return Key{Kind: KeyF, Fn: n} }

// EventKind tags which alternative an Event holds.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
)

// Event is one input notification from the frontend: a keypress, a
// mouse click at a cell position, or a terminal resize.
type Event struct {
	Kind  EventKind
	Key   Key
	Mouse geom.Pos
	Size  geom.Pos
}

// Frontend is the capability the core consumes to paint and read
// input, per spec.md §6. NextEvent returns (Event{}, false, nil) when
// there is currently no event pending (the Option<Result<Event>> of
// the original design collapses to a bool-plus-error here, the
// idiomatic Go shape for "maybe nothing, maybe an error").
type Frontend interface {
	Size() (geom.Pos, error)
	NextEvent() (Event, bool, error)
	StartFrame() error
	ShowFrame() error
	Print(pos geom.Pos, s string, st style.Style) error
	Fill(r geom.Rect, ch rune, st style.Style) error
	Close() error
}
