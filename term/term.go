// Package term implements frontend.Frontend for a real ANSI terminal.
// It is the only package in this module that may hold a terminal
// library: raw mode and size queries go through golang.org/x/term
// (adapted from the teacher's hand-rolled unix.Termios manipulation in
// screen.go to the cross-platform library the rest of the pack favors
// for this concern), while resize notification keeps the teacher's own
// SIGWINCH pattern via os/signal and syscall, since x/term has no
// resize-event API of its own.
//
// Painting and diffing are adapted directly from the teacher's
// Screen: two render.Buffers (front and back), a per-row dirty scan at
// ShowFrame, and the same escape-code conventions (cursor positioning,
// SGR style runs) as screen.go's writeCell/writeStyle/writeColor.
package term

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/synless/synless/frontend"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/render"
	"github.com/synless/synless/style"
)

var _ frontend.Frontend = (*Terminal)(nil)

// Terminal is a frontend.Frontend backed by the real controlling
// terminal of the process.
type Terminal struct {
	in  *os.File
	out *os.File
	fd  int

	oldState *term.State

	mu            sync.Mutex
	front, back   *render.Buffer
	width, height int
	lastStyle     style.Style
	hasLastStyle  bool
	scratch       bytes.Buffer

	resize   chan geom.Pos
	sigwinch chan os.Signal
	done     chan struct{}

	keys    chan byte
	keysErr chan error
	reader  *bufio.Reader
}

// Open puts the controlling terminal into raw mode, switches to the
// alternate screen, and starts the SIGWINCH watcher. Callers must call
// Close to restore the terminal on exit.
func Open() (*Terminal, error) {
	in, out := os.Stdin, os.Stdout
	fd := int(out.Fd())

	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("term: GetSize: %w", err)
	}

	oldState, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("term: MakeRaw: %w", err)
	}

	t := &Terminal{
		in:       in,
		out:      out,
		fd:       fd,
		oldState: oldState,
		front:    render.NewBuffer(w, h),
		back:     render.NewBuffer(w, h),
		width:    w,
		height:   h,
		resize:   make(chan geom.Pos, 1),
		sigwinch: make(chan os.Signal, 1),
		done:     make(chan struct{}),
		keys:     make(chan byte, 256),
		keysErr:  make(chan error, 1),
		reader:   bufio.NewReader(in),
	}

	io.WriteString(out, "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l\x1b[?2004h")

	signal.Notify(t.sigwinch, syscall.SIGWINCH)
	go t.watchResize()
	go t.readKeys()

	return t, nil
}

func (t *Terminal) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case <-t.sigwinch:
			w, h, err := term.GetSize(t.fd)
			if err != nil {
				continue
			}
			t.mu.Lock()
			t.width, t.height = w, h
			t.front = render.NewBuffer(w, h)
			t.back = render.NewBuffer(w, h)
			t.mu.Unlock()
			select {
			case t.resize <- geom.Pos{Row: uint32(h), Col: uint32(w)}:
			default:
			}
		}
	}
}

func (t *Terminal) readKeys() {
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			select {
			case t.keysErr <- err:
			default:
			}
			return
		}
		select {
		case t.keys <- b:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal's original mode and leaves the
// alternate screen, per the reverse of the escapes Open wrote.
func (t *Terminal) Close() error {
	close(t.done)
	signal.Stop(t.sigwinch)
	io.WriteString(t.out, "\x1b[?2004l\x1b[?25h\x1b[?1049l")
	return term.Restore(int(t.in.Fd()), t.oldState)
}

// Size reports the current terminal dimensions in cells.
func (t *Terminal) Size() (geom.Pos, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return geom.Pos{Row: uint32(t.height), Col: uint32(t.width)}, nil
}

// StartFrame begins a new paint pass: the back buffer is reset to
// blank so Print/Fill calls build this frame's content from scratch,
// matching the teacher's full-repaint-into-back-buffer convention.
func (t *Terminal) StartFrame() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back = render.NewBuffer(t.width, t.height)
	return nil
}

// Print writes s into the back buffer at pos, clipped to the
// terminal's width.
func (t *Terminal) Print(pos geom.Pos, s string, st style.Style) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back.WriteString(int(pos.Col), int(pos.Row), s, st, t.width-int(pos.Col))
	return nil
}

// Fill paints ch with st across r in the back buffer.
func (t *Terminal) Fill(r geom.Rect, ch rune, st style.Style) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back.Fill(r, ch, st)
	return nil
}

// ShowFrame diffs the back buffer against the front buffer row by
// row, as the teacher's Flush does, and writes only the cells that
// changed, then swaps the buffers for the next frame.
func (t *Terminal) ShowFrame() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scratch.Reset()
	cursorRow, cursorCol := -1, -1
	changed := false

	for y := 0; y < t.height; y++ {
		if !t.back.DirtyRows()[y] {
			continue
		}
		for x := 0; x < t.width; x++ {
			c := t.back.Get(x, y)
			if c == t.front.Get(x, y) {
				continue
			}
			if c.Rune == 0 {
				continue
			}
			if cursorRow != y || cursorCol != x {
				t.scratch.WriteString("\x1b[")
				t.scratch.WriteString(strconv.Itoa(y + 1))
				t.scratch.WriteByte(';')
				t.scratch.WriteString(strconv.Itoa(x + 1))
				t.scratch.WriteByte('H')
			}
			t.writeCell(c)
			changed = true
			cursorRow, cursorCol = y, x+1
		}
	}

	if changed {
		t.scratch.WriteString("\x1b[0m")
		t.hasLastStyle = false
	}

	if _, err := t.out.Write(t.scratch.Bytes()); err != nil {
		return err
	}

	t.front, t.back = t.back, t.front
	t.back.Clean()
	return nil
}

func (t *Terminal) writeCell(c render.Cell) {
	if !t.hasLastStyle || c.Style != t.lastStyle {
		t.writeStyle(c.Style)
		t.lastStyle = c.Style
		t.hasLastStyle = true
	}
	t.scratch.WriteRune(c.Rune)
}

// writeStyle emits the SGR escape for st, following the teacher's
// reset-then-rebuild convention in writeStyle/writeColor rather than
// tracking which individual attributes changed.
func (t *Terminal) writeStyle(st style.Style) {
	t.scratch.WriteString("\x1b[0")
	if st.Emph.Has(style.EmphBold) {
		t.scratch.WriteString(";1")
	}
	if st.Emph.Has(style.EmphUnderline) {
		t.scratch.WriteString(";4")
	}
	if st.Emph.Has(style.EmphReverse) {
		t.scratch.WriteString(";7")
	}
	writeSGRColor(&t.scratch, st.FG, true)
	writeSGRColor(&t.scratch, st.BG, false)
	t.scratch.WriteByte('m')
}

// writeSGRColor maps one of the 16 palette slots to the classic
// 30-37/40-47 (plus 90-97/100-107 for the upper half) SGR color
// ranges, the same two-tier split as the teacher's Color16 branch of
// writeColor.
func writeSGRColor(buf *bytes.Buffer, c style.Color, fg bool) {
	base := 30
	if !fg {
		base = 40
	}
	idx := int(c)
	if idx >= 8 {
		base += 60
		idx -= 8
	}
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(base + idx))
}
