package term

import (
	"time"

	"github.com/synless/synless/frontend"
)

// NextEvent returns the next pending input event, or (Event{}, false,
// nil) if nothing has arrived yet. Resize notifications take priority
// over keypresses so a consumer never paints against a stale size.
func (t *Terminal) NextEvent() (frontend.Event, bool, error) {
	select {
	case size := <-t.resize:
		return frontend.Event{Kind: frontend.EventResize, Size: size}, true, nil
	case err := <-t.keysErr:
		return frontend.Event{}, false, err
	default:
	}

	b, ok := t.readByteNonBlocking()
	if !ok {
		return frontend.Event{}, false, nil
	}

	return frontend.Event{Kind: frontend.EventKey, Key: t.decodeKey(b)}, true, nil
}

func (t *Terminal) readByteNonBlocking() (byte, bool) {
	select {
	case b := <-t.keys:
		return b, true
	default:
		return 0, false
	}
}

// readByteTimeout waits briefly for the byte that completes an escape
// sequence, matching termion's own "a bare ESC with nothing following
// within the window is the Esc key, not the start of a sequence"
// convention (key.rs documents termion as the ancestor of this enum).
func (t *Terminal) readByteTimeout() (byte, bool) {
	select {
	case b := <-t.keys:
		return b, true
	case <-time.After(25 * time.Millisecond):
		return 0, false
	}
}

// decodeKey turns the first byte of a keypress (plus however many
// more bytes an escape sequence needs) into a frontend.Key, following
// termion's event-parsing table: ESC introduces either a lone Esc, an
// Alt-modified character, or a CSI/SS3 sequence; bytes 1-26 are
// Ctrl-modified letters; 127 is Backspace; everything else decodes as
// a UTF-8 rune.
func (t *Terminal) decodeKey(b byte) frontend.Key {
	switch {
	case b == 0x1b:
		return t.decodeEscape()
	case b == 127:
		return frontend.Key{Kind: frontend.KeyBackspace}
	case b == 0:
		return frontend.Key{Kind: frontend.KeyNull}
	case b >= 1 && b <= 26:
		return frontend.Ctrl(rune('a' + b - 1))
	default:
		return frontend.Char(t.decodeRune(b))
	}
}

func (t *Terminal) decodeEscape() frontend.Key {
	b, ok := t.readByteTimeout()
	if !ok {
		return frontend.Key{Kind: frontend.KeyEsc}
	}
	if b == '[' {
		return t.decodeCSI()
	}
	if b == 'O' {
		return t.decodeSS3()
	}
	return frontend.Alt(t.decodeRune(b))
}

func (t *Terminal) decodeSS3() frontend.Key {
	b, ok := t.readByteTimeout()
	if !ok {
		return frontend.Key{Kind: frontend.KeyEsc}
	}
	switch b {
	case 'P':
		return frontend.F(1)
	case 'Q':
		return frontend.F(2)
	case 'R':
		return frontend.F(3)
	case 'S':
		return frontend.F(4)
	}
	return frontend.Key{Kind: frontend.KeyEsc}
}

// decodeCSI reads a "CSI ... final-byte" sequence and maps the common
// cursor/navigation keys termion recognizes. Unrecognized sequences
// are swallowed as a bare Esc, the same fallback termion uses for
// sequences it does not special-case.
func (t *Terminal) decodeCSI() frontend.Key {
	var params []byte
	for {
		b, ok := t.readByteTimeout()
		if !ok {
			return frontend.Key{Kind: frontend.KeyEsc}
		}
		if b >= '0' && b <= '9' || b == ';' {
			params = append(params, b)
			continue
		}
		switch b {
		case 'A':
			return frontend.Key{Kind: frontend.KeyUp}
		case 'B':
			return frontend.Key{Kind: frontend.KeyDown}
		case 'C':
			return frontend.Key{Kind: frontend.KeyRight}
		case 'D':
			return frontend.Key{Kind: frontend.KeyLeft}
		case 'H':
			return frontend.Key{Kind: frontend.KeyHome}
		case 'F':
			return frontend.Key{Kind: frontend.KeyEnd}
		case '~':
			return decodeTilde(params)
		}
		return frontend.Key{Kind: frontend.KeyEsc}
	}
}

// decodeTilde maps the numeric CSI-tilde codes (e.g. "\x1b[3~" for
// Delete) termion emits for keys with no single final letter.
func decodeTilde(params []byte) frontend.Key {
	switch string(params) {
	case "2":
		return frontend.Key{Kind: frontend.KeyInsert}
	case "3":
		return frontend.Key{Kind: frontend.KeyDelete}
	case "5":
		return frontend.Key{Kind: frontend.KeyPageUp}
	case "6":
		return frontend.Key{Kind: frontend.KeyPageDown}
	case "15":
		return frontend.F(5)
	case "17":
		return frontend.F(6)
	case "18":
		return frontend.F(7)
	case "19":
		return frontend.F(8)
	case "20":
		return frontend.F(9)
	case "21":
		return frontend.F(10)
	case "23":
		return frontend.F(11)
	case "24":
		return frontend.F(12)
	}
	return frontend.Key{Kind: frontend.KeyEsc}
}

// decodeRune assembles a UTF-8 rune starting with lead, reading
// continuation bytes from the key channel as needed.
func (t *Terminal) decodeRune(lead byte) rune {
	var n int
	switch {
	case lead&0x80 == 0:
		return rune(lead)
	case lead&0xe0 == 0xc0:
		n = 1
	case lead&0xf0 == 0xe0:
		n = 2
	case lead&0xf8 == 0xf0:
		n = 3
	default:
		return rune(lead)
	}
	buf := []byte{lead}
	for i := 0; i < n; i++ {
		b, ok := t.readByteTimeout()
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	return decodeUTF8(buf)
}

func decodeUTF8(buf []byte) rune {
	r := []rune(string(buf))
	if len(r) == 0 {
		return 0
	}
	return r[0]
}
