package doc

import (
	"fmt"

	"github.com/synless/synless/lang"
	"github.com/synless/synless/synlerr"
)

func (d *Document) requireText() error {
	if d.Cursor.Kind != InText {
		return fmt.Errorf("doc: text command requires an InText cursor: %w", synlerr.ErrArityViolation)
	}
	return nil
}

// LeftChar moves the cursor one code point left within the current
// text node. AtEdge at offset 0.
func (d *Document) LeftChar() error {
	if err := d.requireText(); err != nil {
		return err
	}
	if d.Cursor.CharIndex == 0 {
		return atEdge("LeftChar")
	}
	d.Cursor.CharIndex--
	return nil
}

// RightChar moves the cursor one code point right. AtEdge at the end
// of the text.
func (d *Document) RightChar() error {
	if err := d.requireText(); err != nil {
		return err
	}
	text, err := d.Forest.Text(d.Cursor.Node)
	if err != nil {
		return err
	}
	if d.Cursor.CharIndex >= len(text) {
		return atEdge("RightChar")
	}
	d.Cursor.CharIndex++
	return nil
}

// EnterText moves the cursor from a structural gap into the adjacent
// text node: from After(node) (node itself, if it is a text node) or
// from BeforeFirstChild(parent) into parent if parent itself is a text
// node with no children. The cursor lands at the start of the text.
func (d *Document) EnterText() error {
	var node = d.Cursor.Node
	if d.Cursor.Kind == BeforeFirstChild {
		node = d.Cursor.Parent
	}
	if d.Cursor.Kind == InText {
		return fmt.Errorf("doc: EnterText requires a structural cursor: %w", synlerr.ErrArityViolation)
	}
	construct, err := d.Forest.Construct(node)
	if err != nil {
		return err
	}
	c, err := d.ActiveLanguage.Construct(construct)
	if err != nil {
		return err
	}
	if c.Arity.Kind != lang.ArityText {
		return fmt.Errorf("doc: EnterText: %v is not a text node: %w", node, synlerr.ErrArityViolation)
	}
	d.Cursor = AtText(node, 0)
	return nil
}

// ExitText moves the cursor back out to the After gap just past the
// current text node.
func (d *Document) ExitText() error {
	if err := d.requireText(); err != nil {
		return err
	}
	d.Cursor = AtAfter(d.Cursor.Node)
	return nil
}

// InsertChar inserts c at the cursor's code-point offset, then
// advances past it. It is a no-op (but not an error) if disallowed is
// non-nil and reports c as disallowed for this text node's construct,
// matching spec.md §4.F: "InsertChar is a no-op if the construct
// disallows the character".
func (d *Document) InsertChar(c rune, disallowed func(construct string, c rune) bool) error {
	if err := d.requireText(); err != nil {
		return err
	}
	node := d.Cursor.Node
	construct, err := d.Forest.Construct(node)
	if err != nil {
		return err
	}
	if disallowed != nil && disallowed(construct, c) {
		return nil
	}
	idx := d.Cursor.CharIndex
	before := d.Cursor
	oldText, err := d.Forest.Text(node)
	if err != nil {
		return err
	}
	newText := insertRune(oldText, idx, c)
	if err := d.Forest.SetText(node, newText); err != nil {
		return err
	}
	d.Cursor.CharIndex = idx + 1
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.SetText(node, oldText) },
		redo: func(doc *Document) error { return doc.Forest.SetText(node, newText) },
	})
	return nil
}

// DeleteChar deletes the code point immediately before the cursor
// (backspace semantics). AtEdge at offset 0.
func (d *Document) DeleteChar() error {
	if err := d.requireText(); err != nil {
		return err
	}
	if d.Cursor.CharIndex == 0 {
		return atEdge("DeleteChar")
	}
	node := d.Cursor.Node
	idx := d.Cursor.CharIndex
	before := d.Cursor
	oldText, err := d.Forest.Text(node)
	if err != nil {
		return err
	}
	newText := deleteRune(oldText, idx-1)
	if err := d.Forest.SetText(node, newText); err != nil {
		return err
	}
	d.Cursor.CharIndex = idx - 1
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.SetText(node, oldText) },
		redo: func(doc *Document) error { return doc.Forest.SetText(node, newText) },
	})
	return nil
}

func insertRune(text []rune, idx int, c rune) []rune {
	out := make([]rune, 0, len(text)+1)
	out = append(out, text[:idx]...)
	out = append(out, c)
	out = append(out, text[idx:]...)
	return out
}

func deleteRune(text []rune, idx int) []rune {
	out := make([]rune, 0, len(text)-1)
	out = append(out, text[:idx]...)
	out = append(out, text[idx+1:]...)
	return out
}
