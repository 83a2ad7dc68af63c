package doc

import (
	"github.com/synless/synless/forest"
	"github.com/synless/synless/lang"
)

// edit is one reversible forest mutation recorded inside an undo unit.
type edit struct {
	undo func(*Document) error
	redo func(*Document) error
}

// unit groups the edits of one undo-able action together with the
// cursor position to restore on undo and on redo, per spec.md §4.F:
// "commands in a batch share one unit".
type unit struct {
	edits        []edit
	cursorBefore Location
	cursorAfter  Location
}

// Document is a forest paired with the language/notation set active
// for editing it, plus a cursor and undo/redo history (spec.md §3
// "Document").
type Document struct {
	Forest            *forest.Forest
	RootID            forest.NodeID
	ActiveLanguage    *lang.Language
	ActiveNotationSet *lang.NotationSet
	Cursor            Location

	undoStack []*unit
	redoStack []*unit
	open      *unit // the in-progress unit while a batch is open
}

// New creates a document session rooted at root.
func New(f *forest.Forest, root forest.NodeID, l *lang.Language, ns *lang.NotationSet, cursor Location) *Document {
	return &Document{Forest: f, RootID: root, ActiveLanguage: l, ActiveNotationSet: ns, Cursor: cursor}
}

// BeginBatch opens an undo unit that subsequent structural edits
// append to, instead of each closing its own single-edit unit. Callers
// group multi-step commands (e.g. "wrap selection") by calling
// BeginBatch, performing the edits, then EndBatch.
func (d *Document) BeginBatch() {
	if d.open != nil {
		return
	}
	d.open = &unit{cursorBefore: d.Cursor}
}

// EndBatch closes the current batch, pushing it onto the undo stack
// and clearing the redo stack, unless no edits were recorded (in which
// case it is discarded).
func (d *Document) EndBatch() {
	u := d.open
	d.open = nil
	if u == nil || len(u.edits) == 0 {
		return
	}
	u.cursorAfter = d.Cursor
	d.undoStack = append(d.undoStack, u)
	d.redoStack = nil
}

// record appends e to the open batch, or opens and immediately closes
// a single-edit unit if no batch is open, per spec.md §4.F: "any
// structural edit starts one if none is open".
func (d *Document) record(cursorBefore Location, e edit) {
	if d.open != nil {
		d.open.edits = append(d.open.edits, e)
		return
	}
	u := &unit{cursorBefore: cursorBefore}
	u.edits = append(u.edits, e)
	u.cursorAfter = d.Cursor
	d.undoStack = append(d.undoStack, u)
	d.redoStack = nil
}

// Undo pops the most recent unit and applies its edits' inverses in
// reverse order, restoring the cursor to what it was before that unit
// began.
func (d *Document) Undo() (bool, error) {
	if len(d.undoStack) == 0 {
		return false, nil
	}
	u := d.undoStack[len(d.undoStack)-1]
	d.undoStack = d.undoStack[:len(d.undoStack)-1]
	for i := len(u.edits) - 1; i >= 0; i-- {
		if err := u.edits[i].undo(d); err != nil {
			return false, err
		}
	}
	d.Cursor = u.cursorBefore
	d.redoStack = append(d.redoStack, u)
	return true, nil
}

// Redo pops the most recently undone unit and re-applies its edits in
// their original order, restoring the cursor to what it was right
// after the unit was first performed.
func (d *Document) Redo() (bool, error) {
	if len(d.redoStack) == 0 {
		return false, nil
	}
	u := d.redoStack[len(d.redoStack)-1]
	d.redoStack = d.redoStack[:len(d.redoStack)-1]
	for _, e := range u.edits {
		if err := e.redo(d); err != nil {
			return false, err
		}
	}
	d.Cursor = u.cursorAfter
	d.undoStack = append(d.undoStack, u)
	return true, nil
}
