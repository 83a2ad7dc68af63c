package doc

import (
	"fmt"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/synlerr"
)

// InsertBefore inserts newNode immediately before the cursor's
// selected node, then selects newNode. Requires an After cursor.
func (d *Document) InsertBefore(newNode forest.NodeID) error {
	if d.Cursor.Kind != After {
		return fmt.Errorf("doc: InsertBefore requires an After cursor: %w", synlerr.ErrArityViolation)
	}
	sibling := d.Cursor.Node
	parent, err := d.Forest.Parent(sibling)
	if err != nil {
		return err
	}
	before := d.Cursor
	if err := d.Forest.InsertBefore(sibling, newNode); err != nil {
		return err
	}
	if err := d.Forest.ValidateArity(d.ActiveLanguage, parent); err != nil {
		d.Forest.Detach(newNode)
		return err
	}
	d.Cursor = AtAfter(newNode)
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.Detach(newNode) },
		redo: func(doc *Document) error { return doc.Forest.InsertBefore(sibling, newNode) },
	})
	return nil
}

// InsertAfter inserts newNode immediately after the cursor's selected
// node, then selects newNode. Requires an After cursor.
func (d *Document) InsertAfter(newNode forest.NodeID) error {
	if d.Cursor.Kind != After {
		return fmt.Errorf("doc: InsertAfter requires an After cursor: %w", synlerr.ErrArityViolation)
	}
	sibling := d.Cursor.Node
	parent, err := d.Forest.Parent(sibling)
	if err != nil {
		return err
	}
	before := d.Cursor
	if err := d.Forest.InsertAfter(sibling, newNode); err != nil {
		return err
	}
	if err := d.Forest.ValidateArity(d.ActiveLanguage, parent); err != nil {
		d.Forest.Detach(newNode)
		return err
	}
	d.Cursor = AtAfter(newNode)
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.Detach(newNode) },
		redo: func(doc *Document) error { return doc.Forest.InsertAfter(sibling, newNode) },
	})
	return nil
}

// InsertPrepend inserts newNode as the first child of the cursor's
// container, then selects newNode. Requires a BeforeFirstChild cursor.
func (d *Document) InsertPrepend(newNode forest.NodeID) error {
	if d.Cursor.Kind != BeforeFirstChild {
		return fmt.Errorf("doc: InsertPrepend requires a BeforeFirstChild cursor: %w", synlerr.ErrArityViolation)
	}
	parent := d.Cursor.Parent
	before := d.Cursor
	if err := d.Forest.InsertFirstChild(parent, newNode); err != nil {
		return err
	}
	if err := d.Forest.ValidateArity(d.ActiveLanguage, parent); err != nil {
		d.Forest.Detach(newNode)
		return err
	}
	d.Cursor = AtAfter(newNode)
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.Detach(newNode) },
		redo: func(doc *Document) error { return doc.Forest.InsertFirstChild(parent, newNode) },
	})
	return nil
}

// InsertPostpend inserts newNode as the last child of the cursor's
// selected node (treated as a container), then selects newNode.
// Requires an After cursor.
func (d *Document) InsertPostpend(newNode forest.NodeID) error {
	if d.Cursor.Kind != After {
		return fmt.Errorf("doc: InsertPostpend requires an After cursor: %w", synlerr.ErrArityViolation)
	}
	parent := d.Cursor.Node
	before := d.Cursor
	if err := d.Forest.InsertLastChild(parent, newNode); err != nil {
		return err
	}
	if err := d.Forest.ValidateArity(d.ActiveLanguage, parent); err != nil {
		d.Forest.Detach(newNode)
		return err
	}
	d.Cursor = AtAfter(newNode)
	d.record(before, edit{
		undo: func(doc *Document) error { return doc.Forest.Detach(newNode) },
		redo: func(doc *Document) error { return doc.Forest.InsertLastChild(parent, newNode) },
	})
	return nil
}

// Replace substitutes the cursor's selected node with newNode, then
// selects newNode. The old node is detached, not deleted, so undo can
// restore it without reconstruction.
func (d *Document) Replace(newNode forest.NodeID) error {
	if d.Cursor.Kind != After {
		return fmt.Errorf("doc: Replace requires an After cursor: %w", synlerr.ErrArityViolation)
	}
	old := d.Cursor.Node
	parent, err := d.Forest.Parent(old)
	if err != nil {
		return err
	}
	before := d.Cursor

	if err := d.Forest.InsertBefore(old, newNode); err != nil {
		return err
	}
	if err := d.Forest.Detach(old); err != nil {
		d.Forest.Detach(newNode)
		return err
	}
	if err := d.Forest.ValidateArity(d.ActiveLanguage, parent); err != nil {
		// Restore while newNode is still in the tree to anchor the insert.
		d.Forest.InsertBefore(newNode, old)
		d.Forest.Detach(newNode)
		return err
	}
	d.Cursor = AtAfter(newNode)
	d.record(before, edit{
		undo: func(doc *Document) error {
			// newNode is in the tree here; reinsert old beside it before
			// detaching it, since a detached node cannot anchor an insert.
			if err := doc.Forest.InsertBefore(newNode, old); err != nil {
				return err
			}
			return doc.Forest.Detach(newNode)
		},
		redo: func(doc *Document) error {
			if err := doc.Forest.InsertBefore(old, newNode); err != nil {
				return err
			}
			return doc.Forest.Detach(old)
		},
	})
	return nil
}

// Remove detaches the cursor's selected node from the tree (kept alive
// so undo can restore it) and moves the cursor to the gap it vacated.
func (d *Document) Remove() error {
	if d.Cursor.Kind != After {
		return fmt.Errorf("doc: Remove requires an After cursor: %w", synlerr.ErrArityViolation)
	}
	node := d.Cursor.Node
	parent, err := d.Forest.Parent(node)
	if err != nil {
		return err
	}
	prev, err := d.Forest.PrevSibling(node)
	if err != nil {
		return err
	}
	before := d.Cursor

	if err := d.Forest.Detach(node); err != nil {
		return err
	}
	d.Cursor = AtBeforeFirstChild(parent)
	if !prev.IsZero() {
		d.Cursor = AtAfter(prev)
	}
	d.record(before, edit{
		undo: func(doc *Document) error {
			if prev.IsZero() {
				return doc.Forest.InsertFirstChild(parent, node)
			}
			return doc.Forest.InsertAfter(prev, node)
		},
		redo: func(doc *Document) error { return doc.Forest.Detach(node) },
	})
	return nil
}

// InsertHoleBefore, InsertHoleAfter, InsertHolePrepend and
// InsertHolePostpend insert a placeholder leaf of the given sort,
// looked up as the language's designated hole construct for that sort
// (named "hole:<sort>" by HoleConstructName), per spec.md §4.F
// "InsertHole* (insert a sentinel hole of matching sort)".
func HoleConstructName(s lang.Sort) string { return "hole:" + string(s) }

func (d *Document) newHole(sort lang.Sort) (forest.NodeID, error) {
	name := HoleConstructName(sort)
	if _, err := d.ActiveLanguage.Construct(name); err != nil {
		return forest.NodeID{}, fmt.Errorf("doc: no hole construct registered for sort %q: %w", sort, err)
	}
	return d.Forest.NewLeaf(name, ""), nil
}

func (d *Document) InsertHoleBefore(sort lang.Sort) error {
	h, err := d.newHole(sort)
	if err != nil {
		return err
	}
	return d.InsertBefore(h)
}

func (d *Document) InsertHoleAfter(sort lang.Sort) error {
	h, err := d.newHole(sort)
	if err != nil {
		return err
	}
	return d.InsertAfter(h)
}

func (d *Document) InsertHolePrepend(sort lang.Sort) error {
	h, err := d.newHole(sort)
	if err != nil {
		return err
	}
	return d.InsertPrepend(h)
}

func (d *Document) InsertHolePostpend(sort lang.Sort) error {
	h, err := d.newHole(sort)
	if err != nil {
		return err
	}
	return d.InsertPostpend(h)
}
