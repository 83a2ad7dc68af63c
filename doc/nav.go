package doc

import (
	"fmt"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/synlerr"
)

// Navigation never opens an undo unit (spec.md §4.F): it only ever
// moves d.Cursor.

// Left moves the cursor one gap left: from After(node) to the gap after
// node's previous sibling, or to BeforeFirstChild of node's parent when
// node is the first child. At the leftmost gap, fails with AtEdge.
func (d *Document) Left() error {
	switch d.Cursor.Kind {
	case After:
		prev, err := d.Forest.PrevSibling(d.Cursor.Node)
		if err != nil {
			return err
		}
		if prev.IsZero() {
			parent, err := d.Forest.Parent(d.Cursor.Node)
			if err != nil {
				return err
			}
			if parent.IsZero() {
				return atEdge("Left")
			}
			d.Cursor = AtBeforeFirstChild(parent)
			return nil
		}
		d.Cursor = AtAfter(prev)
		return nil
	case BeforeFirstChild, InText:
		return atEdge("Left")
	}
	return unknownLocation(d.Cursor)
}

// Right moves the cursor to the gap after the next sibling. At the
// rightmost gap, fails with AtEdge.
func (d *Document) Right() error {
	switch d.Cursor.Kind {
	case BeforeFirstChild:
		first, err := d.Forest.FirstChild(d.Cursor.Parent)
		if err != nil {
			return err
		}
		if first.IsZero() {
			return atEdge("Right")
		}
		d.Cursor = AtAfter(first)
		return nil
	case After:
		next, err := d.Forest.NextSibling(d.Cursor.Node)
		if err != nil {
			return err
		}
		if next.IsZero() {
			return atEdge("Right")
		}
		d.Cursor = AtAfter(next)
		return nil
	case InText:
		return atEdge("Right")
	}
	return unknownLocation(d.Cursor)
}

// focusedNode returns the node Down/Up/Leftmost/Rightmost/GotoLeaf
// treat as currently selected: the After node, or BeforeFirstChild's
// parent (treated as the selected container).
func (d *Document) focusedNode() (forest.NodeID, error) {
	switch d.Cursor.Kind {
	case After:
		return d.Cursor.Node, nil
	case BeforeFirstChild:
		return d.Cursor.Parent, nil
	}
	return forest.NodeID{}, atEdge("focusedNode")
}

// Down moves the cursor inside the focused node, to the gap before its
// first child. Fails with AtEdge on a node with no children.
func (d *Document) Down() error {
	n, err := d.focusedNode()
	if err != nil {
		return err
	}
	first, err := d.Forest.FirstChild(n)
	if err != nil {
		return err
	}
	if first.IsZero() {
		return atEdge("Down")
	}
	d.Cursor = AtBeforeFirstChild(n)
	return nil
}

// Up moves the cursor to select the focused node's parent. Fails with
// AtEdge at the document root.
func (d *Document) Up() error {
	n, err := d.focusedNode()
	if err != nil {
		return err
	}
	parent, err := d.Forest.Parent(n)
	if err != nil {
		return err
	}
	if parent.IsZero() {
		return atEdge("Up")
	}
	d.Cursor = AtAfter(parent)
	return nil
}

// Leftmost moves the cursor to select the first sibling of the focused
// node.
func (d *Document) Leftmost() error {
	n, err := d.focusedNode()
	if err != nil {
		return err
	}
	parent, err := d.Forest.Parent(n)
	if err != nil {
		return err
	}
	if parent.IsZero() {
		return atEdge("Leftmost")
	}
	first, err := d.Forest.FirstChild(parent)
	if err != nil {
		return err
	}
	d.Cursor = AtAfter(first)
	return nil
}

// Rightmost moves the cursor to select the last sibling of the focused
// node.
func (d *Document) Rightmost() error {
	n, err := d.focusedNode()
	if err != nil {
		return err
	}
	parent, err := d.Forest.Parent(n)
	if err != nil {
		return err
	}
	if parent.IsZero() {
		return atEdge("Rightmost")
	}
	last, err := d.Forest.LastChild(parent)
	if err != nil {
		return err
	}
	d.Cursor = AtAfter(last)
	return nil
}

// GotoRoot selects the document's root node.
func (d *Document) GotoRoot() error {
	d.Cursor = AtAfter(d.RootID)
	return nil
}

// GotoLeaf descends from the focused node via first children until
// reaching a node with none, and selects it.
func (d *Document) GotoLeaf() error {
	n, err := d.focusedNode()
	if err != nil {
		return err
	}
	for {
		first, err := d.Forest.FirstChild(n)
		if err != nil {
			return err
		}
		if first.IsZero() {
			break
		}
		n = first
	}
	d.Cursor = AtAfter(n)
	return nil
}

func atEdge(op string) error {
	return fmt.Errorf("doc: %s: %w", op, synlerr.ErrAtEdge)
}

func unknownLocation(l Location) error {
	return fmt.Errorf("doc: unknown location kind %d", l.Kind)
}
