// Package doc implements the document session: a forest paired with
// an active language/notation set, a cursor (spec.md §3 "Location"),
// and the navigation/editing/undo command families of spec.md §4.F.
// Grounded on original_source/src/language/location.rs for the
// Location variants and cursor_halves, and
// original_source/editor/src/doc/doc.rs for the NavCommand names
// (there renamed Child/Parent to this module's Down/Up to read more
// like a tree editor and less like a generic AST walker).
package doc

import (
	"fmt"

	"github.com/synless/synless/forest"
)

// LocationKind tags which alternative a Location holds.
type LocationKind uint8

const (
	// InText sits inside a text node at a code-point offset.
	InText LocationKind = iota
	// After sits in the gap immediately following a node, among its
	// siblings.
	After
	// BeforeFirstChild sits in the gap before a parent's first child.
	BeforeFirstChild
)

// Location is the cursor's position: either inside a text node's
// payload, or in a gap between sibling nodes.
type Location struct {
	Kind      LocationKind
	Node      forest.NodeID // InText, After
	CharIndex int           // InText: code-point offset
	Parent    forest.NodeID // BeforeFirstChild
}

// AtText builds an InText location.
func AtText(node forest.NodeID, charIndex int) Location {
	return Location{Kind: InText, Node: node, CharIndex: charIndex}
}

// AtAfter builds an After location.
func AtAfter(node forest.NodeID) Location { return Location{Kind: After, Node: node} }

// AtBeforeFirstChild builds a BeforeFirstChild location.
func AtBeforeFirstChild(parent forest.NodeID) Location {
	return Location{Kind: BeforeFirstChild, Parent: parent}
}

// Halves returns the (left, right) sibling pair adjacent to the
// cursor, per spec.md §3's invariant. InText has no adjacent siblings
// of its own (the cursor is inside the node, not between nodes), so
// it returns (zero, zero), matching cursor_halves in
// original_source/src/language/location.rs.
func (l Location) Halves(f *forest.Forest) (left, right forest.NodeID, err error) {
	switch l.Kind {
	case InText:
		return forest.NodeID{}, forest.NodeID{}, nil
	case After:
		next, err := f.NextSibling(l.Node)
		if err != nil {
			return forest.NodeID{}, forest.NodeID{}, err
		}
		return l.Node, next, nil
	case BeforeFirstChild:
		first, err := f.FirstChild(l.Parent)
		if err != nil {
			return forest.NodeID{}, forest.NodeID{}, err
		}
		return forest.NodeID{}, first, nil
	}
	return forest.NodeID{}, forest.NodeID{}, fmt.Errorf("doc: unknown location kind %d", l.Kind)
}
