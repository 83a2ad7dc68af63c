package render

import (
	"github.com/synless/synless/doc"
	"github.com/synless/synless/forest"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/layout"
)

// LocateCursor finds the cursor's absolute position by re-walking the
// layout along the cursor's node, per spec.md §4.I. An InText cursor
// sits at the text node's origin plus (0, char index); a structural
// cursor sits at the origin of the node it references (After) or of
// the parent whose child list it heads (BeforeFirstChild). Returns
// false if the node is not present in the layout, which happens when a
// notation's chosen alternative elides it.
func LocateCursor(l *layout.Layout, root forest.NodeID, cursor doc.Location) (geom.Pos, bool) {
	target := cursor.Node
	if cursor.Kind == doc.BeforeFirstChild {
		target = cursor.Parent
	}
	var region geom.Rect
	ok := false
	if target == root && l != nil {
		region, ok = l.Region, true
	} else {
		region, ok = findNode(l, target)
	}
	if !ok {
		return geom.Pos{}, false
	}
	pos := region.Pos
	if cursor.Kind == doc.InText {
		pos.Col += uint32(cursor.CharIndex)
	}
	return pos, true
}

func findNode(l *layout.Layout, target forest.NodeID) (geom.Rect, bool) {
	if l == nil {
		return geom.Rect{}, false
	}
	switch l.Kind {
	case layout.KindText:
		if l.Node == target {
			return l.Region, true
		}
	case layout.KindChild:
		if l.Node == target {
			return l.Region, true
		}
		return findNode(l.Child, target)
	case layout.KindConcat:
		if r, ok := findNode(l.Left, target); ok {
			return r, true
		}
		return findNode(l.Right, target)
	case layout.KindFlush:
		return findNode(l.Inner, target)
	}
	return geom.Rect{}, false
}
