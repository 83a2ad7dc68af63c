// Package forest implements the arena that owns every node of a
// document session, adapted from the teacher's index-linked UI tree
// (kungfusheep-glyph's arena.go: Node{Parent, FirstChild, LastChild,
// NextSib} stored in a flat slice for near-zero allocation). spec.md
// §3/§4.E additionally requires doubly-linked siblings (for
// prev-sibling navigation) and generation-tagged ids so that a stale
// id from before a deletion can be told apart from a live one — a
// detail confirmed by original_source/src/language/storage.rs's
// generation-counter arena.
package forest

import (
	"fmt"

	"github.com/synless/synless/lang"
	"github.com/synless/synless/synlerr"
)

// NodeID opaquely identifies a node within one Forest. Ids are never
// reused within a session: a deleted slot's generation is bumped so a
// held id becomes detectably stale rather than silently aliasing a new
// node.
type NodeID struct {
	index int32
	gen   int32
}

// IsZero reports whether id is the zero value (never returned by any
// constructor, used as a "no such node" sentinel in slice links).
func (id NodeID) IsZero() bool { return id == NodeID{} }

type node struct {
	construct string
	gen       int32
	alive     bool

	parent                NodeID
	firstChild, lastChild NodeID
	prevSib, nextSib      NodeID

	// Text-arity payload. Stored as runes so InText cursor offsets are
	// code-point indices per spec.md §9's open-question resolution.
	text []rune

	// Fixed/Flexible-arity payload: ordered child ids.
	children []NodeID
}

// Forest owns all nodes of one document session. The outside world
// holds NodeID values and only ever reaches a node through the
// forest's methods — there are no exported pointers into the arena,
// matching the teacher's arena (int16-indexed Node slice, no pointers
// escaping Frame).
type Forest struct {
	nodes []node
}

// New creates an empty forest.
func New() *Forest {
	return &Forest{nodes: []node{{}}} // index 0 reserved as the zero/invalid slot
}

func (f *Forest) alloc(n node) NodeID {
	n.alive = true
	idx := int32(len(f.nodes))
	n.gen = 1
	f.nodes = append(f.nodes, n)
	return NodeID{index: idx, gen: n.gen}
}

func (f *Forest) get(id NodeID) (*node, error) {
	if id.index <= 0 || int(id.index) >= len(f.nodes) {
		return nil, fmt.Errorf("forest: %v: no such node", id)
	}
	n := &f.nodes[id.index]
	if !n.alive || n.gen != id.gen {
		return nil, fmt.Errorf("forest: %v: stale or deleted node id", id)
	}
	return n, nil
}

// NewLeaf creates a Text-arity node holding the given string.
func (f *Forest) NewLeaf(construct string, text string) NodeID {
	return f.alloc(node{construct: construct, text: []rune(text)})
}

// NewBranch creates a node with the given ordered children. Children
// must not already be parented; use Detach or Remove (package doc) to
// detach a node before reparenting it.
func (f *Forest) NewBranch(construct string, children []NodeID) (NodeID, error) {
	for _, c := range children {
		cn, err := f.get(c)
		if err != nil {
			return NodeID{}, err
		}
		if !cn.parent.IsZero() {
			return NodeID{}, fmt.Errorf("forest: child %v: %w", c, synlerr.ErrOrphan)
		}
	}
	id := f.alloc(node{construct: construct, children: append([]NodeID(nil), children...)})
	for _, c := range children {
		cn, _ := f.get(c)
		cn.parent = id
	}
	f.relinkSiblings(id)
	return id, nil
}

// relinkSiblings rebuilds the doubly-linked sibling chain for n's
// children list after a structural change to n.children.
func (f *Forest) relinkSiblings(id NodeID) {
	n, err := f.get(id)
	if err != nil {
		return
	}
	var prev NodeID
	for _, c := range n.children {
		cn, _ := f.get(c)
		cn.prevSib = prev
		if !prev.IsZero() {
			pn, _ := f.get(prev)
			pn.nextSib = c
		}
		prev = c
	}
	if len(n.children) > 0 {
		cn, _ := f.get(n.children[len(n.children)-1])
		cn.nextSib = NodeID{}
		n.firstChild = n.children[0]
		n.lastChild = n.children[len(n.children)-1]
	} else {
		n.firstChild = NodeID{}
		n.lastChild = NodeID{}
	}
}

// Construct returns the construct name of a node.
func (f *Forest) Construct(id NodeID) (string, error) {
	n, err := f.get(id)
	if err != nil {
		return "", err
	}
	return n.construct, nil
}

// Text returns a text node's payload as code points.
func (f *Forest) Text(id NodeID) ([]rune, error) {
	n, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return n.text, nil
}

// SetText replaces a text node's payload.
func (f *Forest) SetText(id NodeID, text []rune) error {
	n, err := f.get(id)
	if err != nil {
		return err
	}
	n.text = text
	return nil
}

// Children returns a node's ordered child list (empty for Text-arity
// nodes).
func (f *Forest) Children(id NodeID) ([]NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out, nil
}

// Parent returns the parent of id, or the zero NodeID if id is a root.
func (f *Forest) Parent(id NodeID) (NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.parent, nil
}

// FirstChild, LastChild, NextSibling and PrevSibling return the
// adjacent node, or the zero NodeID if there is none.
func (f *Forest) FirstChild(id NodeID) (NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.firstChild, nil
}

func (f *Forest) LastChild(id NodeID) (NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.lastChild, nil
}

func (f *Forest) NextSibling(id NodeID) (NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.nextSib, nil
}

func (f *Forest) PrevSibling(id NodeID) (NodeID, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.prevSib, nil
}

// indexInParent returns id's position in its parent's children slice,
// or -1 if id is a root.
func (f *Forest) indexInParent(id NodeID) (NodeID, int, error) {
	n, err := f.get(id)
	if err != nil {
		return NodeID{}, -1, err
	}
	if n.parent.IsZero() {
		return NodeID{}, -1, nil
	}
	pn, err := f.get(n.parent)
	if err != nil {
		return NodeID{}, -1, err
	}
	for i, c := range pn.children {
		if c == id {
			return n.parent, i, nil
		}
	}
	return n.parent, -1, fmt.Errorf("forest: %v: not found among parent's children (corrupt arena)", id)
}

// InsertBefore inserts newChild immediately before sibling among
// sibling's parent's children. Fails with ErrOrphan if newChild is
// already parented.
func (f *Forest) InsertBefore(sibling, newChild NodeID) error {
	return f.insertAt(sibling, newChild, 0)
}

// InsertAfter inserts newChild immediately after sibling.
func (f *Forest) InsertAfter(sibling, newChild NodeID) error {
	return f.insertAt(sibling, newChild, 1)
}

func (f *Forest) insertAt(sibling, newChild NodeID, offset int) error {
	cn, err := f.get(newChild)
	if err != nil {
		return err
	}
	if !cn.parent.IsZero() {
		return fmt.Errorf("forest: %v: %w", newChild, synlerr.ErrOrphan)
	}
	parent, idx, err := f.indexInParent(sibling)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("forest: %v: has no parent to insert relative to", sibling)
	}
	pn, err := f.get(parent)
	if err != nil {
		return err
	}
	pos := idx + offset
	pn.children = append(pn.children, NodeID{})
	copy(pn.children[pos+1:], pn.children[pos:])
	pn.children[pos] = newChild
	cn.parent = parent
	f.relinkSiblings(parent)
	return nil
}

// InsertFirstChild inserts newChild as parent's first child.
func (f *Forest) InsertFirstChild(parent, newChild NodeID) error {
	cn, err := f.get(newChild)
	if err != nil {
		return err
	}
	if !cn.parent.IsZero() {
		return fmt.Errorf("forest: %v: %w", newChild, synlerr.ErrOrphan)
	}
	pn, err := f.get(parent)
	if err != nil {
		return err
	}
	pn.children = append([]NodeID{newChild}, pn.children...)
	cn.parent = parent
	f.relinkSiblings(parent)
	return nil
}

// InsertLastChild inserts newChild as parent's last child.
func (f *Forest) InsertLastChild(parent, newChild NodeID) error {
	cn, err := f.get(newChild)
	if err != nil {
		return err
	}
	if !cn.parent.IsZero() {
		return fmt.Errorf("forest: %v: %w", newChild, synlerr.ErrOrphan)
	}
	pn, err := f.get(parent)
	if err != nil {
		return err
	}
	pn.children = append(pn.children, newChild)
	cn.parent = parent
	f.relinkSiblings(parent)
	return nil
}

// Detach removes id from its parent's children list without deleting
// it, leaving id as a parentless root the caller may reinsert
// elsewhere. Used by Delete and by package doc's edit commands.
func (f *Forest) Detach(id NodeID) error {
	n, err := f.get(id)
	if err != nil {
		return err
	}
	if n.parent.IsZero() {
		return nil
	}
	parent := n.parent
	pn, err := f.get(parent)
	if err != nil {
		return err
	}
	for i, c := range pn.children {
		if c == id {
			pn.children = append(pn.children[:i], pn.children[i+1:]...)
			break
		}
	}
	n.parent = NodeID{}
	f.relinkSiblings(parent)
	return nil
}

// Delete recursively frees id and all its descendants. Freed ids are
// never reused: their arena slot's generation is bumped so any held
// copy of the id becomes detectably stale.
func (f *Forest) Delete(id NodeID) error {
	n, err := f.get(id)
	if err != nil {
		return err
	}
	if !n.parent.IsZero() {
		if err := f.Detach(id); err != nil {
			return err
		}
		n, _ = f.get(id)
	}
	return f.deleteSubtree(id, n)
}

func (f *Forest) deleteSubtree(id NodeID, n *node) error {
	for _, c := range n.children {
		cn, err := f.get(c)
		if err != nil {
			continue
		}
		if err := f.deleteSubtree(c, cn); err != nil {
			return err
		}
	}
	n.alive = false
	n.gen++
	n.children = nil
	n.text = nil
	n.parent = NodeID{}
	n.firstChild, n.lastChild, n.prevSib, n.nextSib = NodeID{}, NodeID{}, NodeID{}, NodeID{}
	return nil
}

// Swap exchanges the positions of a and b, which may live under
// different parents (or the same one). Fails with ErrCycleDetected if
// a is an ancestor of b or vice versa, since swapping would create a
// cycle.
func (f *Forest) Swap(a, b NodeID) error {
	if f.isAncestor(a, b) || f.isAncestor(b, a) {
		return fmt.Errorf("forest: swap %v/%v: %w", a, b, synlerr.ErrCycleDetected)
	}
	pa, ia, err := f.indexInParent(a)
	if err != nil {
		return err
	}
	pb, ib, err := f.indexInParent(b)
	if err != nil {
		return err
	}
	if ia < 0 || ib < 0 {
		return fmt.Errorf("forest: swap requires both nodes to have a parent")
	}
	na, _ := f.get(a)
	nb, _ := f.get(b)
	pan, _ := f.get(pa)
	pbn, _ := f.get(pb)
	pan.children[ia] = b
	pbn.children[ib] = a
	na.parent, nb.parent = pb, pa
	f.relinkSiblings(pa)
	if pa != pb {
		f.relinkSiblings(pb)
	}
	return nil
}

func (f *Forest) isAncestor(ancestor, of NodeID) bool {
	cur, err := f.get(of)
	if err != nil {
		return false
	}
	for p := cur.parent; !p.IsZero(); {
		if p == ancestor {
			return true
		}
		pn, err := f.get(p)
		if err != nil {
			return false
		}
		p = pn.parent
	}
	return false
}

// ValidateArity checks that id's children satisfy the sorts required
// by its construct's arity in l, failing with ErrArityViolation or
// ErrSortMismatch.
func (f *Forest) ValidateArity(l *lang.Language, id NodeID) error {
	n, err := f.get(id)
	if err != nil {
		return err
	}
	c, err := l.Construct(n.construct)
	if err != nil {
		return err
	}
	switch c.Arity.Kind {
	case lang.ArityText:
		if len(n.children) != 0 {
			return fmt.Errorf("forest: %v: %w", id, synlerr.ErrArityViolation)
		}
	case lang.ArityFixed:
		if len(n.children) != len(c.Arity.Sorts) {
			return fmt.Errorf("forest: %v: expected %d children, got %d: %w", id, len(c.Arity.Sorts), len(n.children), synlerr.ErrArityViolation)
		}
		for i, child := range n.children {
			cc, err := f.get(child)
			if err != nil {
				return err
			}
			childConstruct, err := l.Construct(cc.construct)
			if err != nil {
				return err
			}
			if childConstruct.Sort != c.Arity.Sorts[i] {
				return fmt.Errorf("forest: %v: child %d sort %q, want %q: %w", id, i, childConstruct.Sort, c.Arity.Sorts[i], synlerr.ErrSortMismatch)
			}
		}
	case lang.ArityFlexible:
		for _, child := range n.children {
			cc, err := f.get(child)
			if err != nil {
				return err
			}
			childConstruct, err := l.Construct(cc.construct)
			if err != nil {
				return err
			}
			if childConstruct.Sort != c.Arity.Sort {
				return fmt.Errorf("forest: %v: child sort %q, want %q: %w", id, childConstruct.Sort, c.Arity.Sort, synlerr.ErrSortMismatch)
			}
		}
	}
	return nil
}

func (id NodeID) String() string { return fmt.Sprintf("node#%d.%d", id.index, id.gen) }
