package render

import (
	"testing"

	"github.com/synless/synless/doc"
	"github.com/synless/synless/forest"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/layout"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/style"
)

// bindingsFixture builds a two-line "h = left\nj = down" document and
// its layout, returning the ids the cursor tests reference.
func bindingsFixture(t *testing.T) (f *forest.Forest, root, secondBinding, secondValue forest.NodeID, l *layout.Layout) {
	t.Helper()
	lg := lang.New("keyval")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	for _, s := range []lang.Sort{"key", "value", "binding", "list"} {
		must(lg.AddSort(s))
	}
	must(lg.AddConstruct(lang.Construct{Name: "key", Sort: "key", Arity: lang.Text()}))
	must(lg.AddConstruct(lang.Construct{Name: "value", Sort: "value", Arity: lang.Text()}))
	must(lg.AddConstruct(lang.Construct{Name: "binding", Sort: "binding", Arity: lang.Fixed("key", "value")}))
	must(lg.AddConstruct(lang.Construct{Name: "list", Sort: "list", Arity: lang.Flexible("binding")}))

	ns := lang.NewNotationSet("source", lg)
	plain := style.Default()
	must(ns.Set("key", notation.Text(plain)))
	must(ns.Set("value", notation.Text(plain)))
	must(ns.Set("binding", notation.Concat(
		notation.Child(0),
		notation.Concat(notation.Literal(" = ", plain), notation.Child(1)),
	)))
	must(ns.Set("list", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Empty(),
		Lone:     notation.Child(0),
		Join:     notation.Concat(notation.Flush(notation.SentinelNotation(notation.Left)), notation.SentinelNotation(notation.Right)),
		Surround: notation.SentinelNotation(notation.Surrounded),
	})))

	f = forest.New()
	k1 := f.NewLeaf("key", "h")
	v1 := f.NewLeaf("value", "left")
	b1, err := f.NewBranch("binding", []forest.NodeID{k1, v1})
	if err != nil {
		t.Fatal(err)
	}
	k2 := f.NewLeaf("key", "j")
	v2 := f.NewLeaf("value", "down")
	b2, err := f.NewBranch("binding", []forest.NodeID{k2, v2})
	if err != nil {
		t.Fatal(err)
	}
	root, err = f.NewBranch("list", []forest.NodeID{b1, b2})
	if err != nil {
		t.Fatal(err)
	}
	l, err = layout.Compute(f, ns, root, 80)
	if err != nil {
		t.Fatal(err)
	}
	return f, root, b2, v2, l
}

func TestLocateCursorInText(t *testing.T) {
	_, root, _, v2, l := bindingsFixture(t)
	// "j = down": the value starts at column 4 of row 1; a cursor two
	// code points in sits at column 6.
	pos, ok := LocateCursor(l, root, doc.AtText(v2, 2))
	if !ok {
		t.Fatal("expected the text node to be locatable in the layout")
	}
	if pos != (geom.Pos{Row: 1, Col: 6}) {
		t.Fatalf("got %v, want (1,6)", pos)
	}
}

func TestLocateCursorAfterNode(t *testing.T) {
	_, root, b2, _, l := bindingsFixture(t)
	pos, ok := LocateCursor(l, root, doc.AtAfter(b2))
	if !ok {
		t.Fatal("expected the binding to be locatable in the layout")
	}
	if pos != (geom.Pos{Row: 1, Col: 0}) {
		t.Fatalf("got %v, want (1,0)", pos)
	}
}

func TestLocateCursorAtRoot(t *testing.T) {
	_, root, _, _, l := bindingsFixture(t)
	pos, ok := LocateCursor(l, root, doc.AtAfter(root))
	if !ok {
		t.Fatal("expected the root itself to be locatable")
	}
	if pos != geom.Zero() {
		t.Fatalf("got %v, want origin", pos)
	}
}

func TestLocateCursorMissingNode(t *testing.T) {
	f, root, _, _, l := bindingsFixture(t)
	stray := f.NewLeaf("key", "x")
	if _, ok := LocateCursor(l, root, doc.AtAfter(stray)); ok {
		t.Fatal("expected a node outside the layout to be unlocatable")
	}
}
