package layout

import (
	"testing"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/style"
)

// jsonLanguage builds a small JSON language with its one-line "source"
// notation set: objects and arrays fold their children with ", ",
// strings and keys carry their own quotes, and the keyword literals
// print themselves.
func jsonLanguage(t *testing.T) (*lang.Language, *lang.NotationSet) {
	t.Helper()
	l := lang.New("json")
	mustSorts(t, l, "value", "key", "member")
	mustAdd(t, l, lang.Construct{Name: "key", Sort: "key", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "string", Sort: "value", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "number", Sort: "value", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "true", Sort: "value", Arity: lang.Fixed()})
	mustAdd(t, l, lang.Construct{Name: "false", Sort: "value", Arity: lang.Fixed()})
	mustAdd(t, l, lang.Construct{Name: "null", Sort: "value", Arity: lang.Fixed()})
	mustAdd(t, l, lang.Construct{Name: "member", Sort: "member", Arity: lang.Fixed("key", "value")})
	mustAdd(t, l, lang.Construct{Name: "array", Sort: "value", Arity: lang.Flexible("value")})
	mustAdd(t, l, lang.Construct{Name: "object", Sort: "value", Arity: lang.Flexible("member")})

	ns := lang.NewNotationSet("source", l)
	plain := style.Default()
	quoted := func(inner notation.Notation) notation.Notation {
		return notation.Concat(notation.Literal("\"", plain),
			notation.Concat(inner, notation.Literal("\"", plain)))
	}
	bracketed := func(open, close string, inner notation.Notation) notation.Notation {
		return notation.Concat(notation.Literal(open, plain),
			notation.Concat(inner, notation.Literal(close, plain)))
	}
	commaJoin := notation.Concat(
		notation.SentinelNotation(notation.Left),
		notation.Concat(notation.Literal(", ", plain), notation.SentinelNotation(notation.Right)),
	)
	mustSet(t, ns, "key", quoted(notation.Text(plain)))
	mustSet(t, ns, "string", quoted(notation.Text(plain)))
	mustSet(t, ns, "number", notation.Text(plain))
	mustSet(t, ns, "true", notation.Literal("true", plain))
	mustSet(t, ns, "false", notation.Literal("false", plain))
	mustSet(t, ns, "null", notation.Literal("null", plain))
	mustSet(t, ns, "member", notation.Concat(
		notation.Child(0),
		notation.Concat(notation.Literal(": ", plain), notation.Child(1)),
	))
	mustSet(t, ns, "array", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Literal("[]", plain),
		Lone:     bracketed("[", "]", notation.Child(0)),
		Join:     commaJoin,
		Surround: bracketed("[", "]", notation.SentinelNotation(notation.Surrounded)),
	}))
	mustSet(t, ns, "object", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Literal("{}", plain),
		Lone:     bracketed("{", "}", notation.Child(0)),
		Join:     commaJoin,
		Surround: bracketed("{", "}", notation.SentinelNotation(notation.Surrounded)),
	}))
	return l, ns
}

// TestJSONPrintRoundTrip pins the canonical round-trip document: the
// tree for {"primitives": [true, false, null, 5.3, "string!"]} printed
// with the source notation set reproduces the source text exactly.
func TestJSONPrintRoundTrip(t *testing.T) {
	_, ns := jsonLanguage(t)
	f := forest.New()

	newBranch := func(construct string, children ...forest.NodeID) forest.NodeID {
		t.Helper()
		id, err := f.NewBranch(construct, children)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	array := newBranch("array",
		newBranch("true"),
		newBranch("false"),
		newBranch("null"),
		f.NewLeaf("number", "5.3"),
		f.NewLeaf("string", "string!"),
	)
	member := newBranch("member", f.NewLeaf("key", "primitives"), array)
	object := newBranch("object", member)

	lt, err := Compute(f, ns, object, 80)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"primitives": [true, false, null, 5.3, "string!"]}`
	if got := flatten(f, lt); got != want {
		t.Fatalf("round-trip mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestJSONEmptyAndLoneContainers(t *testing.T) {
	_, ns := jsonLanguage(t)
	f := forest.New()

	empty, err := f.NewBranch("array", nil)
	if err != nil {
		t.Fatal(err)
	}
	lt, err := Compute(f, ns, empty, 80)
	if err != nil {
		t.Fatal(err)
	}
	if got := flatten(f, lt); got != "[]" {
		t.Fatalf("empty array: got %q", got)
	}

	tr, err := f.NewBranch("true", nil)
	if err != nil {
		t.Fatal(err)
	}
	lone, err := f.NewBranch("array", []forest.NodeID{tr})
	if err != nil {
		t.Fatal(err)
	}
	lt, err = Compute(f, ns, lone, 80)
	if err != nil {
		t.Fatal(err)
	}
	if got := flatten(f, lt); got != "[true]" {
		t.Fatalf("lone array: got %q", got)
	}
}
