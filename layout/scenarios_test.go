package layout

import (
	"testing"

	"github.com/synless/synless/forest"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/style"
)

// The tests in this file pin down end-to-end formatting of small,
// concrete documents: a keyhint list, a file-selection list, a
// width-sensitive binding, and a plain fold.

func mustSet(t *testing.T, ns *lang.NotationSet, name string, n notation.Notation) {
	t.Helper()
	if err := ns.Set(name, n); err != nil {
		t.Fatal(err)
	}
}

func mustAdd(t *testing.T, l *lang.Language, c lang.Construct) {
	t.Helper()
	if err := l.AddConstruct(c); err != nil {
		t.Fatal(err)
	}
}

func mustSorts(t *testing.T, l *lang.Language, sorts ...lang.Sort) {
	t.Helper()
	for _, s := range sorts {
		if err := l.AddSort(s); err != nil {
			t.Fatal(err)
		}
	}
}

// joinLines is the usual one-per-line list fold: every accumulated
// line, a newline, then the next entry.
func joinLines() notation.Notation {
	return notation.Concat(
		notation.Flush(notation.SentinelNotation(notation.Left)),
		notation.SentinelNotation(notation.Right),
	)
}

func TestKeyhintListScenario(t *testing.T) {
	l := lang.New("keyhint")
	mustSorts(t, l, "key", "desc", "binding", "keymap")
	mustAdd(t, l, lang.Construct{Name: "key", Sort: "key", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "desc", Sort: "desc", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "binding", Sort: "binding", Arity: lang.Fixed("key", "desc")})
	mustAdd(t, l, lang.Construct{Name: "keymap", Sort: "keymap", Arity: lang.Flexible("binding")})

	ns := lang.NewNotationSet("source", l)
	plain := style.Default()
	mustSet(t, ns, "key", notation.Text(plain))
	mustSet(t, ns, "desc", notation.Text(plain))
	mustSet(t, ns, "binding", notation.Concat(
		notation.Child(0),
		notation.Concat(notation.Literal(" ", plain), notation.Child(1)),
	))
	mustSet(t, ns, "keymap", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Empty(),
		Lone:     notation.Child(0),
		Join:     joinLines(),
		Surround: notation.SentinelNotation(notation.Surrounded),
	}))

	f := forest.New()
	var bindings []forest.NodeID
	for _, p := range [][2]string{{"h", "left"}, {"l", "right"}} {
		k := f.NewLeaf("key", p[0])
		d := f.NewLeaf("desc", p[1])
		b, err := f.NewBranch("binding", []forest.NodeID{k, d})
		if err != nil {
			t.Fatal(err)
		}
		bindings = append(bindings, b)
	}
	keymap, err := f.NewBranch("keymap", bindings)
	if err != nil {
		t.Fatal(err)
	}

	for _, width := range []uint32{10, 40, 200} {
		lt, err := Compute(f, ns, keymap, width)
		if err != nil {
			t.Fatalf("width %d: %v", width, err)
		}
		if got := flatten(f, lt); got != "h left\nl right" {
			t.Fatalf("width %d: got %q, want %q", width, got, "h left\nl right")
		}
	}
}

func TestSelectionListScenario(t *testing.T) {
	l := lang.New("selection")
	mustSorts(t, l, "entry", "list")
	for _, name := range []string{"input", "custom", "literal", "nonliteral"} {
		mustAdd(t, l, lang.Construct{Name: name, Sort: "entry", Arity: lang.Text()})
	}
	mustAdd(t, l, lang.Construct{Name: "list", Sort: "list", Arity: lang.Flexible("entry")})

	ns := lang.NewNotationSet("source", l)
	plain := style.Default()
	mustSet(t, ns, "input", notation.Concat(notation.Literal("> ", plain), notation.Text(plain)))
	mustSet(t, ns, "custom", notation.Concat(notation.Literal("[+] ", plain), notation.Text(plain)))
	mustSet(t, ns, "literal", notation.Text(plain))
	mustSet(t, ns, "nonliteral", notation.Text(plain))
	mustSet(t, ns, "list", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Empty(),
		Lone:     notation.Child(0),
		Join:     joinLines(),
		Surround: notation.SentinelNotation(notation.Surrounded),
	}))

	f := forest.New()
	entries := []forest.NodeID{
		f.NewLeaf("input", "oo"),
		f.NewLeaf("custom", "oo"),
		f.NewLeaf("literal", "foobar.rs"),
		f.NewLeaf("nonliteral", ".."),
		f.NewLeaf("literal", "baz.rs"),
	}
	list, err := f.NewBranch("list", entries)
	if err != nil {
		t.Fatal(err)
	}

	lt, err := Compute(f, ns, list, 80)
	if err != nil {
		t.Fatal(err)
	}
	want := "> oo\n[+] oo\nfoobar.rs\n..\nbaz.rs"
	if got := flatten(f, lt); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestChoiceCollapseScenario pins the width-sensitive binding notation
// no_wrap(child0 + ":" + child1) | (child0 + ":") with the value
// indented on its own line. Wide enough, the one-liner wins; at width
// 5 the fallback is taken even though its own indented line overflows,
// because it overflows less.
func TestChoiceCollapseScenario(t *testing.T) {
	l := lang.New("binding")
	mustSorts(t, l, "key", "value", "binding")
	mustAdd(t, l, lang.Construct{Name: "key", Sort: "key", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "value", Sort: "value", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "binding", Sort: "binding", Arity: lang.Fixed("key", "value")})

	ns := lang.NewNotationSet("source", l)
	plain := style.Default()
	mustSet(t, ns, "key", notation.Text(plain))
	mustSet(t, ns, "value", notation.Text(plain))
	oneLine := notation.NoWrap(notation.Concat(
		notation.Child(0),
		notation.Concat(notation.Literal(":", plain), notation.Child(1)),
	))
	twoLines := notation.Concat(
		notation.Flush(notation.Concat(notation.Child(0), notation.Literal(":", plain))),
		notation.Concat(notation.Literal("  ", plain), notation.Child(1)),
	)
	mustSet(t, ns, "binding", notation.Choice(oneLine, twoLines))

	f := forest.New()
	k := f.NewLeaf("key", "key")
	v := f.NewLeaf("value", "value")
	binding, err := f.NewBranch("binding", []forest.NodeID{k, v})
	if err != nil {
		t.Fatal(err)
	}

	wide, err := Compute(f, ns, binding, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := flatten(f, wide); got != "key:value" {
		t.Fatalf("width 10: got %q, want %q", got, "key:value")
	}

	narrow, err := Compute(f, ns, binding, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := flatten(f, narrow); got != "key:\n  value" {
		t.Fatalf("width 5: got %q, want %q", got, "key:\n  value")
	}
}

func TestRepeatFoldScenario(t *testing.T) {
	l := lang.New("messages")
	mustSorts(t, l, "message", "list")
	mustAdd(t, l, lang.Construct{Name: "message", Sort: "message", Arity: lang.Text()})
	mustAdd(t, l, lang.Construct{Name: "list", Sort: "list", Arity: lang.Flexible("message")})

	ns := lang.NewNotationSet("source", l)
	mustSet(t, ns, "message", notation.Text(style.Default()))
	mustSet(t, ns, "list", notation.MakeRepeat(notation.Repeat{
		Empty:    notation.Empty(),
		Lone:     notation.Child(0),
		Join:     joinLines(),
		Surround: notation.SentinelNotation(notation.Surrounded),
	}))

	f := forest.New()
	list, err := f.NewBranch("list", []forest.NodeID{
		f.NewLeaf("message", "a"),
		f.NewLeaf("message", "b"),
		f.NewLeaf("message", "c"),
	})
	if err != nil {
		t.Fatal(err)
	}

	lt, err := Compute(f, ns, list, 80)
	if err != nil {
		t.Fatal(err)
	}
	if got := flatten(f, lt); got != "a\nb\nc" {
		t.Fatalf("got %q, want %q", got, "a\nb\nc")
	}
}
