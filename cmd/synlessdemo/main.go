// Command synlessdemo is a minimal, illustrative wiring of the core
// packages into one runnable event loop: it is the out-of-core CLI
// surface spec.md §6 describes ("a single program that loads
// languages, opens a document, and runs an event loop"), not part of
// the core itself. It hard-codes a tiny keymap language instead of
// reading one from disk, since the file-format loader is an external
// collaborator per spec.md §1. Exit codes follow spec.md §6: 0 normal,
// 1 error.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/synless/synless/doc"
	"github.com/synless/synless/forest"
	"github.com/synless/synless/frontend"
	"github.com/synless/synless/geom"
	"github.com/synless/synless/lang"
	"github.com/synless/synless/layout"
	"github.com/synless/synless/notation"
	"github.com/synless/synless/render"
	"github.com/synless/synless/style"
	"github.com/synless/synless/term"
)

// session bundles everything keyhintDocument builds, so run can open a
// Document against it without package-level state.
type session struct {
	forest *forest.Forest
	lang   *lang.Language
	ns     *lang.NotationSet
	root   forest.NodeID
}

// keyhintDocument builds the language and tree from spec.md §8
// scenario 1: a "binding" construct pairing a key and a description,
// and a "keymap" that lists them one per line.
func keyhintDocument() (*session, error) {
	l := lang.New("keyhint")
	for _, s := range []lang.Sort{"key", "desc", "binding", "keymap"} {
		if err := l.AddSort(s); err != nil {
			return nil, err
		}
	}
	add := func(c lang.Construct) error { return l.AddConstruct(c) }
	if err := add(lang.Construct{Name: "key", Sort: "key", Arity: lang.Text()}); err != nil {
		return nil, err
	}
	if err := add(lang.Construct{Name: "desc", Sort: "desc", Arity: lang.Text()}); err != nil {
		return nil, err
	}
	if err := add(lang.Construct{Name: "binding", Sort: "binding", Arity: lang.Fixed("key", "desc")}); err != nil {
		return nil, err
	}
	if err := add(lang.Construct{Name: "keymap", Sort: "keymap", Arity: lang.Flexible("binding")}); err != nil {
		return nil, err
	}

	ns := lang.NewNotationSet("source", l)
	plain := style.Default()
	if err := ns.Set("key", notation.Text(plain.Bold())); err != nil {
		return nil, err
	}
	if err := ns.Set("desc", notation.Text(plain)); err != nil {
		return nil, err
	}
	if err := ns.Set("binding", notation.Concat(
		notation.Child(0),
		notation.Concat(notation.Literal(" ", plain), notation.Child(1)),
	)); err != nil {
		return nil, err
	}
	if err := ns.Set("keymap", notation.MakeRepeat(notation.Repeat{
		Empty: notation.Empty(),
		Lone:  notation.Child(0),
		Join: notation.Concat(
			notation.Flush(notation.SentinelNotation(notation.Left)),
			notation.SentinelNotation(notation.Right),
		),
		Surround: notation.SentinelNotation(notation.Surrounded),
	})); err != nil {
		return nil, err
	}

	f := forest.New()
	pairs := [][2]string{{"h", "left"}, {"j", "down"}, {"k", "up"}, {"l", "right"}, {"q", "quit"}}
	var bindings []forest.NodeID
	for _, p := range pairs {
		k := f.NewLeaf("key", p[0])
		d := f.NewLeaf("desc", p[1])
		b, err := f.NewBranch("binding", []forest.NodeID{k, d})
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	root, err := f.NewBranch("keymap", bindings)
	if err != nil {
		return nil, err
	}
	return &session{forest: f, lang: l, ns: ns, root: root}, nil
}

// docProvider resolves the single "main" pane label to the one
// document this demo shows, recomputing its layout at the pane's
// current width on every call (spec.md §1 explicitly excludes
// incremental re-layout caching).
type docProvider struct {
	doc   *doc.Document
	width func() uint32
}

func (p docProvider) Document(label string) (render.Document, error) {
	lt, err := layout.Compute(p.doc.Forest, p.doc.ActiveNotationSet, p.doc.RootID, p.width())
	if err != nil {
		return render.Document{}, err
	}
	pos, ok := render.LocateCursor(lt, p.doc.RootID, p.doc.Cursor)
	return render.Document{Forest: p.doc.Forest, Layout: lt, CursorPos: pos, HasCursor: ok}, nil
}

func run() error {
	sess, err := keyhintDocument()
	if err != nil {
		return fmt.Errorf("synlessdemo: building language: %w", err)
	}
	document := doc.New(sess.forest, sess.root, sess.lang, sess.ns, doc.AtAfter(sess.root))

	tty, err := term.Open()
	if err != nil {
		return fmt.Errorf("synlessdemo: opening terminal: %w", err)
	}
	defer tty.Close()

	width := func() uint32 {
		size, err := tty.Size()
		if err != nil {
			return 80
		}
		return size.Col
	}
	renderer := render.New(style.DefaultTheme, docProvider{doc: document, width: width})
	pane := render.Doc("main", render.CursorShow, render.CursorHeight(0.3))

	for {
		size, err := tty.Size()
		if err != nil {
			return fmt.Errorf("synlessdemo: %w", err)
		}
		buf := render.NewBuffer(int(size.Col), int(size.Row))
		region := geom.Rect{Pos: geom.Zero(), Width: size.Col, Height: size.Row}
		if err := renderer.Paint(buf, region, pane); err != nil {
			return fmt.Errorf("synlessdemo: painting: %w", err)
		}
		if err := tty.StartFrame(); err != nil {
			return err
		}
		for y := 0; y < buf.Height(); y++ {
			for x := 0; x < buf.Width(); x++ {
				c := buf.Get(x, y)
				if c.Rune == 0 {
					continue
				}
				tty.Print(geom.Pos{Row: uint32(y), Col: uint32(x)}, string(c.Rune), c.Style)
			}
		}
		if err := tty.ShowFrame(); err != nil {
			return err
		}

		ev, ok, err := tty.NextEvent()
		if err != nil {
			return fmt.Errorf("synlessdemo: %w", err)
		}
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if ev.Kind != frontend.EventKey {
			continue
		}
		// Navigation errors are AtEdge no-op indications; dropping them
		// leaves the cursor where it was.
		switch {
		case ev.Key.Kind == frontend.KeyChar && ev.Key.Ch == 'q':
			return nil
		case ev.Key.Kind == frontend.KeyLeft:
			_ = document.Left()
		case ev.Key.Kind == frontend.KeyRight:
			_ = document.Right()
		case ev.Key.Kind == frontend.KeyUp:
			_ = document.Up()
		case ev.Key.Kind == frontend.KeyDown:
			_ = document.Down()
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
