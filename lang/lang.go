// Package lang implements the language registry: constructs, sorts, and
// notation sets (spec.md §3 "Language", "Notation set", §4.C
// validation rules). A Language is grow-only, matching spec.md §9
// ("Global mutable state" — the registry is an explicit, grow-only
// value passed into every operation that needs it, never ambient).
package lang

import (
	"fmt"

	"github.com/synless/synless/notation"
	"github.com/synless/synless/synlerr"
)

var (
	ErrDuplicateKey              = synlerr.ErrDuplicateKey
	ErrDuplicateConstruct        = synlerr.ErrDuplicateConstruct
	ErrDuplicateSort             = synlerr.ErrDuplicateSort
	ErrDuplicateConstructAndSort = synlerr.ErrDuplicateConstructAndSort
	ErrUndefinedConstructOrSort  = synlerr.ErrUndefinedConstructOrSort
	ErrMissingNotation           = synlerr.ErrMissingNotation
)

// Sort is an abstract type constraining which constructs may appear
// where; it has no structure beyond its name.
type Sort string

// ArityKind tags the three shapes a construct's children may take.
type ArityKind uint8

const (
	// ArityText holds a string payload and no children.
	ArityText ArityKind = iota
	// ArityFixed holds a prescribed tuple of sorts, one child each.
	ArityFixed
	// ArityFlexible holds any number of children of one sort.
	ArityFlexible
)

// Arity describes what children a construct accepts.
type Arity struct {
	Kind  ArityKind
	Sorts []Sort // ArityFixed: one entry per required child, in order
	Sort  Sort   // ArityFlexible: the sort every child must have
}

// Text is the Text arity.
func Text() Arity { return Arity{Kind: ArityText} }

// Fixed is the Fixed arity naming the sort of each positional child.
func Fixed(sorts ...Sort) Arity { return Arity{Kind: ArityFixed, Sorts: sorts} }

// Flexible is the Flexible arity: any number of children of one sort.
func Flexible(sort Sort) Arity { return Arity{Kind: ArityFlexible, Sort: sort} }

// FixedArity returns the number of required children for ArityFixed, or -1
// if the arity is not fixed-count (Text holds no children, Flexible
// holds any count).
func (a Arity) FixedArity() int {
	if a.Kind == ArityFixed {
		return len(a.Sorts)
	}
	return -1
}

// Construct is a named node type in a language.
type Construct struct {
	Name  string
	Sort  Sort
	Arity Arity
	Key   rune // 0 if the construct has no keyboard shortcut
}

// Language is a registry of sorts and the constructs that produce
// them. It is grow-only: sorts and constructs are never removed once
// added, only ever inserted.
type Language struct {
	Name       string
	sorts      map[Sort]bool
	constructs map[string]Construct
	bySort     map[Sort][]string
	byKey      map[rune]string
}

// New creates an empty, named language.
func New(name string) *Language {
	return &Language{
		Name:       name,
		sorts:      make(map[Sort]bool),
		constructs: make(map[string]Construct),
		bySort:     make(map[Sort][]string),
		byKey:      make(map[rune]string),
	}
}

// AddSort registers a sort name, failing with ErrDuplicateSort if it is
// already registered.
func (l *Language) AddSort(s Sort) error {
	if l.sorts[s] {
		return fmt.Errorf("lang: sort %q: %w", s, ErrDuplicateSort)
	}
	l.sorts[s] = true
	return nil
}

// AddConstruct inserts a construct, failing if its name, its key, or
// its sort/arity reference an unregistered sort, or duplicate an
// existing registration.
func (l *Language) AddConstruct(c Construct) error {
	_, nameTaken := l.constructs[c.Name]
	sortTaken := false
	for _, existing := range l.bySort[c.Sort] {
		if existing == c.Name {
			sortTaken = true
			break
		}
	}
	switch {
	case nameTaken && sortTaken:
		return fmt.Errorf("lang: construct %q in sort %q: %w (%w)", c.Name, c.Sort, ErrDuplicateConstructAndSort, ErrDuplicateConstruct)
	case nameTaken:
		return fmt.Errorf("lang: construct %q: %w", c.Name, ErrDuplicateConstruct)
	}
	if c.Key != 0 {
		if other, ok := l.byKey[c.Key]; ok {
			return fmt.Errorf("lang: key %q already bound to %q: %w", c.Key, other, ErrDuplicateKey)
		}
	}
	if !l.sorts[c.Sort] {
		return fmt.Errorf("lang: construct %q: sort %q: %w", c.Name, c.Sort, ErrUndefinedConstructOrSort)
	}
	for _, s := range c.Arity.Sorts {
		if !l.sorts[s] {
			return fmt.Errorf("lang: construct %q: child sort %q: %w", c.Name, s, ErrUndefinedConstructOrSort)
		}
	}
	if c.Arity.Kind == ArityFlexible && !l.sorts[c.Arity.Sort] {
		return fmt.Errorf("lang: construct %q: child sort %q: %w", c.Name, c.Arity.Sort, ErrUndefinedConstructOrSort)
	}

	l.constructs[c.Name] = c
	l.bySort[c.Sort] = append(l.bySort[c.Sort], c.Name)
	if c.Key != 0 {
		l.byKey[c.Key] = c.Name
	}
	return nil
}

// Construct looks up a construct by name.
func (l *Language) Construct(name string) (Construct, error) {
	c, ok := l.constructs[name]
	if !ok {
		return Construct{}, fmt.Errorf("lang: %q: %w", name, ErrUndefinedConstructOrSort)
	}
	return c, nil
}

// BySort lists the construct names registered under a sort, in
// insertion order.
func (l *Language) BySort(s Sort) []string {
	out := make([]string, len(l.bySort[s]))
	copy(out, l.bySort[s])
	return out
}

// ByKey looks up the construct bound to a keyboard shortcut.
func (l *Language) ByKey(k rune) (string, bool) {
	name, ok := l.byKey[k]
	return name, ok
}

// AllowsSort reports whether a construct may appear as a child with
// the given sort requirement: true if the construct is registered and
// its own sort equals sort. There is no wildcard sort.
func (l *Language) AllowsSort(constructName string, sort Sort) bool {
	c, ok := l.constructs[constructName]
	return ok && c.Sort == sort
}

// NotationSet maps construct name to the Notation used to render it. A
// language may have several named notation sets; exactly one is active
// per document (spec.md §3).
type NotationSet struct {
	Name     string
	Language *Language
	byName   map[string]notation.Notation
}

// NewNotationSet creates an empty notation set bound to a language.
func NewNotationSet(name string, l *Language) *NotationSet {
	return &NotationSet{Name: name, Language: l, byName: make(map[string]notation.Notation)}
}

// Set installs the notation for a construct, validating it against the
// construct's arity per spec.md §4.C: Child(i) indices must be valid
// for a Fixed arity, Repeat may only appear under Flexible arity, and
// Text may only appear under Text arity.
func (ns *NotationSet) Set(constructName string, n notation.Notation) error {
	c, err := ns.Language.Construct(constructName)
	if err != nil {
		return err
	}
	if err := validate(n, c, false); err != nil {
		return fmt.Errorf("lang: notation for %q: %w", constructName, err)
	}
	ns.byName[constructName] = n
	return nil
}

// Get returns the notation installed for a construct, or
// ErrMissingNotation if the set has none.
func (ns *NotationSet) Get(constructName string) (notation.Notation, error) {
	n, ok := ns.byName[constructName]
	if !ok {
		return notation.Notation{}, fmt.Errorf("lang: %q: %w", constructName, ErrMissingNotation)
	}
	return n, nil
}

// validate walks a notation checking it against the host construct's
// arity. inRepeat is set while inside a Repeat's sub-notations, where a
// Flexible-arity construct may reference its children positionally
// (Lone references Child(0)); everywhere else Child demands a Fixed
// arity with the index in range.
func validate(n notation.Notation, c Construct, inRepeat bool) error {
	switch n.Kind {
	case notation.KindEmpty, notation.KindLiteral, notation.KindSentinel:
		return nil
	case notation.KindText:
		if c.Arity.Kind != ArityText {
			return fmt.Errorf("Text notation on non-Text arity construct %q", c.Name)
		}
		return nil
	case notation.KindChild:
		if c.Arity.Kind == ArityFlexible && inRepeat {
			if n.ChildIndex < 0 {
				return fmt.Errorf("Child(%d) index negative for %q", n.ChildIndex, c.Name)
			}
			return nil
		}
		if c.Arity.Kind != ArityFixed {
			return fmt.Errorf("Child(%d) notation on non-Fixed arity construct %q", n.ChildIndex, c.Name)
		}
		if n.ChildIndex < 0 || n.ChildIndex >= len(c.Arity.Sorts) {
			return fmt.Errorf("Child(%d) out of range for %q (arity %d)", n.ChildIndex, c.Name, len(c.Arity.Sorts))
		}
		return nil
	case notation.KindConcat:
		if err := validate(*n.Left, c, inRepeat); err != nil {
			return err
		}
		return validate(*n.Right, c, inRepeat)
	case notation.KindFlush, notation.KindNest, notation.KindNoWrap:
		return validate(*n.Inner, c, inRepeat)
	case notation.KindChoice:
		if err := validate(*n.Preferred, c, inRepeat); err != nil {
			return err
		}
		return validate(*n.Fallback, c, inRepeat)
	case notation.KindIfEmptyText:
		if c.Arity.Kind != ArityText {
			return fmt.Errorf("IfEmptyText notation on non-Text arity construct %q", c.Name)
		}
		if err := validate(*n.WhenEmpty, c, inRepeat); err != nil {
			return err
		}
		return validate(*n.WhenNonEmpty, c, inRepeat)
	case notation.KindRepeat:
		if c.Arity.Kind != ArityFlexible {
			return fmt.Errorf("Repeat notation on non-Flexible arity construct %q", c.Name)
		}
		if inRepeat {
			return fmt.Errorf("nested Repeat notation on %q", c.Name)
		}
		r := n.Repeat
		if err := validate(r.Empty, c, true); err != nil {
			return err
		}
		if err := validate(r.Lone, c, true); err != nil {
			return err
		}
		if err := validate(r.Join, c, true); err != nil {
			return err
		}
		return validate(r.Surround, c, true)
	}
	return fmt.Errorf("unknown notation kind %d", n.Kind)
}
