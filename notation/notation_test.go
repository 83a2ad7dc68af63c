package notation

import (
	"testing"

	"github.com/synless/synless/style"
)

func TestEqualIdenticalLiteralsMatch(t *testing.T) {
	a := Literal("x", style.Default())
	b := Literal("x", style.Default())
	if !Equal(a, b) {
		t.Fatalf("expected identical literals to be equal")
	}
}

func TestEqualDistinguishesLiteralText(t *testing.T) {
	a := Literal("x", style.Default())
	b := Literal("y", style.Default())
	if Equal(a, b) {
		t.Fatalf("expected differing literal text to be unequal")
	}
}

func TestEqualRecursesIntoConcat(t *testing.T) {
	a := Concat(Child(0), Literal("=", style.Default()))
	b := Concat(Child(0), Literal("=", style.Default()))
	c := Concat(Child(1), Literal("=", style.Default()))
	if !Equal(a, b) {
		t.Fatalf("expected structurally identical concats to be equal")
	}
	if Equal(a, c) {
		t.Fatalf("expected differing child index to be unequal")
	}
}

func TestEqualDistinguishesKind(t *testing.T) {
	if Equal(Empty(), Literal("", style.Default())) {
		t.Fatalf("expected Empty and an empty Literal to be unequal (different kinds)")
	}
}

func TestEqualRecursesIntoRepeat(t *testing.T) {
	r1 := MakeRepeat(Repeat{
		Empty:    Empty(),
		Lone:     Child(0),
		Join:     Concat(SentinelNotation(Left), SentinelNotation(Right)),
		Surround: SentinelNotation(Surrounded),
	})
	r2 := MakeRepeat(Repeat{
		Empty:    Empty(),
		Lone:     Child(0),
		Join:     Concat(SentinelNotation(Left), SentinelNotation(Right)),
		Surround: SentinelNotation(Surrounded),
	})
	if !Equal(r1, r2) {
		t.Fatalf("expected structurally identical repeats to be equal")
	}
}

func TestNestStacksAmount(t *testing.T) {
	n := Nest(2, Nest(3, Child(0)))
	if n.NestAmount != 2 || n.Inner.NestAmount != 3 {
		t.Fatalf("expected nest amounts preserved separately until requirement.Nest sums them, got %+v", n)
	}
}
