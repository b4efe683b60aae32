package magicstring_test

import (
	"strings"
	"testing"

	"vertzc-go/packages/compiler/magicstring"
)

func apply(t *testing.T, ms *magicstring.MagicString) string {
	t.Helper()
	out, err := ms.String()
	if err != nil {
		t.Fatalf("String() failed: %v", err)
	}
	return out
}

func TestNoEdits(t *testing.T) {
	ms := magicstring.New("let x = 1;")
	if got := apply(t, ms); got != "let x = 1;" {
		t.Errorf("expected original source back, got %q", got)
	}
	if ms.HasEdits() {
		t.Error("expected HasEdits to be false")
	}
}

func TestAppendAndOverwrite(t *testing.T) {
	src := "let count = 0;"
	ms := magicstring.New(src)
	ms.Overwrite(0, 3, "const")
	ms.AppendLeft(12, "signal(")
	ms.AppendRight(13, ")")

	want := "const count = signal(0);"
	if got := apply(t, ms); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLeftBeforeRightAtSamePosition(t *testing.T) {
	// A read rewrite at an initializer's tail must land inside a wrapping
	// call's closing parenthesis.
	src := "const b = a;"
	ms := magicstring.New(src)
	ms.AppendLeft(10, "computed(() => ")
	ms.AppendRight(11, ")")
	ms.AppendLeft(11, ".value")

	want := "const b = computed(() => a.value);"
	if got := apply(t, ms); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInsertionOrderStableWithinKind(t *testing.T) {
	ms := magicstring.New("x")
	ms.AppendLeft(1, "a")
	ms.AppendLeft(1, "b")
	ms.AppendRight(1, "c")
	if got := apply(t, ms); got != "xabc" {
		t.Errorf("expected %q, got %q", "xabc", got)
	}
}

func TestOverlappingOverwritesRejected(t *testing.T) {
	ms := magicstring.New("abcdef")
	ms.Overwrite(0, 4, "x")
	ms.Overwrite(2, 6, "y")
	if _, err := ms.String(); err == nil {
		t.Fatal("expected overlapping overwrites to fail")
	} else if !strings.Contains(err.Error(), "overlapping") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInsertInsideOverwriteRejected(t *testing.T) {
	ms := magicstring.New("abcdef")
	ms.Overwrite(1, 5, "x")
	ms.AppendLeft(3, "y")
	if _, err := ms.String(); err == nil {
		t.Fatal("expected insert inside overwritten range to fail")
	}
}

func TestInsertAtOverwriteBoundaries(t *testing.T) {
	ms := magicstring.New("abcdef")
	ms.Overwrite(2, 4, "XY")
	ms.AppendLeft(2, "<")
	ms.AppendLeft(4, ">")
	if got := apply(t, ms); got != "ab<XY>ef" {
		t.Errorf("expected %q, got %q", "ab<XY>ef", got)
	}
}

func TestOutOfBoundsEditRejected(t *testing.T) {
	ms := magicstring.New("ab")
	ms.AppendLeft(5, "x")
	if _, err := ms.String(); err == nil {
		t.Fatal("expected out-of-bounds edit to fail")
	}
}
