package core

import "testing"

func TestSpanEncloses(t *testing.T) {
	outer := Span{StartLine: 1, StartColumn: 1, EndLine: 10, EndColumn: 1}
	inner := Span{StartLine: 3, StartColumn: 5, EndLine: 5, EndColumn: 1}
	if !outer.Encloses(inner) {
		t.Fatal("expected outer to enclose inner")
	}
	if inner.Encloses(outer) {
		t.Fatal("did not expect inner to enclose outer")
	}
}

func TestFindContainingSymbolPicksSmallestEnclosing(t *testing.T) {
	file := Symbol{ID: "file", FilePath: "a.go", Span: Span{1, 1, 100, 1}}
	class := Symbol{ID: "class", FilePath: "a.go", Span: Span{2, 1, 50, 1}}
	method := Symbol{ID: "method", FilePath: "a.go", Span: Span{10, 1, 20, 1}}
	symbols := []Symbol{file, class, method}

	target := Span{StartLine: 12, StartColumn: 1, EndLine: 12, EndColumn: 5}
	got, ok := FindContainingSymbol(symbols, "a.go", target)
	if !ok || got != "method" {
		t.Fatalf("expected method to be the smallest enclosing symbol, got %q (ok=%v)", got, ok)
	}
}

func TestFindContainingSymbolRespectsFileScoping(t *testing.T) {
	other := Symbol{ID: "other-file-match", FilePath: "b.go", Span: Span{1, 1, 100, 1}}
	symbols := []Symbol{other}

	target := Span{StartLine: 5, StartColumn: 1, EndLine: 5, EndColumn: 1}
	if _, ok := FindContainingSymbol(symbols, "a.go", target); ok {
		t.Fatal("a symbol from a different file must never be treated as a container")
	}
}
