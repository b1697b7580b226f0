package core

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func parseGo(t *testing.T, source string) *sitter.Node {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree.RootNode()
}

func TestGetNodeText(t *testing.T) {
	source := "package main\n\nfunc Foo() {}\n"
	root := parseGo(t, source)
	b := NewBase("go", "a.go", source)

	fn := FindNodesByType(root, "function_declaration")
	if len(fn) != 1 {
		t.Fatalf("expected 1 function_declaration, got %d", len(fn))
	}
	text := b.GetNodeText(fn[0])
	if text != "func Foo() {}" {
		t.Fatalf("unexpected node text: %q", text)
	}
}

func TestFindChildByType(t *testing.T) {
	source := "package main\n\nfunc Foo() {}\n"
	root := parseGo(t, source)
	fn := FindNodesByType(root, "function_declaration")[0]

	name := FindChildByType(fn, "identifier")
	if name == nil {
		t.Fatal("expected to find an identifier child")
	}
}

func TestSeenAndMarkProcessedDedup(t *testing.T) {
	source := "package main\n\nfunc Foo() {}\n"
	root := parseGo(t, source)
	b := NewBase("go", "a.go", source)
	fn := FindNodesByType(root, "function_declaration")[0]

	if b.Seen(fn) {
		t.Fatal("node should not be marked processed yet")
	}
	b.MarkProcessed(fn)
	if !b.Seen(fn) {
		t.Fatal("node should be marked processed after MarkProcessed")
	}
}

func TestFindDocCommentContiguousBlock(t *testing.T) {
	source := "package main\n\n// Foo does a thing.\n// It has two lines.\nfunc Foo() {}\n"
	root := parseGo(t, source)
	b := NewBase("go", "a.go", source)
	fn := FindNodesByType(root, "function_declaration")[0]

	style := CommentStyle{LinePrefixes: []string{"///", "//"}}
	doc := b.FindDocComment(fn, style)
	want := "Foo does a thing.\nIt has two lines."
	if doc != want {
		t.Fatalf("doc comment = %q, want %q", doc, want)
	}
}

func TestFindDocCommentBlankLineBreaksBlock(t *testing.T) {
	source := "package main\n\n// unrelated comment\n\nfunc Foo() {}\n"
	root := parseGo(t, source)
	b := NewBase("go", "a.go", source)
	fn := FindNodesByType(root, "function_declaration")[0]

	style := CommentStyle{LinePrefixes: []string{"//"}}
	doc := b.FindDocComment(fn, style)
	if doc != "" {
		t.Fatalf("expected no doc comment across a blank line, got %q", doc)
	}
}

func TestCreateSymbolDefaultsToPublicVisibility(t *testing.T) {
	source := "package main\n\nfunc Foo() {}\n"
	root := parseGo(t, source)
	b := NewBase("go", "a.go", source)
	fn := FindNodesByType(root, "function_declaration")[0]

	sym := b.CreateSymbol(fn, "Foo", KindFunction, Options{})
	if sym.Visibility != Public {
		t.Fatalf("expected default visibility Public, got %q", sym.Visibility)
	}
	if sym.Span.StartLine != 3 {
		t.Fatalf("expected 1-indexed start line 3, got %d", sym.Span.StartLine)
	}
}
