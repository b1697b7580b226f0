package html

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tshtml.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

func TestElementWithIDBecomesSymbol(t *testing.T) {
	source := `<html><body><div id="main"><span id="label">hi</span></div></body></html>`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "index.html")

	var main, label *core.Symbol
	for i := range symbols {
		switch symbols[i].Name {
		case "main":
			main = &symbols[i]
		case "label":
			label = &symbols[i]
		}
	}
	if main == nil {
		t.Fatal("expected a symbol named main")
	}
	if label == nil {
		t.Fatal("expected a symbol named label")
	}
	if label.ParentID != main.ID {
		t.Fatalf("expected label to be nested under main, got parent %q", label.ParentID)
	}
}

func TestElementWithoutIDProducesNoSymbol(t *testing.T) {
	source := `<html><body><p>no id here</p></body></html>`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "index.html")
	if len(symbols) != 0 {
		t.Fatalf("expected no symbols, got %d", len(symbols))
	}
}
