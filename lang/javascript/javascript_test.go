package javascript

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsjs "github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tsjs.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

// Scenario 6 from the specification's worked examples.
const twoCallsSource = `function calc(){ add(1,2); add(3,4); }`

func TestTwoCallsToSameFunctionProduceDistinctIdentifiers(t *testing.T) {
	source := twoCallsSource
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "calc.js")
	idents := e.ExtractIdentifiers(tree, source, "calc.js", symbols)

	var calcID string
	for _, s := range symbols {
		if s.Kind == core.KindFunction && s.Name == "calc" {
			calcID = s.ID
		}
	}
	if calcID == "" {
		t.Fatal("expected a function symbol named calc")
	}

	var calls []core.Identifier
	for _, id := range idents {
		if id.Name == "add" {
			calls = append(calls, id)
		}
	}
	if len(calls) != 2 {
		t.Fatalf("expected two add() identifiers, got %d", len(calls))
	}
	for _, c := range calls {
		if c.Kind != core.IdentCall {
			t.Fatalf("expected IdentCall kind, got %q", c.Kind)
		}
		if c.ContainingSymbolID != calcID {
			t.Fatalf("expected containing_symbol_id to be calc, got %q", c.ContainingSymbolID)
		}
	}
	if calls[0].Span.StartColumn == calls[1].Span.StartColumn && calls[0].Span.StartLine == calls[1].Span.StartLine {
		t.Fatal("expected the two call identifiers to occupy distinct spans")
	}
}

func TestClassExtendsExternalBase(t *testing.T) {
	source := `class Widget extends Base {}`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "widget.js")
	rels := e.ExtractRelationships(tree, source, "widget.js", symbols)

	if len(rels) != 1 {
		t.Fatalf("expected one relationship, got %d", len(rels))
	}
	rel := rels[0]
	if rel.Kind != core.RelExtends {
		t.Fatalf("expected Extends, got %q", rel.Kind)
	}
	if rel.ToSymbolID != core.ExternalSymbolID("Base") {
		t.Fatalf("expected synthetic external_Base target, got %q", rel.ToSymbolID)
	}
	if rel.Confidence != core.ExternalReferenceConfidence {
		t.Fatalf("expected confidence %v, got %v", core.ExternalReferenceConfidence, rel.Confidence)
	}
}
