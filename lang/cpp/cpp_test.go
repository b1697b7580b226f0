package cpp

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tscpp.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

// Scenario 1 from the specification's worked examples.
const classWithUnresolvedBaseSource = `class Foo : public Bar {
	void f();
};
`

func TestClassExtendsUnresolvedBaseEmitsExternalEdge(t *testing.T) {
	source := classWithUnresolvedBaseSource
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "foo.h")

	var foo, f *core.Symbol
	for i := range symbols {
		s := &symbols[i]
		switch {
		case s.Kind == core.KindClass && s.Name == "Foo":
			foo = s
		case s.Kind == core.KindMethod && s.Name == "f":
			f = s
		}
	}
	if foo == nil {
		t.Fatal("expected a class symbol named Foo")
	}
	if foo.Signature != "class Foo : public Bar" {
		t.Fatalf("unexpected class signature: %q", foo.Signature)
	}
	if f == nil {
		t.Fatal("expected a method symbol named f")
	}
	if f.ParentID != foo.ID {
		t.Fatalf("expected f's parent to be Foo, got %q", f.ParentID)
	}
	if f.Signature != "void f()" {
		t.Fatalf("unexpected method signature: %q", f.Signature)
	}

	rels := e.ExtractRelationships(tree, source, "foo.h", symbols)
	if len(rels) != 1 {
		t.Fatalf("expected exactly one relationship, got %d", len(rels))
	}
	rel := rels[0]
	if rel.Kind != core.RelExtends {
		t.Fatalf("expected Extends relationship, got %q", rel.Kind)
	}
	if rel.FromSymbolID != foo.ID {
		t.Fatalf("expected Extends to originate from Foo, got %q", rel.FromSymbolID)
	}
	if rel.ToSymbolID != core.ExternalSymbolID("Bar") {
		t.Fatalf("expected Extends to target the synthetic external_Bar id, got %q", rel.ToSymbolID)
	}
	if rel.Confidence > 0.8 {
		t.Fatalf("expected confidence <= 0.8 for an unresolved base, got %v", rel.Confidence)
	}
}

func TestClassExtendsResolvedBaseInSameFile(t *testing.T) {
	source := `class Bar {};
class Foo : public Bar {
	void f();
};
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "foo.h")
	rels := e.ExtractRelationships(tree, source, "foo.h", symbols)

	var bar *core.Symbol
	for i := range symbols {
		if symbols[i].Kind == core.KindClass && symbols[i].Name == "Bar" {
			bar = &symbols[i]
		}
	}
	if bar == nil {
		t.Fatal("expected a class symbol named Bar")
	}

	found := false
	for _, r := range rels {
		if r.Kind == core.RelExtends && r.ToSymbolID == bar.ID && r.Confidence == 1.0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a fully resolved Extends relationship to Bar with confidence 1.0")
	}
}
