package java

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tsjava.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

// Scenario 4 from the specification's worked examples.
const classWithDocCommentSource = `class P {
	/** doc */
	public int add(int a, int b) { return a+b; }
}
`

func TestMethodDocCommentAndParent(t *testing.T) {
	source := classWithDocCommentSource
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "P.java")

	var p, add *core.Symbol
	for i := range symbols {
		s := &symbols[i]
		switch {
		case s.Kind == core.KindClass && s.Name == "P":
			p = s
		case s.Kind == core.KindMethod && s.Name == "add":
			add = s
		}
	}
	if p == nil {
		t.Fatal("expected a class symbol named P")
	}
	if add == nil {
		t.Fatal("expected a method symbol named add")
	}
	if add.ParentID != p.ID {
		t.Fatalf("expected add's parent to be P, got %q", add.ParentID)
	}
	if add.DocComment != "doc" {
		t.Fatalf("expected doc_comment %q, got %q", "doc", add.DocComment)
	}
}

func TestClassExtendsAndImplements(t *testing.T) {
	source := `class Base {}
interface Flyable {}
class Bird extends Base implements Flyable {}
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "Bird.java")
	rels := e.ExtractRelationships(tree, source, "Bird.java", symbols)

	var base, flyable *core.Symbol
	for i := range symbols {
		switch symbols[i].Name {
		case "Base":
			base = &symbols[i]
		case "Flyable":
			flyable = &symbols[i]
		}
	}
	if base == nil || flyable == nil {
		t.Fatal("expected Base and Flyable symbols")
	}

	var gotExtends, gotImplements bool
	for _, r := range rels {
		if r.Kind == core.RelExtends && r.ToSymbolID == base.ID {
			gotExtends = true
		}
		if r.Kind == core.RelImplements && r.ToSymbolID == flyable.ID {
			gotImplements = true
		}
	}
	if !gotExtends {
		t.Fatal("expected an Extends relationship from Bird to Base")
	}
	if !gotImplements {
		t.Fatal("expected an Implements relationship from Bird to Flyable")
	}
}

func TestMethodCallsAndIdentifiers(t *testing.T) {
	source := `class Calc {
	int add(int a, int b) { return a + b; }
	int calc() {
		int x = add(1, 2);
		int y = add(3, 4);
		return x + y;
	}
}
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "Calc.java")
	idents := e.ExtractIdentifiers(tree, source, "Calc.java", symbols)

	var calls []core.Identifier
	for _, id := range idents {
		if id.Name == "add" && id.Kind == core.IdentCall {
			calls = append(calls, id)
		}
	}
	if len(calls) != 2 {
		t.Fatalf("expected two add() call identifiers, got %d", len(calls))
	}
	if calls[0].Span.StartLine == calls[1].Span.StartLine {
		t.Fatal("expected the two calls on distinct lines")
	}
}
