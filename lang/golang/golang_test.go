package golang

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

// Scenario 2 from the specification's worked examples: a package, a struct
// with a field, and a method whose name collides with the field's.
const nameCollisionSource = `package main

type U struct {
	Name string
}

func (u *U) Name() string {
	return u.Name
}
`

func TestExtractSymbolsNameCollision(t *testing.T) {
	tree := parse(t, nameCollisionSource)
	e := New()
	symbols := e.ExtractSymbols(tree, nameCollisionSource, "main.go")

	byKindName := map[string]core.Symbol{}
	for _, s := range symbols {
		byKindName[string(s.Kind)+":"+s.Name] = s
	}

	pkg, ok := byKindName["namespace:main"]
	if !ok {
		t.Fatal("expected a namespace symbol named main")
	}

	structSym, ok := byKindName["class:U"]
	if !ok {
		t.Fatal("expected a class symbol named U")
	}
	if structSym.ParentID != "" {
		t.Fatalf("expected U to be top-level (the package clause %q does not enclose it), got parent %q", pkg.ID, structSym.ParentID)
	}
	if structSym.Signature != "type U struct" {
		t.Fatalf("unexpected struct signature: %q", structSym.Signature)
	}

	field, ok := byKindName["field:Name"]
	if !ok {
		t.Fatal("expected a field symbol named Name")
	}
	if field.ParentID != structSym.ID {
		t.Fatalf("expected field Name's parent to be struct U, got %q", field.ParentID)
	}

	method, ok := byKindName["method:Name"]
	if !ok {
		t.Fatal("expected a method symbol named Name")
	}
	if method.ID == field.ID {
		t.Fatal("field and method named Name must have distinct ids")
	}
	if method.Signature == "" || !containsAll(method.Signature, "func (u *U) Name() string") {
		t.Fatalf("unexpected method signature: %q", method.Signature)
	}
}

func containsAll(haystack string, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestInferTypesPicksUpDeclaredAndReturnTypes(t *testing.T) {
	source := `package main

type U struct {
	Name string
}

func greet() string {
	return ""
}
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "main.go")
	types := e.InferTypes(symbols)

	var fieldID, funcID string
	for _, s := range symbols {
		if s.Kind == core.KindField && s.Name == "Name" {
			fieldID = s.ID
		}
		if s.Kind == core.KindFunction && s.Name == "greet" {
			funcID = s.ID
		}
	}
	if fieldID == "" || funcID == "" {
		t.Fatal("expected to find the field and function symbols")
	}
	if types[fieldID] != "string" {
		t.Fatalf("expected field Name to infer type string, got %q", types[fieldID])
	}
	if types[funcID] != "string" {
		t.Fatalf("expected greet to infer return type string, got %q", types[funcID])
	}
}

func TestExtractRelationshipsEmbeddedFieldComposition(t *testing.T) {
	source := `package main

type Base struct {
	ID int
}

type Derived struct {
	Base
	Extra string
}
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "main.go")
	rels := e.ExtractRelationships(tree, source, "main.go", symbols)

	found := false
	for _, r := range rels {
		if r.Kind == core.RelComposition && r.Confidence == 1.0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a resolved composition relationship from Derived to Base")
	}
}

func TestExtractIdentifiersAndCallsResolveToSameFileFunction(t *testing.T) {
	source := `package main

func add(a, b int) int {
	return a + b
}

func calc() int {
	x := add(1, 2)
	y := add(3, 4)
	return x + y
}
`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "main.go")
	idents := e.ExtractIdentifiers(tree, source, "main.go", symbols)
	rels := e.ExtractRelationships(tree, source, "main.go", symbols)

	var calcID, addID string
	for _, s := range symbols {
		switch s.Name {
		case "calc":
			calcID = s.ID
		case "add":
			if s.Kind == core.KindFunction {
				addID = s.ID
			}
		}
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
	if calls[0].Span.StartLine == calls[1].Span.StartLine {
		t.Fatal("expected the two add() identifiers to be on distinct lines")
	}
	for _, id := range calls {
		if id.ContainingSymbolID != calcID {
			t.Fatalf("expected add() call to be contained by calc, got %q", id.ContainingSymbolID)
		}
	}

	callRels := 0
	for _, r := range rels {
		if r.Kind == core.RelCalls && r.ToSymbolID == addID && r.FromSymbolID == calcID {
			callRels++
		}
	}
	if callRels != 2 {
		t.Fatalf("expected two Calls relationships from calc to add, got %d", callRels)
	}
}
