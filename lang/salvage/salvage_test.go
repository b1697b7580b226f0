package salvage

import (
	"regexp"
	"testing"

	"github.com/oxhq/symbex/core"
)

func TestSalvageExtractsSymbolsWithoutGrammar(t *testing.T) {
	cfg := Config{
		Language:   "made-up",
		Extensions: []string{".mu"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^def\s+([A-Za-z_]\w*)`),
				Kind:    core.KindFunction,
			},
		},
		CallPattern: regexp.MustCompile(`(?m)^\s*([a-z_]\w*)\(`),
	}
	e := New(cfg)
	if e.Grammar() != nil {
		t.Fatal("expected a grammar-less extractor to report a nil grammar")
	}

	source := "def greet\n  greet()\n"
	symbols := e.ExtractSymbols(nil, source, "x.mu")
	if len(symbols) != 1 || symbols[0].Name != "greet" {
		t.Fatalf("expected a single greet symbol, got %+v", symbols)
	}
	if symbols[0].Metadata["extractedFromError"] != true {
		t.Fatal("expected extractedFromError metadata on every salvaged symbol")
	}

	idents := e.ExtractIdentifiers(nil, source, "x.mu", symbols)
	if len(idents) != 1 || idents[0].Name != "greet" {
		t.Fatalf("expected a single greet() call identifier, got %+v", idents)
	}
	if idents[0].ContainingSymbolID != "" {
		t.Fatalf("expected no containing symbol: greet's salvaged span covers only its line-1 declaration, got %q", idents[0].ContainingSymbolID)
	}
}

func TestSalvageEmitsExternalExtendsWhenBaseUnresolved(t *testing.T) {
	cfg := Config{
		Language: "made-up",
		Patterns: []core.ErrorPattern{
			{Pattern: regexp.MustCompile(`(?m)^class_name\s+([A-Za-z_]\w*)`), Kind: core.KindClass},
		},
		ExtendsPattern: regexp.MustCompile(`(?m)^extends\s+([A-Za-z_]\w*)`),
		ExtendsKind:    core.RelExtends,
	}
	e := New(cfg)
	source := "class_name Player\nextends CharacterBody2D\n"
	symbols := e.ExtractSymbols(nil, source, "player.gd")
	rels := e.ExtractRelationships(nil, source, "player.gd", symbols)

	if len(rels) != 1 {
		t.Fatalf("expected one relationship, got %d", len(rels))
	}
	if rels[0].Kind != core.RelExtends {
		t.Fatalf("expected Extends, got %q", rels[0].Kind)
	}
	if rels[0].ToSymbolID != core.ExternalSymbolID("CharacterBody2D") {
		t.Fatalf("expected synthetic external_CharacterBody2D target, got %q", rels[0].ToSymbolID)
	}
}
