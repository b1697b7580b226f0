package sql

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tssql "github.com/smacker/go-tree-sitter/sql"

	"github.com/oxhq/symbex/core"
)

func parse(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tssql.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil || tree == nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

// Scenario 3 from the specification's worked examples.
const ordersTableSource = `CREATE TABLE orders (id INT PRIMARY KEY, user_id INT REFERENCES users(id));`

func TestCreateTableWithUnresolvedForeignKey(t *testing.T) {
	source := ordersTableSource
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "schema.sql")

	var orders, id, userID *core.Symbol
	for i := range symbols {
		s := &symbols[i]
		switch {
		case s.Kind == core.KindClass && s.Name == "orders":
			orders = s
		case s.Kind == core.KindField && s.Name == "id":
			id = s
		case s.Kind == core.KindField && s.Name == "user_id":
			userID = s
		}
	}
	if orders == nil {
		t.Fatal("expected a class symbol named orders")
	}
	if orders.Metadata["isTable"] != true {
		t.Fatalf("expected isTable=true metadata, got %v", orders.Metadata)
	}
	if orders.Signature != "CREATE TABLE orders (2 columns)" {
		t.Fatalf("unexpected table signature: %q", orders.Signature)
	}
	if id == nil || userID == nil {
		t.Fatal("expected id and user_id field symbols")
	}
	if id.ParentID != orders.ID || userID.ParentID != orders.ID {
		t.Fatal("expected both columns to be parented under orders")
	}

	rels := e.ExtractRelationships(tree, source, "schema.sql", symbols)
	if len(rels) != 1 {
		t.Fatalf("expected exactly one relationship, got %d", len(rels))
	}
	rel := rels[0]
	if rel.Kind != core.RelReferences {
		t.Fatalf("expected a References relationship for the foreign key, got %q", rel.Kind)
	}
	if rel.FromSymbolID != orders.ID {
		t.Fatal("expected the References edge to originate from orders")
	}
	if rel.ToSymbolID != core.ExternalSymbolID("users") {
		t.Fatalf("expected the edge to target the synthetic external_users id, got %q", rel.ToSymbolID)
	}
	if rel.Confidence != core.ExternalReferenceConfidence {
		t.Fatalf("expected confidence %v for an unresolved foreign key, got %v", core.ExternalReferenceConfidence, rel.Confidence)
	}
}

func TestCreateTableForeignKeyResolvesWithinFile(t *testing.T) {
	source := `CREATE TABLE users (id INT PRIMARY KEY);
CREATE TABLE orders (id INT PRIMARY KEY, user_id INT REFERENCES users(id));`
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "schema.sql")
	rels := e.ExtractRelationships(tree, source, "schema.sql", symbols)

	var users *core.Symbol
	for i := range symbols {
		if symbols[i].Kind == core.KindClass && symbols[i].Name == "users" {
			users = &symbols[i]
		}
	}
	if users == nil {
		t.Fatal("expected a class symbol named users")
	}

	found := false
	for _, r := range rels {
		if r.Kind == core.RelReferences && r.ToSymbolID == users.ID && r.Confidence == 1.0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a resolved References relationship to users with confidence 1.0")
	}
}

func TestInferTypesFromColumnSignature(t *testing.T) {
	source := ordersTableSource
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "schema.sql")
	types := e.InferTypes(symbols)

	var idID string
	for _, s := range symbols {
		if s.Kind == core.KindField && s.Name == "id" {
			idID = s.ID
		}
	}
	if idID == "" {
		t.Fatal("expected to find the id field symbol")
	}
	if types[idID] != "INT" {
		t.Fatalf("expected id's inferred type to be INT, got %q", types[idID])
	}
}

func TestErrorNodeSalvageForCreateProcedure(t *testing.T) {
	source := "DELIMITER //\nCREATE PROCEDURE add_user(IN name VARCHAR(50))\nBEGIN\n  INSERT INTO users (name) VALUES (name);\nEND //\nDELIMITER ;\n"
	tree := parse(t, source)
	e := New()
	symbols := e.ExtractSymbols(tree, source, "proc.sql")

	found := false
	for _, s := range symbols {
		if s.Name == "add_user" && s.Kind == core.KindFunction {
			found = true
			if s.Metadata["extractedFromError"] != true {
				t.Fatal("expected extractedFromError metadata on a salvaged symbol")
			}
		}
	}
	if !found {
		t.Fatal("expected add_user to be salvaged from the DELIMITER/ERROR block")
	}
}
