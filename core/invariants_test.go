package core

import "testing"

func TestCheckInvariantsCleanResult(t *testing.T) {
	parent := Symbol{ID: "p", Name: "Outer", FilePath: "a.go", Span: Span{1, 1, 10, 1}}
	child := Symbol{ID: "c", Name: "Inner", FilePath: "a.go", ParentID: "p", Span: Span{2, 1, 3, 1}}
	result := Result{
		Symbols: []Symbol{parent, child},
		Identifiers: []Identifier{
			{Name: "Inner", Kind: IdentCall, FilePath: "a.go", ContainingSymbolID: "p", Span: Span{2, 1, 2, 6}},
		},
	}
	if errs := CheckInvariants(result); len(errs) != 0 {
		t.Fatalf("expected no violations, got %v", errs)
	}
}

func TestCheckInvariantsDetectsDuplicateID(t *testing.T) {
	result := Result{
		Symbols: []Symbol{
			{ID: "dup", Name: "A", FilePath: "a.go", Span: Span{1, 1, 1, 5}},
			{ID: "dup", Name: "B", FilePath: "a.go", Span: Span{2, 1, 2, 5}},
		},
	}
	if errs := CheckInvariants(result); len(errs) == 0 {
		t.Fatal("expected a duplicate-ID violation")
	}
}

func TestCheckInvariantsDetectsDanglingParent(t *testing.T) {
	result := Result{
		Symbols: []Symbol{
			{ID: "c", Name: "Inner", FilePath: "a.go", ParentID: "missing", Span: Span{1, 1, 1, 5}},
		},
	}
	if errs := CheckInvariants(result); len(errs) == 0 {
		t.Fatal("expected a dangling-parent violation")
	}
}

func TestCheckInvariantsDetectsUnenclosedIdentifier(t *testing.T) {
	result := Result{
		Symbols: []Symbol{
			{ID: "p", Name: "Outer", FilePath: "a.go", Span: Span{1, 1, 3, 1}},
		},
		Identifiers: []Identifier{
			{Name: "x", Kind: IdentCall, FilePath: "a.go", ContainingSymbolID: "p", Span: Span{10, 1, 10, 2}},
		},
	}
	if errs := CheckInvariants(result); len(errs) == 0 {
		t.Fatal("expected a span-enclosure violation")
	}
}
