package registry

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/symbex/core"
)

type stubExtractor struct {
	lang string
	exts []string
}

func (s stubExtractor) Language() string     { return s.lang }
func (s stubExtractor) Extensions() []string { return s.exts }
func (s stubExtractor) Grammar() *sitter.Language { return nil }
func (s stubExtractor) ExtractSymbols(*sitter.Tree, string, string) []core.Symbol { return nil }
func (s stubExtractor) ExtractRelationships(*sitter.Tree, string, string, []core.Symbol) []core.Relationship {
	return nil
}
func (s stubExtractor) ExtractIdentifiers(*sitter.Tree, string, string, []core.Symbol) []core.Identifier {
	return nil
}
func (s stubExtractor) InferTypes([]core.Symbol) map[string]string { return nil }

func TestRegisterAndGet(t *testing.T) {
	r := New()
	r.Register(stubExtractor{lang: "go", exts: []string{".go"}})

	got, ok := r.Get("go")
	if !ok || got.Language() != "go" {
		t.Fatalf("expected to find the go extractor, got %v (ok=%v)", got, ok)
	}

	// Language lookup is case-insensitive.
	if _, ok := r.Get("GO"); !ok {
		t.Fatal("expected case-insensitive language lookup")
	}
}

func TestGetByExtensionNormalizesDot(t *testing.T) {
	r := New()
	r.Register(stubExtractor{lang: "go", exts: []string{".go"}})

	if _, ok := r.GetByExtension("go"); !ok {
		t.Fatal("expected extension lookup to work without a leading dot")
	}
	if _, ok := r.GetByExtension(".GO"); !ok {
		t.Fatal("expected extension lookup to be case-insensitive")
	}
}

func TestLanguagesSorted(t *testing.T) {
	r := New()
	r.Register(stubExtractor{lang: "rust", exts: []string{".rs"}})
	r.Register(stubExtractor{lang: "go", exts: []string{".go"}})

	langs := r.Languages()
	if len(langs) != 2 || langs[0] != "go" || langs[1] != "rust" {
		t.Fatalf("expected sorted [go rust], got %v", langs)
	}
}

func TestGetMissingLanguage(t *testing.T) {
	r := New()
	if _, ok := r.Get("cobol"); ok {
		t.Fatal("expected a miss for an unregistered language")
	}
}
