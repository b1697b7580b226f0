// Package registry holds the Extractor contract every per-language package
// implements and a lookup table from language identifier (and file
// extension) to its Extractor. It plays the role the teacher codebase's
// providers.Registry/catalog pair plays for Query/Transform, generalized
// here to the extraction contract this engine implements instead.
package registry

import (
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/symbex/core"
)

// Extractor is the single entry point each supported language implements.
// Implementations for languages with a tree-sitter grammar in the dependency
// graph walk tree; implementations for languages without one (see
// SPEC_FULL.md's DOMAIN STACK section) ignore tree and salvage directly from
// source via core.Base.SalvageFromSource.
type Extractor interface {
	// Language is the grammar-name identifier this extractor answers to.
	Language() string
	// Extensions lists the file extensions this language claims.
	Extensions() []string
	// Grammar returns the tree-sitter grammar callers must parse source with
	// before calling the Extract* methods, or nil for a language with no
	// grammar in the dependency graph (see SPEC_FULL.md's DOMAIN STACK
	// section) - those extractors ignore the tree argument entirely and
	// salvage directly from source text.
	Grammar() *sitter.Language

	// ExtractSymbols performs the first traversal pass: CST node kind to
	// symbol kind dispatch, producing the symbol list in document order.
	ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol
	// ExtractRelationships performs the second pass, given the already
	// extracted symbol list indexed by the caller as needed.
	ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship
	// ExtractIdentifiers performs the third pass, emitting Call and
	// MemberAccess use-sites with containing-symbol backlinks.
	ExtractIdentifiers(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier
	// InferTypes is the best-effort final pass over already-extracted
	// symbols; missing entries are not an error.
	InferTypes(symbols []core.Symbol) map[string]string
}

// Registry maps language identifiers and file extensions to Extractors.
// Safe for concurrent use: Register is expected at init time, Get/Languages
// afterward from many goroutines extracting different files in parallel.
type Registry struct {
	mu         sync.RWMutex
	byLanguage map[string]Extractor
	byExt      map[string]Extractor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byLanguage: make(map[string]Extractor),
		byExt:      make(map[string]Extractor),
	}
}

// Register adds an extractor, indexing it by language identifier and by
// every extension it claims. A later registration for the same language or
// extension overwrites the earlier one.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[strings.ToLower(e.Language())] = e
	for _, ext := range e.Extensions() {
		r.byExt[normalizeExt(ext)] = e
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Get retrieves the extractor registered for a language identifier.
func (r *Registry) Get(language string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byLanguage[strings.ToLower(language)]
	return e, ok
}

// GetByExtension retrieves the extractor registered for a file extension
// (e.g. ".go" or "go").
func (r *Registry) GetByExtension(ext string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byExt[normalizeExt(ext)]
	return e, ok
}

// Languages returns every registered language identifier, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
