// Package symbex is the top-level entry point this module exposes: one
// contract per supported language (§2), wired here into a single registry
// and a single Extract call implementing §6's input/output contract. It
// plays the role the teacher codebase's cmd/morfx/universal_main.go
// AutoRegister wiring plays for its Provider set, generalized from a
// Query/Transform provider registry to this engine's three-pass extraction
// contract.
package symbex

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/bash"
	"github.com/oxhq/symbex/lang/c"
	"github.com/oxhq/symbex/lang/cpp"
	"github.com/oxhq/symbex/lang/csharp"
	"github.com/oxhq/symbex/lang/css"
	"github.com/oxhq/symbex/lang/gdscript"
	"github.com/oxhq/symbex/lang/golang"
	"github.com/oxhq/symbex/lang/html"
	"github.com/oxhq/symbex/lang/java"
	"github.com/oxhq/symbex/lang/javascript"
	"github.com/oxhq/symbex/lang/kotlin"
	"github.com/oxhq/symbex/lang/lua"
	"github.com/oxhq/symbex/lang/python"
	"github.com/oxhq/symbex/lang/qml"
	"github.com/oxhq/symbex/lang/r"
	"github.com/oxhq/symbex/lang/razor"
	"github.com/oxhq/symbex/lang/regexlang"
	"github.com/oxhq/symbex/lang/ruby"
	"github.com/oxhq/symbex/lang/rust"
	"github.com/oxhq/symbex/lang/sql"
	"github.com/oxhq/symbex/lang/swift"
	"github.com/oxhq/symbex/lang/typescript"
	"github.com/oxhq/symbex/lang/zig"
	"github.com/oxhq/symbex/registry"
)

// DefaultRegistry builds a Registry with every language this module
// implements already registered. Callers needing only a subset (or wanting
// to add their own extractor for a language this module doesn't cover) can
// instead build a registry.New() and Register selectively.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	for _, e := range []registry.Extractor{
		bash.New(),
		c.New(),
		cpp.New(),
		csharp.New(),
		css.New(),
		gdscript.New(),
		golang.New(),
		html.New(),
		java.New(),
		javascript.New(),
		kotlin.New(),
		lua.New(),
		python.New(),
		qml.New(),
		r.New(),
		razor.New(),
		regexlang.New(),
		ruby.New(),
		rust.New(),
		sql.New(),
		swift.New(),
		typescript.New(),
		zig.New(),
	} {
		r.Register(e)
	}
	return r
}

// Request is one extraction call's input, per §6's external interface: a
// language identifier, a file path (used for ID generation and reporting,
// never opened), UTF-8 source text, a workspace root used only to relativize
// FilePath for cross-machine-stable symbol IDs, and an already-parsed tree
// handle the caller owns.
//
// Tree may be nil for a language registered with a nil Grammar() (the six
// regex-salvage-only families) - those extractors never dereference it.
type Request struct {
	Language      string
	FilePath      string
	Source        string
	WorkspaceRoot string
	Tree          *sitter.Tree
}

// Extract runs one language's full four-pass pipeline (symbols,
// relationships, identifiers, inferred types) against req, dispatching
// through r by req.Language, falling back to req.FilePath's extension when
// the language identifier isn't registered. Returns an error only for the
// precondition violations §7 names (unknown language/extension); a
// recognized language with sparse or empty results is not an error.
func Extract(r *registry.Registry, req Request) (core.Result, error) {
	ext, ok := r.Get(req.Language)
	if !ok {
		ext, ok = r.GetByExtension(filepath.Ext(req.FilePath))
	}
	if !ok {
		return core.Result{}, fmt.Errorf("symbex: no extractor registered for language %q (file %q)", req.Language, req.FilePath)
	}

	path := RelativizePath(req.WorkspaceRoot, req.FilePath)
	symbols := ext.ExtractSymbols(req.Tree, req.Source, path)
	relationships := ext.ExtractRelationships(req.Tree, req.Source, path, symbols)
	identifiers := ext.ExtractIdentifiers(req.Tree, req.Source, path, symbols)
	types := ext.InferTypes(symbols)

	return core.Result{
		Symbols:       symbols,
		Relationships: relationships,
		Identifiers:   identifiers,
		Types:         types,
	}, nil
}

// RelativizePath rewrites filePath relative to workspaceRoot when it falls
// underneath it, so symbol IDs built from file_path stay stable across
// machines/checkouts with the workspace mounted at different absolute paths
// (§6: "used only to interpret relative paths for symbol IDs where
// consistency across different working directories matters"). Falls back to
// filePath unchanged when workspaceRoot is empty or doesn't contain it.
func RelativizePath(workspaceRoot, filePath string) string {
	if workspaceRoot == "" {
		return filePath
	}
	rel, err := filepath.Rel(workspaceRoot, filePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filePath
	}
	return rel
}
