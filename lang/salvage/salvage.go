// Package salvage implements registry.Extractor for the six language
// families the retrieved dependency pack carries no tree-sitter grammar for
// (GDScript, Razor, QML, R, Regex, Zig - SPEC_FULL.md's DOMAIN STACK
// section). Their entry points receive the same (file_path, source_text,
// parsed_tree) contract as every CST-backed extractor but ignore tree
// entirely and run core.Base.SalvageFromSource directly over source_text:
// the regex-driven ERROR-node recovery §4.2/§9 describe as a fallback
// becomes, for these six, the sole extraction mechanism, since there is no
// CST to fall back from.
package salvage

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

// Config is the declarative description of one grammar-less language.
type Config struct {
	Language   string
	Extensions []string

	// Patterns is the regex salvage table run over the whole source text.
	Patterns []core.ErrorPattern

	// CallPattern, when set, matches call-like syntax directly over source
	// text, capturing the callee name in its first group. Identifier spans
	// resolve containing_symbol_id against the symbols SalvageFromSource
	// already produced, same as a CST-backed extractor's identifier pass.
	CallPattern *regexp.Regexp
	// ExcludeCallNames drops specific CallPattern captures that are really
	// language keywords caught by the pattern's shape rather than a genuine
	// call (e.g. R's `name <- function(` also matching CallPattern's generic
	// `ident(` shape on the word "function" itself).
	ExcludeCallNames map[string]bool

	// ExtendsPattern, when set, captures a base/parent type name in its
	// first group. The relationship's source is the salvaged symbol whose
	// span encloses the match start, or the first symbol when none does; a
	// match is skipped only when no symbols were salvaged. Emits one
	// ExtendsKind relationship per match.
	ExtendsPattern *regexp.Regexp
	ExtendsKind    core.RelationshipKind
}

type extractor struct{ cfg Config }

// New constructs a regex-salvage-only extractor for a grammar-less language.
func New(cfg Config) registry.Extractor { return extractor{cfg: cfg} }

func (e extractor) Language() string          { return e.cfg.Language }
func (e extractor) Extensions() []string      { return e.cfg.Extensions }
func (e extractor) Grammar() *sitter.Language { return nil }

func (e extractor) ExtractSymbols(_ *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase(e.cfg.Language, filePath, source)
	return b.SalvageFromSource(e.cfg.Patterns, "")
}

func (e extractor) ExtractRelationships(_ *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	if e.cfg.ExtendsPattern == nil {
		return nil
	}
	var rels []core.Relationship
	for _, loc := range e.cfg.ExtendsPattern.FindAllStringSubmatchIndex(source, -1) {
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}
		baseName := source[loc[2]:loc[3]]
		if baseName == "" {
			continue
		}
		line, col := core.LineAndColumn(source, loc[0])
		matchPoint := core.Span{StartLine: line, StartColumn: col, EndLine: line, EndColumn: col}
		containerID, ok := core.FindContainingSymbol(symbols, filePath, matchPoint)
		if !ok {
			// No declaring symbol encloses the match (e.g. a lone top-of-file
			// `extends Parent` in GDScript, which names the file's implicit
			// type); fall back to the first symbol in document order.
			if len(symbols) == 0 {
				continue
			}
			containerID = symbols[0].ID
		}
		toID := core.ExternalSymbolID(baseName)
		confidence := core.ExternalReferenceConfidence
		for _, s := range symbols {
			if s.Name == baseName {
				toID, confidence = s.ID, 1.0
				break
			}
		}
		rels = append(rels, core.Relationship{
			FromSymbolID: containerID,
			ToSymbolID:   toID,
			Kind:         e.cfg.ExtendsKind,
			FilePath:     filePath,
			LineNumber:   line,
			Confidence:   confidence,
		})
	}
	return rels
}

func (e extractor) ExtractIdentifiers(_ *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier {
	if e.cfg.CallPattern == nil {
		return nil
	}
	var idents []core.Identifier
	for _, loc := range e.cfg.CallPattern.FindAllStringSubmatchIndex(source, -1) {
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}
		name := source[loc[2]:loc[3]]
		if name == "" || e.cfg.ExcludeCallNames[name] {
			continue
		}
		startLine, startCol := core.LineAndColumn(source, loc[2])
		endLine, endCol := core.LineAndColumn(source, loc[3])
		span := core.Span{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol}
		containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
		idents = append(idents, core.Identifier{
			Name:               name,
			Kind:               core.IdentCall,
			FilePath:           filePath,
			Span:               span,
			ContainingSymbolID: containerID,
		})
	}
	return idents
}

func (e extractor) InferTypes(symbols []core.Symbol) map[string]string {
	types := make(map[string]string)
	for _, s := range symbols {
		if t, ok := s.Metadata["declaredType"].(string); ok && t != "" {
			types[s.ID] = t
		}
	}
	return types
}
