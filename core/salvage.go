package core

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrorPattern is one entry in a language's regex salvage table: when its
// Pattern matches text taken from an ERROR node, a symbol of Kind is emitted
// named after the first capture group. Never invents beyond what the regex
// captured - an unrecognized ERROR span yields no symbols.
type ErrorPattern struct {
	Pattern *regexp.Regexp
	Kind    SymbolKind
	// BuildSignature renders the reconstructed declaration text from the
	// regex match. When nil, the whole match is used as the signature.
	BuildSignature func(match []string) string
	// BuildMetadata augments the symbol's metadata from the regex match
	// groups (e.g. recording the referenced table for a foreign key).
	// extractedFromError is always added by SalvageFromError itself.
	BuildMetadata func(match []string) map[string]any
}

// SalvageFromError runs each pattern against an ERROR node's text and emits a
// symbol per match, sharing the ERROR node's full span, tagged
// metadata["extractedFromError"] = true. This is the sole mechanism some
// languages have for recovering declarations their grammar cannot parse
// cleanly (SQL DELIMITER blocks, Razor mixed-syntax regions); it is
// deliberately narrow rather than heuristic.
func (b *Base) SalvageFromError(node *sitter.Node, patterns []ErrorPattern, parentID string) []Symbol {
	text := b.GetNodeText(node)
	var out []Symbol
	for _, p := range patterns {
		matches := p.Pattern.FindAllStringSubmatch(text, -1)
		for _, m := range matches {
			if len(m) < 2 || m[1] == "" {
				continue
			}
			name := m[1]
			signature := text
			if p.BuildSignature != nil {
				signature = p.BuildSignature(m)
			}
			metadata := map[string]any{"extractedFromError": true}
			if p.BuildMetadata != nil {
				for k, v := range p.BuildMetadata(m) {
					metadata[k] = v
				}
			}
			out = append(out, b.CreateSymbol(node, name, p.Kind, Options{
				Signature: signature,
				ParentID:  parentID,
				Metadata:  metadata,
			}))
		}
	}
	return out
}

// SalvageFromSource runs the same regex-salvage mechanism directly over the
// whole source text rather than one ERROR node's text, for a language with no
// tree-sitter grammar anywhere in the dependency graph (GDScript, Razor, QML,
// R, Regex, Zig). There is no CST to fall back from, so this is the sole
// extraction mechanism for those six languages rather than a fallback:
// SPEC_FULL.md's DOMAIN STACK section records this generalization as an Open
// Question resolution. Every symbol produced this way carries
// metadata["extractedFromError"] = true, same as SalvageFromError, since it
// is the identical narrow, non-inventive regex-capture discipline - never
// guess beyond what the pattern captured.
func (b *Base) SalvageFromSource(patterns []ErrorPattern, parentID string) []Symbol {
	var out []Symbol
	for _, p := range patterns {
		locs := p.Pattern.FindAllStringSubmatchIndex(b.Source, -1)
		for _, loc := range locs {
			if len(loc) < 4 || loc[2] < 0 || loc[3] < 0 {
				continue
			}
			name := b.Source[loc[2]:loc[3]]
			if name == "" {
				continue
			}
			m := submatchStrings(b.Source, loc)
			signature := b.Source[loc[0]:loc[1]]
			if p.BuildSignature != nil {
				signature = p.BuildSignature(m)
			}
			metadata := map[string]any{"extractedFromError": true}
			if p.BuildMetadata != nil {
				for k, v := range p.BuildMetadata(m) {
					metadata[k] = v
				}
			}
			startLine, startCol := LineAndColumn(b.Source, loc[0])
			endLine, endCol := LineAndColumn(b.Source, loc[1])
			out = append(out, Symbol{
				ID:       SymbolID(b.FilePath, name, startLine, startCol, p.Kind),
				Name:     name,
				Kind:     p.Kind,
				FilePath: b.FilePath,
				Language: b.Language,
				Span: Span{
					StartLine:   startLine,
					StartColumn: startCol,
					EndLine:     endLine,
					EndColumn:   endCol,
				},
				Signature:  signature,
				Visibility: Public,
				ParentID:   parentID,
				Metadata:   metadata,
			})
		}
	}
	return out
}

// submatchStrings rebuilds the []string shape regexp.FindStringSubmatch
// returns (whole match plus each capture group, "" for a group that didn't
// participate) from a FindAllStringSubmatchIndex entry, so BuildSignature/
// BuildMetadata callbacks work identically for node-based and source-based
// salvage.
func submatchStrings(source string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 || hi < 0 {
			continue
		}
		out[i] = source[lo:hi]
	}
	return out
}

// LineAndColumn converts a byte offset into 1-indexed line/column, counting
// columns in bytes from the start of the line - consistent with the
// tree-sitter node spans every other Span in this engine is built from.
func LineAndColumn(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1 + strings.Count(source[:offset], "\n")
	if idx := strings.LastIndexByte(source[:offset], '\n'); idx >= 0 {
		col = offset - idx
	} else {
		col = offset + 1
	}
	return line, col
}
