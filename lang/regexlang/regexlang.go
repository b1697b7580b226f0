// Package regexlang configures lang/salvage for source files whose content
// is itself one or more regular expression patterns (named capture groups,
// top-level named pattern definitions, back-references) - one of the six
// families SPEC_FULL.md's DOMAIN STACK section records as having no
// tree-sitter grammar anywhere in the retrieved dependency pack. Language()
// answers "regex" per §6's closed language-coverage list.
package regexlang

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Regex-pattern-source extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "regex",
		Extensions: []string{".regex", ".re"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^([A-Z][A-Z0-9_]*)\s*=`),
				Kind:    core.KindConstant,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isPatternDefinition": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`\(\?P?<([A-Za-z_]\w*)>`),
				Kind:    core.KindVariable,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isNamedGroup": true}
				},
			},
		},
		// Back-references (\k<name> / (?P=name)) re-use a named group rather
		// than declare one; this engine's Identifier model has no dedicated
		// back-reference kind, so they are modeled as Call identifiers
		// targeting the group's name, same as any other named use-site.
		CallPattern: regexp.MustCompile(`(?:\\k<|\(\?P=)([A-Za-z_]\w*)(?:>|\))`),
	})
}
