// Package r configures lang/salvage for R, one of the six families
// SPEC_FULL.md's DOMAIN STACK section records as having no tree-sitter
// grammar anywhere in the retrieved dependency pack.
package r

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the R extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "r",
		Extensions: []string{".r", ".R"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^([A-Za-z.][A-Za-z0-9._]*)\s*(?:<-|=)\s*function\s*\(`),
				Kind:    core.KindFunction,
			},
			{
				Pattern: regexp.MustCompile(`setClass\(\s*"([A-Za-z_][A-Za-z0-9_.]*)"`),
				Kind:    core.KindClass,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isS4": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`setGeneric\(\s*"([A-Za-z_][A-Za-z0-9_.]*)"`),
				Kind:    core.KindFunction,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isGeneric": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`setMethod\(\s*"([A-Za-z_][A-Za-z0-9_.]*)"`),
				Kind:    core.KindMethod,
			},
			{
				Pattern: regexp.MustCompile(`library\(([A-Za-z_][A-Za-z0-9_.]*)\)`),
				Kind:    core.KindImport,
			},
		},
		CallPattern:      regexp.MustCompile(`(?m)\b([A-Za-z.][A-Za-z0-9._]*)\(`),
		ExcludeCallNames: map[string]bool{"function": true, "setClass": true, "setGeneric": true, "setMethod": true, "library": true},
	})
}
