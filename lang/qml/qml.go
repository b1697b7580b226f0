// Package qml configures lang/salvage for QML (Qt Quick's declarative UI
// language), one of the six families SPEC_FULL.md's DOMAIN STACK section
// records as having no tree-sitter grammar anywhere in the retrieved
// dependency pack.
package qml

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the QML extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "qml",
		Extensions: []string{".qml"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^\s*([A-Z][A-Za-z0-9_.]*)\s*\{`),
				Kind:    core.KindClass,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isComponent": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?m)^\s*property\s+(?:var|int|string|real|bool|double|url|color|alias|list<[^>]*>)\s+([A-Za-z_]\w*)`),
				Kind:    core.KindProperty,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^\s*signal\s+([A-Za-z_]\w*)`),
				Kind:    core.KindEvent,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^\s*function\s+([A-Za-z_]\w*)\s*\(`),
				Kind:    core.KindFunction,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^\s*id:\s*([A-Za-z_]\w*)`),
				Kind:    core.KindVariable,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isId": true}
				},
			},
		},
		CallPattern: regexp.MustCompile(`(?m)^\s*([a-z_]\w*)\(`),
	})
}
