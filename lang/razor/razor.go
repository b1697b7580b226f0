// Package razor configures lang/salvage for Razor (.razor/.cshtml) files,
// one of the six families SPEC_FULL.md's DOMAIN STACK section records as
// having no tree-sitter grammar anywhere in the retrieved dependency pack -
// and the language §4.2/§9 specifically call out as a source of ERROR-node
// mixed-syntax regions, since Razor interleaves C# and markup.
package razor

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Razor extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "razor",
		Extensions: []string{".razor", ".cshtml"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`@page\s+"([^"]+)"`),
				Kind:    core.KindConstant,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isRoute": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`@using\s+([\w.]+)`),
				Kind:    core.KindImport,
			},
			{
				Pattern: regexp.MustCompile(`@inject\s+[\w.<>\[\],\s]+?\s+(\w+)\s*(?:\n|$)`),
				Kind:    core.KindField,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"injected": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?m)^\s*\[Parameter\][^\n]*\n\s*public\s+[\w<>\[\],?]+\s+(\w+)\s*\{\s*get;`),
				Kind:    core.KindProperty,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isParameter": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?:public|private|protected|internal)\s+(?:static\s+)?(?:async\s+)?(?:Task(?:<[^>]*>)?|void|[\w<>\[\],]+)\s+(\w+)\s*\([^;{]*\)\s*\{`),
				Kind:    core.KindMethod,
			},
		},
		// A capitalized opening tag names a child component usage
		// (<MyComponent .../>), modeled as a Call identifier since this
		// engine's Identifier model has no dedicated component-usage kind.
		CallPattern: regexp.MustCompile(`<([A-Z]\w*)[\s/>]`),
	})
}
