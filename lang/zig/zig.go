// Package zig configures lang/salvage for Zig, one of the six families
// SPEC_FULL.md's DOMAIN STACK section records as having no tree-sitter
// grammar anywhere in the retrieved dependency pack.
package zig

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Zig extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "zig",
		Extensions: []string{".zig"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^pub\s+fn\s+([A-Za-z_]\w*)`),
				Kind:    core.KindFunction,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isPublic": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?m)^fn\s+([A-Za-z_]\w*)`),
				Kind:    core.KindFunction,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^(?:pub\s+)?const\s+([A-Za-z_]\w*)\s*=\s*struct\b`),
				Kind:    core.KindStruct,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^(?:pub\s+)?const\s+([A-Za-z_]\w*)\s*=\s*enum\b`),
				Kind:    core.KindEnum,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^(?:pub\s+)?const\s+([A-Za-z_]\w*)\s*=\s*union\b`),
				Kind:    core.KindUnion,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^test\s+"([^"]+)"`),
				Kind:    core.KindFunction,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isTest": true}
				},
			},
		},
		CallPattern: regexp.MustCompile(`(?m)^\s+([a-z_]\w*)\(`),
	})
}
