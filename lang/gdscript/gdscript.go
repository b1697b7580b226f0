// Package gdscript configures lang/salvage for GDScript (Godot's scripting
// language), one of the six families SPEC_FULL.md's DOMAIN STACK section
// records as having no tree-sitter grammar anywhere in the retrieved
// dependency pack. Declarations are recovered line-by-line with anchored
// regexes rather than a CST walk.
package gdscript

import (
	"regexp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/salvage"
	"github.com/oxhq/symbex/registry"
)

// New constructs the GDScript extractor.
func New() registry.Extractor {
	return salvage.New(salvage.Config{
		Language:   "gdscript",
		Extensions: []string{".gd"},
		Patterns: []core.ErrorPattern{
			{
				Pattern: regexp.MustCompile(`(?m)^class_name\s+([A-Za-z_]\w*)`),
				Kind:    core.KindClass,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^func\s+([A-Za-z_]\w*)\s*\(`),
				Kind:    core.KindFunction,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^signal\s+([A-Za-z_]\w*)`),
				Kind:    core.KindEvent,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^enum\s+([A-Za-z_]\w*)`),
				Kind:    core.KindEnum,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^@?onready\s+var\s+([A-Za-z_]\w*)`),
				Kind:    core.KindField,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isOnready": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?m)^@?export[^\n]*\s+var\s+([A-Za-z_]\w*)`),
				Kind:    core.KindField,
				BuildMetadata: func(m []string) map[string]any {
					return map[string]any{"isExport": true}
				},
			},
			{
				Pattern: regexp.MustCompile(`(?m)^var\s+([A-Za-z_]\w*)`),
				Kind:    core.KindVariable,
			},
			{
				Pattern: regexp.MustCompile(`(?m)^const\s+([A-Za-z_]\w*)`),
				Kind:    core.KindConstant,
			},
		},
		CallPattern:    regexp.MustCompile(`(?m)^\t*([a-z_]\w*)\(`),
		ExtendsPattern: regexp.MustCompile(`(?m)^extends\s+([A-Za-z_][\w.]*)`),
		ExtendsKind:    core.RelExtends,
	})
}
