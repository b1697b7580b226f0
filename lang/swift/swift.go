// Package swift configures lang/common for tree-sitter-swift.
package swift

import (
	"github.com/smacker/go-tree-sitter/swift"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Swift language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "swift",
		Extensions: []string{".swift"},
		Grammar:    swift.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"///", "//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"class_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"protocol_declaration": {
				Kind: core.KindInterface, NameField: "name", BodyField: "body", DocComment: true,
			},
			"function_declaration": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"property_declaration": {
				Kind: core.KindProperty, FallbackTypes: []string{"pattern", "simple_identifier"},
				DocComment: true,
			},
			"import_declaration": {
				Kind: core.KindImport, FallbackTypes: []string{"identifier"},
			},
		},
		CallExprType: "call_expression", CallFunctionField: "value",
		MemberExprType: "navigation_expression", MemberField: "suffix",
	})
}
