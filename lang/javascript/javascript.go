// Package javascript configures lang/common for tree-sitter-javascript:
// classes, functions, methods, variable declarators and imports.
package javascript

import (
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the JavaScript language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Grammar:    javascript.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"//"},
			BlockStart:   "/**",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"class_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"function_declaration": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"method_definition": {
				Kind: core.KindMethod, NameField: "name", BodyField: "body", DocComment: true,
			},
			"variable_declarator": {
				Kind: core.KindVariable, NameField: "name",
			},
			"import_statement": {
				Kind: core.KindImport, FallbackTypes: []string{"string"},
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class_declaration", NameField: "name",
				HeritageField: "superclass", ItemTypes: []string{"identifier"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "call_expression", CallFunctionField: "function",
		MemberExprType: "member_expression", MemberField: "property",
	})
}
