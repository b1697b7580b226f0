// Package typescript configures lang/common for tree-sitter-typescript,
// extending the JavaScript vocabulary with interfaces, type aliases and
// enums.
package typescript

import (
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the TypeScript language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "typescript",
		Extensions: []string{".ts"},
		Grammar:    ts.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"//"},
			BlockStart:   "/**",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"class_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"interface_declaration": {
				Kind: core.KindInterface, NameField: "name", BodyField: "body", DocComment: true,
			},
			"type_alias_declaration": {
				Kind: core.KindType, NameField: "name", DocComment: true,
			},
			"enum_declaration": {
				Kind: core.KindEnum, NameField: "name", BodyField: "body", DocComment: true,
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
				HeritageField: "superclass", ItemTypes: []string{"identifier", "type_identifier"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "call_expression", CallFunctionField: "function",
		MemberExprType: "member_expression", MemberField: "property",
	})
}
