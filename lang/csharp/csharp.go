// Package csharp configures lang/common for tree-sitter-c-sharp.
package csharp

import (
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the C# language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "csharp",
		Extensions: []string{".cs"},
		Grammar:    csharp.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"///", "//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"class_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"interface_declaration": {
				Kind: core.KindInterface, NameField: "name", BodyField: "body", DocComment: true,
			},
			"struct_declaration": {
				Kind: core.KindStruct, NameField: "name", BodyField: "body", DocComment: true,
			},
			"enum_declaration": {
				Kind: core.KindEnum, NameField: "name", BodyField: "body", DocComment: true,
			},
			"method_declaration": {
				Kind: core.KindMethod, NameField: "name", BodyField: "body", DocComment: true,
			},
			"constructor_declaration": {
				Kind: core.KindConstructor, NameField: "name", BodyField: "body", DocComment: true,
			},
			"property_declaration": {
				Kind: core.KindProperty, NameField: "name", DocComment: true,
			},
			"variable_declarator": {
				Kind: core.KindField, NameField: "name",
			},
			"using_directive": {
				Kind: core.KindImport, FallbackTypes: []string{"qualified_name", "identifier"},
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class_declaration", NameField: "name",
				HeritageField: "bases", ItemTypes: []string{"identifier", "generic_name"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "invocation_expression", CallFunctionField: "function",
		MemberExprType: "member_access_expression", MemberField: "name",
	})
}
