// Package java configures lang/common for tree-sitter-java.
package java

import (
	"github.com/smacker/go-tree-sitter/java"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Java language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "java",
		Extensions: []string{".java"},
		Grammar:    java.GetLanguage(),
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
			"enum_declaration": {
				Kind: core.KindEnum, NameField: "name", BodyField: "body", DocComment: true,
			},
			"method_declaration": {
				Kind: core.KindMethod, NameField: "name", BodyField: "body", DocComment: true,
			},
			"constructor_declaration": {
				Kind: core.KindConstructor, NameField: "name", BodyField: "body", DocComment: true,
			},
			"variable_declarator": {
				Kind: core.KindField, NameField: "name",
			},
			"import_declaration": {
				Kind: core.KindImport, FallbackTypes: []string{"scoped_identifier", "identifier"},
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class_declaration", NameField: "name",
				HeritageField: "superclass", ItemTypes: []string{"type_identifier"},
				Kind: core.RelExtends,
			},
			{
				NodeType: "class_declaration", NameField: "name",
				HeritageField: "interfaces", ItemTypes: []string{"type_identifier"},
				Kind: core.RelImplements,
			},
		},
		CallExprType: "method_invocation", CallFunctionField: "name",
		MemberExprType: "field_access", MemberField: "field",
	})
}
