// Package kotlin configures lang/common for tree-sitter-kotlin.
package kotlin

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

func propertyName(n *sitter.Node) *sitter.Node {
	decl := core.FindChildByType(n, "variable_declaration")
	if decl == nil {
		return nil
	}
	return core.FindChildByType(decl, "simple_identifier")
}

// New constructs the Kotlin language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "kotlin",
		Extensions: []string{".kt", ".kts"},
		Grammar:    kotlin.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"//"},
			BlockStart:   "/**",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"class_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"object_declaration": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"function_declaration": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"property_declaration": {
				Kind: core.KindProperty, NameNode: propertyName, DocComment: true,
			},
			"import_header": {
				Kind: core.KindImport, FallbackTypes: []string{"identifier"},
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class_declaration", NameField: "name",
				HeritageField: "delegation_specifiers", ItemTypes: []string{"user_type", "type_identifier"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "call_expression", CallFunctionField: "value",
		MemberExprType: "navigation_expression", MemberField: "suffix",
	})
}
