// Package c configures lang/common for tree-sitter-c. Declarators in C can
// nest arbitrarily (pointer_declarator wrapping function_declarator wrapping
// identifier), so this package supplies custom NameNode resolvers that
// drill through the wrapper chain rather than relying on a single field
// lookup.
package c

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// innermostIdentifier drills through declarator wrapper nodes
// (pointer_declarator, array_declarator, function_declarator, ...) down to
// the identifier they ultimately name.
func innermostIdentifier(n *sitter.Node) *sitter.Node {
	cur := n
	for cur != nil {
		switch cur.Type() {
		case "identifier", "field_identifier":
			return cur
		}
		next := cur.ChildByFieldName("declarator")
		if next == nil {
			return core.FindChildByType(cur, "identifier")
		}
		cur = next
	}
	return nil
}

func functionName(n *sitter.Node) *sitter.Node {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	return innermostIdentifier(declarator)
}

func declarationName(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "init_declarator", "array_declarator", "pointer_declarator":
			if id := innermostIdentifier(c); id != nil {
				return id
			}
		case "identifier":
			return c
		}
	}
	return nil
}

// New constructs the C language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "c",
		Extensions: []string{".c", ".h"},
		Grammar:    c.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
		},
		Rules: map[string]common.NodeRule{
			"function_definition": {
				Kind: core.KindFunction, NameNode: functionName, BodyField: "body", DocComment: true,
			},
			"struct_specifier": {
				Kind: core.KindStruct, NameField: "name", BodyField: "body",
			},
			"union_specifier": {
				Kind: core.KindUnion, NameField: "name", BodyField: "body",
			},
			"enum_specifier": {
				Kind: core.KindEnum, NameField: "name", BodyField: "body",
			},
			"enumerator": {
				Kind: core.KindEnumMember, NameField: "name",
			},
			"field_declaration": {
				Kind: core.KindField, NameNode: declarationName,
			},
			"declaration": {
				Kind: core.KindVariable, NameNode: declarationName, DocComment: true,
			},
			"preproc_include": {
				Kind: core.KindImport, FallbackTypes: []string{"string_literal", "system_lib_string"},
			},
		},
		CallExprType: "call_expression", CallFunctionField: "function",
		MemberExprType: "field_expression", MemberField: "field",
	})
}
