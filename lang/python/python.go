// Package python configures the shared CST-driven extractor (lang/common)
// for Python's tree-sitter grammar: classes, functions/methods, imports and
// module-level assignments, with the underscore-prefix visibility
// convention original_source's Python extractor reads from.
package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

func visibility(b *core.Base, n *sitter.Node, name string) core.Visibility {
	switch {
	case strings.HasSuffix(name, "__") && strings.HasPrefix(name, "__"):
		return core.Public
	case strings.HasPrefix(name, "__"):
		return core.Private
	case strings.HasPrefix(name, "_"):
		return core.Protected
	default:
		return core.Public
	}
}

// New constructs the Python language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "python",
		Extensions: []string{".py", ".pyi"},
		Grammar:    python.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"#"},
		},
		Rules: map[string]common.NodeRule{
			"class_definition": {
				Kind: core.KindClass, NameField: "name", BodyField: "body",
				DocComment: true, Visibility: visibility,
			},
			"function_definition": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body",
				DocComment: true, Visibility: visibility,
			},
			"import_statement": {
				Kind: core.KindImport, FallbackTypes: []string{"dotted_name", "aliased_import"},
			},
			"import_from_statement": {
				Kind: core.KindImport, FallbackTypes: []string{"dotted_name"},
			},
			"assignment": {
				Kind: core.KindVariable, NameField: "left", Visibility: visibility,
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class_definition", NameField: "name",
				HeritageField: "superclasses", ItemTypes: []string{"identifier"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "call", CallFunctionField: "function",
		MemberExprType: "attribute", MemberField: "attribute",
	})
}
