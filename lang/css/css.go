// Package css configures lang/common for tree-sitter-css: each rule set
// becomes a symbol named after its selector text, and the @media and
// @keyframes at-rules become namespaces/classes holding what is nested
// inside them; other at-rules (e.g. @font-face) yield no symbol.
package css

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

func selectorsNode(n *sitter.Node) *sitter.Node {
	return n.ChildByFieldName("selectors")
}

func keyframesName(n *sitter.Node) *sitter.Node {
	return core.FindChildByType(n, "keyframes_name")
}

// New constructs the CSS language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "css",
		Extensions: []string{".css"},
		Grammar:    css.GetLanguage(),
		CommentStyle: core.CommentStyle{
			BlockStart: "/*",
			BlockEnd:   "*/",
		},
		Rules: map[string]common.NodeRule{
			"rule_set": {
				Kind: core.KindClass, NameNode: selectorsNode, BodyField: "block",
			},
			"keyframes_statement": {
				Kind: core.KindClass, NameNode: keyframesName, BodyField: "block",
			},
			"media_statement": {
				Kind: core.KindNamespace, FallbackTypes: []string{"feature_query", "keyword_query"},
				BodyField: "block",
			},
		},
	})
}
