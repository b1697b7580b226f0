// Package ruby configures lang/common for tree-sitter-ruby.
package ruby

import (
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Ruby language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "ruby",
		Extensions: []string{".rb"},
		Grammar:    ruby.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"#"},
		},
		Rules: map[string]common.NodeRule{
			"class": {
				Kind: core.KindClass, NameField: "name", BodyField: "body", DocComment: true,
			},
			"module": {
				Kind: core.KindModule, NameField: "name", BodyField: "body", DocComment: true,
			},
			"method": {
				Kind: core.KindMethod, NameField: "name", BodyField: "body", DocComment: true,
			},
			"singleton_method": {
				Kind: core.KindMethod, NameField: "name", BodyField: "body", DocComment: true,
			},
			"assignment": {
				Kind: core.KindVariable, NameField: "left",
			},
		},
		Heritage: []common.HeritageRule{
			{
				NodeType: "class", NameField: "name",
				HeritageField: "superclass", ItemTypes: []string{"constant", "scope_resolution"},
				Kind: core.RelExtends,
			},
		},
		CallExprType: "call", CallFunctionField: "method",
	})
}
