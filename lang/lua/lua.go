// Package lua configures lang/common for tree-sitter-lua.
package lua

import (
	"github.com/smacker/go-tree-sitter/lua"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Lua language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "lua",
		Extensions: []string{".lua"},
		Grammar:    lua.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"--"},
			BlockStart:   "--[[",
			BlockEnd:     "]]",
		},
		Rules: map[string]common.NodeRule{
			"function_declaration": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"local_function": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"variable_declaration": {
				Kind: core.KindVariable, FallbackTypes: []string{"variable_list", "identifier"},
			},
			"local_variable_declaration": {
				Kind: core.KindVariable, FallbackTypes: []string{"variable_list", "identifier"},
			},
		},
		CallExprType: "function_call", CallFunctionField: "name",
	})
}
