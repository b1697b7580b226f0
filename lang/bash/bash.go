// Package bash configures lang/common for tree-sitter-bash.
package bash

import (
	"github.com/smacker/go-tree-sitter/bash"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/lang/common"
	"github.com/oxhq/symbex/registry"
)

// New constructs the Bash language extractor.
func New() registry.Extractor {
	return common.New(common.Config{
		Language:   "bash",
		Extensions: []string{".sh", ".bash"},
		Grammar:    bash.GetLanguage(),
		CommentStyle: core.CommentStyle{
			LinePrefixes: []string{"#"},
		},
		Rules: map[string]common.NodeRule{
			"function_definition": {
				Kind: core.KindFunction, NameField: "name", BodyField: "body", DocComment: true,
			},
			"variable_assignment": {
				Kind: core.KindVariable, NameField: "name",
			},
		},
		CallExprType: "command", CallFunctionField: "name",
	})
}
