package core

import sitter "github.com/smacker/go-tree-sitter"

// NodeExtractFunc decides, for a single CST node, what symbol(s) it produces.
// hasPrimary reports whether primary should become the current_parent_id for
// the node's own descendants (state machine in spec §4.6); extras are
// additional symbols emitted at the same node (e.g. each name in a
// multi-variable declaration, or symbols salvaged from an ERROR node) that
// attach to the existing parent without themselves becoming one.
type NodeExtractFunc func(n *sitter.Node, parentID string) (primary Symbol, hasPrimary bool, extras []Symbol)

// WalkSymbols performs the shared single DFS pass every per-language symbol
// extractor runs: pre-order, document order within siblings, threading
// current_parent_id down into a node's own subtree and restoring it for the
// next sibling once that subtree is done.
func WalkSymbols(root *sitter.Node, extract NodeExtractFunc) []Symbol {
	var symbols []Symbol
	var walk func(n *sitter.Node, parentID string)
	walk = func(n *sitter.Node, parentID string) {
		primary, hasPrimary, extras := extract(n, parentID)
		childParent := parentID
		if hasPrimary {
			symbols = append(symbols, primary)
			childParent = primary.ID
		}
		symbols = append(symbols, extras...)

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), childParent)
		}
	}
	walk(root, "")
	return symbols
}
