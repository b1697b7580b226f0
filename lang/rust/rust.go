// Package rust extracts symbols, relationships and identifiers from Rust
// source using the tree-sitter-rust grammar. Struct/enum/trait declarations
// and top-level functions follow the same direct node-kind-to-symbol-kind
// dispatch as lang/golang; the one Rust-specific wrinkle is that methods are
// not syntactically nested inside the type they belong to (they sit in a
// separate `impl Type { ... }` or `impl Trait for Type { ... }` block), so
// ExtractSymbols reparents impl-block function_items onto the declaring type
// by name in a second pass, the same cross-node-boundary technique
// lang/golang uses for embedded-field composition.
package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

var commentStyle = core.CommentStyle{
	LinePrefixes: []string{"///", "//!", "//"},
	BlockStart:   "/**",
	BlockEnd:     "*/",
}

type extractor struct{}

// New constructs the Rust language extractor.
func New() registry.Extractor { return extractor{} }

func (extractor) Language() string          { return "rust" }
func (extractor) Extensions() []string      { return []string{".rs"} }
func (extractor) Grammar() *sitter.Language { return rust.GetLanguage() }

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase("rust", filePath, source)
	symbols := core.WalkSymbols(tree.RootNode(), func(n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
		return e.extractNode(b, n, parentID)
	})
	e.reparentImplMethods(b, tree.RootNode(), symbols)
	return symbols
}

func (e extractor) extractNode(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
	switch n.Type() {
	case "mod_item":
		return e.modSymbol(b, n, parentID), true, nil
	case "struct_item":
		return e.structSymbol(b, n, parentID), true, nil
	case "enum_item":
		return e.enumSymbol(b, n, parentID), true, nil
	case "enum_variant":
		return e.enumVariantSymbol(b, n, parentID), true, nil
	case "trait_item":
		return e.traitSymbol(b, n, parentID), true, nil
	case "function_item":
		return e.functionSymbol(b, n, parentID), true, nil
	case "field_declaration":
		sym, ok := e.fieldSymbol(b, n, parentID)
		return sym, ok, nil
	case "const_item", "static_item":
		sym, ok := e.constSymbol(b, n, parentID)
		return sym, ok, nil
	case "type_item":
		return e.typeAliasSymbol(b, n, parentID), true, nil
	case "use_declaration":
		return core.Symbol{}, false, e.useSymbols(b, n, parentID)
	}
	return core.Symbol{}, false, nil
}

func (e extractor) modSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindModule, core.Options{
		Signature:  modSignature(b, n, name),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	})
}

func (e extractor) structSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindStruct, core.Options{
		Signature:  prependGenerics(b, n, "struct "+name),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	})
}

func (e extractor) enumSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindEnum, core.Options{
		Signature:  prependGenerics(b, n, "enum "+name),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	})
}

func (e extractor) enumVariantSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = n
	}
	name := b.GetNodeText(nameNode)
	return b.CreateSymbol(n, name, core.KindEnumMember, core.Options{
		Signature:  b.GetNodeText(n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	})
}

func (e extractor) traitSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindTrait, core.Options{
		Signature:  prependGenerics(b, n, traitSignature(b, n, name)),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	})
}

func (e extractor) functionSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	kind := core.KindFunction
	if enclosingImplOrTrait(n) != nil {
		kind = core.KindMethod
	}
	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  prependGenerics(b, n, functionSignature(b, n, name)),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
		Metadata:   map[string]any{"returnType": returnTypeOf(b, n)},
	})
}

func (e extractor) fieldSymbol(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	if name == "" {
		return core.Symbol{}, false
	}
	typeNode := n.ChildByFieldName("type")
	meta := map[string]any{}
	if typeNode != nil {
		meta["declaredType"] = b.GetNodeText(typeNode)
	}
	return b.CreateSymbol(n, name, core.KindField, core.Options{
		Signature:  b.GetNodeText(n),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		Metadata:   meta,
	}), true
}

func (e extractor) constSymbol(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	kind := core.KindConstant
	if n.Type() == "static_item" {
		kind = core.KindVariable
	}
	typeNode := n.ChildByFieldName("type")
	meta := map[string]any{}
	if typeNode != nil {
		meta["declaredType"] = b.GetNodeText(typeNode)
	}
	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  constSignature(b, n, name),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
		Metadata:   meta,
	}), true
}

func (e extractor) typeAliasSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindType, core.Options{
		Signature:  b.GetNodeText(n),
		Visibility: visibilityOf(b, n),
		ParentID:   parentID,
	})
}

func (e extractor) useSymbols(b *core.Base, n *sitter.Node, parentID string) []core.Symbol {
	arg := n.ChildByFieldName("argument")
	if arg == nil {
		return nil
	}
	var out []core.Symbol
	for _, path := range flattenUsePaths(b, arg) {
		name := lastSegment(path)
		if name == "" || name == "*" {
			continue
		}
		out = append(out, b.CreateSymbol(n, name, core.KindImport, core.Options{
			Signature: "use " + path,
			ParentID:  parentID,
			Metadata:  map[string]any{"path": path},
		}))
	}
	return out
}

// flattenUsePaths expands `use a::{b, c::d}` into ["a::b", "a::c::d"],
// matching how a single use_declaration can name several imports at once.
func flattenUsePaths(b *core.Base, n *sitter.Node) []string {
	switch n.Type() {
	case "use_as_clause":
		pathNode := n.ChildByFieldName("path")
		aliasNode := n.ChildByFieldName("alias")
		if pathNode == nil {
			return nil
		}
		if aliasNode != nil {
			return []string{b.GetNodeText(pathNode) + " as " + b.GetNodeText(aliasNode)}
		}
		return []string{b.GetNodeText(pathNode)}
	case "scoped_use_list":
		pathNode := n.ChildByFieldName("path")
		prefix := ""
		if pathNode != nil {
			prefix = b.GetNodeText(pathNode) + "::"
		}
		list := core.FindChildByType(n, "use_list")
		var out []string
		if list != nil {
			for i := 0; i < int(list.ChildCount()); i++ {
				for _, sub := range flattenUsePaths(b, list.Child(i)) {
					out = append(out, prefix+sub)
				}
			}
		}
		return out
	case "use_list":
		var out []string
		for i := 0; i < int(n.ChildCount()); i++ {
			out = append(out, flattenUsePaths(b, n.Child(i))...)
		}
		return out
	case ",", "{", "}":
		return nil
	default:
		text := b.GetNodeText(n)
		if text == "" {
			return nil
		}
		return []string{text}
	}
}

// reparentImplMethods finds every impl_item's Self type by name and rewrites
// the ParentID of the method symbols that were emitted for its
// function_item children, matching the invariant that a method's parent is
// the type it is declared on rather than the impl block's enclosing scope.
func (e extractor) reparentImplMethods(b *core.Base, root *sitter.Node, symbols []core.Symbol) {
	if len(symbols) == 0 {
		return
	}
	byName := make(map[string]string, len(symbols))
	for _, s := range symbols {
		switch s.Kind {
		case core.KindStruct, core.KindEnum, core.KindClass, core.KindUnion:
			if _, exists := byName[s.Name]; !exists {
				byName[s.Name] = s.ID
			}
		}
	}
	byPos := make(map[nodePos]int, len(symbols))
	for i, s := range symbols {
		byPos[nodePos{s.Span.StartLine, s.Span.StartColumn, s.Kind}] = i
	}

	for _, impl := range core.FindNodesByType(root, "impl_item") {
		typeNode := impl.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		selfType := lastSegment(firstTypeToken(b.GetNodeText(typeNode)))
		targetID, ok := byName[selfType]
		if !ok {
			continue
		}
		body := impl.ChildByFieldName("body")
		if body == nil {
			continue
		}
		for i := 0; i < int(body.ChildCount()); i++ {
			fn := body.Child(i)
			if fn.Type() != "function_item" {
				continue
			}
			start := fn.StartPoint()
			idx, found := byPos[nodePos{int(start.Row) + 1, int(start.Column) + 1, core.KindMethod}]
			if found {
				symbols[idx].ParentID = targetID
			}
		}
	}
}

type nodePos struct {
	line, col int
	kind      core.SymbolKind
}

func (e extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	b := core.NewBase("rust", filePath, source)
	byName := core.SymbolsByName(symbols)
	var rels []core.Relationship

	for _, impl := range core.FindNodesByType(tree.RootNode(), "impl_item") {
		typeNode := impl.ChildByFieldName("type")
		traitNode := impl.ChildByFieldName("trait")
		if typeNode == nil || traitNode == nil {
			continue
		}
		selfType := lastSegment(firstTypeToken(b.GetNodeText(typeNode)))
		fromSym, ok := byName[selfType]
		if !ok {
			continue
		}
		traitName := lastSegment(firstTypeToken(b.GetNodeText(traitNode)))
		toID := core.ExternalSymbolID(traitName)
		confidence := core.ExternalReferenceConfidence
		if target, ok := byName[traitName]; ok {
			toID, confidence = target.ID, 1.0
		}
		rels = append(rels, core.Relationship{
			FromSymbolID: fromSym.ID,
			ToSymbolID:   toID,
			Kind:         core.RelImplements,
			FilePath:     filePath,
			LineNumber:   int(impl.StartPoint().Row) + 1,
			Confidence:   confidence,
		})
	}

	for _, n := range core.FindNodesByType(tree.RootNode(), "call_expression") {
		fn := n.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		name := calleeName(source, fn)
		if name == "" {
			continue
		}
		containerID, ok := core.FindContainingSymbol(symbols, filePath, spanOf(n))
		if !ok {
			continue
		}
		toID := core.ExternalSymbolID(name)
		confidence := core.ExternalReferenceConfidence
		if target, ok := byName[name]; ok {
			toID, confidence = target.ID, 1.0
		}
		rels = append(rels, core.Relationship{
			FromSymbolID: containerID,
			ToSymbolID:   toID,
			Kind:         core.RelCalls,
			FilePath:     filePath,
			LineNumber:   int(n.StartPoint().Row) + 1,
			Confidence:   confidence,
		})
	}
	return rels
}

func (e extractor) ExtractIdentifiers(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier {
	var idents []core.Identifier
	core.TraverseTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "call_expression":
			fn := n.ChildByFieldName("function")
			if fn == nil {
				return true
			}
			name := calleeName(source, fn)
			if name == "" {
				return true
			}
			span := spanOf(n)
			containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
			idents = append(idents, core.Identifier{
				Name: name, Kind: core.IdentCall, FilePath: filePath,
				Span: span, ContainingSymbolID: containerID,
			})
		case "field_expression":
			field := n.ChildByFieldName("field")
			if field == nil {
				return true
			}
			if n.Parent() != nil && n.Parent().Type() == "call_expression" {
				return true
			}
			span := spanOf(n)
			containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
			idents = append(idents, core.Identifier{
				Name: source[field.StartByte():field.EndByte()], Kind: core.IdentMemberAccess,
				FilePath: filePath, Span: span, ContainingSymbolID: containerID,
			})
		}
		return true
	})
	return idents
}

func (e extractor) InferTypes(symbols []core.Symbol) map[string]string {
	types := make(map[string]string)
	for _, s := range symbols {
		switch s.Kind {
		case core.KindField, core.KindVariable, core.KindConstant:
			if t, ok := s.Metadata["declaredType"].(string); ok && t != "" {
				types[s.ID] = t
			}
		case core.KindFunction, core.KindMethod:
			if t, ok := s.Metadata["returnType"].(string); ok && t != "" {
				types[s.ID] = t
			}
		}
	}
	return types
}

func visibilityOf(b *core.Base, n *sitter.Node) core.Visibility {
	if vis := core.FindChildByType(n, "visibility_modifier"); vis != nil {
		return core.Public
	}
	return core.Private
}

func modSignature(b *core.Base, n *sitter.Node, name string) string {
	prefix := "mod "
	if core.FindChildByType(n, "visibility_modifier") != nil {
		prefix = "pub mod "
	}
	return prefix + name
}

func traitSignature(b *core.Base, n *sitter.Node, name string) string {
	prefix := "trait "
	if core.FindChildByType(n, "visibility_modifier") != nil {
		prefix = "pub trait "
	}
	sig := prefix + name
	if bounds := n.ChildByFieldName("bounds"); bounds != nil {
		sig += " " + b.GetNodeText(bounds)
	}
	return sig
}

func functionSignature(b *core.Base, n *sitter.Node, name string) string {
	var sb strings.Builder
	if core.FindChildByType(n, "visibility_modifier") != nil {
		sb.WriteString("pub ")
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "async", "unsafe", "extern_modifier":
			sb.WriteString(b.GetNodeText(n.Child(i)))
			sb.WriteString(" ")
		}
	}
	sb.WriteString("fn ")
	sb.WriteString(name)
	if params := n.ChildByFieldName("parameters"); params != nil {
		sb.WriteString(b.GetNodeText(params))
	} else {
		sb.WriteString("()")
	}
	if ret := returnTypeOf(b, n); ret != "" {
		sb.WriteString(" -> ")
		sb.WriteString(ret)
	}
	return sb.String()
}

func constSignature(b *core.Base, n *sitter.Node, name string) string {
	keyword := "const "
	if n.Type() == "static_item" {
		keyword = "static "
	}
	prefix := ""
	if core.FindChildByType(n, "visibility_modifier") != nil {
		prefix = "pub "
	}
	sig := prefix + keyword + name
	if t := n.ChildByFieldName("type"); t != nil {
		sig += ": " + b.GetNodeText(t)
	}
	if v := n.ChildByFieldName("value"); v != nil {
		val := b.GetNodeText(v)
		if len(val) <= 40 {
			sig += " = " + val
		}
	}
	return sig
}

func returnTypeOf(b *core.Base, n *sitter.Node) string {
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		return b.GetNodeText(ret)
	}
	return ""
}

// prependGenerics adds the `template<…>`-equivalent line C++ signatures use,
// generalized to Rust's `<...>` type-parameter lists: a separate leading
// line ahead of the introducer, per SPEC_FULL.md's supplemented-features
// carryover from original_source/src/extractors/cpp.rs.
func prependGenerics(b *core.Base, n *sitter.Node, base string) string {
	tp := n.ChildByFieldName("type_parameters")
	if tp == nil {
		return base
	}
	return b.GetNodeText(tp) + "\n" + base
}

func enclosingImplOrTrait(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "impl_item", "trait_item":
			return p
		case "function_item", "struct_item", "enum_item", "mod_item":
			return nil
		}
	}
	return nil
}

func firstTypeToken(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, "<( "); idx >= 0 {
		return text[:idx]
	}
	return text
}

func lastSegment(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[idx+2:]
	}
	return path
}

func calleeName(source string, fn *sitter.Node) string {
	switch fn.Type() {
	case "identifier":
		return source[fn.StartByte():fn.EndByte()]
	case "field_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return source[field.StartByte():field.EndByte()]
		}
	case "scoped_identifier":
		if name := fn.ChildByFieldName("name"); name != nil {
			return source[name.StartByte():name.EndByte()]
		}
	}
	return ""
}

func spanOf(n *sitter.Node) core.Span {
	start, end := n.StartPoint(), n.EndPoint()
	return core.Span{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}
