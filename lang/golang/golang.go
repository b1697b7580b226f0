// Package golang extracts symbols, relationships and identifiers from Go
// source using the tree-sitter-go grammar. It is grounded on the teacher
// codebase's providers/golang package: the node-kind-to-symbol-kind mapping,
// the exported/unexported visibility rule, and the multi-name declaration
// expansion all follow providers/golang/config.go's ExtractNodeName and alias
// table, generalized from that package's Query/Transform matching to this
// engine's symbol/relationship/identifier passes.
package golang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

var commentStyle = core.CommentStyle{
	LinePrefixes: []string{"//"},
	BlockStart:   "/*",
	BlockEnd:     "*/",
}

type extractor struct{}

// New constructs the Go language extractor.
func New() registry.Extractor { return extractor{} }

func (extractor) Language() string     { return "go" }
func (extractor) Extensions() []string { return []string{".go"} }
func (extractor) Grammar() *sitter.Language { return golang.GetLanguage() }

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase("go", filePath, source)
	return core.WalkSymbols(tree.RootNode(), func(n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
		return e.extractNode(b, n, parentID)
	})
}

func (e extractor) extractNode(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
	switch n.Type() {
	case "package_clause":
		name := b.GetNodeText(n.ChildByFieldName("name"))
		if name == "" {
			return core.Symbol{}, false, nil
		}
		return b.CreateSymbol(n, name, core.KindNamespace, core.Options{
			Signature: "package " + name,
			ParentID:  parentID,
		}), true, nil

	case "import_spec":
		return e.importSymbol(b, n, parentID), true, nil

	case "function_declaration":
		return e.functionSymbol(b, n, parentID), true, nil

	case "method_declaration":
		return e.methodSymbol(b, n, parentID), true, nil

	case "type_spec", "type_alias":
		return e.typeSymbol(b, n, parentID), true, nil

	case "field_declaration":
		sym, ok := e.fieldSymbol(b, n, parentID)
		return sym, ok, nil

	case "method_spec":
		return e.methodSpecSymbol(b, n, parentID), true, nil

	case "const_spec":
		return core.Symbol{}, false, e.specNames(b, n, parentID, core.KindConstant)

	case "var_spec":
		return core.Symbol{}, false, e.specNames(b, n, parentID, core.KindVariable)
	}
	return core.Symbol{}, false, nil
}

func (e extractor) importSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	path := strings.Trim(b.GetNodeText(n.ChildByFieldName("path")), `"`)
	name := path
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = b.GetNodeText(nameNode)
	} else if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	return b.CreateSymbol(n, name, core.KindImport, core.Options{
		Signature: `import "` + path + `"`,
		ParentID:  parentID,
		Metadata:  map[string]any{"path": path},
	})
}

func (e extractor) functionSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	meta := map[string]any{}
	if ret := resultType(b, n); ret != "" {
		meta["returnType"] = ret
	}
	return b.CreateSymbol(n, name, core.KindFunction, core.Options{
		Signature:  signatureUpTo(b, n, "body"),
		Visibility: visibilityFromName(name),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
		Metadata:   meta,
	})
}

func (e extractor) methodSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	meta := map[string]any{"receiver": receiverType(b, n)}
	if ret := resultType(b, n); ret != "" {
		meta["returnType"] = ret
	}
	return b.CreateSymbol(n, name, core.KindMethod, core.Options{
		Signature:  signatureUpTo(b, n, "body"),
		Visibility: visibilityFromName(name),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
		Metadata:   meta,
	})
}

// resultType renders a function/method declaration's result field, the Go
// grammar's name for its return type(s) - absent for a function returning
// nothing.
func resultType(b *core.Base, n *sitter.Node) string {
	result := n.ChildByFieldName("result")
	if result == nil {
		return ""
	}
	return b.GetNodeText(result)
}

func (e extractor) typeSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	typeNode := n.ChildByFieldName("type")

	kind := core.KindType
	signature := "type " + name
	if typeNode != nil {
		switch typeNode.Type() {
		case "struct_type":
			kind = core.KindClass
			signature = "type " + name + " struct"
		case "interface_type":
			kind = core.KindInterface
			signature = "type " + name + " interface"
		default:
			signature = "type " + name + " " + b.GetNodeText(typeNode)
		}
	}

	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  signature,
		Visibility: visibilityFromName(name),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n.Parent(), commentStyle),
	})
}

func (e extractor) fieldSymbol(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := n.ChildByFieldName("name")
	typeNode := n.ChildByFieldName("type")
	if nameNode == nil {
		// An embedded field has no name: the type itself is the field name,
		// and it additionally produces a composition relationship (see
		// ExtractRelationships).
		if typeNode == nil {
			return core.Symbol{}, false
		}
		embeddedName := lastSegment(b.GetNodeText(typeNode))
		return b.CreateSymbol(n, embeddedName, core.KindField, core.Options{
			Signature:  b.GetNodeText(n),
			Visibility: visibilityFromName(embeddedName),
			ParentID:   parentID,
			Metadata:   map[string]any{"embedded": true},
		}), true
	}
	if nameNode.Type() == "field_identifier_list" {
		// Multiple names sharing one type; caller only ever receives the
		// first from extractNode's single-symbol slot, so a field_declaration
		// with more than one name yields a symbol for the first name only.
		// Unlike const/var specs, the other names are not expanded, and the
		// symbol carries no metadata marking the dropped names.
		if nameNode.ChildCount() == 0 {
			return core.Symbol{}, false
		}
		nameNode = nameNode.Child(0)
	}
	name := b.GetNodeText(nameNode)
	if name == "" {
		return core.Symbol{}, false
	}
	var meta map[string]any
	if typeNode != nil {
		meta = map[string]any{"declaredType": b.GetNodeText(typeNode)}
	}
	return b.CreateSymbol(n, name, core.KindField, core.Options{
		Signature:  b.GetNodeText(n),
		Visibility: visibilityFromName(name),
		ParentID:   parentID,
		Metadata:   meta,
	}), true
}

func (e extractor) methodSpecSymbol(b *core.Base, n *sitter.Node, parentID string) core.Symbol {
	name := b.GetNodeText(n.ChildByFieldName("name"))
	return b.CreateSymbol(n, name, core.KindMethod, core.Options{
		Signature:  b.GetNodeText(n),
		Visibility: visibilityFromName(name),
		ParentID:   parentID,
		Metadata:   map[string]any{"interfaceMethod": true},
	})
}

func (e extractor) specNames(b *core.Base, n *sitter.Node, parentID string, kind core.SymbolKind) []core.Symbol {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	var idents []*sitter.Node
	if nameNode.Type() == "identifier_list" {
		for i := 0; i < int(nameNode.ChildCount()); i++ {
			if c := nameNode.Child(i); c.Type() == "identifier" {
				idents = append(idents, c)
			}
		}
	} else {
		idents = append(idents, nameNode)
	}

	var meta map[string]any
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		meta = map[string]any{"declaredType": b.GetNodeText(typeNode)}
	}

	out := make([]core.Symbol, 0, len(idents))
	for _, id := range idents {
		name := b.GetNodeText(id)
		if name == "" {
			continue
		}
		out = append(out, b.CreateSymbol(n, name, kind, core.Options{
			Signature:  b.GetNodeText(n),
			Visibility: visibilityFromName(name),
			ParentID:   parentID,
			Metadata:   meta,
		}))
	}
	return out
}

func (e extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	b := core.NewBase("go", filePath, source)
	byName := core.SymbolsByName(symbols)
	var rels []core.Relationship

	for _, n := range core.FindNodesByType(tree.RootNode(), "field_declaration") {
		if n.ChildByFieldName("name") != nil {
			continue
		}
		typeNode := n.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		embeddedName := lastSegment(b.GetNodeText(typeNode))
		structNode := enclosingTypeSpec(n)
		if structNode == nil {
			continue
		}
		structName := b.GetNodeText(structNode.ChildByFieldName("name"))
		fromSym, ok := byName[structName]
		if !ok {
			continue
		}
		toID, resolved := core.ExternalSymbolID(embeddedName), false
		if target, ok := byName[embeddedName]; ok {
			toID, resolved = target.ID, true
		}
		rel := core.Relationship{
			FromSymbolID: fromSym.ID,
			ToSymbolID:   toID,
			Kind:         core.RelComposition,
			FilePath:     filePath,
			LineNumber:   int(n.StartPoint().Row) + 1,
			Confidence:   1.0,
		}
		if !resolved {
			rel.Confidence = core.ExternalReferenceConfidence
		}
		rels = append(rels, rel)
	}

	for _, n := range core.FindNodesByType(tree.RootNode(), "call_expression") {
		fn := n.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		name := calleeName(b, fn)
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
			toID = target.ID
			confidence = 1.0
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
			nameNode := fn
			if fn.Type() == "selector_expression" {
				if f := fn.ChildByFieldName("field"); f != nil {
					nameNode = f
				}
			}
			text := source[nameNode.StartByte():nameNode.EndByte()]
			span := spanOf(n)
			containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
			idents = append(idents, core.Identifier{
				Name:               text,
				Kind:               core.IdentCall,
				FilePath:           filePath,
				Span:               span,
				ContainingSymbolID: containerID,
			})
		case "selector_expression":
			if n.Parent() != nil && n.Parent().Type() == "call_expression" {
				return true
			}
			field := n.ChildByFieldName("field")
			if field == nil {
				return true
			}
			span := spanOf(n)
			containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
			idents = append(idents, core.Identifier{
				Name:               source[field.StartByte():field.EndByte()],
				Kind:               core.IdentMemberAccess,
				FilePath:           filePath,
				Span:               span,
				ContainingSymbolID: containerID,
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

func visibilityFromName(name string) core.Visibility {
	if name == "" {
		return core.Public
	}
	r := []rune(name)[0]
	if r >= 'A' && r <= 'Z' {
		return core.Public
	}
	return core.Private
}

func lastSegment(text string) string {
	text = strings.TrimPrefix(text, "*")
	if idx := strings.LastIndex(text, "."); idx >= 0 {
		return text[idx+1:]
	}
	return text
}

func calleeName(b *core.Base, fn *sitter.Node) string {
	switch fn.Type() {
	case "identifier":
		return b.GetNodeText(fn)
	case "selector_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return b.GetNodeText(field)
		}
	}
	return ""
}

func enclosingTypeSpec(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "type_spec" {
			return p
		}
	}
	return nil
}

func receiverType(b *core.Base, methodDecl *sitter.Node) string {
	recv := methodDecl.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	text := b.GetNodeText(recv)
	return strings.Trim(text, "()")
}

// signatureUpTo renders the node's text up to (excluding) the named field,
// which for function/method declarations is "body" - giving the declaration
// head without the implementation.
func signatureUpTo(b *core.Base, n *sitter.Node, fieldName string) string {
	stop := n.ChildByFieldName(fieldName)
	if stop == nil {
		return b.GetNodeText(n)
	}
	start, end := n.StartByte(), stop.StartByte()
	if end <= start || int(end) > len(b.Source) {
		return b.GetNodeText(n)
	}
	return strings.TrimSpace(b.Source[start:end])
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
