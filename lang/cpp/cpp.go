// Package cpp extracts symbols, relationships, identifiers and inferred
// types from C++ source using the tree-sitter-cpp grammar. It is a direct
// generalization of original_source/src/extractors/cpp.rs's walk_tree /
// extract_symbol dispatch (namespace, class/struct/union/enum, function and
// method extraction with modifier/return-type/parameter reconstruction,
// template parameter prepending, ERROR-node class/struct salvage) translated
// into this engine's Symbol/Relationship/Identifier model and Go idiom.
package cpp

import (
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

var commentStyle = core.CommentStyle{
	LinePrefixes: []string{"///", "//"},
	BlockStart:   "/**",
	BlockEnd:     "*/",
}

// trackedKinds mirrors cpp.rs's should_track set: these node kinds can be
// reached by more than one path during the walk (e.g. a function_definition
// contains a function_declarator that is also visited on its own), so the
// first successful extraction marks the node processed and later visits of
// the same position+kind are skipped.
var trackedKinds = map[string]bool{
	"function_declarator": true,
	"function_definition":  true,
	"declaration":          true,
	"class_specifier":      true,
}

type extractor struct{}

// New constructs the C++ language extractor.
func New() registry.Extractor { return extractor{} }

func (extractor) Language() string          { return "cpp" }
func (extractor) Extensions() []string      { return []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h"} }
func (extractor) Grammar() *sitter.Language { return cpp.GetLanguage() }

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase("cpp", filePath, source)
	symbols := core.WalkSymbols(tree.RootNode(), func(n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
		if trackedKinds[n.Type()] && b.Seen(n) {
			return core.Symbol{}, false, nil
		}
		sym, ok := e.extractNode(b, n, parentID)
		if ok && trackedKinds[n.Type()] {
			b.MarkProcessed(n)
		}
		return sym, ok, nil
	})
	return symbols
}

func (e extractor) extractNode(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	switch n.Type() {
	case "namespace_definition":
		return e.namespace(b, n, parentID)
	case "using_declaration", "namespace_alias_definition":
		return e.using(b, n, parentID)
	case "class_specifier":
		return e.classOrStruct(b, n, parentID, core.KindClass, "class")
	case "struct_specifier":
		return e.classOrStruct(b, n, parentID, core.KindStruct, "struct")
	case "union_specifier":
		return e.union(b, n, parentID)
	case "enum_specifier":
		return e.enum_(b, n, parentID)
	case "enumerator":
		return e.enumMember(b, n, parentID)
	case "function_definition":
		return e.function(b, n, parentID)
	case "function_declarator":
		if n.Parent() != nil && n.Parent().Type() == "function_definition" {
			return core.Symbol{}, false
		}
		return e.function(b, n, parentID)
	case "declaration":
		return e.declaration(b, n, parentID)
	case "field_declaration":
		return e.field(b, n, parentID)
	case "template_declaration":
		return e.template(b, n, parentID)
	case "ERROR":
		return e.fromError(b, n, parentID)
	}
	return core.Symbol{}, false
}

func (e extractor) namespace(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := core.FindChildByType(n, "namespace_identifier")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	return b.CreateSymbol(n, name, core.KindNamespace, core.Options{
		Signature:  "namespace " + name,
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	}), true
}

func (e extractor) using(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	var name, signature string
	switch n.Type() {
	case "using_declaration":
		target := firstOfKind(n, "qualified_identifier", "identifier")
		if target == nil {
			return core.Symbol{}, false
		}
		fullPath := b.GetNodeText(target)
		isNamespace := hasDirectChildOfType(n, "namespace")
		if isNamespace {
			name = fullPath
			signature = "using namespace " + fullPath
		} else {
			parts := strings.Split(fullPath, "::")
			name = parts[len(parts)-1]
			signature = "using " + fullPath
		}
	case "namespace_alias_definition":
		alias := core.FindChildByType(n, "namespace_identifier")
		target := firstOfKind(n, "nested_namespace_specifier", "qualified_identifier")
		if alias == nil || target == nil {
			return core.Symbol{}, false
		}
		name = b.GetNodeText(alias)
		signature = "namespace " + name + " = " + b.GetNodeText(target)
	}
	if name == "" {
		return core.Symbol{}, false
	}
	return b.CreateSymbol(n, name, core.KindImport, core.Options{
		Signature: signature,
		ParentID:  parentID,
	}), true
}

func (e extractor) classOrStruct(b *core.Base, n *sitter.Node, parentID string, kind core.SymbolKind, keyword string) (core.Symbol, bool) {
	nameNode := firstOfKind(n, "type_identifier", "template_type")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	signature := keyword + " " + name
	if nameNode.Type() == "template_type" {
		if typeID := core.FindChildByType(nameNode, "type_identifier"); typeID != nil {
			name = b.GetNodeText(typeID)
		}
		signature = keyword + " " + b.GetNodeText(nameNode)
	}

	if templateParams := templateParameters(b, n.Parent()); templateParams != "" {
		signature = templateParams + "\n" + signature
	}
	if base := core.FindChildByType(n, "base_class_clause"); base != nil {
		if bases := baseClasses(b, base); len(bases) > 0 {
			signature += " : " + strings.Join(bases, ", ")
		}
	}
	if kind == core.KindStruct {
		if alignas := core.FindChildByType(n, "alignas_qualifier"); alignas != nil {
			signature = b.GetNodeText(alignas) + " " + signature
		}
	}

	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  signature,
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	}), true
}

func (e extractor) union(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := core.FindChildByType(n, "type_identifier")
	name := "<anonymous_union_" + strconv.Itoa(int(n.StartPoint().Row)) + ">"
	signature := "union"
	if nameNode != nil {
		name = b.GetNodeText(nameNode)
		signature = "union " + name
	}
	return b.CreateSymbol(n, name, core.KindUnion, core.Options{
		Signature: signature,
		ParentID:  parentID,
	}), true
}

func (e extractor) enum_(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := core.FindChildByType(n, "type_identifier")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	signature := "enum " + name
	if hasDirectChildOfType(n, "class") {
		signature = "enum class " + name
	}
	if colonIdx := childIndexOfType(n, ":"); colonIdx >= 0 && colonIdx+1 < int(n.ChildCount()) {
		t := n.Child(colonIdx + 1)
		if t.Type() == "primitive_type" || t.Type() == "type_identifier" {
			signature += " : " + b.GetNodeText(t)
		}
	}
	return b.CreateSymbol(n, name, core.KindEnum, core.Options{
		Signature: signature,
		ParentID:  parentID,
	}), true
}

func (e extractor) enumMember(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := core.FindChildByType(n, "identifier")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	signature := name
	if eqIdx := childIndexOfType(n, "="); eqIdx >= 0 {
		var parts []string
		for i := eqIdx + 1; i < int(n.ChildCount()); i++ {
			parts = append(parts, b.GetNodeText(n.Child(i)))
		}
		if v := strings.TrimSpace(strings.Join(parts, "")); v != "" {
			signature += " = " + v
		}
	}

	kind := core.KindEnumMember
	if parentEnum := enclosingEnum(n); parentEnum == nil || core.FindChildByType(parentEnum, "type_identifier") == nil {
		kind = core.KindConstant
	}

	return b.CreateSymbol(n, name, kind, core.Options{
		Signature: signature,
		ParentID:  parentID,
	}), true
}

func (e extractor) function(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	funcNode := n
	if n.Type() == "function_definition" {
		if d := firstOfKind(n, "function_declarator", "reference_declarator"); d != nil {
			funcNode = d
		}
	}
	nameNode := functionNameNode(funcNode)
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)

	if nameNode.Type() == "field_identifier" {
		return e.method(b, n, funcNode, name, parentID)
	}

	isCtor := isConstructor(b, name, n)
	isDtor := strings.HasPrefix(name, "~")
	isOperator := strings.HasPrefix(name, "operator")
	kind := core.KindFunction
	switch {
	case isCtor:
		kind = core.KindConstructor
	case isDtor:
		kind = core.KindDestructor
	case isOperator:
		kind = core.KindOperator
	}

	modifiers := functionModifiers(b, n)
	returnType := ""
	if !isCtor && !isDtor {
		returnType = basicReturnType(b, n)
	}
	trailing := trailingReturnType(b, n)
	parameters := functionParameters(b, funcNode)
	isConst := hasConstQualifier(b, funcNode)
	noexcept := noexceptSpecifier(b, funcNode)

	var sig strings.Builder
	if tp := templateParameters(b, n.Parent()); tp != "" {
		sig.WriteString(tp)
		sig.WriteByte('\n')
	}
	if len(modifiers) > 0 {
		sig.WriteString(strings.Join(modifiers, " "))
		sig.WriteByte(' ')
	}
	if returnType != "" {
		sig.WriteString(returnType)
		sig.WriteByte(' ')
	}
	sig.WriteString(name)
	sig.WriteString(parameters)
	if isConst {
		sig.WriteString(" const")
	}
	if noexcept != "" {
		sig.WriteByte(' ')
		sig.WriteString(noexcept)
	}
	if trailing != "" {
		if strings.HasPrefix(trailing, "->") {
			sig.WriteByte(' ')
			sig.WriteString(trailing)
		} else {
			sig.WriteString(" -> ")
			sig.WriteString(trailing)
		}
	}
	if n.Type() == "function_definition" {
		if hasDirectChildOfType(n, "delete_method_clause") {
			sig.WriteString(" = delete")
		} else if hasDirectChildOfType(n, "default_method_clause") {
			sig.WriteString(" = default")
		}
	}

	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  sig.String(),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	}), true
}

func (e extractor) method(b *core.Base, n, funcNode *sitter.Node, name, parentID string) (core.Symbol, bool) {
	isCtor := isConstructor(b, name, n)
	isDtor := strings.HasPrefix(name, "~")
	isOperator := strings.HasPrefix(name, "operator")
	kind := core.KindMethod
	switch {
	case isCtor:
		kind = core.KindConstructor
	case isDtor:
		kind = core.KindDestructor
	case isOperator:
		kind = core.KindOperator
	}

	modifiers := methodModifiers(b, n, funcNode)
	returnType := ""
	if !isCtor && !isDtor {
		returnType = basicReturnType(b, n)
	}
	parameters := functionParameters(b, funcNode)
	isConst := hasConstQualifier(b, funcNode)

	var sig strings.Builder
	if len(modifiers) > 0 {
		sig.WriteString(strings.Join(modifiers, " "))
		sig.WriteByte(' ')
	}
	if returnType != "" {
		sig.WriteString(returnType)
		sig.WriteByte(' ')
	}
	sig.WriteString(name)
	sig.WriteString(parameters)
	if isConst {
		sig.WriteString(" const")
	}

	return b.CreateSymbol(n, name, kind, core.Options{
		Signature:  sig.String(),
		ParentID:   parentID,
		DocComment: b.FindDocComment(n, commentStyle),
	}), true
}

func (e extractor) declaration(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	if funcDeclarator := core.FindChildByType(n, "function_declarator"); funcDeclarator != nil {
		if core.FindChildByType(funcDeclarator, "destructor_name") != nil {
			return e.destructorFromDeclaration(b, n, parentID)
		}
		nameNode := functionNameNode(funcDeclarator)
		if nameNode == nil {
			return core.Symbol{}, false
		}
		name := b.GetNodeText(nameNode)
		if isConstructor(b, name, n) {
			return e.constructorFromDeclaration(b, n, funcDeclarator, parentID)
		}
		return e.function(b, n, parentID)
	}

	declarators := childrenOfType(n, "init_declarator")
	if len(declarators) == 0 {
		identNode := core.FindChildByType(n, "identifier")
		if identNode == nil {
			return core.Symbol{}, false
		}
		name := b.GetNodeText(identNode)
		storage := storageClass(b, n)
		typeSpec := typeSpecifiers(b, n)
		kind := core.KindVariable
		if isConstantDeclaration(storage, typeSpec) || isStaticMemberVariable(n, storage) {
			kind = core.KindConstant
		}
		return b.CreateSymbol(n, name, kind, core.Options{
			Signature: directVariableSignature(b, n, name),
			ParentID:  parentID,
		}), true
	}

	declarator := declarators[0]
	nameNode := core.FindChildByType(declarator, "identifier")
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	storage := storageClass(b, n)
	typeSpec := typeSpecifiers(b, n)
	kind := core.KindVariable
	if isConstantDeclaration(storage, typeSpec) {
		kind = core.KindConstant
	}
	return b.CreateSymbol(n, name, kind, core.Options{
		Signature: variableSignature(b, n, name),
		ParentID:  parentID,
	}), true
}

func (e extractor) field(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	declarators := childrenOfTypes(n, "field_declarator", "init_declarator")
	var nameNode *sitter.Node
	if len(declarators) == 0 {
		nameNode = core.FindChildByType(n, "field_identifier")
	} else {
		nameNode = firstOfKind(declarators[0], "field_identifier", "identifier")
	}
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	storage := storageClass(b, n)
	typeSpec := typeSpecifiers(b, n)
	kind := core.KindField
	if isConstantDeclaration(storage, typeSpec) || isStaticMemberVariable(n, storage) {
		kind = core.KindConstant
	}
	return b.CreateSymbol(n, name, kind, core.Options{
		Signature: fieldSignature(b, n, name),
		ParentID:  parentID,
	}), true
}

func (e extractor) template(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	inner := firstOfKinds(n, "class_specifier", "struct_specifier", "function_definition", "declaration")
	if inner == nil {
		return core.Symbol{}, false
	}
	sym, ok := e.extractNode(b, inner, parentID)
	if !ok {
		return core.Symbol{}, false
	}
	if tp := templateParameters(b, n); tp != "" {
		if sym.Signature != "" {
			sym.Signature = tp + "\n" + sym.Signature
		} else {
			sym.Signature = tp
		}
	}
	return sym, true
}

func (e extractor) fromError(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	count := int(n.ChildCount())
	for i := 0; i+1 < count; i++ {
		cur, next := n.Child(i), n.Child(i+1)
		if cur.Type() == "class" && next.Type() == "type_identifier" {
			name := b.GetNodeText(next)
			return b.CreateSymbol(n, name, core.KindClass, core.Options{
				Signature: "class " + name,
				ParentID:  parentID,
				Metadata:  map[string]any{"extractedFromError": true},
			}), true
		}
		if cur.Type() == "struct" && next.Type() == "type_identifier" {
			name := b.GetNodeText(next)
			return b.CreateSymbol(n, name, core.KindStruct, core.Options{
				Signature: "struct " + name,
				ParentID:  parentID,
				Metadata:  map[string]any{"extractedFromError": true},
			}), true
		}
	}
	return core.Symbol{}, false
}

func (e extractor) destructorFromDeclaration(b *core.Base, n *sitter.Node, parentID string) (core.Symbol, bool) {
	signature := b.GetNodeText(n)
	start := strings.Index(signature, "~")
	if start < 0 {
		return core.Symbol{}, false
	}
	end := strings.Index(signature[start:], "(")
	if end < 0 {
		return core.Symbol{}, false
	}
	name := signature[start : start+end]
	return b.CreateSymbol(n, name, core.KindDestructor, core.Options{
		Signature: signature,
		ParentID:  parentID,
	}), true
}

func (e extractor) constructorFromDeclaration(b *core.Base, n, funcDeclarator *sitter.Node, parentID string) (core.Symbol, bool) {
	nameNode := functionNameNode(funcDeclarator)
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)

	var sig strings.Builder
	if modifiers := functionModifiers(b, n); len(modifiers) > 0 {
		sig.WriteString(strings.Join(modifiers, " "))
		sig.WriteByte(' ')
	}
	sig.WriteString(name)
	sig.WriteString(functionParameters(b, funcDeclarator))
	if noexcept := noexceptSpecifier(b, funcDeclarator); noexcept != "" {
		sig.WriteByte(' ')
		sig.WriteString(noexcept)
	}
	for i := 0; i+1 < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "=" {
			next := n.Child(i + 1)
			if next.Type() == "delete" || next.Type() == "default" {
				sig.WriteString(" = " + b.GetNodeText(next))
				break
			}
		}
	}

	return b.CreateSymbol(n, name, core.KindConstructor, core.Options{
		Signature: sig.String(),
		ParentID:  parentID,
	}), true
}

func (e extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	b := core.NewBase("cpp", filePath, source)
	byName := core.SymbolsByName(symbols)
	var rels []core.Relationship

	core.TraverseTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() != "class_specifier" && n.Type() != "struct_specifier" {
			return true
		}
		nameNode := core.FindChildByType(n, "type_identifier")
		if nameNode == nil {
			return true
		}
		className := b.GetNodeText(nameNode)
		derived, ok := byName[className]
		if !ok {
			return true
		}
		baseClause := core.FindChildByType(n, "base_class_clause")
		if baseClause == nil {
			return true
		}
		for _, base := range baseClasses(b, baseClause) {
			clean := base
			for _, prefix := range []string{"public ", "private ", "protected "} {
				if strings.HasPrefix(clean, prefix) {
					clean = strings.TrimPrefix(clean, prefix)
					break
				}
			}
			toID := core.ExternalSymbolID(clean)
			confidence := core.ExternalReferenceConfidence
			if baseSym, ok := byName[clean]; ok {
				toID = baseSym.ID
				confidence = 1.0
			}
			rels = append(rels, core.Relationship{
				FromSymbolID: derived.ID,
				ToSymbolID:   toID,
				Kind:         core.RelExtends,
				FilePath:     filePath,
				LineNumber:   int(n.StartPoint().Row) + 1,
				Confidence:   confidence,
			})
		}
		return true
	})

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
			if fn.Type() == "field_expression" {
				if field := fn.ChildByFieldName("field"); field != nil {
					nameNode = field
				}
			}
			span := spanOf(n)
			containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
			idents = append(idents, core.Identifier{
				Name:               source[nameNode.StartByte():nameNode.EndByte()],
				Kind:               core.IdentCall,
				FilePath:           filePath,
				Span:               span,
				ContainingSymbolID: containerID,
			})
		case "field_expression":
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

var (
	functionReturnPattern = regexp.MustCompile(`^(?:(?:virtual|static|inline|friend)\s+)*(.+?)\s+(\w+|operator\w*|~\w+)\s*\(`)
	autoReturnPattern     = regexp.MustCompile(`auto\s+(\w+)\s*\([^)]*\)\s*->\s*(.+?)(?:\s|$)`)
	variableTypePattern   = regexp.MustCompile(`^(?:(?:static|extern|const|constexpr|mutable)\s+)*(.+?)\s+(\w+)(?:\s*=.*)?$`)
)

func (e extractor) InferTypes(symbols []core.Symbol) map[string]string {
	types := make(map[string]string)
	for _, s := range symbols {
		switch s.Kind {
		case core.KindFunction, core.KindMethod:
			if t, ok := inferFunctionReturnType(s); ok {
				types[s.ID] = t
			}
		case core.KindVariable, core.KindField:
			if t, ok := inferVariableType(s); ok {
				types[s.ID] = t
			}
		}
	}
	return types
}

func inferFunctionReturnType(s core.Symbol) (string, bool) {
	if s.Kind == core.KindConstructor || s.Kind == core.KindDestructor {
		return "", false
	}
	signature := s.Signature
	if idx := strings.Index(signature, "template<"); idx >= 0 {
		if nl := strings.Index(signature[idx:], "\n"); nl >= 0 {
			signature = signature[idx+nl+1:]
		}
	}
	if m := functionReturnPattern.FindStringSubmatch(signature); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := autoReturnPattern.FindStringSubmatch(signature); m != nil {
		return strings.TrimSpace(m[2]), true
	}
	return "", false
}

func inferVariableType(s core.Symbol) (string, bool) {
	if m := variableTypePattern.FindStringSubmatch(s.Signature); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// --- node helpers ---

func firstOfKind(n *sitter.Node, kinds ...string) *sitter.Node {
	return firstOfKinds(n, kinds...)
}

func firstOfKinds(n *sitter.Node, kinds ...string) *sitter.Node {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); set[c.Type()] {
			return c
		}
	}
	return nil
}

func hasDirectChildOfType(n *sitter.Node, kind string) bool {
	return firstOfKind(n, kind) != nil
}

func childIndexOfType(n *sitter.Node, kind string) int {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == kind {
			return i
		}
	}
	return -1
}

func childrenOfType(n *sitter.Node, kind string) []*sitter.Node {
	return childrenOfTypes(n, kind)
}

func childrenOfTypes(n *sitter.Node, kinds ...string) []*sitter.Node {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); set[c.Type()] {
			out = append(out, c)
		}
	}
	return out
}

func enclosingEnum(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "enum_specifier" {
			return p
		}
	}
	return nil
}

func functionNameNode(funcNode *sitter.Node) *sitter.Node {
	if n := core.FindChildByType(funcNode, "operator_name"); n != nil {
		return n
	}
	if n := core.FindChildByType(funcNode, "destructor_name"); n != nil {
		return n
	}
	if n := core.FindChildByType(funcNode, "field_identifier"); n != nil {
		return n
	}
	if n := core.FindChildByType(funcNode, "identifier"); n != nil {
		return n
	}
	if n := core.FindChildByType(funcNode, "qualified_identifier"); n != nil {
		return n
	}
	return nil
}

func isConstructor(b *core.Base, name string, n *sitter.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() == "class_specifier" || p.Type() == "struct_specifier" {
			if classNameNode := core.FindChildByType(p, "type_identifier"); classNameNode != nil {
				if b.GetNodeText(classNameNode) == name {
					return true
				}
			}
		}
	}
	return false
}

var funcModifierKinds = map[string]bool{"virtual": true, "static": true, "explicit": true, "friend": true, "inline": true}
var methodModifierKinds = map[string]bool{"virtual": true, "static": true, "explicit": true, "friend": true, "inline": true, "override": true}

func functionModifiers(b *core.Base, n *sitter.Node) []string {
	var mods []string
	collectModifiersRecursive(b, n, &mods, funcModifierKinds)
	return mods
}

func methodModifiers(b *core.Base, declNode, funcNode *sitter.Node) []string {
	var mods []string
	nodes := []*sitter.Node{declNode, funcNode}
	if p := declNode.Parent(); p != nil {
		nodes = append(nodes, p)
		if gp := p.Parent(); gp != nil {
			nodes = append(nodes, gp)
		}
	}
	for _, n := range nodes {
		if n.Type() == "field_declaration" || n.Type() == "declaration" {
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if methodModifierKinds[c.Type()] {
					appendUnique(&mods, b.GetNodeText(c))
				} else if c.Type() == "storage_class_specifier" {
					text := b.GetNodeText(c)
					if methodModifierKinds[text] {
						appendUnique(&mods, text)
					}
				}
			}
		}
		collectModifiersRecursive(b, n, &mods, methodModifierKinds)
	}
	return mods
}

func collectModifiersRecursive(b *core.Base, n *sitter.Node, mods *[]string, kinds map[string]bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if kinds[c.Type()] {
			appendUnique(mods, b.GetNodeText(c))
		} else if c.Type() == "storage_class_specifier" {
			appendUnique(mods, b.GetNodeText(c))
		}
		if c.Type() != "compound_statement" && c.Type() != "function_body" {
			collectModifiersRecursive(b, c, mods, kinds)
		}
	}
}

func appendUnique(list *[]string, v string) {
	for _, existing := range *list {
		if existing == v {
			return
		}
	}
	*list = append(*list, v)
}

var basicTypeKinds = map[string]bool{"primitive_type": true, "type_identifier": true, "qualified_identifier": true, "auto": true, "placeholder_type_specifier": true}

func basicReturnType(b *core.Base, n *sitter.Node) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if basicTypeKinds[c.Type()] {
			return b.GetNodeText(c)
		}
	}
	// n is a bare function_declarator reached directly (a method prototype
	// inside a class body has no field_declarator wrapper, so the walk
	// dispatches on the declarator itself): the return type sits on its
	// enclosing field_declaration/declaration instead.
	if n.Type() == "function_declarator" {
		if p := n.Parent(); p != nil && (p.Type() == "field_declaration" || p.Type() == "declaration") {
			for i := 0; i < int(p.ChildCount()); i++ {
				c := p.Child(i)
				if basicTypeKinds[c.Type()] {
					return b.GetNodeText(c)
				}
			}
		}
	}
	return ""
}

func trailingReturnType(b *core.Base, n *sitter.Node) string {
	declarator := core.FindChildByType(n, "function_declarator")
	if declarator == nil {
		return ""
	}
	for i := 0; i < int(declarator.ChildCount()); i++ {
		c := declarator.Child(i)
		if c.Type() == "->" && i+1 < int(declarator.ChildCount()) {
			return b.GetNodeText(declarator.Child(i + 1))
		}
		if c.Type() == "trailing_return_type" {
			if t := firstOfKinds(c, "primitive_type", "type_identifier", "qualified_identifier"); t != nil {
				return b.GetNodeText(t)
			}
			return b.GetNodeText(c)
		}
	}
	return ""
}

func functionParameters(b *core.Base, funcNode *sitter.Node) string {
	if paramList := core.FindChildByType(funcNode, "parameter_list"); paramList != nil {
		return b.GetNodeText(paramList)
	}
	return "()"
}

func hasConstQualifier(b *core.Base, funcNode *sitter.Node) bool {
	for i := 0; i < int(funcNode.ChildCount()); i++ {
		c := funcNode.Child(i)
		if c.Type() == "type_qualifier" && b.GetNodeText(c) == "const" {
			return true
		}
	}
	return false
}

func noexceptSpecifier(b *core.Base, funcNode *sitter.Node) string {
	if n := core.FindChildByType(funcNode, "noexcept"); n != nil {
		return b.GetNodeText(n)
	}
	return ""
}

func templateParameters(b *core.Base, node *sitter.Node) string {
	for cur := node; cur != nil; cur = cur.Parent() {
		if cur.Type() == "template_declaration" {
			if paramList := core.FindChildByType(cur, "template_parameter_list"); paramList != nil {
				return "template" + b.GetNodeText(paramList)
			}
		}
	}
	return ""
}

func baseClasses(b *core.Base, baseClause *sitter.Node) []string {
	var bases []string
	count := int(baseClause.ChildCount())
	for i := 0; i < count; i++ {
		c := baseClause.Child(i)
		if c.Type() == ":" || c.Type() == "," {
			continue
		}
		if c.Type() == "access_specifier" {
			access := b.GetNodeText(c)
			i++
			if i < count {
				classNode := baseClause.Child(i)
				if classNode.Type() == "type_identifier" || classNode.Type() == "qualified_identifier" || classNode.Type() == "template_type" {
					bases = append(bases, access+" "+b.GetNodeText(classNode))
				}
			}
			continue
		}
		if c.Type() == "type_identifier" || c.Type() == "qualified_identifier" || c.Type() == "template_type" {
			bases = append(bases, b.GetNodeText(c))
		}
	}
	return bases
}

var storageKinds = map[string]bool{"static": true, "extern": true, "mutable": true, "thread_local": true}

func storageClass(b *core.Base, n *sitter.Node) []string {
	var out []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if storageKinds[c.Type()] || c.Type() == "storage_class_specifier" {
			out = append(out, b.GetNodeText(c))
		}
	}
	return out
}

var typeQualifierKinds = map[string]bool{"const": true, "constexpr": true, "volatile": true}

func typeSpecifiers(b *core.Base, n *sitter.Node) []string {
	var out []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if typeQualifierKinds[c.Type()] || c.Type() == "type_qualifier" {
			out = append(out, b.GetNodeText(c))
		}
	}
	return out
}

func isConstantDeclaration(storage, typeSpec []string) bool {
	for _, t := range typeSpec {
		if t == "const" || t == "constexpr" {
			return true
		}
	}
	for _, s := range storage {
		if s == "constexpr" {
			return true
		}
	}
	return false
}

func isStaticMemberVariable(n *sitter.Node, storage []string) bool {
	hasStatic := false
	for _, s := range storage {
		if s == "static" {
			hasStatic = true
			break
		}
	}
	if !hasStatic {
		return false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "class_specifier", "struct_specifier":
			return true
		case "translation_unit":
			return false
		}
	}
	return false
}

func directVariableSignature(b *core.Base, n *sitter.Node, name string) string {
	var sig strings.Builder
	if storage := storageClass(b, n); len(storage) > 0 {
		sig.WriteString(strings.Join(storage, " "))
		sig.WriteByte(' ')
	}
	if typeSpec := typeSpecifiers(b, n); len(typeSpec) > 0 {
		sig.WriteString(strings.Join(typeSpec, " "))
		sig.WriteByte(' ')
	}
	if t := firstOfKinds(n, "primitive_type", "type_identifier", "qualified_identifier"); t != nil {
		sig.WriteString(b.GetNodeText(t))
		sig.WriteByte(' ')
	}
	sig.WriteString(name)
	return sig.String()
}

func variableSignature(b *core.Base, n *sitter.Node, name string) string {
	parts := append(storageClass(b, n), typeSpecifiers(b, n)...)
	if t := firstOfKinds(n, "primitive_type", "type_identifier", "qualified_identifier"); t != nil {
		parts = append(parts, b.GetNodeText(t))
	}
	var sig strings.Builder
	if len(parts) > 0 {
		sig.WriteString(strings.Join(parts, " "))
		sig.WriteByte(' ')
	}
	sig.WriteString(name)
	return sig.String()
}

func fieldSignature(b *core.Base, n *sitter.Node, name string) string {
	return variableSignature(b, n, name)
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
