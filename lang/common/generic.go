// Package common provides a declarative, config-driven extractor shared by
// every CST-backed language that does not need the depth of a bespoke
// extractor (lang/golang, lang/cpp, lang/sql). It generalizes the teacher
// codebase's base-provider-plus-per-language-config architecture
// (providers/base/provider.go driving a language-specific alias table such as
// providers/golang/config.go) from that codebase's Query/Transform matching
// to this engine's symbol/relationship/identifier extraction.
package common

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

// NodeRule maps one CST node kind to a symbol. The declared name is found
// first by NameField (if set), falling back to the first direct child
// matching one of FallbackTypes.
type NodeRule struct {
	Kind core.SymbolKind

	NameField     string
	FallbackTypes []string
	// NameNode, when set, takes priority over NameField/FallbackTypes - for
	// grammars where the declared name sits below a nested field (e.g. C's
	// function_definition -> declarator:function_declarator -> declarator).
	NameNode func(n *sitter.Node) *sitter.Node

	// Signature renders the declaration text shown to a caller; nil means
	// "the node's full source text".
	Signature func(b *core.Base, n *sitter.Node, name string) string

	// Visibility resolves access level; nil means the Config-level rule
	// (see Config.Capitalized).
	Visibility func(b *core.Base, n *sitter.Node, name string) core.Visibility

	// DocComment, when true, attaches a preceding comment block.
	DocComment bool

	// BodyField stops Signature's default rendering before this field (e.g.
	// "body"), so a function's signature excludes its implementation.
	BodyField string
}

// HeritageRule describes how to find a type declaration's superclass/
// interface list for a generic composition/extends relationship pass.
type HeritageRule struct {
	// NodeType is the declaring node kind (e.g. "class_declaration").
	NodeType string
	NameField string
	// HeritageField names the child field holding the heritage clause, if
	// the grammar exposes one directly on NodeType.
	HeritageField string
	// ItemTypes lists the node kinds within the heritage clause that each
	// name one base type.
	ItemTypes []string
	Kind      core.RelationshipKind
}

// Config is the declarative description of one language's CST vocabulary.
type Config struct {
	Language   string
	Extensions []string
	Grammar    *sitter.Language

	CommentStyle core.CommentStyle

	// Capitalized, when true, uses Go-style capitalization for visibility
	// (exported names start uppercase); when false, an explicit modifier
	// keyword among the node's children (or inside a child whose kind names
	// a modifier) decides, defaulting to Public.
	Capitalized bool

	Rules map[string]NodeRule

	Heritage []HeritageRule

	// CallExprType/CallFunctionField locate the callee in a call expression.
	CallExprType      string
	CallFunctionField string
	// MemberExprType/MemberField locate a member-access use site.
	MemberExprType string
	MemberField    string
}

type extractor struct{ cfg Config }

// New builds a registry.Extractor driven entirely by cfg.
func New(cfg Config) registry.Extractor { return extractor{cfg: cfg} }

func (e extractor) Language() string          { return e.cfg.Language }
func (e extractor) Extensions() []string      { return e.cfg.Extensions }
func (e extractor) Grammar() *sitter.Language { return e.cfg.Grammar }

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase(e.cfg.Language, filePath, source)
	return core.WalkSymbols(tree.RootNode(), func(n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
		rule, ok := e.cfg.Rules[n.Type()]
		if !ok {
			return core.Symbol{}, false, nil
		}
		sym, ok := e.buildSymbol(b, n, rule, parentID)
		return sym, ok, nil
	})
}

func (e extractor) buildSymbol(b *core.Base, n *sitter.Node, rule NodeRule, parentID string) (core.Symbol, bool) {
	nameNode := e.nameNode(n, rule)
	if nameNode == nil {
		return core.Symbol{}, false
	}
	name := b.GetNodeText(nameNode)
	if name == "" {
		return core.Symbol{}, false
	}

	signature := b.GetNodeText(n)
	if rule.Signature != nil {
		signature = rule.Signature(b, n, name)
	} else if rule.BodyField != "" {
		if body := n.ChildByFieldName(rule.BodyField); body != nil {
			if end := int(body.StartByte()); end > int(n.StartByte()) && end <= len(b.Source) {
				signature = b.Source[n.StartByte():end]
			}
		}
	}

	visibility := core.Public
	if rule.Visibility != nil {
		visibility = rule.Visibility(b, n, name)
	} else if e.cfg.Capitalized {
		visibility = visibilityFromCapitalization(name)
	} else {
		// e.g. Java/Kotlin "modifiers", C# "modifier", TS "accessibility_modifier".
		found := false
		core.TraverseTree(n, func(c *sitter.Node) bool {
			if found {
				return false
			}
			if v, ok := core.VisibilityFromKeyword(c.Type()); ok {
				visibility, found = v, true
				return false
			}
			return c == n || strings.Contains(c.Type(), "modifier")
		})
	}

	doc := ""
	if rule.DocComment {
		doc = b.FindDocComment(n, e.cfg.CommentStyle)
	}

	return b.CreateSymbol(n, name, rule.Kind, core.Options{
		Signature:  signature,
		Visibility: visibility,
		ParentID:   parentID,
		DocComment: doc,
	}), true
}

func (e extractor) nameNode(n *sitter.Node, rule NodeRule) *sitter.Node {
	if rule.NameNode != nil {
		if found := rule.NameNode(n); found != nil {
			return found
		}
	}
	if rule.NameField != "" {
		if field := n.ChildByFieldName(rule.NameField); field != nil {
			return field
		}
	}
	for _, t := range rule.FallbackTypes {
		if c := core.FindChildByType(n, t); c != nil {
			return c
		}
	}
	return nil
}

func (e extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	if len(e.cfg.Heritage) == 0 {
		return nil
	}
	b := core.NewBase(e.cfg.Language, filePath, source)
	byName := core.SymbolsByName(symbols)
	var rels []core.Relationship

	for _, rule := range e.cfg.Heritage {
		for _, n := range core.FindNodesByType(tree.RootNode(), rule.NodeType) {
			nameNode := n.ChildByFieldName(rule.NameField)
			if nameNode == nil {
				continue
			}
			fromSym, ok := byName[b.GetNodeText(nameNode)]
			if !ok {
				continue
			}
			var heritage *sitter.Node
			if rule.HeritageField != "" {
				heritage = n.ChildByFieldName(rule.HeritageField)
			}
			if heritage == nil {
				continue
			}
			for _, itemType := range rule.ItemTypes {
				for _, item := range core.FindNodesByType(heritage, itemType) {
					baseName := b.GetNodeText(item)
					toID := core.ExternalSymbolID(baseName)
					confidence := core.ExternalReferenceConfidence
					if target, ok := byName[baseName]; ok {
						toID = target.ID
						confidence = 1.0
					}
					rels = append(rels, core.Relationship{
						FromSymbolID: fromSym.ID,
						ToSymbolID:   toID,
						Kind:         rule.Kind,
						FilePath:     filePath,
						LineNumber:   int(n.StartPoint().Row) + 1,
						Confidence:   confidence,
					})
				}
			}
		}
	}
	return rels
}

func (e extractor) ExtractIdentifiers(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier {
	var idents []core.Identifier
	if e.cfg.CallExprType == "" && e.cfg.MemberExprType == "" {
		return idents
	}

	core.TraverseTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Type() {
		case e.cfg.CallExprType:
			fn := n.ChildByFieldName(e.cfg.CallFunctionField)
			if fn == nil {
				return true
			}
			nameNode := fn
			if e.cfg.MemberField != "" {
				if field := fn.ChildByFieldName(e.cfg.MemberField); field != nil {
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
		case e.cfg.MemberExprType:
			if n.Parent() != nil && n.Parent().Type() == e.cfg.CallExprType {
				return true
			}
			field := n.ChildByFieldName(e.cfg.MemberField)
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
	return nil
}

func visibilityFromCapitalization(name string) core.Visibility {
	if name == "" {
		return core.Public
	}
	r := []rune(name)[0]
	if r >= 'A' && r <= 'Z' {
		return core.Public
	}
	if r == '_' {
		return core.Private
	}
	return core.Public
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
