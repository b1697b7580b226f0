// Package html extracts symbols from HTML markup using the tree-sitter-html
// grammar. HTML has no declaration syntax in the sense the other languages
// do, so this extractor surfaces the one thing downstream tooling reliably
// wants out of markup: elements carrying an id attribute, which behave like
// named anchors other documents can reference.
package html

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

type extractor struct{}

// New constructs the HTML language extractor.
func New() registry.Extractor { return extractor{} }

func (extractor) Language() string          { return "html" }
func (extractor) Extensions() []string      { return []string{".html", ".htm"} }
func (extractor) Grammar() *sitter.Language { return html.GetLanguage() }

// idAttributeValue returns the attribute_value (or quoted_attribute_value's
// inner value) node of the element's id="..." attribute, if it has one.
func idAttributeValue(b *core.Base, element *sitter.Node) *sitter.Node {
	start := core.FindChildByType(element, "start_tag")
	if start == nil {
		start = core.FindChildByType(element, "self_closing_tag")
	}
	if start == nil {
		return nil
	}
	for _, attr := range core.FindNodesByType(start, "attribute") {
		nameNode := core.FindChildByType(attr, "attribute_name")
		if nameNode == nil || b.GetNodeText(nameNode) != "id" {
			continue
		}
		if value := core.FindChildByType(attr, "quoted_attribute_value"); value != nil {
			if inner := core.FindChildByType(value, "attribute_value"); inner != nil {
				return inner
			}
			return value
		}
		if value := core.FindChildByType(attr, "attribute_value"); value != nil {
			return value
		}
	}
	return nil
}

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase("html", filePath, source)
	return core.WalkSymbols(tree.RootNode(), func(n *sitter.Node, parentID string) (core.Symbol, bool, []core.Symbol) {
		if n.Type() != "element" {
			return core.Symbol{}, false, nil
		}
		value := idAttributeValue(b, n)
		if value == nil {
			return core.Symbol{}, false, nil
		}
		name := b.GetNodeText(value)
		if name == "" {
			return core.Symbol{}, false, nil
		}
		startTag := core.FindChildByType(n, "start_tag")
		tagName := ""
		if startTag != nil {
			if tn := core.FindChildByType(startTag, "tag_name"); tn != nil {
				tagName = b.GetNodeText(tn)
			}
		}
		return b.CreateSymbol(n, name, core.KindProperty, core.Options{
			Signature: "<" + tagName + " id=\"" + name + "\">",
			ParentID:  parentID,
		}), true, nil
	})
}

func (extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	return nil
}

func (extractor) ExtractIdentifiers(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier {
	return nil
}

func (extractor) InferTypes(symbols []core.Symbol) map[string]string { return nil }
