package core

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Options carries the fields callers of CreateSymbol populate beyond what can
// be derived from the node itself.
type Options struct {
	Signature  string
	Visibility Visibility
	ParentID   string
	DocComment string
	Metadata   map[string]any
}

// Base is the per-call, per-file extraction context shared by every
// per-language extractor. It owns the source text, the dedup set of already
// emitted node keys, and the small set of primitives every extractor builds
// on (create_symbol, get_node_text, traverse_tree, find_child_by_type,
// find_nodes_by_type, find_doc_comment). A Base is created fresh for each
// extraction call and never shared across calls or goroutines.
type Base struct {
	Language string
	FilePath string
	Source   string

	processed map[nodeKey]struct{}
}

// NewBase constructs a fresh, empty extraction context for one file.
func NewBase(language, filePath, source string) *Base {
	return &Base{
		Language:  language,
		FilePath:  filePath,
		Source:    source,
		processed: make(map[nodeKey]struct{}),
	}
}

// nodeKey identifies a CST node positionally rather than by pointer, since
// node identity must survive independent tree walks of the same parse.
type nodeKey struct {
	startRow, startCol, endRow, endCol uint32
	kind                               string
}

func keyOf(n *sitter.Node) nodeKey {
	start, end := n.StartPoint(), n.EndPoint()
	return nodeKey{start.Row, start.Column, end.Row, end.Column, n.Type()}
}

// Seen reports whether a node with this position+kind has already been
// marked processed in this call.
func (b *Base) Seen(n *sitter.Node) bool {
	_, ok := b.processed[keyOf(n)]
	return ok
}

// MarkProcessed records a node's key so a later re-visit (some grammars route
// the same logical declaration through more than one overlapping node) is
// skipped rather than re-emitted.
func (b *Base) MarkProcessed(n *sitter.Node) {
	b.processed[keyOf(n)] = struct{}{}
}

// GetNodeText returns the source substring covered by a node's byte range.
func (b *Base) GetNodeText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(b.Source) || start > end {
		return ""
	}
	return b.Source[start:end]
}

// CreateSymbol constructs a Symbol from a node, minting its ID from
// (file_path, name, start_line, start_column, kind) and copying the node's
// span. Visibility defaults to Public when the caller doesn't specify one.
func (b *Base) CreateSymbol(n *sitter.Node, name string, kind SymbolKind, opts Options) Symbol {
	start, end := n.StartPoint(), n.EndPoint()
	startLine := int(start.Row) + 1
	startCol := int(start.Column) + 1

	visibility := opts.Visibility
	if visibility == "" {
		visibility = Public
	}

	return Symbol{
		ID:       SymbolID(b.FilePath, name, startLine, startCol, kind),
		Name:     name,
		Kind:     kind,
		FilePath: b.FilePath,
		Language: b.Language,
		Span: Span{
			StartLine:   startLine,
			StartColumn: startCol,
			EndLine:     int(end.Row) + 1,
			EndColumn:   int(end.Column) + 1,
		},
		Signature:  opts.Signature,
		Visibility: visibility,
		ParentID:   opts.ParentID,
		DocComment: opts.DocComment,
		Metadata:   opts.Metadata,
	}
}

// TraverseTree walks node and its descendants pre-order, document order
// within siblings. The visitor may return false to skip a subtree; it may not
// mutate the tree.
func TraverseTree(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		TraverseTree(n.Child(i), visit)
	}
}

// FindChildByType returns the first direct child whose grammar-kind string
// equals kind, or nil.
func FindChildByType(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == kind {
			return child
		}
	}
	return nil
}

// FindNodesByType recursively collects every descendant (including n itself)
// whose grammar-kind string equals kind, in document order.
func FindNodesByType(n *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	TraverseTree(n, func(node *sitter.Node) bool {
		if node.Type() == kind {
			out = append(out, node)
		}
		return true
	})
	return out
}

// CommentStyle tells FindDocComment how a language spells comments and how to
// strip their markers back to plain text.
type CommentStyle struct {
	// IsComment reports whether a node is a comment node for this grammar.
	// Defaults to strings.Contains(node.Type(), "comment") when nil.
	IsComment func(*sitter.Node) bool
	// LinePrefixes are stripped from the start of a line comment, tried in
	// order (longest/most specific first, e.g. "///" before "//").
	LinePrefixes []string
	// BlockStart/BlockEnd are stripped from a block comment's ends, e.g.
	// "/**"/"*/" or "/*"/"*/".
	BlockStart string
	BlockEnd   string
}

func (s CommentStyle) isComment(n *sitter.Node) bool {
	if s.IsComment != nil {
		return s.IsComment(n)
	}
	return strings.Contains(n.Type(), "comment")
}

// FindDocComment walks backward through n's preceding siblings, collecting a
// contiguous block of comment nodes (a blank source line breaks the block),
// and returns their concatenated text with comment markers stripped. Returns
// "" when no doc comment precedes n.
func (b *Base) FindDocComment(n *sitter.Node, style CommentStyle) string {
	parent := n.Parent()
	if parent == nil {
		return ""
	}

	var comments []*sitter.Node
	prevEndRow := int(n.StartPoint().Row)
	cursor := n.PrevSibling()
	for cursor != nil {
		if !style.isComment(cursor) {
			break
		}
		// A blank line between this comment and the node (or the previous
		// comment in the block) breaks the contiguous run.
		if prevEndRow-int(cursor.EndPoint().Row) > 1 {
			break
		}
		comments = append(comments, cursor)
		prevEndRow = int(cursor.StartPoint().Row)
		cursor = cursor.PrevSibling()
	}
	if len(comments) == 0 {
		return ""
	}

	// comments was collected nearest-first; re-emit in document order.
	lines := make([]string, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		lines = append(lines, style.strip(b.GetNodeText(comments[i])))
	}
	return strings.Join(lines, "\n")
}

func (s CommentStyle) strip(raw string) string {
	text := strings.TrimSpace(raw)
	if s.BlockStart != "" && strings.HasPrefix(text, s.BlockStart) {
		text = strings.TrimPrefix(text, s.BlockStart)
		text = strings.TrimSuffix(text, s.BlockEnd)
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			l = strings.TrimSpace(l)
			l = strings.TrimPrefix(l, "*")
			lines[i] = strings.TrimSpace(l)
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	for _, prefix := range s.LinePrefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}
