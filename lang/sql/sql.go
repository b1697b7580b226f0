// Package sql extracts symbols and relationships from SQL source. It follows
// original_source/src/extractors/sql.rs's two-tier design: CREATE TABLE
// statements (which the grammar parses cleanly) are walked structurally for
// their column and constraint symbols, while every other DDL statement form
// Postgres/MySQL/T-SQL dialects support (CREATE PROCEDURE/FUNCTION/VIEW/
// TRIGGER/SCHEMA/SEQUENCE/DOMAIN/TYPE, DELIMITER blocks, ALTER TABLE ADD
// CONSTRAINT) is recovered from ERROR nodes via sql.rs's own regex bank,
// ported one for one into core.ErrorPattern entries.
package sql

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tssql "github.com/smacker/go-tree-sitter/sql"

	"github.com/oxhq/symbex/core"
	"github.com/oxhq/symbex/registry"
)

type extractor struct{}

// New constructs the SQL language extractor.
func New() registry.Extractor { return extractor{} }

func (extractor) Language() string          { return "sql" }
func (extractor) Extensions() []string      { return []string{".sql"} }
func (extractor) Grammar() *sitter.Language { return tssql.GetLanguage() }

func (e extractor) ExtractSymbols(tree *sitter.Tree, source, filePath string) []core.Symbol {
	b := core.NewBase("sql", filePath, source)
	var symbols []core.Symbol

	for _, n := range core.FindNodesByType(tree.RootNode(), "create_table") {
		symbols = append(symbols, e.tableSymbols(b, n)...)
	}
	for _, n := range core.FindNodesByType(tree.RootNode(), "ERROR") {
		symbols = append(symbols, b.SalvageFromError(n, errorPatternsFor(b, n), "")...)
	}
	return symbols
}

func (e extractor) tableSymbols(b *core.Base, n *sitter.Node) []core.Symbol {
	nameNode := firstIdentifier(n)
	if nameNode == nil {
		return nil
	}
	tableName := b.GetNodeText(nameNode)
	columns := core.FindNodesByType(n, "column_definition")
	table := b.CreateSymbol(n, tableName, core.KindClass, core.Options{
		Signature: tableSignature(b, n, tableName, len(columns)),
		Metadata:  map[string]any{"isTable": true},
	})
	symbols := []core.Symbol{table}

	for _, col := range columns {
		colName := firstIdentifier(col)
		if colName == nil {
			continue
		}
		name := b.GetNodeText(colName)
		symbols = append(symbols, b.CreateSymbol(col, name, core.KindField, core.Options{
			Signature: b.GetNodeText(col),
			ParentID:  table.ID,
			Metadata:  map[string]any{"constraints": columnConstraints(b, col)},
		}))
	}
	for _, constraint := range core.FindNodesByType(n, "table_constraint") {
		name := constraintName(b, constraint)
		symbols = append(symbols, b.CreateSymbol(constraint, name, core.KindInterface, core.Options{
			Signature: b.GetNodeText(constraint),
			ParentID:  table.ID,
		}))
	}
	return symbols
}

func tableSignature(b *core.Base, n *sitter.Node, name string, columnCount int) string {
	return fmt.Sprintf("CREATE TABLE %s (%d column%s)", name, columnCount, plural(columnCount))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func columnConstraints(b *core.Base, col *sitter.Node) string {
	text := strings.ToUpper(b.GetNodeText(col))
	var found []string
	for _, kw := range []string{"PRIMARY KEY", "NOT NULL", "UNIQUE", "AUTO_INCREMENT", "DEFAULT"} {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return strings.Join(found, ", ")
}

func constraintName(b *core.Base, n *sitter.Node) string {
	if m := regexp.MustCompile(`CONSTRAINT\s+([a-zA-Z_][a-zA-Z0-9_]*)`).FindStringSubmatch(b.GetNodeText(n)); m != nil {
		return m[1]
	}
	return "<anonymous_constraint>"
}

func firstIdentifier(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "identifier" || c.Type() == "object_reference" {
			return c
		}
	}
	return nil
}

// errorPatternsFor builds the salvage table; sql.rs runs these as independent
// functions each scanning the whole node text, so entries here may overlap
// (a DELIMITER block containing both a CREATE PROCEDURE and a CREATE TRIGGER
// yields both).
func errorPatternsFor(b *core.Base, n *sitter.Node) []core.ErrorPattern {
	return []core.ErrorPattern{
		{
			Pattern: regexp.MustCompile(`CREATE\s+PROCEDURE\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindFunction,
			BuildMetadata: func(m []string) map[string]any {
				return map[string]any{"procedureKind": "procedure"}
			},
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindFunction,
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+SCHEMA\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindNamespace,
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+VIEW\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+AS`),
			Kind:    core.KindInterface,
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+TRIGGER\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindMethod,
			BuildMetadata: func(m []string) map[string]any {
				md := map[string]any{}
				if d := regexp.MustCompile(`(BEFORE|AFTER)\s+(INSERT|UPDATE|DELETE)\s+ON\s+([a-zA-Z_][a-zA-Z0-9_]*)`).FindStringSubmatch(b.GetNodeText(n)); d != nil {
					md["timing"] = d[1]
					md["event"] = d[2]
					md["table"] = d[3]
				}
				return md
			},
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+SEQUENCE\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindVariable,
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+DOMAIN\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+AS\s+([A-Za-z]+(?:\(\d+(?:,\s*\d+)?\))?)`),
			Kind:    core.KindClass,
			BuildMetadata: func(m []string) map[string]any {
				return map[string]any{"baseType": m[2]}
			},
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+TYPE\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+AS\s+ENUM`),
			Kind:    core.KindClass,
		},
		{
			Pattern: regexp.MustCompile(`ALTER\s+TABLE\s+[a-zA-Z_][a-zA-Z0-9_]*\s+ADD\s+CONSTRAINT\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+(CHECK|FOREIGN\s+KEY|UNIQUE|PRIMARY\s+KEY)`),
			Kind:    core.KindProperty,
			BuildMetadata: func(m []string) map[string]any {
				return map[string]any{"constraintKind": m[2]}
			},
		},
		{
			Pattern: regexp.MustCompile(`CREATE\s+(?:UNIQUE\s+)?INDEX\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+ON\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
			Kind:    core.KindProperty,
			BuildMetadata: func(m []string) map[string]any {
				return map[string]any{"table": m[2]}
			},
		},
	}
}

func (e extractor) ExtractRelationships(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Relationship {
	b := core.NewBase("sql", filePath, source)
	byName := core.SymbolsByName(symbols)
	var rels []core.Relationship

	// Covers both the table-level `FOREIGN KEY (...) REFERENCES t(...)` form
	// and the inline column-level `col TYPE REFERENCES t(...)` form (the
	// `FOREIGN KEY (...)` clause is optional); group 1 is the constrained
	// column list when present, group 2 the referenced table, group 3 the
	// referenced columns.
	fkPattern := regexp.MustCompile(`(?:FOREIGN\s+KEY\s*\(([^)]+)\)\s*)?REFERENCES\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(?:\(([^)]+)\))?`)
	actionPattern := regexp.MustCompile(`ON\s+(DELETE|UPDATE)\s+(CASCADE|SET\s+NULL|SET\s+DEFAULT|RESTRICT|NO\s+ACTION)`)
	for _, n := range core.FindNodesByType(tree.RootNode(), "create_table") {
		nameNode := firstIdentifier(n)
		if nameNode == nil {
			continue
		}
		table, ok := byName[b.GetNodeText(nameNode)]
		if !ok {
			continue
		}
		text := b.GetNodeText(n)
		for _, m := range fkPattern.FindAllStringSubmatch(text, -1) {
			target := m[2]
			toID := core.ExternalSymbolID(target)
			confidence := core.ExternalReferenceConfidence
			if referenced, ok := byName[target]; ok {
				toID = referenced.ID
				confidence = 1.0
			}
			meta := map[string]any{}
			if m[1] != "" {
				meta["columns"] = strings.TrimSpace(m[1])
			}
			if m[3] != "" {
				meta["referencedColumns"] = strings.TrimSpace(m[3])
			}
			for _, a := range actionPattern.FindAllStringSubmatch(text, -1) {
				if a[1] == "DELETE" {
					meta["onDelete"] = a[2]
				} else {
					meta["onUpdate"] = a[2]
				}
			}
			rels = append(rels, core.Relationship{
				FromSymbolID: table.ID,
				ToSymbolID:   toID,
				Kind:         core.RelReferences,
				FilePath:     filePath,
				LineNumber:   int(n.StartPoint().Row) + 1,
				Confidence:   confidence,
				Metadata:     meta,
			})
		}
	}
	return rels
}

func (e extractor) ExtractIdentifiers(tree *sitter.Tree, source, filePath string, symbols []core.Symbol) []core.Identifier {
	var idents []core.Identifier
	for _, n := range core.FindNodesByType(tree.RootNode(), "object_reference") {
		span := core.Span{
			StartLine:   int(n.StartPoint().Row) + 1,
			StartColumn: int(n.StartPoint().Column) + 1,
			EndLine:     int(n.EndPoint().Row) + 1,
			EndColumn:   int(n.EndPoint().Column) + 1,
		}
		containerID, _ := core.FindContainingSymbol(symbols, filePath, span)
		idents = append(idents, core.Identifier{
			Name:               source[n.StartByte():n.EndByte()],
			Kind:               core.IdentMemberAccess,
			FilePath:           filePath,
			Span:               span,
			ContainingSymbolID: containerID,
		})
	}
	return idents
}

var sqlTypePattern = regexp.MustCompile(`\b(INT|INTEGER|VARCHAR|TEXT|DECIMAL|FLOAT|BOOLEAN|DATE|TIMESTAMP|CHAR|BIGINT|SMALLINT)\b`)

func (e extractor) InferTypes(symbols []core.Symbol) map[string]string {
	types := make(map[string]string)
	for _, s := range symbols {
		if s.Kind != core.KindField {
			continue
		}
		if m := sqlTypePattern.FindStringSubmatch(strings.ToUpper(s.Signature)); m != nil {
			types[s.ID] = m[1]
		}
	}
	return types
}
