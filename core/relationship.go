package core

// RelationshipKind is the closed set of directed edge kinds between symbols.
type RelationshipKind string

const (
	RelExtends     RelationshipKind = "extends"
	RelImplements  RelationshipKind = "implements"
	RelReferences  RelationshipKind = "references"
	RelJoins       RelationshipKind = "joins"
	RelCalls       RelationshipKind = "calls"
	RelUses        RelationshipKind = "uses"
	RelComposition RelationshipKind = "composition"
)

// ExternalReferenceConfidence is the confidence assigned to a relationship
// whose target symbol could not be resolved within the file. The value is a
// magic number preserved for compatibility with the source this engine was
// distilled from; a future revision may expose it as configuration.
const ExternalReferenceConfidence = 0.8

// Relationship is a directed typed edge between two symbols.
type Relationship struct {
	FromSymbolID string           `json:"from_symbol_id"`
	ToSymbolID   string           `json:"to_symbol_id"`
	Kind         RelationshipKind `json:"kind"`
	FilePath     string           `json:"file_path"`
	LineNumber   int              `json:"line_number"`
	Confidence   float64          `json:"confidence"`
	Metadata     map[string]any   `json:"metadata,omitempty"`
}

// ExternalSymbolID builds the synthetic placeholder ID used as a relationship
// target when the real symbol is not declared in the file under extraction.
func ExternalSymbolID(name string) string {
	return "external_" + name
}
