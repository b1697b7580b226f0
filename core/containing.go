package core

// FindContainingSymbol resolves the innermost symbol in symbols whose span
// fully encloses target AND whose FilePath equals filePath. When several
// same-file symbols enclose the position, the one with the smallest span
// wins. Returns "", false when nothing encloses it.
//
// The file-scoping guard exists because, absent it, a symbol with the same
// name (or simply an overlapping span from a caller that mixed results from
// several files into one slice) could be wrongly attributed as a container.
func FindContainingSymbol(symbols []Symbol, filePath string, target Span) (string, bool) {
	best := -1
	bestSize := 0
	for i, s := range symbols {
		if s.FilePath != filePath {
			continue
		}
		if !s.Span.Encloses(target) {
			continue
		}
		size := s.Span.size()
		if best == -1 || size < bestSize {
			best = i
			bestSize = size
		}
	}
	if best == -1 {
		return "", false
	}
	return symbols[best].ID, true
}

// SymbolsByID indexes symbols by ID for O(1) parent-cycle and invariant
// checks; extractors use the name-indexed variant below for relationship
// resolution, this one is for validators and tests.
func SymbolsByID(symbols []Symbol) map[string]Symbol {
	out := make(map[string]Symbol, len(symbols))
	for _, s := range symbols {
		out[s.ID] = s
	}
	return out
}

// SymbolsByName indexes symbols by name for O(1) lookup when resolving
// relationship and identifier targets within a single file. When multiple
// symbols share a name, the first one encountered in document order wins,
// matching the extractors' traversal order.
func SymbolsByName(symbols []Symbol) map[string]Symbol {
	out := make(map[string]Symbol, len(symbols))
	for _, s := range symbols {
		if _, exists := out[s.Name]; !exists {
			out[s.Name] = s
		}
	}
	return out
}
