package core

import "fmt"

// CheckInvariants validates a Result against the universal invariants every
// extraction result must satisfy (see package-level tests for the
// per-scenario round-trip laws, which are language-specific). It returns
// every violation found rather than stopping at the first, which is what the
// test suite wants when asserting "no invariant violations".
func CheckInvariants(r Result) []error {
	var errs []error

	ids := make(map[string]int, len(r.Symbols))
	for i, s := range r.Symbols {
		if prior, dup := ids[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate symbol id %q (indices %d and %d)", s.ID, prior, i))
		}
		ids[s.ID] = i
		if s.Span.StartLine > s.Span.EndLine {
			errs = append(errs, fmt.Errorf("symbol %q (%s): start_line %d > end_line %d", s.Name, s.ID, s.Span.StartLine, s.Span.EndLine))
		}
	}
	for _, s := range r.Symbols {
		if s.ParentID == "" {
			continue
		}
		if _, ok := ids[s.ParentID]; !ok {
			errs = append(errs, fmt.Errorf("symbol %q (%s): parent_id %q not in result set", s.Name, s.ID, s.ParentID))
		}
	}

	for _, ident := range r.Identifiers {
		if ident.ContainingSymbolID == "" {
			continue
		}
		idx, ok := ids[ident.ContainingSymbolID]
		if !ok {
			errs = append(errs, fmt.Errorf("identifier %q: containing_symbol_id %q not in result set", ident.Name, ident.ContainingSymbolID))
			continue
		}
		container := r.Symbols[idx]
		if container.FilePath != ident.FilePath {
			errs = append(errs, fmt.Errorf("identifier %q: containing symbol file_path %q != identifier file_path %q", ident.Name, container.FilePath, ident.FilePath))
		}
		if !container.Span.Encloses(ident.Span) {
			errs = append(errs, fmt.Errorf("identifier %q: containing symbol span does not enclose identifier span", ident.Name))
		}
	}

	return errs
}
