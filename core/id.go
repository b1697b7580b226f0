package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// SymbolID computes the stable, content-addressed identifier for a symbol from
// its (file_path, name, start_line, start_column, kind) tuple. Identical
// inputs always produce the identical ID, in this run and any other, which is
// what lets a downstream resolver treat IDs as stable across re-extraction.
//
// The digest is SHA-256 of the UTF-8 byte concatenation of the five fields,
// each separated by a NUL byte to avoid accidental collisions between e.g.
// name="ab", line=1 and name="a", line=b1 (NUL cannot appear in any field).
func SymbolID(filePath, name string, startLine, startColumn int, kind SymbolKind) string {
	h := sha256.New()
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(startLine)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(startColumn)))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	return hex.EncodeToString(h.Sum(nil))
}

// ContentDigest hashes arbitrary source bytes, used by ExtractionCache to key
// cached results on content rather than just file path.
func ContentDigest(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
