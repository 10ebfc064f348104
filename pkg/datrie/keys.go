package datrie

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// SortedRuneKeys converts strings into Build-ready rune keys: each string
// is normalized to Unicode NFC, converted to its rune sequence, and the
// keys are sorted and deduplicated.
//
// Normalizing before the trie sees the keys keeps lookups stable across
// composed and decomposed spellings of the same text; queries should be
// normalized the same way.
func SortedRuneKeys(ss []string) [][]rune {
	keys := make([][]rune, 0, len(ss))

	for _, s := range ss {
		keys = append(keys, []rune(norm.NFC.String(s)))
	}

	return sortKeys(keys)
}

// SortedByteKeys converts strings into Build-ready byte keys: each string
// is normalized to Unicode NFC and the UTF-8 bytes are taken as the key,
// sorted and deduplicated.
func SortedByteKeys(ss []string) [][]byte {
	keys := make([][]byte, 0, len(ss))

	for _, s := range ss {
		keys = append(keys, []byte(norm.NFC.String(s)))
	}

	return sortKeys(keys)
}

func sortKeys[L Label](keys [][]L) [][]L {
	slices.SortFunc(keys, compareKeys[L])

	return slices.CompactFunc(keys, func(a, b []L) bool {
		return compareKeys(a, b) == 0
	})
}
