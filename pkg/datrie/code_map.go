package datrie

import (
	"encoding/binary"
	"slices"

	"github.com/send/lexime-trie/internal/debug"
	"github.com/send/lexime-trie/pkg/untrust"
)

// CodeMapper maps labels to dense, frequency-ordered codes.
//
// Code 0 is reserved for the terminal symbol. Higher-frequency labels
// receive smaller codes, which tends to place their children in the
// already-dense front of the node array and improves cache locality.
type CodeMapper struct {
	// label value → remapped code. 0 means unmapped.
	table []uint32
	// code → label value. Index 0 is unused (terminal symbol).
	reverseTable []uint32
	// Number of distinct codes, including the terminal symbol at 0.
	alphabetSize uint32
}

// buildCodeMapper counts the frequency of each label across all keys and
// assigns dense codes in descending frequency order, ties broken by
// ascending label value for determinism.
func buildCodeMapper[L Label](keys [][]L) CodeMapper {
	var maxValue uint32

	seen := false

	for _, key := range keys {
		for _, l := range key {
			if v := labelValue(l); !seen || v > maxValue {
				maxValue, seen = v, true
			}
		}
	}

	if !seen {
		// Empty key set, or only empty keys: terminal symbol only.
		return CodeMapper{alphabetSize: 1}
	}

	debug.Assert(maxValue < alphabetSize[L](), "label value %#x outside the alphabet of %T", maxValue, *new(L))

	freq := make([]uint64, maxValue+1)

	for _, key := range keys {
		for _, l := range key {
			freq[labelValue(l)]++
		}
	}

	type labelFreq struct {
		value uint32
		count uint64
	}

	var pairs []labelFreq

	for v, c := range freq {
		if c != 0 {
			pairs = append(pairs, labelFreq{uint32(v), c})
		}
	}

	slices.SortFunc(pairs, func(a, b labelFreq) int {
		if a.count != b.count {
			if a.count > b.count {
				return -1
			}

			return 1
		}

		if a.value < b.value {
			return -1
		}

		return 1
	})

	table := make([]uint32, maxValue+1)
	reverseTable := make([]uint32, len(pairs)+1) // +1 for terminal at index 0

	for i, p := range pairs {
		code := uint32(i) + 1 // code 0 is terminal

		table[p.value] = code
		reverseTable[code] = p.value
	}

	return CodeMapper{
		table:        table,
		reverseTable: reverseTable,
		alphabetSize: uint32(len(pairs)) + 1,
	}
}

// Get returns the code for a label value. Returns 0 if the label is unmapped.
func (m *CodeMapper) Get(value uint32) uint32 {
	if int(value) < len(m.table) {
		return m.table[value]
	}

	return 0
}

// Reverse returns the label value for a code, or 0 if the code is out of
// range. Code 0 is the terminal symbol and has no label.
func (m *CodeMapper) Reverse(code uint32) uint32 {
	if int(code) < len(m.reverseTable) {
		return m.reverseTable[code]
	}

	return 0
}

// AlphabetSize returns the number of distinct codes including the terminal
// symbol.
func (m *CodeMapper) AlphabetSize() uint32 { return m.alphabetSize }

// reverseLabel maps a code back to a label of type L.
//
// Reports false for codes that are out of range or whose label value does
// not round-trip to L. Neither occurs on a well-formed trie; both are
// handled defensively for deserialized images.
func reverseLabel[L Label](m *CodeMapper, code uint32) (L, bool) {
	if int(code) >= len(m.reverseTable) {
		var zero L

		return zero, false
	}

	return labelFromValue[L](m.reverseTable[code])
}

// clone returns an independent deep copy.
func (m *CodeMapper) clone() CodeMapper {
	return CodeMapper{
		table:        slices.Clone(m.table),
		reverseTable: slices.Clone(m.reverseTable),
		alphabetSize: m.alphabetSize,
	}
}

// appendBytes appends the serialized form:
//
//	table_len u32 | reverse_len u32 | alphabet_size u32 | table[] | reverse[]
//
// all little-endian.
func (m *CodeMapper) appendBytes(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.table)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.reverseTable)))
	buf = binary.LittleEndian.AppendUint32(buf, m.alphabetSize)

	for _, v := range m.table {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}

	for _, v := range m.reverseTable {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}

	return buf
}

// codeMapperFromBytes parses a serialized code mapper. Trailing bytes
// beyond the two tables are ignored.
func codeMapperFromBytes(b untrust.Input) (CodeMapper, error) {
	r := untrust.NewReader(b)

	tableLen, err := r.ReadUint32()
	if err != nil {
		return CodeMapper{}, ErrTruncatedData
	}

	reverseLen, err := r.ReadUint32()
	if err != nil {
		return CodeMapper{}, ErrTruncatedData
	}

	alphabet, err := r.ReadUint32()
	if err != nil {
		return CodeMapper{}, ErrTruncatedData
	}

	// Validate the section length before allocating anything: the two
	// lengths are attacker-controlled.
	need := (uint64(tableLen) + uint64(reverseLen)) * 4
	if uint64(r.Remaining()) < need {
		return CodeMapper{}, ErrTruncatedData
	}

	table := make([]uint32, tableLen)

	for i := range table {
		table[i], _ = r.ReadUint32()
	}

	reverseTable := make([]uint32, reverseLen)

	for i := range reverseTable {
		reverseTable[i], _ = r.ReadUint32()
	}

	return CodeMapper{
		table:        table,
		reverseTable: reverseTable,
		alphabetSize: alphabet,
	}, nil
}
