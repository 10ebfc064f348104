// Package datrie implements a compact double-array trie: an immutable
// associative structure mapping ordered label sequences to dense uint32
// value ids.
//
// The trie is built once from a sorted, duplicate-free key list and then
// queried. Four query operations are supported:
//
//   - ExactMatch: the value id of a key, if present
//   - CommonPrefixSearch: every prefix of a query that is a key
//   - PredictiveSearch: every key extending a prefix
//   - Probe: presence and has-extensions in a single traversal
//
// # Representation
//
// Nodes live in a flat array addressed by XOR: a parent with base b keeps
// its child for code c at index b^c, and that slot's check field points
// back at the parent. XOR is self-inverse, so predictive search can recover
// the code of any child from its index alone (code = b^index) without
// storing labels on nodes. Labels are remapped to dense codes in descending
// frequency order, which keeps hot edges near the front of the array; code
// 0 is the reserved end-of-key terminal.
//
// # Labels
//
// Keys are sequences of labels, either byte (alphabet 256) or rune
// (alphabet 0x110000). The [SortedRuneKeys] and [SortedByteKeys] helpers
// produce Build-ready key lists from raw strings, including NFC
// normalization.
//
// # Serialization
//
// [DoubleArray.AsBytes] produces the little-endian LXTR v2 image.
// [FromBytes] parses it back into owned memory on any platform, and
// [FromBytesRef] reinterprets the node and sibling sections in place
// without copying, for use with memory-mapped files on little-endian
// hosts.
//
// # Concurrency
//
// A built trie is deeply immutable and may be queried from any number of
// goroutines without synchronization. The iterators returned by
// CommonPrefixSearch and PredictiveSearch carry mutable cursor state and
// must each be stepped by a single goroutine.
package datrie
