package datrie

import (
	"github.com/send/lexime-trie/pkg/datrie/node"
	"github.com/send/lexime-trie/pkg/opt"
)

// trieView borrows a trie's data so that all query algorithms are written
// once and shared between [DoubleArray] and [DoubleArrayRef].
type trieView[L Label] struct {
	nodes    []node.Node
	siblings []uint32
	codeMap  *CodeMapper
}

// traverse follows the key's labels from the root. Reports false when any
// step leaves the trie: an unmapped label, an out-of-bounds target, or a
// check mismatch.
func (v trieView[L]) traverse(key []L) (uint32, bool) {
	count := uint32(len(v.nodes))
	nodeIdx := uint32(0) // root; loaders reject empty node arrays

	for _, l := range key {
		code := v.codeMap.Get(labelValue(l))
		if code == 0 {
			return 0, false
		}

		next := v.nodes[nodeIdx].Base() ^ code
		if next >= count {
			return 0, false
		}

		if v.nodes[next].Check() != nodeIdx {
			return 0, false
		}

		nodeIdx = next
	}

	return nodeIdx, true
}

// exactMatch returns the value id of key, if key is present.
func (v trieView[L]) exactMatch(key []L) opt.Option[uint32] {
	nodeIdx, ok := v.traverse(key)
	if !ok {
		return opt.None[uint32]()
	}

	n := &v.nodes[nodeIdx]

	// The HasLeaf bit is a cache: reject without touching the terminal
	// slot when no terminal child exists.
	if !n.HasLeaf() {
		return opt.None[uint32]()
	}

	terminalIdx := n.Base() // base ^ 0
	if terminalIdx >= uint32(len(v.nodes)) {
		return opt.None[uint32]()
	}

	terminal := &v.nodes[terminalIdx]
	if terminal.Check() == nodeIdx && terminal.IsLeaf() {
		return opt.Some(terminal.ValueID())
	}

	return opt.None[uint32]()
}

// firstChild finds the first child of nodeIdx: the terminal child when
// present, otherwise the lowest-code child found by a linear scan over the
// alphabet.
func (v trieView[L]) firstChild(nodeIdx uint32) (uint32, bool) {
	count := uint32(len(v.nodes))
	base := v.nodes[nodeIdx].Base()

	// Unused slots also carry check 0; skipping them keeps them from being
	// taken for children of the root.
	terminalIdx := base
	if terminalIdx != nodeIdx && terminalIdx < count && v.nodes[terminalIdx].Check() == nodeIdx && !v.nodes[terminalIdx].Unused() {
		return terminalIdx, true
	}

	for code := uint32(1); code < v.codeMap.AlphabetSize(); code++ {
		idx := base ^ code
		if idx < count && v.nodes[idx].Check() == nodeIdx && !v.nodes[idx].Unused() {
			return idx, true
		}
	}

	return 0, false
}

// probe reports the key's presence and whether it is a proper prefix of
// other keys, in one traversal.
func (v trieView[L]) probe(key []L) ProbeResult {
	nodeIdx, ok := v.traverse(key)
	if !ok {
		return ProbeResult{Value: opt.None[uint32]()}
	}

	base := v.nodes[nodeIdx].Base()

	terminalIdx := base
	if terminalIdx < uint32(len(v.nodes)) {
		terminal := &v.nodes[terminalIdx]
		if terminal.Check() == nodeIdx && terminal.IsLeaf() {
			// The terminal child's siblings are the node's
			// non-terminal children.
			return ProbeResult{
				Value:       opt.Some(terminal.ValueID()),
				HasChildren: v.siblings[terminalIdx] != 0,
			}
		}
	}

	_, hasChildren := v.firstChild(nodeIdx)

	return ProbeResult{
		Value:       opt.None[uint32](),
		HasChildren: hasChildren,
	}
}
