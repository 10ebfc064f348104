package datrie

import "github.com/send/lexime-trie/pkg/datrie/node"

// DoubleArray is an owned double-array trie over labels of type L.
//
// Node 0 is always the root. The nodes and siblings arrays have equal
// length; siblings[i] is the next sibling of node i under the same parent,
// or 0 if i has no further siblings.
//
// A DoubleArray is immutable after [Build] and safe for concurrent reads.
type DoubleArray[L Label] struct {
	nodes    []node.Node
	siblings []uint32
	codeMap  CodeMapper
}

func newDoubleArray[L Label](nodes []node.Node, siblings []uint32, codeMap CodeMapper) *DoubleArray[L] {
	return &DoubleArray[L]{
		nodes:    nodes,
		siblings: siblings,
		codeMap:  codeMap,
	}
}

// NumNodes returns the number of nodes in the trie.
func (da *DoubleArray[L]) NumNodes() int { return len(da.nodes) }

// view borrows the trie's data for the shared query engine.
func (da *DoubleArray[L]) view() trieView[L] {
	return trieView[L]{
		nodes:    da.nodes,
		siblings: da.siblings,
		codeMap:  &da.codeMap,
	}
}
