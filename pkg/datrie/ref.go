package datrie

import (
	"slices"

	"github.com/send/lexime-trie/pkg/datrie/node"
	"github.com/send/lexime-trie/pkg/opt"
	"github.com/send/lexime-trie/pkg/xunsafe"
)

// DoubleArrayRef is a zero-copy view of a serialized trie.
//
// Unlike [DoubleArray], it borrows the node and sibling sections directly
// from the caller's byte buffer (for example an mmap region), avoiding
// heap copies of the two large arrays. The buffer must stay alive and
// unmodified for as long as the ref is in use.
//
// The code mapper is small and always deserialized to owned memory.
type DoubleArrayRef[L Label] struct {
	nodes    []node.Node
	siblings []uint32
	codeMap  CodeMapper
}

// FromBytesRef creates a zero-copy trie over an LXTR v2 image.
//
// The node section must be aligned to the node alignment and the sibling
// section to 4 bytes, or [ErrMisalignedData] is returned; a misaligned
// buffer is a recoverable error, never undefined behavior. The image
// declares its integers little-endian, so this mode is rejected with
// [ErrMisalignedData] on big-endian hosts; use [FromBytes] there.
func FromBytesRef[L Label](b []byte) (*DoubleArrayRef[L], error) {
	if !xunsafe.LittleEndian {
		return nil, ErrMisalignedData
	}

	secs, err := splitSections(b)
	if err != nil {
		return nil, err
	}

	nodesRaw := secs.nodes.AsSliceLessSafe()
	if xunsafe.Misaligned(nodesRaw, xunsafe.AlignOf[node.Node]()) {
		return nil, ErrMisalignedData
	}

	siblingsRaw := secs.siblings.AsSliceLessSafe()
	if xunsafe.Misaligned(siblingsRaw, xunsafe.AlignOf[uint32]()) {
		return nil, ErrMisalignedData
	}

	// Sound: node.Node is two uint32 words, size 8, align 4, no padding;
	// alignment and bounds were verified above; any bit pattern is valid;
	// and the host is little-endian, so memory layout equals wire layout.
	nodes := xunsafe.CastSlice[node.Node](nodesRaw)
	siblings := xunsafe.CastSlice[uint32](siblingsRaw)

	codeMap, err := codeMapperFromBytes(secs.codeMap)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 || len(nodes) != len(siblings) {
		return nil, ErrTruncatedData
	}

	return &DoubleArrayRef[L]{
		nodes:    nodes,
		siblings: siblings,
		codeMap:  codeMap,
	}, nil
}

// NumNodes returns the number of nodes in the trie.
func (r *DoubleArrayRef[L]) NumNodes() int { return len(r.nodes) }

// ExactMatch returns the value id of key, if key is present.
func (r *DoubleArrayRef[L]) ExactMatch(key []L) opt.Option[uint32] {
	return r.view().exactMatch(key)
}

// CommonPrefixSearch returns a lazy iterator over every prefix of query
// that is a key, shortest first.
func (r *DoubleArrayRef[L]) CommonPrefixSearch(query []L) *CommonPrefixIter[L] {
	return newCommonPrefixIter(r.view(), query)
}

// PredictiveSearch returns a lazy iterator over every key that starts
// with prefix.
func (r *DoubleArrayRef[L]) PredictiveSearch(prefix []L) *PredictiveIter[L] {
	return newPredictiveIter(r.view(), prefix)
}

// Probe reports whether key is present and whether any key strictly
// extends it.
func (r *DoubleArrayRef[L]) Probe(key []L) ProbeResult {
	return r.view().probe(key)
}

// ToOwned copies the borrowed sections into an owned [DoubleArray] that
// no longer depends on the source buffer.
func (r *DoubleArrayRef[L]) ToOwned() *DoubleArray[L] {
	return newDoubleArray[L](
		slices.Clone(r.nodes),
		slices.Clone(r.siblings),
		r.codeMap.clone(),
	)
}

func (r *DoubleArrayRef[L]) view() trieView[L] {
	return trieView[L]{
		nodes:    r.nodes,
		siblings: r.siblings,
		codeMap:  &r.codeMap,
	}
}
