package datrie

import (
	"fmt"
	"slices"

	"github.com/send/lexime-trie/internal/debug"
	"github.com/send/lexime-trie/pkg/datrie/node"
)

// Build constructs a double-array trie from sorted, duplicate-free keys.
// Each key keys[i] receives value id i.
//
// Build panics if the keys are unsorted or contain duplicates; both are
// caller contract violations, not recoverable conditions.
func Build[L Label](keys [][]L) *DoubleArray[L] {
	verifyKeys(keys)

	codeMap := buildCodeMapper(keys)
	b := newBuilder(len(keys))

	if len(keys) > 0 {
		// Remap every key to its code sequence, with the terminal
		// code 0 appended.
		seqs := make([][]uint32, len(keys))

		for i, key := range keys {
			seq := make([]uint32, len(key)+1)

			for j, l := range key {
				seq[j] = codeMap.Get(labelValue(l))
			}

			seqs[i] = seq
		}

		b.place(seqs, 0, len(keys), 0, 0)
	}

	nodes, siblings := b.finish()

	debug.Log("build", "%d keys -> %d nodes, alphabet %d", len(keys), len(nodes), codeMap.AlphabetSize())

	return newDoubleArray[L](nodes, siblings, codeMap)
}

func verifyKeys[L Label](keys [][]L) {
	for i := 1; i < len(keys); i++ {
		switch compareKeys(keys[i-1], keys[i]) {
		case 0:
			panic(fmt.Sprintf("datrie: duplicate key at index %d", i))
		case 1:
			panic(fmt.Sprintf("datrie: keys are not sorted at index %d", i))
		}
	}
}

// builder owns the growable node, sibling and free-list arrays during
// construction. All three grow in lockstep.
type builder struct {
	nodes    []node.Node
	siblings []uint32
	free     freeList
}

func newBuilder(numKeys int) *builder {
	capacity := max(256, 4*numKeys)

	return &builder{
		nodes:    make([]node.Node, capacity),
		siblings: make([]uint32, capacity),
		free:     newFreeList(capacity),
	}
}

// childRange is one distinct code at the current depth and the contiguous
// key range carrying it.
type childRange struct {
	code       uint32
	begin, end int
}

// place recursively lays out the children of parent for keys[begin:end]
// at the given depth.
func (b *builder) place(seqs [][]uint32, begin, end, depth int, parent uint32) {
	// Keys are sorted, so each distinct code at this depth spans a
	// contiguous range. The ranges arrive in label order, not code
	// order; sort them by code before placement.
	var children []childRange

	for i := begin; i < end; {
		code := seqs[i][depth]

		j := i + 1
		for j < end && seqs[j][depth] == code {
			j++
		}

		children = append(children, childRange{code, i, j})
		i = j
	}

	slices.SortFunc(children, func(a, c childRange) int {
		if a.code < c.code {
			return -1
		}

		return 1
	})

	codes := make([]uint32, len(children))
	for i, c := range children {
		codes[i] = c.code
	}

	base := b.findBase(codes)

	b.nodes[parent].SetBase(base)

	for _, c := range children {
		idx := base ^ c.code

		b.free.remove(idx)
		b.nodes[idx].SetCheck(parent)
	}

	// Link the sibling chain in ascending code order; the last child
	// keeps sibling 0.
	for i := 0; i+1 < len(children); i++ {
		b.siblings[base^children[i].code] = base ^ children[i+1].code
	}

	for _, c := range children {
		idx := base ^ c.code

		if c.code == 0 {
			// Terminal: exactly one key ends here. Its value id
			// is its index in the input.
			debug.Assert(c.end-c.begin == 1, "terminal range [%d,%d) must hold one key", c.begin, c.end)

			b.nodes[idx].SetLeaf(uint32(c.begin))
			b.nodes[parent].SetHasLeaf()
		} else {
			b.place(seqs, c.begin, c.end, depth+1, idx)
		}
	}
}

// findBase walks the free list for a base b such that every slot b^code is
// free and none of them is the reserved root slot. Grows the arrays when
// the ring wraps or a candidate slot lies past the current capacity.
func (b *builder) findBase(codes []uint32) uint32 {
	first := codes[0]
	cursor := b.free.first()

	for {
		if cursor == 0 {
			// Ring exhausted: grow and resume from the first new slot.
			cursor = uint32(b.grow(2 * len(b.nodes)))

			continue
		}

		// Pick base so that base^first lands on the free cursor slot.
		base := cursor ^ first
		if base != 0 && b.fits(base, codes) {
			return base
		}

		cursor = b.free.nextFree(cursor)
	}
}

// fits reports whether every slot base^code is free, enlarging capacity
// first for any slot past the current length.
func (b *builder) fits(base uint32, codes []uint32) bool {
	for _, code := range codes {
		idx := base ^ code

		if int(idx) >= len(b.nodes) {
			capacity := 2 * len(b.nodes)
			for capacity <= int(idx) {
				capacity *= 2
			}

			b.grow(capacity)
		}

		if !b.free.isFree(idx) {
			return false
		}
	}

	return true
}

// grow enlarges nodes, siblings and the free list to capacity, returning
// the index of the first newly added slot.
func (b *builder) grow(capacity int) int {
	oldCap := len(b.nodes)

	debug.Assert(capacity > oldCap, "grow to %d from %d", capacity, oldCap)

	b.nodes = append(b.nodes, make([]node.Node, capacity-oldCap)...)
	b.siblings = append(b.siblings, make([]uint32, capacity-oldCap)...)
	b.free.grow(oldCap, capacity)

	return oldCap
}

// finish trims trailing never-placed slots. The root is always retained.
func (b *builder) finish() ([]node.Node, []uint32) {
	last := 0

	for i := len(b.nodes) - 1; i > 0; i-- {
		if !b.nodes[i].Unused() {
			last = i

			break
		}
	}

	return b.nodes[:last+1], b.siblings[:last+1]
}
