package datrie

import (
	"slices"

	"github.com/send/lexime-trie/pkg/opt"
)

// PrefixMatch is one result of a common prefix search.
type PrefixMatch struct {
	// Len is the length of the matched prefix, in labels.
	Len int

	// ValueID is the value id of the matched key.
	ValueID uint32
}

// SearchMatch is one result of a predictive search.
type SearchMatch[L Label] struct {
	// Key is the full matched key.
	Key []L

	// ValueID is the value id of the matched key.
	ValueID uint32
}

// ProbeResult reports both whether a key is present and whether it is a
// proper prefix of other keys.
//
// The four states:
//
//	{None,  false} — absent
//	{None,  true}  — proper prefix only
//	{Some,  false} — key, extends nothing
//	{Some,  true}  — key that other keys extend
type ProbeResult struct {
	// Value is the value id if the key exists as a complete entry.
	Value opt.Option[uint32]

	// HasChildren is true if some key strictly extends the probed key.
	HasChildren bool
}

// ExactMatch returns the value id of key, if key is present.
func (da *DoubleArray[L]) ExactMatch(key []L) opt.Option[uint32] {
	return da.view().exactMatch(key)
}

// CommonPrefixSearch returns a lazy iterator over every prefix of query
// that is a key, shortest first.
func (da *DoubleArray[L]) CommonPrefixSearch(query []L) *CommonPrefixIter[L] {
	return newCommonPrefixIter(da.view(), query)
}

// PredictiveSearch returns a lazy iterator over every key that starts
// with prefix. Keys are reconstructed from the code mapper; the order is
// depth-first by ascending child code, deterministic for a given trie but
// not lexicographic in the label type.
func (da *DoubleArray[L]) PredictiveSearch(prefix []L) *PredictiveIter[L] {
	return newPredictiveIter(da.view(), prefix)
}

// Probe reports whether key is present and whether any key strictly
// extends it.
func (da *DoubleArray[L]) Probe(key []L) ProbeResult {
	return da.view().probe(key)
}

// CommonPrefixIter enumerates the prefixes of a query that are keys, in
// strictly increasing prefix length. It must be stepped by one goroutine.
type CommonPrefixIter[L Label] struct {
	view    trieView[L]
	query   []L
	pos     int
	nodeIdx uint32
	done    bool
}

func newCommonPrefixIter[L Label](view trieView[L], query []L) *CommonPrefixIter[L] {
	return &CommonPrefixIter[L]{view: view, query: query}
}

// Next returns the next match, or false when the iteration is finished.
func (it *CommonPrefixIter[L]) Next() (PrefixMatch, bool) {
	for !it.done {
		m, ok := it.checkTerminal()

		if !it.tryAdvance() {
			it.done = true
		}

		if ok {
			return m, true
		}
	}

	return PrefixMatch{}, false
}

// checkTerminal reports whether the query prefix consumed so far is a key.
func (it *CommonPrefixIter[L]) checkTerminal() (PrefixMatch, bool) {
	nodes := it.view.nodes

	n := &nodes[it.nodeIdx]
	if !n.HasLeaf() {
		return PrefixMatch{}, false
	}

	terminalIdx := n.Base()
	if terminalIdx >= uint32(len(nodes)) {
		return PrefixMatch{}, false
	}

	terminal := &nodes[terminalIdx]
	if terminal.Check() == it.nodeIdx && terminal.IsLeaf() {
		return PrefixMatch{Len: it.pos, ValueID: terminal.ValueID()}, true
	}

	return PrefixMatch{}, false
}

// tryAdvance consumes one query label, reporting false when the walk
// leaves the trie or the query is exhausted.
func (it *CommonPrefixIter[L]) tryAdvance() bool {
	if it.pos >= len(it.query) {
		return false
	}

	code := it.view.codeMap.Get(labelValue(it.query[it.pos]))
	if code == 0 {
		return false
	}

	nodes := it.view.nodes

	next := nodes[it.nodeIdx].Base() ^ code
	if next >= uint32(len(nodes)) {
		return false
	}

	if nodes[next].Check() != it.nodeIdx {
		return false
	}

	it.nodeIdx = next
	it.pos++

	return true
}

// predictiveFrame is one pending DFS node: where to resume, how much of
// the shared key buffer belongs to its parent, and which label its edge
// carries (None for the prefix node itself).
type predictiveFrame[L Label] struct {
	nodeIdx     uint32
	parentDepth uint32
	label       opt.Option[L]
}

// predictiveChild is one enumerated child within a single Next step.
type predictiveChild struct {
	idx      uint32
	terminal bool
}

// PredictiveIter enumerates every key extending a prefix, depth-first in
// ascending child-code order. It must be stepped by one goroutine.
type PredictiveIter[L Label] struct {
	view trieView[L]

	stack []predictiveFrame[L]

	// keyBuf tracks the current DFS path, growing and truncating in
	// place; it is cloned only when a match is emitted.
	keyBuf []L

	// children is reused across Next calls.
	children []predictiveChild
}

func newPredictiveIter[L Label](view trieView[L], prefix []L) *PredictiveIter[L] {
	it := &PredictiveIter[L]{
		view:   view,
		keyBuf: slices.Clone(prefix),
	}

	if start, ok := view.traverse(prefix); ok {
		it.stack = append(it.stack, predictiveFrame[L]{
			nodeIdx:     start,
			parentDepth: uint32(len(prefix)),
			label:       opt.None[L](),
		})
	}

	return it
}

// Next returns the next match, or false when the iteration is finished.
func (it *PredictiveIter[L]) Next() (SearchMatch[L], bool) {
	count := uint32(len(it.view.nodes))

	for len(it.stack) > 0 {
		frame := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		// Restore the key buffer to the parent's depth, then append
		// this node's edge label.
		it.keyBuf = it.keyBuf[:frame.parentDepth]
		if l, ok := frame.label.Get(); ok {
			it.keyBuf = append(it.keyBuf, l)
		}

		depth := uint32(len(it.keyBuf))
		base := it.view.nodes[frame.nodeIdx].Base()

		it.children = it.children[:0]

		// Unused slots also carry check 0, so an unused slot at the root's
		// base is not mistaken for a terminal child of the root.
		terminalIdx := base
		if terminalIdx < count && it.view.nodes[terminalIdx].Check() == frame.nodeIdx && !it.view.nodes[terminalIdx].Unused() {
			it.children = append(it.children, predictiveChild{terminalIdx, true})
			it.appendSiblings(terminalIdx, count)
		} else if first, ok := it.view.firstChild(frame.nodeIdx); ok {
			it.children = append(it.children, predictiveChild{first, false})
			it.appendSiblings(first, count)
		}

		var (
			match SearchMatch[L]
			found bool
		)

		// Walk the children in reverse so that the stack pops them in
		// ascending code order.
		for i := len(it.children) - 1; i >= 0; i-- {
			c := it.children[i]

			if c.terminal {
				child := &it.view.nodes[c.idx]
				if child.IsLeaf() {
					match = SearchMatch[L]{
						Key:     slices.Clone(it.keyBuf),
						ValueID: child.ValueID(),
					}
					found = true
				}

				continue
			}

			// XOR recovers the edge code from the child index.
			l, ok := reverseLabel[L](it.view.codeMap, base^c.idx)
			if !ok {
				// Malformed image: the code does not map back to
				// a label of type L. Skip the subtree.
				continue
			}

			it.stack = append(it.stack, predictiveFrame[L]{
				nodeIdx:     c.idx,
				parentDepth: depth,
				label:       opt.Some(l),
			})
		}

		if found {
			return match, true
		}
	}

	return SearchMatch[L]{}, false
}

// appendSiblings follows the sibling chain from the first child. Steps are
// bounded by the node count so that cycles in malformed images terminate.
func (it *PredictiveIter[L]) appendSiblings(first, count uint32) {
	sib := it.view.siblings[first]

	for steps := uint32(0); sib != 0 && sib < count && steps < count; steps++ {
		it.children = append(it.children, predictiveChild{sib, false})
		sib = it.view.siblings[sib]
	}
}
