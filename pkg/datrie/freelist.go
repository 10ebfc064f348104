package datrie

// freeList tracks the unoccupied slots of the node array as a circular
// doubly-linked ring threaded through two parallel index arrays.
//
// Index 0 is a permanent sentinel: it shares its slot with the root node
// but is never itself considered free. Removing a slot relinks its
// neighbors and self-loops the removed entry, so freeness is an O(1) test.
type freeList struct {
	prev []uint32
	next []uint32
}

func newFreeList(capacity int) freeList {
	fl := freeList{
		prev: make([]uint32, capacity),
		next: make([]uint32, capacity),
	}

	for i := 0; i < capacity; i++ {
		fl.next[i] = uint32((i + 1) % capacity)
		fl.prev[i] = uint32((i - 1 + capacity) % capacity)
	}

	return fl
}

// first returns the first free slot, or 0 if the ring is empty.
func (fl *freeList) first() uint32 { return fl.next[0] }

// nextFree returns the free slot after i in the ring; 0 marks the wrap.
func (fl *freeList) nextFree(i uint32) uint32 { return fl.next[i] }

// isFree reports whether slot i is still in the ring. The sentinel is
// never free.
func (fl *freeList) isFree(i uint32) bool {
	if i == 0 {
		return false
	}

	return fl.prev[i] != i || fl.next[i] != i
}

// remove unlinks slot i from the ring and self-loops it.
func (fl *freeList) remove(i uint32) {
	p, n := fl.prev[i], fl.next[i]

	fl.next[p] = n
	fl.prev[n] = p
	fl.prev[i] = i
	fl.next[i] = i
}

// grow appends slots [oldCap, newCap) to the tail of the ring.
func (fl *freeList) grow(oldCap, newCap int) {
	fl.prev = append(fl.prev, make([]uint32, newCap-oldCap)...)
	fl.next = append(fl.next, make([]uint32, newCap-oldCap)...)

	for i := oldCap; i < newCap; i++ {
		idx, tail := uint32(i), fl.prev[0]

		fl.next[tail] = idx
		fl.prev[idx] = tail
		fl.next[idx] = 0
		fl.prev[0] = idx
	}
}
