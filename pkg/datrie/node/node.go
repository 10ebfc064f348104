// Package node implements the bit-packed node record of the double-array
// trie.
//
// Each node is exactly 8 bytes: two little-endian 32-bit words, base first.
// Both words split into a 31-bit payload and a flag in the most significant
// bit:
//
//   - base: XOR offset for locating children, or the value id when the
//     IsLeaf flag is set
//   - check: parent node index, with the HasLeaf flag marking that a
//     terminal child exists
//
// The layout is position-stable and identical to the serialized form, so a
// []Node can be reinterpreted directly from a little-endian byte buffer.
package node

import "github.com/send/lexime-trie/internal/debug"

const (
	isLeaf  uint32 = 1 << 31
	hasLeaf uint32 = 1 << 31

	// Mask selects the 31-bit payload of either word. It is also the
	// largest representable base, check or value id.
	Mask uint32 = 0x7FFF_FFFF
)

// Node is one slot of the double-array. The zero value is an unused slot.
type Node struct {
	base  uint32
	check uint32
}

// Base returns the base payload (XOR offset), masking out the IsLeaf flag.
func (n *Node) Base() uint32 { return n.base & Mask }

// Check returns the check payload (parent index), masking out the HasLeaf flag.
func (n *Node) Check() uint32 { return n.check & Mask }

// IsLeaf reports whether this node is a leaf storing a value id.
func (n *Node) IsLeaf() bool { return n.base&isLeaf != 0 }

// HasLeaf reports whether this node has a terminal child (code 0 child).
func (n *Node) HasLeaf() bool { return n.check&hasLeaf != 0 }

// ValueID returns the value id stored in a leaf node.
// Only meaningful when IsLeaf reports true.
func (n *Node) ValueID() uint32 { return n.base & Mask }

// SetBase stores the base payload, preserving the IsLeaf flag.
func (n *Node) SetBase(base uint32) {
	debug.Assert(base&isLeaf == 0, "base %#x does not fit in 31 bits", base)

	n.base = (n.base & isLeaf) | base
}

// SetCheck stores the check payload, preserving the HasLeaf flag.
func (n *Node) SetCheck(check uint32) {
	debug.Assert(check&hasLeaf == 0, "check %#x does not fit in 31 bits", check)

	n.check = (n.check & hasLeaf) | check
}

// SetLeaf marks this node as a leaf and stores the value id.
func (n *Node) SetLeaf(valueID uint32) {
	debug.Assert(valueID&isLeaf == 0, "value id %#x does not fit in 31 bits", valueID)

	n.base = isLeaf | valueID
}

// SetHasLeaf sets the HasLeaf flag, indicating a terminal child exists.
func (n *Node) SetHasLeaf() {
	n.check |= hasLeaf
}

// Unused reports whether both words still hold their zero value. The
// builder uses it to trim trailing slots that were never placed.
func (n *Node) Unused() bool { return n.base == 0 && n.check == 0 }

// Raw returns the two words with their flag bits included, in memory
// order. Serialization writes exactly these values.
func (n *Node) Raw() (base, check uint32) { return n.base, n.check }

// FromRaw reconstructs a node from its two raw words.
func FromRaw(base, check uint32) Node { return Node{base: base, check: check} }
