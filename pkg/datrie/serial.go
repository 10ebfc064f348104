package datrie

import (
	"encoding/binary"
	"slices"

	"github.com/send/lexime-trie/pkg/datrie/node"
	"github.com/send/lexime-trie/pkg/untrust"
	"github.com/send/lexime-trie/pkg/xunsafe"
)

// Binary layout, all integers little-endian:
//
//	offset  size  content
//	     0     4  magic "LXTR"
//	     4     1  version 0x02
//	     5     3  reserved (zero)
//	     8     4  nodes section length in bytes
//	    12     4  siblings section length in bytes
//	    16     4  code map section length in bytes
//	    20     4  reserved (zero)
//	    24     …  nodes (base, check) pairs | siblings u32s | code map
//
// The 24-byte header is a multiple of 8, so the nodes section starts on an
// 8-byte boundary whenever the buffer itself does.
const (
	magic      = "LXTR"
	version    = 0x02
	headerSize = 24

	nodeSize    = 8
	siblingSize = 4
)

// AsBytes serializes the trie to the LXTR v2 image. The node and sibling
// arrays are preserved verbatim, byte for byte.
func (da *DoubleArray[L]) AsBytes() []byte {
	nodesBytes := len(da.nodes) * nodeSize
	siblingsBytes := len(da.siblings) * siblingSize
	codeMap := da.codeMap.appendBytes(nil)

	buf := make([]byte, 0, headerSize+nodesBytes+siblingsBytes+len(codeMap))

	buf = append(buf, magic...)
	buf = append(buf, version, 0, 0, 0)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(nodesBytes))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(siblingsBytes))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(codeMap)))
	buf = binary.LittleEndian.AppendUint32(buf, 0)

	for i := range da.nodes {
		base, check := da.nodes[i].Raw()

		buf = binary.LittleEndian.AppendUint32(buf, base)
		buf = binary.LittleEndian.AppendUint32(buf, check)
	}

	for _, s := range da.siblings {
		buf = binary.LittleEndian.AppendUint32(buf, s)
	}

	return append(buf, codeMap...)
}

// FromBytes deserializes an LXTR v2 image into an owned trie. It works on
// any platform; the bytes are copied.
func FromBytes[L Label](b []byte) (*DoubleArray[L], error) {
	secs, err := splitSections(b)
	if err != nil {
		return nil, err
	}

	nodes := nodesFromBytes(secs.nodes)
	siblings := siblingsFromBytes(secs.siblings)

	codeMap, err := codeMapperFromBytes(secs.codeMap)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 || len(nodes) != len(siblings) {
		return nil, ErrTruncatedData
	}

	return newDoubleArray[L](nodes, siblings, codeMap), nil
}

// sections carves a validated image into its three data sections.
type sections struct {
	nodes    untrust.Input
	siblings untrust.Input
	codeMap  untrust.Input
}

// splitSections validates the header and section bounds. The supplied
// lengths are never trusted: arithmetic is overflow-checked and every
// section is verified against the buffer before any of it is read.
func splitSections(b []byte) (sections, error) {
	if len(b) < headerSize {
		return sections{}, ErrTruncatedData
	}

	r := untrust.NewReader(untrust.Input(b))

	// None of the header reads below can fail: the length check above
	// covers all 24 bytes.
	m, _ := r.ReadBytes(4)
	if string(m.AsSliceLessSafe()) != magic {
		return sections{}, ErrInvalidMagic
	}

	v, _ := r.ReadByte()
	if v != version {
		return sections{}, ErrInvalidVersion
	}

	_ = r.Skip(3)

	nodesBytes, _ := r.ReadUint32()
	siblingsBytes, _ := r.ReadUint32()
	codeMapBytes, _ := r.ReadUint32()

	_ = r.Skip(4)

	if nodesBytes%nodeSize != 0 || siblingsBytes%siblingSize != 0 {
		return sections{}, ErrTruncatedData
	}

	total := headerSize + uint64(nodesBytes) + uint64(siblingsBytes) + uint64(codeMapBytes)
	if total > uint64(len(b)) {
		return sections{}, ErrTruncatedData
	}

	// In bounds now, so the int conversions cannot wrap.
	nodesSec, _ := r.ReadBytes(int(nodesBytes))
	siblingsSec, _ := r.ReadBytes(int(siblingsBytes))
	codeMapSec, _ := r.ReadBytes(int(codeMapBytes))

	return sections{nodes: nodesSec, siblings: siblingsSec, codeMap: codeMapSec}, nil
}

// nodesFromBytes copies the node section into owned memory. Little-endian
// hosts with an aligned section take the bulk path; everything else
// parses word by word.
func nodesFromBytes(b untrust.Input) []node.Node {
	raw := b.AsSliceLessSafe()

	if xunsafe.LittleEndian && !xunsafe.Misaligned(raw, xunsafe.AlignOf[node.Node]()) {
		return slices.Clone(xunsafe.CastSlice[node.Node](raw))
	}

	nodes := make([]node.Node, len(raw)/nodeSize)

	for i := range nodes {
		base := binary.LittleEndian.Uint32(raw[i*nodeSize:])
		check := binary.LittleEndian.Uint32(raw[i*nodeSize+4:])

		nodes[i] = node.FromRaw(base, check)
	}

	return nodes
}

// siblingsFromBytes copies the sibling section into owned memory.
func siblingsFromBytes(b untrust.Input) []uint32 {
	raw := b.AsSliceLessSafe()

	if xunsafe.LittleEndian && !xunsafe.Misaligned(raw, xunsafe.AlignOf[uint32]()) {
		return slices.Clone(xunsafe.CastSlice[uint32](raw))
	}

	siblings := make([]uint32, len(raw)/siblingSize)

	for i := range siblings {
		siblings[i] = binary.LittleEndian.Uint32(raw[i*siblingSize:])
	}

	return siblings
}
