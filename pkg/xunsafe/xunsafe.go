// Package xunsafe isolates the unsafe reinterpretation tricks used by the
// zero-copy trie loader, so that package datrie itself never imports
// package unsafe directly.
package xunsafe

import "unsafe"

// LittleEndian is true if the host stores multi-byte integers least
// significant byte first. The zero-copy loader only works on such hosts,
// where the in-memory layout of a node matches its serialized form.
var LittleEndian = func() bool {
	x := uint16(1)

	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// Misaligned reports whether the first byte of b is not aligned to align,
// which must be a power of two.
func Misaligned(b []byte, align uintptr) bool {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))&(align-1) != 0
}

// CastSlice reinterprets b as a slice of E without copying.
//
// The caller must guarantee that len(b) is a multiple of the size of E,
// that b is aligned for E, and that any bit pattern is a valid E. The
// returned slice aliases b and is valid for as long as b is.
func CastSlice[E any](b []byte) []E {
	if len(b) == 0 {
		return nil
	}

	size := int(unsafe.Sizeof(*new(E)))

	return unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/size)
}

// AlignOf returns the required alignment of E.
func AlignOf[E any]() uintptr { return unsafe.Alignof(*new(E)) }

// SizeOf returns the size of E in bytes.
func SizeOf[E any]() uintptr { return unsafe.Sizeof(*new(E)) }
