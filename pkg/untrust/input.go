// Package untrust provides panic-free primitives for reading untrusted
// binary data, such as a serialized trie image loaded from disk or an
// mmap region.
package untrust

import "bytes"

// Input is a wrapper around []byte that helps in writing panic-free code.
type Input []byte

func (i Input) GoString() string { return "Input" }

// Returns true if the input is empty and false otherwise.
func (i Input) Empty() bool { return len(i) == 0 }

// Returns the length of the Input.
func (i Input) Len() int { return len(i) }

// Access the input as a slice so it can be processed by functions
// that are not written using the Input/Reader framework.
func (i Input) AsSliceLessSafe() []byte { return i }

// Clone returns a copy of the `Input`.
func (i Input) Clone() Input { return bytes.Clone(i) }
