package datrie

import "errors"

// Errors returned by [FromBytes] and [FromBytesRef]. Queries never fail,
// and construction precondition violations panic.
var (
	// ErrInvalidMagic indicates the binary data has an invalid magic number.
	ErrInvalidMagic = errors.New("datrie: invalid magic number")

	// ErrInvalidVersion indicates the binary data has an unsupported version.
	ErrInvalidVersion = errors.New("datrie: unsupported version")

	// ErrTruncatedData indicates the binary data is truncated or corrupted.
	ErrTruncatedData = errors.New("datrie: truncated or corrupted data")

	// ErrMisalignedData indicates the buffer cannot back a zero-copy trie,
	// either because a section pointer is misaligned or because the host is
	// not little-endian. It is returned by [FromBytesRef] only.
	ErrMisalignedData = errors.New("datrie: misaligned data")
)
