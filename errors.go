package riffwalk

import "errors"

// Code enumerates the result codes returned by cursor operations. A nil
// error means success. Non-critical codes leave the cursor in a
// well-defined, continuable state; critical codes indicate corruption or
// an access failure, and cursor fields may be partially updated since
// backend reads are not assumed to be rewindable.
type Code int

const (
	// ErrEndOfChunk is returned when seeking beyond the end of the
	// current chunk's data.
	ErrEndOfChunk Code = iota + 1
	// ErrEndOfChunkList is returned when seeking the next chunk while
	// already at the last chunk of the current level.
	ErrEndOfChunkList
	// ErrExcessData reports stray bytes at the end of a chunk list or
	// file: too few for another chunk, ignored.
	ErrExcessData
	// ErrNoParent is returned by Ascend and friends at the root level.
	ErrNoParent

	// ErrIllegalID is returned when a chunk or list type id contains
	// bytes outside printable ASCII, or has the wrong value.
	ErrIllegalID
	// ErrChunkSizeExceeded is returned when a chunk's declared size
	// overruns its containing level or file. The size field is
	// untrustworthy and the chunk data must be considered cut off.
	ErrChunkSizeExceeded
	// ErrUnexpectedEOF is returned when the container ends before its
	// declared sizes allow: a cut off file or a wrong size argument.
	ErrUnexpectedEOF
	// ErrAccess is returned when the backing reader fails. It wraps the
	// underlying error.
	ErrAccess
	// ErrInvalidHandle is returned when the cursor is nil or was not set
	// up with a reader.
	ErrInvalidHandle
)

// Critical reports whether the code denotes corruption or an access
// failure rather than an expected structural boundary.
func (c Code) Critical() bool {
	return c >= ErrIllegalID
}

// Error implements the error interface.
func (c Code) Error() string {
	return c.String()
}

// String maps the code to a short description. Out-of-range codes map to
// a generic string rather than failing the lookup.
func (c Code) String() string {
	switch c {
	case 0:
		return "no error"
	case ErrEndOfChunk:
		return "end of chunk"
	case ErrEndOfChunkList:
		return "end of chunk list"
	case ErrExcessData:
		return "excess bytes at end of chunk list"
	case ErrNoParent:
		return "no parent level"
	case ErrIllegalID:
		return "illegal four character id"
	case ErrChunkSizeExceeded:
		return "chunk size exceeds list level or file"
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrAccess:
		return "file access failed"
	case ErrInvalidHandle:
		return "invalid cursor handle"
	default:
		return "unknown error"
	}
}

// IsCritical reports whether err carries a critical Code anywhere in its
// chain. A nil error and plain non-code errors are not critical.
func IsCritical(err error) bool {
	var code Code
	if errors.As(err, &code) {
		return code.Critical()
	}

	return false
}
