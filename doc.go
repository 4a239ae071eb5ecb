// Package riffwalk navigates RIFF-family container files (WAV, AVI, BW64
// and similar) as a tree of typed, length-prefixed chunks, without
// interpreting any chunk payloads.
//
// A Cursor wraps an io.ReadSeeker positioned at the start of the container
// data. After Open it points at the first chunk of the root level;
// NextChunk steps from header to header, Descend enters the sub-chunk list
// of a RIFF, BW64 or LIST chunk and Ascend climbs back out. Read and
// SeekInChunk access the data of the current chunk, never beyond its end
// and never the pad byte that follows odd-sized chunk data.
//
// Fallible operations return a Code. Non-critical codes such as
// ErrEndOfChunkList mark expected structural boundaries the caller reacts
// to; critical codes such as ErrChunkSizeExceeded mark corruption or an
// access failure and should end the traversal. A saturated 32-bit root
// size is transparently replaced by the 64-bit value from a leading ds64
// chunk.
//
// The cursor is a plain mutable structure: it is not safe for concurrent
// use, performs no caching or retries, and never closes the reader it was
// given.
package riffwalk
