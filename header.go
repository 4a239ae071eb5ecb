package riffwalk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// readChunkHeader reads and validates the 8-byte id+size header at the
// current position. On success the current chunk descriptor points at the
// freshly parsed chunk with Offset 0. On failure the descriptor and Pos
// may be partially updated; there is no rollback since backend reads are
// not assumed to be rewindable.
func (c *Cursor) readChunkHeader() error {
	var buf [chunkDataOffset]byte

	start := c.Pos

	n, err := io.ReadFull(c.r, buf[:])
	c.Pos += uint64(n)

	if n != chunkDataOffset {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrAccess, err)
		}

		c.logf("failed to read chunk header, %d of %d bytes read", n, chunkDataOffset)

		return ErrUnexpectedEOF
	}

	c.Chunk.Start = start
	copy(c.Chunk.ID[:], buf[0:4])
	c.Chunk.Size = uint64(binary.LittleEndian.Uint32(buf[4:8]))
	c.Chunk.Pad = c.Chunk.Size & 1
	c.Chunk.Offset = 0

	if !c.Chunk.ID.valid() {
		c.logf("invalid chunk id (FOURCC) at pos %d: % x", c.Chunk.Start, c.Chunk.ID[:])

		return ErrIllegalID
	}

	// the size field could be corrupt: check that the chunk fits into the
	// current list level and the file before trusting it
	chunkEnd := c.Chunk.Start + chunkDataOffset + c.Chunk.Size + c.Chunk.Pad
	listEnd := c.Level.Start + chunkDataOffset + c.Level.Size

	if chunkEnd > listEnd {
		c.logf("chunk %s at pos %d exceeds its list level, at least one size value must be corrupt", c.Chunk.ID, c.Chunk.Start)

		return ErrChunkSizeExceeded
	}

	if c.Size > 0 && chunkEnd > c.Size {
		c.logf("chunk %s at pos %d exceeds the container size, at least one size value must be corrupt", c.Chunk.ID, c.Chunk.Start)

		return ErrUnexpectedEOF
	}

	return nil
}
