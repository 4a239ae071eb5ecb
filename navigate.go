package riffwalk

import (
	"errors"
	"fmt"
	"io"
)

// Read reads from the current chunk's data, at most up to its end. The
// pad byte after odd-sized data is never returned. Read implements
// io.Reader; once the chunk data is exhausted it returns io.EOF.
func (c *Cursor) Read(p []byte) (int, error) {
	if c == nil || c.r == nil {
		return 0, ErrInvalidHandle
	}

	left := c.Chunk.Size - c.Chunk.Offset
	if left == 0 {
		return 0, io.EOF
	}

	if uint64(len(p)) > left {
		p = p[:left]
	}

	n, err := c.r.Read(p)
	c.Pos += uint64(n)
	c.Chunk.Offset += uint64(n)

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", ErrAccess, err)
	}

	return n, err
}

// SeekInChunk positions the cursor within the current chunk's data.
// Offset 0 is the first data byte. Seeking to Size, one past the last
// byte, is valid; the next read then reports exhaustion. Negative offsets
// and offsets beyond Size fail with ErrEndOfChunk.
func (c *Cursor) SeekInChunk(offset int64) error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	if offset < 0 || uint64(offset) > c.Chunk.Size {
		return ErrEndOfChunk
	}

	c.Pos = c.Chunk.Start + chunkDataOffset + uint64(offset)
	c.Chunk.Offset = uint64(offset)

	return c.seek(c.Pos)
}

// NextChunk seeks to the header of the chunk following the current one in
// the current level and parses it. At the end of the level it returns
// ErrEndOfChunkList, or ErrExcessData if 1-7 stray bytes remain that
// cannot hold another chunk header.
func (c *Cursor) NextChunk() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	next := c.Chunk.Start + chunkDataOffset + c.Chunk.Size + c.Chunk.Pad
	listEnd := c.Level.Start + chunkDataOffset + c.Level.Size

	// no room for another full header in this level; the containing
	// chunks are padded already, so there shouldn't be any stray bytes
	if listEnd < next+chunkDataOffset {
		if listEnd > next {
			c.logf("%d excess bytes at pos %d at end of chunk list", listEnd-next, next)

			return ErrExcessData
		}

		return ErrEndOfChunkList
	}

	c.Pos = next
	c.Chunk.Offset = 0

	err := c.seek(next)
	if err != nil {
		return err
	}

	return c.readChunkHeader()
}

// SeekChunkStart seeks to the first data byte of the current chunk. The
// header is not re-read.
func (c *Cursor) SeekChunkStart() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	c.Pos = c.Chunk.Start + chunkDataOffset
	c.Chunk.Offset = 0

	return c.seek(c.Pos)
}

// SeekLevelStart seeks to the first chunk of the current level and parses
// its header.
func (c *Cursor) SeekLevelStart() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	// first chunk header sits right after the level's type id
	c.Pos = c.Level.Start + chunkDataOffset + 4
	c.Chunk.Offset = 0

	err := c.seek(c.Pos)
	if err != nil {
		return err
	}

	return c.readChunkHeader()
}

// Rewind returns to the first chunk of the root level, the same position
// as just after Open.
func (c *Cursor) Rewind() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	for c.stack.depth > 0 {
		c.ascend()
	}

	return c.SeekLevelStart()
}

// CanBeChunkList reports whether the current chunk's id permits nested
// sub-chunks: RIFF, BW64 or LIST.
func (c *Cursor) CanBeChunkList() bool {
	if c == nil {
		return false
	}

	return c.Chunk.ID == IDList || c.Chunk.ID == IDRiff || c.Chunk.ID == IDBW64
}

// IsLastChunkInLevel reports whether the current level has no room for
// another chunk header after the current chunk. NextChunk performs the
// same check and reports the outcome through its result code.
func (c *Cursor) IsLastChunkInLevel() bool {
	if c == nil {
		return false
	}

	next := c.Chunk.Start + chunkDataOffset + c.Chunk.Size + c.Chunk.Pad

	return c.Level.Start+chunkDataOffset+c.Level.Size < next+chunkDataOffset
}

// Descend enters the sub-chunk list of the current chunk and parses the
// header of its first chunk. It fails with ErrIllegalID if the chunk is
// not list-capable and with ErrChunkSizeExceeded if the chunk is too small
// to hold a list type id. The cursor seeks to the chunk data start first
// if it has read past it.
func (c *Cursor) Descend() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	if !c.CanBeChunkList() {
		c.logf("cannot descend into chunk %q, only RIFF, BW64 or LIST chunks contain sub-chunks", c.Chunk.ID)

		return ErrIllegalID
	}

	if c.Chunk.Size < 4 {
		c.logf("chunk %q too small to contain sub level chunks", c.Chunk.ID)

		return ErrChunkSizeExceeded
	}

	// the list type id sits at the start of the chunk data
	if c.Chunk.Offset > 0 {
		err := c.SeekChunkStart()
		if err != nil {
			return err
		}
	}

	var listType FourCC

	n, err := io.ReadFull(c.r, listType[:])
	c.Pos += uint64(n)

	if n != 4 {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrAccess, err)
		}

		return ErrUnexpectedEOF
	}

	if !listType.valid() {
		c.logf("invalid list type id (FOURCC) at pos %d: % x", c.Chunk.Start, listType[:])

		return ErrIllegalID
	}

	c.stack.push(c.Level)
	c.Level = Level{
		ID:    c.Chunk.ID,
		Type:  listType,
		Size:  c.Chunk.Size,
		Start: c.Chunk.Start,
	}

	return c.readChunkHeader()
}

// Ascend steps back out of the current sub-chunk list. The position does
// not change: the cursor is still inside the data of the parent list
// chunk, not at its start. At the root level it fails with ErrNoParent.
func (c *Cursor) Ascend() error {
	if c == nil {
		return ErrInvalidHandle
	}

	if c.stack.depth <= 0 {
		return ErrNoParent
	}

	c.ascend()

	return nil
}

// AscendStart ascends one level and seeks to the start of the parent list
// chunk's data.
func (c *Cursor) AscendStart() error {
	err := c.Ascend()
	if err != nil {
		return err
	}

	return c.SeekChunkStart()
}

// AscendNext ascends one level and seeks to the chunk following the
// parent list chunk.
func (c *Cursor) AscendNext() error {
	err := c.Ascend()
	if err != nil {
		return err
	}

	return c.NextChunk()
}

// ascend pops the most recent stack entry back into the current level
// descriptor. The list chunk that was just left becomes the current chunk
// again, with its in-chunk offset reconstructed from the absolute
// position.
func (c *Cursor) ascend() {
	parent, ok := c.stack.pop()
	if !ok {
		return
	}

	c.Chunk = Chunk{
		ID:     c.Level.ID,
		Size:   c.Level.Size,
		Start:  c.Level.Start,
		Pad:    c.Level.Size & 1,
		Offset: c.Pos - c.Level.Start - chunkDataOffset,
	}
	c.Level = parent
}
