package riffwalk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// headerSize is the size of the container header and of RIFF/LIST
	// chunk headers including their list type id.
	headerSize = 12
	// chunkDataOffset is the offset of a chunk's data relative to its
	// header start: 4 bytes id plus 4 bytes size.
	chunkDataOffset = 8
)

// Chunk describes the chunk the cursor currently points at.
type Chunk struct {
	// ID is the four character chunk id.
	ID FourCC
	// Size of the chunk data as stored in the file, excluding the header
	// and any pad byte.
	Size uint64
	// Start is the position of the chunk header, relative to the
	// container start.
	Start uint64
	// Offset is the read position within the chunk data, 0..Size.
	Offset uint64
	// Pad is 1 if Size is odd. The pad byte is never exposed to readers.
	Pad uint64
}

// Level describes one chunk list tier: the root container or a LIST chunk
// the cursor has descended into.
type Level struct {
	// ID is RIFF, BW64 or LIST.
	ID FourCC
	// Type is the list type id, the first 4 data bytes of the chunk.
	Type FourCC
	// Size of the chunk data as stored in the file.
	Size uint64
	// Start is the position of the level's chunk header, relative to the
	// container start.
	Start uint64
}

// Cursor navigates a RIFF-family container through an io.ReadSeeker.
// Exported fields are meant for read access between operations. A Cursor
// is not safe for concurrent use.
type Cursor struct {
	r    io.ReadSeeker
	base uint64

	// Logf, when set, receives advisory diagnostics about structural
	// problems. It carries no control-flow meaning; leave it nil to
	// silence all output.
	Logf func(format string, args ...any)

	// Size is the expected total container size in bytes, 0 if unknown.
	Size uint64
	// Pos is the current position, relative to the container start.
	Pos uint64

	// Chunk is the current chunk descriptor.
	Chunk Chunk
	// Level is the current chunk list descriptor.
	Level Level

	stack levelStack
}

// New returns a cursor reading from r. Open must be called before any
// navigation. The reader is owned by the caller and is never closed here.
func New(r io.ReadSeeker) *Cursor {
	return &Cursor{r: r}
}

// Open parses the 12-byte container header and the header of the first
// chunk. The reader's current offset is taken as the container start, so a
// RIFF body nested inside a larger file works. totalSize is the expected
// container size used to detect truncation, 0 if unknown.
//
// If the 32-bit root size is saturated and the first chunk is ds64, the
// true 64-bit size is read from it and the cursor is left inside the ds64
// chunk.
func (c *Cursor) Open(totalSize uint64) error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	base, err := c.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccess, err)
	}

	c.base = uint64(base)
	c.Size = totalSize
	c.Pos = 0
	c.Chunk = Chunk{}
	c.Level = Level{}
	c.stack = levelStack{}

	var buf [headerSize]byte

	n, err := io.ReadFull(c.r, buf[:])
	c.Pos += uint64(n)

	if n != headerSize {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrAccess, err)
		}

		c.logf("read error, failed to read container header")

		return ErrUnexpectedEOF
	}

	copy(c.Level.ID[:], buf[0:4])
	c.Level.Size = uint64(binary.LittleEndian.Uint32(buf[4:8]))
	copy(c.Level.Type[:], buf[8:12])

	if c.Level.ID != IDRiff && c.Level.ID != IDBW64 {
		c.logf("invalid container header id %q", c.Level.ID)

		return ErrIllegalID
	}

	err = c.readChunkHeader()
	if err != nil {
		return err
	}

	if c.Level.Size == 0xFFFFFFFF && c.Chunk.ID == IDDs64 {
		err = c.readDs64Size()
		if err != nil {
			return err
		}
	}

	if c.Size != 0 && c.Size != c.Level.Size+chunkDataOffset {
		c.logf("root chunk size %d doesn't match container size %d", c.Level.Size+chunkDataOffset, c.Size)

		if c.Size > c.Level.Size+chunkDataOffset {
			return ErrExcessData
		}

		// end isn't reached yet, but the file seems cut off (or the
		// given total size was too small); reading beyond is not allowed
		return ErrUnexpectedEOF
	}

	return nil
}

// readDs64Size replaces the saturated root size with the 64-bit value
// stored in the first 8 data bytes of the ds64 chunk: two little-endian
// 32-bit words, low then high.
func (c *Cursor) readDs64Size() error {
	var buf [8]byte

	n, err := io.ReadFull(c, buf[:])
	if err != nil && errors.Is(err, ErrAccess) {
		return err
	}

	if n != 8 {
		c.logf("ds64 chunk too small to contain a size")

		return ErrChunkSizeExceeded
	}

	low := uint64(binary.LittleEndian.Uint32(buf[0:4]))
	high := uint64(binary.LittleEndian.Uint32(buf[4:8]))
	c.Level.Size = high<<32 | low

	return nil
}

// Depth returns the current nesting depth, 0 at the root level.
func (c *Cursor) Depth() int {
	if c == nil {
		return 0
	}

	return c.stack.depth
}

// LevelAt returns the level descriptor at the given depth, 0 being the
// outermost. The live current level is returned for depth == Depth().
func (c *Cursor) LevelAt(depth int) (Level, bool) {
	if c == nil || depth < 0 || depth > c.stack.depth {
		return Level{}, false
	}

	if depth == c.stack.depth {
		return c.Level, true
	}

	return c.stack.at(depth)
}

// String implements the Stringer interface.
func (c *Cursor) String() string {
	if c == nil {
		return "uninitialized cursor"
	}

	return fmt.Sprintf("%s (%s) depth %d: chunk %s size %d offset %d, pos %d",
		c.Level.ID, c.Level.Type, c.Depth(), c.Chunk.ID, c.Chunk.Size, c.Chunk.Offset, c.Pos)
}

func (c *Cursor) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// seek moves the backend to pos, relative to the container start.
func (c *Cursor) seek(pos uint64) error {
	_, err := c.r.Seek(int64(c.base+pos), io.SeekStart)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccess, err)
	}

	return nil
}
