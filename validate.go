package riffwalk

import "errors"

// ValidateLevel checks the chunk structure of the current level by seeking
// from header to header until the end of the level. It does not recurse
// into sub-lists. The cursor position changes.
func (c *Cursor) ValidateLevel() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	err := c.SeekLevelStart()
	if err != nil {
		return err
	}

	for {
		err = c.NextChunk()
		if errors.Is(err, ErrEndOfChunkList) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// ValidateFile rewinds to the first chunk and walks the whole chunk tree
// depth first, descending into every list-capable chunk, so every chunk
// header in the container is parsed exactly once. The cursor position
// changes.
func (c *Cursor) ValidateFile() error {
	if c == nil || c.r == nil {
		return ErrInvalidHandle
	}

	err := c.Rewind()
	if err != nil {
		return err
	}

	return c.validateLevel()
}

func (c *Cursor) validateLevel() error {
	for {
		if c.CanBeChunkList() {
			err := c.Descend()
			if err != nil {
				return err
			}

			err = c.validateLevel()
			if err != nil {
				return err
			}

			err = c.Ascend()
			if err != nil {
				return err
			}
		}

		err := c.NextChunk()
		if errors.Is(err, ErrEndOfChunkList) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// CountChunks counts the chunks in the current level. It seeks back to the
// level start first and does not recurse into sub-lists. Stray trailing
// bytes end the count without failing it.
func (c *Cursor) CountChunks() (int, error) {
	return c.countChunks(nil)
}

// CountChunksWithID counts the chunks with the given id in the current
// level. It seeks back to the level start first and does not recurse into
// sub-lists.
func (c *Cursor) CountChunksWithID(id FourCC) (int, error) {
	return c.countChunks(&id)
}

func (c *Cursor) countChunks(id *FourCC) (int, error) {
	if c == nil || c.r == nil {
		return 0, ErrInvalidHandle
	}

	err := c.SeekLevelStart()
	if err != nil {
		return 0, err
	}

	count := 0

	for {
		if id == nil || *id == c.Chunk.ID {
			count++
		}

		err = c.NextChunk()
		if errors.Is(err, ErrEndOfChunkList) || errors.Is(err, ErrExcessData) {
			return count, nil
		}

		if err != nil {
			return 0, err
		}
	}
}
