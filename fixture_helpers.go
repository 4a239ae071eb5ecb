package riffwalk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// Fixture builders shared by the test suites. Containers are assembled by
// hand so the cursor is checked against independently written structures.

type rawChunk struct {
	id   string
	data []byte
}

type chunkInventoryEntry struct {
	id   string
	size uint32
}

var (
	errFixtureTooSmall      = errors.New("fixture too small")
	errInvalidRootHeader    = errors.New("invalid root header")
	errChunkExceedsFixture  = errors.New("chunk exceeds fixture size")
	errTruncatedChunkHeader = errors.New("truncated chunk header")
)

// appendChunk serializes one chunk, including the pad byte for odd sizes.
func appendChunk(out []byte, id string, data []byte) []byte {
	out = append(out, id...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, data...)

	if len(data)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

// buildContainer assembles a container with the given root id ("RIFF" or
// "BW64"), form type and top-level chunks. The root size field is computed
// from the body.
func buildContainer(rootID, formType string, chunks []rawChunk) []byte {
	body := []byte(formType)
	for _, ch := range chunks {
		body = appendChunk(body, ch.id, ch.data)
	}

	out := []byte(rootID)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))

	return append(out, body...)
}

// listChunk builds the payload of a LIST chunk: type id plus sub-chunks.
func listChunk(listType string, chunks []rawChunk) []byte {
	body := []byte(listType)
	for _, ch := range chunks {
		body = appendChunk(body, ch.id, ch.data)
	}

	return body
}

// fmtChunkData builds a canonical 16-byte PCM fmt chunk payload.
func fmtChunkData(numChans, sampleRate, bitDepth int) []byte {
	blockAlign := numChans * bitDepth / 8

	data := make([]byte, 0, 16)
	data = binary.LittleEndian.AppendUint16(data, 1) // PCM
	data = binary.LittleEndian.AppendUint16(data, uint16(numChans))
	data = binary.LittleEndian.AppendUint32(data, uint32(sampleRate))
	data = binary.LittleEndian.AppendUint32(data, uint32(sampleRate*blockAlign))
	data = binary.LittleEndian.AppendUint16(data, uint16(blockAlign))
	data = binary.LittleEndian.AppendUint16(data, uint16(bitDepth))

	return data
}

// tonePCM synthesizes numSamples of a mono 16-bit sine tone and returns
// the little-endian sample bytes.
func tonePCM(frequency float64, numSamples int) []byte {
	const sampleRate = 48000

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, numSamples),
	}

	for i := range buf.Data {
		buf.Data[i] = int(0.8 * math.MaxInt16 * math.Sin(2*math.Pi*frequency*float64(i)/sampleRate))
	}

	out := make([]byte, 0, len(buf.Data)*2)
	for _, sample := range buf.Data {
		out = binary.LittleEndian.AppendUint16(out, uint16(int16(sample)))
	}

	return out
}

// makeToneWav builds a minimal WAV container with a synthesized data chunk
// and any extra chunks appended after it.
func makeToneWav(frequency float64, numSamples int, extra ...rawChunk) []byte {
	chunks := []rawChunk{
		{id: "fmt ", data: fmtChunkData(1, 48000, 16)},
		{id: "data", data: tonePCM(frequency, numSamples)},
	}
	chunks = append(chunks, extra...)

	return buildContainer("RIFF", "WAVE", chunks)
}

// makeBW64 builds a BW64 container whose 32-bit root size field is
// saturated and whose true size is carried by a leading ds64 chunk.
func makeBW64(chunks []rawChunk) []byte {
	all := append([]rawChunk{{id: "ds64", data: make([]byte, 28)}}, chunks...)
	out := buildContainer("BW64", "WAVE", all)

	binary.LittleEndian.PutUint32(out[4:8], 0xFFFFFFFF)

	trueSize := uint64(len(out) - chunkDataOffset)
	binary.LittleEndian.PutUint32(out[20:24], uint32(trueSize))
	binary.LittleEndian.PutUint32(out[24:28], uint32(trueSize>>32))

	return out
}

// scanTopLevel independently scans the id+size fields of the top chunk
// list, so cursor traversals can be checked against a second opinion.
func scanTopLevel(data []byte) ([]chunkInventoryEntry, error) {
	if len(data) < headerSize {
		return nil, errFixtureTooSmall
	}

	rootID := string(data[0:4])
	if rootID != "RIFF" && rootID != "BW64" {
		return nil, errInvalidRootHeader
	}

	end := chunkDataOffset + int(binary.LittleEndian.Uint32(data[4:8]))
	if end > len(data) {
		end = len(data)
	}

	chunks := make([]chunkInventoryEntry, 0)

	offset := headerSize
	for offset < end {
		if offset+chunkDataOffset > end {
			return nil, errTruncatedChunkHeader
		}

		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += chunkDataOffset

		if offset+int(size) > end {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFixture, id)
		}

		chunks = append(chunks, chunkInventoryEntry{id: id, size: size})

		offset += int(size)
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}
