package riffwalk

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func openFixture(t *testing.T, data []byte) *Cursor {
	t.Helper()

	c := New(bytes.NewReader(data))
	if err := c.Open(uint64(len(data))); err != nil {
		t.Fatalf("open: %v", err)
	}

	return c
}

func TestOpenParsesRootAndFirstChunk(t *testing.T) {
	data := makeToneWav(440, 32)

	c := openFixture(t, data)

	if c.Level.ID != IDRiff {
		t.Fatalf("level id=%q, want RIFF", c.Level.ID)
	}

	if c.Level.Type.String() != "WAVE" {
		t.Fatalf("level type=%q, want WAVE", c.Level.Type)
	}

	if c.Level.Size != uint64(len(data)-8) {
		t.Fatalf("level size=%d, want %d", c.Level.Size, len(data)-8)
	}

	if c.Level.Start != 0 {
		t.Fatalf("level start=%d, want 0", c.Level.Start)
	}

	want := Chunk{ID: FourCC{'f', 'm', 't', ' '}, Size: 16, Start: 12}
	if c.Chunk != want {
		t.Fatalf("chunk=%+v, want %+v", c.Chunk, want)
	}

	if c.Pos != 20 {
		t.Fatalf("pos=%d, want 20", c.Pos)
	}

	if c.Depth() != 0 {
		t.Fatalf("depth=%d, want 0", c.Depth())
	}
}

func TestOpenAtNonZeroOffset(t *testing.T) {
	wav := makeToneWav(440, 16)
	junk := bytes.Repeat([]byte{0xAB}, 100)
	full := append(append([]byte{}, junk...), wav...)

	r := bytes.NewReader(full)
	if _, err := r.Seek(int64(len(junk)), io.SeekStart); err != nil {
		t.Fatal(err)
	}

	c := New(r)
	if err := c.Open(uint64(len(wav))); err != nil {
		t.Fatalf("open nested container: %v", err)
	}

	if c.Chunk.ID.String() != "fmt " {
		t.Fatalf("chunk id=%q, want fmt ", c.Chunk.ID)
	}

	payload := make([]byte, c.Chunk.Size)
	if _, err := io.ReadFull(c, payload); err != nil {
		t.Fatalf("read fmt payload: %v", err)
	}

	if !bytes.Equal(payload, wav[20:36]) {
		t.Fatal("fmt payload doesn't match the nested container bytes")
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	data := makeToneWav(440, 16)
	copy(data[0:4], "RIFX")

	c := New(bytes.NewReader(data))

	err := c.Open(uint64(len(data)))
	if !errors.Is(err, ErrIllegalID) {
		t.Fatalf("open=%v, want ErrIllegalID", err)
	}
}

func TestOpenTruncatedHeader(t *testing.T) {
	data := makeToneWav(440, 16)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"partial container header", data[:10]},
		{"partial chunk header", data[:14]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(bytes.NewReader(tt.data))

			err := c.Open(uint64(len(tt.data)))
			if !errors.Is(err, ErrUnexpectedEOF) {
				t.Fatalf("open=%v, want ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestOpenSizeMismatch(t *testing.T) {
	data := makeToneWav(440, 16)

	tests := []struct {
		name      string
		totalSize uint64
		want      error
	}{
		{"exact", uint64(len(data)), nil},
		{"unknown", 0, nil},
		{"trailing garbage", uint64(len(data) + 4), ErrExcessData},
		{"cut off", uint64(len(data) - 4), ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(bytes.NewReader(data))

			err := c.Open(tt.totalSize)
			if !errors.Is(err, tt.want) {
				t.Fatalf("open(%d)=%v, want %v", tt.totalSize, err, tt.want)
			}
		})
	}
}

func TestOpenBW64ReadsDs64Size(t *testing.T) {
	data := makeBW64([]rawChunk{
		{id: "fmt ", data: fmtChunkData(1, 48000, 16)},
		{id: "data", data: tonePCM(440, 16)},
	})

	c := openFixture(t, data)

	if c.Level.ID != IDBW64 {
		t.Fatalf("level id=%q, want BW64", c.Level.ID)
	}

	// the saturated 32-bit size must have been replaced by the ds64 value
	if c.Level.Size != uint64(len(data)-8) {
		t.Fatalf("level size=%d, want %d", c.Level.Size, len(data)-8)
	}

	if c.Chunk.ID != IDDs64 {
		t.Fatalf("chunk id=%q, want ds64", c.Chunk.ID)
	}

	if c.Chunk.Offset != 8 {
		t.Fatalf("chunk offset=%d, want 8 after reading the size words", c.Chunk.Offset)
	}

	// the remaining structure must iterate normally
	var ids []string
	for {
		ids = append(ids, c.Chunk.ID.String())

		err := c.NextChunk()
		if errors.Is(err, ErrEndOfChunkList) {
			break
		}

		if err != nil {
			t.Fatalf("next chunk: %v", err)
		}
	}

	want := []string{"ds64", "fmt ", "data"}
	if len(ids) != len(want) {
		t.Fatalf("ids=%v, want %v", ids, want)
	}

	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids=%v, want %v", ids, want)
		}
	}
}

func TestOpenDs64TooSmall(t *testing.T) {
	data := buildContainer("BW64", "WAVE", []rawChunk{
		{id: "ds64", data: []byte{0, 0, 0, 0}},
		{id: "data", data: tonePCM(440, 8)},
	})
	// saturate the root size so the ds64 chunk is consulted
	data[4], data[5], data[6], data[7] = 0xFF, 0xFF, 0xFF, 0xFF

	c := New(bytes.NewReader(data))

	err := c.Open(0)
	if !errors.Is(err, ErrChunkSizeExceeded) {
		t.Fatalf("open=%v, want ErrChunkSizeExceeded", err)
	}
}

func TestOpenLogsDiagnostics(t *testing.T) {
	data := makeToneWav(440, 16)
	data[12] = 0x01 // first chunk id byte outside printable ASCII

	var logged []string

	c := New(bytes.NewReader(data))
	c.Logf = func(format string, args ...any) {
		logged = append(logged, format)
	}

	err := c.Open(uint64(len(data)))
	if !errors.Is(err, ErrIllegalID) {
		t.Fatalf("open=%v, want ErrIllegalID", err)
	}

	if len(logged) == 0 {
		t.Fatal("expected a diagnostic message for the invalid chunk id")
	}
}

func TestOpenInvalidHandle(t *testing.T) {
	var nilCursor *Cursor
	if err := nilCursor.Open(0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("nil cursor open=%v, want ErrInvalidHandle", err)
	}

	if err := New(nil).Open(0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("nil reader open=%v, want ErrInvalidHandle", err)
	}
}

func TestCursorString(t *testing.T) {
	data := makeToneWav(440, 16)

	c := openFixture(t, data)

	got := c.String()
	if !strings.Contains(got, "RIFF") || !strings.Contains(got, "fmt ") {
		t.Fatalf("String()=%q, should mention the level and chunk ids", got)
	}
}
