package riffwalk

// FourCC is a four character code as used for RIFF chunk and list type ids.
type FourCC [4]byte

var (
	// IDRiff identifies the root chunk of a RIFF container.
	IDRiff = FourCC{'R', 'I', 'F', 'F'}
	// IDBW64 identifies the root chunk of a BW64 container.
	IDBW64 = FourCC{'B', 'W', '6', '4'}
	// IDList identifies a LIST chunk, whose data nests sub-chunks.
	IDList = FourCC{'L', 'I', 'S', 'T'}
	// IDDs64 identifies the ds64 chunk carrying 64-bit size values.
	IDDs64 = FourCC{'d', 's', '6', '4'}
)

// String implements the Stringer interface.
func (f FourCC) String() string {
	return string(f[:])
}

// valid reports whether all four bytes are printable ASCII, the only
// characters a well-formed FOURCC may contain.
func (f FourCC) valid() bool {
	for _, b := range f {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}

	return true
}
