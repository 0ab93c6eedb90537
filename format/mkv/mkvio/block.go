package mkvio

// Block flag bits, SimpleBlock layout.
const (
	BlockFlagKeyframe    = 0x80
	BlockFlagInvisible   = 0x08
	BlockFlagLacing      = 0x06
	BlockFlagDiscardable = 0x01
)

// ParseBlockHeader decodes the header of a Block/SimpleBlock payload: the
// track number vint, the signed 16-bit relative timecode and the flags byte.
// It returns the offset at which the frame data starts.
func ParseBlockHeader(b []byte) (track int64, timecode int16, flags byte, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, 0, ErrParse
	}

	var length int
	var mask byte
	switch {
	case b[0]&0x80 != 0:
		length, mask = 1, 0x7f
	case b[0]&0x40 != 0:
		length, mask = 2, 0x3f
	case b[0]&0x20 != 0:
		length, mask = 3, 0x1f
	case b[0]&0x10 != 0:
		length, mask = 4, 0x0f
	default:
		return 0, 0, 0, 0, ErrParse
	}

	if len(b) < length+3 {
		return 0, 0, 0, 0, ErrParse
	}

	v := uint64(b[0] & mask)
	for i := 1; i < length; i++ {
		v = v<<8 | uint64(b[i])
	}

	track = int64(v)
	timecode = int16(uint16(b[length])<<8 | uint16(b[length+1]))
	flags = b[length+2]
	n = length + 3

	return track, timecode, flags, n, nil
}
