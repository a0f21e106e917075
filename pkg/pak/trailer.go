package pak

// TrailerSize is the fixed binary size of the trailer record.
const TrailerSize = EntrySize

// trailer is the 68-byte record following the entry table in every
// archive produced by the game's own packer. Its fields look like
// leftover pointer values from that packer and have no known meaning;
// it is copied verbatim on write and skipped on read, never parsed.
var trailer = [TrailerSize]byte{
	0x00, 0x00, 0x00, 0x00, 0xBC, 0x42, 0x59, 0x81, 0x00, 0x00, 0x00, 0x00, 0x8C, 0x83, 0x59, 0x81,
	0x8C, 0x83, 0x59, 0x81, 0x88, 0x83, 0x59, 0x81, 0x3B, 0xAE, 0xF7, 0xBF, 0x00, 0x20, 0x56, 0x81,
	0x00, 0x00, 0x00, 0x00, 0x8C, 0x83, 0x59, 0x81, 0xDB, 0xAE, 0xF7, 0xBF, 0x8C, 0x83, 0x59, 0x81,
	0xDE, 0xDA, 0xF7, 0xBF, 0x8C, 0x83, 0x59, 0x81, 0x8C, 0x83, 0x59, 0x81, 0xE2, 0x13, 0xF7, 0xBF,
	0x59, 0xB7, 0x5E, 0x01,
}

// Trailer returns a copy of the opaque trailer record.
func Trailer() []byte {
	t := trailer
	return t[:]
}
