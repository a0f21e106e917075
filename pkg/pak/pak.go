// Package pak reads and writes the PAK archive format used by the game
// Math Invaders to bundle its asset files: a little-endian entry count,
// a flat table of fixed-size directory records, one opaque trailer
// record, then the raw bytes of every packed file concatenated in
// entry order.
package pak

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

const (
	// HeaderSize is the fixed binary size of the archive header.
	HeaderSize = 4

	// PathSize is the fixed binary size of an entry's path field.
	PathSize = 64

	// EntrySize is the fixed binary size of a directory entry.
	EntrySize = PathSize + 4
)

// Entry is one directory record describing a packed file. Path holds the
// file's relative path with host separators; on disk it is stored ASCII,
// NUL-padded to 64 bytes, with backslash separators. Offset is the
// absolute byte offset of the file's content within the archive.
type Entry struct {
	Path   string
	Offset uint32
}

// Size returns the binary size of the entry.
func (e *Entry) Size() int {
	return EntrySize
}

// Validate checks that the entry's path can be stored in the fixed-size
// path field.
func (e *Entry) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	for i := 0; i < len(e.Path); i++ {
		if e.Path[i] == 0 || e.Path[i] > 0x7f {
			return fmt.Errorf("path %q: byte 0x%02x at index %d: %w", e.Path, e.Path[i], i, ErrInvalidPath)
		}
	}
	// One byte must remain for the NUL terminator.
	if len(e.Path) > PathSize-1 {
		return fmt.Errorf("path %q: %d bytes, max %d: %w", e.Path, len(e.Path), PathSize-1, ErrPathTooLong)
	}
	return nil
}

// MarshalBinary encodes the entry to its fixed 68-byte form.
func (e *Entry) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EntrySize)
	if err := e.EncodeTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeTo writes the entry to the given buffer, which must be at least
// EntrySize bytes. Path separators are stored as backslash.
func (e *Entry) EncodeTo(buf []byte) error {
	if err := e.Validate(); err != nil {
		return err
	}
	stored := strings.ReplaceAll(e.Path, string(os.PathSeparator), `\`)
	stored = strings.ReplaceAll(stored, "/", `\`)
	n := copy(buf[:PathSize], stored)
	for i := n; i < PathSize; i++ {
		buf[i] = 0
	}
	binary.LittleEndian.PutUint32(buf[PathSize:EntrySize], e.Offset)
	return nil
}

// UnmarshalBinary decodes the entry from its fixed 68-byte form,
// normalizing separators to the host form.
func (e *Entry) UnmarshalBinary(data []byte) error {
	return e.DecodeFrom(data)
}

// DecodeFrom reads the entry from the given buffer, which must be at
// least EntrySize bytes.
func (e *Entry) DecodeFrom(data []byte) error {
	if len(data) < EntrySize {
		return fmt.Errorf("entry data too short: need %d, got %d: %w", EntrySize, len(data), ErrTruncated)
	}
	raw := data[:PathSize]
	end := PathSize
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	raw = raw[:end]
	for i, b := range raw {
		if b == 0 || b > 0x7f {
			return fmt.Errorf("stored path: byte 0x%02x at index %d: %w", b, i, ErrInvalidPath)
		}
	}
	e.Path = strings.ReplaceAll(string(raw), `\`, string(os.PathSeparator))
	e.Offset = binary.LittleEndian.Uint32(data[PathSize:EntrySize])
	return nil
}
