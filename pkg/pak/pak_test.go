package pak

import (
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	t.Run("EncodeDecodeRoundTrip", func(t *testing.T) {
		original := Entry{
			Path:   filepath.Join("maps", "level1.dat"),
			Offset: 480,
		}

		data, err := original.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, EntrySize)

		// Stored form uses backslash separators and NUL padding.
		assert.Equal(t, `maps\level1.dat`, string(data[:len(`maps\level1.dat`)]))
		for _, b := range data[len(`maps\level1.dat`):PathSize] {
			assert.Zero(t, b)
		}
		assert.Equal(t, uint32(480), binary.LittleEndian.Uint32(data[PathSize:]))

		var decoded Entry
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.Equal(t, original, decoded)
	})

	t.Run("MaxLengthPath", func(t *testing.T) {
		// 63 bytes plus the NUL terminator exactly fills the field.
		e := Entry{Path: strings.Repeat("a", PathSize-1), Offset: 72}

		data, err := e.MarshalBinary()
		require.NoError(t, err)

		var decoded Entry
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.Equal(t, e, decoded)
	})

	t.Run("PathTooLong", func(t *testing.T) {
		e := Entry{Path: strings.Repeat("a", PathSize), Offset: 72}
		err := e.Validate()
		require.ErrorIs(t, err, ErrPathTooLong)

		_, err = e.MarshalBinary()
		require.ErrorIs(t, err, ErrPathTooLong)
	})

	t.Run("NonASCIIPath", func(t *testing.T) {
		e := Entry{Path: "café.dat", Offset: 72}
		require.ErrorIs(t, e.Validate(), ErrInvalidPath)
	})

	t.Run("EmptyPath", func(t *testing.T) {
		e := Entry{Offset: 72}
		require.ErrorIs(t, e.Validate(), ErrInvalidPath)
	})

	t.Run("DecodeNonASCII", func(t *testing.T) {
		data := make([]byte, EntrySize)
		copy(data, "bad")
		data[1] = 0x80

		var e Entry
		require.ErrorIs(t, e.DecodeFrom(data), ErrInvalidPath)
	})

	t.Run("DecodeShortBuffer", func(t *testing.T) {
		var e Entry
		require.ErrorIs(t, e.DecodeFrom(make([]byte, EntrySize-1)), ErrTruncated)
	})

	t.Run("SeparatorNormalization", func(t *testing.T) {
		data := make([]byte, EntrySize)
		copy(data, `sounds\fx\boom.wav`)
		binary.LittleEndian.PutUint32(data[PathSize:], 1000)

		var e Entry
		require.NoError(t, e.DecodeFrom(data))
		assert.Equal(t, filepath.Join("sounds", "fx", "boom.wav"), e.Path)
		assert.Equal(t, uint32(1000), e.Offset)
	})
}

func TestTrailer(t *testing.T) {
	first := Trailer()
	require.Len(t, first, TrailerSize)

	// Callers must not be able to corrupt the shared constant.
	first[0] = 0xff
	assert.Equal(t, byte(0x00), Trailer()[0])
	assert.Equal(t, byte(0x59), Trailer()[64])
}

func TestEntryPathHostForm(t *testing.T) {
	// An in-memory path already using host separators encodes with
	// backslashes regardless of platform.
	e := Entry{Path: filepath.Join("a", "b", "c.txt"), Offset: 72}
	data, err := e.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, `a\b\c.txt`, strings.TrimRight(string(data[:PathSize]), "\x00"))
}
