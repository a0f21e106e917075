package pak

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"
)

// BenchmarkEntry benchmarks fixed-record entry codec operations.
func BenchmarkEntry(b *testing.B) {
	entry := &Entry{Path: "levels/level1.map", Offset: 480}

	b.Run("EncodeTo", func(b *testing.B) {
		buf := make([]byte, EntrySize)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := entry.EncodeTo(buf); err != nil {
				b.Fatal(err)
			}
		}
	})

	data, _ := entry.MarshalBinary()

	b.Run("DecodeFrom", func(b *testing.B) {
		e := &Entry{}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := e.DecodeFrom(data); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkDecode benchmarks parsing a full entry table.
func BenchmarkDecode(b *testing.B) {
	const count = 256

	var buf bytes.Buffer
	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[:], count)
	buf.Write(header[:])

	record := make([]byte, EntrySize)
	offset := uint32(HeaderSize + (count+1)*EntrySize)
	for i := 0; i < count; i++ {
		e := Entry{Path: fmt.Sprintf("assets/file_%03d.dat", i), Offset: offset}
		if err := e.EncodeTo(record); err != nil {
			b.Fatal(err)
		}
		buf.Write(record)
		offset += 1024
	}
	buf.Write(Trailer())
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
