package tiff

import (
	"encoding/binary"
	"testing"
)

type testEntry struct {
	tag   uint16
	typ   uint16
	value uint32
}

func encodeDirectory(bo binary.ByteOrder, entries []testEntry) []byte {

	b := make([]byte, 2+EntrySize*len(entries)+4)
	bo.PutUint16(b, uint16(len(entries)))

	for i, e := range entries {
		p := 2 + EntrySize*i
		bo.PutUint16(b[p:], e.tag)
		bo.PutUint16(b[p+2:], e.typ)
		bo.PutUint32(b[p+4:], 1)
		bo.PutUint32(b[p+8:], e.value)
	}

	return b
}

var sample_entries = []testEntry{
	{TagMake, 2, 0x0000_00AA},
	{TagModel, 2, 0x0000_00BB},
	{TagExifIFD, TypeLong, 0x0000_1234},
}

func TestParseDirectoryShortBuffer(t *testing.T) {

	buffers := [][]byte{
		nil,
		{},
		{0x01},
	}

	for _, b := range buffers {

		for _, o := range []ByteOrder{LittleEndian, BigEndian} {

			d := ParseDirectory(b, 0, o)

			if d.Len() != 0 {
				t.Fatalf("Expected empty directory for %d byte buffer, got %d entries", len(b), d.Len())
			}
		}
	}

	b := encodeDirectory(binary.LittleEndian, sample_entries)

	for _, offset := range []int{-1, len(b) - 1, len(b), len(b) + 100} {

		d := ParseDirectory(b, offset, LittleEndian)

		if d.Len() != 0 {
			t.Fatalf("Expected empty directory at offset %d, got %d entries", offset, d.Len())
		}
	}
}

func TestParseDirectory(t *testing.T) {

	orders := map[ByteOrder]binary.ByteOrder{
		LittleEndian: binary.LittleEndian,
		BigEndian:    binary.BigEndian,
	}

	for o, bo := range orders {

		b := encodeDirectory(bo, sample_entries)

		// pad so the directory does not start at zero
		b = append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, b...)

		d := ParseDirectory(b, 4, o)

		if d.Len() != len(sample_entries) {
			t.Fatalf("[%s] Expected %d entries, got %d", o, len(sample_entries), d.Len())
		}

		for i, e := range d.Entries() {

			if e.Tag != sample_entries[i].tag {
				t.Fatalf("[%s] Expected tag %#04x at position %d, got %#04x", o, sample_entries[i].tag, i, e.Tag)
			}
		}

		if !d.HasAll(TagMake, TagModel, TagExifIFD) {
			t.Fatalf("[%s] Expected make, model and exif pointer", o)
		}

		v, ok := d.Long(TagExifIFD)

		if !ok || v != 0x1234 {
			t.Fatalf("[%s] Expected exif pointer 0x1234, got %#x (%t)", o, v, ok)
		}

		_, ok = d.Long(TagMake)

		if ok {
			t.Fatalf("[%s] Make is not a LONG and should not report a value", o)
		}
	}
}

func TestParseDirectoryTruncated(t *testing.T) {

	full := encodeDirectory(binary.BigEndian, sample_entries)

	tests := map[int]int{
		2:                   0,
		2 + EntrySize - 1:   0,
		2 + EntrySize:       1,
		2 + EntrySize*2 + 5: 2,
		2 + EntrySize*3:     3,
		2 + EntrySize*3 + 4: 3,
	}

	for length, expected := range tests {

		d := ParseDirectory(full[:length], 0, BigEndian)

		if d.Len() != expected {
			t.Fatalf("Expected %d entries for %d byte buffer, got %d", expected, length, d.Len())
		}

		for i, e := range d.Entries() {
			if e.Tag != sample_entries[i].tag {
				t.Fatalf("Unexpected tag at position %d: %#04x", i, e.Tag)
			}
		}
	}
}

func TestParseDirectoryWrongOrder(t *testing.T) {

	b := encodeDirectory(binary.LittleEndian, sample_entries)

	// 3 entries read big endian is 0x0300 entries, all but the first few past the end
	d := ParseDirectory(b, 0, BigEndian)

	if d.Len() > len(sample_entries) {
		t.Fatalf("Expected at most %d entries, got %d", len(sample_entries), d.Len())
	}

	if d.Has(TagExifIFD) {
		t.Fatalf("Did not expect exif pointer when decoding with the wrong byte order")
	}
}

func TestParseDirectoryDuplicateTag(t *testing.T) {

	entries := []testEntry{
		{TagGPSIFD, TypeLong, 10},
		{TagMake, 2, 0},
		{TagGPSIFD, TypeLong, 20},
	}

	d := ParseDirectory(encodeDirectory(binary.LittleEndian, entries), 0, LittleEndian)

	if d.Len() != 2 {
		t.Fatalf("Expected 2 distinct tags, got %d", d.Len())
	}

	v, _ := d.Long(TagGPSIFD)

	if v != 20 {
		t.Fatalf("Expected last value for repeated tag, got %d", v)
	}

	if d.Entries()[0].Tag != TagGPSIFD {
		t.Fatalf("Expected repeated tag to keep its first position")
	}
}

func TestParseHeader(t *testing.T) {

	_, ok := ParseHeader([]byte("II*\x00\x08\x00\x00"))

	if ok {
		t.Fatalf("Expected short header to fail")
	}

	h, ok := ParseHeader([]byte("II*\x00\x08\x00\x00\x00"))

	if !ok || !h.Valid() || h.ByteOrder != LittleEndian || h.FirstIFD != 8 {
		t.Fatalf("Unexpected little endian header: %+v", h)
	}

	h, ok = ParseHeader([]byte("MM\x00*\x00\x00\x00\x08"))

	if !ok || !h.Valid() || h.ByteOrder != BigEndian || h.FirstIFD != 8 {
		t.Fatalf("Unexpected big endian header: %+v", h)
	}

	h, _ = ParseHeader([]byte("MM*\x00\x08\x00\x00\x00"))

	if h.Valid() {
		t.Fatalf("Expected magic number check to fail for mismatched byte order")
	}
}

func TestKnownTag(t *testing.T) {

	for _, n := range KnownTagNames() {

		_, ok := KnownTag(n)

		if !ok {
			t.Fatalf("Expected %s to be a known tag", n)
		}
	}

	v, ok := KnownTag("gps_altitude")

	if !ok || v != 0x0006 {
		t.Fatalf("Unexpected value for gps_altitude: %#04x", v)
	}

	_, ok = KnownTag("orientation")

	if ok {
		t.Fatalf("Did not expect orientation to be a known tag")
	}
}
