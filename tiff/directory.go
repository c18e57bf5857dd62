package tiff

// EntrySize is the length of a single IFD entry: tag (2), type (2), count (4), value or offset (4).
const EntrySize = 12

// Entry is a decoded IFD entry. Only LONG values are decoded; every other type is
// recorded as present without interpreting its value bytes.
type Entry struct {
	// The tag identifier.
	Tag uint16
	// The TIFF type code.
	Type uint16
	// The 32-bit value (or offset) when Type is TypeLong, zero otherwise.
	Value uint32
}

// IsLong reports whether the entry carries a decoded LONG value.
func (e Entry) IsLong() bool {
	return e.Type == TypeLong
}

// Directory is a single decoded Image File Directory.
type Directory struct {
	entries []Entry
	index   map[uint16]int
}

// Has reports whether tag is present in the directory.
func (d *Directory) Has(tag uint16) bool {

	if d == nil {
		return false
	}

	_, ok := d.index[tag]
	return ok
}

// HasAll reports whether every one of tags is present in the directory.
func (d *Directory) HasAll(tags ...uint16) bool {

	for _, t := range tags {
		if !d.Has(t) {
			return false
		}
	}

	return true
}

// HasAny reports whether at least one of tags is present in the directory.
func (d *Directory) HasAny(tags ...uint16) bool {

	for _, t := range tags {
		if d.Has(t) {
			return true
		}
	}

	return false
}

// Long returns the LONG value stored for tag. The second value is false if the tag is
// absent or was not of type LONG.
func (d *Directory) Long(tag uint16) (uint32, bool) {

	if d == nil {
		return 0, false
	}

	i, ok := d.index[tag]

	if !ok || !d.entries[i].IsLong() {
		return 0, false
	}

	return d.entries[i].Value, true
}

// Entries returns the directory's entries in the order they were first encountered.
func (d *Directory) Entries() []Entry {

	if d == nil {
		return nil
	}

	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of distinct tags in the directory.
func (d *Directory) Len() int {

	if d == nil {
		return 0
	}

	return len(d.entries)
}

func (d *Directory) set(e Entry) {

	// a repeated tag keeps its first position and takes the latest value
	i, ok := d.index[e.Tag]

	if ok {
		d.entries[i] = e
		return
	}

	d.index[e.Tag] = len(d.entries)
	d.entries = append(d.entries, e)
}

// ParseDirectory decodes the IFD starting at offset in b using byte order o. Offsets are
// relative to the start of b, which is expected to be the start of a TIFF header.
//
// ParseDirectory never fails: an offset outside b yields an empty directory and entries
// that would extend past the end of b are dropped, as is everything after them.
func ParseDirectory(b []byte, offset int, o ByteOrder) *Directory {

	d := &Directory{
		entries: make([]Entry, 0),
		index:   make(map[uint16]int),
	}

	count, ok := o.Uint16(b, offset)

	if !ok {
		return d
	}

	for i := 0; i < int(count); i++ {

		p := offset + 2 + EntrySize*i

		if p+EntrySize > len(b) {
			break
		}

		tag, _ := o.Uint16(b, p)
		typ, _ := o.Uint16(b, p+2)

		e := Entry{
			Tag:  tag,
			Type: typ,
		}

		if typ == TypeLong {
			e.Value, _ = o.Uint32(b, p+8)
		}

		d.set(e)
	}

	return d
}

// Header is a decoded TIFF header.
type Header struct {
	ByteOrder ByteOrder
	Magic     uint16
	// Offset of the first IFD, relative to the start of the header.
	FirstIFD uint32
}

// Valid reports whether the header carries the TIFF magic number.
func (h Header) Valid() bool {
	return h.Magic == Magic
}

// ParseHeader decodes the TIFF header at the start of b. It returns false if b is shorter
// than HeaderSize.
func ParseHeader(b []byte) (Header, bool) {

	if len(b) < HeaderSize {
		return Header{}, false
	}

	o := DetectByteOrder(b)

	magic, _ := o.Uint16(b, 2)
	first, _ := o.Uint32(b, 4)

	h := Header{
		ByteOrder: o,
		Magic:     magic,
		FirstIFD:  first,
	}

	return h, true
}
