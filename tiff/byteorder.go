package tiff

import (
	"encoding/binary"
)

// ByteOrder is the byte order declared by a TIFF header.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// HeaderSize is the length of a TIFF header: byte order mark, magic number and first IFD offset.
const HeaderSize = 8

// Magic is the 16-bit value following the byte order mark in a valid TIFF header.
const Magic uint16 = 0x002A

// DetectByteOrder returns LittleEndian if header starts with "II" and BigEndian otherwise.
func DetectByteOrder(header []byte) ByteOrder {

	if len(header) >= 2 && header[0] == 'I' && header[1] == 'I' {
		return LittleEndian
	}

	return BigEndian
}

func (o ByteOrder) String() string {

	switch o {
	case LittleEndian:
		return "II"
	default:
		return "MM"
	}
}

func (o ByteOrder) order() binary.ByteOrder {

	if o == LittleEndian {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// Uint16 reads a 16-bit value at offset. It returns false if the value does not fit in b.
func (o ByteOrder) Uint16(b []byte, offset int) (uint16, bool) {

	if offset < 0 || offset > len(b)-2 {
		return 0, false
	}

	return o.order().Uint16(b[offset:]), true
}

// Uint32 reads a 32-bit value at offset. It returns false if the value does not fit in b.
func (o ByteOrder) Uint32(b []byte, offset int) (uint32, bool) {

	if offset < 0 || offset > len(b)-4 {
		return 0, false
	}

	return o.order().Uint32(b[offset:]), true
}
