// Package fixtures builds synthetic JPEG files with EXIF and XMP metadata for tests.
package fixtures

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
)

const (
	TypeASCII    uint16 = 2
	TypeShort    uint16 = 3
	TypeLong     uint16 = 4
	TypeRational uint16 = 5
)

// Entry is an IFD entry to encode. Values holds SHORT and LONG values, or numerator and
// denominator pairs for RATIONAL entries. Text holds ASCII values.
type Entry struct {
	Tag    uint16
	Type   uint16
	Values []uint32
	Text   string
}

func ASCII(tag uint16, s string) Entry {
	return Entry{Tag: tag, Type: TypeASCII, Text: s}
}

func Long(tag uint16, v uint32) Entry {
	return Entry{Tag: tag, Type: TypeLong, Values: []uint32{v}}
}

func Short(tag uint16, v uint16) Entry {
	return Entry{Tag: tag, Type: TypeShort, Values: []uint32{uint32(v)}}
}

// Rational returns a RATIONAL entry from numerator/denominator pairs.
func Rational(tag uint16, pairs ...uint32) Entry {
	return Entry{Tag: tag, Type: TypeRational, Values: pairs}
}

func (e Entry) count() uint32 {

	switch e.Type {
	case TypeASCII:
		return uint32(len(e.Text) + 1)
	case TypeRational:
		return uint32(len(e.Values) / 2)
	default:
		return uint32(len(e.Values))
	}
}

func (e Entry) encode(bo binary.ByteOrder) []byte {

	switch e.Type {
	case TypeASCII:
		return append([]byte(e.Text), 0x00)
	case TypeShort:
		b := make([]byte, 2*len(e.Values))
		for i, v := range e.Values {
			bo.PutUint16(b[2*i:], uint16(v))
		}
		return b
	default:
		b := make([]byte, 4*len(e.Values))
		for i, v := range e.Values {
			bo.PutUint32(b[4*i:], v)
		}
		return b
	}
}

// Options describes the metadata to write. A nil Exif or GPS slice omits that sub-IFD
// and its pointer from IFD0.
type Options struct {
	ByteOrder binary.ByteOrder
	IFD0      []Entry
	Exif      []Entry
	GPS       []Entry
	// Raw XMP packet written to its own APP1 segment.
	XMP string
	// Leave out the EXIF APP1 segment entirely.
	NoExif bool
}

const (
	tagExifIFD uint16 = 0x8769
	tagGPSIFD  uint16 = 0x8825
)

func ifdSize(n int) int {
	return 2 + 12*n + 4
}

// TIFF returns a TIFF header followed by IFD0, the optional Exif and GPS sub-IFDs and
// an area holding values too large to fit in an entry.
func TIFF(opts Options) []byte {

	bo := opts.ByteOrder

	if bo == nil {
		bo = binary.LittleEndian
	}

	ifd0 := append([]Entry{}, opts.IFD0...)

	n0 := len(ifd0)

	if opts.Exif != nil {
		n0 += 1
	}

	if opts.GPS != nil {
		n0 += 1
	}

	ifd0_offset := 8
	exif_offset := ifd0_offset + ifdSize(n0)
	gps_offset := exif_offset

	if opts.Exif != nil {
		gps_offset += ifdSize(len(opts.Exif))
	}

	data_offset := gps_offset

	if opts.GPS != nil {
		data_offset += ifdSize(len(opts.GPS))
	}

	if opts.Exif != nil {
		ifd0 = append(ifd0, Long(tagExifIFD, uint32(exif_offset)))
	}

	if opts.GPS != nil {
		ifd0 = append(ifd0, Long(tagGPSIFD, uint32(gps_offset)))
	}

	body := new(bytes.Buffer)
	data := new(bytes.Buffer)

	writeIFD := func(entries []Entry) {

		b := make([]byte, ifdSize(len(entries)))
		bo.PutUint16(b, uint16(len(entries)))

		for i, e := range entries {

			p := 2 + 12*i
			v := e.encode(bo)

			bo.PutUint16(b[p:], e.Tag)
			bo.PutUint16(b[p+2:], e.Type)
			bo.PutUint32(b[p+4:], e.count())

			if len(v) <= 4 {
				copy(b[p+8:], v)
				continue
			}

			bo.PutUint32(b[p+8:], uint32(data_offset+data.Len()))
			data.Write(v)

			if data.Len()%2 == 1 {
				data.WriteByte(0x00)
			}
		}

		body.Write(b)
	}

	header := make([]byte, 8)

	if bo == binary.LittleEndian {
		copy(header, "II")
	} else {
		copy(header, "MM")
	}

	bo.PutUint16(header[2:], 0x002A)
	bo.PutUint32(header[4:], uint32(ifd0_offset))

	body.Write(header)
	writeIFD(ifd0)

	if opts.Exif != nil {
		writeIFD(opts.Exif)
	}

	if opts.GPS != nil {
		writeIFD(opts.GPS)
	}

	body.Write(data.Bytes())
	return body.Bytes()
}

// JPEG returns a small decodable JPEG image carrying the metadata described by opts.
func JPEG(opts Options) []byte {

	im := image.NewGray(image.Rect(0, 0, 16, 16))

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			im.SetGray(x, y, color.Gray{Y: uint8(x * y)})
		}
	}

	enc := new(bytes.Buffer)
	jpeg.Encode(enc, im, nil)

	encoded := enc.Bytes()

	out := new(bytes.Buffer)
	out.Write(encoded[:2])

	if !opts.NoExif {
		payload := append([]byte("Exif\x00\x00"), TIFF(opts)...)
		writeSegment(out, 0xE1, payload)
	}

	if opts.XMP != "" {
		payload := append([]byte("http://ns.adobe.com/xap/1.0/\x00"), opts.XMP...)
		writeSegment(out, 0xE1, payload)
	}

	out.Write(encoded[2:])
	return out.Bytes()
}

func writeSegment(out *bytes.Buffer, marker byte, payload []byte) {

	length := make([]byte, 2)
	binary.BigEndian.PutUint16(length, uint16(len(payload)+2))

	out.Write([]byte{0xFF, marker})
	out.Write(length)
	out.Write(payload)
}

// DroneXMP is an XMP packet carrying gimbal roll, pitch and yaw attributes.
const DroneXMP = `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` +
	`<rdf:Description xmlns:drone-dji="http://www.dji.com/drone-dji/1.0/" ` +
	`drone-dji:GimbalRollDegree="+0.00" drone-dji:GimbalPitchDegree="-90.00" drone-dji:GimbalYawDegree="+12.30"/>` +
	`</rdf:RDF></x:xmpmeta>`

// SensorIFD0 returns make and model entries.
func SensorIFD0() []Entry {
	return []Entry{
		ASCII(0x010F, "DJI"),
		ASCII(0x0110, "FC6310"),
	}
}

// SensorExif returns a focal length entry.
func SensorExif() []Entry {
	return []Entry{
		Rational(0x920A, 880, 100),
	}
}

// GPS returns latitude, longitude and altitude entries (with their reference tags)
// for a point near San Francisco.
func GPS() []Entry {
	return []Entry{
		ASCII(0x0001, "N"),
		Rational(0x0002, 37, 1, 37, 1, 0, 1),
		ASCII(0x0003, "W"),
		Rational(0x0004, 122, 1, 23, 1, 0, 1),
		Rational(0x0006, 12000, 100),
	}
}

// Full returns options for an image with GPS, orientation and sensor metadata.
func Full(bo binary.ByteOrder) Options {
	return Options{
		ByteOrder: bo,
		IFD0:      SensorIFD0(),
		Exif:      SensorExif(),
		GPS:       GPS(),
		XMP:       DroneXMP,
	}
}

// Without returns entries with the given tags removed.
func Without(entries []Entry, tags ...uint16) []Entry {

	out := make([]Entry, 0, len(entries))

	for _, e := range entries {

		skip := false

		for _, t := range tags {
			if e.Tag == t {
				skip = true
				break
			}
		}

		if !skip {
			out = append(out, e)
		}
	}

	return out
}
