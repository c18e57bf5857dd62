package capabilities

import (
	"bytes"

	"github.com/sfomuseum/go-media-metadata/tiff"
)

// StartOfImage is the marker every JPEG file begins with.
var StartOfImage = []byte{0xFF, 0xD8}

// ExifSignature precedes the TIFF header inside a JPEG APP1 segment.
var ExifSignature = []byte("Exif\x00\x00")

// IsJPEG reports whether b begins with the JPEG start-of-image marker.
func IsJPEG(b []byte) bool {
	return bytes.HasPrefix(b, StartOfImage)
}

// LocateExif returns the bytes following the first Exif signature found anywhere in b,
// starting with the TIFF header. It returns false if there is no signature or if what
// follows it is too short to hold a TIFF header.
func LocateExif(b []byte) ([]byte, bool) {

	idx := bytes.Index(b, ExifSignature)

	if idx == -1 {
		return nil, false
	}

	block := b[idx+len(ExifSignature):]

	if len(block) < tiff.HeaderSize {
		return nil, false
	}

	return block, true
}
