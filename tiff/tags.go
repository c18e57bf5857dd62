package tiff

import (
	"slices"
)

// TIFF / EXIF 2.3 tag identifiers used to classify images.
const (
	TagMake         uint16 = 0x010F
	TagModel        uint16 = 0x0110
	TagExifIFD      uint16 = 0x8769
	TagGPSIFD       uint16 = 0x8825
	TagFocalLength  uint16 = 0x920A
	TagSensorWidth  uint16 = 0xA002
	TagGPSLatitude  uint16 = 0x0002
	TagGPSLongitude uint16 = 0x0004
	TagGPSAltitude  uint16 = 0x0006
)

// TypeLong is the TIFF type code for an unsigned 32-bit integer.
const TypeLong uint16 = 4

var known_tags = map[string]uint16{
	"make":          TagMake,
	"model":         TagModel,
	"exif_ifd":      TagExifIFD,
	"gps_ifd":       TagGPSIFD,
	"focal_length":  TagFocalLength,
	"sensor_width":  TagSensorWidth,
	"gps_latitude":  TagGPSLatitude,
	"gps_longitude": TagGPSLongitude,
	"gps_altitude":  TagGPSAltitude,
}

// KnownTag returns the tag identifier for a semantic name (for example "make" or "gps_altitude").
func KnownTag(name string) (uint16, bool) {
	t, ok := known_tags[name]
	return t, ok
}

// KnownTagNames returns the names understood by KnownTag.
func KnownTagNames() []string {

	names := make([]string, 0, len(known_tags))

	for n := range known_tags {
		names = append(names, n)
	}

	slices.Sort(names)
	return names
}
