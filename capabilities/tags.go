package capabilities

import (
	"github.com/sfomuseum/go-media-metadata/tiff"
)

// Known tags that live in a sub-IFD. Everything else is read from IFD0.
var exif_tags = map[string]bool{
	"focal_length": true,
	"sensor_width": true,
}

var gps_tags = map[string]bool{
	"gps_latitude":  true,
	"gps_longitude": true,
	"gps_altitude":  true,
}

// MissingTags returns the names of the known tags, in name order, that are absent from the
// EXIF data in b. Every name is returned if b is not a JPEG or has no usable EXIF data.
func MissingTags(b []byte) []string {

	names := tiff.KnownTagNames()

	if !IsJPEG(b) {
		return names
	}

	block, ok := LocateExif(b)

	if !ok {
		return names
	}

	h, ok := tiff.ParseHeader(block)

	if !ok || !h.Valid() {
		return names
	}

	o := h.ByteOrder
	ifd0 := tiff.ParseDirectory(block, offset(h.FirstIFD), o)

	var exif *tiff.Directory
	var gps *tiff.Directory

	exif_offset, ok := ifd0.Long(tiff.TagExifIFD)

	if ok {
		exif = tiff.ParseDirectory(block, offset(exif_offset), o)
	}

	gps_offset, ok := ifd0.Long(tiff.TagGPSIFD)

	if ok {
		gps = tiff.ParseDirectory(block, offset(gps_offset), o)
	}

	missing := make([]string, 0)

	for _, name := range names {

		tag, _ := tiff.KnownTag(name)
		d := ifd0

		switch {
		case exif_tags[name]:
			d = exif
		case gps_tags[name]:
			d = gps
		}

		if !d.Has(tag) {
			missing = append(missing, name)
		}
	}

	return missing
}
