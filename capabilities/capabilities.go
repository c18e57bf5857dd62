package capabilities

import (
	"github.com/sfomuseum/go-media-metadata/tiff"
)

// Capabilities describes the metadata an image carries.
type Capabilities struct {
	// GPS latitude, longitude and altitude are all present in the GPS IFD.
	GPS bool `json:"has_gps_xyz"`
	// Roll, pitch and yaw markers are present anywhere in the file.
	Orientation bool `json:"has_camera_orientation"`
	// Make and model are present along with a focal length or sensor width.
	Sensor bool `json:"has_sensor_info"`
}

// Classify derives Capabilities from the leading bytes of a JPEG file. It never fails:
// anything that is not a JPEG, or whose EXIF data is missing or malformed, yields false
// flags.
func Classify(b []byte) Capabilities {

	c := Capabilities{}

	if !IsJPEG(b) {
		return c
	}

	c.Orientation = HasOrientation(b)

	block, ok := LocateExif(b)

	if !ok {
		return c
	}

	h, ok := tiff.ParseHeader(block)

	if !ok || !h.Valid() {
		return c
	}

	o := h.ByteOrder
	ifd0 := tiff.ParseDirectory(block, offset(h.FirstIFD), o)

	c.Sensor = hasSensor(block, ifd0, o)
	c.GPS = hasGPS(block, ifd0, o)

	return c
}

func hasSensor(block []byte, ifd0 *tiff.Directory, o tiff.ByteOrder) bool {

	if !ifd0.HasAll(tiff.TagMake, tiff.TagModel) {
		return false
	}

	exif_offset, ok := ifd0.Long(tiff.TagExifIFD)

	if !ok {
		return false
	}

	sub := tiff.ParseDirectory(block, offset(exif_offset), o)
	return sub.HasAny(tiff.TagFocalLength, tiff.TagSensorWidth)
}

func hasGPS(block []byte, ifd0 *tiff.Directory, o tiff.ByteOrder) bool {

	gps_offset, ok := ifd0.Long(tiff.TagGPSIFD)

	if !ok {
		return false
	}

	sub := tiff.ParseDirectory(block, offset(gps_offset), o)
	return sub.HasAll(tiff.TagGPSLatitude, tiff.TagGPSLongitude, tiff.TagGPSAltitude)
}

// offset converts a TIFF offset to an int, mapping values that overflow to -1.
func offset(v uint32) int {

	i := int(v)

	if i < 0 || uint64(i) != uint64(v) {
		return -1
	}

	return i
}
