package inspect

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// ExifDetails are the EXIF values behind an image's capabilities.
type ExifDetails struct {
	Make        string   `json:"make,omitempty"`
	Model       string   `json:"model,omitempty"`
	FocalLength float64  `json:"focal_length,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Altitude    *float64 `json:"altitude,omitempty"`
	// Capture time as a Unix timestamp.
	Created int64 `json:"created,omitempty"`
}

// HasLocation reports whether both latitude and longitude were decoded.
func (d *ExifDetails) HasLocation() bool {
	return d != nil && d.Latitude != nil && d.Longitude != nil
}

var register_parsers sync.Once

// DecodeExifDetails decodes EXIF data from the leading bytes of an image using the
// rwcarlsen/goexif package. Values that cannot be decoded are left empty.
func DecodeExifDetails(body []byte) (details *ExifDetails, err error) {

	register_parsers.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})

	defer func() {

		r := recover()

		if r != nil {
			details = nil
			err = fmt.Errorf("Failed to decode EXIF data, %v", r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(body))

	if err != nil {
		return nil, fmt.Errorf("Failed to decode EXIF data, %w", err)
	}

	details = &ExifDetails{
		Make:  stringValue(x, exif.Make),
		Model: stringValue(x, exif.Model),
	}

	focal, ok := ratValue(x, exif.FocalLength)

	if ok {
		details.FocalLength = focal
	}

	lat, lon, err := x.LatLong()

	if err == nil {
		details.Latitude = &lat
		details.Longitude = &lon
	}

	alt, ok := ratValue(x, exif.GPSAltitude)

	if ok {

		ref, err := x.Get(exif.GPSAltitudeRef)

		if err == nil {

			// 1 means below sea level
			v, err := ref.Int(0)

			if err == nil && v == 1 {
				alt = -alt
			}
		}

		details.Altitude = &alt
	}

	t, err := x.DateTime()

	if err == nil {
		details.Created = t.Unix()
	}

	return details, nil
}

func stringValue(x *exif.Exif, name exif.FieldName) string {

	tag, err := x.Get(name)

	if err != nil {
		return ""
	}

	str, err := tag.StringVal()

	if err != nil {
		return ""
	}

	return strings.TrimSpace(strings.TrimRight(str, "\x00"))
}

func ratValue(x *exif.Exif, name exif.FieldName) (float64, bool) {

	tag, err := x.Get(name)

	if err != nil {
		return 0.0, false
	}

	r, err := tag.Rat(0)

	if err != nil {
		return 0.0, false
	}

	f, _ := r.Float64()
	return f, true
}
