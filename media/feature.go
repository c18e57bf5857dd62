package media

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/sfomuseum/go-media-metadata/operations/inspect"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const empty_feature = `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0.0,0.0]}}`

// NewImageFeature returns a GeoJSON Feature describing an inspected image. The geometry is
// the image's EXIF location when one was decoded; otherwise it is null island and
// mz:is_approximate is set to 1.
func NewImageFeature(rec *inspect.Record) ([]byte, error) {

	if rec == nil {
		return nil, errors.New("Missing record")
	}

	body := []byte(empty_feature)

	props := map[string]interface{}{
		"media:path":                   rec.Path,
		"media:name":                   rec.Name,
		"media:medium":                 "image",
		"media:mimetype":               "image/jpeg",
		"media:has_gps_xyz":            rec.Capabilities.GPS,
		"media:has_camera_orientation": rec.Capabilities.Orientation,
		"media:has_sensor_info":        rec.Capabilities.Sensor,
		"mz:is_approximate":            1,
	}

	if rec.Fingerprint != nil {
		props["media:fingerprint"] = rec.Fingerprint.Hash
		props["media:size"] = rec.Fingerprint.Size
	}

	for _, h := range rec.ImageHashes {
		k := fmt.Sprintf("media:imagehash_%s", h.Approach)
		props[k] = h.Hash
	}

	if rec.Error != "" {
		props["media:error"] = rec.Error
	}

	details := rec.Exif

	if details != nil {

		if details.Make != "" {
			props["exif:make"] = details.Make
		}

		if details.Model != "" {
			props["exif:model"] = details.Model
		}

		if details.FocalLength != 0.0 {
			props["exif:focal_length"] = details.FocalLength
		}

		if details.Altitude != nil {
			props["exif:altitude"] = *details.Altitude
		}

		if details.Created != 0 {
			props["media:created"] = details.Created
		}
	}

	var err error

	for _, k := range slices.Sorted(maps.Keys(props)) {

		path := fmt.Sprintf("properties.%s", k)
		body, err = sjson.SetBytes(body, path, props[k])

		if err != nil {
			return nil, fmt.Errorf("Failed to assign %s property, %w", k, err)
		}
	}

	if details.HasLocation() {

		coords := []float64{
			*details.Longitude,
			*details.Latitude,
		}

		body, err = sjson.SetBytes(body, "geometry.coordinates", coords)

		if err != nil {
			return nil, fmt.Errorf("Failed to assign coordinates, %w", err)
		}

		body, err = sjson.SetBytes(body, "properties.mz:is_approximate", 0)

		if err != nil {
			return nil, fmt.Errorf("Failed to assign mz:is_approximate property, %w", err)
		}
	}

	return body, nil
}

// FeatureKey returns the key a feature produced by NewImageFeature should be written to.
func FeatureKey(body []byte) (string, error) {

	rsp := gjson.GetBytes(body, "properties.media:path")

	if !rsp.Exists() {
		return "", errors.New("Missing properties.media:path")
	}

	return fmt.Sprintf("%s.geojson", rsp.String()), nil
}
