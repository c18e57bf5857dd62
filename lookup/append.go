package lookup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tidwall/gjson"
)

// AppendLookupFunc adds zero or more entries derived from a record to a lookup table.
type AppendLookupFunc func(context.Context, *sync.Map, []byte) error

// FingerprintAppendLookupFunc maps the fingerprint hash of an inspect record (JSON or
// GeoJSON) to the image path it was derived from.
func FingerprintAppendLookupFunc(ctx context.Context, lu *sync.Map, body []byte) error {

	return appendFirst(lu, body,
		[]string{"fingerprint.hash", "properties.media:fingerprint"},
	)
}

// ImageHashAppendLookupFunc maps the average perceptual hash of an inspect record (JSON
// or GeoJSON) to the image path it was derived from.
func ImageHashAppendLookupFunc(ctx context.Context, lu *sync.Map, body []byte) error {

	return appendFirst(lu, body,
		[]string{`imagehashes.#(approach=="avg").hash`, "properties.media:imagehash_avg"},
	)
}

func appendFirst(lu *sync.Map, body []byte, key_paths []string) error {

	path_rsp := gjson.GetBytes(body, "path")

	if !path_rsp.Exists() {
		path_rsp = gjson.GetBytes(body, "properties.media:path")
	}

	if !path_rsp.Exists() {
		slog.Debug("Record is missing path")
		return nil
	}

	for _, p := range key_paths {

		rsp := gjson.GetBytes(body, p)

		if !rsp.Exists() || rsp.String() == "" {
			continue
		}

		_, exists := lu.LoadOrStore(rsp.String(), path_rsp.String())

		if exists {
			slog.Debug("Existing lookup key", "key", rsp.String(), "path", path_rsp.String())
		}

		return nil
	}

	return nil
}
