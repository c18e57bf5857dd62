package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/sfomuseum/go-media-metadata/capabilities"
	"github.com/sfomuseum/go-media-metadata/common"
	"github.com/sfomuseum/go-media-metadata/operations/gather"
	"gocloud.dev/blob"
)

// Record is a detailed report for a single image.
type Record struct {
	// The path of the image relative to the bucket root.
	Path string `json:"path"`
	// The base name of the image.
	Name string `json:"name"`
	// The image's capabilities, all false if Error is set.
	Capabilities capabilities.Capabilities `json:"capabilities"`
	// A SHA-1 fingerprint of the entire file.
	Fingerprint *common.Fingerprint `json:"fingerprint,omitempty"`
	// Decoded EXIF values, if any.
	Exif *ExifDetails `json:"exif,omitempty"`
	// Perceptual image hashes, if requested.
	ImageHashes []*common.ImageHash `json:"imagehashes,omitempty"`
	// The reason the image could not be read, if any.
	Error string `json:"error,omitempty"`
}

// InspectImagesCallbackFunc is invoked with each Record produced by InspectImagesWithOptions.
type InspectImagesCallbackFunc func(context.Context, *Record) error

// InspectImagesOptions defines options for inspecting images.
type InspectImagesOptions struct {
	// Callback is invoked for every image that is inspected (and not skipped).
	Callback InspectImagesCallbackFunc
	// The maximum number of bytes to read from the start of each image for classification. Zero means common.DefaultMaxImageBytes.
	MaxImageBytes int64
	// Generate perceptual hashes for each image.
	ImageHashes bool
	// The maximum number of images to inspect concurrently. Zero or less means 1.
	Workers int
	// An optional lookup table of fingerprint hashes, and of average image hashes when ImageHashes
	// is true. Images with a key present in the table are skipped.
	Lookup *sync.Map
}

// InspectImages inspects every JPEG image in bucket and dispatches a Record to cb.
func InspectImages(ctx context.Context, bucket *blob.Bucket, cb InspectImagesCallbackFunc) error {

	opts := &InspectImagesOptions{
		Callback: cb,
		Workers:  4,
	}

	return InspectImagesWithOptions(ctx, bucket, opts)
}

// InspectImagesWithOptions inspects every JPEG image in bucket, up to opts.Workers at a
// time. Records are dispatched to opts.Callback as they complete so their order is not
// guaranteed. Callback errors are logged and do not stop the crawl.
func InspectImagesWithOptions(ctx context.Context, bucket *blob.Bucket, opts *InspectImagesOptions) error {

	if opts.Callback == nil {
		return errors.New("Missing callback")
	}

	workers := opts.Workers

	if workers <= 0 {
		workers = 1
	}

	throttle := make(chan bool, workers)
	wg := new(sync.WaitGroup)

	crawl_cb := func(ctx context.Context, key string) error {

		throttle <- true
		wg.Add(1)

		go func(key string) {

			defer func() {
				<-throttle
				wg.Done()
			}()

			rec, skip := InspectImageWithOptions(ctx, bucket, key, opts)

			if skip {
				slog.Debug("Skip previously inspected image", "path", key)
				return
			}

			err := opts.Callback(ctx, rec)

			if err != nil {
				slog.Error("Failed to process record", "path", key, "error", err)
			}

		}(key)

		return nil
	}

	err := gather.CrawlImages(ctx, bucket, crawl_cb)

	wg.Wait()

	if err != nil {
		return fmt.Errorf("Failed to crawl images, %w", err)
	}

	return nil
}

// InspectImage produces a Record for the image at key using default options.
func InspectImage(ctx context.Context, bucket *blob.Bucket, key string) *Record {
	opts := &InspectImagesOptions{}
	rec, _ := InspectImageWithOptions(ctx, bucket, key, opts)
	return rec
}

// InspectImageWithOptions produces a Record for the image at key. The second value is
// true if the image's fingerprint, or its average image hash, was found in opts.Lookup.
// Failures are recorded in the Record rather than returned.
func InspectImageWithOptions(ctx context.Context, bucket *blob.Bucket, key string, opts *InspectImagesOptions) (*Record, bool) {

	logger := slog.Default()
	logger = logger.With("path", key)

	rec := &Record{
		Path: key,
		Name: path.Base(key),
	}

	fp, err := common.FingerprintFile(ctx, bucket, key)

	if err != nil {
		logger.Debug("Failed to fingerprint image", "error", err)
		rec.Error = err.Error()
		return rec, false
	}

	rec.Fingerprint = fp

	if opts.Lookup != nil {

		_, exists := opts.Lookup.Load(fp.Hash)

		if exists {
			return rec, true
		}
	}

	body, err := common.ReadImage(ctx, bucket, key, opts.MaxImageBytes)

	if err != nil {
		logger.Debug("Failed to read image", "error", err)
		rec.Error = err.Error()
		return rec, false
	}

	rec.Capabilities = capabilities.Classify(body)

	details, err := DecodeExifDetails(body)

	if err != nil {
		logger.Debug("No EXIF details", "error", err)
	} else {
		rec.Exif = details
	}

	if opts.ImageHashes {

		hashes, err := common.ImageHashesWithReader(ctx, bytes.NewReader(body), common.DefaultImageHashApproaches...)

		if err != nil {
			logger.Debug("Failed to hash image", "error", err)
		} else {
			rec.ImageHashes = hashes
		}

		if opts.Lookup != nil && lookupImageHash(opts.Lookup, hashes) {
			return rec, true
		}
	}

	return rec, false
}

func lookupImageHash(lu *sync.Map, hashes []*common.ImageHash) bool {

	for _, h := range hashes {

		if h.Approach != "avg" {
			continue
		}

		_, exists := lu.Load(h.Hash)

		if exists {
			return true
		}
	}

	return false
}
