package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/sfomuseum/go-media-metadata/capabilities"
	"github.com/sfomuseum/go-media-metadata/common"
	"github.com/sfomuseum/go-media-metadata/operations/gather"
	"gocloud.dev/blob"
)

// ErrNoImages is returned by CheckImages when a bucket contains no JPEG images.
var ErrNoImages = errors.New("No JPEGs found")

// Row is the classification of a single image.
type Row struct {
	// The base name of the image.
	Name string
	// The path of the image relative to the bucket root.
	Path string
	// The outcome of classifying the image.
	Result capabilities.Result
}

// Capabilities returns the row's capabilities, all false if the image could not be classified.
func (r *Row) Capabilities() capabilities.Capabilities {
	return r.Result.Capabilities()
}

// ProgressFunc is invoked after each image is classified. index starts at 1.
type ProgressFunc func(ctx context.Context, index int, total int, row *Row) error

// CheckImagesOptions defines options for the CheckImagesWithOptions method.
type CheckImagesOptions struct {
	// The maximum number of bytes to read from the start of each image. Zero means common.DefaultMaxImageBytes.
	MaxImageBytes int64
	// An optional ProgressFunc invoked as each image is classified.
	Progress ProgressFunc
}

// CheckImages classifies every JPEG image in bucket using default options.
func CheckImages(ctx context.Context, bucket *blob.Bucket) ([]*Row, error) {
	opts := &CheckImagesOptions{}
	return CheckImagesWithOptions(ctx, bucket, opts)
}

// CheckImagesWithOptions classifies every JPEG image in bucket, one at a time and in
// crawl order. Failing to read or classify an individual image does not stop the batch;
// errors are only returned if the bucket cannot be listed, if it contains no images or
// if the Progress callback fails.
func CheckImagesWithOptions(ctx context.Context, bucket *blob.Bucket, opts *CheckImagesOptions) ([]*Row, error) {

	keys, err := gather.GatherImages(ctx, bucket)

	if err != nil {
		return nil, fmt.Errorf("Failed to gather images, %w", err)
	}

	if len(keys) == 0 {
		return nil, ErrNoImages
	}

	total := len(keys)
	rows := make([]*Row, total)

	for i, key := range keys {

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// pass
		}

		row := &Row{
			Name:   path.Base(key),
			Path:   key,
			Result: ClassifyImage(ctx, bucket, key, opts.MaxImageBytes),
		}

		if !row.Result.OK() {
			slog.Debug("Failed to classify image", "path", key, "error", row.Result.Err)
		}

		rows[i] = row

		if opts.Progress != nil {

			err := opts.Progress(ctx, i+1, total, row)

			if err != nil {
				return nil, fmt.Errorf("Failed to report progress for %s, %w", key, err)
			}
		}
	}

	return rows, nil
}

// ClassifyImage reads up to max_bytes from the start of the image at key and classifies
// it. Read failures and panics are reported in the Result's Err field.
func ClassifyImage(ctx context.Context, bucket *blob.Bucket, key string, max_bytes int64) (rsp capabilities.Result) {

	defer func() {

		r := recover()

		if r != nil {
			rsp = capabilities.Failed(fmt.Errorf("Classification of %s panicked, %v", key, r))
		}
	}()

	body, err := common.ReadImage(ctx, bucket, key, max_bytes)

	if err != nil {
		return capabilities.Failed(err)
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("Classified image", "path", key, "missing", capabilities.MissingTags(body))
	}

	return capabilities.Succeeded(capabilities.Classify(body))
}

// ProgressLine formats a console progress line for row.
func ProgressLine(index int, total int, row *Row) string {
	c := row.Capabilities()
	return fmt.Sprintf("[%d/%d] %s... GPS:%t, Orient:%t, Sensor:%t", index, total, row.Name, c.GPS, c.Orientation, c.Sensor)
}
