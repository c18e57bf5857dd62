package gather

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
)

// CrawlImagesCallbackFunc is invoked with the key of each JPEG image found by CrawlImages.
type CrawlImagesCallbackFunc func(context.Context, string) error

var jpeg_extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// IsJPEG reports whether path has a ".jpg" or ".jpeg" extension, ignoring case.
func IsJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return jpeg_extensions[ext]
}

// GatherImages returns the keys of every JPEG image in bucket, in crawl order.
func GatherImages(ctx context.Context, bucket *blob.Bucket) ([]string, error) {

	keys := make([]string, 0)

	cb := func(ctx context.Context, key string) error {
		keys = append(keys, key)
		return nil
	}

	err := CrawlImages(ctx, bucket, cb)

	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Iterate through all the items stored in a blob.Bucket instance, descending in to
// "directories" as they are encountered, and dispatch the key of every JPEG image to a
// user-defined callback. Keys are dispatched one at a time in listing order.
func CrawlImages(ctx context.Context, bucket *blob.Bucket, cb CrawlImagesCallbackFunc) error {

	var list func(context.Context, *blob.Bucket, string) error

	list = func(ctx context.Context, b *blob.Bucket, prefix string) error {

		iter := b.List(&blob.ListOptions{
			Delimiter: "/",
			Prefix:    prefix,
		})

		for {

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				// pass
			}

			obj, err := iter.Next(ctx)

			if err == io.EOF {
				break
			}

			if err != nil {
				return fmt.Errorf("Failed to list %s, %w", prefix, err)
			}

			if obj.IsDir {

				err := list(ctx, b, obj.Key)

				if err != nil {
					return err
				}

				continue
			}

			if !IsJPEG(obj.Key) {
				continue
			}

			err = cb(ctx, obj.Key)

			if err != nil {
				return fmt.Errorf("Failed to process %s, %w", obj.Key, err)
			}
		}

		return nil
	}

	return list(ctx, bucket, "")
}
