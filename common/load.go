package common

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// DefaultMaxImageBytes is the largest number of bytes read from the start of an image.
const DefaultMaxImageBytes int64 = 50 * 1024 * 1024

// ReadImage returns up to max_bytes from the start of the file at path in bucket. A value
// of zero or less for max_bytes means DefaultMaxImageBytes.
func ReadImage(ctx context.Context, bucket *blob.Bucket, path string, max_bytes int64) ([]byte, error) {

	if max_bytes <= 0 {
		max_bytes = DefaultMaxImageBytes
	}

	r, err := bucket.NewRangeReader(ctx, path, 0, max_bytes, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to create reader for %s, %w", path, err)
	}

	defer r.Close()

	body, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to read %s, %w", path, err)
	}

	return body, nil
}
