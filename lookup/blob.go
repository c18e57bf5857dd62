package lookup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"gocloud.dev/blob"
)

var record_extensions = map[string]bool{
	".json":    true,
	".geojson": true,
}

// BlobLookerUpper reads inspect records from a gocloud.dev/blob bucket.
type BlobLookerUpper struct {
	LookerUpper
	bucket *blob.Bucket
}

// NewBlobLookerUpper returns a LookerUpper that reads records from bucket. The bucket is
// owned, and closed, by the caller.
func NewBlobLookerUpper(ctx context.Context, bucket *blob.Bucket) (LookerUpper, error) {

	l := &BlobLookerUpper{
		bucket: bucket,
	}

	return l, nil
}

// Append reads every ".json" and ".geojson" file in the bucket, recursively, and passes
// its contents to each of append_funcs.
func (l *BlobLookerUpper) Append(ctx context.Context, lu *sync.Map, append_funcs ...AppendLookupFunc) error {

	bucket_iter := l.bucket.List(nil)

	for {

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			// pass
		}

		obj, err := bucket_iter.Next(ctx)

		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf("Failed to list records, %w", err)
		}

		if !record_extensions[filepath.Ext(obj.Key)] {
			continue
		}

		body, err := l.bucket.ReadAll(ctx, obj.Key)

		if err != nil {
			return fmt.Errorf("Failed to read %s, %w", obj.Key, err)
		}

		for _, f := range append_funcs {

			err := f(ctx, lu, body)

			if err != nil {
				return fmt.Errorf("Failed to append %s, %w", obj.Key, err)
			}
		}
	}

	return nil
}
