package common

/*

Buckets are opened as one-offs by whoever needs them and closed by the same code.
There is no shared pool: closing a pooled bucket would break every other holder of
it.

*/

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// ErrFolderNotFound is returned by OpenBucket when a local folder does not exist.
var ErrFolderNotFound = errors.New("Folder not found")

// IsBucketURI reports whether source is a gocloud.dev/blob URI rather than a local path.
func IsBucketURI(source string) bool {
	return strings.Contains(source, "://")
}

// OpenBucket opens source, which may be either a gocloud.dev/blob URI or the path to a
// local folder. Local folders must exist.
func OpenBucket(ctx context.Context, source string) (*blob.Bucket, error) {

	if IsBucketURI(source) {

		bucket, err := blob.OpenBucket(ctx, source)

		if err != nil {
			return nil, fmt.Errorf("Failed to open bucket for %s, %w", source, err)
		}

		return bucket, nil
	}

	abs_path, err := filepath.Abs(source)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive absolute path for %s, %w", source, err)
	}

	info, err := os.Stat(abs_path)

	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, source)
	}

	// Don't write .attrs sidecar files next to reports.
	fb_opts := &fileblob.Options{
		Metadata: fileblob.MetadataDontWrite,
	}

	bucket, err := fileblob.OpenBucket(abs_path, fb_opts)

	if err != nil {
		return nil, fmt.Errorf("Failed to open folder %s, %w", abs_path, err)
	}

	return bucket, nil
}
