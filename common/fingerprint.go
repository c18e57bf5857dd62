package common

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// Fingerprint identifies the contents of a file.
type Fingerprint struct {
	// The hex-encoded SHA-1 hash of the file's contents.
	Hash string `json:"hash"`
	// The size of the file in bytes.
	Size int64 `json:"size"`
}

// FingerprintFile generates a SHA-1 Fingerprint of a file stored in a blob.Bucket instance.
func FingerprintFile(ctx context.Context, bucket *blob.Bucket, path string) (*Fingerprint, error) {

	fh, err := bucket.NewReader(ctx, path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to create reader for %s, %w", path, err)
	}

	defer fh.Close()

	return FingerprintReader(fh)
}

// FingerprintReader generates a SHA-1 Fingerprint of everything read from r.
func FingerprintReader(r io.Reader) (*Fingerprint, error) {

	h := sha1.New()

	n, err := io.Copy(h, r)

	if err != nil {
		return nil, fmt.Errorf("Failed to hash contents, %w", err)
	}

	fp := &Fingerprint{
		Hash: hex.EncodeToString(h.Sum(nil)),
		Size: n,
	}

	return fp, nil
}
