package common

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"log/slog"
	"sync"

	"github.com/corona10/goimagehash"
	"gocloud.dev/blob"
)

// ImageHash is the result of a perceptual image hashing operation.
type ImageHash struct {
	// String label describing the image hashing procedure used.
	Approach string `json:"approach"`
	// The hexidecimal hash of an image.
	Hash string `json:"hash"`
}

// DefaultImageHashApproaches are the approaches used by ImageHashes.
var DefaultImageHashApproaches = []string{
	"avg",
	"diff",
}

// ImageHashes generates perceptual hashes for an image stored in a blob.Bucket instance
// using the corona10/goimagehash package.
func ImageHashes(ctx context.Context, bucket *blob.Bucket, im_path string) ([]*ImageHash, error) {

	r, err := bucket.NewReader(ctx, im_path, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to create reader for %s, %w", im_path, err)
	}

	defer r.Close()

	return ImageHashesWithReader(ctx, r, DefaultImageHashApproaches...)
}

// ImageHashesWithReader decodes an image from r and hashes it with each of approaches.
// Approaches that fail are logged and left out of the results.
func ImageHashesWithReader(ctx context.Context, r io.Reader, approaches ...string) ([]*ImageHash, error) {

	im, _, err := image.Decode(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to decode image, %w", err)
	}

	hashes := make([]*ImageHash, len(approaches))
	wg := new(sync.WaitGroup)

	for i, a := range approaches {

		wg.Add(1)

		go func(i int, a string) {

			defer wg.Done()

			rsp, err := imageHash(ctx, im, a)

			if err != nil {
				slog.Error("Failed to hash image", "approach", a, "error", err)
				return
			}

			hashes[i] = rsp

		}(i, a)
	}

	wg.Wait()

	results := make([]*ImageHash, 0, len(hashes))

	for _, h := range hashes {
		if h != nil {
			results = append(results, h)
		}
	}

	return results, nil
}

func imageHash(ctx context.Context, im image.Image, approach string) (*ImageHash, error) {

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// pass
	}

	var h *goimagehash.ImageHash
	var err error

	switch approach {
	case "avg":
		h, err = goimagehash.AverageHash(im)
	case "diff":
		h, err = goimagehash.DifferenceHash(im)
	case "perception":
		h, err = goimagehash.PerceptionHash(im)
	default:
		err = errors.New("Unknown approach")
	}

	if err != nil {
		return nil, fmt.Errorf("Failed to process image hash approach '%s', %w", approach, err)
	}

	rsp := &ImageHash{
		Approach: approach,
		Hash:     h.ToString(),
	}

	return rsp, nil
}
