package gather

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gocloud.dev/blob/fileblob"
)

func TestIsJPEG(t *testing.T) {

	tests := map[string]bool{
		"a.jpg":                    true,
		"a.JPG":                    true,
		"dir/b.jpeg":               true,
		"dir/b.JpEg":               true,
		"c.png":                    false,
		"jpg":                      false,
		"d.jpg.csv":                false,
		"image_metadata_check.csv": false,
	}

	for path, expected := range tests {

		if IsJPEG(path) != expected {
			t.Fatalf("Expected IsJPEG(%s) to be %t", path, expected)
		}
	}
}

func TestGatherImages(t *testing.T) {

	ctx := context.Background()
	root := t.TempDir()

	files := []string{
		"b.jpg",
		"a/one.JPEG",
		"a/z/deep.jpg",
		"a/notes.txt",
		"c.png",
		"d.JPG",
	}

	for _, f := range files {

		path := filepath.Join(root, filepath.FromSlash(f))

		err := os.MkdirAll(filepath.Dir(path), 0755)

		if err != nil {
			t.Fatalf("Failed to create directory for %s, %v", f, err)
		}

		err = os.WriteFile(path, []byte("x"), 0644)

		if err != nil {
			t.Fatalf("Failed to write %s, %v", f, err)
		}
	}

	bucket, err := fileblob.OpenBucket(root, nil)

	if err != nil {
		t.Fatalf("Failed to open bucket, %v", err)
	}

	defer bucket.Close()

	keys, err := GatherImages(ctx, bucket)

	if err != nil {
		t.Fatalf("Failed to gather images, %v", err)
	}

	expected := []string{
		"a/one.JPEG",
		"a/z/deep.jpg",
		"b.jpg",
		"d.JPG",
	}

	if !slices.Equal(keys, expected) {
		t.Fatalf("Expected %v, got %v", expected, keys)
	}
}
