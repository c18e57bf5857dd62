package check

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sfomuseum/go-media-metadata/common"
	"github.com/sfomuseum/go-media-metadata/internal/fixtures"
	"gocloud.dev/blob"
)

func writeFile(t *testing.T, root string, rel string, body []byte) {

	path := filepath.Join(root, filepath.FromSlash(rel))

	err := os.MkdirAll(filepath.Dir(path), 0755)

	if err != nil {
		t.Fatalf("Failed to create directory for %s, %v", rel, err)
	}

	err = os.WriteFile(path, body, 0644)

	if err != nil {
		t.Fatalf("Failed to write %s, %v", rel, err)
	}
}

func openBucket(t *testing.T, root string) *blob.Bucket {

	bucket, err := common.OpenBucket(context.Background(), root)

	if err != nil {
		t.Fatalf("Failed to open bucket for %s, %v", root, err)
	}

	t.Cleanup(func() {
		bucket.Close()
	})

	return bucket
}

func TestCheckImages(t *testing.T) {

	ctx := context.Background()
	root := t.TempDir()

	writeFile(t, root, "corrupt.jpg", []byte{})
	writeFile(t, root, "flights/full.JPG", fixtures.JPEG(fixtures.Full(binary.BigEndian)))
	writeFile(t, root, "plain.jpeg", fixtures.JPEG(fixtures.Options{NoExif: true}))
	writeFile(t, root, "notes.txt", []byte("RollDegree=\"1\""))

	bucket := openBucket(t, root)

	progress := make([]string, 0)

	opts := &CheckImagesOptions{
		Progress: func(ctx context.Context, index int, total int, row *Row) error {
			progress = append(progress, ProgressLine(index, total, row))
			return nil
		},
	}

	for run := 0; run < 2; run++ {

		progress = progress[:0]

		rows, err := CheckImagesWithOptions(ctx, bucket, opts)

		if err != nil {
			t.Fatalf("Failed to check images, %v", err)
		}

		if len(rows) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(rows))
		}

		key, err := WriteReport(ctx, bucket, rows)

		if err != nil {
			t.Fatalf("Failed to write report, %v", err)
		}

		if key != ReportFilename {
			t.Fatalf("Unexpected report key %s", key)
		}

		body, err := os.ReadFile(filepath.Join(root, ReportFilename))

		if err != nil {
			t.Fatalf("Failed to read report, %v", err)
		}

		expected := strings.Join([]string{
			"image_name,image_path,has_gps_xyz,has_camera_orientation,has_sensor_info",
			"corrupt.jpg,corrupt.jpg,false,false,false",
			"full.JPG,flights/full.JPG,true,true,true",
			"plain.jpeg,plain.jpeg,false,false,false",
			"",
		}, "\n")

		if string(body) != expected {
			t.Fatalf("[run %d] Unexpected report:\n%s", run, string(body))
		}

		expected_progress := []string{
			"[1/3] corrupt.jpg... GPS:false, Orient:false, Sensor:false",
			"[2/3] full.JPG... GPS:true, Orient:true, Sensor:true",
			"[3/3] plain.jpeg... GPS:false, Orient:false, Sensor:false",
		}

		if strings.Join(progress, "\n") != strings.Join(expected_progress, "\n") {
			t.Fatalf("[run %d] Unexpected progress: %v", run, progress)
		}

		s := Summarize(rows)

		if s.Total != 3 || s.GPS != 1 || s.Orientation != 1 || s.Sensor != 1 {
			t.Fatalf("Unexpected summary: %s", s)
		}

		if s.String() != "Total: 3 | GPS: 1 | Orient: 1 | Sensor: 1" {
			t.Fatalf("Unexpected summary line: %s", s)
		}
	}

	expected_files := map[string][]string{
		".":       {"corrupt.jpg", "flights", ReportFilename, "notes.txt", "plain.jpeg"},
		"flights": {"full.JPG"},
	}

	for rel, expected := range expected_files {

		entries, err := os.ReadDir(filepath.Join(root, rel))

		if err != nil {
			t.Fatalf("Failed to read %s, %v", rel, err)
		}

		names := make([]string, len(entries))

		for i, e := range entries {
			names[i] = e.Name()
		}

		if strings.Join(names, ",") != strings.Join(expected, ",") {
			t.Fatalf("Unexpected files in %s: %v", rel, names)
		}
	}
}

func TestCheckImagesNoImages(t *testing.T) {

	ctx := context.Background()
	root := t.TempDir()

	writeFile(t, root, "readme.txt", []byte("nothing to see"))

	bucket := openBucket(t, root)

	_, err := CheckImages(ctx, bucket)

	if !errors.Is(err, ErrNoImages) {
		t.Fatalf("Expected ErrNoImages, got %v", err)
	}

	_, err = os.Stat(filepath.Join(root, ReportFilename))

	if !os.IsNotExist(err) {
		t.Fatalf("Did not expect a report to be written")
	}
}

func TestCheckImagesMaxBytes(t *testing.T) {

	ctx := context.Background()
	root := t.TempDir()

	writeFile(t, root, "full.jpg", fixtures.JPEG(fixtures.Full(binary.LittleEndian)))

	bucket := openBucket(t, root)

	opts := &CheckImagesOptions{
		MaxImageBytes: 4,
	}

	rows, err := CheckImagesWithOptions(ctx, bucket, opts)

	if err != nil {
		t.Fatalf("Failed to check images, %v", err)
	}

	c := rows[0].Capabilities()

	if c.GPS || c.Orientation || c.Sensor {
		t.Fatalf("Expected no capabilities when only 4 bytes are read, got %+v", c)
	}
}

func TestClassifyImageMissing(t *testing.T) {

	ctx := context.Background()
	bucket := openBucket(t, t.TempDir())

	rsp := ClassifyImage(ctx, bucket, "missing.jpg", 0)

	if rsp.OK() {
		t.Fatalf("Expected a missing image to fail")
	}

	c := rsp.Capabilities()

	if c.GPS || c.Orientation || c.Sensor {
		t.Fatalf("Expected a failed result to report no capabilities")
	}
}
