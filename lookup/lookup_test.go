package lookup

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sfomuseum/go-media-metadata/common"
)

func TestNewLookupMap(t *testing.T) {

	ctx := context.Background()
	root := t.TempDir()

	records := map[string]string{
		"a.jpg.json":      `{"path":"a.jpg","fingerprint":{"hash":"aaaa","size":10},"imagehashes":[{"approach":"diff","hash":"d:1"},{"approach":"avg","hash":"a:1"}]}`,
		"b/c.jpg.geojson": `{"type":"Feature","properties":{"media:path":"b/c.jpg","media:fingerprint":"cccc"}}`,
		"b/no-path.json":  `{"fingerprint":{"hash":"ffff"}}`,
		"b/ignored.txt":   `{"path":"x.jpg","fingerprint":{"hash":"xxxx"}}`,
	}

	for rel, body := range records {

		path := filepath.Join(root, filepath.FromSlash(rel))

		err := os.MkdirAll(filepath.Dir(path), 0755)

		if err != nil {
			t.Fatalf("Failed to create directory for %s, %v", rel, err)
		}

		err = os.WriteFile(path, []byte(body), 0644)

		if err != nil {
			t.Fatalf("Failed to write %s, %v", rel, err)
		}
	}

	bucket, err := common.OpenBucket(ctx, root)

	if err != nil {
		t.Fatalf("Failed to open bucket, %v", err)
	}

	defer bucket.Close()

	l, err := NewBlobLookerUpper(ctx, bucket)

	if err != nil {
		t.Fatalf("Failed to create looker upper, %v", err)
	}

	looker_uppers := []LookerUpper{l}

	append_funcs := []AppendLookupFunc{
		FingerprintAppendLookupFunc,
		ImageHashAppendLookupFunc,
	}

	lu, err := NewLookupMap(ctx, looker_uppers, append_funcs)

	if err != nil {
		t.Fatalf("Failed to create lookup map, %v", err)
	}

	expected := map[string]string{
		"aaaa": "a.jpg",
		"a:1":  "a.jpg",
		"cccc": "b/c.jpg",
	}

	count := 0

	lu.Range(func(k any, v any) bool {
		count += 1
		return true
	})

	if count != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), count)
	}

	for k, path := range expected {

		v, ok := lu.Load(k)

		if !ok || v.(string) != path {
			t.Fatalf("Expected %s to map to %s, got %v", k, path, v)
		}
	}
}

type failingLookerUpper struct{}

func (l *failingLookerUpper) Append(ctx context.Context, lu *sync.Map, append_funcs ...AppendLookupFunc) error {
	return os.ErrPermission
}

func TestNewLookupMapError(t *testing.T) {

	ctx := context.Background()

	looker_uppers := []LookerUpper{
		&failingLookerUpper{},
	}

	_, err := NewLookupMap(ctx, looker_uppers, nil)

	if err == nil {
		t.Fatalf("Expected an error")
	}
}
