// inspect is a command-line tool to emit a detailed JSON (or GeoJSON) record for every
// JPEG image in one or more folders or gocloud.dev/blob buckets.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/sfomuseum/go-media-metadata/common"
	"github.com/sfomuseum/go-media-metadata/lookup"
	"github.com/sfomuseum/go-media-metadata/media"
	"github.com/sfomuseum/go-media-metadata/operations/inspect"
	_ "gocloud.dev/blob/fileblob"
)

func main() {

	var writer_uri string
	var format string
	var lookup_uri string
	var lookup_imagehashes bool
	var image_hashes bool
	var workers int
	var max_bytes int64
	var verbose bool

	flag.StringVar(&writer_uri, "writer-uri", "stdout://", "A valid whosonfirst/go-writer URI.")
	flag.StringVar(&format, "format", "json", "The output format. Valid options are: json, geojson.")
	flag.StringVar(&lookup_uri, "lookup-uri", "", "An optional folder or bucket URI of previously written records. Images whose fingerprint matches one of them are skipped.")
	flag.BoolVar(&lookup_imagehashes, "lookup-imagehashes", false, "Also skip images whose average image hash matches a previously written record. Requires -image-hashes.")
	flag.BoolVar(&image_hashes, "image-hashes", false, "Generate perceptual image hashes.")
	flag.IntVar(&workers, "workers", 4, "The number of images to inspect concurrently.")
	flag.Int64Var(&max_bytes, "max-bytes", common.DefaultMaxImageBytes, "The maximum number of bytes to read from the start of each image.")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Emit a detailed metadata record for every JPEG image in one or more folders.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t %s [options] folder(N) folder(N)\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	switch format {
	case "json", "geojson":
		// pass
	default:
		slog.Error("Invalid format", "format", format)
		os.Exit(1)
	}

	if lookup_imagehashes && !image_hashes {
		slog.Error("-lookup-imagehashes requires -image-hashes")
		os.Exit(1)
	}

	ctx := context.Background()

	wr, err := common.NewWriter(ctx, writer_uri)

	if err != nil {
		slog.Error("Failed to create writer", "error", err)
		os.Exit(1)
	}

	var lu *sync.Map

	if lookup_uri != "" {

		lookup_bucket, err := common.OpenBucket(ctx, lookup_uri)

		if err != nil {
			slog.Error("Failed to open lookup source", "error", err)
			os.Exit(1)
		}

		l, err := lookup.NewBlobLookerUpper(ctx, lookup_bucket)

		if err != nil {
			lookup_bucket.Close()
			slog.Error("Failed to create lookup", "error", err)
			os.Exit(1)
		}

		append_funcs := []lookup.AppendLookupFunc{
			lookup.FingerprintAppendLookupFunc,
		}

		if lookup_imagehashes {
			append_funcs = append(append_funcs, lookup.ImageHashAppendLookupFunc)
		}

		lu, err = lookup.NewLookupMap(ctx, []lookup.LookerUpper{l}, append_funcs)

		lookup_bucket.Close()

		if err != nil {
			slog.Error("Failed to build lookup", "error", err)
			os.Exit(1)
		}
	}

	mu := new(sync.Mutex)

	cb := func(ctx context.Context, rec *inspect.Record) error {

		var key string
		var body []byte
		var err error

		switch format {
		case "geojson":

			body, err = media.NewImageFeature(rec)

			if err != nil {
				return err
			}

			key, err = media.FeatureKey(body)

			if err != nil {
				return err
			}

		default:

			body, err = json.Marshal(rec)

			if err != nil {
				return err
			}

			key = fmt.Sprintf("%s.json", rec.Path)
		}

		body = append(body, '\n')

		mu.Lock()
		defer mu.Unlock()

		return common.WriteBytes(ctx, wr, key, body)
	}

	opts := &inspect.InspectImagesOptions{
		Callback:      cb,
		MaxImageBytes: max_bytes,
		ImageHashes:   image_hashes,
		Workers:       workers,
		Lookup:        lu,
	}

	for _, source := range flag.Args() {

		slog.Debug("Inspect images", "source", source)

		bucket, err := common.OpenBucket(ctx, source)

		if err != nil {
			slog.Error("Failed to open source", "source", source, "error", err)
			os.Exit(1)
		}

		err = inspect.InspectImagesWithOptions(ctx, bucket, opts)

		bucket.Close()

		if err != nil {
			slog.Error("Failed to inspect images", "source", source, "error", err)
			os.Exit(1)
		}
	}

	err = wr.Close(ctx)

	if err != nil {
		slog.Error("Failed to close writer", "error", err)
		os.Exit(1)
	}
}
