// check is a command-line tool to report which JPEG images in a folder carry GPS XYZ
// coordinates, camera orientation (roll, pitch and yaw) and sensor information. Results
// are written to an image_metadata_check.csv file in the root of each folder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/sfomuseum/go-media-metadata/common"
	"github.com/sfomuseum/go-media-metadata/operations/check"
	_ "gocloud.dev/blob/fileblob"
)

func main() {

	var max_bytes int64
	var public_read bool
	var verbose bool

	flag.Int64Var(&max_bytes, "max-bytes", common.DefaultMaxImageBytes, "The maximum number of bytes to read from the start of each image.")
	flag.BoolVar(&public_read, "public-read", false, "Assign a public-read ACL to the report when writing to S3.")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Report GPS, camera orientation and sensor metadata for the JPEG images in one or more folders.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t %s [options] folder(N) folder(N)\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Folders may be local paths or gocloud.dev/blob URIs.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	ctx := context.Background()

	for _, source := range flag.Args() {

		err := checkFolder(ctx, source, max_bytes, public_read)

		if err != nil {
			slog.Error("Failed to check folder", "source", source, "error", err)
			os.Exit(1)
		}
	}
}

func checkFolder(ctx context.Context, source string, max_bytes int64, public_read bool) error {

	bucket, err := common.OpenBucket(ctx, source)

	if errors.Is(err, common.ErrFolderNotFound) {
		fmt.Printf("Error: '%s' not found!\n", source)
		return nil
	}

	if err != nil {
		return err
	}

	defer bucket.Close()

	opts := &check.CheckImagesOptions{
		MaxImageBytes: max_bytes,
		Progress: func(ctx context.Context, index int, total int, row *check.Row) error {

			if index == 1 {
				fmt.Printf("Checking %d image(s)...\n\n", total)
			}

			fmt.Printf("  %s\n", check.ProgressLine(index, total, row))
			return nil
		},
	}

	rows, err := check.CheckImagesWithOptions(ctx, bucket, opts)

	if errors.Is(err, check.ErrNoImages) {
		fmt.Println("No JPEGs found")
		return nil
	}

	if err != nil {
		return err
	}

	report_opts := &check.WriteReportOptions{
		PublicRead: public_read,
	}

	key, err := check.WriteReportWithOptions(ctx, bucket, rows, report_opts)

	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Saved: %s\n\n", reportLocation(source, key))
	fmt.Println(check.Summarize(rows))

	return nil
}

func reportLocation(source string, key string) string {

	if common.IsBucketURI(source) {

		u, err := url.Parse(source)

		if err != nil {
			return key
		}

		u.Path = path.Join(u.Path, key)
		return u.String()
	}

	return filepath.Join(source, key)
}
