package check

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"gocloud.dev/blob"
)

// ReportFilename is the name of the CSV report written to the root of a bucket.
const ReportFilename = "image_metadata_check.csv"

// ReportHeader is the header row of a CSV report.
var ReportHeader = []string{
	"image_name",
	"image_path",
	"has_gps_xyz",
	"has_camera_orientation",
	"has_sensor_info",
}

// WriteReportOptions defines options for the WriteReportWithOptions method.
type WriteReportOptions struct {
	// The key to write the report to. Defaults to ReportFilename.
	Key string
	// Assign a "public-read" ACL to the report if the bucket is backed by S3.
	PublicRead bool
}

// Summary totals the capabilities of a set of rows.
type Summary struct {
	Total       int
	GPS         int
	Orientation int
	Sensor      int
}

// Summarize returns the totals for rows.
func Summarize(rows []*Row) *Summary {

	s := &Summary{
		Total: len(rows),
	}

	for _, r := range rows {

		c := r.Capabilities()

		if c.GPS {
			s.GPS += 1
		}

		if c.Orientation {
			s.Orientation += 1
		}

		if c.Sensor {
			s.Sensor += 1
		}
	}

	return s
}

func (s *Summary) String() string {
	return fmt.Sprintf("Total: %d | GPS: %d | Orient: %d | Sensor: %d", s.Total, s.GPS, s.Orientation, s.Sensor)
}

// WriteReport writes rows as CSV to ReportFilename in bucket, replacing any existing report.
func WriteReport(ctx context.Context, bucket *blob.Bucket, rows []*Row) (string, error) {
	opts := &WriteReportOptions{}
	return WriteReportWithOptions(ctx, bucket, rows, opts)
}

// WriteReportWithOptions writes rows as CSV to bucket, replacing any existing report, and
// returns the key that was written.
func WriteReportWithOptions(ctx context.Context, bucket *blob.Bucket, rows []*Row, opts *WriteReportOptions) (string, error) {

	key := opts.Key

	if key == "" {
		key = ReportFilename
	}

	wr_opts := &blob.WriterOptions{
		ContentType: "text/csv",
	}

	if opts.PublicRead {

		wr_opts.BeforeWrite = func(asFunc func(interface{}) bool) error {

			s3_req := &s3manager.UploadInput{}
			ok := asFunc(&s3_req)

			if ok {
				s3_req.ACL = aws.String("public-read")
			}

			return nil
		}
	}

	wr, err := bucket.NewWriter(ctx, key, wr_opts)

	if err != nil {
		return key, fmt.Errorf("Failed to create writer for %s, %w", key, err)
	}

	err = WriteCSV(wr, rows)

	if err != nil {
		wr.Close()
		return key, fmt.Errorf("Failed to write report, %w", err)
	}

	err = wr.Close()

	if err != nil {
		return key, fmt.Errorf("Failed to close %s, %w", key, err)
	}

	return key, nil
}

// WriteCSV writes a header row followed by one row per image to wr.
func WriteCSV(wr io.Writer, rows []*Row) error {

	csv_wr := csv.NewWriter(wr)

	err := csv_wr.Write(ReportHeader)

	if err != nil {
		return fmt.Errorf("Failed to write header, %w", err)
	}

	for _, r := range rows {

		c := r.Capabilities()

		out := []string{
			r.Name,
			r.Path,
			strconv.FormatBool(c.GPS),
			strconv.FormatBool(c.Orientation),
			strconv.FormatBool(c.Sensor),
		}

		err := csv_wr.Write(out)

		if err != nil {
			return fmt.Errorf("Failed to write row for %s, %w", r.Path, err)
		}
	}

	csv_wr.Flush()
	return csv_wr.Error()
}
