package common

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/whosonfirst/go-ioutil"
	"github.com/whosonfirst/go-writer/v3"
)

var writers = make(map[string]writer.Writer)
var writers_mu = new(sync.RWMutex)

// NewWriter returns a whosonfirst/go-writer.Writer instance for a (possibly
// query-escaped) writer URI. Instances are cached in memory for repeat lookups.
func NewWriter(ctx context.Context, uri string) (writer.Writer, error) {

	writer_uri, err := url.QueryUnescape(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to unescape writer URI, %w", err)
	}

	writers_mu.Lock()
	defer writers_mu.Unlock()

	wr, ok := writers[writer_uri]

	if ok {
		return wr, nil
	}

	wr, err = writer.NewWriter(ctx, writer_uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to create writer for '%s', %w", writer_uri, err)
	}

	writers[writer_uri] = wr
	return wr, nil
}

// WriteBytes writes body to key using wr.
func WriteBytes(ctx context.Context, wr writer.Writer, key string, body []byte) error {

	br := bytes.NewReader(body)
	fh, err := ioutil.NewReadSeekCloser(br)

	if err != nil {
		return fmt.Errorf("Failed to create ReadSeekCloser for %s, %w", key, err)
	}

	_, err = wr.Write(ctx, key, fh)

	if err != nil {
		return fmt.Errorf("Failed to write %s, %w", key, err)
	}

	return nil
}
