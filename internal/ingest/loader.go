package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Loader reads raw sales records from a local file or an http(s) URL.
type Loader struct {
	client *resty.Client
	logger *zap.Logger
}

// NewLoader creates a Loader whose remote fetches time out after timeout.
func NewLoader(timeout time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().SetTimeout(timeout)
	return &Loader{client: client, logger: logger}
}

// Close releases the underlying HTTP client.
func (l *Loader) Close() error {
	return l.client.Close()
}

// Load reads and parses the CSV at source.
func (l *Loader) Load(ctx context.Context, source string) ([]map[string]string, error) {
	start := time.Now()

	var (
		records []map[string]string
		err     error
	)
	if isRemote(source) {
		records, err = l.fetch(ctx, source)
	} else {
		records, err = l.readFile(source)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("sales csv ingested",
		zap.String("source", source),
		zap.Int("rows", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

func (l *Loader) readFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open sales csv: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse sales csv %s: %w", path, err)
	}
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]map[string]string, error) {
	res, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch sales csv: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch sales csv: unexpected status %d", res.StatusCode())
	}

	records, err := Parse(bytes.NewReader(res.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("parse sales csv %s: %w", url, err)
	}
	return records, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
