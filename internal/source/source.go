// Package source fetches the published program sheet and turns it into
// normalized records.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"pafinder/internal/program"
)

// DefaultURL is the CSV export of the published program sheet.
const DefaultURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSTo22U3urAMM9pFs_s6TpvisdDXzHrLCQOluMUvZKEGUaq1vWoAPY5ukQRNtL3Wg/pub?output=csv"

// DefaultTimeout bounds a remote fetch when Source.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// ErrNoSource is returned when neither a file nor a URL is configured.
var ErrNoSource = errors.New("either file or url must be provided")

// Source says where the sheet comes from. FilePath wins over URL.
type Source struct {
	FilePath string
	URL      string
	Timeout  time.Duration
}

// String describes the source for logs and status lines.
func (s Source) String() string {
	if s.FilePath != "" {
		return s.FilePath
	}
	return s.URL
}

// Load reads the sheet, parses it and normalizes every row. Any fetch or
// parse failure is returned; an empty result is only produced by a sheet
// that has a header and no rows.
func Load(ctx context.Context, src Source, logger *zap.Logger) ([]program.Program, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	body, err := readSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load data source: %w", err)
	}
	defer body.Close()

	rows, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse program sheet: %w", err)
	}

	programs := program.NormalizeAll(rows)

	unknown := 0
	for _, p := range programs {
		if p.StartDate != "" && p.StartMonth == program.UnknownMonth {
			unknown++
		}
	}
	if unknown > 0 {
		logger.Warn("unparseable start dates", zap.Int("count", unknown))
	}
	logger.Info("program sheet loaded",
		zap.String("source", src.String()),
		zap.Int("programs", len(programs)),
		zap.Duration("elapsed", time.Since(start)))

	return programs, nil
}

func readSource(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch {
	case src.FilePath != "":
		return os.Open(src.FilePath)
	case src.URL != "":
		timeout := src.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client := &http.Client{Timeout: timeout}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")

		resp, err := client.Do(req)
		if err != nil {
			client.CloseIdleConnections()
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			client.CloseIdleConnections()
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return newResponseBody(resp, client)
	default:
		return nil, ErrNoSource
	}
}

// responseBody decodes the response to UTF-8 according to its Content-Type
// and releases the client's idle connections once the body is done.
type responseBody struct {
	io.Reader
	body   io.Closer
	client *http.Client
}

func newResponseBody(resp *http.Response, client *http.Client) (*responseBody, error) {
	b := &responseBody{Reader: resp.Body, body: resp.Body, client: client}

	decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	switch {
	case err == nil:
		b.Reader = decoded
	case errors.Is(err, io.EOF):
		// Empty body; Parse reports the missing header.
	default:
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *responseBody) Close() error {
	err := b.body.Close()
	b.client.CloseIdleConnections()
	return err
}
