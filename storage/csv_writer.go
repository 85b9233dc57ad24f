package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"olx-scraper/models"
	"olx-scraper/utils"
)

// CSVHeader is the first line of every result file.
const CSVHeader = "url;olx_id;name;price;link"

// CSVWriter streams ads to a semicolon separated file.
//
// Values are written verbatim, without quoting, so the file matches what
// existing consumers of result.csv parse. Absent fields are empty strings.
type CSVWriter struct {
	path  string
	file  *os.File
	buf   *bufio.Writer
	count int
}

// NewCSVWriter creates the file at path (and its directory) and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create file: %w", err)
	}

	w := &CSVWriter{path: path, file: file, buf: bufio.NewWriter(file)}
	if _, err := w.buf.WriteString(CSVHeader + "\n"); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("csv write error: %w", err)
	}
	return w, nil
}

func (w *CSVWriter) Write(_ context.Context, ad models.ScrapedAd) error {
	if _, err := w.buf.WriteString(FormatCSVLine(ad) + "\n"); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	w.count++
	return nil
}

// Close flushes buffered lines and closes the file.
func (w *CSVWriter) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("csv flush error: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("could not close file: %w", closeErr)
	}

	utils.Success("Saved %d ads → %s", w.count, w.path)
	return nil
}

// FormatCSVLine renders one ad without the trailing newline.
func FormatCSVLine(ad models.ScrapedAd) string {
	return strings.Join([]string{
		ad.SourceURL,
		ad.Ad.ID,
		ad.Ad.Name,
		ad.Ad.Price,
		ad.Ad.Link,
	}, ";")
}
