package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"spacex-dashboard/models"
)

var exportHeader = []string{
	ColFlightNumber, ColLaunchSite, ColClass, ColPayloadMass, ColBoosterVersion, ColBoosterCategory, "Result",
}

// CSVWriter writes launch records as CSV. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVFileWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVFileWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w, err := NewCSVWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewCSVWriter writes the header row to w and returns a writer for the rows.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{writer: cw}, nil
}

// Write implements LaunchWriter.
func (c *CSVWriter) Write(ctx context.Context, records []*models.LaunchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.WriteRecords(records)
}

// WriteRecords appends records in order and flushes.
func (c *CSVWriter) WriteRecords(records []*models.LaunchRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		flight := ""
		if r.FlightNumber > 0 {
			flight = strconv.Itoa(r.FlightNumber)
		}
		row := []string{
			flight,
			r.LaunchSite,
			strconv.Itoa(r.Class),
			strconv.FormatFloat(r.PayloadMass, 'f', -1, 64),
			r.BoosterVersion,
			r.BoosterCategory,
			r.Result,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file, if the writer owns one.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}
