package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"spacex-dashboard/models"
)

// Column headers of the launch dataset.
const (
	ColFlightNumber    = "Flight Number"
	ColLaunchSite      = "Launch Site"
	ColClass           = "class"
	ColPayloadMass     = "Payload Mass (kg)"
	ColBoosterVersion  = "Booster Version"
	ColBoosterCategory = "Booster Version Category"
)

var requiredColumns = []string{ColClass, ColLaunchSite, ColPayloadMass, ColBoosterCategory}

// ErrEmptyDataset is returned when a source holds a header but no rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// CSVReader reads raw launch rows from a CSV file on disk.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the CSV file at path. The file is opened on ReadRaw.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadRaw opens the file and returns every data row.
func (c *CSVReader) ReadRaw(ctx context.Context) ([]*models.RawLaunch, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	return ParseCSV(ctx, f)
}

// ParseCSV reads a launch CSV from r. Columns are located by header name, so
// column order and any extra columns (such as an unnamed index) do not matter.
func ParseCSV(ctx context.Context, r io.Reader) ([]*models.RawLaunch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %w", ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	idx := indexColumns(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", col)
		}
	}

	var rows []*models.RawLaunch
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("csv: read line %d: %w", perr.StartLine, err)
			}
			return nil, fmt.Errorf("csv: read: %w", err)
		}
		if isBlank(record) {
			continue
		}

		// Physical line where the record starts; quoted fields may span lines.
		line, _ := cr.FieldPos(0)

		rows = append(rows, &models.RawLaunch{
			Line:            line,
			FlightNumber:    field(record, idx, ColFlightNumber),
			LaunchSite:      field(record, idx, ColLaunchSite),
			Class:           field(record, idx, ColClass),
			PayloadMass:     field(record, idx, ColPayloadMass),
			BoosterVersion:  field(record, idx, ColBoosterVersion),
			BoosterCategory: field(record, idx, ColBoosterCategory),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: %w", ErrEmptyDataset)
	}
	return rows, nil
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func field(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
