package storage

import (
	"context"

	"spacex-dashboard/models"
)

// RawLaunchReader yields unparsed launch rows, as a CSV file provides them.
type RawLaunchReader interface {
	ReadRaw(ctx context.Context) ([]*models.RawLaunch, error)
}

// LaunchReader yields typed launch records from a backend that stores them parsed.
type LaunchReader interface {
	Load(ctx context.Context) ([]*models.LaunchRecord, error)
}

// LaunchWriter is the interface any storage backend must satisfy to persist launches.
type LaunchWriter interface {
	Write(ctx context.Context, records []*models.LaunchRecord) error
	Close() error
}

var (
	_ RawLaunchReader = (*CSVReader)(nil)
	_ LaunchReader    = (*PostgresStore)(nil)
	_ LaunchWriter    = (*PostgresStore)(nil)
	_ LaunchWriter    = (*CSVWriter)(nil)
)
