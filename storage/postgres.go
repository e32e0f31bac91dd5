package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

const insertBatchSize = 50

const launchColumns = 6

// PostgresStore persists launch records to PostgreSQL and reads them back
// as an alternative dataset source.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, retrying the initial
// ping, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS launches (
			id                       SERIAL PRIMARY KEY,
			flight_number            INTEGER       NOT NULL DEFAULT 0,
			launch_site              TEXT          NOT NULL,
			payload_mass_kg          NUMERIC(10,2) NOT NULL DEFAULT 0,
			booster_version          TEXT          NOT NULL DEFAULT '',
			booster_version_category TEXT          NOT NULL DEFAULT '',
			class                    SMALLINT      NOT NULL CHECK (class IN (0, 1))
		);

		CREATE INDEX IF NOT EXISTS idx_launches_site    ON launches(launch_site);
		CREATE INDEX IF NOT EXISTS idx_launches_payload ON launches(payload_mass_kg);
	`)
	return err
}

// Write replaces the table contents with records inside one transaction.
func (ps *PostgresStore) Write(ctx context.Context, records []*models.LaunchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM launches"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(records); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		query, args := buildInsert(records[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	if ps.logger != nil {
		ps.logger.Info("[postgres] Stored %d launches", len(records))
	}
	return nil
}

// buildInsert returns a multi-row INSERT for batch with positional arguments.
func buildInsert(batch []*models.LaunchRecord) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*launchColumns)

	for idx, r := range batch {
		base := idx * launchColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			r.FlightNumber, r.LaunchSite, r.PayloadMass, r.BoosterVersion, r.BoosterCategory, r.Class)
	}

	query := "INSERT INTO launches " +
		"(flight_number, launch_site, payload_mass_kg, booster_version, booster_version_category, class) " +
		"VALUES " + strings.Join(valueStrings, ",")
	return query, valueArgs
}

// Load retrieves all stored launches in insertion order.
func (ps *PostgresStore) Load(ctx context.Context) ([]*models.LaunchRecord, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT flight_number, launch_site, payload_mass_kg, booster_version, booster_version_category, class
		FROM launches
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch launches: %w", err)
	}
	defer rows.Close()

	var records []*models.LaunchRecord
	for rows.Next() {
		r := &models.LaunchRecord{}
		if err := rows.Scan(
			&r.FlightNumber, &r.LaunchSite, &r.PayloadMass,
			&r.BoosterVersion, &r.BoosterCategory, &r.Class,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		r.Result = models.ResultLabel(r.Class)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("postgres: %w", ErrEmptyDataset)
	}
	return records, nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
