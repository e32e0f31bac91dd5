package services

import (
	"context"
	"fmt"

	"spacex-dashboard/models"
	"spacex-dashboard/storage"
	"spacex-dashboard/utils"
)

// Dataset is the in-memory launch table. It is immutable after construction
// and safe for concurrent readers.
type Dataset struct {
	records    []models.LaunchRecord
	sites      []string
	minPayload float64
	maxPayload float64
}

// NewDataset copies records, derives each Result label and computes the
// global payload bounds.
func NewDataset(records []*models.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %w", storage.ErrEmptyDataset)
	}

	ds := &Dataset{records: make([]models.LaunchRecord, 0, len(records))}
	seen := make(map[string]struct{})

	for i, r := range records {
		rec := *r
		rec.Result = models.ResultLabel(rec.Class)

		if i == 0 || rec.PayloadMass < ds.minPayload {
			ds.minPayload = rec.PayloadMass
		}
		if i == 0 || rec.PayloadMass > ds.maxPayload {
			ds.maxPayload = rec.PayloadMass
		}
		if _, ok := seen[rec.LaunchSite]; !ok {
			seen[rec.LaunchSite] = struct{}{}
			ds.sites = append(ds.sites, rec.LaunchSite)
		}

		ds.records = append(ds.records, rec)
	}

	return ds, nil
}

// Len returns the number of launches.
func (d *Dataset) Len() int { return len(d.records) }

// MinPayload is the smallest payload mass in the dataset.
func (d *Dataset) MinPayload() float64 { return d.minPayload }

// MaxPayload is the largest payload mass in the dataset.
func (d *Dataset) MaxPayload() float64 { return d.maxPayload }

// Bounds returns [MinPayload, MaxPayload], the slider's initial selection.
func (d *Dataset) Bounds() models.PayloadRange {
	return models.PayloadRange{Low: d.minPayload, High: d.maxPayload}
}

// Sites lists distinct launch sites in first-appearance order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// Records returns copies of all launches in dataset order.
func (d *Dataset) Records() []*models.LaunchRecord {
	return d.Filter(models.AllSites, nil)
}

// Filter returns copies of the launches from site (every site for ALL) whose
// payload lies in rng. A nil rng keeps every payload.
func (d *Dataset) Filter(site string, rng *models.PayloadRange) []*models.LaunchRecord {
	out := make([]*models.LaunchRecord, 0)
	for i := range d.records {
		r := d.records[i]
		if site != models.AllSites && r.LaunchSite != site {
			continue
		}
		if rng != nil && !rng.Contains(r.PayloadMass) {
			continue
		}
		out = append(out, &r)
	}
	return out
}

// LoadDataset reads raw rows from a CSV-like source and cleans them into a Dataset.
func LoadDataset(ctx context.Context, src storage.RawLaunchReader, logger *utils.Logger) (*Dataset, error) {
	raw, err := src.ReadRaw(ctx)
	if err != nil {
		return nil, err
	}

	records, err := NewCleaner(logger).Clean(raw)
	if err != nil {
		return nil, err
	}

	return newLoggedDataset(records, logger)
}

// LoadStoredDataset reads already-typed records, e.g. from Postgres.
func LoadStoredDataset(ctx context.Context, src storage.LaunchReader, logger *utils.Logger) (*Dataset, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return newLoggedDataset(records, logger)
}

func newLoggedDataset(records []*models.LaunchRecord, logger *utils.Logger) (*Dataset, error) {
	ds, err := NewDataset(records)
	if err != nil {
		return nil, err
	}
	logger.Info("[loader] Loaded %d launches from %d sites, payload %.0f-%.0f kg",
		ds.Len(), len(ds.sites), ds.minPayload, ds.maxPayload)
	return ds, nil
}
