package storage

import (
	"context"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

// RecordStore persists raw sales rows. It never stores derived aggregates;
// those are recomputed from the rows on every load.
type RecordStore interface {
	// Records returns every stored row keyed by the configured column names.
	Records(ctx context.Context) ([]sales.RawRecord, error)

	// ImportRecords stores rows in one transaction and returns how many were
	// written. With replace set, existing rows are deleted first.
	ImportRecords(ctx context.Context, records []sales.RawRecord, replace bool) (int64, error)
}
