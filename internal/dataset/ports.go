// Package dataset loads the SSBG snapshot into memory. The dashboard reads
// the table exactly once at startup; there is no reload path.
package dataset

import (
	"context"

	"ssbg/internal/core"
)

// Source supplies the full dataset from a snapshot backend (CSV file,
// SQLite database, or Google Sheets).
type Source interface {
	Load(ctx context.Context) ([]core.Record, error)
}
