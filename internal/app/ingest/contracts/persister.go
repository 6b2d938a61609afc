package contracts

import (
	"context"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
)

// PersistResult reports the outcome of a successful persistence operation.
type PersistResult struct {
	ProductID string
	Created   bool // true on first persistence of a (platform, URL) pair
}

// StoreStats is a snapshot of the Persister's aggregate counters.
type StoreStats struct {
	Created int64
	Updated int64
	Failed  int64
}

// Persister upserts validated records into the durable store and appends a
// price history entry for every successful persistence.
//
// Open must be called before the first Persist and Close after the last.
// Persist failures come back as *domain.PersistenceError and are terminal for
// that record only; the connection backing the operation is released on every
// path.
type Persister interface {
	Open(ctx context.Context) error
	Persist(ctx context.Context, rec *domain.CandidateRecord) (PersistResult, error)
	Close() StoreStats
	Stats() StoreStats
}
