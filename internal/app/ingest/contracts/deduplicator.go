package contracts

import "github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"

// Deduplicator suppresses records whose (platform, URL) identity was already
// seen within the current ingestion session. Check returns nil and remembers
// the record's key on first sight, or a *domain.DuplicateError on repeats.
// Implementations must be safe for concurrent use: the check-and-insert is a
// single critical section.
//
// This is a fast-path filter only. Cross-run duplicate suppression is the
// store's uniqueness constraint, enforced by the Persister.
type Deduplicator interface {
	Check(rec *domain.CandidateRecord) error
}
