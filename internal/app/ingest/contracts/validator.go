package contracts

import "github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"

// Validator checks a candidate record before it enters the rest of the
// pipeline. A nil return means the record passed; a *domain.RejectionError
// carries every violated rule. Validate may normalize the record in place
// (default currency, capture timestamp) on success. It performs no I/O.
type Validator interface {
	Validate(rec *domain.CandidateRecord) error
}
