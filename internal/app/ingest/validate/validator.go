package validate

import (
	"fmt"
	"strings"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/contracts"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
	"github.com/light-bringer/pricetrack-service/internal/pkg/clock"
)

// Validator rejects structurally or semantically invalid candidate records.
// All failing checks are collected into one RejectionError rather than
// short-circuiting on the first, so a rejected record carries its full
// diagnosis.
type Validator struct {
	clock clock.Clock
}

// New creates a Validator. The clock stamps capture timestamps on records
// that arrive without one.
func New(clk clock.Clock) *Validator {
	return &Validator{clock: clk}
}

var _ contracts.Validator = (*Validator)(nil)

// requiredFields are checked in order; reasons name the missing field.
var requiredFields = []struct {
	name  string
	empty func(*domain.CandidateRecord) bool
}{
	{"platform", func(r *domain.CandidateRecord) bool { return r.Platform == "" }},
	{"product_name", func(r *domain.CandidateRecord) bool { return r.ProductName == "" }},
	{"price", func(r *domain.CandidateRecord) bool { return r.Price == 0 }},
	{"url", func(r *domain.CandidateRecord) bool { return r.URL == "" }},
}

// Validate checks rec and returns nil or a *domain.RejectionError. On success
// it normalizes the record in place: the platform is lower-cased, currency
// defaults to KES, and a zero ScrapedAt is stamped with the current time. Validation is deterministic, so
// validating the same invalid record twice yields identical reasons.
func (v *Validator) Validate(rec *domain.CandidateRecord) error {
	var reasons []string

	for _, f := range requiredFields {
		if f.empty(rec) {
			reasons = append(reasons, "missing required field: "+f.name)
		}
	}

	if rec.Price != 0 && (rec.Price < domain.MinPrice || rec.Price > domain.MaxPrice) {
		reasons = append(reasons, fmt.Sprintf(
			"price %.0f KES out of reasonable range (%d-%d)",
			rec.Price, domain.MinPrice, domain.MaxPrice,
		))
	}

	if rec.Platform != "" && !domain.Platform(strings.ToLower(rec.Platform)).Valid() {
		reasons = append(reasons, "invalid platform: "+rec.Platform)
	}

	if rec.URL != "" && !strings.HasPrefix(rec.URL, "http://") && !strings.HasPrefix(rec.URL, "https://") {
		reasons = append(reasons, "invalid URL format: "+rec.URL)
	}

	if len(reasons) > 0 {
		return &domain.RejectionError{Reasons: reasons}
	}

	rec.Platform = strings.ToLower(rec.Platform)
	if rec.Currency == "" {
		rec.Currency = domain.DefaultCurrency
	}
	if rec.ScrapedAt.IsZero() {
		rec.ScrapedAt = v.clock.Now()
	}

	return nil
}
