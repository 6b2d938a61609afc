package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
)

// NewCandidateRecord builds a valid candidate record with a unique URL so
// tests don't collide on the (platform, url) constraint.
func NewCandidateRecord() *domain.CandidateRecord {
	return &domain.CandidateRecord{
		Platform:    "jumia",
		ProductName: "Dell Inspiron 15",
		Brand:       "Dell",
		Model:       "Inspiron 15 3520",
		Price:       75000,
		Currency:    "KES",
		URL:         "https://jumia.co.ke/test-" + uuid.New().String(),
		Processor:   "Intel Core i5-1235U",
		RAM:         "8GB",
		Storage:     "512GB SSD",
		Condition:   "New",
		Specs:       map[string]string{"warranty": "1 year"},
		ScrapedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}
