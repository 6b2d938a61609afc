package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
	"github.com/light-bringer/pricetrack-service/internal/pkg/clock"
)

func validRecord() *domain.CandidateRecord {
	return &domain.CandidateRecord{
		Platform:    "jumia",
		ProductName: "Dell Inspiron 15",
		Price:       75000,
		URL:         "https://jumia.co.ke/test",
	}
}

func rejectionOf(t *testing.T, err error) *domain.RejectionError {
	t.Helper()
	var rej *domain.RejectionError
	require.True(t, errors.As(err, &rej), "expected RejectionError, got %v", err)
	return rej
}

func TestValidator_Accepts(t *testing.T) {
	v := New(clock.NewRealClock())

	rec := validRecord()
	require.NoError(t, v.Validate(rec))
}

func TestValidator_RequiredFields(t *testing.T) {
	v := New(clock.NewRealClock())

	t.Run("missing platform", func(t *testing.T) {
		rec := validRecord()
		rec.Platform = ""
		rej := rejectionOf(t, v.Validate(rec))
		assert.Contains(t, rej.Reasons, "missing required field: platform")
	})

	t.Run("missing product name", func(t *testing.T) {
		rec := validRecord()
		rec.ProductName = ""
		rej := rejectionOf(t, v.Validate(rec))
		assert.Contains(t, rej.Reasons, "missing required field: product_name")
	})

	t.Run("missing price", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 0
		rej := rejectionOf(t, v.Validate(rec))
		assert.Contains(t, rej.Reasons, "missing required field: price")
	})

	t.Run("missing url", func(t *testing.T) {
		rec := validRecord()
		rec.URL = ""
		rej := rejectionOf(t, v.Validate(rec))
		assert.Contains(t, rej.Reasons, "missing required field: url")
	})

	t.Run("all missing collects every reason", func(t *testing.T) {
		rej := rejectionOf(t, v.Validate(&domain.CandidateRecord{}))
		assert.Len(t, rej.Reasons, 4)
	})
}

func TestValidator_PriceRange(t *testing.T) {
	v := New(clock.NewRealClock())

	t.Run("below floor", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 5000
		rej := rejectionOf(t, v.Validate(rec))
		require.Len(t, rej.Reasons, 1)
		assert.Contains(t, rej.Reasons[0], "out of reasonable range (15000-500000)")
	})

	t.Run("above ceiling", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 600000
		rej := rejectionOf(t, v.Validate(rec))
		assert.Contains(t, rej.Reasons[0], "out of reasonable range")
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 15000
		require.NoError(t, v.Validate(rec))

		rec = validRecord()
		rec.Price = 500000
		require.NoError(t, v.Validate(rec))
	})
}

func TestValidator_Platform(t *testing.T) {
	v := New(clock.NewRealClock())

	t.Run("unknown platform", func(t *testing.T) {
		rec := validRecord()
		rec.Platform = "unknownshop"
		rej := rejectionOf(t, v.Validate(rec))
		require.Len(t, rej.Reasons, 1)
		assert.Contains(t, rej.Reasons[0], "invalid platform: unknownshop")
	})

	t.Run("platform match is case-insensitive and normalized", func(t *testing.T) {
		rec := validRecord()
		rec.Platform = "Jumia"
		require.NoError(t, v.Validate(rec))
		assert.Equal(t, "jumia", rec.Platform)
	})

	t.Run("every member of the fixed set accepted", func(t *testing.T) {
		for _, p := range domain.Platforms {
			rec := validRecord()
			rec.Platform = string(p)
			require.NoError(t, v.Validate(rec), "platform %s", p)
		}
	})
}

func TestValidator_URLScheme(t *testing.T) {
	v := New(clock.NewRealClock())

	rec := validRecord()
	rec.URL = "jumia.co.ke/no-scheme"
	rej := rejectionOf(t, v.Validate(rec))
	require.Len(t, rej.Reasons, 1)
	assert.Contains(t, rej.Reasons[0], "invalid URL format")

	rec = validRecord()
	rec.URL = "http://jumia.co.ke/plain"
	require.NoError(t, v.Validate(rec))
}

func TestValidator_RejectionIsIdempotent(t *testing.T) {
	v := New(clock.NewRealClock())

	rec := &domain.CandidateRecord{Platform: "unknownshop", Price: 5000}
	first := rejectionOf(t, v.Validate(rec))
	second := rejectionOf(t, v.Validate(rec))
	assert.Equal(t, first.Reasons, second.Reasons)
}

func TestValidator_NormalizesOnSuccess(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)
	v := New(clk)

	t.Run("defaults currency and stamps timestamp", func(t *testing.T) {
		rec := validRecord()
		require.NoError(t, v.Validate(rec))
		assert.Equal(t, "KES", rec.Currency)
		assert.Equal(t, now, rec.ScrapedAt)
	})

	t.Run("keeps supplied currency and timestamp", func(t *testing.T) {
		captured := now.Add(-time.Hour)
		rec := validRecord()
		rec.Currency = "USD"
		rec.ScrapedAt = captured
		require.NoError(t, v.Validate(rec))
		assert.Equal(t, "USD", rec.Currency)
		assert.Equal(t, captured, rec.ScrapedAt)
	})

	t.Run("rejected records are not normalized", func(t *testing.T) {
		rec := validRecord()
		rec.Price = 5000
		_ = v.Validate(rec)
		assert.Empty(t, rec.Currency)
		assert.True(t, rec.ScrapedAt.IsZero())
	})
}
