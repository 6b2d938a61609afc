//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/dedup"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/persist"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/pipeline"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/validate"
	"github.com/light-bringer/pricetrack-service/internal/models/m_price_history"
	"github.com/light-bringer/pricetrack-service/internal/models/m_product"
	"github.com/light-bringer/pricetrack-service/internal/pkg/clock"
	"github.com/light-bringer/pricetrack-service/tests/testutil"
)

func newStorePipeline(t *testing.T) (*pipeline.Pipeline, *persist.Persister, func()) {
	t.Helper()

	pool, cleanup := testutil.SetupPostgresTest(t)
	p := persist.NewWithPool(pool, testutil.TestStoreConfig(), clock.NewRealClock(), zap.NewNop())
	pl := pipeline.New(validate.New(clock.NewRealClock()), dedup.NewSession(), p, zap.NewNop())
	return pl, p, cleanup
}

func TestPipeline_FullSession(t *testing.T) {
	pl, p, cleanup := newStorePipeline(t)
	defer cleanup()

	ctx := context.Background()

	records := make(chan *domain.CandidateRecord, 16)
	unique := make([]*domain.CandidateRecord, 0, 5)
	for i := 0; i < 5; i++ {
		rec := testutil.NewCandidateRecord()
		unique = append(unique, rec)
		records <- rec
	}
	// Session duplicate of the first record.
	dupRec := testutil.NewCandidateRecord()
	dupRec.URL = unique[0].URL
	records <- dupRec
	// Invalid record.
	bad := testutil.NewCandidateRecord()
	bad.Price = 5000
	records <- bad
	close(records)

	stats := pl.Run(ctx, records, 3)

	assert.Equal(t, int64(6), stats.Validated)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, int64(1), stats.Duplicates)
	assert.Equal(t, int64(5), stats.Created)
	assert.Equal(t, int64(0), stats.Failed)

	assert.Equal(t, int64(5), p.Stats().Created)
}

func TestPipeline_CrossSessionUpsert(t *testing.T) {
	pool, cleanup := testutil.SetupPostgresTest(t)
	defer cleanup()

	ctx := context.Background()
	p := persist.NewWithPool(pool, testutil.TestStoreConfig(), clock.NewRealClock(), zap.NewNop())

	rec := testutil.NewCandidateRecord()

	// First session creates the product.
	s1 := pipeline.New(validate.New(clock.NewRealClock()), dedup.NewSession(), p, zap.NewNop())
	out := s1.Process(ctx, rec)
	require.Equal(t, pipeline.OutcomeCreated, out.Kind)

	// A new session has an empty duplicate set, so the same identity passes
	// the deduplicator and resolves to an update at the store.
	rec2 := testutil.NewCandidateRecord()
	rec2.URL = rec.URL
	rec2.Price = 72000

	s2 := pipeline.New(validate.New(clock.NewRealClock()), dedup.NewSession(), p, zap.NewNop())
	out2 := s2.Process(ctx, rec2)
	require.Equal(t, pipeline.OutcomeUpdated, out2.Kind)
	assert.Equal(t, out.Result.ProductID, out2.Result.ProductID)

	assert.Equal(t, 1, testutil.CountRows(t, pool, m_product.TableName))
	assert.Equal(t, 2, testutil.CountRows(t, pool, m_price_history.TableName))
	assert.Equal(t, 72000.0, testutil.ProductPrice(t, pool, out.Result.ProductID))
}
