package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/dedup"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/persist"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/pipeline"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/validate"
	"github.com/light-bringer/pricetrack-service/internal/pkg/clock"
	"github.com/light-bringer/pricetrack-service/internal/pkg/postgres"
)

// ServiceOptions holds all dependencies for one ingestion session.
type ServiceOptions struct {
	Logger    *zap.Logger
	Session   *dedup.Session
	Persister *persist.Persister
	Pipeline  *pipeline.Pipeline
}

// NewServiceOptions creates and wires up the pipeline dependencies and opens
// the store pool. Close must be called after the last record.
func NewServiceOptions(ctx context.Context, dbCfg postgres.Config, log *zap.Logger) (*ServiceOptions, error) {
	clk := clock.NewRealClock()

	validator := validate.New(clk)
	session := dedup.NewSession()
	persister := persist.New(dbCfg, clk, log)

	if err := persister.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open persister: %w", err)
	}

	return &ServiceOptions{
		Logger:    log,
		Session:   session,
		Persister: persister,
		Pipeline:  pipeline.New(validator, session, persister, log),
	}, nil
}

// Close drains the store pool and logs the session's unique-item count.
func (s *ServiceOptions) Close() {
	if s.Persister != nil {
		s.Persister.Close()
	}
	s.Logger.Info("session closed", zap.Int("unique_items", s.Session.Len()))
}
