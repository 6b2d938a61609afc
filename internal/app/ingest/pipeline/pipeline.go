// Package pipeline composes the three ingestion stages: validation,
// session-scoped deduplication, and persistence with price history.
//
// Each record flows through the stages independently. A stage terminates a
// record with a typed outcome instead of an error that crosses stage
// boundaries; termination at any stage is non-fatal to the run.
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/contracts"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
)

// OutcomeKind tags what happened to a single record.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota
	OutcomeUpdated
	OutcomeRejected
	OutcomeDuplicate
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the per-record result returned to the caller. Err holds the
// stage's typed error for rejected, duplicate and failed records.
type Outcome struct {
	Kind   OutcomeKind
	Result contracts.PersistResult
	Err    error
}

// Stats aggregates per-record outcomes over one session.
type Stats struct {
	Validated  int64
	Rejected   int64
	Duplicates int64
	Created    int64
	Updated    int64
	Failed     int64
}

// Pipeline wires the three stages together for one ingestion session.
type Pipeline struct {
	validator contracts.Validator
	dedup     contracts.Deduplicator
	persister contracts.Persister
	log       *zap.Logger

	validated  atomic.Int64
	rejected   atomic.Int64
	duplicates atomic.Int64
	created    atomic.Int64
	updated    atomic.Int64
	failed     atomic.Int64
}

// New creates a Pipeline over the given stages.
func New(v contracts.Validator, d contracts.Deduplicator, p contracts.Persister, log *zap.Logger) *Pipeline {
	return &Pipeline{validator: v, dedup: d, persister: p, log: log}
}

// Process runs one candidate record through all three stages and returns its
// outcome. It never returns an error as control flow: every failure class is
// resolved into a tagged Outcome and counted.
func (p *Pipeline) Process(ctx context.Context, rec *domain.CandidateRecord) Outcome {
	if err := p.validator.Validate(rec); err != nil {
		p.rejected.Add(1)
		var rej *domain.RejectionError
		if errors.As(err, &rej) {
			p.log.Warn("dropping invalid item",
				zap.String("url", rec.URL),
				zap.Strings("reasons", rej.Reasons))
		}
		return Outcome{Kind: OutcomeRejected, Err: err}
	}
	p.validated.Add(1)

	if err := p.dedup.Check(rec); err != nil {
		p.duplicates.Add(1)
		p.log.Debug("duplicate item skipped", zap.String("url", rec.URL))
		return Outcome{Kind: OutcomeDuplicate, Err: err}
	}

	res, err := p.persister.Persist(ctx, rec)
	if err != nil {
		p.failed.Add(1)
		return Outcome{Kind: OutcomeFailed, Err: err}
	}

	if res.Created {
		p.created.Add(1)
		return Outcome{Kind: OutcomeCreated, Result: res}
	}
	p.updated.Add(1)
	return Outcome{Kind: OutcomeUpdated, Result: res}
}

// Run drains records with the given number of workers, processing each record
// independently. It returns the session stats once the channel is closed and
// all in-flight records have finished, or once ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, records <-chan *domain.CandidateRecord, workers int) Stats {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case rec, ok := <-records:
					if !ok {
						return nil
					}
					p.Process(ctx, rec)
				}
			}
		})
	}
	_ = g.Wait() // workers never return errors

	stats := p.Stats()
	p.log.Info("session finished",
		zap.Int64("validated", stats.Validated),
		zap.Int64("rejected", stats.Rejected),
		zap.Int64("duplicates", stats.Duplicates),
		zap.Int64("created", stats.Created),
		zap.Int64("updated", stats.Updated),
		zap.Int64("failed", stats.Failed))
	return stats
}

// Stats returns a snapshot of the session counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Validated:  p.validated.Load(),
		Rejected:   p.rejected.Load(),
		Duplicates: p.duplicates.Load(),
		Created:    p.created.Load(),
		Updated:    p.updated.Load(),
		Failed:     p.failed.Load(),
	}
}
