package persist

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/contracts"
	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
	"github.com/light-bringer/pricetrack-service/internal/models/m_price_history"
	"github.com/light-bringer/pricetrack-service/internal/models/m_product"
	"github.com/light-bringer/pricetrack-service/internal/pkg/clock"
	"github.com/light-bringer/pricetrack-service/internal/pkg/postgres"
)

// Persister upserts candidate records into the products table and appends a
// price history row on every successful persistence. One pooled connection is
// acquired per operation for the lifetime of its transaction and released on
// every exit path.
//
// The existence check before insert is an optimization; the store's
// (platform, url) uniqueness constraint is the final authority. A racing
// insert that hits the constraint is retried once as an update.
type Persister struct {
	cfg      postgres.Config
	clk      clock.Clock
	log      *zap.Logger
	pool     *pgxpool.Pool
	borrowed bool

	created atomic.Int64
	updated atomic.Int64
	failed  atomic.Int64
}

// New creates a Persister. Open must be called before the first Persist.
func New(cfg postgres.Config, clk clock.Clock, log *zap.Logger) *Persister {
	return &Persister{cfg: cfg, clk: clk, log: log}
}

// NewWithPool creates a Persister over an existing pool. The caller keeps
// ownership of the pool; Close will not shut it down. Used by tests.
func NewWithPool(pool *pgxpool.Pool, cfg postgres.Config, clk clock.Clock, log *zap.Logger) *Persister {
	p := New(cfg, clk, log)
	p.pool = pool
	p.borrowed = true
	return p
}

var _ contracts.Persister = (*Persister)(nil)

// Open establishes the connection pool. It must complete before the first
// record of a run is processed.
func (p *Persister) Open(ctx context.Context) error {
	if p.pool != nil {
		return nil
	}
	pool, err := postgres.Connect(ctx, p.cfg)
	if err != nil {
		return err
	}
	p.pool = pool
	p.log.Info("database connection pool created",
		zap.Int32("min_conns", p.cfg.MinConns),
		zap.Int32("max_conns", p.cfg.MaxConns))
	return nil
}

// Persist upserts rec and appends a price history entry. It returns a
// *domain.PersistenceError on failure; the error is terminal for this record
// only and never aborts the run.
func (p *Persister) Persist(ctx context.Context, rec *domain.CandidateRecord) (contracts.PersistResult, error) {
	if p.pool == nil {
		p.failed.Add(1)
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "acquire", Err: domain.ErrPersisterClosed}
	}

	res, err := p.attempt(ctx, rec)
	if isUniqueViolation(err) {
		// A concurrent persist of the same (platform, url) won the insert.
		// The row exists now, so one retry resolves to an update.
		p.log.Debug("insert raced with concurrent persist, retrying as update",
			zap.String("url", rec.URL))
		res, err = p.attempt(ctx, rec)
	}
	if err != nil {
		p.failed.Add(1)
		p.log.Error("database error",
			zap.String("platform", rec.Platform),
			zap.String("url", rec.URL),
			zap.Error(err))
		return contracts.PersistResult{}, err
	}

	if res.Created {
		p.created.Add(1)
	} else {
		p.updated.Add(1)
	}
	p.log.Debug("stored item",
		zap.String("product_name", rec.ProductName),
		zap.Float64("price", rec.Price),
		zap.Bool("created", res.Created))
	return res, nil
}

// attempt runs one full upsert transaction.
func (p *Persister) attempt(ctx context.Context, rec *domain.CandidateRecord) (contracts.PersistResult, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.cfg.AcquireTimeout)
	defer cancel()

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "acquire", Err: err}
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	res, err := p.upsertTx(ctx, tx, rec)
	if err != nil {
		return contracts.PersistResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "commit", Err: err}
	}
	return res, nil
}

// upsertTx performs the existence check, insert-or-update, and history append
// inside tx.
func (p *Persister) upsertTx(ctx context.Context, tx pgx.Tx, rec *domain.CandidateRecord) (contracts.PersistResult, error) {
	now := p.clk.Now()

	var id string
	err := tx.QueryRow(ctx, m_product.SelectIDByIdentitySQL(), rec.Platform, rec.URL).Scan(&id)

	created := false
	switch {
	case err == nil:
		if _, err := tx.Exec(ctx, m_product.UpdateSQL(), updateArgs(rec, now, id)...); err != nil {
			return contracts.PersistResult{}, &domain.PersistenceError{Op: "update", Err: err}
		}

	case errors.Is(err, pgx.ErrNoRows):
		if err := tx.QueryRow(ctx, m_product.InsertSQL(), insertArgs(rec, now)...).Scan(&id); err != nil {
			return contracts.PersistResult{}, &domain.PersistenceError{Op: "insert", Err: err}
		}
		created = true

	default:
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "lookup", Err: err}
	}

	recordedAt := rec.ScrapedAt
	if recordedAt.IsZero() {
		recordedAt = now
	}
	if _, err := tx.Exec(ctx, m_price_history.InsertSQL(), id, rec.Price, rec.Currency, recordedAt); err != nil {
		return contracts.PersistResult{}, &domain.PersistenceError{Op: "history", Err: err}
	}

	return contracts.PersistResult{ProductID: id, Created: created}, nil
}

// Stats returns a snapshot of the aggregate counters.
func (p *Persister) Stats() contracts.StoreStats {
	return contracts.StoreStats{
		Created: p.created.Load(),
		Updated: p.updated.Load(),
		Failed:  p.failed.Load(),
	}
}

// Close drains the pool after the last record and reports the aggregate
// counts. Pools supplied via NewWithPool are left open for their owner.
func (p *Persister) Close() contracts.StoreStats {
	if p.pool != nil && !p.borrowed {
		p.pool.Close()
	}
	p.pool = nil

	stats := p.Stats()
	p.log.Info("database pipeline stats",
		zap.Int64("saved", stats.Created),
		zap.Int64("updated", stats.Updated),
		zap.Int64("failed", stats.Failed))
	return stats
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	// 23505 = unique_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// specsOrEmpty guards the NOT NULL specs column against nil maps.
func specsOrEmpty(specs map[string]string) map[string]string {
	if specs == nil {
		return map[string]string{}
	}
	return specs
}

func insertArgs(rec *domain.CandidateRecord, now time.Time) []any {
	return []any{
		rec.Platform,
		rec.ProductName,
		rec.Brand,
		rec.Model,
		rec.Price,
		rec.OriginalPrice,
		rec.Currency,
		rec.URL,
		rec.ImageURL,
		rec.Processor,
		rec.RAM,
		rec.Storage,
		rec.ScreenSize,
		rec.Graphics,
		rec.OperatingSystem,
		rec.Condition,
		rec.Availability,
		specsOrEmpty(rec.Specs),
		rec.ScrapedAt,
		now, // created_at
		now, // updated_at
	}
}

func updateArgs(rec *domain.CandidateRecord, now time.Time, id string) []any {
	return []any{
		rec.ProductName,
		rec.Brand,
		rec.Model,
		rec.Price,
		rec.OriginalPrice,
		rec.Currency,
		rec.ImageURL,
		rec.Processor,
		rec.RAM,
		rec.Storage,
		rec.ScreenSize,
		rec.Graphics,
		rec.OperatingSystem,
		rec.Condition,
		rec.Availability,
		specsOrEmpty(rec.Specs),
		now, // updated_at
		id,
	}
}
