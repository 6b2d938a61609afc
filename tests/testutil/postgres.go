package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricetrack-service/internal/models/m_price_history"
	"github.com/light-bringer/pricetrack-service/internal/models/m_product"
	"github.com/light-bringer/pricetrack-service/internal/pkg/postgres"
)

// TestDatabaseEnv names the environment variable carrying the test database
// DSN. Store-backed tests skip when it is unset.
const TestDatabaseEnv = "TEST_DATABASE_URL"

// SetupPostgresTest creates a pool against the test database and returns it
// with a cleanup function. The database is truncated before and after the
// test for isolation.
func SetupPostgresTest(t *testing.T) (*pgxpool.Pool, func()) {
	return SetupPostgresTestWithConns(t, 1, 10)
}

// SetupPostgresTestWithConns is SetupPostgresTest with explicit pool bounds,
// for tests that exercise pool exhaustion.
func SetupPostgresTestWithConns(t *testing.T, minConns, maxConns int32) (*pgxpool.Pool, func()) {
	t.Helper()

	dsn := os.Getenv(TestDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping store test", TestDatabaseEnv)
	}

	ctx := context.Background()

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "failed to parse test DSN")
	cfg.MinConns = minConns
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err, "failed to create test pool")
	require.NoError(t, pool.Ping(ctx), "test database unreachable")

	CleanDatabase(t, pool)

	cleanup := func() {
		CleanDatabase(t, pool)
		pool.Close()
	}
	return pool, cleanup
}

// TestStoreConfig returns a postgres.Config suitable for a Persister over a
// test pool (only the pool-behavior fields matter there).
func TestStoreConfig() postgres.Config {
	return postgres.Config{
		MinConns:       1,
		MaxConns:       10,
		AcquireTimeout: 5 * time.Second,
	}
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), fmt.Sprintf(
		"TRUNCATE %s, %s RESTART IDENTITY CASCADE",
		m_price_history.TableName, m_product.TableName,
	))
	require.NoError(t, err, "failed to clean database")
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err, "failed to count rows in %s", table)
	return n
}

// ProductPrice reads the stored price for a product id.
func ProductPrice(t *testing.T, pool *pgxpool.Pool, productID string) float64 {
	t.Helper()

	var price float64
	err := pool.QueryRow(context.Background(), fmt.Sprintf(
		"SELECT %s::float8 FROM %s WHERE %s = $1",
		m_product.Price, m_product.TableName, m_product.ID,
	), productID).Scan(&price)
	require.NoError(t, err, "failed to read product price")
	return price
}
