// Command ingestd runs one ingestion session over a batch of candidate
// records produced by the scraper agents.
//
// Records arrive as NDJSON (one CandidateRecord per line) on stdin or from a
// file; the feed format belongs to this runner, not to the pipeline core.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetrack-service/internal/app/ingest/domain"
	"github.com/light-bringer/pricetrack-service/internal/pkg/postgres"
	"github.com/light-bringer/pricetrack-service/internal/services"
)

var (
	inputPath = flag.String("input", "-", "NDJSON candidate record feed ('-' for stdin)")
	workers   = flag.Int("workers", 4, "concurrent records in flight")
	debug     = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ingestd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log, err := newLogger(*debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	sessionID := uuid.New().String()
	log = log.With(zap.String("session_id", sessionID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := postgres.NewConfigFromEnv()
	log.Info("starting ingestion session",
		zap.String("database", dbCfg.Database),
		zap.Int("workers", *workers))

	opts, err := services.NewServiceOptions(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer opts.Close()

	in, closeInput, err := openInput(*inputPath)
	if err != nil {
		return err
	}
	defer closeInput()

	records := make(chan *domain.CandidateRecord, *workers)
	go func() {
		defer close(records)
		feed(ctx, in, records, log)
	}()

	stats := opts.Pipeline.Run(ctx, records, *workers)

	if stats.Failed > 0 {
		return fmt.Errorf("%d records failed to persist", stats.Failed)
	}
	return nil
}

// feed decodes NDJSON lines into candidate records. Undecodable lines are
// logged and skipped; they never reach the pipeline.
func feed(ctx context.Context, r io.Reader, records chan<- *domain.CandidateRecord, log *zap.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		rec := &domain.CandidateRecord{}
		if err := json.Unmarshal(raw, rec); err != nil {
			log.Warn("skipping undecodable feed line", zap.Int("line", line), zap.Error(err))
			continue
		}

		select {
		case <-ctx.Done():
			return
		case records <- rec:
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("feed read error", zap.Error(err))
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
