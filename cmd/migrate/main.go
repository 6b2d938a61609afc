// Command migrate applies the SQL migration files to the configured Postgres
// database, in lexical order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/light-bringer/pricetrack-service/internal/pkg/postgres"
)

var migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")

func main() {
	flag.Parse()

	ctx := context.Background()
	if err := run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully!")
}

func run(ctx context.Context) error {
	cfg := postgres.NewConfigFromEnv()

	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	files, err := migrationFiles(*migrateDir)
	if err != nil {
		return err
	}

	for _, file := range files {
		log.Printf("Applying %s...", filepath.Base(file))

		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql files in %s", dir)
	}
	return files, nil
}
