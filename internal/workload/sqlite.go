package workload

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"rapbench/internal/core"
)

// SQLite returns a workload that creates a throwaway SQLite database,
// creates a table, inserts a row, and queries it back. Every invocation
// owns its own database file.
func SQLite() core.Workload {
	return core.WorkloadFunc(func(ctx context.Context) error {
		dir, err := os.MkdirTemp("", "rapbench-sqlite-")
		if err != nil {
			return fmt.Errorf("creating temp dir: %w", err)
		}
		defer os.RemoveAll(dir)

		db, err := sql.Open("sqlite3", filepath.Join(dir, "bench.db"))
		if err != nil {
			// sql.Open only fails here when the driver is not
			// compiled in (cgo disabled).
			return fmt.Errorf("%w: sqlite3 driver: %v", ErrUnavailable, err)
		}
		defer db.Close()

		if _, err := db.ExecContext(ctx, `CREATE TABLE bench (id INTEGER PRIMARY KEY, payload TEXT)`); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO bench (payload) VALUES (?)`, "test content"); err != nil {
			return fmt.Errorf("inserting row: %w", err)
		}

		var count int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bench`).Scan(&count); err != nil {
			return fmt.Errorf("querying rows: %w", err)
		}
		if count != 1 {
			return fmt.Errorf("expected 1 row, found %d", count)
		}
		return nil
	})
}
