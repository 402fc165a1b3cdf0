package workload

import (
	"context"
	"fmt"
	"os"

	"rapbench/internal/core"
)

// FileRoundTrip returns a workload that creates a temp file, writes it,
// reads it back, rewrites it, and removes it. Every invocation owns its
// own file.
func FileRoundTrip() core.Workload {
	return core.WorkloadFunc(func(ctx context.Context) error {
		f, err := os.CreateTemp("", "rapbench-*.txt")
		if err != nil {
			return fmt.Errorf("creating temp file: %w", err)
		}
		path := f.Name()
		defer os.Remove(path)

		if _, err := f.WriteString("test content"); err != nil {
			f.Close()
			return fmt.Errorf("writing temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing temp file: %w", err)
		}

		if _, err := os.ReadFile(path); err != nil {
			return fmt.Errorf("reading temp file: %w", err)
		}
		if err := os.WriteFile(path, []byte("new content"), 0o600); err != nil {
			return fmt.Errorf("rewriting temp file: %w", err)
		}
		return nil
	})
}
