package workload

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()

	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, want := range []string{"sleep", "busy", "file", "sqlite", "failing"} {
		entry, ok := Lookup(want)
		if !ok {
			t.Errorf("workload %q not registered", want)
			continue
		}
		if entry.Workload == nil {
			t.Errorf("workload %q has no implementation", want)
		}
		if entry.Description == "" {
			t.Errorf("workload %q has no description", want)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("no-such-workload"); ok {
		t.Error("expected lookup miss for unknown name")
	}
}

func TestSleep_Completes(t *testing.T) {
	w := Sleep(5 * time.Millisecond)

	start := time.Now()
	if err := w.Invoke(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("sleep returned after %v, expected >= 5ms", elapsed)
	}
}

func TestSleep_Cancellation(t *testing.T) {
	w := Sleep(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := w.Invoke(ctx); err == nil {
		t.Error("expected a cancellation error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled sleep took %v", elapsed)
	}
}

func TestBusy_HoldsForDuration(t *testing.T) {
	w := Busy(10 * time.Millisecond)

	start := time.Now()
	if err := w.Invoke(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("busy spin returned after %v, expected >= 10ms", elapsed)
	}
}

func TestFailing_AlwaysFails(t *testing.T) {
	w := Failing("nope")

	for i := 0; i < 3; i++ {
		err := w.Invoke(context.Background())
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Error() != "nope" {
			t.Errorf("error = %q, expected %q", err.Error(), "nope")
		}
		if errors.Is(err, ErrUnavailable) {
			t.Error("a plain failure must not look like an unavailable adapter")
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	w := FileRoundTrip()

	if err := w.Invoke(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSQLite(t *testing.T) {
	w := SQLite()

	err := w.Invoke(context.Background())
	if errors.Is(err, ErrUnavailable) {
		t.Skipf("sqlite adapter unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSQLite_Repeatable(t *testing.T) {
	w := SQLite()

	for i := 0; i < 3; i++ {
		err := w.Invoke(context.Background())
		if errors.Is(err, ErrUnavailable) {
			t.Skipf("sqlite adapter unavailable: %v", err)
		}
		if err != nil {
			t.Fatalf("invocation %d failed: %v", i, err)
		}
	}
}
