// Package workload provides the named workload adapters the detector can
// measure. Adapters create and clean up their own ephemeral resources per
// invocation; a missing capability surfaces as ErrUnavailable with a
// user-actionable message, distinct from an ordinary per-task failure.
package workload

import (
	"errors"
	"sort"
	"time"

	"rapbench/internal/core"
)

// ErrUnavailable marks a workload whose required capability is missing on
// this system. Callers should treat it as a setup problem, not a measured
// failure.
var ErrUnavailable = errors.New("workload adapter unavailable")

// Entry is a registered workload adapter.
type Entry struct {
	Name        string
	Description string
	Workload    core.Workload
}

var registry = map[string]Entry{
	"sleep": {
		Name:        "sleep",
		Description: "cooperative 1ms timer sleep (genuine-async probe)",
		Workload:    Sleep(time.Millisecond),
	},
	"busy": {
		Name:        "busy",
		Description: "spin for 50ms without yielding (fake-async stand-in)",
		Workload:    Busy(50 * time.Millisecond),
	},
	"file": {
		Name:        "file",
		Description: "temp file write/read/rewrite round trip",
		Workload:    FileRoundTrip(),
	},
	"sqlite": {
		Name:        "sqlite",
		Description: "temp SQLite database create/insert/query",
		Workload:    SQLite(),
	},
	"failing": {
		Name:        "failing",
		Description: "always fails (exercise failure accounting)",
		Workload:    Failing("workload configured to fail"),
	},
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns the registered adapter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
