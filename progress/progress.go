// Package progress reports the progress of long-running transfers.
//
// Fetches report two phases: "Objects" while objects are counted, compressed
// and received, then "Deltas" while deltas are resolved. Components accept a
// Reporter so the caller decides how progress is shown.
package progress

import (
	"log/slog"
	"sync"
)

// Phase names emitted for fetch transfers.
const (
	PhaseObjects = "Objects"
	PhaseDeltas  = "Deltas"
)

// Reporter receives progress updates. Implementations must be safe for use
// from the goroutine that drives a fetch.
type Reporter interface {
	// Phase starts a new phase with the given total item count.
	Phase(name string, total int64)
	// Update sets the number of items completed in the current phase.
	Update(current int64)
	// Done marks the transfer as finished.
	Done()
}

type nop struct{}

func (nop) Phase(string, int64) {}
func (nop) Update(int64)        {}
func (nop) Done()               {}

// Nop returns a Reporter that discards every update.
func Nop() Reporter {
	return nop{}
}

// LogReporter writes phase changes and completion to a structured logger.
type LogReporter struct {
	logger *slog.Logger

	mu      sync.Mutex
	phase   string
	total   int64
	current int64
	last    int64
}

// NewLogReporter returns a Reporter backed by logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Phase(name string, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == r.phase && total == r.total {
		return
	}
	r.phase, r.total, r.current, r.last = name, total, 0, 0
	r.logger.Debug("transfer phase", "phase", name, "total", total)
}

// Update logs at most once per quarter of the phase.
func (r *LogReporter) Update(current int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = current
	if r.total <= 0 {
		return
	}
	quarter := current * 4 / r.total
	if quarter > r.last {
		r.last = quarter
		r.logger.Debug("transfer progress", "phase", r.phase, "current", current, "total", r.total)
	}
}

func (r *LogReporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == "" {
		return
	}
	r.logger.Debug("transfer complete", "phase", r.phase, "current", r.current, "total", r.total)
	r.phase, r.total, r.current, r.last = "", 0, 0, 0
}
