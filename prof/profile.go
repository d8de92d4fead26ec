// Package prof times the optimization passes (BBMerge, FastTMerge,
// InternalHOpt, TOHPE, FastTODD) a pipeline run applies, for the CLI's
// verbose report.
package prof

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Pass names one of the pipeline's optimization passes.
type Pass string

const (
	BBMerge      Pass = "BBMerge"
	FastTMerge   Pass = "FastTMerge"
	InternalHOpt Pass = "InternalHOpt"
	TOHPE        Pass = "TOHPE"
	FastTODD     Pass = "FastTODD"
)

// Entry represents a single pass's timing measurement.
type Entry struct {
	Pass Pass
	Dur  time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start against the given pass.
func Track(start time.Time, pass Pass) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Pass: pass, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Report renders entries as the CLI's verbose pass-timing block.
func Report(entries []Entry) string {
	var b strings.Builder
	b.WriteString("Pass timings:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-16s %s\n", e.Pass, e.Dur)
	}
	return b.String()
}
