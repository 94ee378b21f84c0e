package metrics

import (
	"sync"
	"time"
)

type collectionStats struct {
	loads       int
	saves       int
	errors      int
	recoveries  int
	lastLatency time.Duration
}

type maintenanceStats struct {
	runs          int
	errors        int
	titlesChanged int
}

// Recorder captures lightweight, in-memory metrics about document store traffic
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*collectionStats
	maintenance maintenanceStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*collectionStats),
		otel:  otel,
	}
}

// RecordStoreOperation counts a load or save against a collection and stores its latency.
func (r *Recorder) RecordStoreOperation(collection, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(collection)
	switch op {
	case OpLoad:
		stats.loads++
	case OpSave:
		stats.saves++
	}
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOperation(collection, op, duration, err)
	}
}

// RecordRecovery tracks that a corrupt collection was backed up and reset.
func (r *Recorder) RecordRecovery(collection string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(collection).recoveries++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRecovery(collection)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordMaintenanceRun tracks a title renumbering pass.
func (r *Recorder) RecordMaintenanceRun(duration time.Duration, changed int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.maintenance.runs++
	r.maintenance.titlesChanged += changed
	if err != nil {
		r.maintenance.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMaintenance(duration, changed, err)
	}
}

// Snapshot is a copy of the stats recorded for one collection.
type Snapshot struct {
	Loads       int
	Saves       int
	Errors      int
	Recoveries  int
	LastLatency time.Duration
}

// Snapshot returns a copy of the current stats for the collection.
func (r *Recorder) Snapshot(collection string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[collection]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Loads:       stats.loads,
		Saves:       stats.saves,
		Errors:      stats.errors,
		Recoveries:  stats.recoveries,
		LastLatency: stats.lastLatency,
	}
}

// Recoveries returns how many times a collection was reset after corruption.
func (r *Recorder) Recoveries(collection string) int {
	return r.Snapshot(collection).Recoveries
}

// MaintenanceSnapshot is a copy of the maintenance counters.
type MaintenanceSnapshot struct {
	Runs          int
	Errors        int
	TitlesChanged int
}

// Maintenance returns a copy of the maintenance counters.
func (r *Recorder) Maintenance() MaintenanceSnapshot {
	if r == nil {
		return MaintenanceSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return MaintenanceSnapshot{
		Runs:          r.maintenance.runs,
		Errors:        r.maintenance.errors,
		TitlesChanged: r.maintenance.titlesChanged,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(collection string) *collectionStats {
	stats, ok := r.stats[collection]
	if !ok {
		stats = &collectionStats{}
		r.stats[collection] = stats
	}
	return stats
}
