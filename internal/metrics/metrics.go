package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	fetches         int
	errors          int
	eventsKept      int
	eventsDropped   int
	malformedEvents int
	lastLatency     time.Duration
}

// Recorder captures lightweight, in-memory metrics about fetch cycles and
// per-league requests. It is intentionally simple so it can be swapped for
// a real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*leagueStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*leagueStats),
		otel:  otel,
	}
}

// RecordLeagueFetch increments counters for one league's scoreboard request
// and stores the last observed latency.
func (r *Recorder) RecordLeagueFetch(league string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mutate(league, func(stats *leagueStats) {
		stats.fetches++
		stats.lastLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordLeagueFetch(league, duration, err)
	}
}

// RecordEvents tracks how many normalized events a league contributed and
// how many were dropped by the date reconciler.
func (r *Recorder) RecordEvents(league string, kept, dropped int) {
	if r == nil {
		return
	}

	r.mutate(league, func(stats *leagueStats) {
		stats.eventsKept += kept
		stats.eventsDropped += dropped
	})
	if r.otel != nil {
		r.otel.recordEvents(league, kept, dropped)
	}
}

// RecordMalformedEvent tracks an event skipped during normalization.
func (r *Recorder) RecordMalformedEvent(league string) {
	if r == nil {
		return
	}

	r.mutate(league, func(stats *leagueStats) {
		stats.malformedEvents++
	})
	if r.otel != nil {
		r.otel.recordMalformedEvent(league)
	}
}

// RecordCycle tracks one fan-out/join fetch cycle.
func (r *Recorder) RecordCycle(duration time.Duration, stale bool, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordCycle(duration, stale, err)
}

// RecordDetail tracks one detail enrichment request.
func (r *Recorder) RecordDetail(league string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordDetail(league, duration, err)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// LeagueFetches returns the total scoreboard requests recorded for a league.
func (r *Recorder) LeagueFetches(league string) int {
	return r.Snapshot(league).Fetches
}

// LeagueErrors returns the failed scoreboard requests recorded for a league.
func (r *Recorder) LeagueErrors(league string) int {
	return r.Snapshot(league).Errors
}

// EventsKept returns the reconciled event count recorded for a league.
func (r *Recorder) EventsKept(league string) int {
	return r.Snapshot(league).EventsKept
}

// EventsDropped returns the date-mismatch drops recorded for a league.
func (r *Recorder) EventsDropped(league string) int {
	return r.Snapshot(league).EventsDropped
}

// MalformedEvents returns skipped-event count recorded for a league.
func (r *Recorder) MalformedEvents(league string) int {
	return r.Snapshot(league).MalformedEvents
}

// LastFetchLatency returns the last recorded latency for a league fetch.
func (r *Recorder) LastFetchLatency(league string) time.Duration {
	return r.Snapshot(league).LastLatency
}

// Snapshot is a copy of the current stats for one league.
type Snapshot struct {
	Fetches         int
	Errors          int
	EventsKept      int
	EventsDropped   int
	MalformedEvents int
	LastLatency     time.Duration
}

func (r *Recorder) Snapshot(league string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(league)
	return Snapshot{
		Fetches:         stats.fetches,
		Errors:          stats.errors,
		EventsKept:      stats.eventsKept,
		EventsDropped:   stats.eventsDropped,
		MalformedEvents: stats.malformedEvents,
		LastLatency:     stats.lastLatency,
	}
}

// mutate applies fn to a league's stats while holding the lock, so
// concurrent fetch cycles never race on the counters.
func (r *Recorder) mutate(league string, fn func(*leagueStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[league]
	if !ok {
		stats = &leagueStats{}
		r.stats[league] = stats
	}
	fn(stats)
}

func (r *Recorder) snapshot(league string) leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[league]; ok && stats != nil {
		return *stats
	}
	return leagueStats{}
}
