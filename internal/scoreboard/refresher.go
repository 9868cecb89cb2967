package scoreboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gnhen/sports/internal/logging"
)

const defaultRefreshInterval = time.Minute

// Refresher re-runs the fetch cycle for the current selection on an
// interval so live scores stay fresh between client requests.
type Refresher struct {
	svc      *Service
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	// boot selection used until a client picks a date.
	bootActive []string

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// NewRefresher constructs a Refresher with sane defaults. bootActive is
// the league selection used for the warm-up cycle on start.
func NewRefresher(svc *Service, logger *slog.Logger, interval time.Duration, bootActive []string) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		svc:        svc,
		logger:     logger,
		interval:   interval,
		now:        time.Now,
		bootActive: bootActive,
		done:       make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		logging.Info(r.logger, "refresher started", logging.FieldDurationMS, r.interval.Milliseconds())
		// Warm the working set on boot.
		r.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				r.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	start := r.now()
	r.recordAttempt(start)

	date, active := r.selection()
	if len(active) == 0 {
		// Nothing selected and no boot leagues; wait for a client.
		return
	}

	snap, err := r.svc.Replace(ctx, date, active)
	if err != nil {
		logging.Error(r.logger, "refresh cycle failed", err)
		r.recordFailure(err, start)
		return
	}

	r.recordSuccess(start)
	logging.Info(r.logger, "scoreboard refreshed",
		logging.FieldCount, snap.TotalGames(),
		logging.FieldDurationMS, r.now().Sub(start).Milliseconds())
}

// selection picks the current snapshot's date and leagues, falling back to
// today with the boot leagues before any client has selected a date.
func (r *Refresher) selection() (time.Time, []string) {
	if snap, ok := r.svc.Current(); ok {
		return snap.Date, snap.Active
	}
	return r.now(), r.bootActive
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
