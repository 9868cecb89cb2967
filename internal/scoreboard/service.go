package scoreboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gnhen/sports/internal/logging"
	"github.com/gnhen/sports/internal/metrics"
	"github.com/gnhen/sports/internal/timeutil"
)

// Snapshot is one completed fetch cycle: the whole working set for one
// selected date. It is immutable once committed; a new selection replaces
// it wholesale.
type Snapshot struct {
	Date       time.Time
	Active     []string
	Leagues    []LeagueGames
	FetchedAt  time.Time
	Generation uint64
}

// TotalGames counts games across all leagues before any visibility policy.
func (s Snapshot) TotalGames() int {
	total := 0
	for _, lg := range s.Leagues {
		total += len(lg.Games)
	}
	return total
}

// AllFailed reports whether every selected league's fetch failed.
func (s Snapshot) AllFailed() bool {
	if len(s.Leagues) == 0 {
		return false
	}
	for _, lg := range s.Leagues {
		if !lg.Failed {
			return false
		}
	}
	return true
}

// Matches reports whether the snapshot already covers the given selection.
func (s Snapshot) Matches(date time.Time, active []string) bool {
	if !timeutil.SameLocalDay(date, s.Date) {
		return false
	}
	if len(active) != len(s.Active) {
		return false
	}
	seen := make(map[string]bool, len(s.Active))
	for _, id := range s.Active {
		seen[id] = true
	}
	for _, id := range active {
		if !seen[id] {
			return false
		}
	}
	return true
}

// Service owns the in-memory working set. It is the only mutator; readers
// get value copies. Each cycle captures a generation id at start and a
// join that settles after a newer cycle has begun is discarded, which
// closes the stale-overwrite race on rapid date changes.
type Service struct {
	fetcher *Fetcher
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu         sync.RWMutex
	generation uint64
	hasCurrent bool
	current    Snapshot
}

// NewService constructs the working-set service.
func NewService(fetcher *Fetcher, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Replace runs a fetch cycle for the selection and commits the result as
// the new working set, unless a newer cycle started in the meantime — then
// the stale join is discarded and the freshest committed snapshot is
// returned instead. The returned snapshot is always the authoritative
// working set after this call settles.
func (s *Service) Replace(ctx context.Context, date time.Time, active []string) (Snapshot, error) {
	start := s.now()
	gen := s.beginCycle()

	results, err := s.fetcher.FetchDate(ctx, date, active)
	elapsed := s.now().Sub(start)
	if err != nil {
		s.metrics.RecordCycle(elapsed, false, err)
		return Snapshot{}, err
	}

	snap := Snapshot{
		Date:       timeutil.StartOfDay(date),
		Active:     append([]string(nil), active...),
		Leagues:    results,
		FetchedAt:  s.now(),
		Generation: gen,
	}

	s.mu.Lock()
	stale := gen != s.generation
	if !stale {
		s.current = snap
		s.hasCurrent = true
	}
	committed := s.current
	s.mu.Unlock()

	s.metrics.RecordCycle(elapsed, stale, nil)
	if stale {
		logging.Info(s.logger, "discarding stale fetch cycle",
			logging.FieldGeneration, gen,
			logging.FieldDate, timeutil.FormatDate(date))
		return committed, nil
	}

	logging.Info(s.logger, "working set replaced",
		logging.FieldGeneration, gen,
		logging.FieldDate, timeutil.FormatDate(snap.Date),
		logging.FieldCount, snap.TotalGames(),
		logging.FieldDurationMS, elapsed.Milliseconds())
	return snap, nil
}

// Ensure returns the current snapshot when it already covers the selection
// and is fresh enough, running a new cycle otherwise. maxAge <= 0 always
// refetches on a selection match miss only.
func (s *Service) Ensure(ctx context.Context, date time.Time, active []string, maxAge time.Duration) (Snapshot, error) {
	s.mu.RLock()
	current, ok := s.current, s.hasCurrent
	s.mu.RUnlock()

	if ok && current.Matches(date, active) {
		if maxAge <= 0 || s.now().Sub(current.FetchedAt) < maxAge {
			return current, nil
		}
	}
	return s.Replace(ctx, date, active)
}

// Current returns the committed working set, if any cycle has completed.
func (s *Service) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasCurrent
}

// Ready reports whether at least one cycle has committed.
func (s *Service) Ready() bool {
	_, ok := s.Current()
	return ok
}

func (s *Service) beginCycle() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}
