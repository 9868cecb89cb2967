package scoreboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gnhen/sports/internal/domain"
	"github.com/gnhen/sports/internal/espn"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/logging"
	"github.com/gnhen/sports/internal/metrics"
	"github.com/gnhen/sports/internal/timeutil"
)

// Source fetches one league's raw scoreboard events for a date.
type Source interface {
	Events(ctx context.Context, league leagues.League, date time.Time) ([]espn.Event, error)
}

// LeagueGames is one league's contribution to a fetch cycle, in registry
// order. A failed league is marked rather than dropped so consumers can
// distinguish "no games" from "feed down".
type LeagueGames struct {
	League leagues.League `json:"league"`
	Games  []domain.Game  `json:"games"`
	Failed bool           `json:"failed,omitempty"`
}

// Fetcher fans out one scoreboard request per active league and joins the
// results. Each league is isolated: its failure degrades it to an empty
// contribution and never aborts the cycle.
type Fetcher struct {
	source   Source
	registry *leagues.Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewFetcher constructs a Fetcher.
func NewFetcher(source Source, registry *leagues.Registry, logger *slog.Logger, recorder *metrics.Recorder) *Fetcher {
	return &Fetcher{
		source:   source,
		registry: registry,
		logger:   logger,
		metrics:  recorder,
	}
}

// FetchDate runs one fan-out/join cycle for the date and active league ids.
// Results come back in registry declaration order regardless of network
// completion order. An empty or fully-unknown selection is rejected with
// domain.ErrNoActiveLeagues before any request is issued.
func (f *Fetcher) FetchDate(ctx context.Context, date time.Time, active []string) ([]LeagueGames, error) {
	selected := f.registry.Select(active)
	if len(selected) == 0 {
		return nil, domain.ErrNoActiveLeagues
	}

	results := make([]LeagueGames, len(selected))

	var g errgroup.Group
	for i, lg := range selected {
		i, lg := i, lg
		g.Go(func() error {
			start := time.Now()
			events, err := f.source.Events(ctx, lg, date)
			f.metrics.RecordLeagueFetch(lg.ID, time.Since(start), err)
			if err != nil {
				lfe := &domain.LeagueFetchError{LeagueID: lg.ID, Err: err}
				logging.Warn(f.logger, "league fetch failed, degrading to empty",
					logging.FieldLeague, lg.ID, "error", lfe)
				results[i] = LeagueGames{League: lg, Failed: true}
				return nil
			}

			games, dropped := f.normalize(lg, events, date)
			f.metrics.RecordEvents(lg.ID, len(games), dropped)
			results[i] = LeagueGames{League: lg, Games: games}
			return nil
		})
	}

	// Goroutines absorb their own failures, so the join never errors.
	_ = g.Wait()

	return results, nil
}

// normalize maps a league's raw events to canonical games, skipping
// malformed events and reconciling kickoff dates against the requested
// local day. Returns the kept games and the count dropped by the date
// reconciler.
func (f *Fetcher) normalize(lg leagues.League, events []espn.Event, date time.Time) ([]domain.Game, int) {
	games := make([]domain.Game, 0, len(events))
	dropped := 0

	for _, ev := range events {
		game, err := espn.MapGame(ev, lg)
		if err != nil {
			f.metrics.RecordMalformedEvent(lg.ID)
			logging.Warn(f.logger, "skipping malformed event",
				logging.FieldLeague, lg.ID, logging.FieldEvent, ev.ID, "error", err)
			continue
		}
		if !timeutil.SameLocalDay(game.Kickoff, date) {
			dropped++
			continue
		}
		games = append(games, game)
	}

	return games, dropped
}
