// Package detail builds the per-game detail view by re-fetching the
// scoreboard and merging in the summary/box-score payload.
package detail

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gnhen/sports/internal/domain"
	"github.com/gnhen/sports/internal/espn"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/logging"
	"github.com/gnhen/sports/internal/metrics"
	"github.com/gnhen/sports/internal/predict"
)

// Upstream is the two-call surface the enricher needs from the API client.
type Upstream interface {
	Scoreboard(ctx context.Context, league leagues.League, date time.Time) (*espn.ScoreboardResponse, error)
	Summary(ctx context.Context, league leagues.League, eventID string) (*espn.SummaryResponse, error)
}

// Enricher assembles a GameDetail fresh per request. Nothing here is cached;
// detail views always reflect the upstream as of now.
type Enricher struct {
	upstream Upstream
	registry *leagues.Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewEnricher constructs the detail pipeline.
func NewEnricher(upstream Upstream, registry *leagues.Registry, logger *slog.Logger, recorder *metrics.Recorder) *Enricher {
	return &Enricher{
		upstream: upstream,
		registry: registry,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Enrich fetches the league scoreboard for the date, locates the event, and
// layers in the summary sections. The scoreboard call is required; the
// summary call is skipped for leagues without a summary feed, and each
// summary section is independently optional.
func (e *Enricher) Enrich(ctx context.Context, leagueID, eventID string, date time.Time) (*domain.GameDetail, error) {
	start := e.now()

	league, ok := e.registry.Lookup(leagueID)
	if !ok {
		e.metrics.RecordDetail(leagueID, e.now().Sub(start), domain.ErrEventNotFound)
		return nil, domain.ErrEventNotFound
	}

	payload, err := e.upstream.Scoreboard(ctx, league, date)
	if err != nil {
		wrapped := &domain.DetailFetchError{LeagueID: leagueID, EventID: eventID, Err: err}
		e.metrics.RecordDetail(leagueID, e.now().Sub(start), wrapped)
		return nil, wrapped
	}

	event := findEvent(payload.Events, eventID)
	if event == nil {
		e.metrics.RecordDetail(leagueID, e.now().Sub(start), domain.ErrEventNotFound)
		return nil, domain.ErrEventNotFound
	}

	game, err := espn.MapGame(*event, league)
	if err != nil {
		wrapped := &domain.DetailFetchError{LeagueID: leagueID, EventID: eventID, Err: err}
		e.metrics.RecordDetail(leagueID, e.now().Sub(start), wrapped)
		return nil, wrapped
	}

	out := &domain.GameDetail{Game: game}
	comp := event.Competitions[0]
	applyCompetition(out, comp, league)

	if league.SummaryPath != "" {
		summary, err := e.upstream.Summary(ctx, league, eventID)
		if err != nil {
			wrapped := &domain.DetailFetchError{LeagueID: leagueID, EventID: eventID, Err: err}
			e.metrics.RecordDetail(leagueID, e.now().Sub(start), wrapped)
			return nil, wrapped
		}
		applySummary(out, summary)
	}

	applyPrediction(out)

	e.metrics.RecordDetail(leagueID, e.now().Sub(start), nil)
	logging.Info(e.logger, "detail enriched",
		logging.FieldLeague, leagueID,
		logging.FieldEvent, eventID,
		logging.FieldDurationMS, e.now().Sub(start).Milliseconds())
	return out, nil
}

func findEvent(events []espn.Event, id string) *espn.Event {
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

// applyCompetition fills the sections available from the scoreboard event
// alone: venue, broadcasts, linescores, and the live-only situation and
// leaders.
func applyCompetition(out *domain.GameDetail, comp espn.Competition, league leagues.League) {
	if comp.Venue != nil {
		out.Venue = comp.Venue.FullName
	}
	for _, b := range comp.Broadcasts {
		out.Broadcasts = append(out.Broadcasts, b.Names...)
	}

	home := findCompetitor(comp.Competitors, "home")
	away := findCompetitor(comp.Competitors, "away")
	if home != nil && away != nil {
		out.Linescores = mapLinescores(away.Linescores, home.Linescores)
	}

	if !out.IsLive() {
		return
	}
	if league.PossessionSituations && comp.Situation != nil {
		out.Situation = &domain.Situation{
			Possession:   comp.Situation.PossessionText,
			DownDistance: comp.Situation.DownDistanceText,
		}
		if comp.Situation.LastPlay != nil {
			out.Situation.LastPlay = comp.Situation.LastPlay.Text
		}
	}
	out.Leaders = mapLeaders(comp.Leaders)
}

func findCompetitor(competitors []espn.Competitor, role string) *espn.Competitor {
	for i := range competitors {
		if competitors[i].HomeAway == role {
			return &competitors[i]
		}
	}
	return nil
}

func mapLinescores(away, home []espn.Linescore) *domain.Linescores {
	if len(away) == 0 && len(home) == 0 {
		return nil
	}
	periods := len(away)
	if len(home) > periods {
		periods = len(home)
	}
	out := &domain.Linescores{}
	for i := 0; i < periods; i++ {
		out.Periods = append(out.Periods, periodLabel(i+1))
		out.Away = append(out.Away, linescoreValue(away, i))
		out.Home = append(out.Home, linescoreValue(home, i))
	}
	return out
}

func linescoreValue(scores []espn.Linescore, i int) int {
	if i >= len(scores) {
		return 0
	}
	return int(scores[i].Value)
}

func periodLabel(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}

func mapLeaders(categories []espn.LeaderCategory) []domain.Leader {
	var out []domain.Leader
	for _, cat := range categories {
		if len(cat.Leaders) == 0 {
			continue
		}
		top := cat.Leaders[0]
		leader := domain.Leader{
			Category:     leaderCategoryName(cat),
			Athlete:      top.Athlete.DisplayName,
			DisplayValue: top.DisplayValue,
		}
		if top.Team != nil {
			leader.Team = top.Team.Abbreviation
		}
		out = append(out, leader)
	}
	return out
}

func leaderCategoryName(cat espn.LeaderCategory) string {
	if cat.DisplayName != "" {
		return cat.DisplayName
	}
	return cat.Name
}

// applySummary merges box score, odds, and win probability. Teams in the
// summary payload carry no home/away flag, so sides are matched by
// abbreviation against the already-normalized game.
func applySummary(out *domain.GameDetail, summary *espn.SummaryResponse) {
	out.TeamStats = mapTeamStats(summary.Boxscore.Teams, out.Away.Abbreviation, out.Home.Abbreviation)
	out.PlayerStats = mapPlayerStats(summary.Boxscore.Players)

	if len(summary.Pickcenter) > 0 {
		pick := summary.Pickcenter[0]
		out.Odds = &domain.GameOdds{
			Details:       pick.Details,
			Spread:        pick.Spread,
			OverUnder:     pick.OverUnder,
			AwayMoneyline: pick.AwayTeamOdds.MoneyLine,
			HomeMoneyline: pick.HomeTeamOdds.MoneyLine,
		}
	}

	if len(summary.WinProbability) > 0 {
		last := summary.WinProbability[len(summary.WinProbability)-1]
		homePct := last.HomeWinPercentage * 100
		out.WinProbability = &domain.WinProbability{
			AwayPct: 100 - homePct,
			HomePct: homePct,
		}
	}
}

// mapTeamStats pairs both sides' rows by index up to the shorter list. Both
// sides must be present in the payload; otherwise the section is omitted.
func mapTeamStats(teams []espn.BoxscoreTeam, awayAbbr, homeAbbr string) []domain.TeamStatRow {
	away := findBoxscoreTeam(teams, awayAbbr)
	home := findBoxscoreTeam(teams, homeAbbr)
	if away == nil || home == nil {
		return nil
	}

	n := len(away.Statistics)
	if len(home.Statistics) < n {
		n = len(home.Statistics)
	}
	var out []domain.TeamStatRow
	for i := 0; i < n; i++ {
		out = append(out, domain.TeamStatRow{
			Label: away.Statistics[i].Label,
			Away:  away.Statistics[i].DisplayValue,
			Home:  home.Statistics[i].DisplayValue,
		})
	}
	return out
}

func findBoxscoreTeam(teams []espn.BoxscoreTeam, abbr string) *espn.BoxscoreTeam {
	if abbr == "" {
		return nil
	}
	for i := range teams {
		if teams[i].Team.Abbreviation == abbr {
			return &teams[i]
		}
	}
	return nil
}

func mapPlayerStats(players []espn.BoxscorePlayers) []domain.TeamPlayerStats {
	var out []domain.TeamPlayerStats
	for _, side := range players {
		team := domain.TeamPlayerStats{Team: side.Team.Abbreviation}
		for _, group := range side.Statistics {
			mapped := domain.StatGroup{Name: group.Name, Headers: group.Labels}
			for _, line := range group.Athletes {
				mapped.Rows = append(mapped.Rows, domain.PlayerRow{
					Name:   line.Athlete.DisplayName,
					Values: line.Stats,
				})
			}
			if len(mapped.Rows) > 0 {
				team.Groups = append(team.Groups, mapped)
			}
		}
		if len(team.Groups) > 0 {
			out = append(out, team)
		}
	}
	return out
}

// applyPrediction attaches the pre-game estimate for scheduled games. The
// predictor stays nil when no signal is usable.
func applyPrediction(out *domain.GameDetail) {
	if out.State != domain.StateScheduled {
		return
	}

	var odds *predict.Estimate
	if out.Odds != nil {
		if est, ok := predict.FromMoneylines(out.Odds.AwayMoneyline, out.Odds.HomeMoneyline); ok {
			odds = &est
		}
	}
	var records *predict.Estimate
	if est, ok := predict.FromRecords(out.Away.Record, out.Home.Record); ok {
		records = &est
	}
	out.Predictor = predict.Blend(odds, records)
}
