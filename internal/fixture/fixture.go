package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/gnhen/sports/internal/espn"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/timeutil"
)

// Source serves a deterministic scoreboard and summary for local runs and
// demos without touching the upstream API. Every league gets the same shape
// of day: one live game, one scheduled game, one final. Events derive from
// the requested date, so the fixture day is stable across calls.
type Source struct{}

// New creates a fixture source.
func New() *Source {
	return &Source{}
}

// Scoreboard returns a canned three-game day for the league.
func (s *Source) Scoreboard(ctx context.Context, league leagues.League, date time.Time) (*espn.ScoreboardResponse, error) {
	_ = ctx
	day := timeutil.StartOfDay(date)

	return &espn.ScoreboardResponse{Events: []espn.Event{
		s.liveEvent(league, day),
		s.scheduledEvent(league, day),
		s.finalEvent(league, day),
	}}, nil
}

// Events unwraps the canned scoreboard's event list.
func (s *Source) Events(ctx context.Context, league leagues.League, date time.Time) ([]espn.Event, error) {
	payload, err := s.Scoreboard(ctx, league, date)
	if err != nil {
		return nil, err
	}
	return payload.Events, nil
}

// Summary returns a canned box score with odds and a win probability series.
func (s *Source) Summary(ctx context.Context, league leagues.League, eventID string) (*espn.SummaryResponse, error) {
	_ = ctx
	_ = eventID

	awayML := -150.0
	homeML := 130.0
	return &espn.SummaryResponse{
		Boxscore: espn.Boxscore{
			Teams: []espn.BoxscoreTeam{
				{
					Team: espn.TeamInfo{Abbreviation: "AAA"},
					Statistics: []espn.TeamStatistic{
						{Label: "Total Yards", DisplayValue: "312"},
						{Label: "Turnovers", DisplayValue: "1"},
					},
				},
				{
					Team: espn.TeamInfo{Abbreviation: "HHH"},
					Statistics: []espn.TeamStatistic{
						{Label: "Total Yards", DisplayValue: "287"},
						{Label: "Turnovers", DisplayValue: "2"},
					},
				},
			},
			Players: []espn.BoxscorePlayers{
				{
					Team: espn.TeamInfo{Abbreviation: "AAA"},
					Statistics: []espn.PlayerStatGroup{{
						Name:   "passing",
						Labels: []string{"C/ATT", "YDS", "TD"},
						Athletes: []espn.AthleteLine{{
							Athlete: espn.Athlete{DisplayName: "Sam Archer"},
							Stats:   []string{"21/30", "243", "2"},
						}},
					}},
				},
				{
					Team: espn.TeamInfo{Abbreviation: "HHH"},
					Statistics: []espn.PlayerStatGroup{{
						Name:   "passing",
						Labels: []string{"C/ATT", "YDS", "TD"},
						Athletes: []espn.AthleteLine{{
							Athlete: espn.Athlete{DisplayName: "Reed Holt"},
							Stats:   []string{"18/27", "198", "1"},
						}},
					}},
				},
			},
		},
		Pickcenter: []espn.Pickcenter{{
			Details:      "AAA -3.5",
			Spread:       -3.5,
			OverUnder:    44.5,
			AwayTeamOdds: espn.TeamOdds{MoneyLine: &awayML},
			HomeTeamOdds: espn.TeamOdds{MoneyLine: &homeML},
		}},
		WinProbability: []espn.WinProbabilityPoint{
			{HomeWinPercentage: 0.5},
			{HomeWinPercentage: 0.38},
		},
	}, nil
}

func (s *Source) liveEvent(league leagues.League, day time.Time) espn.Event {
	event := s.baseEvent(league, "live", day.Add(17*time.Hour))
	event.Status.Type = espn.StatusType{State: "in", Detail: "8:42 - 3rd"}
	event.Competitions[0].Competitors[0].Score = "21"
	event.Competitions[0].Competitors[1].Score = "17"
	if league.PossessionSituations {
		event.Competitions[0].Situation = &espn.Situation{
			DownDistanceText: "2nd & 7 at HHH 34",
			PossessionText:   "AAA ball",
			LastPlay:         &espn.LastPlay{Text: "Run up the middle for 3 yards"},
		}
	}
	event.Competitions[0].Leaders = []espn.LeaderCategory{{
		Name:        "passingYards",
		DisplayName: "Passing Leader",
		Leaders: []espn.LeaderEntry{{
			DisplayValue: "243 YDS, 2 TD",
			Athlete:      espn.Athlete{DisplayName: "Sam Archer"},
			Team:         &espn.TeamInfo{Abbreviation: "AAA"},
		}},
	}}
	return event
}

func (s *Source) scheduledEvent(league leagues.League, day time.Time) espn.Event {
	event := s.baseEvent(league, "sched", day.Add(20*time.Hour))
	event.Status.Type = espn.StatusType{State: "pre", Detail: "8:00 PM ET"}
	return event
}

func (s *Source) finalEvent(league leagues.League, day time.Time) espn.Event {
	event := s.baseEvent(league, "final", day.Add(13*time.Hour))
	event.Status.Type = espn.StatusType{State: "post", Detail: "Final"}
	event.Competitions[0].Competitors[0].Score = "31"
	event.Competitions[0].Competitors[1].Score = "28"
	return event
}

func (s *Source) baseEvent(league leagues.League, kind string, kickoff time.Time) espn.Event {
	homeRank := 8
	awayRank := 14
	home := espn.Competitor{
		HomeAway:    "home",
		Team:        espn.TeamInfo{Abbreviation: "HHH", DisplayName: "Home Harriers"},
		CuratedRank: &espn.CuratedRank{Current: homeRank},
		Records:     []espn.Record{{Summary: "7-3"}},
	}
	away := espn.Competitor{
		HomeAway:    "away",
		Team:        espn.TeamInfo{Abbreviation: "AAA", DisplayName: "Away Aces"},
		CuratedRank: &espn.CuratedRank{Current: awayRank},
		Records:     []espn.Record{{Summary: "8-2"}},
	}
	if league.MajorTier {
		// Major leagues have no poll rankings upstream.
		home.CuratedRank = nil
		away.CuratedRank = nil
	}

	return espn.Event{
		ID:   fmt.Sprintf("fixture-%s-%s", league.ID, kind),
		Date: kickoff.UTC().Format(time.RFC3339),
		Competitions: []espn.Competition{{
			Competitors: []espn.Competitor{home, away},
			Broadcasts:  []espn.Broadcast{{Names: []string{"FIX1"}}},
			Venue:       &espn.Venue{FullName: "Fixture Field"},
		}},
	}
}
