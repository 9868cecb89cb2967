package espn

import (
	"strconv"
	"time"

	"github.com/gnhen/sports/internal/domain"
	"github.com/gnhen/sports/internal/leagues"
)

// rankSentinel is the upstream convention for "unranked": a rank at or
// above this value is noise, not a ranking.
const rankSentinel = 99

// MapGame normalizes one raw upstream event into the canonical Game. A
// malformed event (missing competition, missing home/away competitor,
// unparseable date) yields a MalformedEventError; the caller skips the
// event and continues with the rest of the batch.
func MapGame(event Event, league leagues.League) (domain.Game, error) {
	if len(event.Competitions) == 0 {
		return domain.Game{}, malformed(league.ID, event.ID, "no competitions")
	}
	comp := event.Competitions[0]

	home := findCompetitor(comp.Competitors, "home")
	away := findCompetitor(comp.Competitors, "away")
	if home == nil || away == nil {
		return domain.Game{}, malformed(league.ID, event.ID, "missing home or away competitor")
	}

	kickoff, err := parseEventDate(event.Date)
	if err != nil {
		return domain.Game{}, malformed(league.ID, event.ID, "unparseable date "+event.Date)
	}

	return domain.Game{
		ID:           event.ID,
		LeagueID:     league.ID,
		LeagueName:   league.Name,
		Kickoff:      kickoff,
		State:        mapState(event.Status.Type.State),
		StatusDetail: event.Status.Type.Detail,
		Network:      firstBroadcast(comp.Broadcasts),
		Home:         mapTeam(*home),
		Away:         mapTeam(*away),
	}, nil
}

func malformed(leagueID, eventID, reason string) *domain.MalformedEventError {
	return &domain.MalformedEventError{LeagueID: leagueID, EventID: eventID, Reason: reason}
}

func findCompetitor(competitors []Competitor, role string) *Competitor {
	for i := range competitors {
		if competitors[i].HomeAway == role {
			return &competitors[i]
		}
	}
	return nil
}

func mapTeam(c Competitor) domain.Team {
	return domain.Team{
		Abbreviation: c.Team.Abbreviation,
		LogoURL:      c.Team.Logo,
		Score:        parseScore(c.Score),
		Rank:         normalizeRank(c.CuratedRank),
		Record:       firstRecord(c.Records),
	}
}

func mapState(state string) domain.GameState {
	switch state {
	case "in":
		return domain.StateLive
	case "post":
		return domain.StateFinal
	default:
		// "pre" and anything unrecognized.
		return domain.StateScheduled
	}
}

// normalizeRank resolves the unranked sentinel once, here, so no consumer
// ever compares against it.
func normalizeRank(rank *CuratedRank) *int {
	if rank == nil || rank.Current >= rankSentinel {
		return nil
	}
	r := rank.Current
	return &r
}

func parseScore(raw string) *int {
	if raw == "" {
		return nil
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &score
}

// firstBroadcast walks broadcasts[0].names[0] defensively; any missing
// level yields the empty string.
func firstBroadcast(broadcasts []Broadcast) string {
	if len(broadcasts) == 0 || len(broadcasts[0].Names) == 0 {
		return ""
	}
	return broadcasts[0].Names[0]
}

func firstRecord(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	return records[0].Summary
}

// parseEventDate handles the upstream's minute-precision variant before
// falling back to RFC3339.
func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04Z07:00", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
