package policy

import (
	"sort"

	"github.com/gnhen/sports/internal/domain"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/scoreboard"
)

// rankCutoff is the highest poll rank that keeps a game visible when the
// show-all toggle is off.
const rankCutoff = 25

// Section is one league's visible games, ordered for display.
type Section struct {
	League leagues.League
	Games  []domain.Game
}

// Sections applies the visibility policy per league and orders each
// section's games live-first, then by kickoff. Leagues with no visible
// games are omitted; failed leagues were already emptied upstream.
func Sections(groups []scoreboard.LeagueGames, showAll bool) []Section {
	var out []Section
	for _, group := range groups {
		games := visible(group, showAll)
		if len(games) == 0 {
			continue
		}
		Order(games)
		out = append(out, Section{League: group.League, Games: games})
	}
	return out
}

func visible(group scoreboard.LeagueGames, showAll bool) []domain.Game {
	if group.League.MajorTier || showAll {
		return append([]domain.Game(nil), group.Games...)
	}
	var out []domain.Game
	for _, game := range group.Games {
		if ranked(game.Home.Rank) || ranked(game.Away.Rank) {
			out = append(out, game)
		}
	}
	return out
}

func ranked(rank *int) bool {
	return rank != nil && *rank <= rankCutoff
}

// Order sorts games in place: live games ahead of everything else, then by
// kickoff ascending. The sort is stable so equal games keep their upstream
// order.
func Order(games []domain.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		li, lj := games[i].IsLive(), games[j].IsLive()
		if li != lj {
			return li
		}
		return games[i].Kickoff.Before(games[j].Kickoff)
	})
}
