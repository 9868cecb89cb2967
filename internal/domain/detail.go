package domain

// GameDetail extends a Game with data merged from the scoreboard event and
// the summary/box-score payload. Every section beyond the embedded Game is
// optional; consumers render whatever is present. A GameDetail is built
// fresh per request and never stored.
type GameDetail struct {
	Game

	Venue      string   `json:"venue,omitempty"`
	Broadcasts []string `json:"broadcasts,omitempty"`

	// Linescores holds per-period scores, present only when at least one
	// side reported them.
	Linescores *Linescores `json:"linescores,omitempty"`

	// TeamStats pairs both sides' statistic rows by index, present only
	// when both sides exposed a statistics list.
	TeamStats []TeamStatRow `json:"teamStats,omitempty"`

	// PlayerStats groups player lines by team then stat category.
	PlayerStats []TeamPlayerStats `json:"playerStats,omitempty"`

	// Situation is set only for live games in leagues with possession
	// semantics.
	Situation *Situation `json:"situation,omitempty"`

	// Leaders carries the top performer per category for live games.
	Leaders []Leader `json:"leaders,omitempty"`

	// WinProbability reflects the most recent entry of the win-probability
	// series, whenever the summary carries one.
	WinProbability *WinProbability `json:"winProbability,omitempty"`

	// Predictor is the pre-game matchup estimate, only for scheduled games
	// with at least one usable signal.
	Predictor *MatchupPredictor `json:"predictor,omitempty"`

	// Odds echoes the first pickcenter entry when present.
	Odds *GameOdds `json:"odds,omitempty"`
}

// Linescores holds period-by-period scoring for both sides.
type Linescores struct {
	Periods []string `json:"periods"`
	Away    []int    `json:"away"`
	Home    []int    `json:"home"`
}

// TeamStatRow is one label with both sides' display values.
type TeamStatRow struct {
	Label string `json:"label"`
	Away  string `json:"away"`
	Home  string `json:"home"`
}

// TeamPlayerStats groups player statistic tables for one team.
type TeamPlayerStats struct {
	Team   string      `json:"team"`
	Groups []StatGroup `json:"groups"`
}

// StatGroup is one stat category (e.g. passing, rebounds) with uniform
// column headers across its rows.
type StatGroup struct {
	Name    string      `json:"name"`
	Headers []string    `json:"headers"`
	Rows    []PlayerRow `json:"rows"`
}

// PlayerRow is one athlete's values for a stat group.
type PlayerRow struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Situation captures live possession data for football-style leagues.
type Situation struct {
	Possession   string `json:"possession,omitempty"`
	DownDistance string `json:"downDistance,omitempty"`
	LastPlay     string `json:"lastPlay,omitempty"`
}

// Leader is the top performer in one leader category.
type Leader struct {
	Category     string `json:"category"`
	Athlete      string `json:"athlete"`
	Team         string `json:"team,omitempty"`
	DisplayValue string `json:"displayValue"`
}

// WinProbability is the latest live model estimate, percentages summing
// to 100.
type WinProbability struct {
	AwayPct float64 `json:"awayPct"`
	HomePct float64 `json:"homePct"`
}

// MatchupPredictor is the blended pre-game estimate plus the label naming
// which signals contributed.
type MatchupPredictor struct {
	AwayPct float64 `json:"awayPct"`
	HomePct float64 `json:"homePct"`
	Basis   string  `json:"basis"`
}

// GameOdds echoes pickcenter odds for a game.
type GameOdds struct {
	Details       string   `json:"details,omitempty"`
	Spread        float64  `json:"spread,omitempty"`
	OverUnder     float64  `json:"overUnder,omitempty"`
	AwayMoneyline *float64 `json:"awayMoneyline,omitempty"`
	HomeMoneyline *float64 `json:"homeMoneyline,omitempty"`
}
