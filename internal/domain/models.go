package domain

import "time"

// GameState mirrors the lifecycle states exposed to consumers.
type GameState string

const (
	StateScheduled GameState = "SCHEDULED"
	StateLive      GameState = "LIVE"
	StateFinal     GameState = "FINAL"
)

// Team is one side of a game. Score is nil until the upstream reports one
// and Rank is nil for unranked teams; the upstream "unranked" sentinel
// (>= 99) is resolved to nil during normalization and never reaches here.
type Team struct {
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logoUrl"`
	Score        *int   `json:"score"`
	Rank         *int   `json:"rank"`
	Record       string `json:"record,omitempty"`
}

// Game is the canonical event shape shared by every league feed.
type Game struct {
	ID           string    `json:"id"`
	LeagueID     string    `json:"leagueId"`
	LeagueName   string    `json:"leagueName"`
	Kickoff      time.Time `json:"kickoff"`
	State        GameState `json:"state"`
	StatusDetail string    `json:"statusDetail"`
	Network      string    `json:"network,omitempty"`
	Home         Team      `json:"home"`
	Away         Team      `json:"away"`
}

// IsLive reports whether the game is in progress.
func (g Game) IsLive() bool {
	return g.State == StateLive
}
