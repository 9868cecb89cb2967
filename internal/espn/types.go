package espn

// Raw upstream JSON shapes. Only the fields the pipeline reads are decoded;
// everything else in the payload is ignored. Optional structures are
// pointers or slices so absence never panics downstream.

// ScoreboardResponse is the per-league scoreboard payload.
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is one contest as reported by the scoreboard feed.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Status       Status        `json:"status"`
	Competitions []Competition `json:"competitions"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	State  string `json:"state"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

type Competition struct {
	Competitors []Competitor     `json:"competitors"`
	Broadcasts  []Broadcast      `json:"broadcasts"`
	Venue       *Venue           `json:"venue"`
	Situation   *Situation       `json:"situation"`
	Leaders     []LeaderCategory `json:"leaders"`
}

type Competitor struct {
	HomeAway    string       `json:"homeAway"`
	Score       string       `json:"score"`
	Team        TeamInfo     `json:"team"`
	CuratedRank *CuratedRank `json:"curatedRank"`
	Records     []Record     `json:"records"`
	Linescores  []Linescore  `json:"linescores"`
}

type TeamInfo struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Logo         string `json:"logo"`
}

type CuratedRank struct {
	Current int `json:"current"`
}

type Record struct {
	Summary string `json:"summary"`
}

type Linescore struct {
	Value float64 `json:"value"`
}

type Broadcast struct {
	Names []string `json:"names"`
}

type Venue struct {
	FullName string `json:"fullName"`
}

type Situation struct {
	LastPlay         *LastPlay `json:"lastPlay"`
	DownDistanceText string    `json:"downDistanceText"`
	PossessionText   string    `json:"possessionText"`
	Possession       string    `json:"possession"`
}

type LastPlay struct {
	Text string `json:"text"`
}

type LeaderCategory struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
	Leaders     []LeaderEntry `json:"leaders"`
}

type LeaderEntry struct {
	DisplayValue string    `json:"displayValue"`
	Athlete      Athlete   `json:"athlete"`
	Team         *TeamInfo `json:"team"`
}

type Athlete struct {
	DisplayName string `json:"displayName"`
}

// SummaryResponse is the per-event summary/box-score payload.
type SummaryResponse struct {
	Boxscore       Boxscore              `json:"boxscore"`
	Pickcenter     []Pickcenter          `json:"pickcenter"`
	WinProbability []WinProbabilityPoint `json:"winprobability"`
}

type Boxscore struct {
	Teams   []BoxscoreTeam    `json:"teams"`
	Players []BoxscorePlayers `json:"players"`
}

type BoxscoreTeam struct {
	Team       TeamInfo        `json:"team"`
	Statistics []TeamStatistic `json:"statistics"`
}

type TeamStatistic struct {
	Label        string `json:"label"`
	DisplayValue string `json:"displayValue"`
}

type BoxscorePlayers struct {
	Team       TeamInfo          `json:"team"`
	Statistics []PlayerStatGroup `json:"statistics"`
}

type PlayerStatGroup struct {
	Name     string        `json:"name"`
	Labels   []string      `json:"labels"`
	Athletes []AthleteLine `json:"athletes"`
}

type AthleteLine struct {
	Athlete Athlete  `json:"athlete"`
	Stats   []string `json:"stats"`
}

type Pickcenter struct {
	Details      string   `json:"details"`
	Spread       float64  `json:"spread"`
	OverUnder    float64  `json:"overUnder"`
	HomeTeamOdds TeamOdds `json:"homeTeamOdds"`
	AwayTeamOdds TeamOdds `json:"awayTeamOdds"`
}

type TeamOdds struct {
	MoneyLine *float64 `json:"moneyLine"`
}

type WinProbabilityPoint struct {
	HomeWinPercentage float64 `json:"homeWinPercentage"`
}
