package leagues

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// League describes one upstream feed and its capabilities. Visibility and
// situation behavior are declared here, not inferred from the id, so adding
// a league is a data change.
type League struct {
	// ID is the unique registry key (e.g. "nfl").
	ID string `yaml:"id"`
	// Name is the display name for section headers.
	Name string `yaml:"name"`
	// ScoreboardURL is the full scoreboard endpoint; the date is appended
	// as a ?dates=YYYYMMDD query parameter.
	ScoreboardURL string `yaml:"scoreboardUrl"`
	// SummaryPath is the sport/league path segment for the summary
	// endpoint (e.g. "football/nfl"). Empty means the league has no
	// summary feed and the call is skipped.
	SummaryPath string `yaml:"summaryPath"`
	// MajorTier leagues are always visible regardless of the show-all
	// toggle; non-major leagues are gated on ranking.
	MajorTier bool `yaml:"majorTier"`
	// PossessionSituations marks football-style leagues whose live games
	// carry down-and-distance possession data.
	PossessionSituations bool `yaml:"possessionSituations"`
}

// Registry is the immutable, declaration-ordered league table.
type Registry struct {
	ordered []League
	byID    map[string]League
}

// Default returns the built-in league table.
func Default() *Registry {
	reg, err := New(defaultLeagues())
	if err != nil {
		// The built-in table is static; a duplicate id here is a
		// programming error.
		panic(err)
	}
	return reg
}

// New builds a registry from the given leagues, preserving their order.
func New(leagues []League) (*Registry, error) {
	if len(leagues) == 0 {
		return nil, fmt.Errorf("leagues: empty registry")
	}
	byID := make(map[string]League, len(leagues))
	ordered := make([]League, 0, len(leagues))
	for _, lg := range leagues {
		if lg.ID == "" {
			return nil, fmt.Errorf("leagues: league with empty id")
		}
		if _, dup := byID[lg.ID]; dup {
			return nil, fmt.Errorf("leagues: duplicate id %q", lg.ID)
		}
		byID[lg.ID] = lg
		ordered = append(ordered, lg)
	}
	return &Registry{ordered: ordered, byID: byID}, nil
}

// LoadFile reads a YAML league table, replacing the built-in one wholesale.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leagues: read %s: %w", path, err)
	}
	var leagues []League
	if err := yaml.Unmarshal(raw, &leagues); err != nil {
		return nil, fmt.Errorf("leagues: parse %s: %w", path, err)
	}
	return New(leagues)
}

// All returns the leagues in declaration order.
func (r *Registry) All() []League {
	out := make([]League, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Lookup finds a league by id.
func (r *Registry) Lookup(id string) (League, bool) {
	lg, ok := r.byID[id]
	return lg, ok
}

// Select returns the known leagues among ids, in declaration order rather
// than selection order, so grouped output stays deterministic. Unknown ids
// are ignored.
func (r *Registry) Select(ids []string) []League {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []League
	for _, lg := range r.ordered {
		if wanted[lg.ID] {
			out = append(out, lg)
		}
	}
	return out
}

// IDs returns all league ids in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.ordered))
	for _, lg := range r.ordered {
		out = append(out, lg.ID)
	}
	return out
}

func defaultLeagues() []League {
	return []League{
		{
			ID:                   "nfl",
			Name:                 "NFL",
			ScoreboardURL:        "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
			SummaryPath:          "football/nfl",
			MajorTier:            true,
			PossessionSituations: true,
		},
		{
			ID:                   "ncaaf",
			Name:                 "NCAA Football",
			ScoreboardURL:        "https://site.api.espn.com/apis/site/v2/sports/football/college-football/scoreboard",
			SummaryPath:          "football/college-football",
			PossessionSituations: true,
		},
		{
			ID:            "ncaam",
			Name:          "NCAA Men's BB",
			ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball/scoreboard",
			SummaryPath:   "basketball/mens-college-basketball",
		},
		{
			ID:            "nba",
			Name:          "NBA",
			ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/basketball/nba/scoreboard",
			SummaryPath:   "basketball/nba",
			MajorTier:     true,
		},
		{
			ID:            "nhl",
			Name:          "NHL",
			ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/hockey/nhl/scoreboard",
			SummaryPath:   "hockey/nhl",
			MajorTier:     true,
		},
		{
			ID:            "mlb",
			Name:          "MLB",
			ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/baseball/mlb/scoreboard",
			SummaryPath:   "baseball/mlb",
			MajorTier:     true,
		},
	}
}
