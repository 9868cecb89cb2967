// Package predict derives pre-game win probabilities from up to two
// independent signals: moneyline odds and won-loss records.
package predict

import (
	"strconv"
	"strings"

	"github.com/gnhen/sports/internal/domain"
)

// Estimate is one signal's win split, away/home percentages summing to 100.
type Estimate struct {
	AwayPct float64
	HomePct float64
}

// Methodology labels reported alongside a blended prediction.
const (
	BasisOddsAndRecords = "betting odds & team records"
	BasisOdds           = "betting odds"
	BasisRecords        = "team records"
)

// FromMoneylines converts a two-way moneyline market into a fair win split.
// The raw implied probabilities include the bookmaker's vig, so the pair is
// renormalized to sum to 100. Both lines must be present.
func FromMoneylines(away, home *float64) (Estimate, bool) {
	if away == nil || home == nil {
		return Estimate{}, false
	}
	rawAway := impliedFromMoneyline(*away)
	rawHome := impliedFromMoneyline(*home)
	return normalize(rawAway, rawHome)
}

// FromRecords converts two "W-L" record strings into a win split. The
// split is unavailable when either record is missing or malformed, or when
// neither side has won a game yet.
func FromRecords(away, home string) (Estimate, bool) {
	rawAway, okAway := winPctFromRecord(away)
	rawHome, okHome := winPctFromRecord(home)
	if !okAway || !okHome {
		return Estimate{}, false
	}
	return normalize(rawAway, rawHome)
}

// Blend combines the available signals: the arithmetic mean when both are
// present, the single signal otherwise, and nil when neither is available
// (no fabricated 50/50 split).
func Blend(odds, records *Estimate) *domain.MatchupPredictor {
	switch {
	case odds != nil && records != nil:
		return &domain.MatchupPredictor{
			AwayPct: (odds.AwayPct + records.AwayPct) / 2,
			HomePct: (odds.HomePct + records.HomePct) / 2,
			Basis:   BasisOddsAndRecords,
		}
	case odds != nil:
		return &domain.MatchupPredictor{AwayPct: odds.AwayPct, HomePct: odds.HomePct, Basis: BasisOdds}
	case records != nil:
		return &domain.MatchupPredictor{AwayPct: records.AwayPct, HomePct: records.HomePct, Basis: BasisRecords}
	default:
		return nil
	}
}

// impliedFromMoneyline converts one moneyline to a raw implied win
// percentage: favorites (m < 0) pay |m| to win 100, underdogs (m >= 0)
// pay 100 to win m.
func impliedFromMoneyline(m float64) float64 {
	if m < 0 {
		return -m / (-m + 100) * 100
	}
	return 100 / (m + 100) * 100
}

func winPctFromRecord(record string) (float64, bool) {
	parts := strings.Split(record, "-")
	if len(parts) < 2 {
		return 0, false
	}
	wins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	losses, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	total := wins + losses
	if total <= 0 {
		return 0, false
	}
	return float64(wins) / float64(total) * 100, true
}

func normalize(rawAway, rawHome float64) (Estimate, bool) {
	sum := rawAway + rawHome
	if sum <= 0 {
		return Estimate{}, false
	}
	return Estimate{
		AwayPct: rawAway / sum * 100,
		HomePct: rawHome / sum * 100,
	}, true
}
