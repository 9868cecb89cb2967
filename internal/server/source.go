package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gnhen/sports/internal/config"
	"github.com/gnhen/sports/internal/espn"
	"github.com/gnhen/sports/internal/fixture"
	"github.com/gnhen/sports/internal/leagues"
)

// upstream is the combined surface of the fetch orchestrator's source and
// the detail enricher's two-call client.
type upstream interface {
	Events(ctx context.Context, league leagues.League, date time.Time) ([]espn.Event, error)
	Scoreboard(ctx context.Context, league leagues.League, date time.Time) (*espn.ScoreboardResponse, error)
	Summary(ctx context.Context, league leagues.League, eventID string) (*espn.SummaryResponse, error)
}

// buildUpstream selects the data source named in config. Unknown names fall
// back to the live API.
func buildUpstream(cfg config.Config, logger *slog.Logger) upstream {
	switch strings.ToLower(cfg.Source) {
	case "fixture":
		if logger != nil {
			logger.Info("using fixture data source")
		}
		return fixture.New()
	default:
		return espn.NewClient(espn.Config{
			BaseURL:    cfg.ESPN.BaseURL,
			Timeout:    cfg.ESPN.Timeout,
			MaxRetries: cfg.ESPN.MaxRetries,
		})
	}
}
