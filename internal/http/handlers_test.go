package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gnhen/sports/internal/detail"
	"github.com/gnhen/sports/internal/espn"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/metrics"
	"github.com/gnhen/sports/internal/scoreboard"
)

type stubSource struct {
	events map[string][]espn.Event
	errs   map[string]error
	calls  int
}

func (s *stubSource) Events(ctx context.Context, league leagues.League, date time.Time) ([]espn.Event, error) {
	s.calls++
	if err := s.errs[league.ID]; err != nil {
		return nil, err
	}
	return s.events[league.ID], nil
}

func (s *stubSource) Scoreboard(ctx context.Context, league leagues.League, date time.Time) (*espn.ScoreboardResponse, error) {
	events, err := s.Events(ctx, league, date)
	if err != nil {
		return nil, err
	}
	return &espn.ScoreboardResponse{Events: events}, nil
}

func (s *stubSource) Summary(ctx context.Context, league leagues.League, eventID string) (*espn.SummaryResponse, error) {
	return &espn.SummaryResponse{}, nil
}

func testRegistry(t *testing.T) *leagues.Registry {
	t.Helper()
	reg, err := leagues.New([]leagues.League{
		{ID: "nfl", Name: "NFL", SummaryPath: "football/nfl", MajorTier: true, PossessionSituations: true},
		{ID: "ncaam", Name: "NCAA Men's BB", SummaryPath: "basketball/mens-college-basketball"},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func eventOn(id, state string, at time.Time) espn.Event {
	return espn.Event{
		ID:   id,
		Date: at.UTC().Format(time.RFC3339),
		Status: espn.Status{Type: espn.StatusType{
			State:  state,
			Detail: "detail",
		}},
		Competitions: []espn.Competition{{
			Competitors: []espn.Competitor{
				{HomeAway: "home", Team: espn.TeamInfo{Abbreviation: "HOM"}},
				{HomeAway: "away", Team: espn.TeamInfo{Abbreviation: "AWY"}},
			},
		}},
	}
}

func newTestHandler(t *testing.T, src *stubSource, defaultActive []string) *Handler {
	t.Helper()
	reg := testRegistry(t)
	rec := metrics.NewRecorder()
	svc := scoreboard.NewService(scoreboard.NewFetcher(src, reg, nil, rec), nil, rec)
	enricher := detail.NewEnricher(src, reg, nil, rec)

	h := NewHandler(svc, nil, enricher, reg, nil, HandlerConfig{
		DefaultActive: defaultActive,
		MaxAge:        time.Minute,
		Location:      time.UTC,
	})
	return h
}

func serve(t *testing.T, h *Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(h, nil, metrics.NewRecorder())
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeScoreboard(t *testing.T, w *httptest.ResponseRecorder) ScoreboardResponse {
	t.Helper()
	var resp ScoreboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestScoreboardGroupsByLeague(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{
		"nfl":   {eventOn("n1", "pre", at), eventOn("n2", "in", at.Add(time.Hour))},
		"ncaam": {eventOn("m1", "pre", at)},
	}}
	h := newTestHandler(t, src, []string{"nfl", "ncaam"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110&showAll=1")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeScoreboard(t, w)

	if resp.Message != "" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(resp.Sections) != 2 || resp.Sections[0].League != "nfl" {
		t.Fatalf("unexpected sections: %+v", resp.Sections)
	}
	// Live game sorts ahead of the earlier scheduled one.
	if resp.Sections[0].Games[0].ID != "n2" {
		t.Fatalf("expected live game first, got %s", resp.Sections[0].Games[0].ID)
	}
}

func TestScoreboardHidesUnrankedWithoutShowAll(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	ranked := eventOn("ranked", "pre", at)
	ranked.Competitions[0].Competitors[1].CuratedRank = &espn.CuratedRank{Current: 12}
	src := &stubSource{events: map[string][]espn.Event{
		"ncaam": {eventOn("unranked", "pre", at), ranked},
	}}
	h := newTestHandler(t, src, []string{"ncaam"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110")
	resp := decodeScoreboard(t, w)
	if len(resp.Sections) != 1 || len(resp.Sections[0].Games) != 1 {
		t.Fatalf("expected only the ranked game, got %+v", resp.Sections)
	}
	if resp.Sections[0].Games[0].ID != "ranked" {
		t.Fatalf("unexpected visible game %s", resp.Sections[0].Games[0].ID)
	}
}

func TestScoreboardNoLeaguesSelected(t *testing.T) {
	h := newTestHandler(t, &stubSource{}, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110&leagues=")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeScoreboard(t, w)
	if resp.Message != msgNoLeagues {
		t.Fatalf("expected %q, got %q", msgNoLeagues, resp.Message)
	}
	if len(resp.Sections) != 0 {
		t.Fatalf("expected no sections")
	}
}

func TestScoreboardNoGamesMessage(t *testing.T) {
	src := &stubSource{events: map[string][]espn.Event{}}
	h := newTestHandler(t, src, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110")
	resp := decodeScoreboard(t, w)
	if resp.Message != msgNoGames {
		t.Fatalf("expected %q, got %q", msgNoGames, resp.Message)
	}
}

func TestScoreboardHiddenGamesMessage(t *testing.T) {
	// An unranked college game exists but the policy hides it, so the
	// message carries the hint to relax filters.
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{
		"ncaam": {eventOn("unranked", "pre", at)},
	}}
	h := newTestHandler(t, src, []string{"ncaam"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110")
	resp := decodeScoreboard(t, w)
	if resp.Message != msgGamesHidden {
		t.Fatalf("expected %q, got %q", msgGamesHidden, resp.Message)
	}

	// Show-all surfaces the game and clears the message.
	w = serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110&showAll=1")
	resp = decodeScoreboard(t, w)
	if resp.Message != "" || len(resp.Sections) != 1 {
		t.Fatalf("show-all should surface the game, got %+v", resp)
	}
}

func TestScoreboardAllFailedMessage(t *testing.T) {
	src := &stubSource{errs: map[string]error{
		"nfl":   errors.New("boom"),
		"ncaam": errors.New("boom"),
	}}
	h := newTestHandler(t, src, []string{"nfl", "ncaam"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("degraded board still renders, got %d", w.Code)
	}
	resp := decodeScoreboard(t, w)
	if resp.Message != msgAllFailed {
		t.Fatalf("expected %q, got %q", msgAllFailed, resp.Message)
	}
}

func TestScoreboardPartialFailureStillRenders(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{
		events: map[string][]espn.Event{"nfl": {eventOn("n1", "pre", at)}},
		errs:   map[string]error{"ncaam": errors.New("boom")},
	}
	h := newTestHandler(t, src, []string{"nfl", "ncaam"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110")
	resp := decodeScoreboard(t, w)
	if resp.Message != "" {
		t.Fatalf("partial failure should not set a message, got %q", resp.Message)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].League != "nfl" {
		t.Fatalf("expected the healthy league, got %+v", resp.Sections)
	}
}

func TestScoreboardInvalidDate(t *testing.T) {
	h := newTestHandler(t, &stubSource{}, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=2026-01-10")
	if w.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestScoreboardUnknownLeagueIgnored(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{"nfl": {eventOn("n1", "pre", at)}}}
	h := newTestHandler(t, src, nil)

	w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110&leagues=nfl,xyz")
	resp := decodeScoreboard(t, w)
	if len(resp.Sections) != 1 || resp.Sections[0].League != "nfl" {
		t.Fatalf("unknown ids should be ignored, got %+v", resp.Sections)
	}
}

func TestRefreshBypassesSnapshotReuse(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{"nfl": {eventOn("n1", "pre", at)}}}
	h := newTestHandler(t, src, []string{"nfl"})

	if w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110"); w.Code != nethttp.StatusOK {
		t.Fatalf("warm request failed: %d", w.Code)
	}
	before := src.calls

	if w := serve(t, h, nethttp.MethodPost, "/scoreboard/refresh?date=20260110"); w.Code != nethttp.StatusOK {
		t.Fatalf("refresh failed: %d", w.Code)
	}
	if src.calls != before+1 {
		t.Fatalf("refresh should force a fetch, calls went %d -> %d", before, src.calls)
	}
}

func TestGameDetailRouting(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{"nfl": {eventOn("401", "pre", at)}}}
	h := newTestHandler(t, src, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard/nfl/games/401?date=20260110")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if payload["id"] != "401" {
		t.Fatalf("unexpected detail payload: %v", payload)
	}
}

func TestGameDetailNotFound(t *testing.T) {
	src := &stubSource{events: map[string][]espn.Event{"nfl": nil}}
	h := newTestHandler(t, src, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard/nfl/games/999?date=20260110")
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGameDetailUpstreamFailure(t *testing.T) {
	src := &stubSource{errs: map[string]error{"nfl": errors.New("boom")}}
	h := newTestHandler(t, src, []string{"nfl"})

	w := serve(t, h, nethttp.MethodGet, "/scoreboard/nfl/games/401?date=20260110")
	if w.Code != nethttp.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestReadyLifecycle(t *testing.T) {
	at := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	src := &stubSource{events: map[string][]espn.Event{"nfl": {eventOn("n1", "pre", at)}}}
	h := newTestHandler(t, src, []string{"nfl"})

	if w := serve(t, h, nethttp.MethodGet, "/ready"); w.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("expected 503 before warm-up, got %d", w.Code)
	}
	if w := serve(t, h, nethttp.MethodGet, "/scoreboard?date=20260110"); w.Code != nethttp.StatusOK {
		t.Fatalf("warm request failed: %d", w.Code)
	}
	if w := serve(t, h, nethttp.MethodGet, "/ready"); w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200 after warm-up, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &stubSource{}, nil)
	w := serve(t, h, nethttp.MethodGet, "/health")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLeagues(t *testing.T) {
	h := newTestHandler(t, &stubSource{}, nil)
	w := serve(t, h, nethttp.MethodGet, "/leagues")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload []LeaguePayload
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode leagues: %v", err)
	}
	if len(payload) != 2 || payload[0].ID != "nfl" || !payload[0].MajorTier {
		t.Fatalf("unexpected leagues payload: %+v", payload)
	}
}
