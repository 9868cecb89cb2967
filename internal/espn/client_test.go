package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnhen/sports/internal/leagues"
)

func TestScoreboardEncodesLocalDate(t *testing.T) {
	var gotDates string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDates = r.URL.Query().Get("dates")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[{"id":"1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client()})
	league := leagues.League{ID: "nfl", Name: "NFL", ScoreboardURL: srv.URL + "/scoreboard"}

	// 23:30 local on Jan 1 in a zone far behind UTC; the query must carry
	// the local day, not the UTC one.
	loc := time.FixedZone("W10", -10*3600)
	date := time.Date(2026, 1, 1, 23, 30, 0, 0, loc)

	resp, err := client.Scoreboard(context.Background(), league, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDates != "20260101" {
		t.Fatalf("expected dates=20260101, got %s", gotDates)
	}
	if len(resp.Events) != 1 || resp.Events[0].ID != "1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestScoreboardRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client(), MaxRetries: 2})
	league := leagues.League{ID: "nba", ScoreboardURL: srv.URL}

	if _, err := client.Scoreboard(context.Background(), league, time.Now()); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestScoreboardDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client(), MaxRetries: 3})
	league := leagues.League{ID: "nhl", ScoreboardURL: srv.URL}

	_, err := client.Scoreboard(context.Background(), league, time.Now())
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt for a 4xx, got %d", got)
	}
}

func TestScoreboardMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[`))
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client(), MaxRetries: 1})
	league := leagues.League{ID: "mlb", ScoreboardURL: srv.URL}

	if _, err := client.Scoreboard(context.Background(), league, time.Now()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSummaryBuildsLeaguePath(t *testing.T) {
	var gotPath, gotEvent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEvent = r.URL.Query().Get("event")
		_, _ = w.Write([]byte(`{"boxscore":{"teams":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	league := leagues.League{ID: "wnba", SummaryPath: "basketball/wnba"}

	if _, err := client.Summary(context.Background(), league, "401"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/apis/site/v2/sports/basketball/wnba/summary" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotEvent != "401" {
		t.Fatalf("unexpected event id %s", gotEvent)
	}
}

func TestSummaryRequiresPathSegment(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Summary(context.Background(), leagues.League{ID: "custom"}, "1"); err == nil {
		t.Fatalf("expected error for league without summary path")
	}
}
