package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/gnhen/sports/internal/espn"
)

func TestRefresherWarmsWorkingSetOnStart(t *testing.T) {
	now := time.Now()
	src := &stubSource{events: map[string][]espn.Event{
		"nfl": {eventOn("n1", now)},
	}}
	svc := newTestService(t, src)
	r := NewRefresher(svc, nil, time.Hour, []string{"nfl"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	defer func() { _ = r.Stop(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for !svc.Ready() {
		select {
		case <-deadline:
			t.Fatalf("refresher never warmed the working set")
		case <-time.After(time.Millisecond):
		}
	}

	status := r.Status()
	if !status.IsReady() {
		t.Fatalf("expected ready status after warm fetch, got %+v", status)
	}
}

func TestRefresherRecordsFailures(t *testing.T) {
	svc := newTestService(t, &stubSource{})
	// Unknown league id makes every cycle fail with ErrNoActiveLeagues.
	r := NewRefresher(svc, nil, time.Hour, []string{"bogus"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	defer func() { _ = r.Stop(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for r.Status().ConsecutiveFailures == 0 {
		select {
		case <-deadline:
			t.Fatalf("refresher never recorded the failure")
		case <-time.After(time.Millisecond):
		}
	}

	status := r.Status()
	if status.IsReady() {
		t.Fatalf("expected not ready, got %+v", status)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
}

func TestRefresherSkipsWithoutSelection(t *testing.T) {
	svc := newTestService(t, &stubSource{})
	r := NewRefresher(svc, nil, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	defer func() { _ = r.Stop(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	if svc.Ready() {
		t.Fatalf("no selection should mean no cycle")
	}
	if r.Status().ConsecutiveFailures != 0 {
		t.Fatalf("skipped cycle is not a failure")
	}
}

func TestRefresherStartIsIdempotent(t *testing.T) {
	svc := newTestService(t, &stubSource{})
	r := NewRefresher(svc, nil, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	r.Start(ctx) // second start is a no-op
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second stop should be a no-op, got %v", err)
	}
}
