package domain

import (
	"errors"
	"fmt"
)

// ErrNoActiveLeagues rejects a fetch cycle started with an empty league
// selection. It is the only list-level error surfaced to the user.
var ErrNoActiveLeagues = errors.New("no leagues selected")

// ErrEventNotFound reports that a selected event is absent from the
// re-fetched scoreboard.
var ErrEventNotFound = errors.New("event no longer available")

// LeagueFetchError captures one league's failed scoreboard request. It is
// absorbed by the orchestrator: the league contributes zero games and the
// cycle continues.
type LeagueFetchError struct {
	LeagueID   string
	StatusCode int
	Err        error
}

func (e *LeagueFetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("league %s fetch failed (status=%d): %v", e.LeagueID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("league %s fetch failed: %v", e.LeagueID, e.Err)
}

func (e *LeagueFetchError) Unwrap() error { return e.Err }

// AsLeagueFetchError attempts to unwrap an error into a LeagueFetchError.
func AsLeagueFetchError(err error) (*LeagueFetchError, bool) {
	var lfe *LeagueFetchError
	if errors.As(err, &lfe) {
		return lfe, true
	}
	return nil, false
}

// MalformedEventError marks a single unparseable event within a league's
// batch. The event is skipped; the batch continues.
type MalformedEventError struct {
	LeagueID string
	EventID  string
	Reason   string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event %s in league %s: %s", e.EventID, e.LeagueID, e.Reason)
}

// AsMalformedEventError attempts to unwrap an error into a MalformedEventError.
func AsMalformedEventError(err error) (*MalformedEventError, bool) {
	var mee *MalformedEventError
	if errors.As(err, &mee) {
		return mee, true
	}
	return nil, false
}

// DetailFetchError reports a failed detail enrichment. It is scoped to the
// detail view; the list remains valid.
type DetailFetchError struct {
	LeagueID string
	EventID  string
	Err      error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("detail fetch for event %s (league %s) failed: %v", e.EventID, e.LeagueID, e.Err)
}

func (e *DetailFetchError) Unwrap() error { return e.Err }

// AsDetailFetchError attempts to unwrap an error into a DetailFetchError.
func AsDetailFetchError(err error) (*DetailFetchError, bool) {
	var dfe *DetailFetchError
	if errors.As(err, &dfe) {
		return dfe, true
	}
	return nil, false
}
