package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gnhen/sports/internal/detail"
	"github.com/gnhen/sports/internal/domain"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/policy"
	"github.com/gnhen/sports/internal/scoreboard"
	"github.com/gnhen/sports/internal/timeutil"
)

// User-facing result messages for the scoreboard list. Hidden games get the
// actionable hint; a genuinely empty day does not.
const (
	msgNoLeagues   = "No leagues selected."
	msgNoGames     = "No games scheduled today."
	msgGamesHidden = `No games scheduled today. Try "Show Unranked" or check "Leagues".`
	msgAllFailed   = "Error loading data."
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the scoreboard services.
type Handler struct {
	svc       *scoreboard.Service
	refresher *scoreboard.Refresher
	enricher  *detail.Enricher
	registry  *leagues.Registry
	logger    *slog.Logger

	defaultActive []string
	maxAge        time.Duration
	loc           *time.Location
	now           nowFunc
}

// HandlerConfig carries the handler's request defaults.
type HandlerConfig struct {
	// DefaultActive is the league selection used when the request names none.
	DefaultActive []string
	// MaxAge bounds snapshot reuse; a matching snapshot older than this is
	// refetched on demand.
	MaxAge time.Duration
	// Location is the calendar zone for defaulting and parsing dates.
	Location *time.Location
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *scoreboard.Service, refresher *scoreboard.Refresher, enricher *detail.Enricher, registry *leagues.Registry, logger *slog.Logger, cfg HandlerConfig) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		svc:           svc,
		refresher:     refresher,
		enricher:      enricher,
		registry:      registry,
		logger:        logger,
		defaultActive: cfg.DefaultActive,
		maxAge:        cfg.MaxAge,
		loc:           loc,
		now:           time.Now,
	}
}

// ScoreboardResponse is the list payload: visible games grouped by league,
// plus a message when there is nothing to render.
type ScoreboardResponse struct {
	Date      string           `json:"date"`
	Active    []string         `json:"active"`
	ShowAll   bool             `json:"showAll"`
	Sections  []SectionPayload `json:"sections"`
	Message   string           `json:"message,omitempty"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// SectionPayload is one league's slice of the scoreboard.
type SectionPayload struct {
	League string        `json:"league"`
	Name   string        `json:"name"`
	Games  []domain.Game `json:"games"`
}

// LeaguePayload describes one selectable league.
type LeaguePayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MajorTier bool   `json:"majorTier"`
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether a working set has been committed and the refresh
// loop is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.svc.Ready() {
		h.writeError(w, nethttp.StatusServiceUnavailable, "no scoreboard loaded yet")
		return
	}
	if h.refresher != nil && !h.refresher.Status().IsReady() {
		h.writeError(w, nethttp.StatusServiceUnavailable, "refresh loop unhealthy")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// Leagues lists the selectable leagues in registry order.
func (h *Handler) Leagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	all := h.registry.All()
	payload := make([]LeaguePayload, 0, len(all))
	for _, lg := range all {
		payload = append(payload, LeaguePayload{ID: lg.ID, Name: lg.Name, MajorTier: lg.MajorTier})
	}
	h.writeJSON(w, nethttp.StatusOK, payload)
}

// Scoreboard serves the grouped game list for a date and league selection.
func (h *Handler) Scoreboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid date, expected YYYYMMDD")
		return
	}
	active := h.parseLeagues(r.URL.Query())
	showAll := parseBool(r.URL.Query().Get("showAll"))

	resp := ScoreboardResponse{
		Date:    timeutil.FormatDate(date),
		Active:  active,
		ShowAll: showAll,
	}

	if len(active) == 0 {
		resp.Message = msgNoLeagues
		h.writeJSON(w, nethttp.StatusOK, resp)
		return
	}

	snap, err := h.svc.Ensure(r.Context(), date, active, h.maxAge)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveLeagues) {
			resp.Message = msgNoLeagues
			h.writeJSON(w, nethttp.StatusOK, resp)
			return
		}
		h.writeError(w, nethttp.StatusBadGateway, msgAllFailed)
		return
	}

	resp.FetchedAt = snap.FetchedAt
	sections := policy.Sections(snap.Leagues, showAll)
	for _, section := range sections {
		resp.Sections = append(resp.Sections, SectionPayload{
			League: section.League.ID,
			Name:   section.League.Name,
			Games:  section.Games,
		})
	}

	if len(resp.Sections) == 0 {
		switch {
		case snap.AllFailed():
			resp.Message = msgAllFailed
		case snap.TotalGames() > 0:
			// Games exist but the visibility policy hid them all.
			resp.Message = msgGamesHidden
		default:
			resp.Message = msgNoGames
		}
	}
	h.writeJSON(w, nethttp.StatusOK, resp)
}

// Refresh forces a new fetch cycle for the requested selection, bypassing
// snapshot reuse.
func (h *Handler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid date, expected YYYYMMDD")
		return
	}
	active := h.parseLeagues(r.URL.Query())
	if len(active) == 0 {
		h.writeError(w, nethttp.StatusBadRequest, msgNoLeagues)
		return
	}

	snap, err := h.svc.Replace(r.Context(), date, active)
	if err != nil {
		h.writeError(w, nethttp.StatusBadGateway, msgAllFailed)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{
		"date":      timeutil.FormatDate(snap.Date),
		"games":     snap.TotalGames(),
		"fetchedAt": snap.FetchedAt,
	})
}

// GameDetail serves the enriched view for one game.
func (h *Handler) GameDetail(w nethttp.ResponseWriter, r *nethttp.Request) {
	leagueID := chi.URLParam(r, "league")
	eventID := chi.URLParam(r, "id")
	if leagueID == "" || eventID == "" {
		h.writeError(w, nethttp.StatusBadRequest, "missing league or game id")
		return
	}

	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid date, expected YYYYMMDD")
		return
	}

	enriched, err := h.enricher.Enrich(r.Context(), leagueID, eventID, date)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			h.writeError(w, nethttp.StatusNotFound, "game not found")
			return
		}
		h.writeError(w, nethttp.StatusBadGateway, "detail unavailable")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, enriched)
}

// parseDate resolves an optional YYYYMMDD parameter, defaulting to today in
// the handler's calendar zone.
func (h *Handler) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return h.now().In(h.loc), nil
	}
	return timeutil.ParseDate(raw, h.loc)
}

// parseLeagues resolves a comma-separated selection, falling back to the
// configured default when the parameter is absent. An explicitly empty
// parameter means "none selected".
func (h *Handler) parseLeagues(query url.Values) []string {
	if !query.Has("leagues") {
		return h.defaultActive
	}
	var out []string
	raw := query.Get("leagues")
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
