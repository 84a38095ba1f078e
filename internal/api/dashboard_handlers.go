package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/bots"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Dashboard is the live state behind the dashboard API. *poller.Orchestrator
// satisfies it.
type Dashboard interface {
	Snapshot() models.Snapshot
	Refetch(ctx context.Context) (models.Snapshot, error)
	Bots() []models.BotEntry
	AddBot(name, avatar string) (models.BotEntry, error)
	ToggleBot(id string, field bots.Field) (models.BotEntry, error)
	ResetBot(id string) (models.BotEntry, error)
	DeleteBot(id string) error
}

type DashboardHandler struct {
	dash   Dashboard
	logger zerolog.Logger
}

func NewDashboardHandler(dash Dashboard, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dash:   dash,
		logger: logger.With().Str("component", "dashboard_api").Logger(),
	}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/snapshot", h.snapshot)
	r.Post("/refetch", h.refetch)
	r.Get("/bots", h.listBots)
	r.Post("/bots", h.addBot)
	r.Post("/bots/{id}/toggle", h.toggleBot)
	r.Post("/bots/{id}/reset", h.resetBot)
	r.Delete("/bots/{id}", h.deleteBot)
	return r
}

func (h *DashboardHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Snapshot(), h.logger)
}

// refetch polls the pad out of band and returns the resulting snapshot.
// A pad failure is not an error here; it shows up as isOnline=false.
func (h *DashboardHandler) refetch(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dash.Refetch(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "refetch cancelled", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}

func (h *DashboardHandler) listBots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Bots(), h.logger)
}

type addBotRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (h *DashboardHandler) addBot(w http.ResponseWriter, r *http.Request) {
	var req addBotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	bot, err := h.dash.AddBot(req.Name, req.Avatar)
	if err != nil {
		h.botError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bot, h.logger)
}

type toggleRequest struct {
	Field string `json:"field"`
}

func (h *DashboardHandler) toggleBot(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	field, err := bots.ParseField(req.Field)
	if err != nil {
		h.botError(w, err)
		return
	}
	bot, err := h.dash.ToggleBot(chi.URLParam(r, "id"), field)
	if err != nil {
		h.botError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bot, h.logger)
}

func (h *DashboardHandler) resetBot(w http.ResponseWriter, r *http.Request) {
	bot, err := h.dash.ResetBot(chi.URLParam(r, "id"))
	if err != nil {
		h.botError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bot, h.logger)
}

func (h *DashboardHandler) deleteBot(w http.ResponseWriter, r *http.Request) {
	if err := h.dash.DeleteBot(chi.URLParam(r, "id")); err != nil {
		h.botError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}

func (h *DashboardHandler) botError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bots.ErrBotNotFound):
		writeError(w, http.StatusNotFound, err.Error(), h.logger)
	case errors.Is(err, bots.ErrUnknownField), errors.Is(err, bots.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
	default:
		h.logger.Error().Err(err).Msg("bot operation failed")
		writeError(w, http.StatusInternalServerError, "bot operation failed", h.logger)
	}
}
