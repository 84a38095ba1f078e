package api

import (
	"net/http"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// StoreHandler serves the persistence API the dashboard mirrors into.
type StoreHandler struct {
	staff    repositories.StaffRepository
	logs     repositories.ActivityLogRepository
	bots     repositories.BotRepository
	presence repositories.PresenceRepository
	logger   zerolog.Logger
}

// NewStoreHandler wires the repositories. presence may be nil when Redis is
// not configured.
func NewStoreHandler(
	staff repositories.StaffRepository,
	logs repositories.ActivityLogRepository,
	bots repositories.BotRepository,
	presence repositories.PresenceRepository,
	logger zerolog.Logger,
) *StoreHandler {
	return &StoreHandler{
		staff:    staff,
		logs:     logs,
		bots:     bots,
		presence: presence,
		logger:   logger.With().Str("component", "store_api").Logger(),
	}
}

func (h *StoreHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/staff", h.listStaff)
	r.Post("/staff/sync", h.syncStaff)
	r.Get("/logs", h.listLogs)
	r.Post("/logs", h.appendLog)
	r.Get("/bots", h.listBots)
	r.Post("/bots", h.upsertBot)
	r.Delete("/bots/{id}", h.deleteBot)
	r.Get("/presence", h.listPresence)
	return r
}

func (h *StoreHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staff.List(r.Context())
	if err != nil {
		h.internalError(w, "failed to list staff", err)
		return
	}
	if staff == nil {
		staff = []models.StaffEntry{}
	}
	writeJSON(w, http.StatusOK, staff, h.logger)
}

func (h *StoreHandler) syncStaff(w http.ResponseWriter, r *http.Request) {
	var entry models.StaffEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if entry.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", h.logger)
		return
	}
	if entry.Status == "" {
		entry.Status = models.StatusNotWorking
	}
	if err := h.staff.Upsert(r.Context(), &entry); err != nil {
		h.internalError(w, "failed to sync staff", err)
		return
	}
	writeJSON(w, http.StatusOK, entry, h.logger)
}

func (h *StoreHandler) listLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.ListRecent(r.Context(), repositories.MaxRecentLogs)
	if err != nil {
		h.internalError(w, "failed to list logs", err)
		return
	}
	if logs == nil {
		logs = []models.ActivityLogEntry{}
	}
	writeJSON(w, http.StatusOK, logs, h.logger)
}

func (h *StoreHandler) appendLog(w http.ResponseWriter, r *http.Request) {
	var entry models.ActivityLogEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if entry.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", h.logger)
		return
	}
	if entry.Type != models.LogTypeNFC && entry.Type != models.LogTypeMotion {
		writeError(w, http.StatusBadRequest, "type must be NFC or MOTION", h.logger)
		return
	}
	if err := h.logs.Append(r.Context(), &entry); err != nil {
		h.internalError(w, "failed to append log", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry, h.logger)
}

func (h *StoreHandler) listBots(w http.ResponseWriter, r *http.Request) {
	bots, err := h.bots.List(r.Context())
	if err != nil {
		h.internalError(w, "failed to list bots", err)
		return
	}
	if bots == nil {
		bots = []models.BotEntry{}
	}
	writeJSON(w, http.StatusOK, bots, h.logger)
}

func (h *StoreHandler) upsertBot(w http.ResponseWriter, r *http.Request) {
	var bot models.BotEntry
	if err := decodeJSON(w, r, &bot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if bot.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", h.logger)
		return
	}
	if err := h.bots.Upsert(r.Context(), &bot); err != nil {
		h.internalError(w, "failed to save bot", err)
		return
	}
	writeJSON(w, http.StatusOK, bot, h.logger)
}

func (h *StoreHandler) deleteBot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required", h.logger)
		return
	}
	if err := h.bots.Delete(r.Context(), id); err != nil {
		h.internalError(w, "failed to delete bot", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}

// listPresence returns the live presence of every known staff row.
func (h *StoreHandler) listPresence(w http.ResponseWriter, r *http.Request) {
	if h.presence == nil {
		writeError(w, http.StatusServiceUnavailable, "presence cache not configured", h.logger)
		return
	}

	staff, err := h.staff.List(r.Context())
	if err != nil {
		h.internalError(w, "failed to list staff", err)
		return
	}
	ids := make([]string, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}

	bulk, err := h.presence.GetBulkPresence(r.Context(), ids)
	if err != nil {
		h.internalError(w, "failed to read presence", err)
		return
	}
	out := make([]models.Presence, 0, len(ids))
	for _, id := range ids {
		if p, ok := bulk[id]; ok {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out, h.logger)
}

func (h *StoreHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg, h.logger)
}
