package activity

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
	"github.com/timeplan/timeplan/pkg/user"
)

type SyncResultDTO struct {
	SyncedDays int `json:"syncedDays"`
}

type ReconciliationDTO struct {
	Date         string  `json:"date"`
	TrackedHours float64 `json:"trackedHours"`
	LoggedHours  float64 `json:"loggedHours"`
	Difference   float64 `json:"difference"`
	Status       Status  `json:"status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Sync godoc
// @Summary Sync tracked activity
// @Description Pull the current user's daily activity from the desktop activity tracker
// @Tags Integrations
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} SyncResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range or tracker id missing"
// @Failure 503 {object} rest.ErrorResponse "Integration not configured"
// @Router /api/integrations/activity/sync [post]
// @Security XUserId
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	log.Debug("Syncing activity")
	start, end, err := rest.DateRange(r, "startDate", "endDate")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	synced, err := h.service.Sync(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SyncResultDTO{SyncedDays: synced})
}

// GetReconciliation godoc
// @Summary Reconcile tracked and logged time
// @Description Compare synced activity with logged hours per day
// @Tags Integrations
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {array} ReconciliationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range"
// @Failure 503 {object} rest.ErrorResponse "Integration not configured"
// @Router /api/integrations/activity/reconciliation [get]
// @Security XUserId
func (h *Handler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	start, end, err := rest.DateRange(r, "startDate", "endDate")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	reconciliation, err := h.service.Reconcile(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	result := make([]ReconciliationDTO, 0, len(reconciliation))
	for _, day := range reconciliation {
		result = append(result, ReconciliationDTO{
			Date:         day.Date,
			TrackedHours: day.TrackedHours,
			LoggedHours:  day.LoggedHours,
			Difference:   day.Difference,
			Status:       day.Status,
		})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	case errors.Is(err, ErrNotConfigured):
		rest.WriteError(w, http.StatusServiceUnavailable, "Activity integration is disabled", err.Error())
	case errors.Is(err, ErrTrackerIdMissing):
		rest.WriteError(w, http.StatusBadRequest, "Activity tracker id not set", "set settings.activityTrackerId on the user")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
