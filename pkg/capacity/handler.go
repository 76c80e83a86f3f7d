package capacity

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
	"github.com/timeplan/timeplan/pkg/user"
)

type DayDTO struct {
	Capacity  float64 `json:"capacity"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type TotalsDTO struct {
	Days      int     `json:"days"`
	Capacity  float64 `json:"capacity"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type UserRefDTO struct {
	Uid         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type UserCapacityDTO struct {
	User   UserRefDTO        `json:"user"`
	Totals TotalsDTO         `json:"totals"`
	Days   map[string]DayDTO `json:"days"`
}

type Handler struct {
	service     Service
	csvRenderer LedgerRenderer
}

func NewHandler(service Service, csvRenderer LedgerRenderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// GetCapacity godoc
// @Summary Daily capacity ledger
// @Description Capacity, used and remaining hours per calendar day of the range for the current user
// @Tags Capacity
// @Produce json
// @Produce text/csv
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} map[string]DayDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range"
// @Failure 403 {string} string "User not found"
// @Router /api/capacity [get]
// @Security XUserId
func (h *Handler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting capacity ledger")
	start, end, err := rest.DateRange(r, "startDate", "endDate")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	ledger, err := h.service.GetLedger(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.RenderLedger(ledger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, ledgerToDTO(ledger))
}

// GetFleetCapacity godoc
// @Summary Capacity of all users
// @Description Daily ledgers and totals of every user for the range
// @Tags Reports
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {array} UserCapacityDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range"
// @Failure 403 {string} string "Admin role required"
// @Router /api/reports/capacity [get]
// @Security XUserId
func (h *Handler) GetFleetCapacity(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting fleet capacity")
	start, end, err := rest.DateRange(r, "startDate", "endDate")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	ledgers, err := h.service.GetFleetLedgers(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result := make([]UserCapacityDTO, 0, len(ledgers))
	for _, userLedger := range ledgers {
		totals := userLedger.Ledger.Totals()
		result = append(result, UserCapacityDTO{
			User: UserRefDTO{
				Uid:         userLedger.User.Uid,
				Username:    userLedger.User.Username,
				DisplayName: userLedger.User.DisplayName,
			},
			Totals: TotalsDTO{
				Days:      totals.Days,
				Capacity:  totals.Capacity,
				Used:      totals.Used,
				Remaining: totals.Remaining,
			},
			Days: ledgerToDTO(userLedger.Ledger),
		})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

func ledgerToDTO(ledger Ledger) map[string]DayDTO {
	days := make(map[string]DayDTO, len(ledger))
	for date, day := range ledger {
		days[date] = DayDTO{Capacity: day.Capacity, Used: day.Used, Remaining: day.Remaining}
	}
	return days
}
