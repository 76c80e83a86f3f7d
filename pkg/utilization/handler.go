package utilization

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/user"
)

type ResultDTO struct {
	Period                string  `json:"period"`
	StartDate             string  `json:"startDate"`
	EndDate               string  `json:"endDate"`
	TotalHours            float64 `json:"totalHours"`
	TargetHours           float64 `json:"targetHours"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	Status                Status  `json:"status"`
	WorkingDays           int     `json:"workingDays"`
	EffectiveWorkingDays  int     `json:"effectiveWorkingDays"`
	LeaveDaysTaken        int     `json:"leaveDaysTaken"`
	Holidays              int     `json:"holidays"`
}

type UserResultDTO struct {
	Uid         string    `json:"uid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Utilization ResultDTO `json:"utilization"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetUtilization godoc
// @Summary Utilization of the current user
// @Description Logged versus target hours for the week (Monday to Friday) or month containing the date
// @Tags Utilization
// @Produce json
// @Param period query string false "week (default) or month"
// @Param date query string false "Reference date (YYYY-MM-DD), today when omitted"
// @Success 200 {object} ResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period or date"
// @Failure 403 {string} string "User not found"
// @Router /api/utilization [get]
// @Security XUserId
func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	kind, reference, ok := periodParams(w, r)
	if !ok {
		return
	}
	log.Debugf("Getting %s utilization", kind)

	result, err := h.service.GetUserUtilization(r.Context(), kind, reference)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, resultToDTO(result))
}

// GetReport godoc
// @Summary Utilization report
// @Description Utilization of every user, percentage capped at 100
// @Tags Reports
// @Produce json
// @Param period query string false "week (default) or month"
// @Param date query string false "Reference date (YYYY-MM-DD), today when omitted"
// @Success 200 {array} UserResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period or date"
// @Failure 403 {string} string "Admin role required"
// @Router /api/reports/utilization [get]
// @Security XUserId
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind, reference, ok := periodParams(w, r)
	if !ok {
		return
	}
	log.Debugf("Getting %s utilization report", kind)

	results, err := h.service.GetReport(r.Context(), kind, reference)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resultsDTO := make([]UserResultDTO, 0, len(results))
	for _, userResult := range results {
		resultsDTO = append(resultsDTO, UserResultDTO{
			Uid:         userResult.User.Uid,
			Username:    userResult.User.Username,
			DisplayName: userResult.User.DisplayName,
			Utilization: resultToDTO(userResult.Result),
		})
	}
	rest.WriteJSON(w, http.StatusOK, resultsDTO)
}

func periodParams(w http.ResponseWriter, r *http.Request) (PeriodKind, time.Time, bool) {
	query := r.URL.Query()
	kind := Week
	if p := query.Get("period"); p != "" {
		parsed, err := ParsePeriodKind(p)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid period", err.Error())
			return "", time.Time{}, false
		}
		kind = parsed
	}
	var reference time.Time
	if d := query.Get("date"); d != "" {
		parsed, err := utils.ParseDate(d)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
			return "", time.Time{}, false
		}
		reference = parsed
	}
	return kind, reference, true
}

func resultToDTO(result Result) ResultDTO {
	return ResultDTO{
		Period:                string(result.Period.Kind),
		StartDate:             utils.FormatDate(result.Period.Start),
		EndDate:               utils.FormatDate(result.Period.End),
		TotalHours:            result.TotalHours,
		TargetHours:           result.TargetHours,
		UtilizationPercentage: result.UtilizationPercentage,
		Status:                result.Status,
		WorkingDays:           result.WorkingDays,
		EffectiveWorkingDays:  result.EffectiveWorkingDays,
		LeaveDaysTaken:        result.LeaveDaysTaken,
		Holidays:              result.Holidays,
	}
}
