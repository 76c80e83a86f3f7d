package holiday

import (
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
	"github.com/timeplan/timeplan/internal/utils"
)

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type DayCheckDTO struct {
	Date         string      `json:"date"`
	IsWorkingDay bool        `json:"isWorkingDay"`
	Reason       Reason      `json:"reason,omitempty"`
	Holiday      *HolidayDTO `json:"holiday,omitempty"`
}

type Handler struct {
	calendar Calendar
}

func NewHandler(calendar Calendar) *Handler {
	return &Handler{calendar: calendar}
}

// ListHolidays godoc
// @Summary List public holidays
// @Description List the configured region's public holidays for a year
// @Tags Holiday
// @Produce json
// @Param year query int true "Year"
// @Success 200 {array} HolidayDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year"
// @Router /api/holidays [get]
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be an integer, e.g. 2025")
		return
	}
	log.Debugf("Listing holidays for %d", year)

	holidays := h.calendar.Holidays(year)
	holidaysDTO := make([]HolidayDTO, 0, len(holidays))
	for _, holiday := range holidays {
		holidaysDTO = append(holidaysDTO, HolidayDTO{Date: utils.FormatDate(holiday.Date), Name: holiday.Name})
	}
	rest.WriteJSON(w, http.StatusOK, holidaysDTO)
}

// CheckDate godoc
// @Summary Classify a date
// @Description Tell whether a date is a working day, and why not when it is not
// @Tags Holiday
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} DayCheckDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/holidays/check [get]
func (h *Handler) CheckDate(w http.ResponseWriter, r *http.Request) {
	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}

	isWorkingDay, reason := h.calendar.IsWorkingDay(date)
	response := DayCheckDTO{
		Date:         utils.FormatDate(date),
		IsWorkingDay: isWorkingDay,
		Reason:       reason,
	}
	if holiday, ok := h.calendar.IsHoliday(date); ok {
		response.Holiday = &HolidayDTO{Date: utils.FormatDate(holiday.Date), Name: holiday.Name}
	}
	rest.WriteJSON(w, http.StatusOK, response)
}
