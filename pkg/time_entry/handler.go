package time_entry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/rest"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/user"
)

type TimeEntryDTO struct {
	Id          int     `json:"id"`
	Category    string  `json:"category"`
	Project     *string `json:"project"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}

type HistoryRecordDTO struct {
	Action     string    `json:"action"`
	Category   string    `json:"category"`
	Project    *string   `json:"project"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Hours      float64   `json:"hours"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListEntries godoc
// @Summary List time entries
// @Description List the current user's time entries overlapping the date range
// @Tags TimeEntry
// @Produce json
// @Param from query string true "From date (YYYY-MM-DD)"
// @Param to query string true "To date (YYYY-MM-DD)"
// @Success 200 {array} TimeEntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range"
// @Failure 403 {string} string "User not found"
// @Router /api/timeentry [get]
// @Security XUserId
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing time entries")
	from, to, err := rest.DateRange(r, "from", "to")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	entries, err := h.service.ListEntries(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entriesDTO := make([]TimeEntryDTO, 0, len(entries))
	for _, entry := range entries {
		entriesDTO = append(entriesDTO, entryToDTO(entry))
	}
	rest.WriteJSON(w, http.StatusOK, entriesDTO)
}

// CreateEntry godoc
// @Summary Log time
// @Description Create a time entry for the current user
// @Tags TimeEntry
// @Accept json
// @Produce json
// @Param entry body TimeEntryDTO true "Time entry"
// @Success 201 {object} TimeEntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid entry"
// @Failure 403 {string} string "User not found"
// @Router /api/timeentry [post]
// @Security XUserId
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}
	log.Tracef("Creating time entry: %+v", entry)

	created, err := h.service.CreateEntry(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, entryToDTO(created))
}

// GetEntry godoc
// @Summary Get a time entry
// @Tags TimeEntry
// @Produce json
// @Param entryId path int true "Entry ID"
// @Success 200 {object} TimeEntryDTO
// @Failure 404 {string} string "Not found"
// @Router /api/timeentry/{entryId} [get]
// @Security XUserId
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryId, ok := entryIdParam(w, r)
	if !ok {
		return
	}
	entry, err := h.service.GetEntry(r.Context(), entryId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, entryToDTO(entry))
}

// UpdateEntry godoc
// @Summary Update a time entry
// @Tags TimeEntry
// @Accept json
// @Produce json
// @Param entryId path int true "Entry ID"
// @Param entry body TimeEntryDTO true "Time entry"
// @Success 200 {object} TimeEntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid entry"
// @Failure 404 {string} string "Not found"
// @Router /api/timeentry/{entryId} [put]
// @Security XUserId
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryId, ok := entryIdParam(w, r)
	if !ok {
		return
	}
	entry, ok := decodeEntry(w, r)
	if !ok {
		return
	}
	entry.Id = entryId

	updated, err := h.service.UpdateEntry(r.Context(), entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, entryToDTO(updated))
}

// DeleteEntry godoc
// @Summary Delete a time entry
// @Tags TimeEntry
// @Param entryId path int true "Entry ID"
// @Success 204
// @Failure 404 {string} string "Not found"
// @Router /api/timeentry/{entryId} [delete]
// @Security XUserId
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryId, ok := entryIdParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteEntry(r.Context(), entryId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHistory godoc
// @Summary Time entry history
// @Description List recorded changes of a time entry, oldest first
// @Tags TimeEntry
// @Produce json
// @Param entryId path int true "Entry ID"
// @Success 200 {array} HistoryRecordDTO
// @Router /api/timeentry/{entryId}/history [get]
// @Security XUserId
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entryId, ok := entryIdParam(w, r)
	if !ok {
		return
	}
	records, err := h.service.GetHistory(r.Context(), entryId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	recordsDTO := make([]HistoryRecordDTO, 0, len(records))
	for _, record := range records {
		recordsDTO = append(recordsDTO, HistoryRecordDTO{
			Action:     string(record.Action),
			Category:   string(record.Category),
			Project:    record.Project,
			StartDate:  utils.FormatDate(record.StartDate),
			EndDate:    utils.FormatDate(record.EndDate),
			Hours:      record.Hours,
			RecordedAt: record.RecordedAt,
		})
	}
	rest.WriteJSON(w, http.StatusOK, recordsDTO)
}

func entryIdParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	entryId, err := strconv.Atoi(mux.Vars(r)["entryId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid entry ID", "")
		return 0, false
	}
	return entryId, true
}

func decodeEntry(w http.ResponseWriter, r *http.Request) (TimeEntry, bool) {
	var entryDTO TimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entryDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return TimeEntry{}, false
	}
	entry, err := dtoToEntry(entryDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", err.Error())
		return TimeEntry{}, false
	}
	return entry, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidEntry):
		rest.WriteError(w, http.StatusBadRequest, "Invalid time entry", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(entry TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		Id:          entry.Id,
		Category:    string(entry.Category),
		Project:     entry.Project,
		StartDate:   utils.FormatDate(entry.StartDate),
		EndDate:     utils.FormatDate(entry.EndDate),
		Hours:       entry.Hours,
		Description: entry.Description,
	}
}

func dtoToEntry(dto TimeEntryDTO) (TimeEntry, error) {
	start, err := utils.ParseDate(dto.StartDate)
	if err != nil {
		return TimeEntry{}, err
	}
	end, err := utils.ParseDate(dto.EndDate)
	if err != nil {
		return TimeEntry{}, err
	}
	return TimeEntry{
		Id:          dto.Id,
		Category:    Category(dto.Category),
		Project:     dto.Project,
		StartDate:   start,
		EndDate:     end,
		Hours:       dto.Hours,
		Description: dto.Description,
	}, nil
}
