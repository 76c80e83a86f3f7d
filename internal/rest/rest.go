package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/timeplan/timeplan/internal/utils"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError writes an ErrorResponse body with the given status code.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// WriteJSON encodes body as the JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DateRange reads two YYYY-MM-DD query parameters. A missing, malformed or
// reversed range is an error whose message can be returned to the client.
func DateRange(r *http.Request, startParam, endParam string) (time.Time, time.Time, error) {
	query := r.URL.Query()
	startStr, endStr := query.Get(startParam), query.Get(endParam)
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%s and %s are required", startParam, endParam)
	}
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", startParam)
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", endParam)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%s must not be before %s", endParam, startParam)
	}
	return start, end, nil
}
