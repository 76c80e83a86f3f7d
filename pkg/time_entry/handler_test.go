package time_entry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*Handler, *ServiceImpl) {
	service, _ := setupService(t)
	return NewHandler(service), service
}

func TestHandler_CreateEntry(t *testing.T) {
	t.Run("should create entry", func(t *testing.T) {
		handler, _ := setupHandler(t)
		body, _ := json.Marshal(TimeEntryDTO{
			Category:  "Training",
			StartDate: "2025-06-16",
			EndDate:   "2025-06-17",
			Hours:     6,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/timeentry", bytes.NewReader(body)).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.CreateEntry(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var created TimeEntryDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
		assert.NotZero(t, created.Id)
		assert.Equal(t, "2025-06-17", created.EndDate)
		assert.Nil(t, created.Project)
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		handler, _ := setupHandler(t)
		body := []byte(`{"category":"Holiday","startDate":"2025-06-16","endDate":"2025-06-16","hours":8}`)
		req := httptest.NewRequest(http.MethodPost, "/api/timeentry", bytes.NewReader(body)).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.CreateEntry(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should reject malformed date", func(t *testing.T) {
		handler, _ := setupHandler(t)
		body := []byte(`{"category":"Project","startDate":"16/06/2025","endDate":"2025-06-16","hours":8}`)
		req := httptest.NewRequest(http.MethodPost, "/api/timeentry", bytes.NewReader(body)).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.CreateEntry(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return 403 without user", func(t *testing.T) {
		handler, _ := setupHandler(t)
		body := []byte(`{"category":"Project","startDate":"2025-06-16","endDate":"2025-06-16","hours":8}`)
		req := httptest.NewRequest(http.MethodPost, "/api/timeentry", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateEntry(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestHandler_ListEntries(t *testing.T) {
	handler, service := setupHandler(t)
	_, err := service.CreateEntry(ctx, projectEntry(day(time.June, 16), day(time.June, 20), 40))
	require.NoError(t, err)

	t.Run("should list overlapping entries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/timeentry?from=2025-06-18&to=2025-06-30", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.ListEntries(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var entries []TimeEntryDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "Apollo", *entries[0].Project)
	})

	t.Run("should require a date range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/timeentry?from=2025-06-18", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.ListEntries(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_EntryLifecycle(t *testing.T) {
	handler, service := setupHandler(t)
	created, err := service.CreateEntry(ctx, projectEntry(day(time.June, 16), day(time.June, 16), 8))
	require.NoError(t, err)
	entryId := strconv.Itoa(created.Id)

	// update
	body := []byte(`{"category":"Operations","startDate":"2025-06-16","endDate":"2025-06-16","hours":5}`)
	req := httptest.NewRequest(http.MethodPut, "/api/timeentry/"+entryId, bytes.NewReader(body)).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"entryId": entryId})
	rr := httptest.NewRecorder()
	handler.UpdateEntry(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// delete
	req = httptest.NewRequest(http.MethodDelete, "/api/timeentry/"+entryId, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"entryId": entryId})
	rr = httptest.NewRecorder()
	handler.DeleteEntry(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// get after delete
	req = httptest.NewRequest(http.MethodGet, "/api/timeentry/"+entryId, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"entryId": entryId})
	rr = httptest.NewRecorder()
	handler.GetEntry(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// history
	req = httptest.NewRequest(http.MethodGet, "/api/timeentry/"+entryId+"/history", nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"entryId": entryId})
	rr = httptest.NewRecorder()
	handler.GetHistory(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var history []HistoryRecordDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&history))
	require.Len(t, history, 3)
	assert.Equal(t, "updated", history[1].Action)
	assert.Equal(t, "Operations", history[1].Category)
	assert.Equal(t, 5.0, history[1].Hours)
}

func TestHandler_InvalidEntryId(t *testing.T) {
	handler, _ := setupHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/timeentry/abc", nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"entryId": "abc"})
	rr := httptest.NewRecorder()

	handler.GetEntry(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
