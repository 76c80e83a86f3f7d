package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Holidays
	r.HandleFunc("/api/holidays", deps.HolidayHandler.ListHolidays).Queries("year", "{year}").Methods("GET")
	r.HandleFunc("/api/holidays/check", deps.HolidayHandler.CheckDate).Queries("date", "{date}").Methods("GET")

	// Time entries
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.GetEntry).Methods("GET")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/api/timeentry/{entryId}/history", deps.TimeEntryHandler.GetHistory).Methods("GET")

	// Capacity & utilization
	r.HandleFunc("/api/capacity", deps.CapacityHandler.GetCapacity).Methods("GET")
	r.HandleFunc("/api/utilization", deps.UtilizationHandler.GetUtilization).Methods("GET")

	// Reports
	r.HandleFunc("/api/reports/capacity", RequireAdmin(deps.CapacityHandler.GetFleetCapacity)).Methods("GET")
	r.HandleFunc("/api/reports/utilization", RequireAdmin(deps.UtilizationHandler.GetReport)).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")

	// Activity tracker integration
	r.HandleFunc("/api/integrations/activity/sync", deps.ActivityHandler.Sync).Methods("POST")
	r.HandleFunc("/api/integrations/activity/reconciliation", deps.ActivityHandler.GetReconciliation).Methods("GET")
}
