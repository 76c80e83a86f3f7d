package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/config"
	"github.com/timeplan/timeplan/internal/event_bus"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/activity"
	"github.com/timeplan/timeplan/pkg/capacity"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
	"github.com/timeplan/timeplan/pkg/user"
	"github.com/timeplan/timeplan/pkg/utilization"
)

type Repositories struct {
	Users       user.Repo
	TimeEntries time_entry.Repository
	Activity    activity.Repository
}

func NewRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       user.NewUserRepo(db),
		TimeEntries: time_entry.NewRepository(db),
		Activity:    activity.NewRepository(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Calendar *holiday.RegionCalendar

	UserService user.Service
	UserHandler *user.Handler

	HolidayHandler *holiday.Handler

	TimeEntryService *time_entry.ServiceImpl
	TimeEntryHandler *time_entry.Handler
	HistoryRecorder  *time_entry.HistoryRecorder

	CapacityService   *capacity.ServiceImpl
	CsvLedgerRenderer *capacity.CsvLedgerRenderer
	CapacityHandler   *capacity.Handler

	UtilizationService *utilization.ServiceImpl
	UtilizationHandler *utilization.Handler

	ActivityClient  activity.Client
	ActivityService *activity.ServiceImpl
	ActivityHandler *activity.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Calendar = holiday.NewCalendar(holiday.ParseRegion(cfg.Calendar.Region), cfg.Calendar.CacheSize)

	deps.UserService = user.NewUserService(repos.Users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.HolidayHandler = holiday.NewHandler(deps.Calendar)

	deps.TimeEntryService = time_entry.NewService(repos.TimeEntries, deps.EventBus)
	deps.TimeEntryHandler = time_entry.NewHandler(deps.TimeEntryService)
	deps.HistoryRecorder = time_entry.NewHistoryRecorder(repos.TimeEntries, deps.Clock)
	deps.HistoryRecorder.Register(deps.EventBus)

	deps.CapacityService = capacity.NewService(deps.Calendar, deps.TimeEntryService, deps.UserService, cfg.Reports.Workers)
	deps.CsvLedgerRenderer = capacity.NewCsvLedgerRenderer()
	deps.CapacityHandler = capacity.NewHandler(deps.CapacityService, deps.CsvLedgerRenderer)

	deps.UtilizationService = utilization.NewService(deps.Calendar, deps.TimeEntryService, deps.UserService, deps.Clock, cfg.Reports.Workers)
	deps.UtilizationHandler = utilization.NewHandler(deps.UtilizationService)

	if cfg.Activity.Enabled {
		deps.ActivityClient = activity.NewClient(cfg.Activity)
	} else {
		log.Info("Activity tracker integration disabled")
	}
	deps.ActivityService = activity.NewService(deps.ActivityClient, repos.Activity, deps.CapacityService, cfg.Activity.ToleranceHours)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	return deps
}
