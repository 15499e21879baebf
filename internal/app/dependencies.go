package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/internal/event_bus"
	"github.com/meetcal/meetcal/internal/utils"
	"github.com/meetcal/meetcal/pkg/assignment"
	"github.com/meetcal/meetcal/pkg/baseline"
	"github.com/meetcal/meetcal/pkg/google"
	"github.com/meetcal/meetcal/pkg/ics"
	"github.com/meetcal/meetcal/pkg/importer"
	"github.com/meetcal/meetcal/pkg/layout"
	"github.com/meetcal/meetcal/pkg/reminder"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	Baselines       *baseline.Provider
	BaselineHandler *baseline.Handler

	ScheduleStore   *schedule.StoreImpl
	ScheduleService *schedule.ServiceImpl
	ScheduleHandler *schedule.Handler
	DayHandler      *layout.Handler

	ReminderService reminder.Service
	ReminderHandler *reminder.Handler

	AssignmentService assignment.Service
	AssignmentHandler *assignment.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	IcsSource     *ics.Source
	ExportHandler *ics.Handler

	ImportService *importer.ServiceImpl
	ImportHandler *importer.Handler
	SyncScheduler *importer.Scheduler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewService(user.NewRepository(db), deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	baselines, err := baseline.Load(cfg.Baseline.Path, cfg.Baseline.CohortAliases)
	if err != nil {
		return nil, err
	}
	deps.Baselines = baselines
	deps.BaselineHandler = baseline.NewHandler(deps.Baselines)

	deps.ScheduleStore = schedule.NewStore(schedule.NewRepository(db))
	deps.ScheduleService = schedule.NewService(deps.ScheduleStore, deps.Baselines)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleStore, deps.ScheduleService)

	deps.ReminderService = reminder.NewService(reminder.NewRepository(db))
	deps.ReminderHandler = reminder.NewHandler(deps.ReminderService)
	deps.DayHandler = layout.NewHandler(deps.ScheduleService, deps.ReminderService)

	deps.AssignmentService = assignment.NewService(assignment.NewRepository(db), deps.ScheduleService)
	deps.AssignmentHandler = assignment.NewHandler(deps.AssignmentService)

	deps.GoogleAuth = google.NewGoogleAuth(google.NewTokenRepository(db), cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	deps.IcsSource = ics.NewSource(cfg.Ics)
	deps.ExportHandler = ics.NewHandler(deps.ScheduleService, deps.Clock)

	deps.ImportService = importer.NewService(deps.ScheduleStore, deps.EventBus, deps.Clock, cfg.Sync.HorizonDays,
		google.NewSource(deps.GoogleService), deps.IcsSource)
	deps.ImportHandler = importer.NewHandler(deps.ImportService)
	deps.SyncScheduler = importer.NewScheduler(cfg.Sync, deps.ImportService, deps.UserService, ics.SourceName)

	return deps, nil
}
