package app

import (
	"github.com/grafytimes/grafytimes/internal/config"
	"github.com/grafytimes/grafytimes/internal/event_bus"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/goal"
	"github.com/grafytimes/grafytimes/pkg/note"
	"github.com/grafytimes/grafytimes/pkg/stats"
	"github.com/grafytimes/grafytimes/pkg/study"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	WorklogService *worklog.ServiceImpl
	WorklogHandler *worklog.Handler

	GoalService *goal.ServiceImpl
	GoalHandler *goal.Handler

	StudyService *study.ServiceImpl
	StudyHandler *study.Handler

	NoteService *note.ServiceImpl
	NoteHandler *note.Handler

	StatsService *stats.ServiceImpl
	StatsHandler *stats.StatsHandler
}

// Repositories groups the stores used by the services, so tests can swap them for stubs.
type Repositories struct {
	Users   user.Repo
	Records worklog.Repository
	Goals   goal.Repository
	Studies study.Repository
	Notes   note.Repository
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:   user.NewUserRepo(db),
		Records: worklog.NewRepository(db),
		Goals:   goal.NewRepository(db),
		Studies: study.NewRepository(db),
		Notes:   note.NewRepository(db),
	}
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	return WireDependencies(PostgresRepositories(db), &utils.SystemClock{}, cfg)
}

func WireDependencies(repos Repositories, clock utils.Clock, cfg config.Application) *Dependencies {
	deps := &Dependencies{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock

	deps.UserService = user.NewUserService(repos.Users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.WorklogService = worklog.NewService(repos.Records, deps.EventBus)
	deps.WorklogHandler = worklog.NewHandler(deps.WorklogService)

	deps.GoalService = goal.NewService(repos.Goals, deps.WorklogService, deps.Clock)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.StudyService = study.NewService(repos.Studies, deps.EventBus, deps.Clock)
	deps.StudyHandler = study.NewHandler(deps.StudyService)

	deps.NoteService = note.NewService(repos.Notes, deps.Clock)
	deps.NoteHandler = note.NewHandler(deps.NoteService)

	deps.StatsService = stats.NewService(deps.WorklogService, deps.GoalService, deps.StudyService, deps.Clock, cfg.Stats)
	deps.StatsHandler = stats.NewStatsHandler(
		deps.StatsService,
		stats.NewTextReportRenderer(),
		stats.NewXlsxReportRenderer(),
		stats.NewIcsCalendarRenderer(),
		stats.NewCsvReportRenderer(),
	)

	return deps
}
