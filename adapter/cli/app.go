package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/app"
	insightsQueries "github.com/temporahq/tempora/internal/insights/application/queries"
	planningCommands "github.com/temporahq/tempora/internal/planning/application/commands"
	planningQueries "github.com/temporahq/tempora/internal/planning/application/queries"
	recommendationQueries "github.com/temporahq/tempora/internal/recommendation/application/queries"
	scheduleCommands "github.com/temporahq/tempora/internal/schedule/application/commands"
	scheduleQueries "github.com/temporahq/tempora/internal/schedule/application/queries"
	scheduleServices "github.com/temporahq/tempora/internal/schedule/application/services"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	"github.com/temporahq/tempora/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task command handlers
	CreateTaskHandler   *planningCommands.CreateTaskHandler
	QuickAddTaskHandler *planningCommands.QuickAddTaskHandler
	AddSubtaskHandler   *planningCommands.AddSubtaskHandler
	UpdateTaskHandler   *planningCommands.UpdateTaskHandler
	DeleteTaskHandler   *planningCommands.DeleteTaskHandler

	// Task query handlers
	ListTasksHandler *planningQueries.ListTasksHandler
	GetTaskHandler   *planningQueries.GetTaskHandler

	// Slot command handlers
	EnsureDayHandler    *scheduleCommands.EnsureDayHandler
	BindSlotHandler     *scheduleCommands.BindSlotHandler
	UnbindSlotHandler   *scheduleCommands.UnbindSlotHandler
	StartSlotHandler    *scheduleCommands.StartSlotHandler
	CompleteSlotHandler *scheduleCommands.CompleteSlotHandler
	ReopenSlotHandler   *scheduleCommands.ReopenSlotHandler
	SetSlotMoodHandler  *scheduleCommands.SetSlotMoodHandler
	SetSlotNoteHandler  *scheduleCommands.SetSlotNoteHandler
	AttachAITipHandler  *scheduleCommands.AttachAITipHandler

	// Slot query handlers
	GetDayScheduleHandler *scheduleQueries.GetDayScheduleHandler

	// Recommendation query handlers
	DecisionForHandler *recommendationQueries.DecisionForHandler

	// Facade for the flows that cross contexts
	Planner *scheduleServices.Planner

	// Insights query handlers
	WeeklyOverviewHandler       *insightsQueries.WeeklyOverviewHandler
	CategoryDistributionHandler *insightsQueries.CategoryDistributionHandler
	FlagReportHandler           *insightsQueries.FlagReportHandler
	WeeklyChartHandler          *insightsQueries.WeeklyChartHandler
	MoodSummaryHandler          *insightsQueries.MoodSummaryHandler
	AcceptanceRateHandler       *insightsQueries.AcceptanceRateHandler

	Health       *observability.HealthRegistry
	SlotTemplate scheduleDomain.SlotTemplate

	// Current user (configured per environment)
	CurrentUserID uuid.UUID

	container *app.Container
}

// NewApp builds the CLI application from the wired container.
func NewApp(c *app.Container, userID uuid.UUID) *App {
	return &App{
		CreateTaskHandler:   c.CreateTaskHandler,
		QuickAddTaskHandler: c.QuickAddTaskHandler,
		AddSubtaskHandler:   c.AddSubtaskHandler,
		UpdateTaskHandler:   c.UpdateTaskHandler,
		DeleteTaskHandler:   c.DeleteTaskHandler,

		ListTasksHandler: c.ListTasksHandler,
		GetTaskHandler:   c.GetTaskHandler,

		EnsureDayHandler:    c.EnsureDayHandler,
		BindSlotHandler:     c.BindSlotHandler,
		UnbindSlotHandler:   c.UnbindSlotHandler,
		StartSlotHandler:    c.StartSlotHandler,
		CompleteSlotHandler: c.CompleteSlotHandler,
		ReopenSlotHandler:   c.ReopenSlotHandler,
		SetSlotMoodHandler:  c.SetSlotMoodHandler,
		SetSlotNoteHandler:  c.SetSlotNoteHandler,
		AttachAITipHandler:  c.AttachAITipHandler,

		GetDayScheduleHandler: c.GetDayScheduleHandler,

		DecisionForHandler: c.DecisionForHandler,

		Planner: c.Planner,

		WeeklyOverviewHandler:       c.WeeklyOverviewHandler,
		CategoryDistributionHandler: c.CategoryDistributionHandler,
		FlagReportHandler:           c.FlagReportHandler,
		WeeklyChartHandler:          c.WeeklyChartHandler,
		MoodSummaryHandler:          c.MoodSummaryHandler,
		AcceptanceRateHandler:       c.AcceptanceRateHandler,

		Health:       c.Health,
		SlotTemplate: c.SlotTemplate,

		CurrentUserID: userID,

		container: c,
	}
}

// Drain flushes pending outbox messages. CLI invocations are short-lived,
// so mutating commands call this before the process exits.
func (a *App) Drain(ctx context.Context) {
	if a.container != nil {
		a.container.DrainOutbox(ctx)
	}
}

var cliApp *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	cliApp = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return cliApp
}

// RequireApp returns the global app or an error when the container failed
// to initialize.
func RequireApp() (*App, error) {
	if cliApp == nil {
		return nil, fmt.Errorf("application not initialized - database connection required")
	}
	return cliApp, nil
}

// ParseDay parses a YYYY-MM-DD argument, defaulting to today when empty.
func ParseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", value, err)
	}
	return day, nil
}
