// Package app wires configuration, storage, messaging and handlers into a
// runnable application container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	insightsQueries "github.com/temporahq/tempora/internal/insights/application/queries"
	planningCommands "github.com/temporahq/tempora/internal/planning/application/commands"
	planningQueries "github.com/temporahq/tempora/internal/planning/application/queries"
	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	recommendationCommands "github.com/temporahq/tempora/internal/recommendation/application/commands"
	recommendationQueries "github.com/temporahq/tempora/internal/recommendation/application/queries"
	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	scheduleCommands "github.com/temporahq/tempora/internal/schedule/application/commands"
	scheduleQueries "github.com/temporahq/tempora/internal/schedule/application/queries"
	scheduleServices "github.com/temporahq/tempora/internal/schedule/application/services"
	scheduleSubscribers "github.com/temporahq/tempora/internal/schedule/application/subscribers"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	scheduleCache "github.com/temporahq/tempora/internal/schedule/infrastructure/cache"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/eventbus"
	"github.com/temporahq/tempora/internal/shared/infrastructure/migrations"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
	"github.com/temporahq/tempora/pkg/config"
	"github.com/temporahq/tempora/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Driver Driver

	// Database handles; exactly one is set depending on Driver.
	SQLiteDB *sql.DB
	Pool     *pgxpool.Pool

	// Optional integrations.
	RedisClient *redis.Client

	// Storage
	TaskRepo     taskDomain.Repository
	ScheduleRepo scheduleDomain.Repository
	DecisionRepo recommendationDomain.Repository
	OutboxRepo   outbox.Repository
	UnitOfWork   sharedApplication.UnitOfWork
	UserLocks    *sharedApplication.UserLocks

	// Messaging
	EventPublisher  eventbus.Publisher
	EventBus        *eventbus.InProcessEventBus
	OutboxProcessor *outbox.Processor

	Health *observability.HealthRegistry

	SlotTemplate scheduleDomain.SlotTemplate

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

	// Recommendation handlers
	RecordDecisionHandler *recommendationCommands.RecordDecisionHandler
	DecisionForHandler    *recommendationQueries.DecisionForHandler

	// Facade
	Planner *scheduleServices.Planner

	// Insights query handlers
	WeeklyOverviewHandler       *insightsQueries.WeeklyOverviewHandler
	CategoryDistributionHandler *insightsQueries.CategoryDistributionHandler
	FlagReportHandler           *insightsQueries.FlagReportHandler
	WeeklyChartHandler          *insightsQueries.WeeklyChartHandler
	MoodSummaryHandler          *insightsQueries.MoodSummaryHandler
	AcceptanceRateHandler       *insightsQueries.AcceptanceRateHandler

	// Subscribers
	TaskRemovedSubscriber *scheduleSubscribers.TaskRemovedSubscriber
}

// NewContainer creates and wires all dependencies. The database backend is
// detected from DATABASE_URL; SQLite needs no external services at all.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Health: observability.NewHealthRegistry(),
	}

	template := scheduleDomain.SlotTemplate{
		DayStartHour: cfg.DayStartHour,
		DayEndHour:   cfg.DayEndHour,
		SlotMinutes:  cfg.SlotMinutes,
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slot configuration: %w", err)
	}
	c.SlotTemplate = template

	factory, err := c.connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := c.createRepositories(factory); err != nil {
		c.Close()
		return nil, err
	}

	c.connectRedis(ctx, cfg, logger)
	c.createMessaging(cfg, logger)
	c.createHandlers()

	return c, nil
}

// connectDatabase opens the configured backend and returns a repository
// factory for it.
func (c *Container) connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*RepositoryFactory, error) {
	switch DetectDriver(cfg.DatabaseURL) {
	case DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		c.Pool = pool
		c.Driver = DriverPostgres
		c.Health.Register("database", observability.DatabaseHealthChecker(pool.Ping))
		logger.Info("connected to database", "driver", "postgres")
		return NewPostgresRepositoryFactory(pool), nil

	default:
		db, err := openSQLite(ctx, SQLitePathFromURL(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.Driver = DriverSQLite
		c.Health.Register("database", observability.DatabaseHealthChecker(db.PingContext))
		logger.Info("connected to database", "driver", "sqlite")
		return NewSQLiteRepositoryFactory(db), nil
	}
}

func (c *Container) createRepositories(factory *RepositoryFactory) error {
	var err error
	if c.TaskRepo, err = factory.TaskRepository(); err != nil {
		return err
	}
	if c.ScheduleRepo, err = factory.ScheduleRepository(); err != nil {
		return err
	}
	if c.DecisionRepo, err = factory.DecisionRepository(); err != nil {
		return err
	}
	if c.OutboxRepo, err = factory.OutboxRepository(); err != nil {
		return err
	}
	if c.UnitOfWork, err = factory.UnitOfWork(); err != nil {
		return err
	}
	c.UserLocks = sharedApplication.NewUserLocks()
	return nil
}

// connectRedis connects when REDIS_URL is set. Redis is a soft dependency,
// so failures degrade rather than abort startup.
func (c *Container) connectRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	if cfg.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid redis URL, continuing without redis", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, continuing without redis", "error", err)
		client.Close()
		return
	}

	c.RedisClient = client
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	logger.Info("connected to redis")
}

// createMessaging sets up the in-process event bus and the outbox processor.
// Subscribers always run in process; when RABBITMQ_URL is set, events are
// additionally published to the broker behind a circuit breaker.
func (c *Container) createMessaging(cfg *config.Config, logger *slog.Logger) {
	c.EventBus = eventbus.NewInProcessEventBus(logger)

	c.TaskRemovedSubscriber = scheduleSubscribers.NewTaskRemovedSubscriber(
		c.ScheduleRepo, c.UnitOfWork, c.UserLocks, logger,
	)
	c.EventBus.RegisterConsumer(c.TaskRemovedSubscriber)

	var publisher eventbus.Publisher = eventbus.NewInProcessPublisher(c.EventBus, logger)

	if cfg.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("rabbitmq not available, publishing in process only", "error", err)
		} else {
			breaker := eventbus.NewBreakerPublisher(rabbit, eventbus.DefaultBreakerConfig(), logger)
			publisher = eventbus.NewFanoutPublisher(logger, publisher, breaker)
			c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(func(context.Context) error {
				return rabbit.Check()
			}))
			logger.Info("connected to rabbitmq")
		}
	}
	c.EventPublisher = publisher

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval:     cfg.OutboxPollInterval,
		BatchSize:        cfg.OutboxBatchSize,
		MaxRetries:       cfg.OutboxMaxRetries,
		RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
		RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
		RetentionDays:    cfg.OutboxRetentionDays,
		CleanupInterval:  cfg.OutboxCleanupInterval,
	}, logger)

	c.Health.Register("outbox", observability.OutboxHealthChecker(func(ctx context.Context) (int, error) {
		failed, err := c.OutboxRepo.GetFailed(ctx, cfg.OutboxMaxRetries, cfg.OutboxBatchSize)
		if err != nil {
			return 0, err
		}
		return len(failed), nil
	}))
}

func (c *Container) createHandlers() {
	// Task commands and queries
	c.CreateTaskHandler = planningCommands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.QuickAddTaskHandler = planningCommands.NewQuickAddTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.AddSubtaskHandler = planningCommands.NewAddSubtaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateTaskHandler = planningCommands.NewUpdateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.DeleteTaskHandler = planningCommands.NewDeleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.ListTasksHandler = planningQueries.NewListTasksHandler(c.TaskRepo)
	c.GetTaskHandler = planningQueries.NewGetTaskHandler(c.TaskRepo)

	// Slot commands and queries
	c.EnsureDayHandler = scheduleCommands.NewEnsureDayHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.BindSlotHandler = scheduleCommands.NewBindSlotHandler(c.ScheduleRepo, c.TaskRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.UnbindSlotHandler = scheduleCommands.NewUnbindSlotHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.StartSlotHandler = scheduleCommands.NewStartSlotHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.CompleteSlotHandler = scheduleCommands.NewCompleteSlotHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.ReopenSlotHandler = scheduleCommands.NewReopenSlotHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.SetSlotMoodHandler = scheduleCommands.NewSetSlotMoodHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.SetSlotNoteHandler = scheduleCommands.NewSetSlotNoteHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.AttachAITipHandler = scheduleCommands.NewAttachAITipHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, c.UserLocks)
	c.GetDayScheduleHandler = scheduleQueries.NewGetDayScheduleHandler(c.ScheduleRepo)
	if c.RedisClient != nil {
		dayCache := scheduleCache.NewRedisDayCache(c.RedisClient, scheduleCache.DefaultTTL, c.Logger)
		c.GetDayScheduleHandler = c.GetDayScheduleHandler.WithCache(dayCache)
	}

	// Recommendation handlers
	c.RecordDecisionHandler = recommendationCommands.NewRecordDecisionHandler(c.DecisionRepo, c.OutboxRepo, c.UnitOfWork)
	c.DecisionForHandler = recommendationQueries.NewDecisionForHandler(c.DecisionRepo)

	// Facade
	c.Planner = scheduleServices.NewPlanner(
		c.TaskRepo, c.ScheduleRepo, c.DecisionRepo,
		c.OutboxRepo, c.UnitOfWork, c.UserLocks, c.SlotTemplate,
	)

	// Insights
	c.WeeklyOverviewHandler = insightsQueries.NewWeeklyOverviewHandler(c.TaskRepo, c.ScheduleRepo)
	c.CategoryDistributionHandler = insightsQueries.NewCategoryDistributionHandler(c.TaskRepo)
	c.FlagReportHandler = insightsQueries.NewFlagReportHandler(c.TaskRepo)
	c.WeeklyChartHandler = insightsQueries.NewWeeklyChartHandler(c.TaskRepo, c.ScheduleRepo)
	c.MoodSummaryHandler = insightsQueries.NewMoodSummaryHandler(c.ScheduleRepo)
	c.AcceptanceRateHandler = insightsQueries.NewAcceptanceRateHandler(c.DecisionRepo)
}

// StartOutboxProcessor starts background event publishing when enabled.
func (c *Container) StartOutboxProcessor(ctx context.Context) error {
	if !c.Config.OutboxProcessorEnabled {
		return nil
	}
	return c.OutboxProcessor.Start(ctx)
}

// DrainOutbox publishes pending outbox messages once. CLI invocations are
// short-lived, so events are drained at the end of a command instead of by
// a long-running poller; retention cleanup piggybacks on the drain for the
// same reason.
func (c *Container) DrainOutbox(ctx context.Context) {
	if err := c.OutboxProcessor.ProcessOnce(ctx); err != nil {
		c.Logger.Warn("failed to drain outbox", "error", err)
	}
	c.OutboxProcessor.CleanupOnce(ctx)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil && c.OutboxProcessor.IsRunning() {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}

// DetectDriver parses a connection string and returns the driver type.
// Empty URLs select SQLite to keep local mode zero-config.
func DetectDriver(url string) Driver {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// SQLitePathFromURL strips the sqlite:// scheme from a database URL.
func SQLitePathFromURL(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	if path == "" {
		path = "tempora.db"
	}
	return path
}

// openSQLite opens the database file with WAL and foreign keys enabled,
// creating the parent directory if needed. SQLite supports a single writer,
// so the pool is capped at one connection.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
