package app

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	planningPersistence "github.com/temporahq/tempora/internal/planning/infrastructure/persistence"
	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	recommendationPersistence "github.com/temporahq/tempora/internal/recommendation/infrastructure/persistence"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	schedulePersistence "github.com/temporahq/tempora/internal/schedule/infrastructure/persistence"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// Driver identifies the database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// RepositoryFactory creates repositories for the configured driver. Exactly
// one of sqliteDB and pool is set.
type RepositoryFactory struct {
	driver   Driver
	sqliteDB *sql.DB
	pool     *pgxpool.Pool
}

// NewSQLiteRepositoryFactory creates a factory backed by SQLite.
func NewSQLiteRepositoryFactory(db *sql.DB) *RepositoryFactory {
	return &RepositoryFactory{driver: DriverSQLite, sqliteDB: db}
}

// NewPostgresRepositoryFactory creates a factory backed by PostgreSQL.
func NewPostgresRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{driver: DriverPostgres, pool: pool}
}

// Driver returns the database driver type.
func (f *RepositoryFactory) Driver() Driver {
	return f.driver
}

// TaskRepository creates a task repository for the configured driver.
func (f *RepositoryFactory) TaskRepository() (taskDomain.Repository, error) {
	switch f.driver {
	case DriverPostgres:
		return planningPersistence.NewPostgresTaskRepository(f.pool), nil
	case DriverSQLite:
		return planningPersistence.NewSQLiteTaskRepository(f.sqliteDB), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// ScheduleRepository creates a schedule repository for the configured driver.
func (f *RepositoryFactory) ScheduleRepository() (scheduleDomain.Repository, error) {
	switch f.driver {
	case DriverPostgres:
		return schedulePersistence.NewPostgresScheduleRepository(f.pool), nil
	case DriverSQLite:
		return schedulePersistence.NewSQLiteScheduleRepository(f.sqliteDB), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// DecisionRepository creates a recommendation decision repository for the
// configured driver.
func (f *RepositoryFactory) DecisionRepository() (recommendationDomain.Repository, error) {
	switch f.driver {
	case DriverPostgres:
		return recommendationPersistence.NewPostgresDecisionRepository(f.pool), nil
	case DriverSQLite:
		return recommendationPersistence.NewSQLiteDecisionRepository(f.sqliteDB), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case DriverPostgres:
		return outbox.NewPostgresRepository(f.pool), nil
	case DriverSQLite:
		return outbox.NewSQLiteRepository(f.sqliteDB), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// UnitOfWork creates a unit of work for the configured driver.
func (f *RepositoryFactory) UnitOfWork() (sharedApplication.UnitOfWork, error) {
	switch f.driver {
	case DriverPostgres:
		return sharedPersistence.NewPostgresUnitOfWork(f.pool), nil
	case DriverSQLite:
		return sharedPersistence.NewSQLiteUnitOfWork(f.sqliteDB), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}
