package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	"github.com/temporahq/tempora/internal/shared/infrastructure/migrations"

	_ "modernc.org/sqlite"
)

// setupSQLiteTestDB creates an in-memory SQLite database with the schema applied.
func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), sqlDB))

	return sqlDB
}

func TestSQLiteTaskRepository_SaveAndFind(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)
	ctx := context.Background()
	userID := uuid.New()

	newTask, err := task.NewTask(userID, "Linear algebra", task.TypeStudy, "math", 6)
	require.NoError(t, err)
	_, err = newTask.AddSubtask("Problem sets", 2)
	require.NoError(t, err)
	_, err = newTask.AddSubtask("Lectures", 3)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, newTask))

	found, err := repo.FindByID(ctx, newTask.ID())
	require.NoError(t, err)
	assert.Equal(t, newTask.ID(), found.ID())
	assert.Equal(t, "Linear algebra", found.Name())
	assert.Equal(t, task.TypeStudy, found.TaskType())
	assert.Equal(t, "math", found.Category())
	assert.Equal(t, userID, found.UserID())

	subtasks := found.Subtasks()
	require.Len(t, subtasks, 2)
	assert.Equal(t, "Problem sets", subtasks[0].Name())
	assert.Equal(t, "Lectures", subtasks[1].Name())
	assert.Equal(t, 5.0, found.EffectiveHours())
}

func TestSQLiteTaskRepository_Save_Update(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)
	ctx := context.Background()

	newTask, err := task.NewTask(uuid.New(), "Gym", task.TypeLife, "", 3)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newTask))

	require.NoError(t, newTask.SetName("Strength training"))
	require.NoError(t, newTask.SetWeeklyHours(4.5))
	newTask.SetOvercome(true)
	require.NoError(t, repo.Save(ctx, newTask))

	found, err := repo.FindByID(ctx, newTask.ID())
	require.NoError(t, err)
	assert.Equal(t, "Strength training", found.Name())
	assert.Equal(t, 4.5, found.WeeklyHours())
	assert.True(t, found.IsOvercome())
}

func TestSQLiteTaskRepository_FindByID_NotFound(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)

	found, err := repo.FindByID(context.Background(), uuid.New())

	assert.Nil(t, found)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestSQLiteTaskRepository_FindByUserID_InsertionOrder(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)
	ctx := context.Background()
	userID := uuid.New()

	first, _ := task.NewTask(userID, "First", task.TypeStudy, "", 1)
	second, _ := task.NewTask(userID, "Second", task.TypeWork, "", 2)
	third, _ := task.NewTask(userID, "Third", task.TypeStudy, "", 3)
	for _, tsk := range []*task.Task{first, second, third} {
		require.NoError(t, repo.Save(ctx, tsk))
	}

	// Another user's tasks must not leak in.
	other, _ := task.NewTask(uuid.New(), "Other", task.TypeStudy, "", 1)
	require.NoError(t, repo.Save(ctx, other))

	all, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID(), all[0].ID())
	assert.Equal(t, second.ID(), all[1].ID())
	assert.Equal(t, third.ID(), all[2].ID())

	studies, err := repo.FindByUserIDAndType(ctx, userID, task.TypeStudy)
	require.NoError(t, err)
	require.Len(t, studies, 2)
	assert.Equal(t, first.ID(), studies[0].ID())
	assert.Equal(t, third.ID(), studies[1].ID())
}

func TestSQLiteTaskRepository_FindByUserID_OrderSurvivesShortFractions(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)
	ctx := context.Background()
	userID := uuid.New()

	// A trimmed fractional second would store ".12Z", which sorts after
	// ".1234Z" as text and reverses these two.
	earlier := time.Date(2026, 3, 2, 12, 0, 0, 120_000_000, time.UTC)
	later := time.Date(2026, 3, 2, 12, 0, 0, 123_400_000, time.UTC)

	first := task.RehydrateTask(uuid.New(), userID, "First", task.TypeStudy, "", 1, false, false, nil, earlier, earlier)
	second := task.RehydrateTask(uuid.New(), userID, "Second", task.TypeStudy, "", 2, false, false, nil, later, later)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	all, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Name())
	assert.Equal(t, "Second", all[1].Name())
}

func TestSQLiteTaskRepository_Delete(t *testing.T) {
	sqlDB := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(sqlDB)
	ctx := context.Background()

	newTask, err := task.NewTask(uuid.New(), "Thesis", task.TypeStudy, "", 10)
	require.NoError(t, err)
	_, err = newTask.AddSubtask("Reading", 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newTask))

	require.NoError(t, repo.Delete(ctx, newTask.ID()))

	_, err = repo.FindByID(ctx, newTask.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM subtasks WHERE task_id = ?`, newTask.ID().String()).Scan(&count))
	assert.Zero(t, count)

	// Deleting again is a no-op.
	assert.NoError(t, repo.Delete(ctx, newTask.ID()))
}
