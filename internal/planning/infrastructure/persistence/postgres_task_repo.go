package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// Save persists a task and rewrites its subtask rows.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO tasks (
			id, user_id, name, task_type, category, weekly_hours,
			is_high_frequency, is_overcome, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			task_type = EXCLUDED.task_type,
			category = EXCLUDED.category,
			weekly_hours = EXCLUDED.weekly_hours,
			is_high_frequency = EXCLUDED.is_high_frequency,
			is_overcome = EXCLUDED.is_overcome,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		t.ID(),
		t.UserID(),
		t.Name(),
		t.TaskType().String(),
		t.Category(),
		t.WeeklyHours(),
		t.IsHighFrequency(),
		t.IsOvercome(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM subtasks WHERE task_id = $1`, t.ID()); err != nil {
		return err
	}

	for _, st := range t.Subtasks() {
		_, err := exec.Exec(ctx, `
			INSERT INTO subtasks (id, task_id, name, hours, is_high_frequency, is_overcome, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			st.ID(), t.ID(), st.Name(), st.Hours(), st.IsHighFrequency(), st.IsOvercome(), st.Position(), st.CreatedAt(), st.UpdatedAt(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

const pgSelectTask = `
	SELECT id, user_id, name, task_type, category, weekly_hours,
	       is_high_frequency, is_overcome, created_at, updated_at
	FROM tasks
`

// FindByID retrieves a task with its subtasks.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	row := exec.QueryRow(ctx, pgSelectTask+` WHERE id = $1`, id)
	tr, err := scanPgTaskRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	subtasks, err := r.loadSubtasks(ctx, exec, tr.id)
	if err != nil {
		return nil, err
	}

	return tr.toTask(subtasks)
}

// FindByUserID retrieves all tasks for a user in insertion order.
func (r *PostgresTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, ` WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// FindByUserIDAndType retrieves a user's tasks of one type in insertion order.
func (r *PostgresTaskRepository) FindByUserIDAndType(ctx context.Context, userID uuid.UUID, taskType task.Type) ([]*task.Task, error) {
	return r.findWhere(ctx, ` WHERE user_id = $1 AND task_type = $2 ORDER BY created_at, id`, userID, taskType.String())
}

// Delete removes a task and its subtasks. Missing tasks are not an error.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM subtasks WHERE task_id = $1`, id); err != nil {
		return err
	}
	_, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *PostgresTaskRepository) findWhere(ctx context.Context, where string, args ...any) ([]*task.Task, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, pgSelectTask+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taskRows []pgTaskRow
	for rows.Next() {
		tr, err := scanPgTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		taskRows = append(taskRows, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(taskRows))
	for _, tr := range taskRows {
		subtasks, err := r.loadSubtasks(ctx, exec, tr.id)
		if err != nil {
			return nil, err
		}
		t, err := tr.toTask(subtasks)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) loadSubtasks(ctx context.Context, exec sharedPersistence.DBExecutor, taskID uuid.UUID) ([]*task.Subtask, error) {
	rows, err := exec.Query(ctx, `
		SELECT id, task_id, name, hours, is_high_frequency, is_overcome, position, created_at, updated_at
		FROM subtasks
		WHERE task_id = $1
		ORDER BY position
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []*task.Subtask
	for rows.Next() {
		var (
			id, parentID            uuid.UUID
			name                    string
			hours                   float64
			highFrequency, overcome bool
			position                int
			createdAt, updatedAt    time.Time
		)
		if err := rows.Scan(&id, &parentID, &name, &hours, &highFrequency, &overcome, &position, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, task.RehydrateSubtask(id, parentID, name, hours, highFrequency, overcome, position, createdAt, updatedAt))
	}
	return subtasks, rows.Err()
}

type pgTaskRow struct {
	id              uuid.UUID
	userID          uuid.UUID
	name            string
	taskType        string
	category        string
	weeklyHours     float64
	isHighFrequency bool
	isOvercome      bool
	createdAt       time.Time
	updatedAt       time.Time
}

func scanPgTaskRow(scan func(dest ...any) error) (pgTaskRow, error) {
	var tr pgTaskRow
	err := scan(
		&tr.id,
		&tr.userID,
		&tr.name,
		&tr.taskType,
		&tr.category,
		&tr.weeklyHours,
		&tr.isHighFrequency,
		&tr.isOvercome,
		&tr.createdAt,
		&tr.updatedAt,
	)
	return tr, err
}

func (tr pgTaskRow) toTask(subtasks []*task.Subtask) (*task.Task, error) {
	taskType, err := task.ParseType(tr.taskType)
	if err != nil {
		return nil, err
	}

	return task.RehydrateTask(
		tr.id,
		tr.userID,
		tr.name,
		taskType,
		tr.category,
		tr.weeklyHours,
		tr.isHighFrequency,
		tr.isOvercome,
		subtasks,
		tr.createdAt,
		tr.updatedAt,
	), nil
}
