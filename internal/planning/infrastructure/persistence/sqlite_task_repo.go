package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// SQLiteTaskRepository implements task.Repository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) querier(ctx context.Context) sharedPersistence.SQLQuerier {
	return sharedPersistence.SQLiteExecutor(ctx, r.db)
}

// Save persists a task and its subtasks. Subtasks are rewritten as a set so
// the stored rows always mirror the aggregate.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	q := r.querier(ctx)

	query := `
		INSERT INTO tasks (
			id, user_id, name, task_type, category, weekly_hours,
			is_high_frequency, is_overcome, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			task_type = excluded.task_type,
			category = excluded.category,
			weekly_hours = excluded.weekly_hours,
			is_high_frequency = excluded.is_high_frequency,
			is_overcome = excluded.is_overcome,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		t.ID().String(),
		t.UserID().String(),
		t.Name(),
		t.TaskType().String(),
		t.Category(),
		t.WeeklyHours(),
		boolToInt(t.IsHighFrequency()),
		boolToInt(t.IsOvercome()),
		sharedPersistence.FormatTime(t.CreatedAt()),
		sharedPersistence.FormatTime(t.UpdatedAt()),
	)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, t.ID().String()); err != nil {
		return err
	}

	for _, st := range t.Subtasks() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, name, hours, is_high_frequency, is_overcome, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			st.ID().String(),
			t.ID().String(),
			st.Name(),
			st.Hours(),
			boolToInt(st.IsHighFrequency()),
			boolToInt(st.IsOvercome()),
			st.Position(),
			sharedPersistence.FormatTime(st.CreatedAt()),
			sharedPersistence.FormatTime(st.UpdatedAt()),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

const sqliteSelectTask = `
	SELECT id, user_id, name, task_type, category, weekly_hours,
	       is_high_frequency, is_overcome, created_at, updated_at
	FROM tasks
`

// FindByID retrieves a task with its subtasks.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	q := r.querier(ctx)

	row := q.QueryRowContext(ctx, sqliteSelectTask+` WHERE id = ?`, id.String())
	tr, err := scanTaskRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	subtasks, err := r.loadSubtasks(ctx, q, tr.id)
	if err != nil {
		return nil, err
	}

	return tr.toTask(subtasks)
}

// FindByUserID retrieves all tasks for a user in insertion order.
func (r *SQLiteTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, ` WHERE user_id = ? ORDER BY created_at, id`, userID.String())
}

// FindByUserIDAndType retrieves a user's tasks of one type in insertion order.
func (r *SQLiteTaskRepository) FindByUserIDAndType(ctx context.Context, userID uuid.UUID, taskType task.Type) ([]*task.Task, error) {
	return r.findWhere(ctx, ` WHERE user_id = ? AND task_type = ? ORDER BY created_at, id`, userID.String(), taskType.String())
}

// Delete removes a task. Subtasks cascade via the schema. Deleting a missing
// task is not an error.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.querier(ctx)
	if _, err := q.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id.String()); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteTaskRepository) findWhere(ctx context.Context, where string, args ...any) ([]*task.Task, error) {
	q := r.querier(ctx)

	rows, err := q.QueryContext(ctx, sqliteSelectTask+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taskRows []taskRow
	for rows.Next() {
		tr, err := scanTaskRow(rows.Scan)
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
		subtasks, err := r.loadSubtasks(ctx, q, tr.id)
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

func (r *SQLiteTaskRepository) loadSubtasks(ctx context.Context, q sharedPersistence.SQLQuerier, taskID uuid.UUID) ([]*task.Subtask, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, task_id, name, hours, is_high_frequency, is_overcome, position, created_at, updated_at
		FROM subtasks
		WHERE task_id = ?
		ORDER BY position
	`, taskID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []*task.Subtask
	for rows.Next() {
		var (
			id, parentID            string
			name                    string
			hours                   float64
			highFrequency, overcome int
			position                int
			createdAt, updatedAt    string
		)
		if err := rows.Scan(&id, &parentID, &name, &hours, &highFrequency, &overcome, &position, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		subtaskID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(parentID)
		if err != nil {
			return nil, err
		}
		created, err := sharedPersistence.ParseTime(createdAt)
		if err != nil {
			return nil, err
		}
		updated, err := sharedPersistence.ParseTime(updatedAt)
		if err != nil {
			return nil, err
		}

		subtasks = append(subtasks, task.RehydrateSubtask(subtaskID, ownerID, name, hours, highFrequency != 0, overcome != 0, position, created, updated))
	}
	return subtasks, rows.Err()
}

type taskRow struct {
	id              uuid.UUID
	userID          uuid.UUID
	name            string
	taskType        task.Type
	category        string
	weeklyHours     float64
	isHighFrequency bool
	isOvercome      bool
	createdAt       string
	updatedAt       string
}

func scanTaskRow(scan func(dest ...any) error) (taskRow, error) {
	var (
		tr                      taskRow
		id, userID, taskType    string
		highFrequency, overcome int
	)
	err := scan(
		&id,
		&userID,
		&tr.name,
		&taskType,
		&tr.category,
		&tr.weeklyHours,
		&highFrequency,
		&overcome,
		&tr.createdAt,
		&tr.updatedAt,
	)
	if err != nil {
		return taskRow{}, err
	}

	if tr.id, err = uuid.Parse(id); err != nil {
		return taskRow{}, err
	}
	if tr.userID, err = uuid.Parse(userID); err != nil {
		return taskRow{}, err
	}
	if tr.taskType, err = task.ParseType(taskType); err != nil {
		return taskRow{}, err
	}
	tr.isHighFrequency = highFrequency != 0
	tr.isOvercome = overcome != 0

	return tr, nil
}

func (tr taskRow) toTask(subtasks []*task.Subtask) (*task.Task, error) {
	created, err := sharedPersistence.ParseTime(tr.createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sharedPersistence.ParseTime(tr.updatedAt)
	if err != nil {
		return nil, err
	}

	return task.RehydrateTask(
		tr.id,
		tr.userID,
		tr.name,
		tr.taskType,
		tr.category,
		tr.weeklyHours,
		tr.isHighFrequency,
		tr.isOvercome,
		subtasks,
		created,
		updated,
	), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
