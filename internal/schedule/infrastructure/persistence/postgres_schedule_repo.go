package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// PostgresScheduleRepository implements domain.Repository using PostgreSQL.
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleRepository creates a new PostgreSQL schedule repository.
func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// Save persists a schedule and upserts all of its slots.
func (r *PostgresScheduleRepository) Save(ctx context.Context, s *scheduleDomain.DaySchedule) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO schedules (id, user_id, day, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		s.ID(), s.UserID(), s.Day(), s.IsArchived(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	for _, slot := range s.Slots() {
		if err := r.saveSlot(ctx, exec, slot); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresScheduleRepository) saveSlot(ctx context.Context, exec sharedPersistence.DBExecutor, slot *scheduleDomain.TimeSlot) error {
	query := `
		INSERT INTO time_slots (
			id, schedule_id, start_time, end_time, task_id, subtask_id,
			status, mood, note, is_ai_recommended, ai_tip, recommended_task_id,
			position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			task_id = EXCLUDED.task_id,
			subtask_id = EXCLUDED.subtask_id,
			status = EXCLUDED.status,
			mood = EXCLUDED.mood,
			note = EXCLUDED.note,
			is_ai_recommended = EXCLUDED.is_ai_recommended,
			ai_tip = EXCLUDED.ai_tip,
			recommended_task_id = EXCLUDED.recommended_task_id,
			updated_at = EXCLUDED.updated_at
	`
	var moodName *string
	if mood := slot.Mood(); mood != nil {
		name := mood.String()
		moodName = &name
	}

	_, err := exec.Exec(ctx, query,
		slot.ID(),
		slot.ScheduleID(),
		slot.Range().Start(),
		slot.Range().End(),
		slot.TaskID(),
		slot.SubtaskID(),
		slot.Status().String(),
		moodName,
		slot.Note(),
		slot.IsAIRecommended(),
		slot.AITip(),
		slot.RecommendedTaskID(),
		slot.Position(),
		slot.CreatedAt(),
		slot.UpdatedAt(),
	)
	return err
}

const pgSelectSchedule = `
	SELECT id, user_id, day, archived, created_at, updated_at
	FROM schedules
`

// FindByID retrieves a schedule with its slots.
func (r *PostgresScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	return r.findOne(ctx, ` WHERE id = $1`, id)
}

// FindByUserAndDay retrieves one calendar day's schedule.
func (r *PostgresScheduleRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*scheduleDomain.DaySchedule, error) {
	return r.findOne(ctx, ` WHERE user_id = $1 AND day = $2`, userID, scheduleDomain.NormalizeDay(day))
}

// FindBySlotID retrieves the schedule owning the given slot.
func (r *PostgresScheduleRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var scheduleID uuid.UUID
	err := exec.QueryRow(ctx, `SELECT schedule_id FROM time_slots WHERE id = $1`, slotID).Scan(&scheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scheduleDomain.ErrSlotNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, scheduleID)
}

// FindByUserBetween retrieves all schedules in [from, to] ordered by day.
func (r *PostgresScheduleRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, ` WHERE user_id = $1 AND day >= $2 AND day <= $3 ORDER BY day`,
		userID, scheduleDomain.NormalizeDay(from), scheduleDomain.NormalizeDay(to))
}

// FindActiveByUser retrieves the user's non-archived schedules ordered by day.
func (r *PostgresScheduleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, ` WHERE user_id = $1 AND NOT archived ORDER BY day`, userID)
}

// FindActiveByTaskID retrieves non-archived schedules with a slot bound to
// the task.
func (r *PostgresScheduleRepository) FindActiveByTaskID(ctx context.Context, taskID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, `
		WHERE NOT archived AND id IN (SELECT schedule_id FROM time_slots WHERE task_id = $1)
		ORDER BY day
	`, taskID)
}

func (r *PostgresScheduleRepository) findOne(ctx context.Context, where string, args ...any) (*scheduleDomain.DaySchedule, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	row := exec.QueryRow(ctx, pgSelectSchedule+where, args...)
	sr, err := scanPgScheduleRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scheduleDomain.ErrScheduleNotFound
		}
		return nil, err
	}

	slots, err := r.loadSlots(ctx, exec, sr.id)
	if err != nil {
		return nil, err
	}
	return sr.toSchedule(slots)
}

func (r *PostgresScheduleRepository) findWhere(ctx context.Context, where string, args ...any) ([]*scheduleDomain.DaySchedule, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, pgSelectSchedule+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scheduleRows []pgScheduleRow
	for rows.Next() {
		sr, err := scanPgScheduleRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		scheduleRows = append(scheduleRows, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	schedules := make([]*scheduleDomain.DaySchedule, 0, len(scheduleRows))
	for _, sr := range scheduleRows {
		slots, err := r.loadSlots(ctx, exec, sr.id)
		if err != nil {
			return nil, err
		}
		s, err := sr.toSchedule(slots)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

func (r *PostgresScheduleRepository) loadSlots(ctx context.Context, exec sharedPersistence.DBExecutor, scheduleID uuid.UUID) ([]*scheduleDomain.TimeSlot, error) {
	rows, err := exec.Query(ctx, `
		SELECT id, schedule_id, start_time, end_time, task_id, subtask_id,
		       status, mood, note, is_ai_recommended, ai_tip, recommended_task_id,
		       position, created_at, updated_at
		FROM time_slots
		WHERE schedule_id = $1
		ORDER BY position
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*scheduleDomain.TimeSlot
	for rows.Next() {
		var (
			id, ownerID          uuid.UUID
			start, end           time.Time
			taskID, subtaskID    *uuid.UUID
			status               string
			moodName             *string
			note                 string
			aiRecommended        bool
			aiTip                *string
			recommendedTaskID    *uuid.UUID
			position             int
			createdAt, updatedAt time.Time
		)
		err := rows.Scan(
			&id, &ownerID, &start, &end, &taskID, &subtaskID,
			&status, &moodName, &note, &aiRecommended, &aiTip, &recommendedTaskID,
			&position, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		timeRange, err := scheduleDomain.NewTimeRange(start, end)
		if err != nil {
			return nil, err
		}
		slotStatus, err := scheduleDomain.ParseStatus(status)
		if err != nil {
			return nil, err
		}

		var mood *scheduleDomain.Mood
		if moodName != nil {
			parsed, err := scheduleDomain.ParseMood(*moodName)
			if err != nil {
				return nil, err
			}
			mood = &parsed
		}

		slots = append(slots, scheduleDomain.RehydrateTimeSlot(
			id, ownerID, timeRange, taskID, subtaskID, slotStatus,
			mood, note, aiRecommended, aiTip, recommendedTaskID,
			position, createdAt, updatedAt,
		))
	}
	return slots, rows.Err()
}

type pgScheduleRow struct {
	id        uuid.UUID
	userID    uuid.UUID
	day       time.Time
	archived  bool
	createdAt time.Time
	updatedAt time.Time
}

func scanPgScheduleRow(scan func(dest ...any) error) (pgScheduleRow, error) {
	var sr pgScheduleRow
	err := scan(&sr.id, &sr.userID, &sr.day, &sr.archived, &sr.createdAt, &sr.updatedAt)
	return sr, err
}

func (sr pgScheduleRow) toSchedule(slots []*scheduleDomain.TimeSlot) (*scheduleDomain.DaySchedule, error) {
	return scheduleDomain.RehydrateDaySchedule(sr.id, sr.userID, sr.day, sr.archived, slots, sr.createdAt, sr.updatedAt), nil
}
