package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedPersistence "github.com/temporahq/tempora/internal/shared/infrastructure/persistence"
)

// SQLiteScheduleRepository implements domain.Repository using SQLite.
type SQLiteScheduleRepository struct {
	db *sql.DB
}

// NewSQLiteScheduleRepository creates a new SQLite schedule repository.
func NewSQLiteScheduleRepository(db *sql.DB) *SQLiteScheduleRepository {
	return &SQLiteScheduleRepository{db: db}
}

func (r *SQLiteScheduleRepository) querier(ctx context.Context) sharedPersistence.SQLQuerier {
	return sharedPersistence.SQLiteExecutor(ctx, r.db)
}

// Save persists a schedule and all of its slots. Slot rows are upserted in
// place; the grid never shrinks mid-day so no rows are deleted.
func (r *SQLiteScheduleRepository) Save(ctx context.Context, s *scheduleDomain.DaySchedule) error {
	q := r.querier(ctx)

	query := `
		INSERT INTO schedules (id, user_id, day, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			archived = excluded.archived,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		s.ID().String(),
		s.UserID().String(),
		sharedPersistence.FormatTime(s.Day()),
		boolToInt(s.IsArchived()),
		sharedPersistence.FormatTime(s.CreatedAt()),
		sharedPersistence.FormatTime(s.UpdatedAt()),
	)
	if err != nil {
		return err
	}

	for _, slot := range s.Slots() {
		if err := r.saveSlot(ctx, q, slot); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteScheduleRepository) saveSlot(ctx context.Context, q sharedPersistence.SQLQuerier, slot *scheduleDomain.TimeSlot) error {
	query := `
		INSERT INTO time_slots (
			id, schedule_id, start_time, end_time, task_id, subtask_id,
			status, mood, note, is_ai_recommended, ai_tip, recommended_task_id,
			position, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			task_id = excluded.task_id,
			subtask_id = excluded.subtask_id,
			status = excluded.status,
			mood = excluded.mood,
			note = excluded.note,
			is_ai_recommended = excluded.is_ai_recommended,
			ai_tip = excluded.ai_tip,
			recommended_task_id = excluded.recommended_task_id,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		slot.ID().String(),
		slot.ScheduleID().String(),
		sharedPersistence.FormatTime(slot.Range().Start()),
		sharedPersistence.FormatTime(slot.Range().End()),
		uuidPtrToString(slot.TaskID()),
		uuidPtrToString(slot.SubtaskID()),
		slot.Status().String(),
		moodToString(slot.Mood()),
		slot.Note(),
		boolToInt(slot.IsAIRecommended()),
		slot.AITip(),
		uuidPtrToString(slot.RecommendedTaskID()),
		slot.Position(),
		sharedPersistence.FormatTime(slot.CreatedAt()),
		sharedPersistence.FormatTime(slot.UpdatedAt()),
	)
	return err
}

const sqliteSelectSchedule = `
	SELECT id, user_id, day, archived, created_at, updated_at
	FROM schedules
`

// FindByID retrieves a schedule with its slots.
func (r *SQLiteScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	return r.findOne(ctx, ` WHERE id = ?`, id.String())
}

// FindByUserAndDay retrieves one calendar day's schedule.
func (r *SQLiteScheduleRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*scheduleDomain.DaySchedule, error) {
	normalized := scheduleDomain.NormalizeDay(day)
	return r.findOne(ctx, ` WHERE user_id = ? AND day = ?`, userID.String(), sharedPersistence.FormatTime(normalized))
}

// FindBySlotID retrieves the schedule owning the given slot.
func (r *SQLiteScheduleRepository) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	q := r.querier(ctx)

	row := q.QueryRowContext(ctx, `SELECT schedule_id FROM time_slots WHERE id = ?`, slotID.String())
	var scheduleID string
	if err := row.Scan(&scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scheduleDomain.ErrSlotNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindByUserBetween retrieves all schedules in [from, to] ordered by day.
func (r *SQLiteScheduleRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, ` WHERE user_id = ? AND day >= ? AND day <= ? ORDER BY day`,
		userID.String(),
		sharedPersistence.FormatTime(scheduleDomain.NormalizeDay(from)),
		sharedPersistence.FormatTime(scheduleDomain.NormalizeDay(to)),
	)
}

// FindActiveByUser retrieves the user's non-archived schedules ordered by day.
func (r *SQLiteScheduleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, ` WHERE user_id = ? AND archived = 0 ORDER BY day`, userID.String())
}

// FindActiveByTaskID retrieves non-archived schedules with a slot bound to
// the task.
func (r *SQLiteScheduleRepository) FindActiveByTaskID(ctx context.Context, taskID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	return r.findWhere(ctx, `
		WHERE archived = 0 AND id IN (SELECT schedule_id FROM time_slots WHERE task_id = ?)
		ORDER BY day
	`, taskID.String())
}

func (r *SQLiteScheduleRepository) findOne(ctx context.Context, where string, args ...any) (*scheduleDomain.DaySchedule, error) {
	q := r.querier(ctx)

	row := q.QueryRowContext(ctx, sqliteSelectSchedule+where, args...)
	sr, err := scanScheduleRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scheduleDomain.ErrScheduleNotFound
		}
		return nil, err
	}

	slots, err := r.loadSlots(ctx, q, sr.id)
	if err != nil {
		return nil, err
	}
	return sr.toSchedule(slots)
}

func (r *SQLiteScheduleRepository) findWhere(ctx context.Context, where string, args ...any) ([]*scheduleDomain.DaySchedule, error) {
	q := r.querier(ctx)

	rows, err := q.QueryContext(ctx, sqliteSelectSchedule+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scheduleRows []scheduleRow
	for rows.Next() {
		sr, err := scanScheduleRow(rows.Scan)
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
		slots, err := r.loadSlots(ctx, q, sr.id)
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

func (r *SQLiteScheduleRepository) loadSlots(ctx context.Context, q sharedPersistence.SQLQuerier, scheduleID uuid.UUID) ([]*scheduleDomain.TimeSlot, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, schedule_id, start_time, end_time, task_id, subtask_id,
		       status, mood, note, is_ai_recommended, ai_tip, recommended_task_id,
		       position, created_at, updated_at
		FROM time_slots
		WHERE schedule_id = ?
		ORDER BY position
	`, scheduleID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*scheduleDomain.TimeSlot
	for rows.Next() {
		slot, err := scanSlotRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

type scheduleRow struct {
	id        uuid.UUID
	userID    uuid.UUID
	day       string
	archived  bool
	createdAt string
	updatedAt string
}

func scanScheduleRow(scan func(dest ...any) error) (scheduleRow, error) {
	var (
		sr         scheduleRow
		id, userID string
		archived   int
	)
	err := scan(&id, &userID, &sr.day, &archived, &sr.createdAt, &sr.updatedAt)
	if err != nil {
		return scheduleRow{}, err
	}

	if sr.id, err = uuid.Parse(id); err != nil {
		return scheduleRow{}, err
	}
	if sr.userID, err = uuid.Parse(userID); err != nil {
		return scheduleRow{}, err
	}
	sr.archived = archived != 0

	return sr, nil
}

func (sr scheduleRow) toSchedule(slots []*scheduleDomain.TimeSlot) (*scheduleDomain.DaySchedule, error) {
	day, err := sharedPersistence.ParseTime(sr.day)
	if err != nil {
		return nil, err
	}
	created, err := sharedPersistence.ParseTime(sr.createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sharedPersistence.ParseTime(sr.updatedAt)
	if err != nil {
		return nil, err
	}

	return scheduleDomain.RehydrateDaySchedule(sr.id, sr.userID, day, sr.archived, slots, created, updated), nil
}

func scanSlotRow(scan func(dest ...any) error) (*scheduleDomain.TimeSlot, error) {
	var (
		id, scheduleID           string
		startTime, endTime       string
		taskID, subtaskID        sql.NullString
		status                   string
		mood                     sql.NullString
		note                     string
		aiRecommended            int
		aiTip, recommendedTaskID sql.NullString
		position                 int
		createdAt, updatedAt     string
	)
	err := scan(
		&id, &scheduleID, &startTime, &endTime, &taskID, &subtaskID,
		&status, &mood, &note, &aiRecommended, &aiTip, &recommendedTaskID,
		&position, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slotID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, err
	}

	start, err := sharedPersistence.ParseTime(startTime)
	if err != nil {
		return nil, err
	}
	end, err := sharedPersistence.ParseTime(endTime)
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

	boundTaskID, err := parseNullUUID(taskID)
	if err != nil {
		return nil, err
	}
	boundSubtaskID, err := parseNullUUID(subtaskID)
	if err != nil {
		return nil, err
	}
	recommendedID, err := parseNullUUID(recommendedTaskID)
	if err != nil {
		return nil, err
	}

	var slotMood *scheduleDomain.Mood
	if mood.Valid {
		parsed, err := scheduleDomain.ParseMood(mood.String)
		if err != nil {
			return nil, err
		}
		slotMood = &parsed
	}

	var tip *string
	if aiTip.Valid {
		tip = &aiTip.String
	}

	created, err := sharedPersistence.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sharedPersistence.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return scheduleDomain.RehydrateTimeSlot(
		slotID,
		ownerID,
		timeRange,
		boundTaskID,
		boundSubtaskID,
		slotStatus,
		slotMood,
		note,
		aiRecommended != 0,
		tip,
		recommendedID,
		position,
		created,
		updated,
	), nil
}

func parseNullUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrToString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func moodToString(m *scheduleDomain.Mood) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
