package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists day schedules with their slots.
type Repository interface {
	// Save persists a schedule and all of its slots.
	Save(ctx context.Context, schedule *DaySchedule) error

	// FindByID loads a schedule. Returns ErrScheduleNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*DaySchedule, error)

	// FindByUserAndDay loads the schedule for one calendar day. Returns
	// ErrScheduleNotFound when no grid exists for that day yet.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*DaySchedule, error)

	// FindBySlotID loads the schedule that owns the given slot.
	FindBySlotID(ctx context.Context, slotID uuid.UUID) (*DaySchedule, error)

	// FindByUserBetween loads all schedules whose day falls in [from, to],
	// ordered by day ascending. Archived days are included.
	FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*DaySchedule, error)

	// FindActiveByUser loads the user's non-archived schedules ordered by
	// day ascending.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*DaySchedule, error)

	// FindActiveByTaskID loads non-archived schedules that have at least one
	// slot bound to the task.
	FindActiveByTaskID(ctx context.Context, taskID uuid.UUID) ([]*DaySchedule, error)
}
