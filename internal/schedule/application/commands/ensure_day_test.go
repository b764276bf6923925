package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

func TestEnsureDayHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("creates the grid when the day is new", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEnsureDayHandler(scheduleRepo, outboxRepo, uow, testLocks())

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		scheduleRepo.On("FindByUserAndDay", txCtx, userID, day).Return(nil, scheduleDomain.ErrScheduleNotFound)

		var saved *scheduleDomain.DaySchedule
		scheduleRepo.On("Save", txCtx, mock.AnythingOfType("*domain.DaySchedule")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*scheduleDomain.DaySchedule)
		}).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, EnsureDayCommand{
			UserID:   userID,
			Day:      day,
			Template: scheduleDomain.DefaultTemplate(),
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Created)
		require.NotNil(t, saved)
		assert.Equal(t, saved.ID(), result.ScheduleID)
		assert.Len(t, saved.Slots(), 16)

		uow.AssertExpectations(t)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("returns the existing grid untouched", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEnsureDayHandler(scheduleRepo, outboxRepo, uow, testLocks())

		existing := newScheduleForTest(t, userID)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		scheduleRepo.On("FindByUserAndDay", txCtx, userID, day).Return(existing, nil)

		result, err := handler.Handle(ctx, EnsureDayCommand{
			UserID:   userID,
			Day:      day,
			Template: scheduleDomain.DefaultTemplate(),
		})

		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, existing.ID(), result.ScheduleID)
		scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid template rolls back", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewEnsureDayHandler(scheduleRepo, outboxRepo, uow, testLocks())

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		scheduleRepo.On("FindByUserAndDay", txCtx, userID, day).Return(nil, scheduleDomain.ErrScheduleNotFound)

		result, err := handler.Handle(ctx, EnsureDayCommand{
			UserID:   userID,
			Day:      day,
			Template: scheduleDomain.SlotTemplate{DayStartHour: 10, DayEndHour: 8, SlotMinutes: 30},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, scheduleDomain.ErrInvalidTemplate)
		outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}
