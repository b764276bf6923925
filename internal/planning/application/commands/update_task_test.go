package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/temporahq/tempora/internal/planning/domain/task"
)

func TestUpdateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	newStoredTask := func() *task.Task {
		tsk, err := task.NewTask(userID, "Gym", task.TypeLife, "fitness", 3)
		require.NoError(t, err)
		tsk.ClearDomainEvents()
		return tsk
	}

	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("updates the provided fields only", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)
		stored := newStoredTask()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, stored.ID()).Return(stored, nil)
		taskRepo.On("Save", txCtx, stored).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := UpdateTaskCommand{
			UserID:      userID,
			TaskID:      stored.ID(),
			Name:        strPtr("Strength training"),
			WeeklyHours: floatPtr(4.5),
			IsOvercome:  boolPtr(true),
		}

		err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Strength training", stored.Name())
		assert.Equal(t, 4.5, stored.WeeklyHours())
		assert.True(t, stored.IsOvercome())
		assert.Equal(t, task.TypeLife, stored.TaskType())
		assert.Equal(t, "fitness", stored.Category())

		events := stored.DomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(task.TaskUpdated)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"name", "weekly_hours", "is_overcome"}, updated.Fields)

		uow.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("fails on unknown type", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)
		stored := newStoredTask()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, stored.ID()).Return(stored, nil)

		cmd := UpdateTaskCommand{
			UserID: userID,
			TaskID: stored.ID(),
			Type:   strPtr("hobby"),
		}

		err := handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, task.ErrUnknownType)
		uow.AssertExpectations(t)
	})

	t.Run("fails when task does not exist", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)
		missingID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, missingID).Return(nil, task.ErrTaskNotFound)

		err := handler.Handle(ctx, UpdateTaskCommand{UserID: userID, TaskID: missingID, Name: strPtr("x")})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		uow.AssertExpectations(t)
	})

	t.Run("no fields means no update event", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskHandler(taskRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)
		stored := newStoredTask()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, stored.ID()).Return(stored, nil)
		taskRepo.On("Save", txCtx, stored).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.Handle(ctx, UpdateTaskCommand{UserID: userID, TaskID: stored.ID()})

		require.NoError(t, err)
		assert.Empty(t, stored.DomainEvents())
	})
}
