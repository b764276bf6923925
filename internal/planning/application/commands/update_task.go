package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// UpdateTaskCommand contains the fields to update. Nil pointers leave the
// corresponding field untouched.
type UpdateTaskCommand struct {
	UserID          uuid.UUID
	TaskID          uuid.UUID
	Name            *string
	Type            *string
	Category        *string
	WeeklyHours     *float64
	IsHighFrequency *bool
	IsOvercome      *bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		var fields []string

		if cmd.Name != nil {
			if err := t.SetName(*cmd.Name); err != nil {
				return err
			}
			fields = append(fields, "name")
		}
		if cmd.Type != nil {
			taskType, err := task.ParseType(*cmd.Type)
			if err != nil {
				return err
			}
			t.SetType(taskType)
			fields = append(fields, "type")
		}
		if cmd.Category != nil {
			t.SetCategory(*cmd.Category)
			fields = append(fields, "category")
		}
		if cmd.WeeklyHours != nil {
			if err := t.SetWeeklyHours(*cmd.WeeklyHours); err != nil {
				return err
			}
			fields = append(fields, "weekly_hours")
		}
		if cmd.IsHighFrequency != nil {
			t.SetHighFrequency(*cmd.IsHighFrequency)
			fields = append(fields, "is_high_frequency")
		}
		if cmd.IsOvercome != nil {
			t.SetOvercome(*cmd.IsOvercome)
			fields = append(fields, "is_overcome")
		}

		t.MarkUpdated(fields)

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		return saveEventsToOutbox(txCtx, h.outboxRepo, t, cmd.UserID)
	})
}
