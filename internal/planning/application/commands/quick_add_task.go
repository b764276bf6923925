package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// QuickAddTaskCommand turns a line of free text into a bare study task.
type QuickAddTaskCommand struct {
	UserID uuid.UUID
	Text   string
}

// QuickAddTaskResult contains the result of quick-adding a task.
type QuickAddTaskResult struct {
	TaskID uuid.UUID
}

// QuickAddTaskHandler handles the QuickAddTaskCommand.
type QuickAddTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewQuickAddTaskHandler creates a new QuickAddTaskHandler.
func NewQuickAddTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *QuickAddTaskHandler {
	return &QuickAddTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the QuickAddTaskCommand.
func (h *QuickAddTaskHandler) Handle(ctx context.Context, cmd QuickAddTaskCommand) (*QuickAddTaskResult, error) {
	var result *QuickAddTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := task.QuickAdd(cmd.UserID, cmd.Text)
		if err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, t, cmd.UserID); err != nil {
			return err
		}

		result = &QuickAddTaskResult{TaskID: t.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
