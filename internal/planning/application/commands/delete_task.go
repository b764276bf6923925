package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// DeleteTaskCommand contains the data needed to delete a task.
type DeleteTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand. Deletion cascades to
// subtasks and is idempotent: deleting a missing task succeeds without
// emitting an event.
type DeleteTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			if errors.Is(err, sharedDomain.ErrNotFound) {
				return nil
			}
			return err
		}

		t.ClearDomainEvents()
		t.Remove()

		if err := h.taskRepo.Delete(txCtx, cmd.TaskID); err != nil {
			return err
		}

		return saveEventsToOutbox(txCtx, h.outboxRepo, t, cmd.UserID)
	})
}
