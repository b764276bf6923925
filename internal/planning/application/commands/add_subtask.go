package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// AddSubtaskCommand contains the data needed to add a subtask.
type AddSubtaskCommand struct {
	UserID          uuid.UUID
	TaskID          uuid.UUID
	Name            string
	Hours           float64
	IsHighFrequency bool
	IsOvercome      bool
}

// AddSubtaskResult contains the result of adding a subtask.
type AddSubtaskResult struct {
	SubtaskID uuid.UUID
}

// AddSubtaskHandler handles the AddSubtaskCommand.
type AddSubtaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAddSubtaskHandler creates a new AddSubtaskHandler.
func NewAddSubtaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AddSubtaskHandler {
	return &AddSubtaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the AddSubtaskCommand.
func (h *AddSubtaskHandler) Handle(ctx context.Context, cmd AddSubtaskCommand) (*AddSubtaskResult, error) {
	var result *AddSubtaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		st, err := t.AddSubtask(cmd.Name, cmd.Hours)
		if err != nil {
			return err
		}
		if cmd.IsHighFrequency {
			st.SetHighFrequency(true)
		}
		if cmd.IsOvercome {
			st.SetOvercome(true)
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, t, cmd.UserID); err != nil {
			return err
		}

		result = &AddSubtaskResult{SubtaskID: st.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
