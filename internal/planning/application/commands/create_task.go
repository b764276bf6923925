package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Name            string
	Type            string
	Category        string
	WeeklyHours     float64
	IsHighFrequency bool
	IsOvercome      bool
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	taskType, err := task.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}

	var result *CreateTaskResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := task.NewTask(cmd.UserID, cmd.Name, taskType, cmd.Category, cmd.WeeklyHours)
		if err != nil {
			return err
		}

		if cmd.IsHighFrequency {
			t.SetHighFrequency(true)
		}
		if cmd.IsOvercome {
			t.SetOvercome(true)
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, t, cmd.UserID); err != nil {
			return err
		}

		result = &CreateTaskResult{TaskID: t.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// saveEventsToOutbox stores the task's pending domain events in the outbox
// within the current transaction.
func saveEventsToOutbox(ctx context.Context, outboxRepo outbox.Repository, t *task.Task, userID uuid.UUID) error {
	events := t.DomainEvents()
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return outboxRepo.SaveBatch(ctx, msgs)
}
