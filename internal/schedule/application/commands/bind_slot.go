package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// BindSlotCommand attaches a task, optionally one of its subtasks, to a slot.
type BindSlotCommand struct {
	UserID    uuid.UUID
	SlotID    uuid.UUID
	TaskID    uuid.UUID
	SubtaskID *uuid.UUID
}

// BindSlotHandler handles the BindSlotCommand. The task and subtask are
// resolved inside the transaction so a slot can never end up bound to a task
// that does not exist.
type BindSlotHandler struct {
	slotHandler
	taskRepo taskDomain.Repository
}

// NewBindSlotHandler creates a new BindSlotHandler.
func NewBindSlotHandler(scheduleRepo scheduleDomain.Repository, taskRepo taskDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *BindSlotHandler {
	return &BindSlotHandler{
		slotHandler: slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks},
		taskRepo:    taskRepo,
	}
}

// Handle executes the BindSlotCommand.
func (h *BindSlotHandler) Handle(ctx context.Context, cmd BindSlotCommand) error {
	return h.locks.WithUser(cmd.UserID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
			if err != nil {
				return err
			}
			if cmd.SubtaskID != nil {
				if _, ok := t.SubtaskByID(*cmd.SubtaskID); !ok {
					return fmt.Errorf("%w: %s", taskDomain.ErrSubtaskNotFound, *cmd.SubtaskID)
				}
			}

			s, err := h.scheduleRepo.FindBySlotID(txCtx, cmd.SlotID)
			if err != nil {
				return err
			}
			if err := s.BindSlot(cmd.SlotID, cmd.TaskID, cmd.SubtaskID); err != nil {
				return err
			}
			if err := h.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}
			return saveScheduleEvents(txCtx, h.outboxRepo, s, cmd.UserID)
		})
	})
}
