package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// StartSlotCommand begins work on a bound slot.
type StartSlotCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
}

// StartSlotHandler handles the StartSlotCommand.
type StartSlotHandler struct {
	slotHandler
}

// NewStartSlotHandler creates a new StartSlotHandler.
func NewStartSlotHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *StartSlotHandler {
	return &StartSlotHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the StartSlotCommand.
func (h *StartSlotHandler) Handle(ctx context.Context, cmd StartSlotCommand) error {
	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.StartSlot(cmd.SlotID)
	})
}
