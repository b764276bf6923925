package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// CompleteSlotCommand marks a slot as done. Completing an already completed
// slot is a no-op.
type CompleteSlotCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
}

// CompleteSlotHandler handles the CompleteSlotCommand.
type CompleteSlotHandler struct {
	slotHandler
}

// NewCompleteSlotHandler creates a new CompleteSlotHandler.
func NewCompleteSlotHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *CompleteSlotHandler {
	return &CompleteSlotHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the CompleteSlotCommand.
func (h *CompleteSlotHandler) Handle(ctx context.Context, cmd CompleteSlotCommand) error {
	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.CompleteSlot(cmd.SlotID)
	})
}
