package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// ReopenSlotCommand undoes a completed slot back to "pending" or
// "in_progress".
type ReopenSlotCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
	To     string
}

// ReopenSlotHandler handles the ReopenSlotCommand.
type ReopenSlotHandler struct {
	slotHandler
}

// NewReopenSlotHandler creates a new ReopenSlotHandler.
func NewReopenSlotHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *ReopenSlotHandler {
	return &ReopenSlotHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the ReopenSlotCommand.
func (h *ReopenSlotHandler) Handle(ctx context.Context, cmd ReopenSlotCommand) error {
	to, err := scheduleDomain.ParseStatus(cmd.To)
	if err != nil {
		return err
	}

	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.ReopenSlot(cmd.SlotID, to)
	})
}
