package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// UnbindSlotCommand clears a slot's task binding.
type UnbindSlotCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
}

// UnbindSlotHandler handles the UnbindSlotCommand.
type UnbindSlotHandler struct {
	slotHandler
}

// NewUnbindSlotHandler creates a new UnbindSlotHandler.
func NewUnbindSlotHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *UnbindSlotHandler {
	return &UnbindSlotHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the UnbindSlotCommand.
func (h *UnbindSlotHandler) Handle(ctx context.Context, cmd UnbindSlotCommand) error {
	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.UnbindSlot(cmd.SlotID)
	})
}
