package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// SetSlotMoodCommand tags a slot with a mood. Setting the mood the slot
// already carries toggles it off, matching the tap-again gesture in clients.
type SetSlotMoodCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
	Mood   string
}

// SetSlotMoodHandler handles the SetSlotMoodCommand.
type SetSlotMoodHandler struct {
	slotHandler
}

// NewSetSlotMoodHandler creates a new SetSlotMoodHandler.
func NewSetSlotMoodHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *SetSlotMoodHandler {
	return &SetSlotMoodHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the SetSlotMoodCommand.
func (h *SetSlotMoodHandler) Handle(ctx context.Context, cmd SetSlotMoodCommand) error {
	mood, err := scheduleDomain.ParseMood(cmd.Mood)
	if err != nil {
		return err
	}

	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		slot, err := s.SlotByID(cmd.SlotID)
		if err != nil {
			return err
		}
		if current := slot.Mood(); current != nil && *current == mood {
			return s.ClearSlotMood(cmd.SlotID)
		}
		return s.SetSlotMood(cmd.SlotID, mood)
	})
}
