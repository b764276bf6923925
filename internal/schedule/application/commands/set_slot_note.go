package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// SetSlotNoteCommand writes a free-text note on a slot. Empty text clears
// the note.
type SetSlotNoteCommand struct {
	UserID uuid.UUID
	SlotID uuid.UUID
	Text   string
}

// SetSlotNoteHandler handles the SetSlotNoteCommand.
type SetSlotNoteHandler struct {
	slotHandler
}

// NewSetSlotNoteHandler creates a new SetSlotNoteHandler.
func NewSetSlotNoteHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *SetSlotNoteHandler {
	return &SetSlotNoteHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the SetSlotNoteCommand.
func (h *SetSlotNoteHandler) Handle(ctx context.Context, cmd SetSlotNoteCommand) error {
	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.SetSlotNote(cmd.SlotID, cmd.Text)
	})
}
