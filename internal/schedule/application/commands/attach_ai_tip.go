package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// AttachAITipCommand annotates a slot with an AI suggestion. The recommended
// task, when set, is what accepting the recommendation later binds.
type AttachAITipCommand struct {
	UserID            uuid.UUID
	SlotID            uuid.UUID
	Tip               string
	RecommendedTaskID *uuid.UUID
}

// AttachAITipHandler handles the AttachAITipCommand.
type AttachAITipHandler struct {
	slotHandler
}

// NewAttachAITipHandler creates a new AttachAITipHandler.
func NewAttachAITipHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *AttachAITipHandler {
	return &AttachAITipHandler{slotHandler{scheduleRepo: scheduleRepo, outboxRepo: outboxRepo, uow: uow, locks: locks}}
}

// Handle executes the AttachAITipCommand.
func (h *AttachAITipHandler) Handle(ctx context.Context, cmd AttachAITipCommand) error {
	return h.mutate(ctx, cmd.UserID, cmd.SlotID, func(s *scheduleDomain.DaySchedule) error {
		return s.AttachAITip(cmd.SlotID, cmd.Tip, cmd.RecommendedTaskID)
	})
}
