package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// RecordDecisionCommand records an accept or reject response for a slot's
// recommendation. Re-deciding overwrites the prior decision.
type RecordDecisionCommand struct {
	UserID   uuid.UUID
	SlotID   uuid.UUID
	Accepted bool
}

// RecordDecisionHandler handles the RecordDecisionCommand.
type RecordDecisionHandler struct {
	decisionRepo recommendationDomain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
}

// NewRecordDecisionHandler creates a new RecordDecisionHandler.
func NewRecordDecisionHandler(decisionRepo recommendationDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RecordDecisionHandler {
	return &RecordDecisionHandler{
		decisionRepo: decisionRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
	}
}

// Handle executes the RecordDecisionCommand.
func (h *RecordDecisionHandler) Handle(ctx context.Context, cmd RecordDecisionCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return RecordDecision(txCtx, h.decisionRepo, h.outboxRepo, cmd.UserID, cmd.SlotID, cmd.Accepted)
	})
}

// RecordDecision upserts a decision inside the caller's transaction. Facade
// operations that pair a decision with a slot mutation call it directly so
// both commit or roll back together.
func RecordDecision(ctx context.Context, decisionRepo recommendationDomain.Repository, outboxRepo outbox.Repository, userID, slotID uuid.UUID, accepted bool) error {
	decision, err := decisionRepo.FindBySlotID(ctx, slotID)
	switch {
	case err == nil:
		decision.Redecide(accepted)
	case errors.Is(err, sharedDomain.ErrNotFound):
		decision = recommendationDomain.NewDecision(slotID, userID, accepted)
	default:
		return err
	}

	if err := decisionRepo.Save(ctx, decision); err != nil {
		return err
	}
	return saveDecisionEvents(ctx, outboxRepo, decision, userID)
}

// saveDecisionEvents stores the decision's pending domain events in the
// outbox within the current transaction.
func saveDecisionEvents(ctx context.Context, outboxRepo outbox.Repository, d *recommendationDomain.Decision, userID uuid.UUID) error {
	events := d.DomainEvents()
	if len(events) == 0 {
		return nil
	}
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
