package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

// DecisionDTO is the read model for one recorded decision.
type DecisionDTO struct {
	SlotID    uuid.UUID `json:"slot_id"`
	Accepted  bool      `json:"accepted"`
	DecidedAt time.Time `json:"decided_at"`
}

// DecisionForQuery asks for the decision recorded against a slot.
type DecisionForQuery struct {
	SlotID uuid.UUID
}

// DecisionForHandler handles the DecisionForQuery.
type DecisionForHandler struct {
	decisionRepo recommendationDomain.Repository
}

// NewDecisionForHandler creates a new DecisionForHandler.
func NewDecisionForHandler(decisionRepo recommendationDomain.Repository) *DecisionForHandler {
	return &DecisionForHandler{decisionRepo: decisionRepo}
}

// Handle executes the DecisionForQuery. A nil result means no decision has
// been recorded, which is distinct from a rejection.
func (h *DecisionForHandler) Handle(ctx context.Context, query DecisionForQuery) (*DecisionDTO, error) {
	decision, err := h.decisionRepo.FindBySlotID(ctx, query.SlotID)
	if err != nil {
		if errors.Is(err, sharedDomain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &DecisionDTO{
		SlotID:    decision.SlotID(),
		Accepted:  decision.Accepted(),
		DecidedAt: decision.DecidedAt(),
	}, nil
}
