package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

const (
	AggregateType = "RecommendationDecision"

	RoutingKeyDecisionRecorded = "recommendation.decision.recorded"
)

// DecisionRecorded is emitted whenever a decision is recorded or overwritten.
type DecisionRecorded struct {
	sharedDomain.BaseEvent
	SlotID   uuid.UUID `json:"slot_id"`
	UserID   uuid.UUID `json:"user_id"`
	Accepted bool      `json:"accepted"`
}

// NewDecisionRecorded creates a DecisionRecorded event.
func NewDecisionRecorded(decisionID, slotID, userID uuid.UUID, accepted bool) DecisionRecorded {
	return DecisionRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(decisionID, AggregateType, RoutingKeyDecisionRecorded),
		SlotID:    slotID,
		UserID:    userID,
		Accepted:  accepted,
	}
}
