package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

// ErrDecisionNotFound is returned when no decision has been recorded for a
// slot. Callers must distinguish "not yet decided" from "rejected".
var ErrDecisionNotFound = fmt.Errorf("recommendation decision: %w", sharedDomain.ErrNotFound)

// Decision records a user's accept/reject response to an AI-suggested slot
// binding. One decision per slot; re-deciding overwrites the prior one.
type Decision struct {
	sharedDomain.BaseAggregateRoot
	slotID    uuid.UUID
	userID    uuid.UUID
	accepted  bool
	decidedAt time.Time
}

// NewDecision records a fresh decision for a slot.
func NewDecision(slotID, userID uuid.UUID, accepted bool) *Decision {
	d := &Decision{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		slotID:            slotID,
		userID:            userID,
		accepted:          accepted,
		decidedAt:         time.Now(),
	}
	d.AddDomainEvent(NewDecisionRecorded(d.ID(), slotID, userID, accepted))
	return d
}

// Getters

func (d *Decision) SlotID() uuid.UUID    { return d.slotID }
func (d *Decision) UserID() uuid.UUID    { return d.userID }
func (d *Decision) Accepted() bool       { return d.accepted }
func (d *Decision) DecidedAt() time.Time { return d.decidedAt }

// Redecide overwrites the decision, last write wins.
func (d *Decision) Redecide(accepted bool) {
	d.accepted = accepted
	d.decidedAt = time.Now()
	d.Touch()
	d.AddDomainEvent(NewDecisionRecorded(d.ID(), d.slotID, d.userID, accepted))
}

// RehydrateDecision recreates a decision from persisted state.
func RehydrateDecision(id, slotID, userID uuid.UUID, accepted bool, decidedAt, createdAt, updatedAt time.Time) *Decision {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Decision{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity),
		slotID:            slotID,
		userID:            userID,
		accepted:          accepted,
		decidedAt:         decidedAt,
	}
}
