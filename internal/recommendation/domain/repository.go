package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists recommendation decisions. Every decision is kept, so
// acceptance statistics derive from raw history rather than snapshots.
type Repository interface {
	// Save upserts a decision keyed by slot id.
	Save(ctx context.Context, decision *Decision) error

	// FindBySlotID returns the decision for a slot. Returns
	// ErrDecisionNotFound when none has been recorded.
	FindBySlotID(ctx context.Context, slotID uuid.UUID) (*Decision, error)

	// FindByUserID returns all of a user's decisions, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Decision, error)

	// Delete removes the decision for a slot. No error when absent.
	Delete(ctx context.Context, slotID uuid.UUID) error
}
