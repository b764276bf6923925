package queries

import (
	"context"

	"github.com/google/uuid"

	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
)

// AcceptanceRateDTO summarizes how often the user accepts recommendations.
// Rate is 0 when nothing has been decided yet.
type AcceptanceRateDTO struct {
	Accepted int     `json:"accepted"`
	Rejected int     `json:"rejected"`
	Total    int     `json:"total"`
	Rate     float64 `json:"rate"`
}

// AcceptanceRateQuery asks for the user's recommendation acceptance rate.
type AcceptanceRateQuery struct {
	UserID uuid.UUID
}

// AcceptanceRateHandler handles the AcceptanceRateQuery.
type AcceptanceRateHandler struct {
	decisionRepo recommendationDomain.Repository
}

// NewAcceptanceRateHandler creates a new AcceptanceRateHandler.
func NewAcceptanceRateHandler(decisionRepo recommendationDomain.Repository) *AcceptanceRateHandler {
	return &AcceptanceRateHandler{decisionRepo: decisionRepo}
}

// Handle executes the AcceptanceRateQuery.
func (h *AcceptanceRateHandler) Handle(ctx context.Context, query AcceptanceRateQuery) (*AcceptanceRateDTO, error) {
	decisions, err := h.decisionRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	rate := &AcceptanceRateDTO{Total: len(decisions)}
	for _, d := range decisions {
		if d.Accepted() {
			rate.Accepted++
		} else {
			rate.Rejected++
		}
	}
	if rate.Total > 0 {
		rate.Rate = float64(rate.Accepted) / float64(rate.Total)
	}

	return rate, nil
}
