package queries

import (
	"context"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
)

// CategoryShareDTO is one task type's share of the user's planned effort.
type CategoryShareDTO struct {
	Type           string  `json:"type"`
	EffectiveHours float64 `json:"effective_hours"`
	Percentage     float64 `json:"percentage"`
}

// CategoryDistributionQuery asks how the user's effective hours split across
// task types.
type CategoryDistributionQuery struct {
	UserID uuid.UUID
}

// CategoryDistributionHandler handles the CategoryDistributionQuery.
type CategoryDistributionHandler struct {
	taskRepo taskDomain.Repository
}

// NewCategoryDistributionHandler creates a new CategoryDistributionHandler.
func NewCategoryDistributionHandler(taskRepo taskDomain.Repository) *CategoryDistributionHandler {
	return &CategoryDistributionHandler{taskRepo: taskRepo}
}

// Handle executes the CategoryDistributionQuery. Every task type appears in
// the result even when the user has no tasks of that type.
func (h *CategoryDistributionHandler) Handle(ctx context.Context, query CategoryDistributionQuery) ([]CategoryShareDTO, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	hoursByType := make(map[taskDomain.Type]float64, len(taskDomain.AllTypes()))
	var total float64
	for _, t := range tasks {
		hours := t.EffectiveHours()
		hoursByType[t.TaskType()] += hours
		total += hours
	}

	shares := make([]CategoryShareDTO, 0, len(taskDomain.AllTypes()))
	for _, taskType := range taskDomain.AllTypes() {
		share := CategoryShareDTO{
			Type:           taskType.String(),
			EffectiveHours: hoursByType[taskType],
		}
		if total > 0 {
			share.Percentage = hoursByType[taskType] / total * 100
		}
		shares = append(shares, share)
	}

	return shares, nil
}
