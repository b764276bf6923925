package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
)

// FlagEntryDTO is a flagged task or subtask in a flag report. For subtasks
// ParentName carries the owning task's name.
type FlagEntryDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ParentName string    `json:"parent_name,omitempty"`
	IsSubtask  bool      `json:"is_subtask"`
	Hours      float64   `json:"hours"`
}

// FlagReportQuery asks for the user's high-frequency or overcome report.
type FlagReportQuery struct {
	UserID uuid.UUID
}

// FlagReportHandler builds reports over the high-frequency and overcome
// flags. Both reports cover tasks and subtasks and sort by hours descending.
type FlagReportHandler struct {
	taskRepo taskDomain.Repository
}

// NewFlagReportHandler creates a new FlagReportHandler.
func NewFlagReportHandler(taskRepo taskDomain.Repository) *FlagReportHandler {
	return &FlagReportHandler{taskRepo: taskRepo}
}

// HighFrequency lists everything flagged as high-frequency.
func (h *FlagReportHandler) HighFrequency(ctx context.Context, query FlagReportQuery) ([]FlagEntryDTO, error) {
	return h.report(ctx, query.UserID,
		func(t *taskDomain.Task) bool { return t.IsHighFrequency() },
		func(s *taskDomain.Subtask) bool { return s.IsHighFrequency() },
	)
}

// Overcome lists everything flagged as overcome.
func (h *FlagReportHandler) Overcome(ctx context.Context, query FlagReportQuery) ([]FlagEntryDTO, error) {
	return h.report(ctx, query.UserID,
		func(t *taskDomain.Task) bool { return t.IsOvercome() },
		func(s *taskDomain.Subtask) bool { return s.IsOvercome() },
	)
}

func (h *FlagReportHandler) report(
	ctx context.Context,
	userID uuid.UUID,
	taskFlag func(*taskDomain.Task) bool,
	subtaskFlag func(*taskDomain.Subtask) bool,
) ([]FlagEntryDTO, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]FlagEntryDTO, 0)
	for _, t := range tasks {
		if taskFlag(t) {
			entries = append(entries, FlagEntryDTO{
				ID:    t.ID(),
				Name:  t.Name(),
				Hours: t.EffectiveHours(),
			})
		}
		for _, sub := range t.Subtasks() {
			if subtaskFlag(sub) {
				entries = append(entries, FlagEntryDTO{
					ID:         sub.ID(),
					Name:       sub.Name(),
					ParentName: t.Name(),
					IsSubtask:  true,
					Hours:      sub.Hours(),
				})
			}
		}
	}

	// Stable keeps creation order among equal-hour entries.
	sort.Stable(byHoursDesc(entries))
	return entries, nil
}

type byHoursDesc []FlagEntryDTO

func (e byHoursDesc) Len() int           { return len(e) }
func (e byHoursDesc) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }
func (e byHoursDesc) Less(i, j int) bool { return e[i].Hours > e[j].Hours }
