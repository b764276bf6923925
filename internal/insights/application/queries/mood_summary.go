package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

// MoodSummaryDTO aggregates the moods logged on one day's slots. Dominant is
// empty when no mood was logged; ties break toward the mood logged on the
// earlier slot.
type MoodSummaryDTO struct {
	Day      time.Time      `json:"day"`
	Counts   map[string]int `json:"counts"`
	Dominant string         `json:"dominant,omitempty"`
}

// MoodSummaryQuery asks for the mood distribution of one day.
type MoodSummaryQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// MoodSummaryHandler handles the MoodSummaryQuery.
type MoodSummaryHandler struct {
	scheduleRepo scheduleDomain.Repository
}

// NewMoodSummaryHandler creates a new MoodSummaryHandler.
func NewMoodSummaryHandler(scheduleRepo scheduleDomain.Repository) *MoodSummaryHandler {
	return &MoodSummaryHandler{scheduleRepo: scheduleRepo}
}

// Handle executes the MoodSummaryQuery. A day without a schedule yields an
// empty summary rather than an error.
func (h *MoodSummaryHandler) Handle(ctx context.Context, query MoodSummaryQuery) (*MoodSummaryDTO, error) {
	day := scheduleDomain.NormalizeDay(query.Day)
	summary := &MoodSummaryDTO{Day: day, Counts: make(map[string]int)}

	s, err := h.scheduleRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		if isNotFound(err) {
			return summary, nil
		}
		return nil, err
	}

	best := 0
	for _, slot := range s.Slots() {
		if slot.Mood() == nil {
			continue
		}
		mood := slot.Mood().String()
		summary.Counts[mood]++
		if summary.Counts[mood] > best {
			best = summary.Counts[mood]
			summary.Dominant = mood
		}
	}

	return summary, nil
}
