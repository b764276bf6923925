package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

// WeeklyOverviewDTO is the derived weekly completion view. Hour values carry
// full precision; rounding happens at the presentation boundary only.
type WeeklyOverviewDTO struct {
	WeekStart       time.Time `json:"week_start"`
	WeekEnd         time.Time `json:"week_end"`
	TotalStudyHours float64   `json:"total_study_hours"`
	CompletedSlots  int       `json:"completed_slots"`
	TotalSlots      int       `json:"total_slots"`
	CompletionRate  float64   `json:"completion_rate"`
	InProgressSlots int       `json:"in_progress_slots"`
}

// WeeklyOverviewQuery asks for the completion overview of the week
// containing Day.
type WeeklyOverviewQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// WeeklyOverviewHandler handles the WeeklyOverviewQuery.
type WeeklyOverviewHandler struct {
	taskRepo     taskDomain.Repository
	scheduleRepo scheduleDomain.Repository
}

// NewWeeklyOverviewHandler creates a new WeeklyOverviewHandler.
func NewWeeklyOverviewHandler(taskRepo taskDomain.Repository, scheduleRepo scheduleDomain.Repository) *WeeklyOverviewHandler {
	return &WeeklyOverviewHandler{taskRepo: taskRepo, scheduleRepo: scheduleRepo}
}

// Handle executes the WeeklyOverviewQuery.
func (h *WeeklyOverviewHandler) Handle(ctx context.Context, query WeeklyOverviewQuery) (*WeeklyOverviewDTO, error) {
	from, to := weekBounds(query.Day)

	schedules, err := h.scheduleRepo.FindByUserBetween(ctx, query.UserID, from, to)
	if err != nil {
		return nil, err
	}

	typeByTask, err := taskTypes(ctx, h.taskRepo, query.UserID)
	if err != nil {
		return nil, err
	}

	overview := &WeeklyOverviewDTO{WeekStart: from, WeekEnd: to}
	for _, s := range schedules {
		for _, slot := range s.Slots() {
			overview.TotalSlots++
			switch slot.Status() {
			case scheduleDomain.StatusCompleted:
				overview.CompletedSlots++
				if isStudySlot(slot, typeByTask) {
					overview.TotalStudyHours += slot.Range().Hours()
				}
			case scheduleDomain.StatusInProgress:
				overview.InProgressSlots++
			}
		}
	}

	if overview.TotalSlots > 0 {
		overview.CompletionRate = float64(overview.CompletedSlots) / float64(overview.TotalSlots)
	}

	return overview, nil
}

// taskTypes maps every task the user owns to its type. Slots bound to a task
// that has since vanished simply fall out of the map.
func taskTypes(ctx context.Context, taskRepo taskDomain.Repository, userID uuid.UUID) (map[uuid.UUID]taskDomain.Type, error) {
	tasks, err := taskRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	types := make(map[uuid.UUID]taskDomain.Type, len(tasks))
	for _, t := range tasks {
		types[t.ID()] = t.TaskType()
	}
	return types, nil
}

func isStudySlot(slot *scheduleDomain.TimeSlot, typeByTask map[uuid.UUID]taskDomain.Type) bool {
	if slot.TaskID() == nil {
		return false
	}
	taskType, ok := typeByTask[*slot.TaskID()]
	return ok && taskType == taskDomain.TypeStudy
}
