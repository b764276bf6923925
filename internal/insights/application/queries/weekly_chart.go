package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

// DailyHoursDTO is one day's column in the weekly chart.
type DailyHoursDTO struct {
	Day            time.Time `json:"day"`
	CompletedHours float64   `json:"completed_hours"`
}

// WeeklyChartDTO feeds a weekly bar chart: one column per day plus the
// week's category split of completed hours.
type WeeklyChartDTO struct {
	WeekStart  time.Time          `json:"week_start"`
	WeekEnd    time.Time          `json:"week_end"`
	Days       []DailyHoursDTO    `json:"days"`
	Categories []CategoryShareDTO `json:"categories"`
}

// WeeklyChartQuery asks for chart data of the week containing Day.
type WeeklyChartQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// WeeklyChartHandler handles the WeeklyChartQuery.
type WeeklyChartHandler struct {
	taskRepo     taskDomain.Repository
	scheduleRepo scheduleDomain.Repository
}

// NewWeeklyChartHandler creates a new WeeklyChartHandler.
func NewWeeklyChartHandler(taskRepo taskDomain.Repository, scheduleRepo scheduleDomain.Repository) *WeeklyChartHandler {
	return &WeeklyChartHandler{taskRepo: taskRepo, scheduleRepo: scheduleRepo}
}

// Handle executes the WeeklyChartQuery. Days without a schedule show up as
// zero columns so the chart always has seven entries.
func (h *WeeklyChartHandler) Handle(ctx context.Context, query WeeklyChartQuery) (*WeeklyChartDTO, error) {
	from, to := weekBounds(query.Day)

	schedules, err := h.scheduleRepo.FindByUserBetween(ctx, query.UserID, from, to)
	if err != nil {
		return nil, err
	}

	typeByTask, err := taskTypes(ctx, h.taskRepo, query.UserID)
	if err != nil {
		return nil, err
	}

	chart := &WeeklyChartDTO{WeekStart: from, WeekEnd: to}
	hoursByDay := make(map[string]float64, 7)
	hoursByType := make(map[taskDomain.Type]float64, len(taskDomain.AllTypes()))
	var total float64

	for _, s := range schedules {
		for _, slot := range s.Slots() {
			if slot.Status() != scheduleDomain.StatusCompleted {
				continue
			}
			hours := slot.Range().Hours()
			hoursByDay[dayKey(s.Day())] += hours
			total += hours
			if slot.TaskID() != nil {
				if taskType, ok := typeByTask[*slot.TaskID()]; ok {
					hoursByType[taskType] += hours
				}
			}
		}
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		chart.Days = append(chart.Days, DailyHoursDTO{
			Day:            day,
			CompletedHours: hoursByDay[dayKey(day)],
		})
	}

	for _, taskType := range taskDomain.AllTypes() {
		share := CategoryShareDTO{
			Type:           taskType.String(),
			EffectiveHours: hoursByType[taskType],
		}
		if total > 0 {
			share.Percentage = hoursByType[taskType] / total * 100
		}
		chart.Categories = append(chart.Categories, share)
	}

	return chart, nil
}
