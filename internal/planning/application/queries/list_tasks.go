package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/planning/domain/task"
)

// SubtaskDTO is a data transfer object for subtasks.
type SubtaskDTO struct {
	ID              uuid.UUID
	Name            string
	Hours           float64
	IsHighFrequency bool
	IsOvercome      bool
	Position        int
}

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID              uuid.UUID
	Name            string
	Type            string
	Category        string
	WeeklyHours     float64
	EffectiveHours  float64
	IsHighFrequency bool
	IsOvercome      bool
	Subtasks        []SubtaskDTO
	CreatedAt       time.Time
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID uuid.UUID
	Type   string // "study", "life", "work", "play" or "all"/"" for everything
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery. Tasks come back in insertion order.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var tasks []*task.Task
	var err error

	if query.Type == "" || query.Type == "all" {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	} else {
		var taskType task.Type
		taskType, err = task.ParseType(query.Type)
		if err != nil {
			return nil, err
		}
		tasks, err = h.taskRepo.FindByUserIDAndType(ctx, query.UserID, taskType)
	}
	if err != nil {
		return nil, err
	}

	return toTaskDTOs(tasks), nil
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	return dtos
}

func toTaskDTO(t *task.Task) TaskDTO {
	subtasks := t.Subtasks()
	subDTOs := make([]SubtaskDTO, len(subtasks))
	for i, st := range subtasks {
		subDTOs[i] = SubtaskDTO{
			ID:              st.ID(),
			Name:            st.Name(),
			Hours:           st.Hours(),
			IsHighFrequency: st.IsHighFrequency(),
			IsOvercome:      st.IsOvercome(),
			Position:        st.Position(),
		}
	}

	return TaskDTO{
		ID:              t.ID(),
		Name:            t.Name(),
		Type:            t.TaskType().String(),
		Category:        t.Category(),
		WeeklyHours:     t.WeeklyHours(),
		EffectiveHours:  t.EffectiveHours(),
		IsHighFrequency: t.IsHighFrequency(),
		IsOvercome:      t.IsOvercome(),
		Subtasks:        subDTOs,
		CreatedAt:       t.CreatedAt(),
	}
}
