package task

import (
	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated      = "planning.task.created"
	RoutingKeyUpdated      = "planning.task.updated"
	RoutingKeyRemoved      = "planning.task.removed"
	RoutingKeySubtaskAdded = "planning.subtask.added"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Name     string `json:"name"`
	TaskType string `json:"task_type"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, name, taskType string) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Name:      name,
		TaskType:  taskType,
	}
}

// TaskUpdated is emitted when a task is updated.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"`
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(taskID uuid.UUID, fields []string) TaskUpdated {
	return TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskRemoved is emitted when a task is deleted. Schedule subscribers react
// by clearing slot bindings that point at the task or its subtasks.
type TaskRemoved struct {
	domain.BaseEvent
}

// NewTaskRemoved creates a TaskRemoved event.
func NewTaskRemoved(taskID uuid.UUID) TaskRemoved {
	return TaskRemoved{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyRemoved),
	}
}

// SubtaskAdded is emitted when a subtask is added to a task.
type SubtaskAdded struct {
	domain.BaseEvent
	SubtaskID uuid.UUID `json:"subtask_id"`
	Name      string    `json:"name"`
}

// NewSubtaskAdded creates a SubtaskAdded event.
func NewSubtaskAdded(taskID, subtaskID uuid.UUID, name string) SubtaskAdded {
	return SubtaskAdded{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeySubtaskAdded),
		SubtaskID: subtaskID,
		Name:      name,
	}
}
