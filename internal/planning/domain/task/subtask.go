package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/shared/domain"
)

// Subtask is a named share of its parent task's weekly hours. Subtasks live
// and die with the task that owns them.
type Subtask struct {
	domain.BaseEntity
	taskID          uuid.UUID
	name            string
	hours           float64
	isHighFrequency bool
	isOvercome      bool
	position        int
}

// NewSubtask creates a subtask owned by the given task.
func NewSubtask(taskID uuid.UUID, name string, hours float64, position int) (*Subtask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if hours < 0 {
		return nil, ErrNegativeHours
	}

	return &Subtask{
		BaseEntity: domain.NewBaseEntity(),
		taskID:     taskID,
		name:       name,
		hours:      hours,
		position:   position,
	}, nil
}

func (s *Subtask) TaskID() uuid.UUID     { return s.taskID }
func (s *Subtask) Name() string          { return s.name }
func (s *Subtask) Hours() float64        { return s.hours }
func (s *Subtask) IsHighFrequency() bool { return s.isHighFrequency }
func (s *Subtask) IsOvercome() bool      { return s.isOvercome }
func (s *Subtask) Position() int         { return s.position }

// SetHighFrequency flags the subtask as high frequency.
func (s *Subtask) SetHighFrequency(v bool) {
	s.isHighFrequency = v
	s.Touch()
}

// SetOvercome flags the subtask as one the user wants to overcome.
func (s *Subtask) SetOvercome(v bool) {
	s.isOvercome = v
	s.Touch()
}

// RehydrateSubtask recreates a subtask from persisted state.
func RehydrateSubtask(id, taskID uuid.UUID, name string, hours float64, isHighFrequency, isOvercome bool, position int, createdAt, updatedAt time.Time) *Subtask {
	return &Subtask{
		BaseEntity:      domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		taskID:          taskID,
		name:            name,
		hours:           hours,
		isHighFrequency: isHighFrequency,
		isOvercome:      isOvercome,
		position:        position,
	}
}
