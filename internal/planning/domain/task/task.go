package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/shared/domain"
)

var (
	ErrEmptyName     = fmt.Errorf("task name cannot be empty: %w", domain.ErrValidation)
	ErrNegativeHours = fmt.Errorf("hours cannot be negative: %w", domain.ErrValidation)
	ErrUnknownType   = fmt.Errorf("unknown task type: %w", domain.ErrValidation)
	ErrTaskNotFound  = fmt.Errorf("task: %w", domain.ErrNotFound)

	ErrSubtaskNotFound = fmt.Errorf("subtask: %w", domain.ErrNotFound)
)

// Type partitions tasks into the four planning categories.
type Type int

const (
	TypeStudy Type = iota
	TypeLife
	TypeWork
	TypePlay
)

func (t Type) String() string {
	switch t {
	case TypeStudy:
		return "study"
	case TypeLife:
		return "life"
	case TypeWork:
		return "work"
	case TypePlay:
		return "play"
	default:
		return "unknown"
	}
}

// AllTypes lists every task type in presentation order.
func AllTypes() []Type {
	return []Type{TypeStudy, TypeLife, TypeWork, TypePlay}
}

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "study":
		return TypeStudy, nil
	case "life":
		return TypeLife, nil
	case "work":
		return TypeWork, nil
	case "play":
		return TypePlay, nil
	default:
		return TypeStudy, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// Task is a recurring commitment a user plans hours against.
type Task struct {
	domain.BaseAggregateRoot
	userID          uuid.UUID
	name            string
	taskType        Type
	category        string
	weeklyHours     float64
	isHighFrequency bool
	isOvercome      bool
	subtasks        []*Subtask
}

// NewTask creates a new task.
func NewTask(userID uuid.UUID, name string, taskType Type, category string, weeklyHours float64) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if weeklyHours < 0 {
		return nil, ErrNegativeHours
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		taskType:          taskType,
		category:          strings.TrimSpace(category),
		weeklyHours:       weeklyHours,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.name, t.taskType.String()))

	return t, nil
}

// QuickAdd creates a bare study task from free text.
func QuickAdd(userID uuid.UUID, text string) (*Task, error) {
	return NewTask(userID, text, TypeStudy, "", 0)
}

// Getters

func (t *Task) UserID() uuid.UUID    { return t.userID }
func (t *Task) Name() string         { return t.name }
func (t *Task) TaskType() Type       { return t.taskType }
func (t *Task) Category() string     { return t.category }
func (t *Task) WeeklyHours() float64 { return t.weeklyHours }
func (t *Task) IsHighFrequency() bool { return t.isHighFrequency }
func (t *Task) IsOvercome() bool      { return t.isOvercome }

// Subtasks returns the subtasks in insertion order.
func (t *Task) Subtasks() []*Subtask {
	return append([]*Subtask(nil), t.subtasks...)
}

// EffectiveHours is the weekly hour commitment: the sum of subtask hours
// when subtasks exist, the stored weekly hours otherwise.
func (t *Task) EffectiveHours() float64 {
	if len(t.subtasks) == 0 {
		return t.weeklyHours
	}
	var sum float64
	for _, st := range t.subtasks {
		sum += st.Hours()
	}
	return sum
}

// AddSubtask appends a subtask to the task.
func (t *Task) AddSubtask(name string, hours float64) (*Subtask, error) {
	st, err := NewSubtask(t.ID(), name, hours, len(t.subtasks))
	if err != nil {
		return nil, err
	}
	t.subtasks = append(t.subtasks, st)
	t.Touch()
	t.AddDomainEvent(NewSubtaskAdded(t.ID(), st.ID(), st.Name()))
	return st, nil
}

// SubtaskByID returns the subtask with the given id, if present.
func (t *Task) SubtaskByID(id uuid.UUID) (*Subtask, bool) {
	for _, st := range t.subtasks {
		if st.ID() == id {
			return st, true
		}
	}
	return nil, false
}

// SetName updates the task name.
func (t *Task) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	t.name = name
	t.Touch()
	return nil
}

// SetCategory updates the category label.
func (t *Task) SetCategory(category string) {
	t.category = strings.TrimSpace(category)
	t.Touch()
}

// SetType updates the task type.
func (t *Task) SetType(taskType Type) {
	t.taskType = taskType
	t.Touch()
}

// SetWeeklyHours updates the stored weekly hour commitment.
func (t *Task) SetWeeklyHours(hours float64) error {
	if hours < 0 {
		return ErrNegativeHours
	}
	t.weeklyHours = hours
	t.Touch()
	return nil
}

// SetHighFrequency flags the task as high frequency.
func (t *Task) SetHighFrequency(v bool) {
	t.isHighFrequency = v
	t.Touch()
}

// SetOvercome flags the task as one the user wants to overcome.
func (t *Task) SetOvercome(v bool) {
	t.isOvercome = v
	t.Touch()
}

// MarkUpdated emits a single updated event naming the changed fields.
func (t *Task) MarkUpdated(fields []string) {
	if len(fields) == 0 {
		return
	}
	t.AddDomainEvent(NewTaskUpdated(t.ID(), fields))
}

// Remove emits the removal event. The repository performs the actual delete;
// subtasks cascade with the task.
func (t *Task) Remove() {
	t.AddDomainEvent(NewTaskRemoved(t.ID()))
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	taskType Type,
	category string,
	weeklyHours float64,
	isHighFrequency, isOvercome bool,
	subtasks []*Subtask,
	createdAt, updatedAt time.Time,
) *Task {
	baseEntity := domain.RehydrateBaseEntity(id, createdAt, updatedAt)

	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(baseEntity),
		userID:            userID,
		name:              name,
		taskType:          taskType,
		category:          category,
		weeklyHours:       weeklyHours,
		isHighFrequency:   isHighFrequency,
		isOvercome:        isOvercome,
		subtasks:          subtasks,
	}
}
