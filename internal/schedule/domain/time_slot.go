package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

var (
	ErrSlotNotFound  = fmt.Errorf("time slot: %w", sharedDomain.ErrNotFound)
	ErrUnknownStatus = fmt.Errorf("unknown slot status: %w", sharedDomain.ErrValidation)

	ErrStartUnbound   = fmt.Errorf("empty slot cannot be started: %w", sharedDomain.ErrInvalidTransition)
	ErrStartCompleted = fmt.Errorf("completed slot cannot be started: %w", sharedDomain.ErrInvalidTransition)
	ErrCompleteEmpty  = fmt.Errorf("empty slot cannot be completed: %w", sharedDomain.ErrInvalidTransition)
	ErrReopenTarget   = fmt.Errorf("reopen target must be pending or in_progress: %w", sharedDomain.ErrInvalidTransition)
	ErrReopenNotDone  = fmt.Errorf("only a completed slot can be reopened: %w", sharedDomain.ErrInvalidTransition)
)

// Status is the completion lifecycle state of a slot.
type Status int

const (
	StatusEmpty Status = iota
	StatusPending
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return StatusEmpty, nil
	case "pending":
		return StatusPending, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return StatusEmpty, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// TimeSlot is one fixed period of a day's schedule. A slot is either unbound
// (status empty) or bound to a task, optionally narrowed to one of the task's
// subtasks. The binding is weak: when the task is removed the binding is
// cleared and the slot survives.
type TimeSlot struct {
	sharedDomain.BaseEntity
	scheduleID        uuid.UUID
	timeRange         TimeRange
	taskID            *uuid.UUID
	subtaskID         *uuid.UUID
	status            Status
	mood              *Mood
	note              string
	isAIRecommended   bool
	aiTip             *string
	recommendedTaskID *uuid.UUID
	position          int
}

// NewTimeSlot creates an empty slot.
func NewTimeSlot(scheduleID uuid.UUID, timeRange TimeRange, position int) *TimeSlot {
	return &TimeSlot{
		BaseEntity: sharedDomain.NewBaseEntity(),
		scheduleID: scheduleID,
		timeRange:  timeRange,
		status:     StatusEmpty,
		position:   position,
	}
}

// Getters

func (s *TimeSlot) ScheduleID() uuid.UUID         { return s.scheduleID }
func (s *TimeSlot) Range() TimeRange              { return s.timeRange }
func (s *TimeSlot) TaskID() *uuid.UUID            { return s.taskID }
func (s *TimeSlot) SubtaskID() *uuid.UUID         { return s.subtaskID }
func (s *TimeSlot) Status() Status                { return s.status }
func (s *TimeSlot) Mood() *Mood                   { return s.mood }
func (s *TimeSlot) Note() string                  { return s.note }
func (s *TimeSlot) IsAIRecommended() bool         { return s.isAIRecommended }
func (s *TimeSlot) AITip() *string                { return s.aiTip }
func (s *TimeSlot) RecommendedTaskID() *uuid.UUID { return s.recommendedTaskID }
func (s *TimeSlot) Position() int                 { return s.position }

// IsBound reports whether the slot has a task binding.
func (s *TimeSlot) IsBound() bool { return s.taskID != nil }

// Bind attaches a task (optionally a specific subtask) to the slot. An empty
// slot becomes pending; a bound slot keeps its status and just swaps the
// binding. Bind never fails.
func (s *TimeSlot) Bind(taskID uuid.UUID, subtaskID *uuid.UUID) {
	s.taskID = &taskID
	s.subtaskID = subtaskID
	if s.status == StatusEmpty {
		s.status = StatusPending
	}
	s.Touch()
}

// Unbind clears the binding and forces the slot back to empty. Mood and note
// survive. Unbinding an unbound slot is a no-op.
func (s *TimeSlot) Unbind() {
	if !s.IsBound() {
		return
	}
	s.taskID = nil
	s.subtaskID = nil
	s.status = StatusEmpty
	s.Touch()
}

// Start moves a pending slot to in_progress.
func (s *TimeSlot) Start() error {
	switch s.status {
	case StatusEmpty:
		return ErrStartUnbound
	case StatusCompleted:
		return ErrStartCompleted
	case StatusInProgress:
		return nil // Idempotent
	}
	s.status = StatusInProgress
	s.Touch()
	return nil
}

// Complete moves a pending or in_progress slot to completed. Completing a
// completed slot is a no-op.
func (s *TimeSlot) Complete() error {
	switch s.status {
	case StatusEmpty:
		return ErrCompleteEmpty
	case StatusCompleted:
		return nil // Idempotent
	}
	s.status = StatusCompleted
	s.Touch()
	return nil
}

// Reopen is the explicit undo of a completion: completed back to pending or
// in_progress.
func (s *TimeSlot) Reopen(to Status) error {
	if to != StatusPending && to != StatusInProgress {
		return ErrReopenTarget
	}
	if s.status != StatusCompleted {
		return ErrReopenNotDone
	}
	s.status = to
	s.Touch()
	return nil
}

// SetMood overwrites the slot's mood. Always succeeds.
func (s *TimeSlot) SetMood(mood Mood) {
	s.mood = &mood
	s.Touch()
}

// ClearMood removes the mood tag.
func (s *TimeSlot) ClearMood() {
	s.mood = nil
	s.Touch()
}

// SetNote overwrites the note; empty text clears it. Always succeeds.
func (s *TimeSlot) SetNote(text string) {
	s.note = strings.TrimSpace(text)
	s.Touch()
}

// AttachAITip annotates the slot with a suggestion and optionally the task
// the suggestion refers to.
func (s *TimeSlot) AttachAITip(tip string, recommendedTaskID *uuid.UUID) {
	s.aiTip = &tip
	s.isAIRecommended = true
	s.recommendedTaskID = recommendedTaskID
	s.Touch()
}

// RehydrateTimeSlot recreates a slot from persisted state.
func RehydrateTimeSlot(
	id uuid.UUID,
	scheduleID uuid.UUID,
	timeRange TimeRange,
	taskID, subtaskID *uuid.UUID,
	status Status,
	mood *Mood,
	note string,
	isAIRecommended bool,
	aiTip *string,
	recommendedTaskID *uuid.UUID,
	position int,
	createdAt, updatedAt time.Time,
) *TimeSlot {
	return &TimeSlot{
		BaseEntity:        sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		scheduleID:        scheduleID,
		timeRange:         timeRange,
		taskID:            taskID,
		subtaskID:         subtaskID,
		status:            status,
		mood:              mood,
		note:              note,
		isAIRecommended:   isAIRecommended,
		aiTip:             aiTip,
		recommendedTaskID: recommendedTaskID,
		position:          position,
	}
}
