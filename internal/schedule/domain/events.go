package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

const (
	AggregateType = "DaySchedule"

	RoutingKeyScheduleCreated  = "schedule.created"
	RoutingKeyScheduleArchived = "schedule.archived"
	RoutingKeySlotBound        = "schedule.slot.bound"
	RoutingKeySlotUnbound      = "schedule.slot.unbound"
	RoutingKeySlotStarted      = "schedule.slot.started"
	RoutingKeySlotCompleted    = "schedule.slot.completed"
	RoutingKeySlotReopened     = "schedule.slot.reopened"
)

// DayScheduleCreated is emitted when a day's grid is generated.
type DayScheduleCreated struct {
	sharedDomain.BaseEvent
	UserID    uuid.UUID `json:"user_id"`
	Day       time.Time `json:"day"`
	SlotCount int       `json:"slot_count"`
}

// NewDayScheduleCreated creates a DayScheduleCreated event.
func NewDayScheduleCreated(scheduleID, userID uuid.UUID, day time.Time, slotCount int) DayScheduleCreated {
	return DayScheduleCreated{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyScheduleCreated),
		UserID:    userID,
		Day:       day,
		SlotCount: slotCount,
	}
}

// DayScheduleArchived is emitted when a past day is frozen during rollover.
type DayScheduleArchived struct {
	sharedDomain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
	Day    time.Time `json:"day"`
}

// NewDayScheduleArchived creates a DayScheduleArchived event.
func NewDayScheduleArchived(scheduleID, userID uuid.UUID, day time.Time) DayScheduleArchived {
	return DayScheduleArchived{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyScheduleArchived),
		UserID:    userID,
		Day:       day,
	}
}

// SlotBound is emitted when a task is attached to a slot.
type SlotBound struct {
	sharedDomain.BaseEvent
	SlotID    uuid.UUID  `json:"slot_id"`
	TaskID    uuid.UUID  `json:"task_id"`
	SubtaskID *uuid.UUID `json:"subtask_id,omitempty"`
}

// NewSlotBound creates a SlotBound event.
func NewSlotBound(scheduleID, slotID, taskID uuid.UUID, subtaskID *uuid.UUID) SlotBound {
	return SlotBound{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeySlotBound),
		SlotID:    slotID,
		TaskID:    taskID,
		SubtaskID: subtaskID,
	}
}

// SlotUnbound is emitted when a slot's binding is cleared.
type SlotUnbound struct {
	sharedDomain.BaseEvent
	SlotID uuid.UUID `json:"slot_id"`
}

// NewSlotUnbound creates a SlotUnbound event.
func NewSlotUnbound(scheduleID, slotID uuid.UUID) SlotUnbound {
	return SlotUnbound{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeySlotUnbound),
		SlotID:    slotID,
	}
}

// SlotStarted is emitted when work on a slot begins.
type SlotStarted struct {
	sharedDomain.BaseEvent
	SlotID uuid.UUID `json:"slot_id"`
}

// NewSlotStarted creates a SlotStarted event.
func NewSlotStarted(scheduleID, slotID uuid.UUID) SlotStarted {
	return SlotStarted{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeySlotStarted),
		SlotID:    slotID,
	}
}

// SlotCompleted is emitted when a slot is finished.
type SlotCompleted struct {
	sharedDomain.BaseEvent
	SlotID uuid.UUID  `json:"slot_id"`
	TaskID *uuid.UUID `json:"task_id,omitempty"`
}

// NewSlotCompleted creates a SlotCompleted event.
func NewSlotCompleted(scheduleID, slotID uuid.UUID, taskID *uuid.UUID) SlotCompleted {
	return SlotCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeySlotCompleted),
		SlotID:    slotID,
		TaskID:    taskID,
	}
}

// SlotReopened is emitted when a completion is undone.
type SlotReopened struct {
	sharedDomain.BaseEvent
	SlotID uuid.UUID `json:"slot_id"`
	To     string    `json:"to"`
}

// NewSlotReopened creates a SlotReopened event.
func NewSlotReopened(scheduleID, slotID uuid.UUID, to string) SlotReopened {
	return SlotReopened{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeySlotReopened),
		SlotID:    slotID,
		To:        to,
	}
}
