package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
)

var (
	ErrScheduleNotFound = fmt.Errorf("day schedule: %w", sharedDomain.ErrNotFound)
	ErrScheduleArchived = fmt.Errorf("archived schedule is read-only: %w", sharedDomain.ErrInvalidTransition)
	ErrNoEmptySlot      = fmt.Errorf("day has no empty slot: %w", sharedDomain.ErrNoAvailableSlot)
)

// DaySchedule is the grid of time slots for one user and one calendar day.
// Past days are archived rather than deleted so statistics can read history.
type DaySchedule struct {
	sharedDomain.BaseAggregateRoot
	userID   uuid.UUID
	day      time.Time
	archived bool
	slots    []*TimeSlot
}

// NewDaySchedule generates a fresh grid for the given day from the template.
func NewDaySchedule(userID uuid.UUID, day time.Time, template SlotTemplate) (*DaySchedule, error) {
	ranges, err := template.Ranges(day)
	if err != nil {
		return nil, err
	}

	s := &DaySchedule{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               NormalizeDay(day),
	}

	s.slots = make([]*TimeSlot, len(ranges))
	for i, r := range ranges {
		s.slots[i] = NewTimeSlot(s.ID(), r, i)
	}

	s.AddDomainEvent(NewDayScheduleCreated(s.ID(), userID, s.day, len(s.slots)))

	return s, nil
}

// NormalizeDay truncates a timestamp to midnight of its day.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Getters

func (s *DaySchedule) UserID() uuid.UUID { return s.userID }
func (s *DaySchedule) Day() time.Time    { return s.day }
func (s *DaySchedule) IsArchived() bool  { return s.archived }

// Slots returns the slots ordered by start time.
func (s *DaySchedule) Slots() []*TimeSlot {
	return append([]*TimeSlot(nil), s.slots...)
}

// SlotByID finds a slot in the grid.
func (s *DaySchedule) SlotByID(slotID uuid.UUID) (*TimeSlot, error) {
	for _, slot := range s.slots {
		if slot.ID() == slotID {
			return slot, nil
		}
	}
	return nil, ErrSlotNotFound
}

// FirstEmptySlot returns the chronologically first unbound slot.
func (s *DaySchedule) FirstEmptySlot() (*TimeSlot, error) {
	for _, slot := range s.slots {
		if slot.Status() == StatusEmpty {
			return slot, nil
		}
	}
	return nil, ErrNoEmptySlot
}

func (s *DaySchedule) mutable() error {
	if s.archived {
		return ErrScheduleArchived
	}
	return nil
}

// BindSlot attaches a task to a slot.
func (s *DaySchedule) BindSlot(slotID, taskID uuid.UUID, subtaskID *uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	slot.Bind(taskID, subtaskID)
	s.Touch()
	s.AddDomainEvent(NewSlotBound(s.ID(), slotID, taskID, subtaskID))
	return nil
}

// UnbindSlot clears a slot's binding. No-op for unbound slots.
func (s *DaySchedule) UnbindSlot(slotID uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}
	if !slot.IsBound() {
		return nil
	}

	slot.Unbind()
	s.Touch()
	s.AddDomainEvent(NewSlotUnbound(s.ID(), slotID))
	return nil
}

// StartSlot moves a slot to in_progress.
func (s *DaySchedule) StartSlot(slotID uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	if err := slot.Start(); err != nil {
		return err
	}
	s.Touch()
	s.AddDomainEvent(NewSlotStarted(s.ID(), slotID))
	return nil
}

// CompleteSlot moves a slot to completed. Re-completing is a no-op and emits
// no event.
func (s *DaySchedule) CompleteSlot(slotID uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}
	if slot.Status() == StatusCompleted {
		return nil
	}

	if err := slot.Complete(); err != nil {
		return err
	}
	s.Touch()
	s.AddDomainEvent(NewSlotCompleted(s.ID(), slotID, slot.TaskID()))
	return nil
}

// ReopenSlot undoes a completion back to pending or in_progress.
func (s *DaySchedule) ReopenSlot(slotID uuid.UUID, to Status) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	if err := slot.Reopen(to); err != nil {
		return err
	}
	s.Touch()
	s.AddDomainEvent(NewSlotReopened(s.ID(), slotID, to.String()))
	return nil
}

// SetSlotMood tags a slot with a mood.
func (s *DaySchedule) SetSlotMood(slotID uuid.UUID, mood Mood) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	slot.SetMood(mood)
	s.Touch()
	return nil
}

// ClearSlotMood removes a slot's mood tag.
func (s *DaySchedule) ClearSlotMood(slotID uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	slot.ClearMood()
	s.Touch()
	return nil
}

// SetSlotNote writes a slot's note; empty text clears it.
func (s *DaySchedule) SetSlotNote(slotID uuid.UUID, text string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	slot.SetNote(text)
	s.Touch()
	return nil
}

// AttachAITip annotates a slot with a suggestion.
func (s *DaySchedule) AttachAITip(slotID uuid.UUID, tip string, recommendedTaskID *uuid.UUID) error {
	if err := s.mutable(); err != nil {
		return err
	}
	slot, err := s.SlotByID(slotID)
	if err != nil {
		return err
	}

	slot.AttachAITip(tip, recommendedTaskID)
	s.Touch()
	return nil
}

// ClearBindingsFor unbinds every slot bound to the given task. Used when the
// task is removed; slots themselves survive. Returns the ids of the slots
// that were unbound.
func (s *DaySchedule) ClearBindingsFor(taskID uuid.UUID) []uuid.UUID {
	var cleared []uuid.UUID
	for _, slot := range s.slots {
		if slot.TaskID() != nil && *slot.TaskID() == taskID {
			slot.Unbind()
			cleared = append(cleared, slot.ID())
			s.AddDomainEvent(NewSlotUnbound(s.ID(), slot.ID()))
		}
	}
	if len(cleared) > 0 {
		s.Touch()
	}
	return cleared
}

// Archive freezes the schedule. Archiving twice is a no-op.
func (s *DaySchedule) Archive() {
	if s.archived {
		return
	}
	s.archived = true
	s.Touch()
	s.AddDomainEvent(NewDayScheduleArchived(s.ID(), s.userID, s.day))
}

// sortSlots keeps the grid in chronological order.
func (s *DaySchedule) sortSlots() {
	sort.Slice(s.slots, func(i, j int) bool {
		return s.slots[i].Range().Start().Before(s.slots[j].Range().Start())
	})
}

// RehydrateDaySchedule recreates a schedule from persisted state.
func RehydrateDaySchedule(
	id uuid.UUID,
	userID uuid.UUID,
	day time.Time,
	archived bool,
	slots []*TimeSlot,
	createdAt, updatedAt time.Time,
) *DaySchedule {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)

	s := &DaySchedule{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity),
		userID:            userID,
		day:               NormalizeDay(day),
		archived:          archived,
		slots:             slots,
	}
	s.sortSlots()
	return s
}
