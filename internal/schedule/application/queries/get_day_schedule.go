package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
)

// SlotDTO is the read model for one time slot.
type SlotDTO struct {
	ID                uuid.UUID  `json:"id"`
	Start             time.Time  `json:"start"`
	End               time.Time  `json:"end"`
	Label             string     `json:"label"`
	Status            string     `json:"status"`
	TaskID            *uuid.UUID `json:"task_id,omitempty"`
	SubtaskID         *uuid.UUID `json:"subtask_id,omitempty"`
	Mood              *string    `json:"mood,omitempty"`
	Note              string     `json:"note,omitempty"`
	IsAIRecommended   bool       `json:"is_ai_recommended"`
	AITip             *string    `json:"ai_tip,omitempty"`
	RecommendedTaskID *uuid.UUID `json:"recommended_task_id,omitempty"`
	Position          int        `json:"position"`
}

// DayScheduleDTO is the read model for a day's grid.
type DayScheduleDTO struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Day      time.Time `json:"day"`
	Archived bool      `json:"archived"`
	Slots    []SlotDTO `json:"slots"`
}

// GetDayScheduleQuery asks for one day's grid.
type GetDayScheduleQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// DayScheduleCache caches read models of days that can no longer change.
// Both methods are best-effort; a broken cache must not fail the query.
type DayScheduleCache interface {
	Get(ctx context.Context, userID uuid.UUID, day time.Time) (*DayScheduleDTO, bool)
	Put(ctx context.Context, dto *DayScheduleDTO)
}

// GetDayScheduleHandler handles the GetDayScheduleQuery.
type GetDayScheduleHandler struct {
	scheduleRepo scheduleDomain.Repository
	cache        DayScheduleCache
}

// NewGetDayScheduleHandler creates a new GetDayScheduleHandler.
func NewGetDayScheduleHandler(scheduleRepo scheduleDomain.Repository) *GetDayScheduleHandler {
	return &GetDayScheduleHandler{scheduleRepo: scheduleRepo}
}

// WithCache adds a cache for archived days. Open days are never cached:
// they mutate, archived grids do not.
func (h *GetDayScheduleHandler) WithCache(cache DayScheduleCache) *GetDayScheduleHandler {
	h.cache = cache
	return h
}

// Handle executes the GetDayScheduleQuery. Returns ErrScheduleNotFound when
// no grid has been generated for the day.
func (h *GetDayScheduleHandler) Handle(ctx context.Context, query GetDayScheduleQuery) (*DayScheduleDTO, error) {
	day := scheduleDomain.NormalizeDay(query.Day)

	if h.cache != nil {
		if dto, ok := h.cache.Get(ctx, query.UserID, day); ok {
			return dto, nil
		}
	}

	s, err := h.scheduleRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}

	dto := toDayScheduleDTO(s)
	if h.cache != nil && dto.Archived {
		h.cache.Put(ctx, dto)
	}
	return dto, nil
}

func toDayScheduleDTO(s *scheduleDomain.DaySchedule) *DayScheduleDTO {
	dto := &DayScheduleDTO{
		ID:       s.ID(),
		UserID:   s.UserID(),
		Day:      s.Day(),
		Archived: s.IsArchived(),
		Slots:    make([]SlotDTO, 0, len(s.Slots())),
	}
	for _, slot := range s.Slots() {
		dto.Slots = append(dto.Slots, toSlotDTO(slot))
	}
	return dto
}

func toSlotDTO(slot *scheduleDomain.TimeSlot) SlotDTO {
	dto := SlotDTO{
		ID:                slot.ID(),
		Start:             slot.Range().Start(),
		End:               slot.Range().End(),
		Label:             slot.Range().String(),
		Status:            slot.Status().String(),
		TaskID:            slot.TaskID(),
		SubtaskID:         slot.SubtaskID(),
		Note:              slot.Note(),
		IsAIRecommended:   slot.IsAIRecommended(),
		AITip:             slot.AITip(),
		RecommendedTaskID: slot.RecommendedTaskID(),
		Position:          slot.Position(),
	}
	if mood := slot.Mood(); mood != nil {
		name := mood.String()
		dto.Mood = &name
	}
	return dto
}
