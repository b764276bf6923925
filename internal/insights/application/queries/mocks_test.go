package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *taskDomain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserIDAndType(ctx context.Context, userID uuid.UUID, taskType taskDomain.Type) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, userID, taskType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Save(ctx context.Context, schedule *scheduleDomain.DaySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduleDomain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduleDomain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduleDomain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduleDomain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduleDomain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) FindActiveByTaskID(ctx context.Context, taskID uuid.UUID) ([]*scheduleDomain.DaySchedule, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduleDomain.DaySchedule), args.Error(1)
}

type mockDecisionRepo struct {
	mock.Mock
}

func (m *mockDecisionRepo) Save(ctx context.Context, decision *recommendationDomain.Decision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *mockDecisionRepo) FindBySlotID(ctx context.Context, slotID uuid.UUID) (*recommendationDomain.Decision, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommendationDomain.Decision), args.Error(1)
}

func (m *mockDecisionRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*recommendationDomain.Decision, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recommendationDomain.Decision), args.Error(1)
}

func (m *mockDecisionRepo) Delete(ctx context.Context, slotID uuid.UUID) error {
	args := m.Called(ctx, slotID)
	return args.Error(0)
}

// newScheduleOn builds a fresh 16-slot grid for the given day.
func newScheduleOn(userID uuid.UUID, day time.Time) *scheduleDomain.DaySchedule {
	s, err := scheduleDomain.NewDaySchedule(userID, day, scheduleDomain.DefaultTemplate())
	if err != nil {
		panic(err)
	}
	s.ClearDomainEvents()
	return s
}

// completeSlot binds the task into slot i and drives it to completed.
func completeSlot(s *scheduleDomain.DaySchedule, i int, taskID uuid.UUID) {
	slots := s.Slots()
	if err := s.BindSlot(slots[i].ID(), taskID, nil); err != nil {
		panic(err)
	}
	if err := s.CompleteSlot(slots[i].ID()); err != nil {
		panic(err)
	}
	s.ClearDomainEvents()
}

// startSlot binds the task into slot i and starts it.
func startSlot(s *scheduleDomain.DaySchedule, i int, taskID uuid.UUID) {
	slots := s.Slots()
	if err := s.BindSlot(slots[i].ID(), taskID, nil); err != nil {
		panic(err)
	}
	if err := s.StartSlot(slots[i].ID()); err != nil {
		panic(err)
	}
	s.ClearDomainEvents()
}
