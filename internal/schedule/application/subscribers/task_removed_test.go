package subscribers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/eventbus"
)

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Save(ctx context.Context, s *scheduleDomain.DaySchedule) error {
	args := m.Called(ctx, s)
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

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestTaskRemovedSubscriber_Handle(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	newEvent := func() *eventbus.ConsumedEvent {
		return &eventbus.ConsumedEvent{
			EventID:       uuid.New(),
			AggregateID:   taskID,
			AggregateType: "Task",
			RoutingKey:    "planning.task.removed",
			OccurredAt:    time.Now(),
			Metadata:      eventbus.EventMetadata{UserID: userID},
		}
	}

	t.Run("clears bindings across schedules", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		uow := new(mockUnitOfWork)
		sub := NewTaskRemovedSubscriber(scheduleRepo, uow, sharedApplication.NewUserLocks(), nil)

		s, err := scheduleDomain.NewDaySchedule(userID, day, scheduleDomain.DefaultTemplate())
		require.NoError(t, err)
		require.NoError(t, s.BindSlot(s.Slots()[0].ID(), taskID, nil))
		require.NoError(t, s.BindSlot(s.Slots()[1].ID(), uuid.New(), nil))

		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		scheduleRepo.On("FindActiveByTaskID", ctx, taskID).Return([]*scheduleDomain.DaySchedule{s}, nil)
		scheduleRepo.On("Save", ctx, s).Return(nil)

		require.NoError(t, sub.Handle(ctx, newEvent()))

		assert.Equal(t, scheduleDomain.StatusEmpty, s.Slots()[0].Status())
		assert.Equal(t, scheduleDomain.StatusPending, s.Slots()[1].Status())
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("no affected schedules", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		uow := new(mockUnitOfWork)
		sub := NewTaskRemovedSubscriber(scheduleRepo, uow, sharedApplication.NewUserLocks(), nil)

		ctx := context.Background()
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Commit", ctx).Return(nil)
		scheduleRepo.On("FindActiveByTaskID", ctx, taskID).Return([]*scheduleDomain.DaySchedule{}, nil)

		require.NoError(t, sub.Handle(ctx, newEvent()))
		scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("EventTypes names the task removed key", func(t *testing.T) {
		sub := NewTaskRemovedSubscriber(nil, nil, sharedApplication.NewUserLocks(), nil)
		assert.Equal(t, []string{"planning.task.removed"}, sub.EventTypes())
	})
}
