package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *taskDomain.Task) error {
	args := m.Called(ctx, t)
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

type mockDecisionRepo struct {
	mock.Mock
}

func (m *mockDecisionRepo) Save(ctx context.Context, d *recommendationDomain.Decision) error {
	args := m.Called(ctx, d)
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

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
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

type plannerFixture struct {
	taskRepo     *mockTaskRepo
	scheduleRepo *mockScheduleRepo
	decisionRepo *mockDecisionRepo
	outboxRepo   *mockOutboxRepo
	uow          *mockUnitOfWork
	planner      *Planner
	ctx          context.Context
	txCtx        context.Context
}

type testCtxKey struct{}

func newPlannerFixture() *plannerFixture {
	f := &plannerFixture{
		taskRepo:     new(mockTaskRepo),
		scheduleRepo: new(mockScheduleRepo),
		decisionRepo: new(mockDecisionRepo),
		outboxRepo:   new(mockOutboxRepo),
		uow:          new(mockUnitOfWork),
		ctx:          context.Background(),
	}
	f.txCtx = context.WithValue(f.ctx, testCtxKey{}, "transaction")
	f.planner = NewPlanner(
		f.taskRepo,
		f.scheduleRepo,
		f.decisionRepo,
		f.outboxRepo,
		f.uow,
		sharedApplication.NewUserLocks(),
		scheduleDomain.DefaultTemplate(),
	)
	return f
}

func (f *plannerFixture) expectCommit() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Commit", f.txCtx).Return(nil)
}

func (f *plannerFixture) expectRollback() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Rollback", f.txCtx).Return(nil)
}

func newPlannerSchedule(t *testing.T, userID uuid.UUID) *scheduleDomain.DaySchedule {
	t.Helper()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s, err := scheduleDomain.NewDaySchedule(userID, day, scheduleDomain.DefaultTemplate())
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func TestPlanner_QuickAddAndBind(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("creates task and binds first empty slot", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)

		f.expectCommit()
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).Return(nil)
		f.scheduleRepo.On("FindByUserAndDay", f.txCtx, userID, day).Return(s, nil)
		f.scheduleRepo.On("Save", f.txCtx, s).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.planner.QuickAddAndBind(f.ctx, userID, "read chapter 4", day)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, s.Slots()[0].ID(), result.SlotID)

		bound := s.Slots()[0]
		assert.Equal(t, scheduleDomain.StatusPending, bound.Status())
		require.NotNil(t, bound.TaskID())
		assert.Equal(t, result.TaskID, *bound.TaskID())

		f.uow.AssertExpectations(t)
		f.taskRepo.AssertExpectations(t)
		f.scheduleRepo.AssertExpectations(t)
	})

	t.Run("generates the day's grid when missing", func(t *testing.T) {
		f := newPlannerFixture()

		f.expectCommit()
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).Return(nil)
		f.scheduleRepo.On("FindByUserAndDay", f.txCtx, userID, day).Return(nil, scheduleDomain.ErrScheduleNotFound)

		var saved *scheduleDomain.DaySchedule
		f.scheduleRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.DaySchedule")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*scheduleDomain.DaySchedule)
		}).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.planner.QuickAddAndBind(f.ctx, userID, "read chapter 4", day)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, saved.Slots()[0].ID(), result.SlotID)
	})

	t.Run("no empty slot rolls everything back", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)
		for _, slot := range s.Slots() {
			require.NoError(t, s.BindSlot(slot.ID(), uuid.New(), nil))
		}
		s.ClearDomainEvents()

		f.expectRollback()
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).Return(nil)
		f.scheduleRepo.On("FindByUserAndDay", f.txCtx, userID, day).Return(s, nil)

		result, err := f.planner.QuickAddAndBind(f.ctx, userID, "read chapter 4", day)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, sharedDomain.ErrNoAvailableSlot)
		f.scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.uow.AssertExpectations(t)
	})

	t.Run("empty text fails validation", func(t *testing.T) {
		f := newPlannerFixture()
		f.expectRollback()

		result, err := f.planner.QuickAddAndBind(f.ctx, userID, "   ", day)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, sharedDomain.ErrValidation)
		f.taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlanner_AcceptRecommendation(t *testing.T) {
	userID := uuid.New()

	t.Run("records acceptance and binds the recommended task", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)
		slot := s.Slots()[0]

		recommended, err := taskDomain.NewTask(userID, "Calculus revision", taskDomain.TypeStudy, "math", 4)
		require.NoError(t, err)
		recommendedID := recommended.ID()
		require.NoError(t, s.AttachAITip(slot.ID(), "revise calculus now", &recommendedID))
		s.ClearDomainEvents()

		f.expectCommit()
		f.scheduleRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(s, nil)
		f.decisionRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(nil, recommendationDomain.ErrDecisionNotFound)
		f.decisionRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.Decision")).Return(nil)
		f.taskRepo.On("FindByID", f.txCtx, recommendedID).Return(recommended, nil)
		f.scheduleRepo.On("Save", f.txCtx, s).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		require.NoError(t, f.planner.AcceptRecommendation(f.ctx, userID, slot.ID()))

		assert.Equal(t, scheduleDomain.StatusPending, slot.Status())
		require.NotNil(t, slot.TaskID())
		assert.Equal(t, recommendedID, *slot.TaskID())

		f.decisionRepo.AssertExpectations(t)
		f.scheduleRepo.AssertExpectations(t)
	})

	t.Run("acceptance without a recommended task only writes the ledger", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)
		slot := s.Slots()[0]
		require.NoError(t, s.AttachAITip(slot.ID(), "take a short break", nil))
		s.ClearDomainEvents()

		f.expectCommit()
		f.scheduleRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(s, nil)
		f.decisionRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(nil, recommendationDomain.ErrDecisionNotFound)
		f.decisionRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.Decision")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		require.NoError(t, f.planner.AcceptRecommendation(f.ctx, userID, slot.ID()))

		assert.Equal(t, scheduleDomain.StatusEmpty, slot.Status())
		f.scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("deleted recommended task rolls the decision back", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)
		slot := s.Slots()[0]
		deletedID := uuid.New()
		require.NoError(t, s.AttachAITip(slot.ID(), "revise calculus now", &deletedID))
		s.ClearDomainEvents()

		f.expectRollback()
		f.scheduleRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(s, nil)
		f.decisionRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(nil, recommendationDomain.ErrDecisionNotFound)
		f.decisionRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.Decision")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)
		f.taskRepo.On("FindByID", f.txCtx, deletedID).Return(nil, taskDomain.ErrTaskNotFound)

		err := f.planner.AcceptRecommendation(f.ctx, userID, slot.ID())

		assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
		assert.Equal(t, scheduleDomain.StatusEmpty, slot.Status())
		f.scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.uow.AssertExpectations(t)
	})
}

func TestPlanner_RejectRecommendation(t *testing.T) {
	userID := uuid.New()

	t.Run("records rejection without touching the slot", func(t *testing.T) {
		f := newPlannerFixture()
		s := newPlannerSchedule(t, userID)
		slot := s.Slots()[0]

		f.expectCommit()
		f.scheduleRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(s, nil)
		f.decisionRepo.On("FindBySlotID", f.txCtx, slot.ID()).Return(nil, recommendationDomain.ErrDecisionNotFound)

		var saved *recommendationDomain.Decision
		f.decisionRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.Decision")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*recommendationDomain.Decision)
		}).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		require.NoError(t, f.planner.RejectRecommendation(f.ctx, userID, slot.ID()))

		require.NotNil(t, saved)
		assert.False(t, saved.Accepted())
		assert.Equal(t, scheduleDomain.StatusEmpty, slot.Status())
		f.scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown slot fails", func(t *testing.T) {
		f := newPlannerFixture()
		slotID := uuid.New()

		f.expectRollback()
		f.scheduleRepo.On("FindBySlotID", f.txCtx, slotID).Return(nil, scheduleDomain.ErrSlotNotFound)

		err := f.planner.RejectRecommendation(f.ctx, userID, slotID)

		assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
		f.decisionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlanner_DailyRollover(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("archives open past days and creates today", func(t *testing.T) {
		f := newPlannerFixture()
		yesterday := newPlannerSchedule(t, userID)

		f.expectCommit()
		f.scheduleRepo.On("FindActiveByUser", f.txCtx, userID).Return([]*scheduleDomain.DaySchedule{yesterday}, nil)
		f.scheduleRepo.On("FindByUserAndDay", f.txCtx, userID, today).Return(nil, scheduleDomain.ErrScheduleNotFound)
		f.scheduleRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.DaySchedule")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.planner.DailyRollover(f.ctx, userID, today)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ArchivedDays)
		assert.True(t, result.Created)
		assert.True(t, yesterday.IsArchived())
		assert.NotEqual(t, uuid.Nil, result.ScheduleID)
	})

	t.Run("rollover twice on the same day is stable", func(t *testing.T) {
		f := newPlannerFixture()
		current, err := scheduleDomain.NewDaySchedule(userID, today, scheduleDomain.DefaultTemplate())
		require.NoError(t, err)
		current.ClearDomainEvents()

		f.expectCommit()
		f.scheduleRepo.On("FindActiveByUser", f.txCtx, userID).Return([]*scheduleDomain.DaySchedule{current}, nil)
		f.scheduleRepo.On("FindByUserAndDay", f.txCtx, userID, today).Return(current, nil)

		result, err := f.planner.DailyRollover(f.ctx, userID, today)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ArchivedDays)
		assert.False(t, result.Created)
		assert.Equal(t, current.ID(), result.ScheduleID)
		assert.False(t, current.IsArchived())
		f.scheduleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
