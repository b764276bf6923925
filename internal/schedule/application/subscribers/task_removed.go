package subscribers

import (
	"context"
	"log/slog"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/eventbus"
)

// TaskRemovedSubscriber clears slot bindings that point at a deleted task.
// Bindings are weak references: the task disappears, the slots survive.
// Only active days are touched; archived days are read-only history and keep
// their bindings, which the statistics queries tolerate as unknown task ids.
type TaskRemovedSubscriber struct {
	scheduleRepo scheduleDomain.Repository
	uow          sharedApplication.UnitOfWork
	locks        *sharedApplication.UserLocks
	logger       *slog.Logger
}

// NewTaskRemovedSubscriber creates a new TaskRemovedSubscriber.
func NewTaskRemovedSubscriber(scheduleRepo scheduleDomain.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks, logger *slog.Logger) *TaskRemovedSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskRemovedSubscriber{
		scheduleRepo: scheduleRepo,
		uow:          uow,
		locks:        locks,
		logger:       logger,
	}
}

// EventTypes returns the event types this subscriber handles.
func (s *TaskRemovedSubscriber) EventTypes() []string {
	return []string{taskDomain.RoutingKeyRemoved}
}

// Handle processes a task removed event. The aggregate id is the deleted
// task's id.
func (s *TaskRemovedSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	taskID := event.AggregateID

	return s.locks.WithUser(event.Metadata.UserID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
			schedules, err := s.scheduleRepo.FindActiveByTaskID(txCtx, taskID)
			if err != nil {
				return err
			}

			for _, schedule := range schedules {
				schedule.ClearDomainEvents()
				cleared := schedule.ClearBindingsFor(taskID)
				if len(cleared) == 0 {
					continue
				}
				if err := s.scheduleRepo.Save(txCtx, schedule); err != nil {
					return err
				}
				s.logger.Info("cleared slot bindings for removed task",
					"task_id", taskID,
					"schedule_id", schedule.ID(),
					"slots", len(cleared))
			}
			return nil
		})
	})
}
