package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// slotHandler carries the dependencies every slot mutation needs. Individual
// command handlers embed it and call mutate with their domain operation.
type slotHandler struct {
	scheduleRepo scheduleDomain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locks        *sharedApplication.UserLocks
}

// mutate loads the schedule owning the slot, applies fn, and persists the
// schedule together with its outbox messages in one transaction. The user's
// lock is held for the whole read-modify-write.
func (h slotHandler) mutate(ctx context.Context, userID, slotID uuid.UUID, fn func(*scheduleDomain.DaySchedule) error) error {
	return h.locks.WithUser(userID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			s, err := h.scheduleRepo.FindBySlotID(txCtx, slotID)
			if err != nil {
				return err
			}

			if err := fn(s); err != nil {
				return err
			}

			if err := h.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}
			return saveScheduleEvents(txCtx, h.outboxRepo, s, userID)
		})
	})
}
