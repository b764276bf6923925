package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// EnsureDayCommand requests the slot grid for a calendar day, generating it
// from the template when it does not exist yet.
type EnsureDayCommand struct {
	UserID   uuid.UUID
	Day      time.Time
	Template scheduleDomain.SlotTemplate
}

// EnsureDayResult contains the result of ensuring a day's grid.
type EnsureDayResult struct {
	ScheduleID uuid.UUID
	Created    bool
}

// EnsureDayHandler handles the EnsureDayCommand.
type EnsureDayHandler struct {
	scheduleRepo scheduleDomain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locks        *sharedApplication.UserLocks
}

// NewEnsureDayHandler creates a new EnsureDayHandler.
func NewEnsureDayHandler(scheduleRepo scheduleDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, locks *sharedApplication.UserLocks) *EnsureDayHandler {
	return &EnsureDayHandler{
		scheduleRepo: scheduleRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		locks:        locks,
	}
}

// Handle executes the EnsureDayCommand.
func (h *EnsureDayHandler) Handle(ctx context.Context, cmd EnsureDayCommand) (*EnsureDayResult, error) {
	var result *EnsureDayResult

	day := scheduleDomain.NormalizeDay(cmd.Day)

	err := h.locks.WithUser(cmd.UserID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			existing, err := h.scheduleRepo.FindByUserAndDay(txCtx, cmd.UserID, day)
			if err == nil {
				result = &EnsureDayResult{ScheduleID: existing.ID()}
				return nil
			}
			if !errors.Is(err, sharedDomain.ErrNotFound) {
				return err
			}

			s, err := scheduleDomain.NewDaySchedule(cmd.UserID, cmd.Day, cmd.Template)
			if err != nil {
				return err
			}

			if err := h.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}
			if err := saveScheduleEvents(txCtx, h.outboxRepo, s, cmd.UserID); err != nil {
				return err
			}

			result = &EnsureDayResult{ScheduleID: s.ID(), Created: true}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
