package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	taskDomain "github.com/temporahq/tempora/internal/planning/domain/task"
	recommendationCommands "github.com/temporahq/tempora/internal/recommendation/application/commands"
	recommendationDomain "github.com/temporahq/tempora/internal/recommendation/domain"
	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	sharedDomain "github.com/temporahq/tempora/internal/shared/domain"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// Planner is the facade for multi-step schedule operations. It sequences
// task, slot and decision mutations inside one transaction per call and
// serializes mutations per user.
type Planner struct {
	taskRepo     taskDomain.Repository
	scheduleRepo scheduleDomain.Repository
	decisionRepo recommendationDomain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	locks        *sharedApplication.UserLocks
	template     scheduleDomain.SlotTemplate
}

// NewPlanner creates a new Planner.
func NewPlanner(
	taskRepo taskDomain.Repository,
	scheduleRepo scheduleDomain.Repository,
	decisionRepo recommendationDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locks *sharedApplication.UserLocks,
	template scheduleDomain.SlotTemplate,
) *Planner {
	return &Planner{
		taskRepo:     taskRepo,
		scheduleRepo: scheduleRepo,
		decisionRepo: decisionRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		locks:        locks,
		template:     template,
	}
}

// QuickAddAndBindResult reports what QuickAddAndBind created.
type QuickAddAndBindResult struct {
	TaskID uuid.UUID
	SlotID uuid.UUID
}

// QuickAddAndBind parses free text into a bare study task and binds it to
// the day's first empty slot. Either both happen or neither: no empty slot
// rolls the task creation back too.
func (p *Planner) QuickAddAndBind(ctx context.Context, userID uuid.UUID, freeText string, day time.Time) (*QuickAddAndBindResult, error) {
	var result *QuickAddAndBindResult

	err := p.locks.WithUser(userID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, p.uow, func(txCtx context.Context) error {
			t, err := taskDomain.QuickAdd(userID, freeText)
			if err != nil {
				return err
			}
			if err := p.taskRepo.Save(txCtx, t); err != nil {
				return err
			}

			s, err := p.ensureSchedule(txCtx, userID, day)
			if err != nil {
				return err
			}

			slot, err := s.FirstEmptySlot()
			if err != nil {
				return err
			}
			if err := s.BindSlot(slot.ID(), t.ID(), nil); err != nil {
				return err
			}

			if err := p.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}

			if err := p.saveEvents(txCtx, userID, t, s); err != nil {
				return err
			}

			result = &QuickAddAndBindResult{TaskID: t.ID(), SlotID: slot.ID()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AcceptRecommendation records acceptance and binds the slot's recommended
// task when one is specified. Decision and binding commit together; a failed
// bind leaves no decision behind.
func (p *Planner) AcceptRecommendation(ctx context.Context, userID, slotID uuid.UUID) error {
	return p.locks.WithUser(userID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, p.uow, func(txCtx context.Context) error {
			s, err := p.scheduleRepo.FindBySlotID(txCtx, slotID)
			if err != nil {
				return err
			}
			slot, err := s.SlotByID(slotID)
			if err != nil {
				return err
			}

			if err := recommendationCommands.RecordDecision(txCtx, p.decisionRepo, p.outboxRepo, userID, slotID, true); err != nil {
				return err
			}

			recommended := slot.RecommendedTaskID()
			if recommended == nil {
				return nil
			}

			// The suggested task may have been deleted since the tip was
			// attached; that aborts the acceptance as a whole.
			if _, err := p.taskRepo.FindByID(txCtx, *recommended); err != nil {
				return err
			}

			if err := s.BindSlot(slotID, *recommended, nil); err != nil {
				return err
			}
			if err := p.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}
			return p.saveEvents(txCtx, userID, s)
		})
	})
}

// RejectRecommendation records a rejection. The slot is left untouched.
func (p *Planner) RejectRecommendation(ctx context.Context, userID, slotID uuid.UUID) error {
	return p.locks.WithUser(userID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, p.uow, func(txCtx context.Context) error {
			// The slot must exist even though only the ledger is written.
			if _, err := p.scheduleRepo.FindBySlotID(txCtx, slotID); err != nil {
				return err
			}
			return recommendationCommands.RecordDecision(txCtx, p.decisionRepo, p.outboxRepo, userID, slotID, false)
		})
	})
}

// RolloverResult reports what DailyRollover did.
type RolloverResult struct {
	ArchivedDays int
	ScheduleID   uuid.UUID
	Created      bool
}

// DailyRollover archives every open day before the given one and generates
// the day's grid from the template if it does not exist yet. Archived days
// stay readable for weekly statistics.
func (p *Planner) DailyRollover(ctx context.Context, userID uuid.UUID, day time.Time) (*RolloverResult, error) {
	var result *RolloverResult
	today := scheduleDomain.NormalizeDay(day)

	err := p.locks.WithUser(userID, func() error {
		return sharedApplication.WithUnitOfWork(ctx, p.uow, func(txCtx context.Context) error {
			active, err := p.scheduleRepo.FindActiveByUser(txCtx, userID)
			if err != nil {
				return err
			}

			archived := 0
			for _, s := range active {
				if !s.Day().Before(today) {
					continue
				}
				s.Archive()
				if err := p.scheduleRepo.Save(txCtx, s); err != nil {
					return err
				}
				if err := p.saveEvents(txCtx, userID, s); err != nil {
					return err
				}
				archived++
			}

			result = &RolloverResult{ArchivedDays: archived}

			s, err := p.scheduleRepo.FindByUserAndDay(txCtx, userID, today)
			if err == nil {
				result.ScheduleID = s.ID()
				return nil
			}
			if !isNotFound(err) {
				return err
			}

			s, err = scheduleDomain.NewDaySchedule(userID, today, p.template)
			if err != nil {
				return err
			}
			if err := p.scheduleRepo.Save(txCtx, s); err != nil {
				return err
			}
			if err := p.saveEvents(txCtx, userID, s); err != nil {
				return err
			}

			result.ScheduleID = s.ID()
			result.Created = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ensureSchedule loads the day's grid, creating it from the template when
// the day has none yet.
func (p *Planner) ensureSchedule(ctx context.Context, userID uuid.UUID, day time.Time) (*scheduleDomain.DaySchedule, error) {
	normalized := scheduleDomain.NormalizeDay(day)

	s, err := p.scheduleRepo.FindByUserAndDay(ctx, userID, normalized)
	if err == nil {
		return s, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	return scheduleDomain.NewDaySchedule(userID, normalized, p.template)
}

// saveEvents drains the aggregates' domain events into the outbox within the
// current transaction.
func (p *Planner) saveEvents(ctx context.Context, userID uuid.UUID, aggregates ...eventSource) error {
	metadata := sharedApplication.NewEventMetadata(userID)

	var msgs []*outbox.Message
	for _, aggregate := range aggregates {
		events := aggregate.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, metadata)
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		aggregate.ClearDomainEvents()
	}
	if len(msgs) == 0 {
		return nil
	}
	return p.outboxRepo.SaveBatch(ctx, msgs)
}

type eventSource interface {
	DomainEvents() []sharedDomain.DomainEvent
	ClearDomainEvents()
}

func isNotFound(err error) bool {
	return errors.Is(err, sharedDomain.ErrNotFound)
}
