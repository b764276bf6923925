package commands

import (
	"context"

	"github.com/google/uuid"

	scheduleDomain "github.com/temporahq/tempora/internal/schedule/domain"
	sharedApplication "github.com/temporahq/tempora/internal/shared/application"
	"github.com/temporahq/tempora/internal/shared/infrastructure/outbox"
)

// saveScheduleEvents stores the schedule's pending domain events in the
// outbox within the current transaction.
func saveScheduleEvents(ctx context.Context, outboxRepo outbox.Repository, s *scheduleDomain.DaySchedule, userID uuid.UUID) error {
	events := s.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return outboxRepo.SaveBatch(ctx, msgs)
}
