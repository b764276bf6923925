package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/temporahq/tempora/internal/schedule/application/queries"
)

// ResolveSlot turns a position number or a slot id into a slot id. Positions
// are looked up in the given day's grid.
func ResolveSlot(ctx context.Context, a *App, dayFlag, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	pos, err := strconv.Atoi(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("slot %q is neither a position nor an id", arg)
	}

	day, err := ParseDay(dayFlag)
	if err != nil {
		return uuid.Nil, err
	}

	schedule, err := a.GetDayScheduleHandler.Handle(ctx, queries.GetDayScheduleQuery{
		UserID: a.CurrentUserID,
		Day:    day,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load day schedule: %w", err)
	}

	for _, s := range schedule.Slots {
		if s.Position == pos {
			return s.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no slot at position %d", pos)
}
