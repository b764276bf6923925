package task_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporahq/tempora/internal/planning/domain/task"
	"github.com/temporahq/tempora/internal/shared/domain"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	tsk, err := task.NewTask(userID, "Linear algebra", task.TypeStudy, "math", 6)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tsk.ID())
	assert.Equal(t, userID, tsk.UserID())
	assert.Equal(t, "Linear algebra", tsk.Name())
	assert.Equal(t, task.TypeStudy, tsk.TaskType())
	assert.Equal(t, "math", tsk.Category())
	assert.Equal(t, 6.0, tsk.WeeklyHours())
	assert.Empty(t, tsk.Subtasks())
}

func TestNewTask_EmitsCreatedEvent(t *testing.T) {
	tsk, err := task.NewTask(uuid.New(), "Piano practice", task.TypePlay, "", 2)

	require.NoError(t, err)
	events := tsk.DomainEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(task.TaskCreated)
	require.True(t, ok)
	assert.Equal(t, tsk.ID(), created.AggregateID())
	assert.Equal(t, task.RoutingKeyCreated, created.RoutingKey())
	assert.Equal(t, "Piano practice", created.Name)
	assert.Equal(t, "play", created.TaskType)
}

func TestNewTask_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		t.Run(name, func(t *testing.T) {
			_, err := task.NewTask(uuid.New(), name, task.TypeStudy, "", 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, task.ErrEmptyName)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNewTask_NegativeHours(t *testing.T) {
	_, err := task.NewTask(uuid.New(), "Reading", task.TypeStudy, "", -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrNegativeHours)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewTask_TrimsName(t *testing.T) {
	tsk, err := task.NewTask(uuid.New(), "  Reading  ", task.TypeStudy, "", 1)

	require.NoError(t, err)
	assert.Equal(t, "Reading", tsk.Name())
}

func TestQuickAdd(t *testing.T) {
	t.Run("creates a bare study task", func(t *testing.T) {
		tsk, err := task.QuickAdd(uuid.New(), "Review flash cards")

		require.NoError(t, err)
		assert.Equal(t, task.TypeStudy, tsk.TaskType())
		assert.Equal(t, "Review flash cards", tsk.Name())
		assert.Zero(t, tsk.WeeklyHours())
		assert.Empty(t, tsk.Category())
	})

	t.Run("rejects blank text", func(t *testing.T) {
		_, err := task.QuickAdd(uuid.New(), "   ")
		assert.ErrorIs(t, err, task.ErrEmptyName)
	})
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    task.Type
		wantErr bool
	}{
		{"study", task.TypeStudy, false},
		{"life", task.TypeLife, false},
		{"work", task.TypeWork, false},
		{"play", task.TypePlay, false},
		{" Study ", task.TypeStudy, false},
		{"chore", task.TypeStudy, true},
		{"", task.TypeStudy, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := task.ParseType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, task.ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTask_AddSubtask(t *testing.T) {
	tsk, _ := task.NewTask(uuid.New(), "Thesis", task.TypeStudy, "", 10)

	first, err := tsk.AddSubtask("Literature review", 4)
	require.NoError(t, err)
	second, err := tsk.AddSubtask("Draft chapter 1", 3)
	require.NoError(t, err)

	subtasks := tsk.Subtasks()
	require.Len(t, subtasks, 2)
	assert.Equal(t, first.ID(), subtasks[0].ID())
	assert.Equal(t, second.ID(), subtasks[1].ID())
	assert.Equal(t, 0, subtasks[0].Position())
	assert.Equal(t, 1, subtasks[1].Position())
	assert.Equal(t, tsk.ID(), subtasks[0].TaskID())
}

func TestTask_AddSubtask_NegativeHours(t *testing.T) {
	tsk, _ := task.NewTask(uuid.New(), "Thesis", task.TypeStudy, "", 10)

	_, err := tsk.AddSubtask("Broken", -0.5)

	assert.ErrorIs(t, err, task.ErrNegativeHours)
	assert.Len(t, tsk.Subtasks(), 0)
}

func TestTask_EffectiveHours(t *testing.T) {
	t.Run("falls back to weekly hours without subtasks", func(t *testing.T) {
		tsk, _ := task.NewTask(uuid.New(), "Gym", task.TypeLife, "", 3.5)
		assert.Equal(t, 3.5, tsk.EffectiveHours())
	})

	t.Run("sums subtask hours when subtasks exist", func(t *testing.T) {
		tsk, _ := task.NewTask(uuid.New(), "Thesis", task.TypeStudy, "", 10)
		_, err := tsk.AddSubtask("Reading", 2.5)
		require.NoError(t, err)
		_, err = tsk.AddSubtask("Writing", 1.5)
		require.NoError(t, err)

		assert.Equal(t, 4.0, tsk.EffectiveHours())
	})

	t.Run("zero-hour subtasks still override weekly hours", func(t *testing.T) {
		tsk, _ := task.NewTask(uuid.New(), "Thesis", task.TypeStudy, "", 10)
		_, err := tsk.AddSubtask("Placeholder", 0)
		require.NoError(t, err)

		assert.Equal(t, 0.0, tsk.EffectiveHours())
	})
}

func TestTask_SetName(t *testing.T) {
	tsk, _ := task.NewTask(uuid.New(), "Original", task.TypeWork, "", 1)

	require.NoError(t, tsk.SetName("Updated"))
	assert.Equal(t, "Updated", tsk.Name())

	err := tsk.SetName("  ")
	assert.ErrorIs(t, err, task.ErrEmptyName)
	assert.Equal(t, "Updated", tsk.Name())
}

func TestTask_SetWeeklyHours(t *testing.T) {
	tsk, _ := task.NewTask(uuid.New(), "Gym", task.TypeLife, "", 3)

	require.NoError(t, tsk.SetWeeklyHours(5))
	assert.Equal(t, 5.0, tsk.WeeklyHours())

	err := tsk.SetWeeklyHours(-1)
	assert.ErrorIs(t, err, task.ErrNegativeHours)
	assert.Equal(t, 5.0, tsk.WeeklyHours())
}

func TestTask_Remove_EmitsEvent(t *testing.T) {
	tsk, _ := task.NewTask(uuid.New(), "Gym", task.TypeLife, "", 3)
	tsk.ClearDomainEvents()

	tsk.Remove()

	events := tsk.DomainEvents()
	require.Len(t, events, 1)
	removed, ok := events[0].(task.TaskRemoved)
	require.True(t, ok)
	assert.Equal(t, task.RoutingKeyRemoved, removed.RoutingKey())
}

func TestRehydrateTask(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	taskCreated, _ := task.NewTask(userID, "seed", task.TypeStudy, "", 1)
	st := task.RehydrateSubtask(uuid.New(), id, "Part 1", 2, false, false, 0, taskCreated.CreatedAt(), taskCreated.UpdatedAt())

	tsk := task.RehydrateTask(
		id, userID, "Thesis", task.TypeStudy, "school", 10,
		true, false,
		[]*task.Subtask{st},
		taskCreated.CreatedAt(), taskCreated.UpdatedAt(),
	)

	assert.Equal(t, id, tsk.ID())
	assert.Equal(t, "Thesis", tsk.Name())
	assert.True(t, tsk.IsHighFrequency())
	assert.False(t, tsk.IsOvercome())
	assert.Equal(t, 2.0, tsk.EffectiveHours())
	assert.Empty(t, tsk.DomainEvents())

	found, ok := tsk.SubtaskByID(st.ID())
	require.True(t, ok)
	assert.Equal(t, "Part 1", found.Name())
}
