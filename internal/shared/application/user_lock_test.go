package application

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLocks_WithUser(t *testing.T) {
	t.Run("serializes same user", func(t *testing.T) {
		locks := NewUserLocks()
		userID := uuid.New()

		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = locks.WithUser(userID, func() error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, counter)
	})

	t.Run("propagates errors", func(t *testing.T) {
		locks := NewUserLocks()
		want := assert.AnError

		err := locks.WithUser(uuid.New(), func() error { return want })
		require.ErrorIs(t, err, want)
	})

	t.Run("reuses lock per user", func(t *testing.T) {
		locks := NewUserLocks()
		userID := uuid.New()

		first := locks.lockFor(userID)
		second := locks.lockFor(userID)
		assert.Same(t, first, second)
		assert.NotSame(t, first, locks.lockFor(uuid.New()))
	})
}
