package uow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RetriesConflictsAndRunsWinningHooks(t *testing.T) {
	u := New(3)

	calls := 0
	var ran []int

	err := u.Do(context.Background(), func(ctx context.Context, after func(AfterCommit)) error {
		calls++
		attempt := calls
		after(func(context.Context) { ran = append(ran, attempt) })
		if attempt < 3 {
			return fmt.Errorf("write:%w", repository.ErrConcurrencyConflict)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{3}, ran)
}

func TestDo_GivesUpAfterAttempts(t *testing.T) {
	u := New(2)

	calls := 0
	err := u.Do(context.Background(), func(ctx context.Context, after func(AfterCommit)) error {
		calls++
		return repository.ErrConcurrencyConflict
	})

	assert.ErrorIs(t, err, repository.ErrConcurrencyConflict)
	assert.Equal(t, 2, calls)
}

func TestDo_OtherErrorsAreNotRetried(t *testing.T) {
	u := New(5)
	boom := errors.New("boom")

	calls := 0
	hookRan := false
	err := u.Do(context.Background(), func(ctx context.Context, after func(AfterCommit)) error {
		calls++
		after(func(context.Context) { hookRan = true })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.False(t, hookRan)
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(3).Do(ctx, func(ctx context.Context, after func(AfterCommit)) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
