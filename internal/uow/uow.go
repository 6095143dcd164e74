package uow

import (
	"context"
	"errors"

	"github.com/kirinyoku/carmeet/internal/repository"
)

// AfterCommit is a function that runs after the unit of work succeeded.
type AfterCommit func(ctx context.Context)

// UoW runs a read-modify-conditional-write sequence, restarting it when the
// conditional write lost a race.
type UoW struct {
	attempts int
}

func New(attempts int) *UoW {
	if attempts <= 0 {
		attempts = 3
	}
	return &UoW{attempts: attempts}
}

// Do runs fn, retrying it from scratch while it fails with
// repository.ErrConcurrencyConflict. Only the hooks registered by the
// attempt that succeeded are executed, after fn returns.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, after func(AfterCommit)) error,
) error {
	var err error

	for i := 0; i < u.attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		var hooks []AfterCommit

		err = fn(ctx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
		if errors.Is(err, repository.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return err
		}

		for _, h := range hooks {
			h(ctx)
		}

		return nil
	}

	return err
}
