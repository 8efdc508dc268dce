package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/errutil"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine with a background context that
// keeps the caller's logger. Errors and panics are logged, never propagated.
// The returned channel is closed once handler has returned.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := logging.With(context.Background(), logging.From(ctx))
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", r)), "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()

	return done
}
