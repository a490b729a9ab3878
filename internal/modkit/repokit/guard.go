package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder is any store that can verify all of its backends at once
type Guarder interface {
	Guard(context.Context) error
}

// DefaultGuardTimeout bounds MustGuard when ctx carries no deadline
const DefaultGuardTimeout = 10 * time.Second

// MustGuard verifies st at boot and panics naming the failing backends
// a nil store means nothing is configured and passes
func MustGuard(ctx context.Context, st Guarder) {
	if st == nil {
		return
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultGuardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard failed: %w", err))
	}
}
