package domain

import (
	"context"
	"time"
)

// RedirectDelay is the pause between a success screen and the navigation to
// the confirmation page.
const RedirectDelay = 2 * time.Second

// Handoff describes where the saga goes next. Delayed redirects let the guest
// see the success message first; Wait is a cancellable timer, so a guest
// navigating away during the delay is not fought.
type Handoff struct {
	Target string        `json:"target"`
	Delay  time.Duration `json:"delay"`
}

func (h Handoff) Wait(ctx context.Context) error {
	if h.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(h.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
