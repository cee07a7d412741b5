// File: pkg/ingest/driver.go
package ingest

import (
	"context"
	"time"

	"foldertoai/pkg/segment"
)

// DefaultBudget is the wall-clock time one Drive call may spend.
const DefaultBudget = 50 * time.Millisecond

// Drive advances c until budget has elapsed or a terminal state is reached.
// At least one step is always taken. The step out of Initializing ends the
// window on its own, so a cold start always shows progress before the scan.
func Drive(c *Controller, budget time.Duration) State {
	start := time.Now()
	for !c.State().Terminal() {
		wasInitializing := c.State() == Initializing
		c.Advance()
		if wasInitializing || time.Since(start) >= budget {
			break
		}
	}
	return c.State()
}

// ProgressFunc is called after every Drive window.
type ProgressFunc func(state State, p Progress)

// Run drives c to a terminal state in windows of budget, reporting after each
// window. ctx is only checked between windows; a cancelled run leaves c where it
// stopped.
func Run(ctx context.Context, c *Controller, budget time.Duration, progress ProgressFunc) (segment.MessageSet, error) {
	for !c.State().Terminal() {
		if err := ctx.Err(); err != nil {
			return segment.MessageSet{}, err
		}
		state := Drive(c, budget)
		if progress != nil {
			progress(state, c.Progress())
		}
	}
	if c.State() == Failed {
		return segment.MessageSet{}, c.Err()
	}
	return c.Messages()
}
