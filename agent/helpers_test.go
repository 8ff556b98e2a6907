package agent

import "context"

// testStateFn is a no-op StateFunc used wherever a test only cares about
// registration bookkeeping, not execution.
func testStateFn(ctx context.Context, c *Context) (Directive, error) {
	return None(), nil
}
