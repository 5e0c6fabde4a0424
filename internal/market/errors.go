package market

import "errors"

// Error kinds surfaced by the analytics core. Data Store faults are wrapped
// with %w and propagated unchanged (no retry, no classification) so callers
// can apply their own policy.
var (
	// ErrNotFound means the requested key has no matching data: unknown tag,
	// no bazaar pull available, empty auction sample for a query.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means required text was missing or a parameter stayed
	// nonsensical after clamping (e.g. a negative limit).
	ErrInvalidArgument = errors.New("invalid argument")
)
