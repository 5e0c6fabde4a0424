package engine

import (
	"fmt"
	"time"

	"ah-flipper/internal/market"
)

// Limits holds every sampling cap and clamp the detectors apply. The values
// are backpressure policy: they bound worst-case memory and CPU per call as
// data volume grows.
type Limits struct {
	FlipSample        int     // active BIN auctions pulled for a flip scan
	SnipeSample       int     // fresh BIN auctions pulled for a snipe scan
	UnderpricedSample int     // auctions pulled for one item's underpriced scan
	MaxFlipResults    int     // ceiling on flip limit
	MaxSnipeResults   int     // ceiling on snipe limit
	MaxTrendResults   int     // ceiling on trend limit
	MaxMarginResults  int     // ceiling on margin limit
	MaxSnipeAge       int     // ceiling on snipe window, minutes
	SnipeMinDiscount  float64 // minimum discount percent for a snipe
	MaxHistoryDays    int     // ceiling on item history lookback
	MaxHistoryHours   int     // ceiling on bazaar history lookback
}

// DefaultLimits returns the documented default caps.
func DefaultLimits() Limits {
	return Limits{
		FlipSample:        5000,
		SnipeSample:       500,
		UnderpricedSample: 100,
		MaxFlipResults:    100,
		MaxSnipeResults:   50,
		MaxTrendResults:   100,
		MaxMarginResults:  100,
		MaxSnipeAge:       30,
		SnipeMinDiscount:  15,
		MaxHistoryDays:    30,
		MaxHistoryHours:   168,
	}
}

// Engine runs read-only market scans against a DataStore. Each call
// materializes its own bounded sample at start and computes in memory; there
// is no shared mutable state, so an Engine is safe for concurrent use.
type Engine struct {
	Store  market.DataStore
	Limits Limits
	Now    func() time.Time // injectable clock; defaults to time.Now
}

// New creates an Engine with the default limits.
func New(store market.DataStore) *Engine {
	return &Engine{Store: store, Limits: DefaultLimits()}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// clampLimit normalizes a result limit against its ceiling. Values above max
// are silently clamped; zero stays zero (empty result); negative values are
// rejected as they stay nonsensical after clamping.
func clampLimit(limit, max int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("%w: negative limit %d", market.ErrInvalidArgument, limit)
	}
	if limit > max {
		return max, nil
	}
	return limit, nil
}

// clampUpper clamps v into [0, max], silently.
func clampUpper(v, max int) int {
	if v > max {
		return max
	}
	if v < 0 {
		return 0
	}
	return v
}
