package engine

import (
	"context"
	"fmt"
	"time"

	"ah-flipper/internal/market"
)

// ItemPriceHistory returns an item's price points inside the trailing window
// of the given number of days, ascending by timestamp. The lookback is
// clamped to Limits.MaxHistoryDays; no resampling or interpolation is done.
// This is the shared windowing contract all history reads honor: strictly
// greater than now minus the bound.
func (e *Engine) ItemPriceHistory(ctx context.Context, itemID int64, days int) ([]market.PricePoint, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%w: item id required", market.ErrInvalidArgument)
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: negative day window", market.ErrInvalidArgument)
	}
	days = clampUpper(days, e.Limits.MaxHistoryDays)
	if days == 0 {
		return []market.PricePoint{}, nil
	}

	since := e.now().AddDate(0, 0, -days)
	points, err := e.Store.PricePointsSince(ctx, itemID, since)
	if err != nil {
		return nil, fmt.Errorf("fetch price history for item %d: %w", itemID, err)
	}
	if points == nil {
		points = []market.PricePoint{}
	}
	return points, nil
}

// BazaarHistory returns a product's quotes inside the trailing window of the
// given number of hours, ascending by timestamp. The lookback is clamped to
// Limits.MaxHistoryHours.
func (e *Engine) BazaarHistory(ctx context.Context, productID string, hours int) ([]market.BazaarQuote, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id required", market.ErrInvalidArgument)
	}
	if hours < 0 {
		return nil, fmt.Errorf("%w: negative hour window", market.ErrInvalidArgument)
	}
	hours = clampUpper(hours, e.Limits.MaxHistoryHours)
	if hours == 0 {
		return []market.BazaarQuote{}, nil
	}

	since := e.now().Add(-time.Duration(hours) * time.Hour)
	quotes, err := e.Store.BazaarQuotesSince(ctx, productID, since)
	if err != nil {
		return nil, fmt.Errorf("fetch bazaar history for %s: %w", productID, err)
	}
	if quotes == nil {
		quotes = []market.BazaarQuote{}
	}
	return quotes, nil
}
