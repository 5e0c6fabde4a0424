package engine

import (
	"context"
	"fmt"
	"sort"

	"ah-flipper/internal/market"
)

// BazaarMargins ranks the most recent bazaar pull by buy/sell spread. Only
// products with strictly positive buy and sell prices qualify; a non-positive
// sell price would make the percent undefined and is silently excluded.
func (e *Engine) BazaarMargins(ctx context.Context, limit int) ([]BazaarMargin, error) {
	limit, err := clampLimit(limit, e.Limits.MaxMarginResults)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []BazaarMargin{}, nil
	}

	pull, ok, err := e.Store.LatestBazaarPull(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest pull: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no bazaar pull available", market.ErrNotFound)
	}

	results := []BazaarMargin{}
	for _, q := range pull.Quotes {
		if q.BuyPrice <= 0 || q.SellPrice <= 0 {
			continue
		}
		margin := q.BuyPrice - q.SellPrice
		results = append(results, BazaarMargin{
			ProductID:     q.ProductID,
			BuyPrice:      q.BuyPrice,
			SellPrice:     q.SellPrice,
			Margin:        margin,
			MarginPercent: margin / q.SellPrice * 100,
		})
	}

	// Rank: margin percent desc, margin desc, product id asc.
	sort.Slice(results, func(i, j int) bool {
		if results[i].MarginPercent != results[j].MarginPercent {
			return results[i].MarginPercent > results[j].MarginPercent
		}
		if results[i].Margin != results[j].Margin {
			return results[i].Margin > results[j].Margin
		}
		return results[i].ProductID < results[j].ProductID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
