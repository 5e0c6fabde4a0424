package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"ah-flipper/internal/market"
)

// FindSnipes joins freshly listed BIN auctions against each item's last known
// average price and keeps the ones discounted at least
// Limits.SnipeMinDiscount percent. Auctions whose item has no price point, or
// whose last average is non-positive, are skipped.
func (e *Engine) FindSnipes(ctx context.Context, params SnipeParams) ([]SnipeOpportunity, error) {
	if params.MaxAgeMinutes < 0 {
		return nil, fmt.Errorf("%w: negative age window", market.ErrInvalidArgument)
	}
	limit, err := clampLimit(params.Limit, e.Limits.MaxSnipeResults)
	if err != nil {
		return nil, err
	}
	maxAge := clampUpper(params.MaxAgeMinutes, e.Limits.MaxSnipeAge)
	if limit == 0 || maxAge == 0 {
		return []SnipeOpportunity{}, nil
	}

	since := e.now().Add(-time.Duration(maxAge) * time.Minute)
	sample, err := e.Store.RecentBINAuctions(ctx, since, e.Limits.SnipeSample)
	if err != nil {
		return nil, fmt.Errorf("fetch snipe sample: %w", err)
	}
	if len(sample) == 0 {
		return []SnipeOpportunity{}, nil
	}

	tagSet := make(map[string]bool, len(sample))
	tags := make([]string, 0, len(sample))
	for _, a := range sample {
		if !tagSet[a.Tag] {
			tagSet[a.Tag] = true
			tags = append(tags, a.Tag)
		}
	}
	itemIDs, err := e.Store.ItemIDsByTags(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("resolve item ids: %w", err)
	}

	// One latest-point read per distinct item; auctions share the lookup.
	latest := make(map[int64]market.PricePoint, len(itemIDs))
	for _, id := range itemIDs {
		if _, done := latest[id]; done {
			continue
		}
		pp, ok, err := e.Store.LatestPricePoint(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("latest price point for item %d: %w", id, err)
		}
		if ok {
			latest[id] = pp
		}
	}

	var results []SnipeOpportunity
	for _, a := range sample {
		id, ok := itemIDs[a.Tag]
		if !ok {
			continue
		}
		pp, ok := latest[id]
		if !ok || pp.Avg <= 0 {
			continue
		}
		discount := (pp.Avg - a.StartingPrice) / pp.Avg * 100
		if discount < e.Limits.SnipeMinDiscount {
			continue
		}
		results = append(results, SnipeOpportunity{
			AuctionID:       a.ID,
			Tag:             a.Tag,
			ItemName:        a.ItemName,
			Price:           a.StartingPrice,
			AveragePrice:    pp.Avg,
			DiscountPercent: discount,
			ListedAt:        a.Start,
			EndsAt:          a.End,
		})
	}
	log.Printf("[DEBUG] FindSnipes: %d candidates from %d sampled auctions", len(results), len(sample))

	// Rank: discount desc, price asc, auction id asc.
	sort.Slice(results, func(i, j int) bool {
		if results[i].DiscountPercent != results[j].DiscountPercent {
			return results[i].DiscountPercent > results[j].DiscountPercent
		}
		if results[i].Price != results[j].Price {
			return results[i].Price < results[j].Price
		}
		return results[i].AuctionID < results[j].AuctionID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []SnipeOpportunity{}
	}
	return results, nil
}
