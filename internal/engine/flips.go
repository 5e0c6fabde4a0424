package engine

import (
	"context"
	"fmt"
	"log"
	"sort"

	"ah-flipper/internal/market"
)

// FindFlips scans active BIN auctions for items whose cheapest listing sits
// well below the group's mid price. The sample is bounded (Limits.FlipSample,
// cheapest-first) and grouped by item tag; groups with fewer than two
// listings carry no reference price and are skipped.
func (e *Engine) FindFlips(ctx context.Context, params FlipParams) ([]FlipOpportunity, error) {
	if params.MinProfit < 0 || params.MinProfitPercent < 0 {
		return nil, fmt.Errorf("%w: negative profit filter", market.ErrInvalidArgument)
	}
	limit, err := clampLimit(params.Limit, e.Limits.MaxFlipResults)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []FlipOpportunity{}, nil
	}

	sample, err := e.Store.ActiveBINAuctions(ctx, "", e.Limits.FlipSample)
	if err != nil {
		return nil, fmt.Errorf("fetch flip sample: %w", err)
	}
	log.Printf("[DEBUG] FindFlips: sampled %d auctions", len(sample))

	groups := make(map[string][]market.AuctionRecord)
	for _, a := range sample {
		groups[a.Tag] = append(groups[a.Tag], a)
	}

	var results []FlipOpportunity
	for tag, group := range groups {
		if len(group) < 2 {
			continue
		}
		// The sample arrives cheapest-first overall, but each group is
		// re-sorted so the mid index is well-defined regardless of how the
		// store interleaved tags.
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartingPrice < group[j].StartingPrice
		})

		cheapest := group[0]
		low := cheapest.StartingPrice
		if low == 0 {
			continue
		}
		// Mid pick is the price at integer-floor index count/2. For
		// even-sized groups this is the upper middle, not a true statistical
		// median; the policy is part of the contract.
		mid := group[len(group)/2].StartingPrice

		profit := mid - low
		percent := profit / low * 100
		if profit < params.MinProfit || percent < params.MinProfitPercent {
			continue
		}

		results = append(results, FlipOpportunity{
			AuctionID:      cheapest.ID,
			Tag:            tag,
			ItemName:       cheapest.ItemName,
			BuyPrice:       low,
			ReferencePrice: mid,
			Profit:         profit,
			ProfitPercent:  percent,
			SellerID:       cheapest.SellerID,
			EndsAt:         cheapest.End,
			Tier:           cheapest.Tier,
		})
	}

	// Rank: percent desc, profit desc, tag asc. Total order keeps repeated
	// scans of the same snapshot byte-identical.
	sort.Slice(results, func(i, j int) bool {
		if results[i].ProfitPercent != results[j].ProfitPercent {
			return results[i].ProfitPercent > results[j].ProfitPercent
		}
		if results[i].Profit != results[j].Profit {
			return results[i].Profit > results[j].Profit
		}
		return results[i].Tag < results[j].Tag
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []FlipOpportunity{}
	}
	return results, nil
}
