package engine

import (
	"context"
	"fmt"
	"strings"

	"ah-flipper/internal/market"
)

// FindUnderpriced samples active BIN listings for one item tag and returns
// every listing priced strictly below a mean-derived threshold. percentBelow
// is clamped into [0,100]. Output order follows the sample; presentation
// ordering is the caller's job.
func (e *Engine) FindUnderpriced(ctx context.Context, tag string, percentBelow float64) ([]UnderpricedAuction, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, fmt.Errorf("%w: item tag required", market.ErrInvalidArgument)
	}
	if percentBelow < 0 {
		percentBelow = 0
	}
	if percentBelow > 100 {
		percentBelow = 100
	}

	sample, err := e.Store.AuctionsByTag(ctx, tag, market.AuctionFilters{BINOnly: true}, e.Limits.UnderpricedSample)
	if err != nil {
		return nil, fmt.Errorf("fetch auctions for %s: %w", tag, err)
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("%w: no active BIN auctions for %s", market.ErrNotFound, tag)
	}

	var sum float64
	for _, a := range sample {
		sum += a.StartingPrice
	}
	mean := sum / float64(len(sample))
	if mean == 0 {
		return []UnderpricedAuction{}, nil
	}
	threshold := mean * (100 - percentBelow) / 100

	results := []UnderpricedAuction{}
	for _, a := range sample {
		if a.StartingPrice >= threshold {
			continue
		}
		results = append(results, UnderpricedAuction{
			AuctionID:       a.ID,
			Tag:             a.Tag,
			ItemName:        a.ItemName,
			Price:           a.StartingPrice,
			SampleMean:      mean,
			DiscountPercent: (mean - a.StartingPrice) / mean * 100,
			SellerID:        a.SellerID,
			EndsAt:          a.End,
		})
	}
	return results, nil
}
