package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Trends ranks items by day-over-day change of their average price. Only
// items with price points in both the current and the previous UTC day
// qualify; items whose yesterday mean is non-positive are skipped (percent
// change is undefined).
//
// direction "down" (case-insensitive) sorts ascending. Any other value,
// including unrecognized strings, sorts descending — documented behavior, not
// input validation.
func (e *Engine) Trends(ctx context.Context, direction string, limit int) ([]PriceTrend, error) {
	limit, err := clampLimit(limit, e.Limits.MaxTrendResults)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []PriceTrend{}, nil
	}

	now := e.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	points, err := e.Store.PricePointsBetween(ctx, yesterdayStart, now)
	if err != nil {
		return nil, fmt.Errorf("fetch trend points: %w", err)
	}

	type dayAgg struct {
		sum   float64
		count int
	}
	yesterday := make(map[int64]*dayAgg)
	today := make(map[int64]*dayAgg)
	for _, p := range points {
		var bucket map[int64]*dayAgg
		switch {
		case p.Timestamp.Before(todayStart):
			bucket = yesterday
		default:
			bucket = today
		}
		agg := bucket[p.ItemID]
		if agg == nil {
			agg = &dayAgg{}
			bucket[p.ItemID] = agg
		}
		agg.sum += p.Avg
		agg.count++
	}

	var results []PriceTrend
	for itemID, t := range today {
		y, ok := yesterday[itemID]
		if !ok {
			continue
		}
		yAvg := y.sum / float64(y.count)
		if yAvg <= 0 {
			continue
		}
		tAvg := t.sum / float64(t.count)
		results = append(results, PriceTrend{
			ItemID:        itemID,
			YesterdayAvg:  yAvg,
			TodayAvg:      tAvg,
			ChangePercent: (tAvg - yAvg) / yAvg * 100,
		})
	}

	down := strings.EqualFold(direction, "down")
	sort.Slice(results, func(i, j int) bool {
		if results[i].ChangePercent != results[j].ChangePercent {
			if down {
				return results[i].ChangePercent < results[j].ChangePercent
			}
			return results[i].ChangePercent > results[j].ChangePercent
		}
		return results[i].ItemID < results[j].ItemID
	})
	if len(results) > limit {
		results = results[:limit]
	}

	// Resolve display tag/name only for the survivors.
	if len(results) > 0 {
		ids := make([]int64, len(results))
		for i, r := range results {
			ids[i] = r.ItemID
		}
		items, err := e.Store.ItemsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve trend items: %w", err)
		}
		for i := range results {
			if item, ok := items[results[i].ItemID]; ok {
				results[i].Tag = item.Tag
				results[i].ItemName = item.Name
			}
		}
	}
	if results == nil {
		results = []PriceTrend{}
	}
	return results, nil
}
