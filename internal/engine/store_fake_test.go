package engine

import (
	"context"
	"sort"
	"time"

	"ah-flipper/internal/market"
)

// fakeStore is an in-memory DataStore for detector tests. It applies the same
// bounding and ordering contracts the real adapter does.
type fakeStore struct {
	now      time.Time
	auctions []market.AuctionRecord
	points   []market.PricePoint
	pull     *market.BazaarPull
	items    []market.Item
	err      error // returned by every read when set
}

func (f *fakeStore) ActiveBINAuctions(_ context.Context, tag string, limit int) ([]market.AuctionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.AuctionRecord
	for _, a := range f.auctions {
		if !a.BIN || !a.Active(f.now) {
			continue
		}
		if tag != "" && a.Tag != tag {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartingPrice < out[j].StartingPrice })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) AuctionsByTag(_ context.Context, tag string, filt market.AuctionFilters, limit int) ([]market.AuctionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.AuctionRecord
	for _, a := range f.auctions {
		if a.Tag != tag || !a.Active(f.now) {
			continue
		}
		if filt.BINOnly && !a.BIN {
			continue
		}
		if !filt.ListedAfter.IsZero() && !a.Start.After(filt.ListedAfter) {
			continue
		}
		out = append(out, a)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) RecentBINAuctions(_ context.Context, since time.Time, limit int) ([]market.AuctionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.AuctionRecord
	for _, a := range f.auctions {
		if !a.BIN || !a.Active(f.now) || !a.Start.After(since) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartingPrice < out[j].StartingPrice })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) LatestPricePoint(_ context.Context, itemID int64) (market.PricePoint, bool, error) {
	if f.err != nil {
		return market.PricePoint{}, false, f.err
	}
	var best market.PricePoint
	found := false
	for _, p := range f.points {
		if p.ItemID != itemID {
			continue
		}
		if !found || p.Timestamp.After(best.Timestamp) {
			best = p
			found = true
		}
	}
	return best, found, nil
}

func (f *fakeStore) PricePointsSince(_ context.Context, itemID int64, since time.Time) ([]market.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.PricePoint
	for _, p := range f.points {
		if p.ItemID == itemID && p.Timestamp.After(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeStore) PricePointsBetween(_ context.Context, from, to time.Time) ([]market.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.PricePoint
	for _, p := range f.points {
		if p.Timestamp.After(from) && !p.Timestamp.After(to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeStore) LatestBazaarPull(_ context.Context) (market.BazaarPull, bool, error) {
	if f.err != nil {
		return market.BazaarPull{}, false, f.err
	}
	if f.pull == nil {
		return market.BazaarPull{}, false, nil
	}
	return *f.pull, true, nil
}

func (f *fakeStore) BazaarQuotesSince(_ context.Context, productID string, since time.Time) ([]market.BazaarQuote, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []market.BazaarQuote
	if f.pull == nil {
		return out, nil
	}
	for _, q := range f.pull.Quotes {
		if q.ProductID == productID && q.Timestamp.After(since) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeStore) ItemIDsByTags(_ context.Context, tags []string) (map[string]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]int64)
	for _, tag := range tags {
		for _, it := range f.items {
			if it.Tag == tag {
				out[tag] = it.ID
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ItemsByIDs(_ context.Context, ids []int64) (map[int64]market.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]market.Item)
	for _, id := range ids {
		for _, it := range f.items {
			if it.ID == id {
				out[id] = it
			}
		}
	}
	return out, nil
}

// testEngine builds an Engine over the fake with a frozen clock.
func testEngine(f *fakeStore) *Engine {
	e := New(f)
	e.Now = func() time.Time { return f.now }
	return e
}

// binAuction is a fixture helper: an active BIN auction listed 10 minutes ago
// that runs another hour.
func binAuction(id, tag string, price float64, now time.Time) market.AuctionRecord {
	return market.AuctionRecord{
		ID:            id,
		Tag:           tag,
		ItemName:      tag,
		StartingPrice: price,
		BIN:           true,
		Start:         now.Add(-10 * time.Minute),
		End:           now.Add(time.Hour),
		SellerID:      "seller-" + id,
		Tier:          "RARE",
	}
}
