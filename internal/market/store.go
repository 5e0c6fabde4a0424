package market

import (
	"context"
	"time"
)

// AuctionFilters narrows an AuctionsByTag read.
type AuctionFilters struct {
	BINOnly     bool
	ListedAfter time.Time // zero = no lower bound on listing time
}

// DataStore is the read boundary to the external market database. All reads
// return bounded, materialized snapshots; the core never retains references
// across calls. Implementations must honor ctx cancellation on the read
// itself — a computation that already holds its sample always completes.
type DataStore interface {
	// ActiveBINAuctions returns up to limit active fixed-price auctions
	// ordered ascending by starting price. tag "" means all items.
	ActiveBINAuctions(ctx context.Context, tag string, limit int) ([]AuctionRecord, error)

	// AuctionsByTag returns up to limit active auctions for one item tag.
	AuctionsByTag(ctx context.Context, tag string, f AuctionFilters, limit int) ([]AuctionRecord, error)

	// RecentBINAuctions returns up to limit active fixed-price auctions
	// listed strictly after since, ordered ascending by starting price.
	RecentBINAuctions(ctx context.Context, since time.Time, limit int) ([]AuctionRecord, error)

	// LatestPricePoint returns the most recent price point for an item, or
	// ok=false when the item has none.
	LatestPricePoint(ctx context.Context, itemID int64) (PricePoint, bool, error)

	// PricePointsSince returns price points for one item with timestamp
	// strictly greater than since, ascending.
	PricePointsSince(ctx context.Context, itemID int64, since time.Time) ([]PricePoint, error)

	// PricePointsBetween returns price points for all items with
	// from < timestamp <= to, ascending.
	PricePointsBetween(ctx context.Context, from, to time.Time) ([]PricePoint, error)

	// LatestBazaarPull returns the most recent bazaar snapshot, or ok=false
	// when no pull exists yet.
	LatestBazaarPull(ctx context.Context) (BazaarPull, bool, error)

	// BazaarQuotesSince returns quotes for one product with timestamp
	// strictly greater than since, ascending.
	BazaarQuotesSince(ctx context.Context, productID string, since time.Time) ([]BazaarQuote, error)

	// ItemIDsByTags resolves item tags to item ids. Unknown tags are absent
	// from the result map.
	ItemIDsByTags(ctx context.Context, tags []string) (map[string]int64, error)

	// ItemsByIDs resolves item ids to items. Unknown ids are absent from the
	// result map.
	ItemsByIDs(ctx context.Context, ids []int64) (map[int64]Item, error)
}
