package market

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuctionRecord is a single auction house listing as held by the Data Store.
// Records are created and updated by the ingestion pipeline; this core only
// reads them.
type AuctionRecord struct {
	ID            string    `json:"id"` // auction UUID (stored dashless)
	Tag           string    `json:"tag"`
	ItemName      string    `json:"item_name"`
	StartingPrice float64   `json:"starting_price"`
	HighestBid    float64   `json:"highest_bid"`
	BIN           bool      `json:"bin"` // fixed-price (buy-it-now) vs bid auction
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	SellerID      string    `json:"seller_id"`
	Tier          string    `json:"tier"`
}

// Active reports whether the auction is still open at the given instant.
func (a AuctionRecord) Active(now time.Time) bool {
	return a.End.After(now)
}

// PricePoint is one sampling interval of aggregated trade data for an item.
// Append-only, produced by an external aggregation job.
type PricePoint struct {
	ItemID    int64     `json:"item_id"`
	Timestamp time.Time `json:"timestamp"`
	Avg       float64   `json:"avg"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Volume    int64     `json:"volume"`
}

// BazaarQuote is a single product's order book summary within a pull.
type BazaarQuote struct {
	ProductID      string    `json:"product_id"`
	BuyPrice       float64   `json:"buy_price"`
	SellPrice      float64   `json:"sell_price"`
	BuyVolume      int64     `json:"buy_volume"`
	SellVolume     int64     `json:"sell_volume"`
	BuyMovingWeek  int64     `json:"buy_moving_week"`
	SellMovingWeek int64     `json:"sell_moving_week"`
	BuyOrderCount  int       `json:"buy_order_count"`
	SellOrderCount int       `json:"sell_order_count"`
	Timestamp      time.Time `json:"timestamp"`
}

// BazaarPull is an atomic, timestamped bazaar snapshot: at most one quote per
// product id. Immutable once created.
type BazaarPull struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Quotes    []BazaarQuote `json:"quotes"`
}

// Item maps a stable tag to display metadata. Referenced by tag from auctions
// and by id from price points.
type Item struct {
	ID       int64  `json:"id"`
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Tier     string `json:"tier"`
	Category string `json:"category"`
}

// NormalizeAuctionID canonicalizes an auction UUID to the dashless lowercase
// form the ingestion pipeline stores. Returns the input unchanged if it does
// not parse as a UUID.
func NormalizeAuctionID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return strings.ReplaceAll(u.String(), "-", "")
}
