package engine

import "time"

// FlipOpportunity is one buy-low/resell-high candidate: the cheapest BIN
// listing of an item group, referenced against the group's mid price.
type FlipOpportunity struct {
	AuctionID      string    `json:"auction_id"`
	Tag            string    `json:"tag"`
	ItemName       string    `json:"item_name"`
	BuyPrice       float64   `json:"buy_price"`
	ReferencePrice float64   `json:"reference_price"`
	Profit         float64   `json:"profit"`
	ProfitPercent  float64   `json:"profit_percent"`
	SellerID       string    `json:"seller_id"`
	EndsAt         time.Time `json:"ends_at"`
	Tier           string    `json:"tier"`
}

// FlipParams holds the input parameters for a flip scan.
type FlipParams struct {
	MinProfit        float64 // minimum absolute profit, >= 0
	MinProfitPercent float64 // minimum profit percent, >= 0
	Limit            int     // 0 = empty result; clamped to MaxFlipResults
}

// UnderpricedAuction is a listing priced below the sampled mean for its item.
type UnderpricedAuction struct {
	AuctionID       string    `json:"auction_id"`
	Tag             string    `json:"tag"`
	ItemName        string    `json:"item_name"`
	Price           float64   `json:"price"`
	SampleMean      float64   `json:"sample_mean"`
	DiscountPercent float64   `json:"discount_percent"`
	SellerID        string    `json:"seller_id"`
	EndsAt          time.Time `json:"ends_at"`
}

// SnipeOpportunity is a freshly listed BIN auction priced well below the
// item's last known average price.
type SnipeOpportunity struct {
	AuctionID       string    `json:"auction_id"`
	Tag             string    `json:"tag"`
	ItemName        string    `json:"item_name"`
	Price           float64   `json:"price"`
	AveragePrice    float64   `json:"average_price"`
	DiscountPercent float64   `json:"discount_percent"`
	ListedAt        time.Time `json:"listed_at"`
	EndsAt          time.Time `json:"ends_at"`
}

// SnipeParams holds the input parameters for a snipe scan.
type SnipeParams struct {
	MaxAgeMinutes int // trailing listing window; clamped to MaxSnipeAge
	Limit         int // clamped to MaxSnipeResults
}

// PriceTrend is one item's day-over-day average price change.
type PriceTrend struct {
	ItemID        int64   `json:"item_id"`
	Tag           string  `json:"tag"`
	ItemName      string  `json:"item_name"`
	YesterdayAvg  float64 `json:"yesterday_avg"`
	TodayAvg      float64 `json:"today_avg"`
	ChangePercent float64 `json:"change_percent"`
}

// BazaarMargin is one bazaar product's buy/sell spread from the latest pull.
type BazaarMargin struct {
	ProductID     string  `json:"product_id"`
	BuyPrice      float64 `json:"buy_price"`
	SellPrice     float64 `json:"sell_price"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"margin_percent"`
}
