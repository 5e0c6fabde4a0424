// Package store implements the read boundary over the SQLite database the
// ingestion pipeline maintains. The adapter never writes: schema and data are
// owned by the ingestion side.
//
// Expected tables:
//
//	items(id, tag, name, tier, category)
//	auctions(id, tag, item_name, starting_price, highest_bid, bin, start_at, end_at, seller_id, tier)
//	price_points(item_id, ts, avg, min, max, volume)
//	bazaar_pulls(id, ts)
//	bazaar_quotes(pull_id, product_id, buy_price, sell_price, buy_volume,
//	              sell_volume, buy_moving_week, sell_moving_week,
//	              buy_order_count, sell_order_count, ts)
//
// Timestamps are RFC3339 UTC strings, so lexicographic comparison matches
// chronological order.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ah-flipper/internal/logger"
	"ah-flipper/internal/market"
	_ "modernc.org/sqlite"
)

// SQLite is a market.DataStore backed by the ingestion database.
type SQLite struct {
	db *sql.DB
}

// Open opens the market database read path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

const auctionCols = "id, tag, item_name, starting_price, highest_bid, bin, start_at, end_at, seller_id, tier"

func scanAuctions(rows *sql.Rows) ([]market.AuctionRecord, error) {
	var out []market.AuctionRecord
	for rows.Next() {
		var a market.AuctionRecord
		var bin int
		var start, end string
		if err := rows.Scan(&a.ID, &a.Tag, &a.ItemName, &a.StartingPrice, &a.HighestBid,
			&bin, &start, &end, &a.SellerID, &a.Tier); err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		a.ID = market.NormalizeAuctionID(a.ID)
		a.BIN = bin != 0
		a.Start = parseTime(start)
		a.End = parseTime(end)
		out = append(out, a)
	}
	return out, rows.Err()
}

// ActiveBINAuctions implements market.DataStore.
func (s *SQLite) ActiveBINAuctions(ctx context.Context, tag string, limit int) ([]market.AuctionRecord, error) {
	q := "SELECT " + auctionCols + " FROM auctions WHERE bin = 1 AND end_at > ?"
	args := []interface{}{fmtTime(time.Now())}
	if tag != "" {
		q += " AND tag = ?"
		args = append(args, tag)
	}
	q += " ORDER BY starting_price ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query active BIN auctions: %w", err)
	}
	defer rows.Close()
	return scanAuctions(rows)
}

// AuctionsByTag implements market.DataStore.
func (s *SQLite) AuctionsByTag(ctx context.Context, tag string, f market.AuctionFilters, limit int) ([]market.AuctionRecord, error) {
	q := "SELECT " + auctionCols + " FROM auctions WHERE tag = ? AND end_at > ?"
	args := []interface{}{tag, fmtTime(time.Now())}
	if f.BINOnly {
		q += " AND bin = 1"
	}
	if !f.ListedAfter.IsZero() {
		q += " AND start_at > ?"
		args = append(args, fmtTime(f.ListedAfter))
	}
	q += " ORDER BY starting_price ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query auctions for %s: %w", tag, err)
	}
	defer rows.Close()
	return scanAuctions(rows)
}

// RecentBINAuctions implements market.DataStore.
func (s *SQLite) RecentBINAuctions(ctx context.Context, since time.Time, limit int) ([]market.AuctionRecord, error) {
	q := "SELECT " + auctionCols + ` FROM auctions
		WHERE bin = 1 AND end_at > ? AND start_at > ?
		ORDER BY starting_price ASC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, fmtTime(time.Now()), fmtTime(since), limit)
	if err != nil {
		return nil, fmt.Errorf("query recent BIN auctions: %w", err)
	}
	defer rows.Close()
	return scanAuctions(rows)
}

func scanPricePoint(row interface{ Scan(...interface{}) error }) (market.PricePoint, error) {
	var p market.PricePoint
	var ts string
	err := row.Scan(&p.ItemID, &ts, &p.Avg, &p.Min, &p.Max, &p.Volume)
	if err != nil {
		return p, err
	}
	p.Timestamp = parseTime(ts)
	return p, nil
}

// LatestPricePoint implements market.DataStore.
func (s *SQLite) LatestPricePoint(ctx context.Context, itemID int64) (market.PricePoint, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT item_id, ts, avg, min, max, volume FROM price_points
		 WHERE item_id = ? ORDER BY ts DESC LIMIT 1`, itemID)
	p, err := scanPricePoint(row)
	if err == sql.ErrNoRows {
		return market.PricePoint{}, false, nil
	}
	if err != nil {
		return market.PricePoint{}, false, fmt.Errorf("query latest price point: %w", err)
	}
	return p, true, nil
}

func (s *SQLite) queryPricePoints(ctx context.Context, q string, args ...interface{}) ([]market.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query price points: %w", err)
	}
	defer rows.Close()

	var out []market.PricePoint
	for rows.Next() {
		p, err := scanPricePoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PricePointsSince implements market.DataStore.
func (s *SQLite) PricePointsSince(ctx context.Context, itemID int64, since time.Time) ([]market.PricePoint, error) {
	return s.queryPricePoints(ctx,
		`SELECT item_id, ts, avg, min, max, volume FROM price_points
		 WHERE item_id = ? AND ts > ? ORDER BY ts ASC`,
		itemID, fmtTime(since))
}

// PricePointsBetween implements market.DataStore.
func (s *SQLite) PricePointsBetween(ctx context.Context, from, to time.Time) ([]market.PricePoint, error) {
	return s.queryPricePoints(ctx,
		`SELECT item_id, ts, avg, min, max, volume FROM price_points
		 WHERE ts > ? AND ts <= ? ORDER BY ts ASC`,
		fmtTime(from), fmtTime(to))
}

func scanQuotes(rows *sql.Rows) ([]market.BazaarQuote, error) {
	var out []market.BazaarQuote
	for rows.Next() {
		var q market.BazaarQuote
		var ts string
		if err := rows.Scan(&q.ProductID, &q.BuyPrice, &q.SellPrice, &q.BuyVolume, &q.SellVolume,
			&q.BuyMovingWeek, &q.SellMovingWeek, &q.BuyOrderCount, &q.SellOrderCount, &ts); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.Timestamp = parseTime(ts)
		out = append(out, q)
	}
	return out, rows.Err()
}

const quoteCols = `product_id, buy_price, sell_price, buy_volume, sell_volume,
	buy_moving_week, sell_moving_week, buy_order_count, sell_order_count, ts`

// LatestBazaarPull implements market.DataStore.
func (s *SQLite) LatestBazaarPull(ctx context.Context) (market.BazaarPull, bool, error) {
	var pull market.BazaarPull
	var ts string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, ts FROM bazaar_pulls ORDER BY ts DESC LIMIT 1").Scan(&pull.ID, &ts)
	if err == sql.ErrNoRows {
		return market.BazaarPull{}, false, nil
	}
	if err != nil {
		return market.BazaarPull{}, false, fmt.Errorf("query latest pull: %w", err)
	}
	pull.Timestamp = parseTime(ts)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+quoteCols+" FROM bazaar_quotes WHERE pull_id = ? ORDER BY product_id ASC", pull.ID)
	if err != nil {
		return market.BazaarPull{}, false, fmt.Errorf("query pull quotes: %w", err)
	}
	defer rows.Close()

	pull.Quotes, err = scanQuotes(rows)
	if err != nil {
		return market.BazaarPull{}, false, err
	}
	return pull, true, nil
}

// BazaarQuotesSince implements market.DataStore.
func (s *SQLite) BazaarQuotesSince(ctx context.Context, productID string, since time.Time) ([]market.BazaarQuote, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+quoteCols+" FROM bazaar_quotes WHERE product_id = ? AND ts > ? ORDER BY ts ASC",
		productID, fmtTime(since))
	if err != nil {
		return nil, fmt.Errorf("query quotes for %s: %w", productID, err)
	}
	defer rows.Close()
	return scanQuotes(rows)
}

// placeholders builds "?, ?, ?" for an IN clause.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ItemIDsByTags implements market.DataStore.
func (s *SQLite) ItemIDsByTags(ctx context.Context, tags []string) (map[string]int64, error) {
	out := make(map[string]int64, len(tags))
	if len(tags) == 0 {
		return out, nil
	}
	args := make([]interface{}, len(tags))
	for i, t := range tags {
		args[i] = t
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag, id FROM items WHERE tag IN ("+placeholders(len(tags))+")", args...)
	if err != nil {
		return nil, fmt.Errorf("resolve item ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag string
		var id int64
		if err := rows.Scan(&tag, &id); err != nil {
			return nil, fmt.Errorf("scan item id: %w", err)
		}
		out[tag] = id
	}
	return out, rows.Err()
}

// ItemsByIDs implements market.DataStore.
func (s *SQLite) ItemsByIDs(ctx context.Context, ids []int64) (map[int64]market.Item, error) {
	out := make(map[int64]market.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tag, name, tier, category FROM items WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, fmt.Errorf("resolve items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it market.Item
		if err := rows.Scan(&it.ID, &it.Tag, &it.Name, &it.Tier, &it.Category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}
