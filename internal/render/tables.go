// Package render prints ranked scan results as console tables.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"ah-flipper/internal/engine"
	"ah-flipper/internal/market"
)

// Console renders results to a writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) empty(what string) {
	fmt.Fprintf(c.out, "[%s] no %s found\n", time.Now().Format("15:04:05"), what)
}

// Flips prints ranked flip opportunities.
func (c *Console) Flips(flips []engine.FlipOpportunity) {
	if len(flips) == 0 {
		c.empty("flips")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Tag", "Buy", "Reference", "Profit", "Profit%", "Tier", "Ends")
	for i, f := range flips {
		table.Append(
			fmt.Sprintf("%d", i+1),
			f.ItemName,
			f.Tag,
			fmt.Sprintf("%.0f", f.BuyPrice),
			fmt.Sprintf("%.0f", f.ReferencePrice),
			fmt.Sprintf("%.0f", f.Profit),
			fmt.Sprintf("%.1f", f.ProfitPercent),
			f.Tier,
			f.EndsAt.Format("15:04"),
		)
	}
	table.Render()
}

// Underpriced prints underpriced listings for one item, cheapest first.
func (c *Console) Underpriced(auctions []engine.UnderpricedAuction) {
	if len(auctions) == 0 {
		c.empty("underpriced listings")
		return
	}
	// The detector leaves ordering to the caller; cheapest first reads best.
	sorted := make([]engine.UnderpricedAuction, len(auctions))
	copy(sorted, auctions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Price", "Sample mean", "Discount%", "Seller", "Ends")
	for i, a := range sorted {
		table.Append(
			fmt.Sprintf("%d", i+1),
			a.ItemName,
			fmt.Sprintf("%.0f", a.Price),
			fmt.Sprintf("%.0f", a.SampleMean),
			fmt.Sprintf("%.1f", a.DiscountPercent),
			a.SellerID,
			a.EndsAt.Format("15:04"),
		)
	}
	table.Render()
}

// Snipes prints ranked snipe opportunities.
func (c *Console) Snipes(snipes []engine.SnipeOpportunity) {
	if len(snipes) == 0 {
		c.empty("snipes")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Price", "Average", "Discount%", "Listed")
	for i, s := range snipes {
		table.Append(
			fmt.Sprintf("%d", i+1),
			s.ItemName,
			fmt.Sprintf("%.0f", s.Price),
			fmt.Sprintf("%.0f", s.AveragePrice),
			fmt.Sprintf("%.1f", s.DiscountPercent),
			s.ListedAt.Format("15:04:05"),
		)
	}
	table.Render()
}

// Trends prints ranked day-over-day price trends.
func (c *Console) Trends(trends []engine.PriceTrend) {
	if len(trends) == 0 {
		c.empty("trends")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Tag", "Yesterday", "Today", "Change%")
	for i, tr := range trends {
		table.Append(
			fmt.Sprintf("%d", i+1),
			tr.ItemName,
			tr.Tag,
			fmt.Sprintf("%.1f", tr.YesterdayAvg),
			fmt.Sprintf("%.1f", tr.TodayAvg),
			fmt.Sprintf("%+.1f", tr.ChangePercent),
		)
	}
	table.Render()
}

// Margins prints ranked bazaar margins.
func (c *Console) Margins(margins []engine.BazaarMargin) {
	if len(margins) == 0 {
		c.empty("margins")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Product", "Buy", "Sell", "Margin", "Margin%")
	for i, m := range margins {
		table.Append(
			fmt.Sprintf("%d", i+1),
			m.ProductID,
			fmt.Sprintf("%.1f", m.BuyPrice),
			fmt.Sprintf("%.1f", m.SellPrice),
			fmt.Sprintf("%.1f", m.Margin),
			fmt.Sprintf("%.1f", m.MarginPercent),
		)
	}
	table.Render()
}

// PriceHistory prints an item's windowed price points.
func (c *Console) PriceHistory(points []market.PricePoint) {
	if len(points) == 0 {
		c.empty("price points")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Avg", "Min", "Max", "Volume")
	for _, p := range points {
		table.Append(
			p.Timestamp.Format("01-02 15:04"),
			fmt.Sprintf("%.1f", p.Avg),
			fmt.Sprintf("%.1f", p.Min),
			fmt.Sprintf("%.1f", p.Max),
			fmt.Sprintf("%d", p.Volume),
		)
	}
	table.Render()
}

// BazaarHistory prints a product's windowed quotes.
func (c *Console) BazaarHistory(quotes []market.BazaarQuote) {
	if len(quotes) == 0 {
		c.empty("quotes")
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Buy", "Sell", "Buy vol", "Sell vol")
	for _, q := range quotes {
		table.Append(
			q.Timestamp.Format("01-02 15:04"),
			fmt.Sprintf("%.1f", q.BuyPrice),
			fmt.Sprintf("%.1f", q.SellPrice),
			fmt.Sprintf("%d", q.BuyVolume),
			fmt.Sprintf("%d", q.SellVolume),
		)
	}
	table.Render()
}
