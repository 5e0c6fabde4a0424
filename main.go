package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"ah-flipper/internal/config"
	"ah-flipper/internal/engine"
	"ah-flipper/internal/logger"
	"ah-flipper/internal/render"
	"ah-flipper/internal/store"
)

var version = "dev"

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "path to config file")
		mode         = flag.String("mode", "flips", "scan mode: flips|underpriced|snipes|trends|margins|history|bazaar|all")
		tag          = flag.String("tag", "", "item tag (underpriced mode)")
		percentBelow = flag.Float64("percent-below", 20, "underpriced threshold percent below sample mean")
		minProfit    = flag.Float64("min-profit", 0, "minimum absolute flip profit")
		minPercent   = flag.Float64("min-percent", 0, "minimum flip profit percent")
		maxAge       = flag.Int("max-age", 30, "snipe listing window in minutes")
		direction    = flag.String("direction", "up", "trend direction: down = ascending, anything else = descending")
		limit        = flag.Int("limit", 20, "maximum results")
		itemID       = flag.Int64("item", 0, "item id (history mode)")
		productID    = flag.String("product", "", "bazaar product id (bazaar mode)")
		days         = flag.Int("days", 7, "item history lookback in days")
		hours        = flag.Int("hours", 24, "bazaar history lookback in hours")
	)
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Config", err.Error())
		os.Exit(1)
	}
	if !cfg.Log.Debug {
		log.SetOutput(io.Discard)
	}

	db, err := store.Open(cfg.Store.DSN)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open market database: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	eng := engine.New(store.WithPullCache(db, cfg.PullCacheTTL()))
	eng.Limits = cfg.Limits()

	out := render.NewConsole(os.Stdout)
	ctx := context.Background()

	run := func(m string) error {
		switch m {
		case "flips":
			flips, err := eng.FindFlips(ctx, engine.FlipParams{
				MinProfit:        *minProfit,
				MinProfitPercent: *minPercent,
				Limit:            *limit,
			})
			if err != nil {
				return err
			}
			out.Flips(flips)
		case "underpriced":
			auctions, err := eng.FindUnderpriced(ctx, *tag, *percentBelow)
			if err != nil {
				return err
			}
			out.Underpriced(auctions)
		case "snipes":
			snipes, err := eng.FindSnipes(ctx, engine.SnipeParams{MaxAgeMinutes: *maxAge, Limit: *limit})
			if err != nil {
				return err
			}
			out.Snipes(snipes)
		case "trends":
			trends, err := eng.Trends(ctx, *direction, *limit)
			if err != nil {
				return err
			}
			out.Trends(trends)
		case "margins":
			margins, err := eng.BazaarMargins(ctx, *limit)
			if err != nil {
				return err
			}
			out.Margins(margins)
		case "history":
			points, err := eng.ItemPriceHistory(ctx, *itemID, *days)
			if err != nil {
				return err
			}
			out.PriceHistory(points)
		case "bazaar":
			quotes, err := eng.BazaarHistory(ctx, *productID, *hours)
			if err != nil {
				return err
			}
			out.BazaarHistory(quotes)
		default:
			return fmt.Errorf("unknown mode %q", m)
		}
		return nil
	}

	if *mode == "all" {
		// Detectors are read-only over independent snapshots, so the full
		// sweep can fan out. Results are collected per mode and rendered
		// sequentially to keep the tables readable.
		modes := []string{"flips", "snipes", "trends", "margins"}
		g, gctx := errgroup.WithContext(ctx)

		flipsCh := make(chan []engine.FlipOpportunity, 1)
		snipesCh := make(chan []engine.SnipeOpportunity, 1)
		trendsCh := make(chan []engine.PriceTrend, 1)
		marginsCh := make(chan []engine.BazaarMargin, 1)

		g.Go(func() error {
			flips, err := eng.FindFlips(gctx, engine.FlipParams{
				MinProfit: *minProfit, MinProfitPercent: *minPercent, Limit: *limit,
			})
			flipsCh <- flips
			return err
		})
		g.Go(func() error {
			snipes, err := eng.FindSnipes(gctx, engine.SnipeParams{MaxAgeMinutes: *maxAge, Limit: *limit})
			snipesCh <- snipes
			return err
		})
		g.Go(func() error {
			trends, err := eng.Trends(gctx, *direction, *limit)
			trendsCh <- trends
			return err
		})
		g.Go(func() error {
			margins, err := eng.BazaarMargins(gctx, *limit)
			marginsCh <- margins
			return err
		})

		if err := g.Wait(); err != nil {
			logger.Error("Scan", err.Error())
			os.Exit(1)
		}
		for i, section := range []func(){
			func() { out.Flips(<-flipsCh) },
			func() { out.Snipes(<-snipesCh) },
			func() { out.Trends(<-trendsCh) },
			func() { out.Margins(<-marginsCh) },
		} {
			logger.Section(modes[i])
			section()
		}
		return
	}

	if err := run(*mode); err != nil {
		logger.Error("Scan", err.Error())
		os.Exit(1)
	}
}
