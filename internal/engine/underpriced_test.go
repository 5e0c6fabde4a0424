package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ah-flipper/internal/market"
)

func TestFindUnderpriced_MeanThreshold(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := &fakeStore{
		now: now,
		auctions: []market.AuctionRecord{
			binAuction("a1", "PEARL", 100, now),
			binAuction("a2", "PEARL", 100, now),
			binAuction("a3", "PEARL", 100, now),
			binAuction("a4", "PEARL", 40, now),
		},
	}
	e := testEngine(f)

	// mean = 85, threshold = 85 * 0.8 = 68 → only the 40 listing qualifies.
	got, err := e.FindUnderpriced(context.Background(), "PEARL", 20)
	if err != nil {
		t.Fatalf("FindUnderpriced: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d auctions, want 1", len(got))
	}
	if got[0].Price != 40 {
		t.Errorf("Price = %v, want 40", got[0].Price)
	}
	if math.Abs(got[0].SampleMean-85) > 1e-9 {
		t.Errorf("SampleMean = %v, want 85", got[0].SampleMean)
	}
	wantDiscount := (85.0 - 40.0) / 85.0 * 100 // ≈52.94
	if math.Abs(got[0].DiscountPercent-wantDiscount) > 1e-9 {
		t.Errorf("DiscountPercent = %v, want %v", got[0].DiscountPercent, wantDiscount)
	}
}

func TestFindUnderpriced_ThresholdIsStrict(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := &fakeStore{
		now: now,
		auctions: []market.AuctionRecord{
			binAuction("a1", "PEARL", 100, now),
			binAuction("a2", "PEARL", 100, now),
		},
	}
	e := testEngine(f)

	// mean = 100, percentBelow = 0 → threshold = 100; nothing is strictly below.
	got, err := e.FindUnderpriced(context.Background(), "PEARL", 0)
	if err != nil {
		t.Fatalf("FindUnderpriced: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d auctions, want 0 (price == threshold excluded)", len(got))
	}
}

func TestFindUnderpriced_PercentBelowClamped(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := &fakeStore{
		now: now,
		auctions: []market.AuctionRecord{
			binAuction("a1", "PEARL", 100, now),
			binAuction("a2", "PEARL", 50, now),
		},
	}
	e := testEngine(f)

	// 250 clamps to 100 → threshold 0 → nothing strictly below.
	got, err := e.FindUnderpriced(context.Background(), "PEARL", 250)
	if err != nil {
		t.Fatalf("percentBelow=250: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("percentBelow=250: got %d, want 0", len(got))
	}

	// Negative clamps to 0 and behaves like 0, not an error.
	if _, err := e.FindUnderpriced(context.Background(), "PEARL", -10); err != nil {
		t.Errorf("percentBelow=-10: %v, want nil", err)
	}
}

func TestFindUnderpriced_EmptySampleIsNotFound(t *testing.T) {
	e := testEngine(&fakeStore{now: time.Now()})

	_, err := e.FindUnderpriced(context.Background(), "UNKNOWN_TAG", 20)
	if !errors.Is(err, market.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindUnderpriced_BlankTagIsInvalid(t *testing.T) {
	e := testEngine(&fakeStore{now: time.Now()})

	for _, tag := range []string{"", "   "} {
		if _, err := e.FindUnderpriced(context.Background(), tag, 20); !errors.Is(err, market.ErrInvalidArgument) {
			t.Errorf("tag %q: err = %v, want ErrInvalidArgument", tag, err)
		}
	}
}

func TestFindUnderpriced_IgnoresBidAuctions(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	bid := binAuction("b1", "PEARL", 1, now)
	bid.BIN = false
	f := &fakeStore{
		now: now,
		auctions: []market.AuctionRecord{
			bid,
			binAuction("a1", "PEARL", 100, now),
			binAuction("a2", "PEARL", 40, now),
		},
	}
	e := testEngine(f)

	got, err := e.FindUnderpriced(context.Background(), "PEARL", 20)
	if err != nil {
		t.Fatalf("FindUnderpriced: %v", err)
	}
	// mean over BIN only = 70, threshold 56 → only the 40 listing.
	if len(got) != 1 || got[0].Price != 40 {
		t.Fatalf("got %+v, want single 40-priced auction", got)
	}
}
