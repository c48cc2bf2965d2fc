package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/config"
)

// fakeCardPage replays a scripted sequence of card counts; the last
// count repeats once the script runs out.
type fakeCardPage struct {
	counts  []int
	calls   int
	scrolls int
}

func (f *fakeCardPage) CardCount() (int, error) {
	i := f.calls
	if i >= len(f.counts) {
		i = len(f.counts) - 1
	}
	f.calls++
	return f.counts[i], nil
}

func (f *fakeCardPage) ScrollToBottom() error {
	f.scrolls++
	return nil
}

// growingCardPage never stabilizes.
type growingCardPage struct {
	count   int
	scrolls int
}

func (g *growingCardPage) CardCount() (int, error) {
	g.count += 10
	return g.count, nil
}

func (g *growingCardPage) ScrollToBottom() error {
	g.scrolls++
	return nil
}

func newLoaderScraper(stableScrolls, maxScrolls int) *MerchantScraper {
	cfg := config.NewDefault()
	cfg.MerchantID = "1"
	cfg.ScrollPause = time.Millisecond
	cfg.StableScrolls = stableScrolls
	cfg.MaxScrolls = maxScrolls
	return NewMerchantScraper(cfg)
}

func TestLoadAllCardsStabilizes(t *testing.T) {
	s := newLoaderScraper(3, 50)
	page := &fakeCardPage{counts: []int{12, 24, 36}}

	got, err := s.loadAllCards(context.Background(), page)
	if err != nil {
		t.Fatalf("loadAllCards() error = %v", err)
	}
	if got != 36 {
		t.Errorf("loadAllCards() = %d cards, want 36", got)
	}
	// two growth scrolls plus three flat ones
	if page.scrolls != 5 {
		t.Errorf("loadAllCards() scrolled %d times, want 5", page.scrolls)
	}
}

func TestLoadAllCardsHitsCeiling(t *testing.T) {
	s := newLoaderScraper(3, 7)
	page := &growingCardPage{}

	got, err := s.loadAllCards(context.Background(), page)
	if err != nil {
		t.Fatalf("loadAllCards() on a never-stable page error = %v, want nil", err)
	}
	if page.scrolls != 7 {
		t.Errorf("loadAllCards() scrolled %d times, want the ceiling of 7", page.scrolls)
	}
	if got == 0 {
		t.Error("loadAllCards() = 0 cards, want the partial count")
	}
}

func TestLoadAllCardsEmptyListing(t *testing.T) {
	s := newLoaderScraper(3, 50)
	page := &fakeCardPage{counts: []int{0}}

	got, err := s.loadAllCards(context.Background(), page)
	if err != nil {
		t.Fatalf("loadAllCards() error = %v", err)
	}
	if got != 0 {
		t.Errorf("loadAllCards() = %d cards, want 0", got)
	}
	if page.scrolls != 3 {
		t.Errorf("loadAllCards() scrolled %d times, want 3", page.scrolls)
	}
}

func TestLoadAllCardsCanceledContext(t *testing.T) {
	s := newLoaderScraper(3, 50)
	page := &fakeCardPage{counts: []int{12}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := s.loadAllCards(ctx, page)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("loadAllCards() error = %v, want context.Canceled", err)
	}
	if got != 12 {
		t.Errorf("loadAllCards() = %d cards, want the count seen before cancel", got)
	}
	if page.scrolls != 0 {
		t.Errorf("loadAllCards() scrolled %d times after cancel, want 0", page.scrolls)
	}
}
