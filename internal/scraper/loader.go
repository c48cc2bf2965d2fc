package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/metrics"
)

// cardPage is the slice of page behavior the scroll loop needs.
type cardPage interface {
	CardCount() (int, error)
	ScrollToBottom() error
}

type playwrightCardPage struct {
	page playwright.Page
}

func (p *playwrightCardPage) CardCount() (int, error) {
	return p.page.Locator(cardSelector).Count()
}

func (p *playwrightCardPage) ScrollToBottom() error {
	_, err := p.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	return err
}

// loadAllCards scrolls the listing until the card count stops growing
// for StableScrolls consecutive attempts, or until the MaxScrolls
// ceiling. Hitting the ceiling is not an error: whatever loaded by
// then is the result.
func (s *MerchantScraper) loadAllCards(ctx context.Context, page cardPage) (int, error) {
	lastCount, err := page.CardCount()
	if err != nil {
		slog.Warn("could not count product cards", "error", err)
		lastCount = 0
	}

	stable := 0
	for attempt := 1; attempt <= s.cfg.MaxScrolls; attempt++ {
		select {
		case <-ctx.Done():
			return lastCount, ctx.Err()
		default:
		}

		if err := page.ScrollToBottom(); err != nil {
			slog.Warn("scroll failed", "attempt", attempt, "error", err)
		}

		time.Sleep(s.cfg.ScrollPause)

		count, err := page.CardCount()
		if err != nil {
			slog.Warn("could not count product cards",
				"attempt", attempt,
				"error", err,
			)
			continue
		}

		if count > lastCount {
			slog.Info("new cards loaded",
				"attempt", attempt,
				"cards", count,
				"new", count-lastCount,
			)
			metrics.ScrollCycles.WithLabelValues("growth").Inc()
			lastCount = count
			stable = 0
			continue
		}

		stable++
		metrics.ScrollCycles.WithLabelValues("stable").Inc()
		slog.Info("no new cards after scroll",
			"attempt", attempt,
			"stable_scrolls", stable,
		)

		if stable >= s.cfg.StableScrolls {
			return lastCount, nil
		}
	}

	slog.Warn("scroll ceiling reached before the listing stabilized",
		"max_scrolls", s.cfg.MaxScrolls,
		"cards", lastCount,
	)
	return lastCount, nil
}
