package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/config"
	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/domain"
	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/metrics"
)

const (
	cardSelector    = ".list-product-card"
	titleSelector   = ".product-card-header__title"
	priceSelector   = ".product-card-price__origin"
	reviewsSelector = ".product-card-rating__reviews-quantity"

	siteBaseURL = "https://kaspi.kz"
)

type MerchantScraper struct {
	cfg  *config.Config
	seen map[string]bool
}

var _ Scraper = (*MerchantScraper)(nil)

func NewMerchantScraper(cfg *config.Config) *MerchantScraper {
	return &MerchantScraper{
		cfg:  cfg,
		seen: make(map[string]bool),
	}
}

func ScrapeMerchant(ctx context.Context, cfg *config.Config) ([]domain.ProductRecord, error) {
	scraper := NewMerchantScraper(cfg)
	return scraper.Scrape(ctx)
}

// Scrape drives one browser session over the merchant's listing: open
// the page, scroll until no more cards load, then parse the rendered
// HTML in a single pass.
func (s *MerchantScraper) Scrape(ctx context.Context) ([]domain.ProductRecord, error) {
	startTime := time.Now()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer browser.Close()

	// The listing serves its mobile markup, emulate a small phone.
	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(s.cfg.UserAgent),
		Viewport: &playwright.Size{
			Width:  s.cfg.ViewportWidth,
			Height: s.cfg.ViewportHeight,
		},
		IsMobile: playwright.Bool(true),
		HasTouch: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	url := s.cfg.SearchURL()
	slog.Info("opening merchant page", "url", url)

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(s.cfg.NavTimeout.Seconds() * 1000),
	}); err != nil {
		return nil, fmt.Errorf("failed to open merchant page: %w", err)
	}

	slog.Info("waiting for the first product card...")
	if _, err := page.WaitForSelector(cardSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(s.cfg.InitialWait.Seconds() * 1000),
	}); err != nil {
		slog.Warn("no product cards appeared, finishing with no results",
			"merchant_id", s.cfg.MerchantID,
			"error", err,
		)
		return nil, nil
	}

	count, err := s.loadAllCards(ctx, &playwrightCardPage{page: page})
	if err != nil {
		return nil, fmt.Errorf("loading interrupted: %w", err)
	}
	slog.Info("listing stabilized", "cards_loaded", count)

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page content: %w", err)
	}

	records := s.extractRecords(doc)

	metrics.ScrapeDuration.WithLabelValues(s.cfg.MerchantID).Observe(time.Since(startTime).Seconds())

	return records, nil
}

// extractRecords walks every product card in the document, keeping the
// first record per SKU in encounter order.
func (s *MerchantScraper) extractRecords(doc *goquery.Document) []domain.ProductRecord {
	var records []domain.ProductRecord
	duplicates := 0

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		record, ok := s.extractRecord(card)
		if !ok {
			return
		}

		if s.seen[record.UniqueKey()] {
			duplicates++
			metrics.DuplicatesSkipped.WithLabelValues(s.cfg.MerchantID).Inc()
			return
		}
		s.seen[record.UniqueKey()] = true

		records = append(records, record)
		metrics.ProductsScraped.WithLabelValues(s.cfg.MerchantID).Inc()

		slog.Info("product collected",
			"n", len(records),
			"title", record.Title,
			"price", record.Price,
			"reviews", record.Reviews,
		)
	})

	slog.Info("extraction finished",
		"unique", len(records),
		"duplicates", duplicates,
	)

	return records
}

func (s *MerchantScraper) extractRecord(card *goquery.Selection) (domain.ProductRecord, bool) {
	title := strings.TrimSpace(card.Find(titleSelector).First().Text())
	if title == "" {
		slog.Warn("card has no title, skipping")
		metrics.CardsSkipped.WithLabelValues("missing_title").Inc()
		return domain.ProductRecord{}, false
	}

	href, _ := card.Attr("href")
	link := resolveLink(href)
	sku := parseSKU(link)
	if sku == "" {
		slog.Warn("could not extract a valid SKU from link",
			"title", title,
			"link", href,
		)
		metrics.CardsSkipped.WithLabelValues("missing_sku").Inc()
		return domain.ProductRecord{}, false
	}

	price := parsePrice(card.Find(priceSelector).First().Text())
	if price <= 0 {
		slog.Warn("card has no price, skipping",
			"title", title,
			"sku", sku,
		)
		metrics.CardsSkipped.WithLabelValues("missing_price").Inc()
		return domain.ProductRecord{}, false
	}

	reviews := parseReviewCount(card.Find(reviewsSelector).First().Text())

	return domain.ProductRecord{
		Title:      title,
		SKU:        sku,
		Price:      price,
		Link:       link,
		Reviews:    reviews,
		MerchantID: s.cfg.MerchantID,
	}, true
}

// parsePrice keeps only the digits of a price label ("349 990 ₸" ->
// 349990). Returns 0 when the label carries no digits at all.
func parsePrice(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	price, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return price
}

// parseSKU pulls the numeric product code out of a card link: the last
// "-"-separated segment, cut at the first "/". Anything non-numeric
// means the link does not carry a usable SKU.
func parseSKU(link string) string {
	if link == "" {
		return ""
	}

	parts := strings.Split(link, "-")
	sku := strings.Split(parts[len(parts)-1], "/")[0]
	if sku == "" || !isDigits(sku) {
		return ""
	}
	return sku
}

// parseReviewCount reads labels of the form "(12 отзывов)"; absent or
// unreadable labels count as zero reviews.
func parseReviewCount(raw string) int {
	fields := strings.Fields(strings.Trim(strings.TrimSpace(raw), "()"))
	if len(fields) == 0 {
		return 0
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func resolveLink(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return siteBaseURL + href
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
