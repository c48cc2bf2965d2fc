package scraper

import (
	"context"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/domain"
)

type Scraper interface {
	Scrape(ctx context.Context) ([]domain.ProductRecord, error)
}
