package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/Zhandos-hub/Kaspi-Merchant-Product-Scraper/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id           BIGSERIAL PRIMARY KEY,
		merchant_id  TEXT NOT NULL,
		sku          TEXT NOT NULL UNIQUE,
		title        TEXT NOT NULL,
		price        BIGINT NOT NULL,
		link         TEXT NOT NULL,
		review_count INT NOT NULL DEFAULT 0,
		scraped_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

func NewProductRepository(databaseURL string) (*ProductRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure products table: %w", err)
	}

	slog.Info("connected to PostgreSQL")

	return &ProductRepository{db: db}, nil
}

// Save inserts a record, keeping the earliest write per SKU. Returns
// whether a new row was actually inserted.
func (r *ProductRepository) Save(ctx context.Context, record domain.ProductRecord) (bool, error) {
	query := `
		INSERT INTO products (merchant_id, sku, title, price, link, review_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sku) DO NOTHING
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		record.MerchantID,
		record.SKU,
		record.Title,
		record.Price,
		record.Link,
		record.Reviews,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	if affected == 0 {
		slog.Debug("record already stored", "sku", record.SKU)
		return false, nil
	}

	slog.Info("record stored",
		"sku", record.SKU,
		"title", record.Title,
		"price", record.Price,
	)

	return true, nil
}

func (r *ProductRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(DISTINCT merchant_id) AS merchants,
			COALESCE(MIN(price), 0) AS min_price,
			COALESCE(MAX(price), 0) AS max_price,
			COALESCE(AVG(price), 0) AS avg_price
		FROM products
	`

	var stats struct {
		Total     int
		Merchants int
		MinPrice  float64
		MaxPrice  float64
		AvgPrice  float64
	}

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Merchants,
		&stats.MinPrice,
		&stats.MaxPrice,
		&stats.AvgPrice,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	return map[string]interface{}{
		"total_products": stats.Total,
		"merchants":      stats.Merchants,
		"min_price":      stats.MinPrice,
		"max_price":      stats.MaxPrice,
		"avg_price":      stats.AvgPrice,
	}, nil
}

func (r *ProductRepository) Close() error {
	return r.db.Close()
}
