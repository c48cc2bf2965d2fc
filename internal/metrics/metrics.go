package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scraper
	ProductsScraped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_products_scraped_total",
			Help: "Total number of unique products collected",
		},
		[]string{"merchant"},
	)

	DuplicatesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_duplicates_skipped_total",
			Help: "Total number of duplicate cards dropped",
		},
		[]string{"merchant"},
	)

	CardsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_cards_skipped_total",
			Help: "Total number of cards skipped for missing fields",
		},
		[]string{"reason"},
	)

	ScrollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_scroll_cycles_total",
			Help: "Total number of scroll attempts by outcome",
		},
		[]string{"status"},
	)

	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scraper_run_duration_seconds",
			Help:    "Time taken to scrape a merchant listing",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"merchant"},
	)

	// Consumer
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_messages_processed_total",
			Help: "Total number of messages processed",
		},
		[]string{"status"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consumer_message_processing_duration_seconds",
			Help:    "Time taken to process a message",
			Buckets: prometheus.DefBuckets,
		},
	)

	DatabaseInserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consumer_database_inserts_total",
			Help: "Total number of database inserts by outcome",
		},
		[]string{"status"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "consumer_queue_depth",
			Help: "Current depth of RabbitMQ queue",
		},
	)
)

func StartMetricsServer(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}
