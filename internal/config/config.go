package config

import "time"

type Config struct {
	MerchantID     string
	BaseSearchURL  string
	Headless       bool
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	NavTimeout     time.Duration
	InitialWait    time.Duration
	ScrollPause    time.Duration
	StableScrolls  int
	MaxScrolls     int
	RunTimeout     time.Duration
	OutputDir      string
	OutputFormat   string
}

func NewDefault() *Config {
	return &Config{
		// The single "%" before the merchant ID is intentional, the
		// listing answers to exactly this form.
		BaseSearchURL:  "https://kaspi.kz/shop/search?redirect=listing&q=%3AallMerchants%",
		Headless:       false,
		UserAgent:      "Mozilla/5.0 (Linux; Android 10; Mobile; rv:89.0) Gecko/89.0 Firefox/89.0",
		ViewportWidth:  360,
		ViewportHeight: 640,
		NavTimeout:     30 * time.Second,
		InitialWait:    10 * time.Second,
		ScrollPause:    1500 * time.Millisecond,
		StableScrolls:  3,
		MaxScrolls:     120,
		RunTimeout:     10 * time.Minute,
		OutputDir:      ".",
		OutputFormat:   "xlsx",
	}
}

// SearchURL is the merchant's full listing URL.
func (c *Config) SearchURL() string {
	return c.BaseSearchURL + c.MerchantID
}
