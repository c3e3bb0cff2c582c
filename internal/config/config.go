package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/surfaumaroc/surfcast/internal/news"
)

// AppConfig carries everything injected at process start. Secrets come from
// the environment only; there are no compiled-in keys.
type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound provider call. A timed-out call
	// falls back to synthetic data rather than retrying.
	HTTPTimeout time.Duration

	// RefreshInterval controls the background condition refresh job.
	RefreshInterval time.Duration

	// Snapshot cache freshness for on-demand requests.
	SnapshotMaxAge time.Duration

	// In-memory store retention.
	StoreMaxHistory int
	StoreMaxAge     time.Duration

	// Provider endpoints, overridable for testing.
	WeatherBaseURL string
	MarineBaseURL  string

	// External service keys. All optional; the features degrade or disable.
	YouTubeAPIKey  string
	ResendAPIKey   string
	GeocoderAPIKey string

	// Contact notification addressing.
	ContactSender   string
	ContactReceiver string

	// News aggregation.
	NewsSources  []news.Source
	NewsCacheTTL time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:            getenvDefault("PORT", "8080"),
		WeatherBaseURL:  os.Getenv("OPENMETEO_BASE_URL"),
		MarineBaseURL:   os.Getenv("OPENMETEO_MARINE_BASE_URL"),
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		GeocoderAPIKey:  os.Getenv("GOOGLE_GEOCODER_API_KEY"),
		ContactSender:   getenvDefault("CONTACT_SENDER", "Contact Form <onboarding@resend.dev>"),
		ContactReceiver: os.Getenv("CONTACT_RECEIVER"),
		StoreMaxHistory: getenvInt("STORE_MAX_HISTORY", 96), // roughly 24h at 15-minute intervals
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.SnapshotMaxAge, err = getenvDuration("SNAPSHOT_MAX_AGE", "15m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.NewsCacheTTL, err = getenvDuration("NEWS_CACHE_TTL", "30m"); err != nil {
		return nil, err
	}

	cfg.NewsSources, err = loadNewsSources()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultNewsSources are the feeds the site has always aggregated.
var defaultNewsSources = []news.Source{
	{Name: "Surfline", URL: "https://feeds.feedburner.com/surfline/news"},
	{Name: "Surfer Magazine", URL: "https://www.surfer.com/feeds/all/"},
	{Name: "The Inertia", URL: "https://www.theinertia.com/feed/"},
}

// loadNewsSources parses NEWS_FEEDS as comma-separated "Name=URL" pairs,
// falling back to the built-in feed list.
func loadNewsSources() ([]news.Source, error) {
	raw := os.Getenv("NEWS_FEEDS")
	if raw == "" {
		return defaultNewsSources, nil
	}

	var sources []news.Source
	for _, pair := range strings.Split(raw, ",") {
		name, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("invalid NEWS_FEEDS entry %q; expected Name=URL", pair)
		}
		sources = append(sources, news.Source{Name: name, URL: url})
	}
	return sources, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
