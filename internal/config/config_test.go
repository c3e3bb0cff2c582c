package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Port)
	}
	if cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("refresh interval = %s, want 15m", cfg.RefreshInterval)
	}
	if cfg.StoreMaxHistory != 96 {
		t.Errorf("store max history = %d, want 96", cfg.StoreMaxHistory)
	}
	if len(cfg.NewsSources) != 3 {
		t.Errorf("default news sources = %d, want 3", len(cfg.NewsSources))
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAPSHOT_MAX_AGE", "5m")
	t.Setenv("NEWS_FEEDS", "Feed A=https://a.example.com/rss, Feed B=https://b.example.com/rss")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Port)
	}
	if cfg.SnapshotMaxAge != 5*time.Minute {
		t.Errorf("snapshot max age = %s, want 5m", cfg.SnapshotMaxAge)
	}
	if len(cfg.NewsSources) != 2 || cfg.NewsSources[0].Name != "Feed A" {
		t.Errorf("NEWS_FEEDS not parsed: %+v", cfg.NewsSources)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("invalid duration accepted")
	}
	t.Setenv("HTTP_TIMEOUT", "8s")

	t.Setenv("NEWS_FEEDS", "no-url-here")
	if _, err := Load(); err == nil {
		t.Error("malformed NEWS_FEEDS accepted")
	}
}
