package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrAPIKeyNotSet) {
		t.Fatalf("expected ErrAPIKeyNotSet, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	for _, k := range []string{"FIREBASE_API_KEY", "CHANNEL_ID", "CLIENT_SECRET_FILE", "SESSION_FILE", "PLAYER_ADDR", "CALLBACK_ADDR", "LOG_DIR", "CATALOG_CACHE_TTL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChannelID != DefaultChannelID {
		t.Errorf("expected default channel, got %q", cfg.ChannelID)
	}
	if cfg.PlayerURL() != "http://localhost:8090/" {
		t.Errorf("unexpected player url %q", cfg.PlayerURL())
	}
	if cfg.CallbackURL() != "http://localhost:8080" {
		t.Errorf("unexpected callback url %q", cfg.CallbackURL())
	}
	if cfg.PasswordSignInEnabled() {
		t.Error("password sign-in must be disabled without FIREBASE_API_KEY")
	}
	if cfg.CatalogCacheTTL != 0 {
		t.Errorf("cache must be disabled by default, got %v", cfg.CatalogCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("FIREBASE_API_KEY", "fb-key")
	t.Setenv("CHANNEL_ID", "UC123")
	t.Setenv("CATALOG_CACHE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChannelID != "UC123" || cfg.IdentityAPIKey != "fb-key" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %v", cfg.CatalogCacheTTL)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("CATALOG_CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid ttl")
	}
}

func TestLoadLocalWithoutAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("SESSION_FILE", "/tmp/motivation-session.json")

	cfg, err := LoadLocal()
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.SessionFile != "/tmp/motivation-session.json" {
		t.Errorf("unexpected session file %q", cfg.SessionFile)
	}
}
