package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultChannelID    = "UCPXRHu3iYggeluGLgz4QTOQ"
	DefaultPlayerAddr   = "localhost:8090"
	DefaultCallbackAddr = "localhost:8080"
	DefaultLogDir       = "logs"
	DefaultSessionFile  = "session.json"
	DefaultClientSecret = "client_secret.json"

	// PageSize is the number of search results requested per catalog load.
	PageSize int64 = 50
)

// Config holds all configuration for the application
type Config struct {
	YoutubeAPIKey    string
	IdentityAPIKey   string
	ChannelID        string
	ClientSecretFile string
	SessionFile      string
	PlayerAddr       string
	CallbackAddr     string
	LogDir           string
	CatalogCacheTTL  time.Duration
}

// ErrAPIKeyNotSet is returned when YOUTUBE_API_KEY is not set
var ErrAPIKeyNotSet = errors.New("YOUTUBE_API_KEY environment variable not set")

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load(true)
}

// LoadLocal is Load for commands that never call YouTube; the API key may be
// missing.
func LoadLocal() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" && requireAPIKey {
		return nil, ErrAPIKeyNotSet
	}

	var ttl time.Duration
	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}

	return &Config{
		YoutubeAPIKey:    apiKey,
		IdentityAPIKey:   os.Getenv("FIREBASE_API_KEY"),
		ChannelID:        getenv("CHANNEL_ID", DefaultChannelID),
		ClientSecretFile: getenv("CLIENT_SECRET_FILE", DefaultClientSecret),
		SessionFile:      getenv("SESSION_FILE", DefaultSessionFile),
		PlayerAddr:       getenv("PLAYER_ADDR", DefaultPlayerAddr),
		CallbackAddr:     getenv("CALLBACK_ADDR", DefaultCallbackAddr),
		LogDir:           getenv("LOG_DIR", DefaultLogDir),
		CatalogCacheTTL:  ttl,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// PasswordSignInEnabled reports whether an identity API key was configured.
func (c *Config) PasswordSignInEnabled() bool {
	return c.IdentityAPIKey != ""
}

// PlayerURL is the address the browser should open for the player page.
func (c *Config) PlayerURL() string {
	return "http://" + c.PlayerAddr + "/"
}

// CallbackURL is the OAuth redirect URL served by the callback server.
func (c *Config) CallbackURL() string {
	return "http://" + c.CallbackAddr
}
