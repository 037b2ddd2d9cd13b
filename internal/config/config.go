package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	LogMode    string `envconfig:"LOG_MODE" default:"development"`

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" required:"true"`
		Origin  string        `envconfig:"API_ORIGIN" required:"true"`
		Token   string        `envconfig:"API_TOKEN"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	}

	Precache struct {
		Path         string `envconfig:"PRECACHE_PATH" default:"familyshop-assets.db"`
		ManifestPath string `envconfig:"PRECACHE_MANIFEST" default:"/precache-manifest.json"`
		SyncSpec     string `envconfig:"PRECACHE_SYNC_SPEC" default:"@every 30m"`
	}

	Push struct {
		Brokers []string `envconfig:"PUSH_BROKERS"`
		Topic   string   `envconfig:"PUSH_TOPIC" default:"push_notifications"`
		GroupID string   `envconfig:"PUSH_GROUP_ID" default:"family-shell"`
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
