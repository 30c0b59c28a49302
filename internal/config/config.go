package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Microsoft Graph app credentials (client-credentials flow)
	GraphTenantID     string `envconfig:"GRAPH_TENANT_ID"`
	GraphClientID     string `envconfig:"GRAPH_CLIENT_ID"`
	GraphClientSecret string `envconfig:"GRAPH_CLIENT_SECRET"`
	GraphBaseURL      string `envconfig:"GRAPH_BASE_URL"`

	// ServiceKey guards the API when set
	ServiceKey string `envconfig:"SERVICE_KEY"`

	ProviderTimeout   time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
	TeamsCacheTTL     time.Duration `envconfig:"TEAMS_CACHE_TTL" default:"60s"`
	DictionaryPath    string        `envconfig:"DICTIONARY_PATH"`
	SearchLogMaxAge   time.Duration `envconfig:"SEARCH_LOG_MAX_AGE" default:"720h"`
	RetentionInterval time.Duration `envconfig:"RETENTION_INTERVAL" default:"1h"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("WORKSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasGraph() bool {
	return c.GraphTenantID != "" && c.GraphClientID != "" && c.GraphClientSecret != ""
}
