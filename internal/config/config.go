package config

import (
	"time"

	"github.com/spycat-agency/service-mission/internal/breed"
	"github.com/spycat-agency/service-mission/internal/common/config"
)

// BreedAPIConfig configures the breed catalogue lookup.
type BreedAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ServiceConfig holds all configuration for the mission service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	KafkaConfig config.KafkaConfig
	BreedAPI    BreedAPIConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load()
	if err != nil {
		return nil, err
	}

	v.SetDefault("BREED_API_URL", breed.DefaultBaseURL)
	v.SetDefault("BREED_API_KEY", "")

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT", ":8000"),
		AppEnv:      config.GetAppEnv(v),
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME", "developsToday"),
		KafkaConfig: config.LoadKafkaConfig(v),
		BreedAPI: BreedAPIConfig{
			BaseURL: v.GetString("BREED_API_URL"),
			APIKey:  v.GetString("BREED_API_KEY"),
			Timeout: config.GetDuration(v, "BREED_API_TIMEOUT", 10*time.Second),
		},
	}, nil
}
