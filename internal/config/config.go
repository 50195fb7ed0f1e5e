package config

import (
	platformConfig "github.com/shareit/service-shareit/internal/platform/config"
	"github.com/shareit/service-shareit/internal/events"
)

const envPrefix = "SHAREIT"

// ServiceConfig holds all configuration for the sharing service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    platformConfig.DatabaseConfig
	KafkaConfig platformConfig.KafkaConfig
}

// Load reads configuration from SHAREIT_* environment variables and an optional config.yaml.
func Load() (*ServiceConfig, error) {
	v, err := platformConfig.Load(envPrefix)
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "shareit")
	v.SetDefault("KAFKA_TOPIC_BOOKINGS", events.TopicBookingEvents)

	return &ServiceConfig{
		Port:        platformConfig.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      platformConfig.GetAppEnv(v),
		DBConfig:    platformConfig.LoadDatabaseConfig(v, "DB_NAME"),
		KafkaConfig: platformConfig.LoadKafkaConfig(v, "KAFKA_TOPIC_BOOKINGS"),
	}, nil
}
