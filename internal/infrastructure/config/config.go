package config

import (
	"fmt"
	"os"
	"strconv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type PolicyConfig struct {
	// ClampCustomOffers pins custom rate/term overrides into the grade's
	// allowed range instead of accepting them verbatim.
	ClampCustomOffers bool
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	MetricsPort int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Policy      PolicyConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 9095),
		HTTPPort:    getEnvInt("HTTP_PORT", 8095),
		MetricsPort: getEnvInt("METRICS_PORT", 9195),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "advancehub"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "advancehub_underwriting"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "underwriting-events"),
		},
		Policy: PolicyConfig{
			ClampCustomOffers: getEnvBool("POLICY_CLAMP_CUSTOM_OFFERS", false),
		},
		ServiceName: "underwriting-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
