package main

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// driverMemory selects the in-memory user repository instead of a database.
const driverMemory = "memory"

// Config holds the service configuration read from the environment.
type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseDSN    string
	CORSOrigins    string
	RabbitMQURL    string
}

// ListenAddr returns the address passed to fiber.App.Listen.
func (c Config) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// loadConfig reads the configuration from environment variables, falling back to defaults.
func loadConfig(v *viper.Viper) Config {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "auth.db")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	if v.GetString("MONGO_URL") != "" {
		log.Printf("Warning: MONGO_URL is set but ignored; configure DATABASE_DRIVER and DATABASE_DSN instead (driver=%s)", v.GetString("DATABASE_DRIVER"))
	}

	return Config{
		Port:           v.GetString("PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		CORSOrigins:    v.GetString("CORS_ORIGINS"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}
}
