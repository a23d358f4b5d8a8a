package config

import (
	"fmt"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds every runtime setting, resolved from the environment with
// sensible local-dev defaults.
type Config struct {
	Port        string
	DatabaseURL string // postgres DSN; empty means local sqlite
	SQLitePath  string
	JWTSecret   string
	RabbitMQURL string // empty disables event publishing
	GinMode     string
}

// Load reads configuration from environment variables via viper.
func Load() *Config {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "food_marketplace.db")
	viper.SetDefault("JWT_SECRET", "food_marketplace_dev_secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("GIN_MODE", "")
	viper.AutomaticEnv()

	return &Config{
		Port:        viper.GetString("APP_PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		SQLitePath:  viper.GetString("SQLITE_PATH"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		GinMode:     viper.GetString("GIN_MODE"),
	}
}

// OpenDB connects to postgres when a DSN is configured, falling back to the
// embedded sqlite database, and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
