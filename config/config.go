// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig holds the MariaDB/MySQL connection parameters. These come
// from the environment, not from config.yaml, so credentials never land in a
// checked-in file. There are no defaults: a missing variable surfaces as a
// connection failure on the next load, which is what the dashboard reports.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type CacheConfig struct {
	SnapshotTTLStr string        `yaml:"snapshot_ttl"`
	SnapshotTTL    time.Duration // Parsed duration
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Cache    CacheConfig  `yaml:"cache"`
	Database DatabaseConfig
}

var AppConfig Config

// LoadConfig reads config.yaml, then overlays the database settings from the
// process environment (a .env file is honored when present, matching how the
// dashboard has always been deployed).
func LoadConfig(configPath string) error {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}

	// Parse durations
	if AppConfig.Cache.SnapshotTTLStr != "" {
		ttl, err := time.ParseDuration(AppConfig.Cache.SnapshotTTLStr)
		if err != nil {
			return fmt.Errorf("failed to parse snapshot_ttl: %w", err)
		}
		AppConfig.Cache.SnapshotTTL = ttl
	} else {
		AppConfig.Cache.SnapshotTTL = 600 * time.Second // Default
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Config: no .env file found, relying on process environment")
	}

	AppConfig.Database = DatabaseConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWD"),
		DBName:   os.Getenv("DB_NAME"),
	}
	if AppConfig.Database.Host == "" || AppConfig.Database.DBName == "" {
		log.Println("WARN Config: DB_HOST / DB_NAME not set; data loads will fail until they are")
	}

	return nil
}
