package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the journal service.
type Config struct {
	// AdminAddr is the listen address of the diagnostics HTTP surface.
	AdminAddr string `validate:"required,hostname_port"`

	// GuildID and GuildName describe the community the reference sinks are
	// wired to.
	GuildID   string `validate:"required"`
	GuildName string `validate:"required"`

	// LogChannelID is the channel the channel-output sink delivers to.
	LogChannelID string `validate:"required"`

	// OperatorID is the recipient of the direct-message sink.
	OperatorID string `validate:"required"`

	// JournalPath is the subtree the reference sinks subscribe to.
	JournalPath string `validate:"required,startswith=/"`

	// DataDir is where the avatar archive lives.
	DataDir string `validate:"required"`
}

// New loads configuration from environment variables, reading a .env file
// first when one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AdminAddr:    getEnv("WARDEN_ADMIN_ADDR", "localhost:8090"),
		GuildID:      getEnv("WARDEN_GUILD_ID", "guild-local"),
		GuildName:    getEnv("WARDEN_GUILD_NAME", "Local Guild"),
		LogChannelID: getEnv("WARDEN_LOG_CHANNEL", "mod-log"),
		OperatorID:   getEnv("WARDEN_OPERATOR", "operator"),
		JournalPath:  getEnv("WARDEN_JOURNAL_PATH", "/"),
		DataDir:      getEnv("WARDEN_DATA_DIR", "data"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
