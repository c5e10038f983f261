package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	ListenAddr      string `mapstructure:"LISTEN_ADDR"`
	UploadDir       string `mapstructure:"UPLOAD_DIR"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("DATABASE_URL", "chat.db")
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("SESSION_TTL_HOURS", 168) // 7 days

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
