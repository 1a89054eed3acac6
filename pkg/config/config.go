package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, sourced from environment
// variables (or a .env file in development) via viper.
type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Optimization
	DefaultTopN          int `mapstructure:"DEFAULT_TOP_N"`
	MaxTopN              int `mapstructure:"MAX_TOP_N"`
	OptimizationTimeout  int `mapstructure:"OPTIMIZATION_TIMEOUT"` // seconds

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("DEFAULT_TOP_N", 5)
	viper.SetDefault("MAX_TOP_N", 100)
	viper.SetDefault("OPTIMIZATION_TIMEOUT", 30)
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
