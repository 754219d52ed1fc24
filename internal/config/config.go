package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/lead-intake/")
	v.AddConfigPath("$HOME/.lead-intake")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("LEAD_INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.max_body_bytes", 64*1024)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")

	// Spam defaults
	v.SetDefault("spam.score_threshold", 50)

	// Rate limit defaults
	v.SetDefault("rate_limit.max_submissions", 3)
	v.SetDefault("rate_limit.window", "60m")

	// Turnstile defaults
	v.SetDefault("turnstile.secret_key", "")
	v.SetDefault("turnstile.verify_url", "https://challenges.cloudflare.com/turnstile/v1/siteverify")
	v.SetDefault("turnstile.timeout", "10s")

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/lead_intake.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/lead_intake?parseTime=true")

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_pass", "")
	v.SetDefault("email.from_address", "noreply@aquashieldrestorationusa.com")
	v.SetDefault("email.admin_address", "admin@aquashieldrestorationusa.com")
	v.SetDefault("email.company_address", "info@aquashieldrestorationusa.com")
	v.SetDefault("email.company_name", "AquaShield Restoration USA")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}
