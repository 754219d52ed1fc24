package config

import "time"

// ServerConfig represents the configuration for the HTTP server
type ServerConfig struct {
	ListenAddress string
	MaxBodyBytes  int64
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// SpamConfig represents the configuration for the spam pipeline
type SpamConfig struct {
	ScoreThreshold int
}

// RateLimitConfig represents the configuration for the IP rate limiter
type RateLimitConfig struct {
	MaxSubmissions int
	Window         time.Duration
}

// TurnstileConfig represents the configuration for Cloudflare Turnstile
type TurnstileConfig struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

// EmailConfig represents the configuration for notification dispatch
type EmailConfig struct {
	Enabled        bool
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	FromAddress    string
	AdminAddress   string
	CompanyAddress string
	CompanyName    string
}

// GetServer returns the server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	readTimeout, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	writeTimeout, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		MaxBodyBytes:  int64(c.GetInt("server.max_body_bytes")),
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
	}, nil
}

// GetSpam returns the spam pipeline configuration
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		ScoreThreshold: c.GetInt("spam.score_threshold"),
	}
}

// GetRateLimit returns the rate limiter configuration
func (c *Config) GetRateLimit() (RateLimitConfig, error) {
	window, err := c.GetDuration("rate_limit.window")
	if err != nil {
		return RateLimitConfig{}, err
	}
	return RateLimitConfig{
		MaxSubmissions: c.GetInt("rate_limit.max_submissions"),
		Window:         window,
	}, nil
}

// GetTurnstile returns the Turnstile configuration
func (c *Config) GetTurnstile() (TurnstileConfig, error) {
	timeout, err := c.GetDuration("turnstile.timeout")
	if err != nil {
		return TurnstileConfig{}, err
	}
	return TurnstileConfig{
		SecretKey: c.GetString("turnstile.secret_key"),
		VerifyURL: c.GetString("turnstile.verify_url"),
		Timeout:   timeout,
	}, nil
}

// GetEmail returns the email configuration
func (c *Config) GetEmail() EmailConfig {
	return EmailConfig{
		Enabled:        c.GetBool("email.enabled"),
		SMTPHost:       c.GetString("email.smtp_host"),
		SMTPPort:       c.GetInt("email.smtp_port"),
		SMTPUser:       c.GetString("email.smtp_user"),
		SMTPPass:       c.GetString("email.smtp_pass"),
		FromAddress:    c.GetString("email.from_address"),
		AdminAddress:   c.GetString("email.admin_address"),
		CompanyAddress: c.GetString("email.company_address"),
		CompanyName:    c.GetString("email.company_name"),
	}
}
