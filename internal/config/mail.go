package config

import "time"

// MailConfig drives account emails: where their links point and how long the
// tokens inside them live.
type MailConfig struct {
	BaseURL  string
	From     string
	TokenTTL time.Duration
}

func NewMailConfig() *MailConfig {
	cfg := &MailConfig{
		BaseURL:  getEnv("BASE_URL", "http://localhost:4000"),
		From:     getEnv("MAIL_FROM", "no-reply@codearena.net"),
		TokenTTL: getDurationEnv("MAIL_TOKEN_TTL", 20*time.Minute),
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 20 * time.Minute
	}
	return cfg
}
