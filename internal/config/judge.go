package config

import "time"

// JudgeConfig configures the Judge0 client and its result polling.
type JudgeConfig struct {
	BaseURL         string
	AuthToken       string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
	PollTimeout     time.Duration
}

func NewJudgeConfig() *JudgeConfig {
	cfg := &JudgeConfig{
		BaseURL:         getEnv("JUDGE0_API_URL", "http://localhost:2358"),
		AuthToken:       getEnv("JUDGE0_AUTH_TOKEN", ""),
		RequestTimeout:  getDurationEnv("JUDGE0_REQUEST_TIMEOUT", 10*time.Second),
		PollInterval:    getDurationEnv("JUDGE0_POLL_INTERVAL", time.Second),
		PollMaxAttempts: getIntEnv("JUDGE0_POLL_MAX_ATTEMPTS", 120),
		PollTimeout:     getDurationEnv("JUDGE0_POLL_TIMEOUT", 2*time.Minute),
	}
	if cfg.PollMaxAttempts <= 0 {
		cfg.PollMaxAttempts = 120
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 2 * time.Minute
	}
	return cfg
}
