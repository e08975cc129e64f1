package config

import (
	"os"
	"time"
)

type JwtConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	SecureCookies bool
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessExpiry:  getDurationEnv("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshExpiry: getDurationEnv("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		SecureCookies: os.Getenv("NODE_ENV") == "production" || os.Getenv("APP_ENV") == "production",
	}
}
