package config

import "time"

type ServerConfig struct {
	Port         int
	ServiceName  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         getIntEnv("PORT", 4000),
		ServiceName:  getEnv("SERVICE_NAME", "codearena"),
		ReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 3*time.Minute),
		IdleTimeout:  getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}
