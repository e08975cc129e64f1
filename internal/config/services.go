package config

type AppConfig struct {
	ServerConfig   *ServerConfig
	JudgeConfig    *JudgeConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	GGAuthConfig   *GGAuthConfig
	MailConfig     *MailConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		ServerConfig:   NewServerConfig(),
		JudgeConfig:    NewJudgeConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		GGAuthConfig:   NewGGAuthConfig(),
		MailConfig:     NewMailConfig(),
	}
}
