package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env    string `env:"ENV" env-default:"local"`
	HTTP   HTTPConfig
	SQLite SQLiteConfig
	JWT    JWTConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" env-default:"cludy.db"`
}

type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY" env-required:"true"`
	Issuer    string        `env:"JWT_ISSUER" env-default:"cludy"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
}
