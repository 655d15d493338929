package config

import (
	"fmt"

	"github.com/jinzhu/configor"
)

type Config struct {
	Log     LogConfig
	DB      DBConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Suggest SuggestConfig
}

type LogConfig struct {
	Level     string `default:"info" env:"LOG_LEVEL"`
	Format    string `default:"text" env:"LOG_FORMAT"`
	Component string `default:"mangala" env:"LOG_COMPONENT"`
	Source    bool   `env:"LOG_SOURCE"`
}

type DBConfig struct {
	Host     string `default:"localhost" env:"DB_HOST"`
	Port     string `default:"3306" env:"DB_PORT"`
	User     string `default:"root" env:"DB_USER"`
	Password string `default:"root" env:"DB_PASSWORD"`
	Name     string `default:"mangala" env:"DB_NAME"`
	DSN      string `env:"MYSQL_DSN"`
}

type RedisConfig struct {
	Addr     string `default:"localhost:6379" env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

type HTTPConfig struct {
	Host string `default:"0.0.0.0" env:"HTTP_HOST"`
	Port string `default:"8080" env:"HTTP_PORT"`
}

type JWTConfig struct {
	Secret   string `default:"dev-secret-change-me" env:"JWT_SECRET"`
	TTLHours int    `default:"72" env:"JWT_TTL_HOURS"`
}

type SuggestConfig struct {
	PerUser int    `default:"10" env:"SUGGEST_PER_USER"`
	Reason  string `default:"Picked for you based on your area" env:"SUGGEST_REASON"`
}

// New loads configuration from the environment with defaults applied.
func New() *Config {
	cfg := &Config{}
	if err := configor.New(&configor.Config{Silent: true}).Load(cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if cfg.DB.DSN == "" {
		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	return cfg
}

func (c *Config) HTTPAddr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}
