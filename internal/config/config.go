package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type config struct {
	Production           bool          `env:"PRODUCTION" envDefault:"false"`
	Port                 string        `env:"PORT" envDefault:"5000"`
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS" envDefault:"*"`
	Timezone             string        `env:"TIMEZONE" envDefault:"Local"`
	StoreBackend         string        `env:"STORE_BACKEND" envDefault:"file"`
	DataDir              string        `env:"DATA_DIR" envDefault:"."`
	CalendarFileSuffix   string        `env:"CALENDAR_FILE_SUFFIX" envDefault:"calendar_events.json"`
	PostgresUrl          string        `env:"POSTGRES_URL" envDefault:""`
	SessionBackend       string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisUrl             string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	SessionTTl           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCleanupPeriod time.Duration `env:"SESSION_CLEANUP_PERIOD" envDefault:"60s"`
	SessionMaxMessages   int           `env:"SESSION_MAX_MESSAGES" envDefault:"40"`
	OllamaURL            string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel          string        `env:"OLLAMA_MODEL" envDefault:"llama3"`
	OllamaTimeout        time.Duration `env:"OLLAMA_TIMEOUT" envDefault:"120s"`
	Secret               string        `env:"SECRET" envDefault:""`
	JwtTTL               time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
}

var conf config

func init() {
	// .env is optional, real environment always wins
	_ = godotenv.Load()

	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func AllowedOrigins() []string {
	var res []string
	for _, o := range strings.Split(conf.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// Location returns the zone used to decide what "today" is.
func Location() (*time.Location, error) {
	if conf.Timezone == "" || conf.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(conf.Timezone)
}

func StoreBackend() string {
	return conf.StoreBackend
}

func DataDir() string {
	return conf.DataDir
}

func CalendarFileSuffix() string {
	return conf.CalendarFileSuffix
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func SessionBackend() string {
	return conf.SessionBackend
}

func RedisURL() string {
	return conf.RedisUrl
}

func SessionTTl() time.Duration {
	return conf.SessionTTl
}

func SessionCleanupPeriod() time.Duration {
	return conf.SessionCleanupPeriod
}

func SessionMaxMessages() int {
	return conf.SessionMaxMessages
}

func OllamaURL() string {
	return conf.OllamaURL
}

func OllamaModel() string {
	return conf.OllamaModel
}

func OllamaTimeout() time.Duration {
	return conf.OllamaTimeout
}

func Secret() string {
	return conf.Secret
}

func AuthEnabled() bool {
	return conf.Secret != ""
}

func JwtTTL() time.Duration {
	return conf.JwtTTL
}
