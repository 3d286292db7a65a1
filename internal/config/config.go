package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" env-default:":8080"`

	// BackendURL is the base URL of the school-management REST API.
	BackendURL  string        `env:"BACKEND_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`

	RedisAddress    string        `env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" env-default:"60s"`

	RabbitMQURL  string `env:"RABBITMQ_URL"`
	ContactQueue string `env:"CONTACT_QUEUE_NAME" env-default:"contact-requests"`

	DefaultLocale string `env:"DEFAULT_LOCALE" env-default:"en"`
	Locales       string `env:"LOCALES" env-default:"en,fr"`

	StaticDir      string `env:"STATIC_DIR" env-default:"./public"`
	SecureCookies  bool   `env:"SECURE_COOKIES" env-default:"true"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL environment variable is required")
	}
	if _, err := url.Parse(cfg.BackendURL); err != nil {
		return nil, errors.New("BACKEND_URL is not a valid URL: " + err.Error())
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if !containsLocale(cfg.SupportedLocales(), cfg.DefaultLocale) {
		return nil, errors.New("DEFAULT_LOCALE must be listed in LOCALES")
	}
	return cfg, nil
}

// SupportedLocales splits the comma-separated LOCALES value.
func (c *Config) SupportedLocales() []string {
	var out []string
	for _, l := range strings.Split(c.Locales, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, strings.ToLower(l))
		}
	}
	return out
}

// Origins splits the comma-separated ALLOWED_ORIGINS value.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func containsLocale(locales []string, locale string) bool {
	for _, l := range locales {
		if strings.EqualFold(l, locale) {
			return true
		}
	}
	return false
}
