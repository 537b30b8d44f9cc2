package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "http://localhost:8081"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultNATSSubject = "petwelfare.animals.mutations"
)

// Config agrupa lo que necesitan cmd/api, cmd/welfare-api y dashboardctl.
// Orden de precedencia: defaults < archivo YAML (CONFIG_FILE) < env.
type Config struct {
	Addr string `yaml:"addr"`

	// BaseURL del backend remoto de animales.
	WelfareAPI WelfareAPIConfig `yaml:"welfare_api"`

	NATS NATSConfig `yaml:"nats"`

	// DSN de Postgres para el backend de referencia; vacío => in-memory.
	DBDSN string `yaml:"db_dsn"`

	Log LogConfig `yaml:"log"`

	// StaleGuard descarta respuestas viejas de una misma vista.
	StaleGuard bool `yaml:"stale_guard"`
}

type WelfareAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		WelfareAPI: WelfareAPIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultHTTPTimeout,
		},
		NATS: NATSConfig{
			Subject: DefaultNATSSubject,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-welfare-dashboard",
		},
	}
}

// Load lee .env (si existe), el YAML de CONFIG_FILE (si está) y aplica env vars.
func Load() (Config, error) {
	// .env es opcional; en prod normalmente no existe.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := strings.TrimSpace(getenv("WELFARE_API_BASE_URL")); v != "" {
		c.WelfareAPI.BaseURL = v
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.WelfareAPI.Timeout = d
		}
	}
	if v := strings.TrimSpace(getenv("NATS_URL")); v != "" {
		c.NATS.URL = v
	}
	if v := strings.TrimSpace(getenv("NATS_SUBJECT")); v != "" {
		c.NATS.Subject = v
	}
	if v := getenv("DB_DSN"); v != "" {
		c.DBDSN = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("APP_NAME"); v != "" {
		c.Log.App = v
	}
	if v := getenv("STALE_GUARD"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.StaleGuard = b
		}
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.WelfareAPI.BaseURL) == "" {
		return errors.New("config: welfare_api.base_url is required")
	}
	if c.WelfareAPI.Timeout < 0 {
		return errors.New("config: welfare_api.timeout must be >= 0")
	}
	return nil
}
