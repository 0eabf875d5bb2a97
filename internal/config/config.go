package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Filter    FilterConfig    `yaml:"filter"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port        int    `yaml:"port" env:"PARETO_PORT" validate:"min=1,max=65535"`
	MetricsPort int    `yaml:"metrics_port" env:"PARETO_METRICS_PORT" validate:"min=1,max=65535,nefield=Port"`
	AdminToken  string `yaml:"admin_token" env:"PARETO_ADMIN_TOKEN"`
}

// DatabaseConfig points at Postgres. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `yaml:"url" env:"PARETO_DATABASE_URL"`
}

type HermesConfig struct {
	URL string `yaml:"url" env:"PARETO_HERMES_URL"`
}

// FilterConfig holds the defaults applied to runs that do not set their own.
type FilterConfig struct {
	ReferenceIndex  int    `yaml:"reference_index" env:"PARETO_REFERENCE_INDEX" validate:"min=0"`
	Smoothness      int    `yaml:"smoothness" env:"PARETO_SMOOTHNESS" validate:"min=1,max=1073741824"`
	TieBreak        string `yaml:"tie_break" env:"PARETO_TIE_BREAK" validate:"oneof=input name scores"`
	StrictDominance bool   `yaml:"strict_dominance" env:"PARETO_STRICT_DOMINANCE"`
	MaxItems        int    `yaml:"max_items" env:"PARETO_MAX_ITEMS" validate:"min=1"`
}

type EngineConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms" env:"PARETO_TICK_INTERVAL_MS" validate:"min=10"`
	BatchSize      int `yaml:"batch_size" env:"PARETO_BATCH_SIZE" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"PARETO_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"PARETO_LOG_FORMAT" validate:"oneof=json text"`
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" env:"PARETO_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"PARETO_SERVICE_NAME" validate:"required"`
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickIntervalMs) * time.Millisecond
}

// FilterOptions converts the filter section into extraction options.
func (c *Config) FilterOptions() pareto.Options {
	rule := pareto.RuleLenient
	if c.Filter.StrictDominance {
		rule = pareto.RuleStrict
	}
	return pareto.Options{
		ReferenceIndex: c.Filter.ReferenceIndex,
		TieBreak:       pareto.TieBreak(c.Filter.TieBreak),
		Rule:           rule,
	}
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Filter: FilterConfig{
			ReferenceIndex: 0,
			Smoothness:     pareto.DefaultSmoothness,
			TieBreak:       string(pareto.TieInput),
			MaxItems:       10000,
		},
		Engine: EngineConfig{
			TickIntervalMs: 2000,
			BatchSize:      20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "pareto",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewLogger builds the process logger described by cfg.
func NewLogger(cfg LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
