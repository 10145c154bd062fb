package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" validate:"oneof=text json"`
	} `yaml:"log"`
	Assets struct {
		// Dir holds one sub-directory per category; empty uses Manifest or the embedded listing.
		Dir        string   `yaml:"dir"`
		Manifest   string   `yaml:"manifest"`
		Categories []string `yaml:"categories" validate:"min=1,dive,required"`
	} `yaml:"assets"`
	Quiz struct {
		QuestionCount int    `yaml:"questionCount" validate:"min=1"`
		FeedbackDelay string `yaml:"feedbackDelay"`
		TTL           string `yaml:"ttl"`
	} `yaml:"quiz"`
	Store struct {
		Driver string `yaml:"driver" validate:"oneof=sqlite mysql postgres memory"`
		Path   string `yaml:"path"`
		URL    string `yaml:"url"`
	} `yaml:"store"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Assets.Categories = []string{"animals", "body", "colors", "numbers", "objects"}
	cfg.Quiz.QuestionCount = 5
	cfg.Quiz.FeedbackDelay = "2s"
	cfg.Quiz.TTL = "10m"
	cfg.Store.Driver = "sqlite"
	cfg.Store.Path = "wordquiz.db"
	cfg.Redis.TTL = "10m"
	return cfg
}

// Load reads YAML config from path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the struct tags plus rules that span fields.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Driver == "mysql" && c.Store.URL == "" {
		return fmt.Errorf("invalid config: store.url is required for the mysql driver")
	}
	if c.Store.Driver == "postgres" && c.PostgresURL() == "" {
		return fmt.Errorf("invalid config: postgres url is required for the postgres driver")
	}
	if _, err := time.ParseDuration(c.Quiz.FeedbackDelay); c.Quiz.FeedbackDelay != "" && err != nil {
		return fmt.Errorf("invalid config: quiz.feedbackDelay: %w", err)
	}
	return nil
}

// PostgresURL prefers store.url and falls back to the postgres section.
func (c Config) PostgresURL() string {
	if c.Store.Driver == "postgres" && c.Store.URL != "" {
		return c.Store.URL
	}
	return c.Postgres.URL
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
