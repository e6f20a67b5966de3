package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
		CORS            bool          `yaml:"cors"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Upstream  Upstream  `yaml:"upstream"`
	Dashboard Dashboard `yaml:"dashboard"`
}

// Upstream configures the remote analytics backend the proxy routes call.
type Upstream struct {
	BaseURL    string   `yaml:"base_url"`
	MockData   bool     `yaml:"mock_data"`
	RetryModel string   `yaml:"retry_model"`
	Timeouts   Timeouts `yaml:"timeouts"`
}

// Timeouts are per-resource upstream budgets.
type Timeouts struct {
	Prediction      time.Duration `yaml:"prediction"`
	PredictionRetry time.Duration `yaml:"prediction_retry"`
	Correlation     time.Duration `yaml:"correlation"`
	Volatility      time.Duration `yaml:"volatility"`
	Anomaly         time.Duration `yaml:"anomaly"`
	News            time.Duration `yaml:"news"`
	ExchangeRate    time.Duration `yaml:"exchange_rate"`
	Historical      time.Duration `yaml:"historical"`
	Alerts          time.Duration `yaml:"alerts"`
}

// Dashboard configures the client data-access layer that reads the proxy routes.
type Dashboard struct {
	BaseURL     string        `yaml:"base_url"`
	UseMockData bool          `yaml:"use_mock_data"`
	Timeout     time.Duration `yaml:"timeout"`
}

// envOverrides lists the only settings that may come from the environment.
type envOverrides struct {
	UpstreamBaseURL string `env:"UPSTREAM_BASE_URL"`
}

// Default returns the configuration used when a YAML key is absent.
func Default() *Config {
	c := &Config{Environment: "development"}
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 60 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Server.SlowThreshold = 5 * time.Second
	c.Server.CORS = true
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Log.Output = "stdout"
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Upstream.BaseURL = "https://cews-backend.onrender.com/api"
	c.Upstream.RetryModel = "statistical"
	c.Upstream.Timeouts = Timeouts{
		Prediction:      40 * time.Second,
		PredictionRetry: 15 * time.Second,
		Correlation:     8 * time.Second,
		Volatility:      10 * time.Second,
		Anomaly:         8 * time.Second,
		News:            10 * time.Second,
		ExchangeRate:    8 * time.Second,
		Historical:      15 * time.Second,
		Alerts:          10 * time.Second,
	}
	c.Dashboard.BaseURL = "http://127.0.0.1:8080"
	c.Dashboard.Timeout = 60 * time.Second
	return c
}

// Load reads and parses a YAML configuration file on top of Default().
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and applies FXDASH_* environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	var ov envOverrides
	if err := env.ParseWithOptions(&ov, env.Options{Prefix: "FXDASH_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if ov.UpstreamBaseURL != "" {
		c.Upstream.BaseURL = ov.UpstreamBaseURL
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if !c.Upstream.MockData && c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required unless upstream.mock_data is set")
	}
	if c.Upstream.BaseURL != "" && !strings.HasPrefix(c.Upstream.BaseURL, "http") {
		return fmt.Errorf("upstream.base_url must be an http(s) URL, got '%s'", c.Upstream.BaseURL)
	}
	if c.Upstream.RetryModel == "" {
		return fmt.Errorf("upstream.retry_model is required")
	}
	t := c.Upstream.Timeouts
	for name, d := range map[string]time.Duration{
		"prediction":       t.Prediction,
		"prediction_retry": t.PredictionRetry,
		"correlation":      t.Correlation,
		"volatility":       t.Volatility,
		"anomaly":          t.Anomaly,
		"news":             t.News,
		"exchange_rate":    t.ExchangeRate,
		"historical":       t.Historical,
		"alerts":           t.Alerts,
	} {
		if d <= 0 {
			return fmt.Errorf("upstream.timeouts.%s must be positive", name)
		}
	}
	if t.PredictionRetry >= t.Prediction {
		return fmt.Errorf("upstream.timeouts.prediction_retry must be shorter than prediction")
	}
	if c.Dashboard.Timeout <= 0 {
		return fmt.Errorf("dashboard.timeout must be positive")
	}
	return nil
}
