package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment variable names.
const (
	EnvAppAddr         = "CALC_APP_ADDR"
	EnvLogLevel        = "CALC_LOG_LEVEL"
	EnvShutdownTimeout = "CALC_SHUTDOWN_TIMEOUT"
	EnvOTLPLogsEnabled = "CALC_OTLP_LOGS_ENABLED"
	EnvPricingURL      = "CALC_PRICING_URL"
	EnvSumURL          = "CALC_SUM_URL"
	EnvRemoteTimeout   = "CALC_REMOTE_TIMEOUT"
)

// Default remote function URLs, used when the variables are unset or empty.
const (
	DefaultPricingURL = "https://faas-blr1-8177d592.doserverless.co/api/v1/web/fn-efde7da4-9cf7-4aad-9f2f-8d5afd503964/default/dynamic-ticket-pricing"
	DefaultSumURL     = "https://faas-blr1-8177d592.doserverless.co/api/v1/web/fn-efde7da4-9cf7-4aad-9f2f-8d5afd503964/default/sum-function"
)

type Config struct {
	App    AppConfig
	Remote RemoteConfig
}

type AppConfig struct {
	Addr            string        `envconfig:"CALC_APP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"CALC_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"CALC_SHUTDOWN_TIMEOUT" default:"5s"`
	OTLPLogsEnabled bool          `envconfig:"CALC_OTLP_LOGS_ENABLED" default:"false"`
}

// RemoteConfig locates the remote calculation functions.
type RemoteConfig struct {
	PricingURL string `envconfig:"CALC_PRICING_URL"`
	SumURL     string `envconfig:"CALC_SUM_URL"`
	// Timeout bounds API-initiated calls. Zero means no deadline.
	Timeout time.Duration `envconfig:"CALC_REMOTE_TIMEOUT" default:"0s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Remote.applyDefaults()
	if err := cfg.Remote.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *RemoteConfig) applyDefaults() {
	if r.PricingURL == "" {
		r.PricingURL = DefaultPricingURL
	}
	if r.SumURL == "" {
		r.SumURL = DefaultSumURL
	}
}

func (r RemoteConfig) validate() error {
	if err := validateEndpoint(EnvPricingURL, r.PricingURL); err != nil {
		return err
	}
	if err := validateEndpoint(EnvSumURL, r.SumURL); err != nil {
		return err
	}
	if r.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvRemoteTimeout)
	}
	return nil
}

func validateEndpoint(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}
	return nil
}
