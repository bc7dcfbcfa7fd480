package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30m" or "72h" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

const (
	configPathEnv  = "PETITION_ROUTER_CONFIG"
	httpAddrEnv    = "HTTP_ADDR"
	databaseDSNEnv = "DATABASE_DSN"
	databaseDrvEnv = "DATABASE_DRIVER"
	webhookURLEnv  = "ALERT_WEBHOOK_URL"
	logLevelEnv    = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Alerts     AlertConfig      `yaml:"alerts"`
	Escalation EscalationConfig `yaml:"escalation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// DatabaseConfig selects the storage driver and connection string.
// Driver is "sqlite" (embedded, the default) or "postgres".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// AnalysisConfig tunes the text pipeline.
type AnalysisConfig struct {
	UseStemming bool `yaml:"useStemming"`
}

// AlertConfig wires the outbound webhook for high-priority petitions.
type AlertConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// EscalationConfig controls the stale-petition sweep.
type EscalationConfig struct {
	Interval Duration `yaml:"interval"`
	MaxAge   Duration `yaml:"maxAge"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(databaseDrvEnv); v != "" {
		c.Database.Driver = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(webhookURLEnv); v != "" {
		c.Alerts.WebhookURL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if len(override.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = override.Server.CORSOrigins
	}

	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Analysis.UseStemming {
		base.Analysis.UseStemming = true
	}

	if override.Alerts.WebhookURL != "" {
		base.Alerts.WebhookURL = override.Alerts.WebhookURL
	}

	if override.Escalation.Interval > 0 {
		base.Escalation.Interval = override.Escalation.Interval
	}
	if override.Escalation.MaxAge > 0 {
		base.Escalation.MaxAge = override.Escalation.MaxAge
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:petitions.db?_pragma=busy_timeout(5000)",
		},
		Analysis: AnalysisConfig{UseStemming: false},
		Escalation: EscalationConfig{
			Interval: Duration(time.Hour),
			MaxAge:   Duration(72 * time.Hour),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
