package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scpi-protocol/scpi-go/pkg/dmm"
)

// Config is the instrument configuration. All fields are optional;
// command-line flags override file values.
type Config struct {
	Identity struct {
		Manufacturer string `yaml:"manufacturer"`
		Model        string `yaml:"model"`
		Serial       string `yaml:"serial"`
		Firmware     string `yaml:"firmware"`
	} `yaml:"identity"`

	// Level is the simulated input level in volts.
	Level float64 `yaml:"level"`

	Listen    string `yaml:"listen"`
	MDNS      bool   `yaml:"mdns"`
	LogLevel  string `yaml:"logLevel"`
	LogFile   string `yaml:"logFile"`
	StateFile string `yaml:"stateFile"`

	// Kept flat for the discovery TXT records.
	Manufacturer string `yaml:"-"`
	Model        string `yaml:"-"`
	Serial       string `yaml:"-"`
	Firmware     string `yaml:"-"`
}

// LoadConfig reads a YAML config file. An empty path returns defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Level:    dmm.DefaultSimLevel,
		LogLevel: "info",
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	def := dmm.DefaultIdentity()
	cfg.Manufacturer = orDefault(cfg.Identity.Manufacturer, def.Manufacturer)
	cfg.Model = orDefault(cfg.Identity.Model, def.Model)
	cfg.Serial = orDefault(cfg.Identity.Serial, def.Serial)
	cfg.Firmware = orDefault(cfg.Identity.Firmware, def.Firmware)
	return cfg, nil
}

// applyFlags overlays explicitly-set command-line flags on the config.
func (c *Config) applyFlags() {
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}
	if flags.MDNS {
		c.MDNS = true
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.StateFile != "" {
		c.StateFile = flags.StateFile
	}
	if flags.LogLevel != "info" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Level != dmm.DefaultSimLevel {
		c.Level = flags.Level
	}
}

func (c *Config) identity() dmm.Identity {
	return dmm.Identity{
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		Serial:       c.Serial,
		Firmware:     c.Firmware,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
