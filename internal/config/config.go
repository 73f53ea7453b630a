package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Tables []string     `yaml:"tables"`
}

type SourceConfig struct {
	Type   string `yaml:"type"` // dump | mysql
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Pretty *bool  `yaml:"pretty"`
}

const (
	SourceDump  = "dump"
	SourceMySQL = "mysql"

	DefaultOutputDir = "extracted_data"
)

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = SourceDump
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Pretty == nil {
		pretty := true
		c.Output.Pretty = &pretty
	}
}

func (c *Config) validate() error {
	switch c.Source.Type {
	case SourceDump:
		if c.Source.Path == "" {
			return errors.New("source.path is required for dump sources")
		}
	case SourceMySQL:
		if c.Source.DSN == "" {
			return errors.New("source.dsn is required for mysql sources")
		}
		if c.Source.Schema == "" {
			return errors.New("source.schema is required for mysql sources")
		}
	default:
		return fmt.Errorf("source.type must be %q or %q", SourceDump, SourceMySQL)
	}
	return nil
}

func (c *Config) Pretty() bool {
	return c.Output.Pretty == nil || *c.Output.Pretty
}
