package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/klardotsh/kaboom/pkg/prune"
)

//go:generate go run ../../cmd/schema -o schema.json

// Config holds defaults for kaboom commands, every value can be overridden on the command line
type Config struct {
	File        string `yaml:"file" json:"file" jsonschema:"default=feed.xml,description=Path to the Atom feed"`
	NoGenerator bool   `yaml:"no_generator" json:"no_generator" jsonschema:"default=false,description=Do not set the generator element on metadata changes"`

	Prune   PruneConfig   `yaml:"prune" json:"prune" jsonschema:"description=Prune command defaults"`
	Author  AuthorConfig  `yaml:"author" json:"author" jsonschema:"description=Default author of added entries"`
	Content ContentConfig `yaml:"content" json:"content" jsonschema:"description=Content handling of added entries"`
}

// PruneConfig holds prune command defaults
type PruneConfig struct {
	Strategy     string `yaml:"strategy" json:"strategy" jsonschema:"default=published,enum=published,enum=updated,enum=since-date,description=Pruning strategy"`
	RejectSuffix string `yaml:"reject_suffix" json:"reject_suffix" jsonschema:"default=.rej.xml,description=Suffix of the reject file replacing the .xml extension of the feed"`
	NoReject     bool   `yaml:"no_reject" json:"no_reject" jsonschema:"default=false,description=Drop pruned entries instead of archiving them"`
}

// AuthorConfig is the author used for added entries when none is given
type AuthorConfig struct {
	Name  string `yaml:"name" json:"name" jsonschema:"description=Author name"`
	Email string `yaml:"email" json:"email" jsonschema:"description=Author email"`
}

// ContentConfig holds content handling settings
type ContentConfig struct {
	Sanitize      bool `yaml:"sanitize" json:"sanitize" jsonschema:"default=false,description=Sanitize html content of added entries"`
	IncludeImages bool `yaml:"include_images" json:"include_images" jsonschema:"default=false,description=Keep images when extracting content from html files"`
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.File == "" {
		cfg.File = "feed.xml"
	}
	if cfg.Prune.Strategy == "" {
		cfg.Prune.Strategy = prune.RecentlyPublished.String()
	}
	if cfg.Prune.RejectSuffix == "" {
		cfg.Prune.RejectSuffix = ".rej.xml"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if _, err := prune.ParseStrategy(cfg.Prune.Strategy); err != nil {
		return fmt.Errorf("prune.strategy: %w", err)
	}
	if cfg.Prune.RejectSuffix == ".xml" {
		return fmt.Errorf("prune.reject_suffix can't be .xml, reject file would replace the feed")
	}
	if cfg.Author.Email != "" && cfg.Author.Name == "" {
		return fmt.Errorf("author.name is required when author.email is set")
	}
	return nil
}

// Strategy returns the parsed default pruning strategy
func (c *Config) Strategy() prune.Strategy {
	s, err := prune.ParseStrategy(c.Prune.Strategy)
	if err != nil {
		return prune.RecentlyPublished
	}
	return s
}
