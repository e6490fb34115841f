package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
	"github.com/cognicore/jnorm/pkg/jnorm/normalize"
)

// Lexicon backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendJapanese = "japanese"
	BackendChain    = "chain"
)

// Config is the YAML configuration of a normalizer
type Config struct {
	Pipeline []string      `yaml:"pipeline"`
	Lexicon  LexiconConfig `yaml:"lexicon"`
	Log      LogConfig     `yaml:"log"`
}

// LexiconConfig selects the knowledge base behind the lemmatizer
type LexiconConfig struct {
	Backend      string `yaml:"backend"`
	Seed         string `yaml:"seed"`
	SQLitePath   string `yaml:"sqlite_path"`
	StemLanguage string `yaml:"stem_language"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
	JSON    bool `yaml:"json"`
	Source  bool `yaml:"source"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Pipeline: []string{"canonical"},
		Lexicon:  LexiconConfig{Backend: BackendMemory},
	}
}

// Load loads a configuration from a YAML file and fills in defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if len(cfg.Pipeline) == 0 {
		cfg.Pipeline = []string{"canonical"}
	}
	if cfg.Lexicon.Backend == "" {
		cfg.Lexicon.Backend = BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names, backend-specific settings and step names
func (c *Config) Validate() error {
	switch c.Lexicon.Backend {
	case BackendMemory, BackendChain:
	case BackendSQLite:
		if c.Lexicon.SQLitePath == "" {
			return fmt.Errorf("sqlite backend needs sqlite_path: %w", internalerr.ErrInvalidConfig)
		}
	case BackendJapanese:
		if c.Lexicon.Seed != "" {
			return fmt.Errorf("japanese backend takes no seed: %w", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("lexicon backend %q: %w", c.Lexicon.Backend, internalerr.ErrInvalidConfig)
	}

	if _, err := normalize.NewPipeline(c.Pipeline...); err != nil {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
	}
	return nil
}
