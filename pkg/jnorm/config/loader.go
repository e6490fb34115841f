package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cognicore/jnorm/internal/logging"
	"github.com/cognicore/jnorm/pkg/jnorm"
	"github.com/cognicore/jnorm/pkg/jnorm/lexicon"
	"github.com/cognicore/jnorm/pkg/jnorm/lexicon/japanese"
	"github.com/cognicore/jnorm/pkg/jnorm/normalize"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
	"github.com/cognicore/jnorm/pkg/jnorm/store/memstore"
	"github.com/cognicore/jnorm/pkg/jnorm/store/sqlite"
)

// Loader loads a configuration file and constructs components
type Loader struct {
	// ConfigPath is optional; defaults apply when empty.
	ConfigPath string
	// Logger overrides the logger built from the log section. It is closed
	// with the components.
	Logger logging.Logger
}

// Components holds all constructed components. The normalizer owns the
// store and the logger; Close releases them.
type Components struct {
	Config     *Config
	Normalizer *jnorm.TextNormalizer
	Pipeline   *normalize.Pipeline
	Lemmatizer *lexicon.Lemmatizer
	Store      store.Store // nil for the japanese backend
	Logger     logging.Logger
}

// Close releases the store and the logger
func (c *Components) Close() error {
	return c.Normalizer.Close()
}

// Load reads the configuration and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := Default()
	baseDir := ""
	if l.ConfigPath != "" {
		var err error
		cfg, err = Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		baseDir = filepath.Dir(l.ConfigPath)
	}

	logger := l.Logger
	if logger == nil {
		logger = logging.Nop()
		if cfg.Log.Enabled {
			var err error
			logger, err = logging.New(logging.Config{JSON: cfg.Log.JSON, AddSource: cfg.Log.Source})
			if err != nil {
				return nil, fmt.Errorf("create logger: %w", err)
			}
		}
	}

	comp, err := build(ctx, cfg, baseDir, logger)
	if err != nil {
		return nil, errors.Join(err, logger.Close())
	}
	logger.Info("normalizer ready",
		"pipeline", cfg.Pipeline,
		"backend", cfg.Lexicon.Backend)
	return comp, nil
}

func build(ctx context.Context, cfg *Config, baseDir string, logger logging.Logger) (*Components, error) {
	comp := &Components{Config: cfg, Logger: logger}

	pipeline, err := normalize.NewPipeline(cfg.Pipeline...)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	comp.Pipeline = pipeline

	kb, st, err := openKnowledgeBase(ctx, cfg.Lexicon, baseDir, logger)
	if err != nil {
		return nil, err
	}
	comp.Store = st

	opts := []lexicon.Option{lexicon.WithLogger(logger)}
	if cfg.Lexicon.StemLanguage != "" {
		opts = append(opts, lexicon.WithStemLanguage(cfg.Lexicon.StemLanguage))
	}
	lm, err := lexicon.NewLemmatizer(kb, opts...)
	if err != nil {
		closeStore(st)
		return nil, fmt.Errorf("build lemmatizer: %w", err)
	}
	comp.Lemmatizer = lm

	tn, err := jnorm.New(jnorm.Options{
		Pipeline:   pipeline,
		Lemmatizer: lm,
		Store:      st,
		Logger:     logger,
	})
	if err != nil {
		closeStore(st)
		return nil, err
	}
	comp.Normalizer = tn
	return comp, nil
}

func openKnowledgeBase(ctx context.Context, cfg LexiconConfig, baseDir string, logger logging.Logger) (lexicon.KnowledgeBase, store.Store, error) {
	if cfg.Backend == BackendJapanese {
		kb, err := japanese.New()
		if err != nil {
			return nil, nil, fmt.Errorf("open japanese lexicon: %w", err)
		}
		return kb, nil, nil
	}

	st, err := openStore(ctx, cfg, baseDir)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Seed != "" {
		seed := resolve(baseDir, cfg.Seed)
		stats, err := lexicon.LoadYAML(ctx, seed, st)
		if err != nil {
			closeStore(st)
			return nil, nil, fmt.Errorf("load lexicon seed: %w", err)
		}
		logger.Info("lexicon seeded",
			"path", seed,
			"senses", stats.Senses,
			"exceptions", stats.Exceptions)
	}

	var kb lexicon.KnowledgeBase = lexicon.NewStoreBase(st)
	if cfg.Backend == BackendChain {
		ja, err := japanese.New()
		if err != nil {
			closeStore(st)
			return nil, nil, fmt.Errorf("open japanese lexicon: %w", err)
		}
		kb = lexicon.Chain(ja, kb)
	}
	return kb, st, nil
}

// openStore picks SQLite when a path is configured, memory otherwise. The
// chain backend honours sqlite_path too.
func openStore(ctx context.Context, cfg LexiconConfig, baseDir string) (store.Store, error) {
	if cfg.Backend == BackendMemory || cfg.SQLitePath == "" {
		return memstore.New(), nil
	}
	st, err := sqlite.OpenSQLite(ctx, resolve(baseDir, cfg.SQLitePath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite lexicon: %w", err)
	}
	return st, nil
}

// resolve interprets path relative to the directory of the config file
func resolve(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func closeStore(st store.Store) {
	if st != nil {
		st.Close()
	}
}
