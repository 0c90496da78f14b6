package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
	"github.com/jackzampolin/timetable/internal/store"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	v         *viper.Viper
	config    *Config
	callbacks []func(*Config)
	logger    *slog.Logger
}

// NewManager creates a new config manager and loads initial config.
// homeDir is searched for config.yaml when cfgFile is empty.
func NewManager(cfgFile, homeDir string) (*Manager, error) {
	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
		logger:    slog.Default(),
	}

	if err := cm.initViper(cfgFile, homeDir); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile, homeDir string) error {
	for _, e := range DefaultEntries() {
		cm.v.SetDefault(e.Key, e.Value)
	}

	// Environment variables with TIMETABLE_ prefix, e.g. TIMETABLE_SERVER_PORT
	cm.v.SetEnvPrefix("TIMETABLE")
	cm.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("config")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		if homeDir != "" {
			cm.v.AddConfigPath(homeDir)
		} else {
			cm.v.AddConfigPath("$HOME/.timetable")
		}
	}

	// Try to read config file (not required)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a validated Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ConfigFile returns the file the configuration was read from, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// SetLogger sets the logger used to report reload failures.
func (cm *Manager) SetLogger(l *slog.Logger) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if l != nil {
		cm.logger = l
	}
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. An invalid edit keeps
// the previous configuration in effect.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			cm.mu.RLock()
			logger := cm.logger
			cm.mu.RUnlock()
			logger.Warn("config reload rejected", "file", e.Name, "error", err)
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// Validate rejects unknown drivers, strategies, vocabularies and rule tables.
func (c *Config) Validate() error {
	switch store.Driver(c.Store.Driver) {
	case store.DriverFile, store.DriverSQLite, store.DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// PipelineOptions builds the extraction options described by the pipeline section.
func (c *Config) PipelineOptions() (extract.Options, error) {
	p := c.Pipeline

	vocab, err := extract.LookupVocabulary(p.Vocabulary)
	if err != nil {
		return extract.Options{}, err
	}

	layout := p.Layout
	kind, err := extract.ParseStrategyKind(string(layout.DayStrategy))
	if err != nil {
		return extract.Options{}, err
	}
	layout.DayStrategy = kind
	if err := layout.Validate(); err != nil {
		return extract.Options{}, fmt.Errorf("pipeline: %w", err)
	}

	rules := p.Rules
	if len(rules) == 0 {
		rules = extract.DefaultRules()
	}
	canon, err := extract.NewCanonicalizer(extract.WithoutRules(rules, p.DisabledRules))
	if err != nil {
		return extract.Options{}, fmt.Errorf("pipeline rules: %w", err)
	}

	return extract.Options{
		Vocabulary:    &vocab,
		Layout:        &layout,
		Canonicalizer: canon,
		ColumnOffset:  p.ColumnOffset,
	}, nil
}

// PDFConfig returns the PDF reader settings.
func (c *Config) PDFConfig(logger *slog.Logger) pdfdoc.Config {
	return pdfdoc.Config{
		AlignmentTolerance: c.PDF.AlignmentTolerance,
		MinLineLength:      c.PDF.MinLineLength,
		Logger:             logger,
	}
}

// StoreConfig returns the store settings with relative paths resolved against dir.
func (c *Config) StoreConfig(dir string, logger *slog.Logger) store.Config {
	return store.Config{
		Driver: store.Driver(c.Store.Driver),
		Path:   c.Store.Path,
		Dir:    dir,
		Logger: logger,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Timetable configuration
# Every key can be overridden with a TIMETABLE_ environment variable,
# e.g. TIMETABLE_SERVER_PORT=9090 or TIMETABLE_PIPELINE_VOCABULARY=en

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
