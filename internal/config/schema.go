package config

import (
	"github.com/jackzampolin/timetable/internal/extract"
)

// Config holds timetable configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
	Store    StoreCfg    `mapstructure:"store" yaml:"store"`
	LogLevel string      `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	PDF      PDFCfg      `mapstructure:"pdf" yaml:"pdf"`
	Pipeline PipelineCfg `mapstructure:"pipeline" yaml:"pipeline"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// StoreCfg selects where the schedule database lives.
type StoreCfg struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // "file", "sqlite", "memory"
	Path   string `mapstructure:"path" yaml:"path"`     // Relative paths resolve against the home directory
}

// PDFCfg tunes ruled-table detection.
type PDFCfg struct {
	AlignmentTolerance float64 `mapstructure:"alignment_tolerance" yaml:"alignment_tolerance"` // Points
	MinLineLength      float64 `mapstructure:"min_line_length" yaml:"min_line_length"`         // Points
}

// PipelineCfg configures extraction. The embedded layout describes the grid
// template; rules replace the built-in code corrections when set.
type PipelineCfg struct {
	extract.Layout `mapstructure:",squash" yaml:",inline"`

	Vocabulary    string         `mapstructure:"vocabulary" yaml:"vocabulary"` // "en", "id"
	ColumnOffset  int            `mapstructure:"column_offset" yaml:"column_offset"`
	Rules         []extract.Rule `mapstructure:"rules" yaml:"rules"`
	DisabledRules []string       `mapstructure:"disabled_rules" yaml:"disabled_rules"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Store: StoreCfg{
			Driver: "file",
			Path:   "schedule.json",
		},
		LogLevel: "info",
		PDF: PDFCfg{
			AlignmentTolerance: 5,
			MinLineLength:      10,
		},
		Pipeline: PipelineCfg{
			Layout:        extract.DefaultLayout(),
			Vocabulary:    "id",
			Rules:         extract.DefaultRules(),
			DisabledRules: []string{},
		},
	}
}
