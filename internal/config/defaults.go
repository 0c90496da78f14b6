package config

import (
	"errors"

	"github.com/jackzampolin/timetable/internal/extract"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Entry is one documented configuration key.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// They are registered as viper defaults and listed by `timetable config defaults`.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	p := d.Pipeline
	return []Entry{
		// Server
		{Key: "server.host", Value: d.Server.Host, Description: "Address the HTTP server binds to"},
		{Key: "server.port", Value: d.Server.Port, Description: "Port the HTTP server listens on"},

		// Store
		{Key: "store.driver", Value: d.Store.Driver, Description: "Schedule store: file, sqlite or memory"},
		{Key: "store.path", Value: d.Store.Path, Description: "Store location, relative to the home directory unless absolute"},

		{Key: "log_level", Value: d.LogLevel, Description: "Log level: debug, info, warn or error"},

		// PDF reading
		{Key: "pdf.alignment_tolerance", Value: d.PDF.AlignmentTolerance, Description: "Points within which rules are merged into one grid line"},
		{Key: "pdf.min_line_length", Value: d.PDF.MinLineLength, Description: "Rules shorter than this many points are ignored"},

		// Pipeline
		{Key: "pipeline.vocabulary", Value: p.Vocabulary, Description: "Keyword vocabulary for page classification: en or id"},
		{Key: "pipeline.column_offset", Value: p.ColumnOffset, Description: "Shift applied to the column to class mapping"},
		{Key: "pipeline.metadata_columns", Value: p.MetadataColumns, Description: "Leading grid columns that never hold classes"},
		{Key: "pipeline.min_columns", Value: p.MinColumns, Description: "Rows with fewer cells are ignored"},
		{Key: "pipeline.time_column", Value: p.TimeColumn, Description: "Grid column holding the time range"},
		{Key: "pipeline.period_column", Value: p.PeriodColumn, Description: "Grid column holding the period label"},
		{Key: "pipeline.tiers", Value: p.Tiers, Description: "Column ranges mapped to class grades"},
		{Key: "pipeline.day_strategy", Value: string(p.DayStrategy), Description: "Weekday inference: auto, marker or fixed"},
		{Key: "pipeline.rows_per_day", Value: p.RowsPerDay, Description: "Data rows per day for the fixed strategy"},
		{Key: "pipeline.day_start_pattern", Value: p.DayStartPattern, Description: "Regexp on the time cell marking the first period of a day"},
		{Key: "pipeline.reset_per_page", Value: p.ResetPerPage, Description: "Restart weekday inference on every schedule page"},
		{Key: "pipeline.multi_code", Value: p.MultiCode, Description: "Allow several teacher codes in one cell"},
		{Key: "pipeline.max_cell_len", Value: p.MaxCellLen, Description: "Longest accepted cell without multi_code"},
		{Key: "pipeline.multi_code_max_cell_len", Value: p.MultiCodeMaxCellLen, Description: "Longest accepted cell with multi_code"},
		{Key: "pipeline.rules", Value: extract.DefaultRules(), Description: "Ordered teacher code corrections; the first match wins"},
		{Key: "pipeline.disabled_rules", Value: p.DisabledRules, Description: "Names of correction rules to skip"},
	}
}

// GetDefault returns the default entry for a key.
func GetDefault(key string) (*Entry, error) {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return &e, nil
		}
	}
	return nil, ErrNoDefault
}
