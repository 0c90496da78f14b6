package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

// tierLabel matches the grade part of a class section, e.g. "XI" in "XI-3".
var tierLabel = regexp.MustCompile(`^[A-Z]+$`)

// Tier maps an inclusive range of column positions to a class grade label.
// A position p in [First, Last] becomes "<Label>-<p-First+1>".
type Tier struct {
	Label string `mapstructure:"label" yaml:"label" json:"label"`
	First int    `mapstructure:"first" yaml:"first" json:"first"`
	Last  int    `mapstructure:"last" yaml:"last" json:"last"`
}

// Layout describes one document template's grid geometry.
type Layout struct {
	// Columns before MetadataColumns never hold class cells.
	MetadataColumns int `mapstructure:"metadata_columns" yaml:"metadata_columns" json:"metadata_columns"`
	// Rows with fewer cells are noise.
	MinColumns   int `mapstructure:"min_columns" yaml:"min_columns" json:"min_columns"`
	TimeColumn   int `mapstructure:"time_column" yaml:"time_column" json:"time_column"`
	PeriodColumn int `mapstructure:"period_column" yaml:"period_column" json:"period_column"`

	Tiers []Tier `mapstructure:"tiers" yaml:"tiers" json:"tiers"`

	DayStrategy     StrategyKind `mapstructure:"day_strategy" yaml:"day_strategy" json:"day_strategy"`
	RowsPerDay      int          `mapstructure:"rows_per_day" yaml:"rows_per_day" json:"rows_per_day"`
	DayStartPattern string       `mapstructure:"day_start_pattern" yaml:"day_start_pattern" json:"day_start_pattern"`
	// ResetPerPage restarts weekday inference on every schedule page.
	ResetPerPage bool `mapstructure:"reset_per_page" yaml:"reset_per_page" json:"reset_per_page"`

	MultiCode           bool `mapstructure:"multi_code" yaml:"multi_code" json:"multi_code"`
	MaxCellLen          int  `mapstructure:"max_cell_len" yaml:"max_cell_len" json:"max_cell_len"`
	MultiCodeMaxCellLen int  `mapstructure:"multi_code_max_cell_len" yaml:"multi_code_max_cell_len" json:"multi_code_max_cell_len"`
}

// DefaultTiers are the three grades of the source school, twelve sections each.
func DefaultTiers() []Tier {
	return []Tier{
		{Label: "X", First: 3, Last: 14},
		{Label: "XI", First: 15, Last: 26},
		{Label: "XII", First: 27, Last: 38},
	}
}

// DefaultLayout returns the layout of the source schedule template.
func DefaultLayout() Layout {
	return Layout{
		MetadataColumns:     3,
		MinColumns:          5,
		TimeColumn:          1,
		PeriodColumn:        2,
		Tiers:               DefaultTiers(),
		DayStrategy:         StrategyAuto,
		RowsPerDay:          13,
		DayStartPattern:     `06[.:]3`,
		MultiCode:           true,
		MaxCellLen:          6,
		MultiCodeMaxCellLen: 32,
	}
}

// Validate checks the layout for values the flattener cannot work with.
func (l Layout) Validate() error {
	if l.MetadataColumns < 0 {
		return fmt.Errorf("metadata_columns must not be negative")
	}
	if l.MinColumns < 1 {
		return fmt.Errorf("min_columns must be positive")
	}
	if l.TimeColumn < 0 || l.PeriodColumn < 0 {
		return fmt.Errorf("time_column and period_column must not be negative")
	}
	if len(l.Tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	for _, t := range l.Tiers {
		if !tierLabel.MatchString(t.Label) {
			return fmt.Errorf("tier label %q must be upper-case letters", t.Label)
		}
		if t.First > t.Last {
			return fmt.Errorf("tier %s: first %d after last %d", t.Label, t.First, t.Last)
		}
	}
	if _, err := ParseStrategyKind(string(l.DayStrategy)); err != nil {
		return err
	}
	if l.RowsPerDay < 1 {
		return fmt.Errorf("rows_per_day must be positive")
	}
	if _, err := regexp.Compile(l.DayStartPattern); err != nil {
		return fmt.Errorf("day_start_pattern: %w", err)
	}
	if l.MaxCellLen < 1 || l.MultiCodeMaxCellLen < 1 {
		return fmt.Errorf("cell length bounds must be positive")
	}
	return nil
}

// ClassFor maps a grid column to its class section. ok is false for metadata
// columns and for positions outside every tier.
func (l Layout) ClassFor(col, offset int) (section string, ok bool) {
	if col < l.MetadataColumns {
		return "", false
	}
	pos := col + offset
	for _, t := range l.Tiers {
		if pos >= t.First && pos <= t.Last {
			return t.Label + "-" + strconv.Itoa(pos-t.First+1), true
		}
	}
	return "", false
}

func (l Layout) maxCellLen() int {
	if l.MultiCode {
		return l.MultiCodeMaxCellLen
	}
	return l.MaxCellLen
}
