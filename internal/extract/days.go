package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// StrategyKind names a weekday inference strategy.
type StrategyKind string

const (
	// StrategyAuto uses the marker strategy when any accepted row carries the
	// start-of-day marker, and fixed rows otherwise.
	StrategyAuto   StrategyKind = "auto"
	StrategyMarker StrategyKind = "marker"
	StrategyFixed  StrategyKind = "fixed"
)

// ParseStrategyKind validates a strategy name; empty means auto.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch StrategyKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyMarker:
		return StrategyMarker, nil
	case StrategyFixed:
		return StrategyFixed, nil
	}
	return "", fmt.Errorf("unknown day strategy %q", s)
}

// DayStrategy assigns a weekday to each accepted data row, in order.
// Implementations are stateful and never move backwards.
type DayStrategy interface {
	Kind() StrategyKind
	// Next consumes one accepted row and returns its weekday.
	Next(row []string) schedule.Weekday
	// Reset restarts inference from Monday.
	Reset()
}

// FixedRowsStrategy assumes every day spans the same number of data rows.
type FixedRowsStrategy struct {
	RowsPerDay int
	count      int
}

// NewFixedRowsStrategy returns a strategy with n rows per day.
func NewFixedRowsStrategy(n int) *FixedRowsStrategy {
	return &FixedRowsStrategy{RowsPerDay: n}
}

func (s *FixedRowsStrategy) Kind() StrategyKind { return StrategyFixed }

func (s *FixedRowsStrategy) Next(_ []string) schedule.Weekday {
	day := schedule.WeekdayFromIndex(s.count / s.RowsPerDay)
	s.count++
	return day
}

func (s *FixedRowsStrategy) Reset() { s.count = 0 }

// MarkerStrategy starts a new day whenever the time cell carries the
// start-of-day marker. Rows before the first marker belong to Monday.
type MarkerStrategy struct {
	Marker     *regexp.Regexp
	TimeColumn int
	seen       int
}

// NewMarkerStrategy returns a marker strategy reading the time cell at col.
func NewMarkerStrategy(marker *regexp.Regexp, col int) *MarkerStrategy {
	return &MarkerStrategy{Marker: marker, TimeColumn: col}
}

func (s *MarkerStrategy) Kind() StrategyKind { return StrategyMarker }

func (s *MarkerStrategy) Next(row []string) schedule.Weekday {
	if s.matches(row) {
		s.seen++
	}
	idx := s.seen - 1
	if idx < 0 {
		idx = 0
	}
	return schedule.WeekdayFromIndex(idx)
}

func (s *MarkerStrategy) Reset() { s.seen = 0 }

func (s *MarkerStrategy) matches(row []string) bool {
	return s.TimeColumn < len(row) && s.Marker.MatchString(row[s.TimeColumn])
}
