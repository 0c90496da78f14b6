package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// FlattenResult is the output of one Flatten call.
type FlattenResult struct {
	Records  []schedule.Record
	Strategy StrategyKind
	// RowsAccepted counts data rows fed to the day strategy.
	RowsAccepted int
	// RowsRejected counts short rows and repeated header rows.
	RowsRejected int
	// CellsDropped counts non-empty class-area cells that produced no record.
	CellsDropped int
}

// Flattener turns ruled schedule tables into occupancy records.
type Flattener struct {
	layout Layout
	vocab  Vocabulary
	canon  *Canonicalizer
	marker *regexp.Regexp
}

// NewFlattener validates layout and compiles its day-start pattern.
func NewFlattener(layout Layout, vocab Vocabulary, canon *Canonicalizer) (*Flattener, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if canon == nil {
		return nil, fmt.Errorf("canonicalizer is required")
	}
	return &Flattener{
		layout: layout,
		vocab:  vocab,
		canon:  canon,
		marker: regexp.MustCompile(layout.DayStartPattern),
	}, nil
}

type dataRow struct {
	page  int
	cells []string
}

// Flatten reads every table of pages in order. offset shifts the column to
// class mapping. Pages without tables contribute nothing.
func (f *Flattener) Flatten(pages []Page, offset int) FlattenResult {
	var res FlattenResult

	var rows []dataRow
	for _, p := range pages {
		for _, table := range p.Tables {
			for _, raw := range table {
				row := CleanRow(raw)
				if len(row) < f.layout.MinColumns || f.vocab.isHeaderRow(upper(strings.Join(row, ""))) {
					res.RowsRejected++
					continue
				}
				rows = append(rows, dataRow{page: p.Index, cells: row})
			}
		}
	}
	res.RowsAccepted = len(rows)

	days := f.strategyFor(rows)
	res.Strategy = days.Kind()

	lastPage := 0
	for i, row := range rows {
		if f.layout.ResetPerPage && i > 0 && row.page != lastPage {
			days.Reset()
		}
		lastPage = row.page

		day := days.Next(row.cells)
		label := cellAt(row.cells, f.layout.PeriodColumn)
		period := schedule.ParsePeriod(label)
		timeRange := cellAt(row.cells, f.layout.TimeColumn)

		for col := f.layout.MetadataColumns; col < len(row.cells); col++ {
			cell := row.cells[col]
			if cell == "" {
				continue
			}
			section, ok := f.layout.ClassFor(col, offset)
			if !ok || utf8.RuneCountInString(cell) > f.layout.maxCellLen() {
				res.CellsDropped++
				continue
			}
			codes := f.canon.Codes(cell, day)
			if !f.layout.MultiCode && len(codes) > 1 {
				codes = codes[:1]
			}
			if len(codes) == 0 {
				res.CellsDropped++
				continue
			}
			res.Records = append(res.Records, schedule.Record{
				Day:          day,
				Period:       period,
				PeriodLabel:  label,
				Time:         timeRange,
				ClassSection: section,
				TeacherCodes: codes,
			})
		}
	}
	return res
}

// strategyFor picks one strategy for the whole call.
func (f *Flattener) strategyFor(rows []dataRow) DayStrategy {
	marker := NewMarkerStrategy(f.marker, f.layout.TimeColumn)
	switch f.layout.DayStrategy {
	case StrategyMarker:
		return marker
	case StrategyFixed:
		return NewFixedRowsStrategy(f.layout.RowsPerDay)
	}
	for _, r := range rows {
		if marker.matches(r.cells) {
			return marker
		}
	}
	return NewFixedRowsStrategy(f.layout.RowsPerDay)
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
