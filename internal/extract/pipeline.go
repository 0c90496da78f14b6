package extract

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/timetable/internal/schedule"
)

var (
	// ErrNoPages is returned when a document has no pages at all.
	ErrNoPages = errors.New("document has no pages")
	// ErrPageOutOfRange is returned for override page indices outside the document.
	ErrPageOutOfRange = errors.New("page index out of range")
	// ErrDuplicatePage is returned when an override lists the same page twice.
	ErrDuplicatePage = errors.New("page index listed more than once")
)

// Options configures one Build call. Zero values select the defaults.
type Options struct {
	Vocabulary    *Vocabulary
	Layout        *Layout
	Canonicalizer *Canonicalizer
	// SchedulePages, when non-empty, replaces the classifier's schedule pages.
	SchedulePages []int
	ColumnOffset  int
	Logger        *slog.Logger
}

// Report describes what the pipeline detected, for the operator.
type Report struct {
	PageCount      int          `json:"page_count" yaml:"page_count"`
	RosterPage     int          `json:"roster_page" yaml:"roster_page"`
	RosterFallback bool         `json:"roster_fallback" yaml:"roster_fallback"`
	SchedulePages  []int        `json:"schedule_pages" yaml:"schedule_pages"`
	PagesOverride  bool         `json:"pages_override" yaml:"pages_override"`
	GridDetected   bool         `json:"grid_detected" yaml:"grid_detected"`
	ColumnOffset   int          `json:"column_offset" yaml:"column_offset"`
	DayStrategy    StrategyKind `json:"day_strategy" yaml:"day_strategy"`
	RowsAccepted   int          `json:"rows_accepted" yaml:"rows_accepted"`
	RowsRejected   int          `json:"rows_rejected" yaml:"rows_rejected"`
	CellsDropped   int          `json:"cells_dropped" yaml:"cells_dropped"`
	Teachers       int          `json:"teachers" yaml:"teachers"`
	Records        int          `json:"records" yaml:"records"`
}

// Result is a built database plus its report.
type Result struct {
	Database *schedule.Database `json:"-" yaml:"-"`
	Report   Report             `json:"report" yaml:"report"`
}

// Build runs classify, roster parsing and grid flattening over pages.
// Detection failures are reported, not returned as errors.
func Build(pages []Page, opts Options) (*Result, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	vocab := English
	if opts.Vocabulary != nil {
		vocab = *opts.Vocabulary
	}
	layout := DefaultLayout()
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	canon := opts.Canonicalizer
	if canon == nil {
		canon = MustCanonicalizer(DefaultRules())
	}
	flattener, err := NewFlattener(layout, vocab, canon)
	if err != nil {
		return nil, err
	}

	cls := Classify(pages, vocab)
	report := Report{
		PageCount:     len(pages),
		RosterPage:    cls.RosterPageOrDefault(len(pages)),
		SchedulePages: cls.SchedulePages,
		ColumnOffset:  opts.ColumnOffset,
	}
	if cls.RosterPage == NoPage {
		report.RosterFallback = true
		logger.Warn("no roster page detected, using fallback", "page", report.RosterPage)
	}
	if len(opts.SchedulePages) > 0 {
		seen := make(map[int]bool, len(opts.SchedulePages))
		for _, i := range opts.SchedulePages {
			if i < 0 || i >= len(pages) {
				return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrPageOutOfRange, i, len(pages))
			}
			if seen[i] {
				return nil, fmt.Errorf("%w: %d", ErrDuplicatePage, i)
			}
			seen[i] = true
		}
		report.SchedulePages = opts.SchedulePages
		report.PagesOverride = true
	}
	report.GridDetected = len(report.SchedulePages) > 0
	if !report.GridDetected {
		logger.Warn("no schedule pages detected")
	}
	logger.Info("pages classified",
		"roster_page", report.RosterPage,
		"schedule_pages", report.SchedulePages,
		"override", report.PagesOverride)

	roster := ParseRoster(&pages[report.RosterPage])

	grid := make([]Page, 0, len(report.SchedulePages))
	for _, i := range report.SchedulePages {
		grid = append(grid, pages[i])
	}
	flat := flattener.Flatten(grid, opts.ColumnOffset)

	report.DayStrategy = flat.Strategy
	report.RowsAccepted = flat.RowsAccepted
	report.RowsRejected = flat.RowsRejected
	report.CellsDropped = flat.CellsDropped
	report.Teachers = len(roster)
	report.Records = len(flat.Records)

	logger.Info("grid flattened",
		"strategy", flat.Strategy,
		"rows", flat.RowsAccepted,
		"rejected", flat.RowsRejected,
		"records", len(flat.Records),
		"teachers", len(roster))

	records := flat.Records
	if records == nil {
		records = []schedule.Record{}
	}
	return &Result{
		Database: &schedule.Database{Roster: roster, Records: records},
		Report:   report,
	}, nil
}
