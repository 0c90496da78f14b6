// Package testutil holds fixtures shared by package tests above the pipeline:
// sample pages, a sample database and a fake PDF reader.
package testutil

import (
	"context"

	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/schedule"
)

// GridRow builds a schedule table row wide enough for the default tiers, with
// time and period in the metadata columns and codes placed by column.
func GridRow(time, period string, codes map[int]string) []string {
	row := make([]string, 39)
	row[1] = time
	row[2] = period
	for col, code := range codes {
		row[col] = code
	}
	return row
}

// Pages returns a two page document: a roster page for 32A, then a schedule
// page with 32A in column 5 (class X-3 at offset 0) on Monday period 1.
func Pages() []extract.Page {
	return []extract.Page{
		{
			Index:  0,
			Text:   "NAME CODE",
			Tables: []extract.Table{{{"32A", "Ani Rahma", "Mathematics"}}},
		},
		{
			Index:  1,
			Text:   "MONDAY TUESDAY TIME",
			Tables: []extract.Table{{GridRow("06.30-07.15", "1", map[int]string{5: "32A"})}},
		},
	}
}

// Database returns a small stored schedule: two roster teachers, three records
// and one code (40B) that only appears in the grid.
func Database() *schedule.Database {
	return &schedule.Database{
		Roster: schedule.Roster{
			"32A": {Name: "Ani Rahma", Subject: "Mathematics"},
			"35A": {Name: "Budi Santoso", Subject: "Physics"},
		},
		Records: []schedule.Record{
			{Day: schedule.Monday, Period: 1, PeriodLabel: "1", Time: "06.30-07.15", ClassSection: "X-3", TeacherCodes: []string{"32A"}},
			{Day: schedule.Tuesday, Period: 2, PeriodLabel: "2", Time: "07.15-08.00", ClassSection: "XI-1", TeacherCodes: []string{"35A", "32A"}},
			{Day: schedule.Friday, Period: 1, PeriodLabel: "1", Time: "06.30-07.15", ClassSection: "X-3", TeacherCodes: []string{"40B"}},
		},
	}
}

// FakeReader returns fixed pages or a fixed error instead of parsing a PDF.
type FakeReader struct {
	Pages []extract.Page
	Err   error
	Calls int
}

func (f *FakeReader) Read(_ context.Context, _ []byte) ([]extract.Page, error) {
	f.Calls++
	return f.Pages, f.Err
}
