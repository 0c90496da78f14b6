package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSelector is returned when a query names neither a teacher nor a class.
var ErrInvalidSelector = errors.New("selector needs a teacher code or a class section")

// EmptyMarker fills grid cells with no occupancy.
const EmptyMarker = "-"

// ValueKind selects what a grid cell shows.
type ValueKind string

const (
	ValueClass     ValueKind = "class"
	ValueSubject   ValueKind = "subject"
	ValueTeacher   ValueKind = "teacher"
	ValueComposite ValueKind = "composite"
)

// ParseValueKind validates a value kind; empty means the selector's default.
func ParseValueKind(s string) (ValueKind, error) {
	switch ValueKind(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case ValueClass:
		return ValueClass, nil
	case ValueSubject:
		return ValueSubject, nil
	case ValueTeacher:
		return ValueTeacher, nil
	case ValueComposite:
		return ValueComposite, nil
	}
	return "", fmt.Errorf("unknown value kind %q", s)
}

// Selector chooses which records a View covers.
// Teacher and Class may be combined; both filters then apply.
type Selector struct {
	Teacher []string  `json:"teacher,omitempty" yaml:"teacher,omitempty"`
	Class   string    `json:"class,omitempty" yaml:"class,omitempty"`
	Value   ValueKind `json:"value" yaml:"value"`
}

func (s Selector) matches(r Record) bool {
	if s.Class != "" && r.ClassSection != s.Class {
		return false
	}
	if len(s.Teacher) == 0 {
		return true
	}
	for _, code := range s.Teacher {
		if r.HasTeacher(code) {
			return true
		}
	}
	return false
}

// ViewRow is one period of a pivoted grid. Cells and Times have one entry per
// weekday in View.Days. Time is the first time range seen for the period;
// Times keeps each day's own range, empty where the day has no record.
type ViewRow struct {
	Period int      `json:"period" yaml:"period"`
	Label  string   `json:"label" yaml:"label"`
	Time   string   `json:"time" yaml:"time"`
	Times  []string `json:"times" yaml:"times"`
	Cells  []string `json:"cells" yaml:"cells"`
}

// TimeText joins the distinct per-day time ranges in weekday order.
func (r ViewRow) TimeText() string {
	var parts []string
	seen := make(map[string]bool)
	for _, t := range r.Times {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return r.Time
	}
	return strings.Join(parts, " / ")
}

// View is a period x weekday matrix.
type View struct {
	Selector Selector  `json:"selector" yaml:"selector"`
	Days     []Weekday `json:"days" yaml:"days"`
	Rows     []ViewRow `json:"rows" yaml:"rows"`
	// Unplaced counts matching records whose day could not be inferred.
	Unplaced int `json:"unplaced" yaml:"unplaced"`
}

// Cell returns the value shown for (day, period), or EmptyMarker.
func (v *View) Cell(day Weekday, period int) string {
	if day < Monday || day > Friday {
		return EmptyMarker
	}
	for _, row := range v.Rows {
		if row.Period == period {
			return row.Cells[day]
		}
	}
	return EmptyMarker
}

type rowKey struct {
	period int
	label  string
}

func keyOf(r Record) rowKey {
	k := rowKey{period: r.Period}
	if r.Period == UnknownPeriod {
		k.label = r.PeriodLabel
	}
	return k
}

// Query filters db's records with sel and pivots them into a View.
// When two records share a (day, period) slot the first one wins.
func Query(db *Database, sel Selector) (*View, error) {
	if len(sel.Teacher) == 0 && sel.Class == "" {
		return nil, ErrInvalidSelector
	}
	if sel.Value == "" {
		sel.Value = ValueClass
		if len(sel.Teacher) == 0 {
			sel.Value = ValueTeacher
		}
	}

	view := &View{Selector: sel, Days: Weekdays}
	rows := make(map[rowKey]*ViewRow)
	taken := make(map[rowKey][]bool)
	var order []rowKey

	for _, r := range db.Records {
		if !sel.matches(r) {
			continue
		}
		if r.Day == Other {
			view.Unplaced++
			continue
		}
		k := keyOf(r)
		row, ok := rows[k]
		if !ok {
			row = &ViewRow{
				Period: r.Period,
				Label:  r.PeriodLabel,
				Time:   r.Time,
				Times:  make([]string, len(Weekdays)),
				Cells:  make([]string, len(Weekdays)),
			}
			for i := range row.Cells {
				row.Cells[i] = EmptyMarker
			}
			rows[k] = row
			taken[k] = make([]bool, len(Weekdays))
			order = append(order, k)
		}
		if row.Time == "" {
			row.Time = r.Time
		}
		if row.Times[r.Day] == "" {
			row.Times[r.Day] = r.Time
		}
		if taken[k][r.Day] {
			continue
		}
		taken[k][r.Day] = true
		if v := cellValue(db.Roster, sel, r); v != "" {
			row.Cells[r.Day] = v
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].period != order[j].period {
			return order[i].period < order[j].period
		}
		return order[i].label < order[j].label
	})
	for _, k := range order {
		view.Rows = append(view.Rows, *rows[k])
	}
	return view, nil
}

// relevantCodes narrows a record's codes to the selected teachers, if any.
func relevantCodes(sel Selector, r Record) []string {
	if len(sel.Teacher) == 0 {
		return r.TeacherCodes
	}
	var out []string
	for _, c := range r.TeacherCodes {
		for _, want := range sel.Teacher {
			if c == want {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func cellValue(roster Roster, sel Selector, r Record) string {
	codes := relevantCodes(sel, r)
	switch sel.Value {
	case ValueClass:
		return r.ClassSection
	case ValueSubject:
		return subjectText(roster, codes)
	case ValueTeacher:
		return teacherText(roster, codes)
	case ValueComposite:
		var parts []string
		for _, p := range []string{r.ClassSection, teacherText(roster, codes), subjectText(roster, codes)} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

// TeacherDisplay renders "Name (CODE)", or the bare code when it is not in the roster.
func TeacherDisplay(roster Roster, code string) string {
	if e, ok := roster[code]; ok && e.Name != "" {
		return fmt.Sprintf("%s (%s)", e.Name, code)
	}
	return code
}

func teacherText(roster Roster, codes []string) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, TeacherDisplay(roster, c))
	}
	return strings.Join(parts, ", ")
}

func subjectText(roster Roster, codes []string) string {
	seen := make(map[string]bool)
	var parts []string
	for _, c := range codes {
		s := roster[c].Subject
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// TableHeader labels the period, time and weekday columns.
func (v *View) TableHeader() []string {
	h := []string{"PERIOD", "TIME"}
	for _, d := range v.Days {
		h = append(h, d.String())
	}
	return h
}

// TableRows returns one line per period.
func (v *View) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, append([]string{r.Label, r.TimeText()}, r.Cells...))
	}
	return rows
}
