// Package schedule holds the schedule database model and the query layer that
// pivots occupancy records into day/period grids.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Weekday is the school day an occupancy record belongs to.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	// Other collects rows inferred past Friday.
	Other
)

// Weekdays lists the five school days in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"MON", "TUE", "WED", "THU", "FRI", "OTHER"}

// WeekdayFromIndex maps a zero-based day index to a Weekday.
// Anything outside Monday..Friday is Other.
func WeekdayFromIndex(i int) Weekday {
	if i < 0 || i > int(Friday) {
		return Other
	}
	return Weekday(i)
}

// ParseWeekday parses the upper-case short name produced by String.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if s == name {
			return Weekday(i), nil
		}
	}
	return Other, fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) String() string {
	if d < Monday || d > Other {
		return weekdayNames[Other]
	}
	return weekdayNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(b []byte) error {
	w, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = w
	return nil
}

// UnknownPeriod is used when a period label carries no digits, so those rows sort last.
const UnknownPeriod = 99

var digitsRe = regexp.MustCompile(`\d+`)

// ParsePeriod extracts the period number from a raw label such as "3" or "Jam 3".
func ParsePeriod(label string) int {
	m := digitsRe.FindString(label)
	if m == "" {
		return UnknownPeriod
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return UnknownPeriod
	}
	return n
}

// RosterEntry is one teacher from the roster page.
type RosterEntry struct {
	Code    string `json:"-" yaml:"code"`
	Name    string `json:"name" yaml:"name"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// Roster maps teacher code to roster entry.
type Roster map[string]RosterEntry

// Record is one occupied grid cell.
type Record struct {
	Day          Weekday  `json:"day" yaml:"day"`
	Period       int      `json:"period" yaml:"period"`
	PeriodLabel  string   `json:"period_label" yaml:"period_label"`
	Time         string   `json:"time" yaml:"time"`
	ClassSection string   `json:"class_section" yaml:"class_section"`
	TeacherCodes []string `json:"teacher_codes" yaml:"teacher_codes"`
}

// HasTeacher reports whether code occupies this cell.
func (r Record) HasTeacher(code string) bool {
	for _, c := range r.TeacherCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Database is the persisted artifact derived from one PDF upload.
type Database struct {
	Roster  Roster   `json:"roster" yaml:"roster"`
	Records []Record `json:"records" yaml:"records"`
}

// Summary describes a database without its records.
type Summary struct {
	Teachers int      `json:"teachers" yaml:"teachers"`
	Records  int      `json:"records" yaml:"records"`
	Classes  []string `json:"classes" yaml:"classes"`
}

// Summarize returns counts for status displays.
func (db *Database) Summarize() Summary {
	return Summary{
		Teachers: len(db.Roster),
		Records:  len(db.Records),
		Classes:  Classes(db),
	}
}
