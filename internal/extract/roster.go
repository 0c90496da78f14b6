package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// CodePattern matches a plausible teacher code: digits with an optional trailing capital.
var CodePattern = regexp.MustCompile(`^\d+[A-Z]?$`)

// rosterSlots are the offsets of the code column in each of the three
// [code, name, subject] records printed side by side on one roster row.
var rosterSlots = []int{0, 3, 6}

// rosterTrailing8 fixes codes whose final "B" was read as "8". Roster only;
// the grid uses the Canonicalizer rules instead.
var rosterTrailing8 = regexp.MustCompile(`^(\d+)8$`)

// ParseRoster extracts code, name and subject triples from the roster page.
// A nil page yields an empty roster. Duplicate codes keep the last entry.
func ParseRoster(page *Page) schedule.Roster {
	roster := make(schedule.Roster)
	if page == nil {
		return roster
	}

	for _, table := range page.Tables {
		for _, row := range table {
			// Empty cells are dropped before slotting, as the source
			// extraction collapses merged blank cells.
			var clean []string
			for _, cell := range row {
				if c := CleanCell(cell); c != "" {
					clean = append(clean, c)
				}
			}

			for _, i := range rosterSlots {
				if i+1 >= len(clean) {
					continue
				}
				code := rosterTrailing8.ReplaceAllString(clean[i], "${1}B")
				name := strings.Join(strings.Fields(clean[i+1]), " ")
				if !CodePattern.MatchString(code) || utf8.RuneCountInString(name) <= 2 {
					continue
				}

				entry := schedule.RosterEntry{Code: code, Name: name}
				if i+2 < len(clean) && !CodePattern.MatchString(clean[i+2]) {
					entry.Subject = strings.Join(strings.Fields(clean[i+2]), " ")
				}
				roster[code] = entry
			}
		}
	}
	return roster
}
