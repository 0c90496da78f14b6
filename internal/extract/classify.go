package extract

import "strings"

// NoPage marks an absent page index.
const NoPage = -1

// Classification is the result of scanning every page of a document.
type Classification struct {
	// RosterPage is the last page that looks like a teacher roster, or NoPage.
	RosterPage int `json:"roster_page" yaml:"roster_page"`
	// SchedulePages are all pages that look like the weekly grid, in document order.
	SchedulePages []int `json:"schedule_pages" yaml:"schedule_pages"`
}

// RosterPageOrDefault applies the fallback used when no roster page was found:
// the second page, or the first one for single-page documents.
func (c Classification) RosterPageOrDefault(pageCount int) int {
	if c.RosterPage != NoPage {
		return c.RosterPage
	}
	if pageCount > 1 {
		return 1
	}
	return 0
}

// GridDetected reports whether any schedule page was found.
func (c Classification) GridDetected() bool {
	return len(c.SchedulePages) > 0
}

// Classify tags each page as a roster page, a schedule page, or neither.
// Roster detection keeps the last match; schedule detection keeps all of them.
func Classify(pages []Page, vocab Vocabulary) Classification {
	out := Classification{RosterPage: NoPage}
	for i, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		text := upper(p.Text)

		if isRosterText(text, vocab) {
			out.RosterPage = i
		}

		matches := 0
		for _, k := range vocab.ScheduleKeywords {
			if strings.Contains(text, k) {
				matches++
			}
		}
		if matches >= vocab.MinScheduleMatches {
			out.SchedulePages = append(out.SchedulePages, i)
		}
	}
	return out
}

func isRosterText(text string, vocab Vocabulary) bool {
	listed := containsAny(text, vocab.RosterNameWords) && containsAny(text, vocab.RosterCodeWords)
	if !listed && !containsAny(text, vocab.RosterHeadings) {
		return false
	}
	return !containsAny(text, vocab.RosterExclude)
}
