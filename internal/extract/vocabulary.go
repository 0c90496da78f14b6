package extract

import (
	"fmt"
	"sort"
)

// Vocabulary is the set of upper-case keywords used to recognise pages and header rows.
type Vocabulary struct {
	Name string

	// A roster page has a name word and a code word, or a roster heading.
	RosterNameWords []string
	RosterCodeWords []string
	RosterHeadings  []string
	// RosterExclude marks grid pages that happen to carry roster-like words.
	RosterExclude []string

	// ScheduleKeywords are counted; MinScheduleMatches of them mark a grid page.
	ScheduleKeywords   []string
	MinScheduleMatches int

	// A row containing both a time word and a period word is a repeated header.
	HeaderTimeWords   []string
	HeaderPeriodWords []string
}

// English is the default vocabulary.
var English = Vocabulary{
	Name:            "en",
	RosterNameWords: []string{"NAME"},
	RosterCodeWords: []string{"CODE"},
	RosterHeadings:  []string{"TEACHER LIST"},
	RosterExclude:   []string{"TIME"},
	ScheduleKeywords: []string{
		"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY",
		"TIME", "PERIOD NO.",
	},
	MinScheduleMatches: 2,
	HeaderTimeWords:    []string{"TIME"},
	HeaderPeriodWords:  []string{"PERIOD NO."},
}

// Indonesian matches schedules printed by Indonesian high schools.
var Indonesian = Vocabulary{
	Name:            "id",
	RosterNameWords: []string{"NAMA"},
	RosterCodeWords: []string{"KODE"},
	RosterHeadings:  []string{"DAFTAR GURU"},
	RosterExclude:   []string{"PUKUL"},
	ScheduleKeywords: []string{
		"SENIN", "SELASA", "RABU", "KAMIS", "JUMAT",
		"WAKTU", "JAM KE",
	},
	MinScheduleMatches: 2,
	HeaderTimeWords:    []string{"WAKTU"},
	HeaderPeriodWords:  []string{"JAM KE"},
}

var vocabularies = map[string]Vocabulary{
	English.Name:    English,
	Indonesian.Name: Indonesian,
}

// LookupVocabulary returns a built-in vocabulary by name.
func LookupVocabulary(name string) (Vocabulary, error) {
	if name == "" {
		return English, nil
	}
	v, ok := vocabularies[name]
	if !ok {
		return Vocabulary{}, fmt.Errorf("unknown vocabulary %q (have %v)", name, VocabularyNames())
	}
	return v, nil
}

// VocabularyNames lists the built-in vocabularies.
func VocabularyNames() []string {
	names := make([]string, 0, len(vocabularies))
	for n := range vocabularies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// isHeaderRow reports whether the joined, upper-cased row text is a repeated header.
func (v Vocabulary) isHeaderRow(joined string) bool {
	return containsAny(joined, v.HeaderTimeWords) && containsAny(joined, v.HeaderPeriodWords)
}
