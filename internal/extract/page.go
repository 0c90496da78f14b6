// Package extract turns classified PDF pages into a schedule database.
//
// The pipeline is pure: it works on in-memory pages (text plus line-ruled
// tables) and never touches the filesystem. Layout assumptions that belong to
// one document template (class columns, rows per day, typo corrections) are
// carried as data in Layout, Vocabulary and Rule values.
package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Table is a ruled table as rows of cell text. Empty cells are "".
type Table [][]string

// Page is one PDF page: its plain text and the tables detected on it.
type Page struct {
	Index  int
	Text   string
	Tables []Table
}

// CleanCell folds compatibility characters, turns newlines into spaces and trims.
func CleanCell(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// CleanRow applies CleanCell to every cell, keeping positions.
func CleanRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = CleanCell(c)
	}
	return out
}

// upper upper-cases text for keyword matching.
func upper(s string) string {
	return cases.Upper(language.Und).String(norm.NFKC.String(s))
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
