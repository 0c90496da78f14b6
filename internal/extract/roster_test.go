package extract

import (
	"reflect"
	"testing"
)

func rosterPage() *Page {
	return &Page{
		Index: 1,
		Text:  "TEACHER LIST",
		Tables: []Table{{
			{"CODE", "NAME", "SUBJECT", "CODE", "NAME", "SUBJECT", "CODE", "NAME", "SUBJECT"},
			{"32A", "Ani\nRahma", "Mathematics", "328", "Budi Santoso", "Physics", "12", "Citra Dewi", "Biology"},
			{"05", "", "Dodi  Hartono", "English", "x1", "Bad Code", "Art", "7", "Al", "Music"},
			{"32A", "Ani Rahma S.Pd", "Mathematics"},
			{"44", "Eka Putri"},
		}},
	}
}

func TestParseRoster(t *testing.T) {
	roster := ParseRoster(rosterPage())

	t.Run("newlines folded", func(t *testing.T) {
		if got := roster["32A"].Name; got != "Ani Rahma S.Pd" {
			t.Errorf("32A name = %q (last duplicate should win)", got)
		}
	})

	t.Run("trailing 8 read as B", func(t *testing.T) {
		e, ok := roster["32B"]
		if !ok || e.Name != "Budi Santoso" || e.Subject != "Physics" {
			t.Errorf("32B = %+v, %v", e, ok)
		}
		if _, ok := roster["328"]; ok {
			t.Error("uncorrected code 328 present")
		}
	})

	t.Run("empty cells compacted", func(t *testing.T) {
		e, ok := roster["05"]
		if !ok || e.Name != "Dodi Hartono" || e.Subject != "English" {
			t.Errorf("05 = %+v, %v", e, ok)
		}
	})

	t.Run("invalid code and short name rejected", func(t *testing.T) {
		if _, ok := roster["x1"]; ok {
			t.Error("x1 accepted")
		}
		if _, ok := roster["7"]; ok {
			t.Error("two-letter name accepted")
		}
	})

	t.Run("subject optional", func(t *testing.T) {
		e, ok := roster["44"]
		if !ok || e.Subject != "" {
			t.Errorf("44 = %+v, %v", e, ok)
		}
	})

	t.Run("header row ignored", func(t *testing.T) {
		if _, ok := roster["CODE"]; ok {
			t.Error("header accepted as entry")
		}
	})

	if len(roster) != 5 {
		t.Errorf("len(roster) = %d, want 5: %v", len(roster), roster)
	}
}

func TestParseRoster_Idempotent(t *testing.T) {
	page := rosterPage()
	first := ParseRoster(page)
	second := ParseRoster(page)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ParseRoster not idempotent:\n%v\n%v", first, second)
	}
}

func TestParseRoster_NilPage(t *testing.T) {
	roster := ParseRoster(nil)
	if roster == nil || len(roster) != 0 {
		t.Errorf("ParseRoster(nil) = %v, want empty", roster)
	}
}
