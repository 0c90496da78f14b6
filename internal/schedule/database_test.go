package schedule

import (
	"errors"
	"testing"
)

func TestDatabase_RoundTrip(t *testing.T) {
	db := testDatabase()
	db.Records = db.Records[:4]

	data, err := db.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(got.Roster) != len(db.Roster) {
		t.Errorf("roster size = %d, want %d", len(got.Roster), len(db.Roster))
	}
	if got.Roster["32A"].Code != "32A" {
		t.Errorf("roster code not restored from key: %+v", got.Roster["32A"])
	}
	for i := range db.Records {
		if got.Records[i].ClassSection != db.Records[i].ClassSection || got.Records[i].Day != db.Records[i].Day {
			t.Errorf("record %d = %+v, want %+v", i, got.Records[i], db.Records[i])
		}
	}
}

func TestDecode_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing records", `{"roster": {}}`},
		{"bad day", `{"roster": {}, "records": [{"day": "SUN", "period": 1, "time": "", "class_section": "X-1", "teacher_codes": ["1"]}]}`},
		{"empty codes", `{"roster": {}, "records": [{"day": "MON", "period": 1, "time": "", "class_section": "X-1", "teacher_codes": []}]}`},
		{"unmapped class", `{"roster": {}, "records": [{"day": "MON", "period": 1, "time": "", "class_section": "?", "teacher_codes": ["1"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrInvalidDatabase) {
				t.Errorf("Decode() error = %v, want ErrInvalidDatabase", err)
			}
		})
	}
}

func TestEncode_EmptyDatabase(t *testing.T) {
	db := &Database{}
	data, err := db.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data) != `{"roster":{},"records":[]}` {
		t.Errorf("Encode() = %s", data)
	}
	if db.Roster != nil || db.Records != nil {
		t.Errorf("Encode() modified its receiver: %+v", db)
	}
}

func TestEncode_RejectsUndecodable(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"numeric grade", Record{Day: Monday, Period: 1, ClassSection: "10-1", TeacherCodes: []string{"32A"}}},
		{"no codes", Record{Day: Monday, Period: 1, ClassSection: "X-1", TeacherCodes: []string{}}},
		{"bad code", Record{Day: Monday, Period: 1, ClassSection: "X-1", TeacherCodes: []string{"A32"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{Roster: Roster{}, Records: []Record{tt.record}}
			if _, err := db.Encode(); !errors.Is(err, ErrInvalidDatabase) {
				t.Errorf("Encode() error = %v, want ErrInvalidDatabase", err)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"1", 1},
		{"Jam 12", 12},
		{"", UnknownPeriod},
		{"ISTIRAHAT", UnknownPeriod},
	}
	for _, tt := range tests {
		if got := ParsePeriod(tt.label); got != tt.want {
			t.Errorf("ParsePeriod(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestWeekdayFromIndex(t *testing.T) {
	if WeekdayFromIndex(0) != Monday || WeekdayFromIndex(4) != Friday {
		t.Error("weekday index mapping broken")
	}
	if WeekdayFromIndex(5) != Other || WeekdayFromIndex(-1) != Other {
		t.Error("out of range index should map to Other")
	}
	var d Weekday
	if err := d.UnmarshalText([]byte("fri")); err != nil || d != Friday {
		t.Errorf("UnmarshalText(fri) = %v, %v", d, err)
	}
}
