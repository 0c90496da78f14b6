package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidDatabase is returned when a stored artifact fails validation.
var ErrInvalidDatabase = errors.New("invalid schedule database")

// UnmarshalJSON restores each entry's Code from its map key.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var raw map[string]RosterEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Roster, len(raw))
	for code, entry := range raw {
		entry.Code = code
		out[code] = entry
	}
	*r = out
	return nil
}

// Encode serialises the database to its persisted JSON form. The output is
// checked against DatabaseSchema, so anything Encode returns can be decoded.
func (db *Database) Encode() ([]byte, error) {
	out := Database{Roster: db.Roster, Records: db.Records}
	if out.Roster == nil {
		out.Roster = Roster{}
	}
	if out.Records == nil {
		out.Records = []Record{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode parses and validates a persisted database.
func Decode(data []byte) (*Database, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatabase, err)
	}
	if db.Roster == nil {
		db.Roster = Roster{}
	}
	return &db, nil
}

// Teachers returns the roster sorted by name, then code.
func Teachers(db *Database) []RosterEntry {
	out := make([]RosterEntry, 0, len(db.Roster))
	for code, e := range db.Roster {
		e.Code = code
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// LookupByName returns the code of the first teacher (in Teachers order) whose
// name matches case-insensitively.
func LookupByName(db *Database, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, e := range Teachers(db) {
		if strings.EqualFold(e.Name, name) {
			return e.Code, true
		}
	}
	return "", false
}

// Classes returns the distinct class sections in tier, then section order.
func Classes(db *Database) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range db.Records {
		if !seen[r.ClassSection] {
			seen[r.ClassSection] = true
			out = append(out, r.ClassSection)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessClass(out[i], out[j]) })
	return out
}

func lessClass(a, b string) bool {
	ta, sa := splitClass(a)
	tb, sb := splitClass(b)
	ra, rb := romanValue(ta), romanValue(tb)
	if ra != rb {
		return ra < rb
	}
	if ta != tb {
		return ta < tb
	}
	if sa != sb {
		return sa < sb
	}
	return a < b
}

func splitClass(label string) (tier string, section int) {
	i := strings.LastIndex(label, "-")
	if i < 0 {
		return label, 0
	}
	n, err := strconv.Atoi(label[i+1:])
	if err != nil {
		return label, 0
	}
	return label[:i], n
}

// romanValue returns the value of a roman numeral tier, or 0 if it is not one.
func romanValue(s string) int {
	values := map[rune]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100}
	total, prev := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := values[rune(s[i])]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}
