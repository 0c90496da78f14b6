package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// Rule rewrites a raw grid token. Pattern is matched against the whole token;
// Replace may reference capture groups. When Day is set the rule only applies
// to rows inferred on that weekday.
type Rule struct {
	Name    string `mapstructure:"name" yaml:"name" json:"name"`
	Pattern string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
	Replace string `mapstructure:"replace" yaml:"replace" json:"replace"`
	Day     string `mapstructure:"day" yaml:"day,omitempty" json:"day,omitempty"`
}

// DefaultRules are the corrections known for the source schedule, in priority order.
func DefaultRules() []Rule {
	return []Rule{
		// Misprint in the Friday block only; 32A is a different teacher on other days.
		{Name: "friday-32a", Pattern: `32A`, Replace: "35A", Day: "FRI"},
		{Name: "trailing-8", Pattern: `(\d+)8`, Replace: "${1}B"},
		{Name: "trailing-4", Pattern: `(\d+)4`, Replace: "${1}A"},
		{Name: "letter-o-5", Pattern: `O5`, Replace: "05"},
		{Name: "lower-l-2", Pattern: `l2`, Replace: "12"},
	}
}

// WithoutRules drops rules whose name is listed in disabled.
func WithoutRules(rules []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return rules
	}
	skip := make(map[string]bool, len(disabled))
	for _, n := range disabled {
		skip[n] = true
	}
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if !skip[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

type compiledRule struct {
	Rule
	re     *regexp.Regexp
	day    schedule.Weekday
	hasDay bool
}

// Canonicalizer applies an ordered rule table to grid tokens. The first
// matching rule wins.
type Canonicalizer struct {
	rules []compiledRule
}

// NewCanonicalizer compiles rules. Patterns are anchored to the whole token.
func NewCanonicalizer(rules []Rule) (*Canonicalizer, error) {
	c := &Canonicalizer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		pattern := strings.TrimSuffix(strings.TrimPrefix(r.Pattern, "^"), "$")
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		cr := compiledRule{Rule: r, re: re}
		if r.Day != "" {
			day, err := schedule.ParseWeekday(r.Day)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.Name, err)
			}
			cr.day, cr.hasDay = day, true
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// MustCanonicalizer is NewCanonicalizer for rule tables known to be valid.
func MustCanonicalizer(rules []Rule) *Canonicalizer {
	c, err := NewCanonicalizer(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns the active rule table.
func (c *Canonicalizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

// Canonicalize rewrites a single token seen on day.
func (c *Canonicalizer) Canonicalize(token string, day schedule.Weekday) string {
	for _, r := range c.rules {
		if r.hasDay && r.day != day {
			continue
		}
		if r.re.MatchString(token) {
			return r.re.ReplaceAllString(token, r.Replace)
		}
	}
	return token
}

func isTokenSep(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '/' || r == ','
}

// Codes splits a grid cell into tokens, canonicalizes each one and keeps those
// that look like teacher codes. Order is preserved and duplicates removed.
func (c *Canonicalizer) Codes(cell string, day schedule.Weekday) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(cell, isTokenSep) {
		code := c.Canonicalize(tok, day)
		if !CodePattern.MatchString(code) || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
