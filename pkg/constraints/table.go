package constraints

import (
	"slices"
	"strconv"
)

// Kind distinguishes the two rule shapes a field can carry.
type Kind string

const (
	KindNumeric    Kind = "numeric-range"
	KindEnumerated Kind = "enumerated"
)

// Rule declares the validity rule for a single field. Numeric rules use the
// inclusive Min/Max bounds; enumerated rules use Allowed.
type Rule struct {
	Field   string   `json:"field"`
	Kind    Kind     `json:"kind"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

// InRange reports whether value satisfies min <= value <= max.
func (r Rule) InRange(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Allows reports whether value is a member of the allowed set.
func (r Rule) Allows(value string) bool {
	return slices.Contains(r.Allowed, value)
}

// Bounds returns the numeric bounds formatted the way they are shown to users
// (no trailing zeros, so 0 and 6 rather than 0.000000).
func (r Rule) Bounds() (string, string) {
	return FormatNumber(r.Min), FormatNumber(r.Max)
}

// Table is the ordered set of rules. Order is significant: validation results
// list numeric fields first and enumerated fields second, each in table order.
type Table struct {
	rules []Rule
	index map[string]int
}

// New builds a table from rules, keeping their order. Later duplicates
// replace earlier ones in place.
func New(rules ...Rule) *Table {
	t := &Table{index: make(map[string]int, len(rules))}
	for _, rule := range rules {
		if rule.Field == "" {
			continue
		}
		if idx, ok := t.index[rule.Field]; ok {
			t.rules[idx] = cloneRule(rule)
			continue
		}
		t.index[rule.Field] = len(t.rules)
		t.rules = append(t.rules, cloneRule(rule))
	}
	return t
}

// Lookup returns the rule for field.
func (t *Table) Lookup(field string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	idx, ok := t.index[field]
	if !ok {
		return Rule{}, false
	}
	return cloneRule(t.rules[idx]), true
}

// Rules returns every rule in table order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, 0, len(t.rules))
	for _, rule := range t.rules {
		out = append(out, cloneRule(rule))
	}
	return out
}

// Numeric returns the numeric rules in table order.
func (t *Table) Numeric() []Rule {
	return t.ofKind(KindNumeric)
}

// Enumerated returns the enumerated rules in table order.
func (t *Table) Enumerated() []Rule {
	return t.ofKind(KindEnumerated)
}

// Fields returns the field identifiers in validation order.
func (t *Table) Fields() []string {
	var out []string
	for _, rule := range t.Numeric() {
		out = append(out, rule.Field)
	}
	for _, rule := range t.Enumerated() {
		out = append(out, rule.Field)
	}
	return out
}

func (t *Table) ofKind(kind Kind) []Rule {
	if t == nil {
		return nil
	}
	var out []Rule
	for _, rule := range t.rules {
		if rule.Kind == kind {
			out = append(out, cloneRule(rule))
		}
	}
	return out
}

// Numeric builds a numeric-range rule.
func Numeric(field string, min, max float64) Rule {
	return Rule{Field: field, Kind: KindNumeric, Min: min, Max: max}
}

// Enumerated builds an enumerated rule.
func Enumerated(field string, allowed ...string) Rule {
	return Rule{Field: field, Kind: KindEnumerated, Allowed: allowed}
}

// Field identifiers of the clinical form.
const (
	FieldAge      = "age"
	FieldTrestbps = "trestbps"
	FieldChol     = "chol"
	FieldThalach  = "thalach"
	FieldOldpeak  = "oldpeak"
	FieldSex      = "sex"
	FieldFbs      = "fbs"
	FieldExang    = "exang"
	FieldCp       = "cp"
	FieldRestecg  = "restecg"
	FieldSlope    = "slope"
	FieldCa       = "ca"
	FieldThal     = "thal"
)

var defaultTable = New(
	Numeric(FieldAge, 20, 100),
	Numeric(FieldTrestbps, 80, 200),
	Numeric(FieldChol, 100, 400),
	Numeric(FieldThalach, 70, 220),
	Numeric(FieldOldpeak, 0, 6),
	Enumerated(FieldSex, "0", "1"),
	Enumerated(FieldFbs, "0", "1"),
	Enumerated(FieldExang, "0", "1"),
	Enumerated(FieldCp, "0", "1", "2", "3", "4"),
	Enumerated(FieldRestecg, "0", "1", "2"),
	Enumerated(FieldSlope, "0", "1", "2"),
	Enumerated(FieldCa, "0", "1", "2", "3", "4"),
	Enumerated(FieldThal, "0", "1", "2"),
)

// Default returns the clinical constraint table. The table is shared and
// read-only; callers needing variations should build their own with New.
func Default() *Table {
	return defaultTable
}

// FormatNumber renders a float without exponent or trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cloneRule(rule Rule) Rule {
	rule.Allowed = slices.Clone(rule.Allowed)
	return rule
}
