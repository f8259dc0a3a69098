package validation

import (
	"github.com/goliatone/go-riskform/pkg/constraints"
)

// Validate evaluates snap against table. It is pure: the same snapshot always
// yields the same violations in the same order. Nil arguments fall back to
// the default table and English messages.
func Validate(table *constraints.Table, snap Snapshot, msgs Messages) Result {
	if table == nil {
		table = constraints.Default()
	}
	if msgs == nil {
		msgs = EnglishMessages{}
	}

	var result Result
	for _, rule := range table.Numeric() {
		value := snap[rule.Field]
		if !value.Present {
			result.Violations = append(result.Violations, Violation{
				Field:   rule.Field,
				Kind:    KindMissing,
				Message: msgs.Selection(rule.Field),
			})
			continue
		}
		if kind, ok := CheckNumeric(rule, value.Raw); !ok {
			result.Violations = append(result.Violations, Violation{
				Field:   rule.Field,
				Kind:    kind,
				Message: msgs.Range(rule),
			})
		}
	}

	for _, rule := range table.Enumerated() {
		value := snap[rule.Field]
		if value.Present && value.Raw != "" && rule.Allows(value.Raw) {
			continue
		}
		result.Violations = append(result.Violations, Violation{
			Field:   rule.Field,
			Kind:    KindSelection,
			Message: msgs.Selection(rule.Field),
		})
	}
	return result
}

// CheckNumeric applies a numeric rule to a raw value. On failure the kind
// says whether the value did not parse or was out of bounds.
func CheckNumeric(rule constraints.Rule, raw string) (ViolationKind, bool) {
	value, ok := constraints.ParseNumber(raw)
	if !ok {
		return KindParse, false
	}
	if !rule.InRange(value) {
		return KindRange, false
	}
	return "", true
}
