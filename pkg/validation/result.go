package validation

// ViolationKind classifies why a field failed.
type ViolationKind string

const (
	// KindRange: a number was read but lies outside the rule's bounds.
	KindRange ViolationKind = "range"
	// KindParse: the value is not a number. Users see the range message.
	KindParse ViolationKind = "parse"
	// KindSelection: no option chosen, or the choice is not allowed.
	KindSelection ViolationKind = "selection"
	// KindMissing: no control for the field exists in the document.
	KindMissing ViolationKind = "missing"
)

// Violation is a single failed field.
type Violation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// Result is the outcome of one validation pass. Violations are ordered:
// numeric fields first, enumerated fields second, each in table order. An
// empty result means the form can be submitted.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// Valid reports whether the form may be submitted.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns the user-facing messages in order.
func (r Result) Messages() []string {
	if len(r.Violations) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Failed reports whether field has a violation.
func (r Result) Failed(field string) bool {
	for _, v := range r.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}
