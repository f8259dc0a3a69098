package validation

import (
	"fmt"

	"github.com/goliatone/go-riskform/pkg/constraints"
)

// Messages produces the user-facing text for violations. Implementations can
// localise; output is sanitised before it reaches the page.
type Messages interface {
	Range(rule constraints.Rule) string
	Selection(field string) string
}

// EnglishMessages is the default catalog.
type EnglishMessages struct{}

// Range reports the accepted bounds for a numeric field.
func (EnglishMessages) Range(rule constraints.Rule) string {
	min, max := rule.Bounds()
	return fmt.Sprintf("%s must be between %s and %s", rule.Field, min, max)
}

// Selection asks for a valid choice.
func (EnglishMessages) Selection(field string) string {
	return fmt.Sprintf("Please select a valid option for %s", field)
}
