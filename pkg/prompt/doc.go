// Package prompt collects a risk-form submission from a terminal. Numeric
// answers are re-asked until they fall inside the field's bounds, choices are
// picked from the allowed values, and the result is serialized as JSON, form
// encoding or plain text.
package prompt
