package validation

import (
	"strconv"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
)

// Value is a field's raw value as read from the page. Present is false when
// no control (or no checked radio) could be resolved.
type Value struct {
	Raw     string
	Present bool
}

// Snapshot holds the raw values of every table field at one instant.
type Snapshot map[string]Value

// Set records a present value; handy for building snapshots by hand.
func (s Snapshot) Set(field, raw string) Snapshot {
	s[field] = Value{Raw: raw, Present: true}
	return s
}

// Capture reads every field in table from doc. Numeric fields resolve to the
// element with the field's id. Enumerated fields resolve uniformly: a radio
// group named after the field wins, otherwise the element with the field's
// id (a select). Values are always read fresh.
func Capture(doc dom.Document, table *constraints.Table) Snapshot {
	if table == nil {
		table = constraints.Default()
	}
	snap := make(Snapshot, len(table.Rules()))
	if doc == nil {
		return snap
	}
	for _, rule := range table.Numeric() {
		snap[rule.Field] = controlValue(doc, rule.Field)
	}
	for _, rule := range table.Enumerated() {
		snap[rule.Field] = choiceValue(doc, rule.Field)
	}
	return snap
}

func controlValue(doc dom.Document, field string) Value {
	el := doc.ElementByID(field)
	if el == nil {
		return Value{}
	}
	return Value{Raw: el.Value(), Present: true}
}

func choiceValue(doc dom.Document, field string) Value {
	radios := doc.QueryAll(radioGroupSelector(field))
	if len(radios) > 0 {
		for _, radio := range radios {
			if radio.Checked() {
				return Value{Raw: radio.Value(), Present: true}
			}
		}
		return Value{}
	}
	return controlValue(doc, field)
}

func radioGroupSelector(field string) string {
	return `input[type="radio"][name=` + strconv.Quote(field) + `]`
}
