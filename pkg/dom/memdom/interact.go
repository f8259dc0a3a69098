package memdom

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-riskform/pkg/dom"
)

// Type sets the value of the control with id and dispatches an input event,
// the way a keystroke or slider drag would.
func (d *Document) Type(id, value string) error {
	el, ok := d.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	el.SetValue(value)
	el.Dispatch(dom.NewEvent(dom.EventInput, el))
	return nil
}

// Check selects the radio button of group name carrying value.
func (d *Document) Check(name, value string) error {
	selector := `input[type="radio"][name=` + strconv.Quote(name) + `]`
	for _, candidate := range d.QueryAll(selector) {
		el := candidate.(*Element)
		if el.Value() == value {
			el.SetChecked(true)
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%s", ErrOptionNotFound, name, value)
}

// Uncheck clears every radio button of group name.
func (d *Document) Uncheck(name string) {
	selector := `input[type="radio"][name=` + strconv.Quote(name) + `]`
	for _, candidate := range d.QueryAll(selector) {
		candidate.(*Element).SetChecked(false)
	}
}

// Choose selects the option carrying value in the select control with id.
func (d *Document) Choose(id, value string) error {
	el, ok := d.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	for _, opt := range options(el.node) {
		if optionValue(opt) == value {
			el.SetValue(value)
			return nil
		}
	}
	return fmt.Errorf("%w: #%s=%s", ErrOptionNotFound, id, value)
}

// Set routes value to the right control for field: radio groups are checked,
// selects are chosen and anything else is typed.
func (d *Document) Set(field, value string) error {
	selector := `input[type="radio"][name=` + strconv.Quote(field) + `]`
	if len(d.QueryAll(selector)) > 0 {
		return d.Check(field, value)
	}
	el, ok := d.Lookup(field)
	if !ok {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, field)
	}
	if el.Tag() == "select" {
		return d.Choose(field, value)
	}
	return d.Type(field, value)
}

// Submit dispatches a submit event on form and reports whether the browser
// would go on to submit it.
func (d *Document) Submit(form dom.Element) bool {
	if form == nil {
		return false
	}
	return form.Dispatch(dom.NewEvent(dom.EventSubmit, form))
}
