package language

import "errors"

var (
	// ErrNoLanguageForm is returned when the page has no language switcher.
	ErrNoLanguageForm = errors.New("language: language form not found")
	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("language: unexpected response status")
	// ErrRejected is returned when the endpoint answers success=false.
	ErrRejected = errors.New("language: switch rejected")
)
