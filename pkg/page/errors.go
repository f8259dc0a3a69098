package page

import "errors"

var (
	// ErrNilDocument is returned when Ready receives no document.
	ErrNilDocument = errors.New("page: document is nil")
	// ErrNoScheduler is returned when the runtime has no timer scheduler.
	ErrNoScheduler = errors.New("page: scheduler is required")
	// ErrAlreadyReady is returned when Ready runs twice on one runtime.
	ErrAlreadyReady = errors.New("page: runtime already started")
)
