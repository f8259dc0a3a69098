package dom

// Class names and selectors shared between the page templates, the injected
// stylesheet and the behaviour layer.
const (
	ClassInvalid        = "invalid"
	ClassErrorContainer = "error-container"
	ClassResultCard     = "result-card"
	ClassMeterFill      = "meter-fill"
	ClassAnimated       = "animated"

	AttrMeterTarget = "data-width"
	// AttrServerErrors carries a JSON array of messages produced by the
	// server for the last submission.
	AttrServerErrors = "data-server-errors"

	SelectorForm        = "form"
	SelectorResultCard  = "." + ClassResultCard
	SelectorMeterFill   = "." + ClassMeterFill
	SelectorRangeInputs = `input[type="range"]`
)
