package dom

// EventType names the document events the behaviour layer listens to.
type EventType string

const (
	EventInput  EventType = "input"
	EventSubmit EventType = "submit"
)

// Listener handles a dispatched event.
type Listener func(ev *Event)

// Event is a dispatched document event.
type Event struct {
	Type   EventType
	Target Element

	defaultPrevented bool
}

// NewEvent constructs an event for target.
func NewEvent(typ EventType, target Element) *Event {
	return &Event{Type: typ, Target: target}
}

// PreventDefault cancels the browser's default action (form submission).
func (e *Event) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener cancelled the default action.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

// Element is the subset of a DOM element the behaviour layer touches.
type Element interface {
	ID() string
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	// Value follows the live property: the typed text for inputs, the
	// selected option's value for selects.
	Value() string
	Checked() bool

	Text() string
	SetText(text string)
	SetInnerHTML(markup string)

	Style(property string) string
	SetStyle(property, value string)

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	ScrollIntoView(smooth bool)
	Prepend(child Element)
	Append(child Element)

	AddEventListener(typ EventType, fn Listener)
	// Dispatch runs the element's listeners for ev and reports whether the
	// default action should proceed.
	Dispatch(ev *Event) bool
}

// Document is the subset of a DOM document the behaviour layer touches.
// Lookups that find nothing return nil.
type Document interface {
	ElementByID(id string) Element
	Query(selector string) Element
	QueryAll(selector string) []Element
	CreateElement(tag string) Element
	Head() Element
}

// ToggleClass adds name when on is true and removes it otherwise.
func ToggleClass(el Element, name string, on bool) {
	if el == nil {
		return
	}
	if on {
		el.AddClass(name)
		return
	}
	el.RemoveClass(name)
}
