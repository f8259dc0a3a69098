package feedback

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
)

// Browser defaults for range inputs without explicit bounds.
const (
	defaultRangeMin = 0
	defaultRangeMax = 100
)

// Option configures a Controller.
type Option func(*Controller)

// WithDisplayMapping replaces the control → display id mapping.
func WithDisplayMapping(mapping DisplayMapping) Option {
	return func(c *Controller) {
		if mapping != nil {
			c.displays = mapping
		}
	}
}

// WithPolarity replaces the per-field colour polarity.
func WithPolarity(polarity PolarityMap) Option {
	return func(c *Controller) {
		if polarity != nil {
			c.polarity = polarity
		}
	}
}

// WithLogger attaches a logger for skipped bindings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller echoes range control values into paired display elements and
// tints the display by how healthy the value is. The feedback is cosmetic and
// never blocks input.
type Controller struct {
	displays DisplayMapping
	polarity PolarityMap
	logger   *zap.Logger
}

// New constructs a controller with the clinical defaults.
func New(options ...Option) *Controller {
	c := &Controller{
		displays: DefaultDisplayMapping(),
		polarity: DefaultPolarity(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Binding pairs a range control with its display element.
type Binding struct {
	Control dom.Element
	Display dom.Element
}

// Reading is the outcome of one synchronisation.
type Reading struct {
	Field      string
	Text       string
	Value      float64
	Percentage float64
	Hue        float64
	Color      string
}

// Bind attaches a live synchronisation to every range control in doc and
// fires one synthetic input event per control so displays start in sync.
// Controls without a paired display are skipped.
func (c *Controller) Bind(doc dom.Document) []Binding {
	if doc == nil {
		return nil
	}

	var bindings []Binding
	for _, control := range doc.QueryAll(dom.SelectorRangeInputs) {
		id := strings.TrimSpace(control.ID())
		if id == "" {
			c.logger.Debug("feedback: range control without id skipped")
			continue
		}
		displayID := c.displays.DisplayID(id)
		display := doc.ElementByID(displayID)
		if display == nil {
			c.logger.Debug("feedback: display element missing",
				zap.String("field", id),
				zap.String("display", displayID),
			)
			continue
		}

		control.AddEventListener(dom.EventInput, func(ev *dom.Event) {
			c.Sync(control, display)
		})
		control.Dispatch(dom.NewEvent(dom.EventInput, control))
		bindings = append(bindings, Binding{Control: control, Display: display})
	}
	return bindings
}

// Sync writes the control's value into display and recolours it. Values that
// are not numeric update the text only.
func (c *Controller) Sync(control, display dom.Element) (Reading, bool) {
	if control == nil || display == nil {
		return Reading{}, false
	}

	raw := control.Value()
	display.SetText(raw)

	reading := Reading{Field: control.ID(), Text: raw}
	value, ok := constraints.ParseNumber(raw)
	if !ok {
		return reading, false
	}

	min := attrNumber(control, "min", defaultRangeMin)
	max := attrNumber(control, "max", defaultRangeMax)

	reading.Value = value
	reading.Percentage = Position(value, min, max)
	reading.Hue = Hue(reading.Percentage, c.polarity.Of(reading.Field))
	reading.Color = Color(reading.Hue)
	display.SetStyle("background-color", reading.Color)
	return reading, true
}

func attrNumber(el dom.Element, name string, fallback float64) float64 {
	raw, ok := el.Attr(name)
	if !ok {
		return fallback
	}
	v, ok := constraints.ParseNumber(raw)
	if !ok {
		return fallback
	}
	return v
}
