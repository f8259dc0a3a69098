package reveal

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
)

const (
	DefaultCardDelay  = 300 * time.Millisecond
	DefaultMeterDelay = 500 * time.Millisecond

	// TargetWidthProperty carries the fill width for stylesheets that
	// animate towards it.
	TargetWidthProperty = "--target-width"
)

// CardState tracks the result card.
type CardState int

const (
	CardIdle CardState = iota
	CardRevealed
)

func (s CardState) String() string {
	if s == CardRevealed {
		return "revealed"
	}
	return "idle"
}

// MeterPhase tracks one meter.
type MeterPhase int

const (
	MeterEmpty MeterPhase = iota
	MeterFilled
)

func (p MeterPhase) String() string {
	if p == MeterFilled {
		return "filled"
	}
	return "empty"
}

// Option configures an Animator.
type Option func(*Animator)

// WithCardDelay overrides the card reveal delay.
func WithCardDelay(d time.Duration) Option {
	return func(a *Animator) {
		if d >= 0 {
			a.cardDelay = d
		}
	}
}

// WithMeterDelay overrides the meter fill delay.
func WithMeterDelay(d time.Duration) Option {
	return func(a *Animator) {
		if d >= 0 {
			a.meterDelay = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Animator schedules the one-shot result reveal. Timer callbacks must run on
// the same goroutine that owns the document, which the scheduler guarantees.
type Animator struct {
	scheduler  eventloop.Scheduler
	cardDelay  time.Duration
	meterDelay time.Duration
	logger     *zap.Logger
}

// New constructs an animator over scheduler.
func New(scheduler eventloop.Scheduler, options ...Option) *Animator {
	a := &Animator{
		scheduler:  scheduler,
		cardDelay:  DefaultCardDelay,
		meterDelay: DefaultMeterDelay,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Meter is one meter element with its parsed target.
type Meter struct {
	Element dom.Element
	State   MeterState
	phase   MeterPhase
}

// Phase reports whether the meter has been filled.
func (m *Meter) Phase() MeterPhase {
	return m.phase
}

// Reveal is a scheduled reveal for one page load.
type Reveal struct {
	card    dom.Element
	state   CardState
	meters  []*Meter
	timers  []eventloop.Timer
	stopped bool
}

// Start schedules the card reveal and every meter fill. It returns false,
// scheduling nothing, when the page has no result card.
func (a *Animator) Start(doc dom.Document) (*Reveal, bool) {
	if doc == nil || a.scheduler == nil {
		return nil, false
	}
	card := doc.Query(dom.SelectorResultCard)
	if card == nil {
		return nil, false
	}

	r := &Reveal{card: card}
	r.timers = append(r.timers, a.scheduler.AfterFunc(a.cardDelay, r.revealCard))

	for _, el := range doc.QueryAll(dom.SelectorMeterFill) {
		raw, _ := el.Attr(dom.AttrMeterTarget)
		state, ok := ParseMeterTarget(raw)
		if !ok {
			a.logger.Debug("reveal: skipping meter without a usable target",
				zap.String("target", raw),
			)
			continue
		}
		m := &Meter{Element: el, State: state}
		r.meters = append(r.meters, m)
		r.timers = append(r.timers, a.scheduler.AfterFunc(a.meterDelay, func() {
			fill(m)
		}))
	}

	a.logger.Debug("reveal: scheduled",
		zap.Int("meters", len(r.meters)),
		zap.Duration("card_delay", a.cardDelay),
		zap.Duration("meter_delay", a.meterDelay),
	)
	return r, true
}

func (r *Reveal) revealCard() {
	if r.state == CardRevealed {
		return
	}
	r.card.AddClass(dom.ClassAnimated)
	r.state = CardRevealed
}

func fill(m *Meter) {
	if m.phase == MeterFilled {
		return
	}
	width := m.State.Width()
	m.Element.SetStyle(TargetWidthProperty, width)
	m.Element.AddClass(m.State.Tier.Class())
	m.Element.SetStyle("width", width)
	m.phase = MeterFilled
}

// Card returns the result card element.
func (r *Reveal) Card() dom.Element {
	return r.card
}

// State reports the card state.
func (r *Reveal) State() CardState {
	return r.state
}

// Meters returns the scheduled meters in document order.
func (r *Reveal) Meters() []*Meter {
	return r.meters
}

// Done reports whether the card and every meter reached their final state.
func (r *Reveal) Done() bool {
	if r.state != CardRevealed {
		return false
	}
	for _, m := range r.meters {
		if m.phase != MeterFilled {
			return false
		}
	}
	return true
}

// Stop cancels any transition that has not happened yet and returns how
// many were cancelled. Later calls return 0.
func (r *Reveal) Stop() int {
	if r == nil || r.stopped {
		return 0
	}
	r.stopped = true
	cancelled := 0
	for _, t := range r.timers {
		if t != nil && t.Stop() {
			cancelled++
		}
	}
	r.timers = nil
	return cancelled
}
