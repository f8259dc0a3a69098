package reveal

import (
	"strings"

	"github.com/goliatone/go-riskform/pkg/constraints"
)

// Tier is the risk band a percentage falls into.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tier thresholds are inclusive lower bounds.
const (
	MediumThreshold = 40.0
	HighThreshold   = 70.0
)

// Class is the CSS class attached to a filled meter.
func (t Tier) Class() string {
	return string(t) + "-risk"
}

// Classify maps a percentage to its tier.
func Classify(percentage float64) Tier {
	switch {
	case percentage >= HighThreshold:
		return TierHigh
	case percentage >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// MeterState is the final rendered state of one meter.
type MeterState struct {
	Percentage float64
	Tier       Tier
}

// NewMeterState clamps percentage into [0,100] and classifies it.
func NewMeterState(percentage float64) MeterState {
	switch {
	case percentage < 0:
		percentage = 0
	case percentage > 100:
		percentage = 100
	}
	return MeterState{Percentage: percentage, Tier: Classify(percentage)}
}

// ParseMeterTarget reads a meter's target attribute. Blank or unparsable
// targets report false.
func ParseMeterTarget(raw string) (MeterState, bool) {
	if strings.TrimSpace(raw) == "" {
		return MeterState{}, false
	}
	value, ok := constraints.ParseNumber(raw)
	if !ok {
		return MeterState{}, false
	}
	return NewMeterState(value), true
}

// Width is the CSS width for the meter fill.
func (s MeterState) Width() string {
	return constraints.FormatNumber(s.Percentage) + "%"
}
