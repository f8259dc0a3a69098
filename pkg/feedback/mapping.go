package feedback

import (
	"maps"
	"strings"

	"github.com/goliatone/go-riskform/pkg/constraints"
)

// DisplaySuffix is appended to a field id when no explicit display is mapped.
const DisplaySuffix = "Output"

// DisplayMapping maps a range control id to the id of the element echoing its
// value. Unmapped fields derive "<fieldId>Output".
type DisplayMapping map[string]string

// DefaultDisplayMapping returns the display ids used by the clinical form.
func DefaultDisplayMapping() DisplayMapping {
	return DisplayMapping{
		constraints.FieldTrestbps: "bpOutput",
		constraints.FieldThalach:  "hrOutput",
		constraints.FieldOldpeak:  "stOutput",
		constraints.FieldChol:     "cholOutput",
		constraints.FieldAge:      "ageOutput",
	}
}

// DisplayID resolves the paired display element id for fieldID.
func (m DisplayMapping) DisplayID(fieldID string) string {
	if id := strings.TrimSpace(m[fieldID]); id != "" {
		return id
	}
	return fieldID + DisplaySuffix
}

// Merge returns a copy of m with overrides applied on top.
func (m DisplayMapping) Merge(overrides map[string]string) DisplayMapping {
	out := make(DisplayMapping, len(m)+len(overrides))
	maps.Copy(out, m)
	for field, id := range overrides {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out[field] = strings.TrimSpace(id)
	}
	return out
}

// Polarity says whether larger values are the healthy end of a slider.
type Polarity int

const (
	// LowerIsBetter colours small values green and large values red.
	LowerIsBetter Polarity = iota
	// HigherIsBetter inverts the scale.
	HigherIsBetter
)

// PolarityMap assigns polarities per field; unlisted fields are LowerIsBetter.
type PolarityMap map[string]Polarity

// DefaultPolarity marks the heart-rate field as higher-is-better.
func DefaultPolarity() PolarityMap {
	return PolarityMap{constraints.FieldThalach: HigherIsBetter}
}

// Of returns the polarity for fieldID.
func (p PolarityMap) Of(fieldID string) Polarity {
	if pol, ok := p[fieldID]; ok {
		return pol
	}
	return LowerIsBetter
}

// HigherIsBetterFields builds a PolarityMap from a list of field ids.
func HigherIsBetterFields(fields ...string) PolarityMap {
	out := make(PolarityMap, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			out[field] = HigherIsBetter
		}
	}
	return out
}
