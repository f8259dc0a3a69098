package feedback_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskform/pkg/dom/memdom"
	"github.com/goliatone/go-riskform/pkg/feedback"
)

const sliders = `<html><head></head><body><form>
<input type="range" id="thalach" min="70" max="220" value="150"><span id="hrOutput"></span>
<input type="range" id="trestbps" min="80" max="200" value="80"><span id="bpOutput"></span>
<input type="range" id="custom" min="0" max="10" value="5"><span id="customOutput"></span>
<input type="range" id="orphan" min="0" max="10" value="5">
<input type="number" id="age" value="40"><span id="ageOutput">untouched</span>
</form></body></html>`

func parse(t *testing.T, markup string) *memdom.Document {
	t.Helper()
	doc, err := memdom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestDisplayMapping(t *testing.T) {
	m := feedback.DefaultDisplayMapping()
	cases := map[string]string{
		"trestbps": "bpOutput",
		"thalach":  "hrOutput",
		"oldpeak":  "stOutput",
		"chol":     "cholOutput",
		"age":      "ageOutput",
		"ca":       "caOutput",
	}
	for field, want := range cases {
		if got := m.DisplayID(field); got != want {
			t.Fatalf("%s: got %q, want %q", field, got, want)
		}
	}

	merged := m.Merge(map[string]string{"ca": "vesselsOut", " ": "ignored"})
	if merged.DisplayID("ca") != "vesselsOut" {
		t.Fatalf("override not applied")
	}
	if m.DisplayID("ca") != "caOutput" {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestHue(t *testing.T) {
	if got := feedback.Hue(100, feedback.HigherIsBetter); got != 120 {
		t.Fatalf("higher-is-better at max: got %v", got)
	}
	if got := feedback.Hue(100, feedback.LowerIsBetter); got != 0 {
		t.Fatalf("lower-is-better at max: got %v", got)
	}
	if got := feedback.Hue(0, feedback.LowerIsBetter); got != 120 {
		t.Fatalf("lower-is-better at min: got %v", got)
	}
	if got := feedback.Position(5, 5, 5); got != 0 {
		t.Fatalf("degenerate bounds: got %v", got)
	}
	if got := feedback.Color(120); got != "hsl(120, 80%, 50%)" {
		t.Fatalf("color: got %q", got)
	}
}

func TestBind_InitialSync(t *testing.T) {
	doc := parse(t, sliders)
	bindings := feedback.New().Bind(doc)

	var bound []string
	for _, b := range bindings {
		bound = append(bound, b.Control.ID())
	}
	if diff := cmp.Diff([]string{"thalach", "trestbps", "custom"}, bound); diff != "" {
		t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
	}

	hr := doc.ElementByID("hrOutput")
	if hr.Text() != "150" {
		t.Fatalf("initial echo: got %q", hr.Text())
	}
	bp := doc.ElementByID("bpOutput")
	if got := bp.Style("background-color"); got != "hsl(120, 80%, 50%)" {
		t.Fatalf("blood pressure at minimum should be green, got %q", got)
	}
	if doc.ElementByID("ageOutput").Text() != "untouched" {
		t.Fatalf("non-range inputs must not be bound")
	}
}

func TestBind_HeartRateAtMaximum(t *testing.T) {
	doc := parse(t, sliders)
	feedback.New().Bind(doc)

	if err := doc.Type("thalach", "220"); err != nil {
		t.Fatalf("type: %v", err)
	}
	hr := doc.ElementByID("hrOutput")
	if hr.Text() != "220" {
		t.Fatalf("echo: got %q", hr.Text())
	}
	if got := hr.Style("background-color"); got != "hsl(120, 80%, 50%)" {
		t.Fatalf("hue at max heart rate: got %q", got)
	}
}

func TestSync_Reading(t *testing.T) {
	doc := parse(t, sliders)
	c := feedback.New(feedback.WithPolarity(feedback.HigherIsBetterFields("custom")))

	reading, ok := c.Sync(doc.ElementByID("custom"), doc.ElementByID("customOutput"))
	if !ok {
		t.Fatalf("expected numeric reading")
	}
	want := feedback.Reading{Field: "custom", Text: "5", Value: 5, Percentage: 50, Hue: 60, Color: "hsl(60, 80%, 50%)"}
	if diff := cmp.Diff(want, reading); diff != "" {
		t.Fatalf("reading mismatch (-want +got):\n%s", diff)
	}

	if _, ok := c.Sync(nil, doc.ElementByID("customOutput")); ok {
		t.Fatalf("nil control must not sync")
	}
}

func TestSync_NonNumericKeepsColour(t *testing.T) {
	doc := parse(t, sliders)
	c := feedback.New()
	control := doc.ElementByID("custom")
	display := doc.ElementByID("customOutput")
	c.Sync(control, display)
	before := display.Style("background-color")

	control.(*memdom.Element).SetValue("n/a")
	if _, ok := c.Sync(control, display); ok {
		t.Fatalf("non numeric value must not produce a colour")
	}
	if display.Text() != "n/a" || display.Style("background-color") != before {
		t.Fatalf("unexpected display state: %q %q", display.Text(), display.Style("background-color"))
	}
}

func TestBind_CustomMapping(t *testing.T) {
	doc := parse(t, `<html><body><input type="range" id="ca" min="0" max="4" value="4"><b id="vessels"></b></body></html>`)
	feedback.New(feedback.WithDisplayMapping(feedback.DisplayMapping{"ca": "vessels"})).Bind(doc)

	out := doc.ElementByID("vessels")
	if out.Text() != "4" || out.Style("background-color") != "hsl(0, 80%, 50%)" {
		t.Fatalf("unexpected display: %q %q", out.Text(), out.Style("background-color"))
	}
}
