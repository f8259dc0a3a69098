package testsupport

import (
	"maps"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskform/pkg/dom/memdom"
)

// ClinicalFormPage is a hand-written page carrying the full DOM contract the
// behaviour layer consumes: numeric range inputs with paired outputs, radio
// groups, selects and the language switcher form placed before the clinical
// form.
const ClinicalFormPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Heart Disease Prediction System</title></head>
<body>
<form id="languageForm" action="/set_language" method="post">
  <select id="languageSelect" name="lang"><option value="en" selected>English</option><option value="es">Spanish</option></select>
</form>
<form id="predictionForm" action="/predict" method="post">
  <input type="range" id="age" name="age" min="20" max="100" value="54"><span id="ageOutput"></span>
  <input type="range" id="trestbps" name="trestbps" min="80" max="200" value="130"><span id="bpOutput"></span>
  <input type="range" id="chol" name="chol" min="100" max="400" value="246"><span id="cholOutput"></span>
  <input type="range" id="thalach" name="thalach" min="70" max="220" value="150"><span id="hrOutput"></span>
  <input type="range" id="oldpeak" name="oldpeak" min="0" max="6" step="0.1" value="1"><span id="stOutput"></span>
  <input type="radio" id="sex-0" name="sex" value="0"><input type="radio" id="sex-1" name="sex" value="1">
  <input type="radio" id="fbs-0" name="fbs" value="0"><input type="radio" id="fbs-1" name="fbs" value="1">
  <input type="radio" id="exang-0" name="exang" value="0"><input type="radio" id="exang-1" name="exang" value="1">
  <select id="cp" name="cp"><option value="">Select</option><option value="0">0</option><option value="1">1</option><option value="2">2</option><option value="3">3</option><option value="4">4</option></select>
  <select id="restecg" name="restecg"><option value="">Select</option><option value="0">0</option><option value="1">1</option><option value="2">2</option></select>
  <select id="slope" name="slope"><option value="">Select</option><option value="0">0</option><option value="1">1</option><option value="2">2</option></select>
  <select id="ca" name="ca"><option value="">Select</option><option value="0">0</option><option value="1">1</option><option value="2">2</option><option value="3">3</option><option value="4">4</option></select>
  <select id="thal" name="thal"><option value="">Select</option><option value="0">0</option><option value="1">1</option><option value="2">2</option></select>
  <button type="submit">Predict</button>
</form>
</body>
</html>`

// ResultPage carries a result card with one meter targeting 85%.
const ResultPage = `<!doctype html>
<html lang="en">
<head><title>Results</title></head>
<body>
<div class="result-card">
  <div class="meter"><div class="meter-fill" data-width="85"></div></div>
</div>
</body>
</html>`

// ValidValues returns a complete, in-bounds submission for the clinical form.
func ValidValues() map[string]string {
	return map[string]string{
		"age": "54", "trestbps": "130", "chol": "246", "thalach": "150", "oldpeak": "1",
		"sex": "1", "fbs": "0", "exang": "0",
		"cp": "2", "restecg": "1", "slope": "1", "ca": "0", "thal": "2",
	}
}

// With returns a copy of base with overrides applied.
func With(base map[string]string, overrides map[string]string) map[string]string {
	out := maps.Clone(base)
	maps.Copy(out, overrides)
	return out
}

// MustParse parses markup into an in-memory document.
func MustParse(t testing.TB, markup string) *memdom.Document {
	t.Helper()
	doc, err := memdom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustFill sets every value on doc, failing the test on unknown controls.
// Fields are applied in a stable order so input events fire predictably.
func MustFill(t testing.TB, doc *memdom.Document, values map[string]string) {
	t.Helper()
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if err := doc.Set(field, values[field]); err != nil {
			t.Fatalf("fill %s: %v", field, err)
		}
	}
}

// Diff wraps cmp.Diff so packages share one comparison helper.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}
