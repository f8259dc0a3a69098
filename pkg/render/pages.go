package render

import (
	"slices"
	"strings"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/feedback"
)

// Choice is one option of a radio group or select.
type Choice struct {
	Value string
	Label string
}

// NumericField is a range slider paired with a display element.
type NumericField struct {
	Name      string
	Label     string
	DisplayID string
	Min       string
	Max       string
	Step      string
	Value     string
}

// ChoiceField is a radio group or a select.
type ChoiceField struct {
	Name     string
	Label    string
	Options  []Choice
	Selected string
}

// FormPage is the view model of the clinical input page.
type FormPage struct {
	Title          string
	Subtitle       string
	Lang           string
	Languages      []Choice
	Action         string
	LanguageAction string
	Model          ChoiceField
	Numeric        []NumericField
	Radios         []ChoiceField
	Selects        []ChoiceField
	SubmitLabel    string
	// Errors are messages from the server's own validation of the last
	// submission; the page shows them in the error region on load.
	Errors      []string
	Stylesheets []string
	Scripts     []string
}

// ResultPage is the view model of the prediction result page.
type ResultPage struct {
	Title     string
	Lang      string
	Languages []Choice
	// LanguageAction is where the language switcher posts.
	LanguageAction string
	Positive       bool
	Model          string
	// Probability is a percentage; nil when the model does not report one.
	Probability *float64
	BackURL     string
	Stylesheets []string
	Scripts     []string
}

// Languages offered by the switcher.
var Languages = []Choice{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"zh-cn", "Chinese (Simplified)"},
	{"ar", "Arabic"},
	{"ru", "Russian"},
	{"ja", "Japanese"},
	{"hi", "Hindi"},
}

// Models lists the prediction models the form lets the user pick.
var Models = []Choice{
	{"svm", "Support Vector Machine"},
	{"rf", "Random Forest"},
	{"lr", "Logistic Regression"},
}

var fieldLabels = map[string]string{
	constraints.FieldAge:      "Age",
	constraints.FieldTrestbps: "Resting Blood Pressure (mm Hg)",
	constraints.FieldChol:     "Serum Cholesterol (mg/dl)",
	constraints.FieldThalach:  "Max Heart Rate Achieved",
	constraints.FieldOldpeak:  "ST Depression (Oldpeak)",
	constraints.FieldSex:      "Sex",
	constraints.FieldFbs:      "Fasting Blood Sugar > 120 mg/dl?",
	constraints.FieldExang:    "Exercise-Induced Angina",
	constraints.FieldCp:       "Chest Pain Type",
	constraints.FieldRestecg:  "Resting ECG",
	constraints.FieldSlope:    "Slope of ST Segment",
	constraints.FieldCa:       "Number of Major Vessels (0-4)",
	constraints.FieldThal:     "Thalassemia Type",
}

var optionLabels = map[string][]string{
	constraints.FieldSex:     {"Female", "Male"},
	constraints.FieldFbs:     {"No", "Yes"},
	constraints.FieldExang:   {"No", "Yes"},
	constraints.FieldCp:      {"No Pain", "Typical Angina", "Atypical Angina", "Non-anginal Pain", "Asymptomatic"},
	constraints.FieldRestecg: {"Normal", "ST-T Wave Abnormality", "Left Ventricular Hypertrophy"},
	constraints.FieldSlope:   {"Up", "Flat", "Down"},
	constraints.FieldCa:      {"0", "1", "2", "3", "4"},
	constraints.FieldThal:    {"Normal", "Fixed Defect", "Reversible Defect"},
}

var initialValues = map[string]string{
	constraints.FieldAge:      "50",
	constraints.FieldTrestbps: "120",
	constraints.FieldChol:     "200",
	constraints.FieldThalach:  "150",
	constraints.FieldOldpeak:  "1",
}

// radioFields are rendered as radio groups; other enumerated fields become
// selects.
var radioFields = []string{constraints.FieldSex, constraints.FieldFbs, constraints.FieldExang}

// DefaultFormPage builds the clinical form for table using mapping to pair
// sliders with their displays. Nil arguments fall back to the defaults.
func DefaultFormPage(table *constraints.Table, mapping feedback.DisplayMapping) FormPage {
	if table == nil {
		table = constraints.Default()
	}
	if mapping == nil {
		mapping = feedback.DefaultDisplayMapping()
	}

	page := FormPage{
		Title:          "Heart Disease Prediction System",
		Subtitle:       "Enter patient information to predict heart disease risk",
		Lang:           "en",
		Languages:      Languages,
		Action:         "/predict",
		LanguageAction: "/set_language",
		Model: ChoiceField{
			Name:     "model",
			Label:    "Choose a prediction model:",
			Options:  Models,
			Selected: "svm",
		},
		SubmitLabel: "Predict Heart Disease Risk",
	}

	for _, rule := range table.Numeric() {
		min, max := rule.Bounds()
		value, ok := initialValues[rule.Field]
		if !ok {
			value = min
		}
		step := "1"
		if rule.Field == constraints.FieldOldpeak {
			step = "0.1"
		}
		page.Numeric = append(page.Numeric, NumericField{
			Name:      rule.Field,
			Label:     labelFor(rule.Field),
			DisplayID: mapping.DisplayID(rule.Field),
			Min:       min,
			Max:       max,
			Step:      step,
			Value:     value,
		})
	}

	for _, rule := range table.Enumerated() {
		field := ChoiceField{
			Name:    rule.Field,
			Label:   labelFor(rule.Field),
			Options: choicesFor(rule),
		}
		if slices.Contains(radioFields, rule.Field) {
			page.Radios = append(page.Radios, field)
		} else {
			page.Selects = append(page.Selects, field)
		}
	}
	return page
}

// WithValues returns a copy of page with submitted values restored into the
// controls, so a page re-rendered after a server-side rejection keeps the
// user's input.
func (p FormPage) WithValues(values map[string]string) FormPage {
	if len(values) == 0 {
		return p
	}
	p.Numeric = slices.Clone(p.Numeric)
	for i := range p.Numeric {
		if v, ok := values[p.Numeric[i].Name]; ok {
			p.Numeric[i].Value = v
		}
	}
	p.Radios = restoreChoices(p.Radios, values)
	p.Selects = restoreChoices(p.Selects, values)
	if v, ok := values[p.Model.Name]; ok {
		p.Model.Selected = v
	}
	return p
}

func restoreChoices(fields []ChoiceField, values map[string]string) []ChoiceField {
	out := slices.Clone(fields)
	for i := range out {
		if v, ok := values[out[i].Name]; ok {
			out[i].Selected = v
		}
	}
	return out
}

func labelFor(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func choicesFor(rule constraints.Rule) []Choice {
	labels := optionLabels[rule.Field]
	out := make([]Choice, 0, len(rule.Allowed))
	for i, value := range rule.Allowed {
		label := value
		if i < len(labels) {
			label = labels[i]
		}
		out = append(out, Choice{Value: value, Label: label})
	}
	return out
}

// ModelLabel resolves a model key to its display name.
func ModelLabel(key string) string {
	for _, m := range Models {
		if m.Value == key {
			return m.Label
		}
	}
	return key
}

// NewResultPage builds the result view for a prediction. A nil probability
// renders the page without a meter.
func NewResultPage(positive bool, model string, probability *float64) ResultPage {
	return ResultPage{
		Title:          "Heart Disease Prediction Results",
		Lang:           "en",
		Languages:      Languages,
		LanguageAction: "/set_language",
		Positive:       positive,
		Model:          model,
		Probability:    probability,
		BackURL:        "/",
	}
}
