package constraints_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskform/pkg/constraints"
)

func TestOpenAPISchema_Shape(t *testing.T) {
	schema := constraints.OpenAPISchema(nil)

	if diff := cmp.Diff(constraints.Default().Fields(), schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	age := schema.Properties["age"]
	if age == nil || age.Value == nil {
		t.Fatalf("missing age property")
	}
	if age.Value.Min == nil || *age.Value.Min != 20 {
		t.Fatalf("unexpected age min: %v", age.Value.Min)
	}
	if age.Value.Max == nil || *age.Value.Max != 100 {
		t.Fatalf("unexpected age max: %v", age.Value.Max)
	}

	thal := schema.Properties["thal"]
	if thal == nil || thal.Value == nil {
		t.Fatalf("missing thal property")
	}
	if diff := cmp.Diff([]any{"0", "1", "2"}, thal.Value.Enum); diff != "" {
		t.Fatalf("thal enum mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAPISchema_VisitJSON(t *testing.T) {
	schema := constraints.OpenAPISchema(constraints.Default())

	valid := map[string]any{
		"age": 54.0, "trestbps": 130.0, "chol": 246.0, "thalach": 150.0, "oldpeak": 1.0,
		"sex": "1", "fbs": "0", "exang": "0", "cp": "2", "restecg": "1",
		"slope": "1", "ca": "0", "thal": "2",
	}
	if err := schema.VisitJSON(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	invalid := make(map[string]any, len(valid))
	for k, v := range valid {
		invalid[k] = v
	}
	invalid["age"] = 15.0
	if err := schema.VisitJSON(invalid); err == nil {
		t.Fatalf("expected age below minimum to fail")
	}

	delete(invalid, "age")
	if err := schema.VisitJSON(invalid); err == nil {
		t.Fatalf("expected missing field to fail")
	}
}
