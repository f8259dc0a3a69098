package riskform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/styles"
	"github.com/goliatone/go-riskform/pkg/testsupport"
)

func TestStylesheetFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(StylesheetFS(), styles.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".invalid") {
		t.Fatalf("expected stylesheet to style the invalid marker")
	}
}

func TestEmbeddedTemplatesContainPages(t *testing.T) {
	for _, name := range []string{"base.tmpl", "form.tmpl", "result.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if result := Validate(testsupport.ValidValues()); !result.Valid() {
		t.Fatalf("expected valid values to pass, got %v", result.Messages())
	}

	values := testsupport.With(testsupport.ValidValues(), map[string]string{"oldpeak": "7"})
	delete(values, "thal")
	got := Validate(values).Messages()
	want := []string{"oldpeak must be between 0 and 6", "Please select a valid option for thal"}
	if diff := testsupport.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFormHTMLBootsRuntime(t *testing.T) {
	out, err := RenderFormHTML(context.Background())
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	doc := testsupport.MustParse(t, string(out))
	rt := NewRuntime(page.WithScheduler(eventloop.NewManual()))
	if err := rt.Ready(doc); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if rt.Form() == nil {
		t.Fatal("expected the clinical form to be bound")
	}
}
