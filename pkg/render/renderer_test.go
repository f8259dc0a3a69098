package render_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/dom/memdom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/testsupport"
)

func newRenderer(t *testing.T, opts ...render.Option) *render.Renderer {
	t.Helper()
	r, err := render.New(opts...)
	require.NoError(t, err)
	return r
}

func renderForm(t *testing.T, p render.FormPage, opts ...render.Option) *memdom.Document {
	t.Helper()
	out, err := newRenderer(t, opts...).RenderForm(context.Background(), p)
	require.NoError(t, err)
	return testsupport.MustParse(t, string(out))
}

func TestRenderForm_DOMContract(t *testing.T) {
	doc := renderForm(t, render.DefaultFormPage(nil, nil))

	for _, rule := range constraints.Default().Numeric() {
		input := doc.ElementByID(rule.Field)
		require.NotNil(t, input, rule.Field)
		typ, _ := input.Attr("type")
		assert.Equal(t, "range", typ)
		min, max := rule.Bounds()
		gotMin, _ := input.Attr("min")
		gotMax, _ := input.Attr("max")
		assert.Equal(t, min, gotMin)
		assert.Equal(t, max, gotMax)
	}
	for _, id := range []string{"ageOutput", "bpOutput", "cholOutput", "hrOutput", "stOutput"} {
		assert.NotNil(t, doc.ElementByID(id), id)
	}
	for _, name := range []string{"sex", "fbs", "exang", "model"} {
		assert.NotEmpty(t, doc.QueryAll(`input[type="radio"][name="`+name+`"]`), name)
	}
	for _, id := range []string{"cp", "restecg", "slope", "ca", "thal"} {
		el := doc.ElementByID(id)
		require.NotNil(t, el, id)
		assert.Equal(t, "select", el.Tag())
		assert.Equal(t, "", el.Value(), "selects start on the placeholder")
	}

	forms := doc.QueryAll("form")
	require.Len(t, forms, 2)
	assert.Equal(t, "languageForm", forms[0].ID())
	assert.Equal(t, "predictionForm", forms[1].ID())
	assert.Equal(t, "en", doc.ElementByID("languageSelect").Value())
}

func TestRenderForm_RuntimeEndToEnd(t *testing.T) {
	doc := renderForm(t, render.DefaultFormPage(nil, nil))

	rt := page.New(page.WithScheduler(eventloop.NewManual()))
	require.NoError(t, rt.Ready(doc))
	assert.Len(t, rt.Bindings(), 5)
	assert.Equal(t, "predictionForm", rt.Form().Element().ID())

	form := rt.Form().Element()
	assert.False(t, doc.Submit(form), "radios and selects start empty")

	testsupport.MustFill(t, doc, testsupport.ValidValues())
	assert.True(t, doc.Submit(form), "%v", rt.Form().Last().Messages())
}

func TestRenderForm_ServerErrorsAndValues(t *testing.T) {
	p := render.DefaultFormPage(nil, nil).WithValues(map[string]string{
		"age": "70", "sex": "1", "cp": "3", "model": "rf",
	})
	p.Errors = []string{`Invalid option for model: "xgb"`}
	doc := renderForm(t, p)

	assert.Equal(t, "70", doc.ElementByID("age").Value())
	assert.True(t, doc.ElementByID("sex-1").Checked())
	assert.True(t, doc.ElementByID("model-rf").Checked())
	assert.Equal(t, "3", doc.ElementByID("cp").Value())

	raw, ok := doc.ElementByID("predictionForm").Attr(dom.AttrServerErrors)
	require.True(t, ok)
	assert.JSONEq(t, `["Invalid option for model: \"xgb\""]`, raw)

	rt := page.New(page.WithScheduler(eventloop.NewManual()))
	require.NoError(t, rt.Ready(doc))
	assert.Equal(t, "block", rt.Form().Region().Style("display"))
}

func TestRenderForm_Theme(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "clinic",
		Variant: "light",
		CSSVars: map[string]string{"--brand": "#c0392b", "--accent": "#2980b9"},
		AssetURL: func(key string) string {
			if key == render.ThemeStylesheetKey {
				return "/themes/clinic/riskform.css"
			}
			return ""
		},
	}
	p := render.DefaultFormPage(nil, nil)
	p.Stylesheets = []string{"/assets/riskform.css"}

	out, err := newRenderer(t, render.WithTheme(cfg)).RenderForm(context.Background(), p)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "--accent: #2980b9;")
	assert.Less(t, strings.Index(html, "--accent"), strings.Index(html, "--brand"), "vars are sorted")
	doc := testsupport.MustParse(t, html)
	links := doc.QueryAll(`link[rel="stylesheet"]`)
	require.Len(t, links, 2)
	href, _ := links[1].Attr("href")
	assert.Equal(t, "/themes/clinic/riskform.css", href)
}

func TestRenderResult_Meter(t *testing.T) {
	prob := 85.0
	out, err := newRenderer(t).RenderResult(context.Background(), render.NewResultPage(true, "rf", &prob))
	require.NoError(t, err)
	doc := testsupport.MustParse(t, string(out))

	require.NotNil(t, doc.Query(dom.SelectorResultCard))
	fill := doc.Query(dom.SelectorMeterFill)
	require.NotNil(t, fill)
	target, _ := fill.Attr(dom.AttrMeterTarget)
	assert.Equal(t, "85", target)
	assert.Contains(t, string(out), "Random Forest")

	clock := eventloop.NewManual()
	rt := page.New(page.WithScheduler(clock))
	require.NoError(t, rt.Ready(doc))
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, "85%", fill.Style("width"))
	assert.True(t, fill.HasClass("high-risk"))
}

func TestRenderResult_UnknownProbability(t *testing.T) {
	out, err := newRenderer(t).RenderResult(context.Background(), render.NewResultPage(false, "svm", nil))
	require.NoError(t, err)
	doc := testsupport.MustParse(t, string(out))

	assert.NotNil(t, doc.Query(dom.SelectorResultCard))
	assert.Nil(t, doc.Query(dom.SelectorMeterFill))
	assert.Contains(t, string(out), "No Heart Disease Detected")
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRenderer(t).RenderForm(ctx, render.DefaultFormPage(nil, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultFormPage_FollowsTable(t *testing.T) {
	table := constraints.New(
		constraints.Numeric("age", 18, 90),
		constraints.Enumerated("sex", "0", "1"),
		constraints.Enumerated("thal", "1", "2"),
	)
	p := render.DefaultFormPage(table, nil)

	require.Len(t, p.Numeric, 1)
	assert.Equal(t, "18", p.Numeric[0].Min)
	assert.Equal(t, "ageOutput", p.Numeric[0].DisplayID)
	require.Len(t, p.Radios, 1)
	require.Len(t, p.Selects, 1)
	assert.Equal(t, []render.Choice{{Value: "1", Label: "Normal"}, {Value: "2", Label: "Fixed Defect"}}, p.Selects[0].Options)
}
