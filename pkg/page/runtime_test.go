package page_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/dom/memdom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/feedback"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/testsupport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReady_FormPage(t *testing.T) {
	clock := eventloop.NewManual()
	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)

	rt := page.New(page.WithScheduler(clock))
	require.NoError(t, rt.Ready(doc))

	assert.Nil(t, rt.Reveal(), "form page has no result card")
	assert.Zero(t, clock.Pending())
	assert.Len(t, rt.Bindings(), 5)
	require.NotNil(t, rt.Form())
	assert.Equal(t, "predictionForm", rt.Form().Element().ID())

	assert.Equal(t, "54", doc.ElementByID("ageOutput").Text())
	assert.Equal(t, "hsl(69, 80%, 50%)", doc.ElementByID("ageOutput").Style("background-color"))

	style := rt.Stylesheet()
	require.NotNil(t, style)
	assert.Contains(t, style.Text(), ".error-container")
	assert.Equal(t, "head", style.(*memdom.Element).Parent().Tag())
}

func TestReady_SubmitScenario(t *testing.T) {
	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	rt := page.New(page.WithScheduler(eventloop.NewManual()))
	require.NoError(t, rt.Ready(doc))

	values := testsupport.With(testsupport.ValidValues(), map[string]string{"age": "15", "trestbps": "120"})
	delete(values, "sex")
	testsupport.MustFill(t, doc, values)

	assert.False(t, doc.Submit(rt.Form().Element()))
	assert.Equal(t, []string{
		"age must be between 20 and 100",
		"Please select a valid option for sex",
	}, rt.Form().Last().Messages())
	assert.True(t, doc.ElementByID("age").HasClass(dom.ClassInvalid))
	assert.False(t, doc.ElementByID("trestbps").HasClass(dom.ClassInvalid))

	require.NoError(t, doc.Check("sex", "0"))
	require.NoError(t, doc.Type("age", "45"))
	assert.True(t, doc.Submit(rt.Form().Element()))
	assert.Equal(t, "none", rt.Form().Region().Style("display"))
}

func TestReady_ResultPage(t *testing.T) {
	clock := eventloop.NewManual()
	doc := testsupport.MustParse(t, testsupport.ResultPage)

	rt := page.New(page.WithScheduler(clock))
	require.NoError(t, rt.Ready(doc))
	require.NotNil(t, rt.Reveal())
	assert.Nil(t, rt.Form())

	clock.Advance(500 * time.Millisecond)
	fill := doc.Query(dom.SelectorMeterFill)
	assert.Equal(t, "85%", fill.Style("width"))
	assert.True(t, fill.HasClass("high-risk"))
	assert.True(t, doc.Query(dom.SelectorResultCard).HasClass(dom.ClassAnimated))
	assert.Zero(t, rt.Teardown(), "nothing left to cancel")
}

func TestTeardown_CancelsPendingReveal(t *testing.T) {
	clock := eventloop.NewManual()
	doc := testsupport.MustParse(t, testsupport.ResultPage)

	rt := page.New(page.WithScheduler(clock), page.WithRevealDelays(time.Second, 2*time.Second))
	require.NoError(t, rt.Ready(doc))

	assert.Equal(t, 2, rt.Teardown())
	assert.Zero(t, rt.Teardown())

	clock.Advance(time.Minute)
	assert.False(t, doc.Query(dom.SelectorResultCard).HasClass(dom.ClassAnimated))
	assert.Empty(t, doc.Query(dom.SelectorMeterFill).Style("width"))
}

func TestReady_Errors(t *testing.T) {
	assert.ErrorIs(t, page.New(page.WithScheduler(eventloop.NewManual())).Ready(nil), page.ErrNilDocument)

	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	assert.ErrorIs(t, page.New().Ready(doc), page.ErrNoScheduler)

	rt := page.New(page.WithScheduler(eventloop.NewManual()))
	require.NoError(t, rt.Ready(doc))
	assert.True(t, errors.Is(rt.Ready(doc), page.ErrAlreadyReady))
}

func TestReady_ServerErrors(t *testing.T) {
	markup := strings.Replace(testsupport.ClinicalFormPage,
		`<form id="predictionForm" action="/predict" method="post">`,
		`<form id="predictionForm" action="/predict" method="post" data-server-errors='["Invalid option for model: xgb"]'>`,
		1)
	doc := testsupport.MustParse(t, markup)

	rt := page.New(page.WithScheduler(eventloop.NewManual()))
	require.NoError(t, rt.Ready(doc))

	region := rt.Form().Region()
	assert.Equal(t, "block", region.Style("display"))
	assert.Contains(t, region.(*memdom.Element).InnerHTML(), "Invalid option for model: xgb")
}

func TestReady_CustomFeedback(t *testing.T) {
	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	rt := page.New(
		page.WithScheduler(eventloop.NewManual()),
		page.WithPolarity(feedback.HigherIsBetterFields("age")),
	)
	require.NoError(t, rt.Ready(doc))

	// age 54 in [20,100] sits at 42.5%; higher-is-better maps that to hue 51.
	assert.Equal(t, "hsl(51, 80%, 50%)", doc.ElementByID("ageOutput").Style("background-color"))
}

func TestReady_OnEventLoop(t *testing.T) {
	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	doc := testsupport.MustParse(t, testsupport.ResultPage)
	rt := page.New(page.WithScheduler(loop), page.WithRevealDelays(5*time.Millisecond, 10*time.Millisecond))

	var readyErr error
	require.True(t, loop.Do(ctx, func() { readyErr = rt.Ready(doc) }))
	require.NoError(t, readyErr)

	require.Eventually(t, func() bool {
		var filled bool
		loop.Do(ctx, func() { filled = rt.Reveal().Done() })
		return filled
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
