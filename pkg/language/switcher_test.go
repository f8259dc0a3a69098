package language_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-riskform/pkg/language"
	"github.com/goliatone/go-riskform/pkg/testsupport"
)

type captured struct {
	method string
	header string
	lang   string
}

func endpoint(t *testing.T, status int, body string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if got != nil {
			got.method = r.Method
			got.header = r.Header.Get(language.RequestedWithHeader)
			got.lang = r.PostForm.Get("lang")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSwitch_Success(t *testing.T) {
	var got captured
	srv := endpoint(t, http.StatusOK, `{"success": true}`, &got)

	s := language.New(language.WithHTTPClient(srv.Client()))
	err := s.Switch(context.Background(), srv.URL+"/set_language", url.Values{"lang": {"es"}})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, language.RequestedWithXHR, got.header)
	assert.Equal(t, "es", got.lang)
}

func TestSwitch_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"rejected", http.StatusOK, `{"success": false}`, language.ErrRejected},
		{"status", http.StatusInternalServerError, `{"success": true}`, language.ErrUnexpectedStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := endpoint(t, tc.status, tc.body, nil)
			err := language.New(language.WithHTTPClient(srv.Client())).
				Switch(context.Background(), srv.URL, url.Values{"lang": {"fr"}})
			require.ErrorIs(t, err, tc.target)
		})
	}

	srv := endpoint(t, http.StatusOK, `<html>not json</html>`, nil)
	err := language.New(language.WithHTTPClient(srv.Client())).
		Switch(context.Background(), srv.URL, url.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestChange_ReloadsOnSuccess(t *testing.T) {
	var got captured
	srv := endpoint(t, http.StatusOK, `{"success":true}`, &got)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	require.NoError(t, doc.Choose(language.SelectID, "es"))

	reloads := 0
	s := language.New(
		language.WithHTTPClient(srv.Client()),
		language.WithBaseURL(base),
		language.WithReload(func() { reloads++ }),
	)

	assert.True(t, s.Change(context.Background(), doc))
	assert.Equal(t, 1, reloads)
	assert.Equal(t, "es", got.lang)
}

func TestChange_LogsFailureWithoutReload(t *testing.T) {
	srv := endpoint(t, http.StatusOK, `{"success":false}`, nil)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	core, logs := observer.New(zap.ErrorLevel)
	reloads := 0
	s := language.New(
		language.WithHTTPClient(srv.Client()),
		language.WithBaseURL(base),
		language.WithReload(func() { reloads++ }),
		language.WithLogger(zap.New(core)),
	)

	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	assert.False(t, s.Change(context.Background(), doc))
	assert.Zero(t, reloads)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "language: switch failed", logs.All()[0].Message)
}

func TestChange_NoLanguageForm(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := language.New(language.WithLogger(zap.New(core)))

	doc := testsupport.MustParse(t, testsupport.ResultPage)
	assert.False(t, s.Change(context.Background(), doc))
	assert.Equal(t, 1, logs.Len())
}

func TestFormValues(t *testing.T) {
	doc := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	action, values, err := language.FormValues(doc)
	require.NoError(t, err)
	assert.Equal(t, "/set_language", action)
	assert.Equal(t, "en", values.Get("lang"))

	_, _, err = language.FormValues(testsupport.MustParse(t, testsupport.ResultPage))
	assert.ErrorIs(t, err, language.ErrNoLanguageForm)
}
