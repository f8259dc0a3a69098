package preview

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/language"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/styles"
)

const (
	// LangCookie stores the visitor's language between page loads.
	LangCookie = "lang"
	// AssetsPrefix is where the stylesheet is mounted.
	AssetsPrefix = "/assets/"
	// ErrorParam carries preview server errors on the form route.
	ErrorParam = "error"
)

// StylesheetURL is the path of the validation stylesheet.
var StylesheetURL = AssetsPrefix + styles.StylesheetName

func registerRoutes(r chi.Router, s *Server) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleForm)
	r.Get("/result", s.handleResult)
	r.Get("/schema.json", s.handleSchema)
	r.Post(language.DefaultAction, s.handleSetLanguage)
	r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(styles.AssetsFS()))))
}

// handleForm renders the clinical form. Query values for table fields are
// restored into the controls and every "error" value is shown as a server
// message, which lets the error region be previewed without a backend.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := render.DefaultFormPage(s.table, s.mapping)
	page.Lang = s.lang(r)
	page.Stylesheets = []string{StylesheetURL}
	page.Errors = nonBlank(q[ErrorParam])

	values := make(map[string]string)
	for _, field := range append(s.table.Fields(), "model") {
		if q.Has(field) {
			values[field] = q.Get(field)
		}
	}
	page = page.WithValues(values)

	body, err := s.renderer.RenderForm(r.Context(), page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeHTML(w, http.StatusOK, body)
}

// handleResult renders a result page from query parameters. It is a fixture
// for the reveal animation, not a prediction.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var probability *float64
	if raw := strings.TrimSpace(q.Get("probability")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "probability must be a number", http.StatusBadRequest)
			return
		}
		probability = &v
	}
	positive, _ := strconv.ParseBool(q.Get("positive"))
	model := q.Get("model")
	if model == "" {
		model = "svm"
	}

	page := render.NewResultPage(positive, model, probability)
	page.Lang = s.lang(r)
	page.Stylesheets = []string{StylesheetURL}

	body, err := s.renderer.RenderResult(r.Context(), page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeHTML(w, http.StatusOK, body)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, constraints.OpenAPISchema(s.table))
}

// handleSetLanguage stores the language and answers XHR callers with
// {"success": true}; plain form posts go back to where they came from.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	lang := strings.TrimSpace(r.PostForm.Get(language.DefaultField))
	if lang == "" {
		lang = s.cfg.Lang
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    lang,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if r.Header.Get(language.RequestedWithHeader) == language.RequestedWithXHR {
		writeJSON(w, http.StatusOK, language.Response{Success: true})
		return
	}
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) lang(r *http.Request) string {
	if c, err := r.Cookie(LangCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return s.cfg.Lang
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("preview: render failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "render failed", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
