package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/testsupport"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr %q, got %q", ":8080", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level %q, got %q", "info", cfg.Log.Level)
	}
	if cfg.Reveal.CardDelay != 300*time.Millisecond || cfg.Reveal.MeterDelay != 500*time.Millisecond {
		t.Errorf("unexpected reveal delays: %+v", cfg.Reveal)
	}
	if got := cfg.Feedback.Displays[constraints.FieldTrestbps]; got != "bpOutput" {
		t.Errorf("expected trestbps display bpOutput, got %q", got)
	}
	if len(cfg.Feedback.HigherIsBetter) != 1 || cfg.Feedback.HigherIsBetter[0] != constraints.FieldThalach {
		t.Errorf("expected thalach higher-is-better, got %v", cfg.Feedback.HigherIsBetter)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskform.yml")

	original := DefaultConfig()
	original.Server.Addr = "127.0.0.1:9000"
	original.Server.AllowAllOrigins = true
	original.Log.Level = "debug"
	original.Reveal.CardDelay = time.Second
	original.Reveal.MeterDelay = 2 * time.Second
	original.Feedback.Displays["age"] = "ageBadge"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := testsupport.Diff(original, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveWritesReadableDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskform.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	text := string(data)
	for _, want := range []string{"card_delay: 300ms", "meter_delay: 500ms", "allow_all_origins: false"} {
		if !strings.Contains(text, want) {
			t.Errorf("saved config missing %q:\n%s", want, text)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if diff := testsupport.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskform.yml")
	body := "reveal:\n  meter_delay: 1s\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reveal.MeterDelay != time.Second {
		t.Errorf("meter_delay: got %v, want 1s", cfg.Reveal.MeterDelay)
	}
	if cfg.Reveal.CardDelay != 300*time.Millisecond {
		t.Errorf("card_delay should keep its default, got %v", cfg.Reveal.CardDelay)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr should keep its default, got %q", cfg.Server.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskform.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("RISKFORM_SERVER__ADDR", ":9090")
	t.Setenv("RISKFORM_SERVER__ALLOW_ALL_ORIGINS", "true")
	t.Setenv("RISKFORM_REVEAL__CARD_DELAY", "750ms")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Addr != ":9090" {
		t.Errorf("addr override failed: got %q", loaded.Server.Addr)
	}
	if !loaded.Server.AllowAllOrigins {
		t.Error("allow_all_origins override failed")
	}
	if loaded.Reveal.CardDelay != 750*time.Millisecond {
		t.Errorf("card_delay override failed: got %v", loaded.Reveal.CardDelay)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskform.yml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"RISKFORM_SERVER__ADDR":              "server.addr",
		"RISKFORM_LOG__LEVEL":                "log.level",
		"RISKFORM_SERVER__ALLOW_ALL_ORIGINS": "server.allow_all_origins",
		"RISKFORM_FEEDBACK__DISPLAYS__AGE":   "feedback.displays.age",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}

	cases := map[string]func(*Config){
		"empty addr":     func(c *Config) { c.Server.Addr = " " },
		"bad level":      func(c *Config) { c.Log.Level = "loud" },
		"negative card":  func(c *Config) { c.Reveal.CardDelay = -time.Millisecond },
		"negative meter": func(c *Config) { c.Reveal.MeterDelay = -time.Millisecond },
		"blank display":  func(c *Config) { c.Feedback.Displays["age"] = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "warn"
	logger, err := cfg.Logger()
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at warn level")
	}

	cfg.Log.Level = "nope"
	if _, err := cfg.Logger(); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestRuntimeOptionsFollowConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reveal.CardDelay = 10 * time.Millisecond
	cfg.Feedback.HigherIsBetter = []string{constraints.FieldAge}

	form := testsupport.MustParse(t, testsupport.ClinicalFormPage)
	runtime := page.New(append(cfg.RuntimeOptions(), page.WithScheduler(eventloop.NewManual()))...)
	if err := runtime.Ready(form); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	// age 54 in [20,100] sits at 42.5%; inverted polarity yields hue 51.
	out := form.ElementByID("ageOutput")
	if got := out.Style("background-color"); got != "hsl(51, 80%, 50%)" {
		t.Errorf("ageOutput background = %q", got)
	}

	result := testsupport.MustParse(t, testsupport.ResultPage)
	clock := eventloop.NewManual()
	runtime = page.New(append(cfg.RuntimeOptions(), page.WithScheduler(clock))...)
	if err := runtime.Ready(result); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	clock.Advance(10 * time.Millisecond)
	card := result.Query(".result-card")
	if !card.HasClass(dom.ClassAnimated) {
		t.Error("card should be revealed after the configured delay")
	}
}
