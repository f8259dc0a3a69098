package config

import (
	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/feedback"
	"github.com/goliatone/go-riskform/pkg/reveal"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "riskform.yml"

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: RISKFORM_SERVER__ADDR sets server.addr.
const EnvPrefix = "RISKFORM_"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Lang: "en",
		},
		Log: LogConfig{
			Level: "info",
		},
		Reveal: RevealConfig{
			CardDelay:  reveal.DefaultCardDelay,
			MeterDelay: reveal.DefaultMeterDelay,
		},
		Feedback: FeedbackConfig{
			Displays:       map[string]string(feedback.DefaultDisplayMapping()),
			HigherIsBetter: []string{constraints.FieldThalach},
		},
	}
}
