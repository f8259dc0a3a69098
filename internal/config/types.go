package config

import "time"

// Config is the on-disk configuration for the riskform tools.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Reveal   RevealConfig   `yaml:"reveal" koanf:"reveal"`
	Feedback FeedbackConfig `yaml:"feedback" koanf:"feedback"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr            string `yaml:"addr" koanf:"addr"`
	Lang            string `yaml:"lang" koanf:"lang"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Development bool   `yaml:"development" koanf:"development"`
}

// RevealConfig holds the result reveal delays.
type RevealConfig struct {
	CardDelay  time.Duration `yaml:"card_delay" koanf:"card_delay"`
	MeterDelay time.Duration `yaml:"meter_delay" koanf:"meter_delay"`
}

// FeedbackConfig tunes slider feedback.
type FeedbackConfig struct {
	// Displays overrides slider id to display id pairings.
	Displays       map[string]string `yaml:"displays" koanf:"displays"`
	HigherIsBetter []string          `yaml:"higher_is_better" koanf:"higher_is_better"`
}
