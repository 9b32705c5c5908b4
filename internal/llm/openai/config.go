package openai

import "time"

// Config controls the OpenAI-backed estimate generator.
type Config struct {
	Model       string
	APIKey      string
	BaseURL     string // empty = api.openai.com
	Temperature float32
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Timeout <= 0 {
		c.Timeout = 45 * time.Second
	}
	return c
}
