package oracle

import "time"

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Config holds the Gemini connection settings. BaseURL is overridable so
// tests can point the client at a local fake.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Model:   "gemini-2.0-flash",
		BaseURL: defaultBaseURL,
		Timeout: 60 * time.Second,
	}
}
