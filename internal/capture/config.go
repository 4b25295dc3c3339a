package capture

import "time"

type Backend string

const (
	BackendChromedp Backend = "chromedp"
	BackendHTTP     Backend = "http"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config selects and tunes the page capture backend.
type Config struct {
	Backend Backend

	// Timeout bounds one full capture (navigation, settle, snapshot).
	Timeout time.Duration

	// IdleAfter is how long the network must stay quiet before the page
	// counts as settled. Chromedp backend only.
	IdleAfter time.Duration

	UserAgent string

	// ChromePath points at the browser binary. Empty lets chromedp discover
	// one on PATH.
	ChromePath string
}

func DefaultConfig() Config {
	return Config{
		Backend:   BackendChromedp,
		Timeout:   25 * time.Second,
		IdleAfter: 2 * time.Second,
		UserAgent: defaultUserAgent,
	}
}
