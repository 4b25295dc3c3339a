package capture

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ravik808/sitetrust/internal/interfaces"
)

// BackendConstructor builds a ScreenshotCapturer from the capture config.
type BackendConstructor func(cfg Config, logger interfaces.Logger) (interfaces.ScreenshotCapturer, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally; registering the same name again overwrites the previous
// constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// NewCapturer constructs the configured capture backend. An empty backend
// name selects chromedp.
func NewCapturer(cfg Config, logger interfaces.Logger) (interfaces.ScreenshotCapturer, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendChromedp)
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("capture backend %q not registered: available backends=%v", backend, ListBackends())
	}

	c, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct capture backend %q: %w", backend, err)
	}
	if c == nil {
		return nil, errors.New("capture constructor returned nil")
	}
	return c, nil
}

// ListBackends returns the registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// RegisterDefaultBackends registers the chromedp and http backends. Call this
// early in main() so NewCapturer can find them.
func RegisterDefaultBackends() {
	RegisterBackend(string(BackendChromedp), func(cfg Config, logger interfaces.Logger) (interfaces.ScreenshotCapturer, error) {
		return NewChromedpCapturer(cfg, logger), nil
	})
	RegisterBackend(string(BackendHTTP), func(cfg Config, logger interfaces.Logger) (interfaces.ScreenshotCapturer, error) {
		return NewHTTPCapturer(cfg, logger), nil
	})
}
