package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

const (
	maxHTMLBytes = 2 << 20
	maxRedirects = 3
)

// HTTPCapturer is the browserless fallback backend. It fetches the raw HTML
// with a plain GET; there is no screenshot and no JavaScript execution, so
// the AI oracle sees whatever the server sends to a first request.
type HTTPCapturer struct {
	client *http.Client
	ua     string
	logger interfaces.Logger
}

func NewHTTPCapturer(cfg Config, logger interfaces.Logger) *HTTPCapturer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &HTTPCapturer{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		ua:     ua,
		logger: logger,
	}
}

func (c *HTTPCapturer) Capture(ctx context.Context, url string) (*model.PageCapture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("page fetched",
			interfaces.Field{Key: "url", Value: url},
			interfaces.Field{Key: "status", Value: resp.StatusCode},
			interfaces.Field{Key: "took", Value: time.Since(start).String()})
	}

	return &model.PageCapture{HTML: string(body)}, nil
}

func (c *HTTPCapturer) Close() error { return nil }
