package capture

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// screenshotQuality of 100 makes chromedp emit PNG instead of JPEG.
const screenshotQuality = 100

// ChromedpCapturer renders pages in headless Chrome. The exec allocator is
// shared across captures; each Capture opens a fresh browser context so tabs
// never see each other's state.
type ChromedpCapturer struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	idleAfter   time.Duration
	logger      interfaces.Logger
}

// NewChromedpCapturer prepares the browser allocator. Chrome itself launches
// lazily on the first Capture, so construction succeeds even on hosts without
// a browser; those fail at capture time instead.
func NewChromedpCapturer(cfg Config, logger interfaces.Logger) *ChromedpCapturer {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	idleAfter := cfg.IdleAfter
	if idleAfter <= 0 {
		idleAfter = DefaultConfig().IdleAfter
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.UserAgent(ua),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpCapturer{
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
		idleAfter:   idleAfter,
		logger:      logger,
	}
}

// Capture navigates to url, waits for the network to settle, then snapshots
// the full page and its rendered HTML.
func (c *ChromedpCapturer) Capture(ctx context.Context, url string) (*model.PageCapture, error) {
	tabCtx, cancelTab := chromedp.NewContext(c.allocCtx)
	defer cancelTab()

	// The tab context descends from the allocator, not from ctx; mirror the
	// caller's cancellation onto the tab.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-done:
		}
	}()

	start := time.Now()
	idle := waitNetworkIdle(tabCtx, c.idleAfter)

	if err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	select {
	case <-idle:
	case <-tabCtx.Done():
		return nil, fmt.Errorf("capture %s: %w", url, tabCtx.Err())
	}

	var png []byte
	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.FullScreenshot(&png, screenshotQuality),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", url, err)
	}

	if c.logger != nil {
		c.logger.Debug("page captured",
			interfaces.Field{Key: "url", Value: url},
			interfaces.Field{Key: "png_bytes", Value: len(png)},
			interfaces.Field{Key: "took", Value: time.Since(start).String()})
	}

	return &model.PageCapture{PNG: png, HTML: html}, nil
}

// Close shuts the shared browser down.
func (c *ChromedpCapturer) Close() error {
	c.cancelAlloc()
	return nil
}

// waitNetworkIdle returns a channel that closes once no request has been in
// flight for idleAfter. The initial timer kick covers pages that load no
// subresources at all.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) <-chan struct{} {
	idle := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() { close(idle) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	startTimer()

	return idle
}
