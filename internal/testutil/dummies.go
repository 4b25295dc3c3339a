// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ravik808/sitetrust/internal/history"
	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements interfaces.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...interfaces.Field) interfaces.Logger { return l }

// ─── Probes ────────────────────────────────────────────────────────────

// DummyWhois implements interfaces.WhoisClient with a preconfigured record.
// A nil Record yields the failure placeholder the real client produces.
type DummyWhois struct {
	Record *model.WhoisRecord

	mu      sync.Mutex
	Domains []string
}

func (d *DummyWhois) Lookup(_ context.Context, domain string) *model.WhoisRecord {
	d.mu.Lock()
	d.Domains = append(d.Domains, domain)
	d.mu.Unlock()

	if d.Record != nil {
		return d.Record
	}
	return &model.WhoisRecord{Raw: "WHOIS lookup failed"}
}

// DummyCertProbe implements interfaces.CertificateProbe. A nil Record means
// no certificate was obtainable.
type DummyCertProbe struct {
	Record *model.CertificateRecord

	mu    sync.Mutex
	Hosts []string
}

func (d *DummyCertProbe) Probe(_ context.Context, hostname string) *model.CertificateRecord {
	d.mu.Lock()
	d.Hosts = append(d.Hosts, hostname)
	d.mu.Unlock()
	return d.Record
}

// DummyHostingProbe implements interfaces.HostingProbe. A nil Record means
// DNS resolution failed.
type DummyHostingProbe struct {
	Record *model.HostingRecord

	mu    sync.Mutex
	Hosts []string
}

func (d *DummyHostingProbe) Probe(_ context.Context, hostname string) *model.HostingRecord {
	d.mu.Lock()
	d.Hosts = append(d.Hosts, hostname)
	d.mu.Unlock()
	return d.Record
}

// ─── Capturer ──────────────────────────────────────────────────────────

// DummyCapturer implements interfaces.ScreenshotCapturer.
// By default it returns an HTML page titled "ok:<url>" with no screenshot.
// Pages[url] overrides the result for a specific URL; FailURLs[url] = true
// forces an error for that URL; Err forces an error for every URL.
type DummyCapturer struct {
	Page          *model.PageCapture
	Pages         map[string]*model.PageCapture
	FailURLs      map[string]bool
	Err           error
	ResponseDelay time.Duration

	mu   sync.Mutex
	URLs []string
}

func (d *DummyCapturer) Capture(ctx context.Context, url string) (*model.PageCapture, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.URLs = append(d.URLs, url)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.FailURLs != nil && d.FailURLs[url] {
		return nil, &errString{"dummy capture fail for " + url}
	}
	if d.Pages != nil {
		if page, ok := d.Pages[url]; ok {
			return page, nil
		}
	}
	if d.Page != nil {
		return d.Page, nil
	}
	return &model.PageCapture{
		HTML: "<html><head><title>ok:" + url + "</title></head><body></body></html>",
	}, nil
}

func (d *DummyCapturer) Close() error { return nil }

// Captured returns a copy of the URLs captured so far.
func (d *DummyCapturer) Captured() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.URLs...)
}

// ─── ImageStore ────────────────────────────────────────────────────────

// DummyImageStore implements interfaces.ImageStore. Stored images get
// sequential URLs under URLPrefix ("/screenshots/" when empty).
type DummyImageStore struct {
	URLPrefix string
	Err       error

	mu     sync.Mutex
	Images [][]byte
}

func (d *DummyImageStore) Store(png []byte) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Images = append(d.Images, append([]byte(nil), png...))

	prefix := d.URLPrefix
	if prefix == "" {
		prefix = "/screenshots/"
	}
	return fmt.Sprintf("%s%d.png", prefix, len(d.Images)), nil
}

// ─── Classifier ────────────────────────────────────────────────────────

// DummyClassifier implements interfaces.Classifier with a preconfigured
// verdict. With neither Verdict nor Err set it answers "safe".
type DummyClassifier struct {
	Verdict *model.AIVerdict
	Err     error

	mu       sync.Mutex
	Requests []*model.ClassifyRequest
}

func (d *DummyClassifier) Classify(_ context.Context, req *model.ClassifyRequest) (*model.AIVerdict, error) {
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if d.Verdict != nil {
		return d.Verdict, nil
	}
	return &model.AIVerdict{Result: "safe", Reasons: []string{"no deception indicators"}}, nil
}

// LastRequest returns the most recent classify request, or nil.
func (d *DummyClassifier) LastRequest() *model.ClassifyRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Requests) == 0 {
		return nil
	}
	return d.Requests[len(d.Requests)-1]
}

// ─── AssessmentStore ───────────────────────────────────────────────────

// DummyAssessmentStore implements interfaces.AssessmentStore in memory.
type DummyAssessmentStore struct {
	SaveErr error

	mu    sync.Mutex
	Saved []*model.TrustAssessment
}

func (d *DummyAssessmentStore) Save(_ context.Context, a *model.TrustAssessment) error {
	if d.SaveErr != nil {
		return d.SaveErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Saved = append(d.Saved, a)
	return nil
}

func (d *DummyAssessmentStore) Get(_ context.Context, id string) (*model.TrustAssessment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.Saved {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, history.ErrNotFound
}

func (d *DummyAssessmentStore) List(_ context.Context, limit int) ([]*model.AssessmentSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	summaries := make([]*model.AssessmentSummary, 0, len(d.Saved))
	for i := len(d.Saved) - 1; i >= 0; i-- {
		if limit > 0 && len(summaries) == limit {
			break
		}
		a := d.Saved[i]
		summaries = append(summaries, &model.AssessmentSummary{
			ID:         a.ID,
			URL:        a.URL,
			Result:     a.Result,
			TrustScore: a.TrustScore,
			CreatedAt:  a.CreatedAt,
		})
	}
	return summaries, nil
}

func (d *DummyAssessmentStore) Close() error { return nil }

// ─── helpers ───────────────────────────────────────────────────────────

type errString struct{ s string }

func (e *errString) Error() string { return e.s }
