package interfaces

import (
	"context"

	"github.com/ravik808/sitetrust/internal/model"
)

// WhoisClient looks up WHOIS registration data for a bare domain.
// Implementations never fail observably: on any error they return a record
// whose Raw field holds a placeholder so the age scorer lands in its
// "unknown" band.
type WhoisClient interface {
	Lookup(ctx context.Context, domain string) *model.WhoisRecord
}

// CertificateProbe fetches the leaf TLS certificate served for hostname.
// A nil record means no certificate was obtainable.
type CertificateProbe interface {
	Probe(ctx context.Context, hostname string) *model.CertificateRecord
}

// HostingProbe resolves hostname to an IP and reverse-DNS name.
// A nil record means DNS resolution failed.
type HostingProbe interface {
	Probe(ctx context.Context, hostname string) *model.HostingRecord
}

// ScreenshotCapturer renders a URL and returns the screenshot bytes plus the
// rendered HTML. Implementations must honor ctx deadlines.
type ScreenshotCapturer interface {
	Capture(ctx context.Context, url string) (*model.PageCapture, error)

	Close() error
}

// ImageStore persists an image and returns a publicly reachable URL for it.
type ImageStore interface {
	Store(png []byte) (string, error)
}

// Classifier is the external AI oracle. It receives the technical summary
// (and optionally the rendered screenshot) and returns a categorical verdict.
// Any returned error is the oracle error marker: the visual scorer then falls
// back to its neutral default.
type Classifier interface {
	Classify(ctx context.Context, req *model.ClassifyRequest) (*model.AIVerdict, error)
}

// AssessmentStore records completed assessments for later listing.
// Saving is best-effort from the caller's point of view.
type AssessmentStore interface {
	Save(ctx context.Context, a *model.TrustAssessment) error
	Get(ctx context.Context, id string) (*model.TrustAssessment, error)
	List(ctx context.Context, limit int) ([]*model.AssessmentSummary, error)

	Close() error
}
