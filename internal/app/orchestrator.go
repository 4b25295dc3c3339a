package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ravik808/sitetrust/internal/capture"
	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/logging"
	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/scoring"
	"github.com/ravik808/sitetrust/internal/utils"
)

// ErrInvalidURL marks a rejected input URL. The server maps it to a 400;
// any other analysis failure is internal.
var ErrInvalidURL = errors.New("invalid url")

// Stage identifies one step of an analysis for progress reporting.
type Stage string

const (
	StageWhois       Stage = "whois"
	StageCertificate Stage = "certificate"
	StageHosting     Stage = "hosting"
	StageScreenshot  Stage = "screenshot"
	StageAI          Stage = "ai"
	StageFinalizing  Stage = "finalizing"
)

// ProgressFunc receives stage notifications while an analysis runs. The
// orchestrator calls it inline, so implementations must not block; the
// websocket layer forwards into a buffered channel and drops on overflow.
type ProgressFunc func(stage Stage)

// Orchestrator runs the assessment pipeline: probe fan-out, page capture,
// AI classification, scoring, history. Probe and capture failures degrade
// the assessment instead of failing it; only invalid input is an error.
type Orchestrator struct {
	engine     *scoring.Engine
	whois      interfaces.WhoisClient
	certs      interfaces.CertificateProbe
	hosting    interfaces.HostingProbe
	capturer   interfaces.ScreenshotCapturer
	images     interfaces.ImageStore
	classifier interfaces.Classifier
	history    interfaces.AssessmentStore
	logger     interfaces.Logger

	probeTimeout   time.Duration
	captureTimeout time.Duration
}

// NewOrchestrator ties the components together. nil cfg selects defaults.
func NewOrchestrator(cfg *Config, comps *Components, logger interfaces.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("orchestrator")
	}

	engine := comps.Engine
	if engine == nil {
		engine = scoring.NewEngine(nil)
	}

	return &Orchestrator{
		engine:         engine,
		whois:          comps.Whois,
		certs:          comps.Certs,
		hosting:        comps.Hosting,
		capturer:       comps.Capturer,
		images:         comps.Images,
		classifier:     comps.Classifier,
		history:        comps.History,
		logger:         logger,
		probeTimeout:   cfg.ProbeCfg.Timeout,
		captureTimeout: cfg.CaptureCfg.Timeout,
	}
}

// Analyze assesses one URL end to end and returns the finished assessment.
// progress may be nil.
func (o *Orchestrator) Analyze(ctx context.Context, rawURL string, progress ProgressFunc) (*model.TrustAssessment, error) {
	normalized, hostname, err := utils.NormalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	start := time.Now()
	domain := utils.RegistrableDomain(hostname)

	var (
		whoisRec *model.WhoisRecord
		certRec  *model.CertificateRecord
		hostRec  *model.HostingRecord
		page     *model.PageCapture
	)

	// The three probes and the page capture are independent; run them
	// concurrently with individual deadlines. Each branch swallows its own
	// failure: a dead probe leaves a nil record and scoring carries on.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emit(progress, StageWhois)
		pctx, cancel := context.WithTimeout(gctx, o.probeTimeout)
		defer cancel()
		whoisRec = o.whois.Lookup(pctx, domain)
		return nil
	})
	g.Go(func() error {
		emit(progress, StageCertificate)
		pctx, cancel := context.WithTimeout(gctx, o.probeTimeout)
		defer cancel()
		certRec = o.certs.Probe(pctx, hostname)
		return nil
	})
	g.Go(func() error {
		emit(progress, StageHosting)
		pctx, cancel := context.WithTimeout(gctx, o.probeTimeout)
		defer cancel()
		hostRec = o.hosting.Probe(pctx, hostname)
		return nil
	})
	g.Go(func() error {
		emit(progress, StageScreenshot)
		cctx, cancel := context.WithTimeout(gctx, o.captureTimeout)
		defer cancel()
		captured, cerr := o.capturer.Capture(cctx, normalized)
		if cerr != nil {
			o.logger.Warn("page capture failed, continuing without it",
				interfaces.Field{Key: "url", Value: normalized},
				interfaces.Field{Key: "error", Value: cerr.Error()})
			return nil
		}
		page = captured
		return nil
	})
	_ = g.Wait()

	var summary *model.PageSummary
	if page != nil && page.HTML != "" {
		if s, serr := capture.SummarizePage(page.HTML); serr != nil {
			o.logger.Warn("page summary failed",
				interfaces.Field{Key: "url", Value: normalized},
				interfaces.Field{Key: "error", Value: serr.Error()})
		} else {
			summary = s
		}
	}

	urlFindings := scoring.AnalyzeURL(normalized, hostname, o.engine.Tables())
	lookalikes := scoring.FindLookalikes(hostname, o.engine.Tables())

	var screenshotURL *string
	if page != nil && len(page.PNG) > 0 {
		if url, serr := o.images.Store(page.PNG); serr != nil {
			o.logger.Warn("screenshot store failed",
				interfaces.Field{Key: "url", Value: normalized},
				interfaces.Field{Key: "error", Value: serr.Error()})
		} else {
			screenshotURL = &url
		}
	}

	emit(progress, StageAI)
	verdict := o.classify(ctx, &model.ClassifyRequest{
		URL:         normalized,
		Hostname:    hostname,
		Whois:       whoisRec,
		Certificate: certRec,
		Hosting:     hostRec,
		Page:        summary,
		URLFindings: urlFindings,
		Lookalikes:  lookalikes,
		Screenshot:  screenshotBytes(page),
	})

	emit(progress, StageFinalizing)
	assessment := o.engine.Evaluate(scoring.Input{
		URL:         normalized,
		Hostname:    hostname,
		Whois:       whoisRec,
		Certificate: certRec,
		Hosting:     hostRec,
		Verdict:     verdict,
	})

	assessment.ID = uuid.New().String()
	assessment.CreatedAt = time.Now().UTC()
	assessment.TechnicalDetails = &model.TechnicalDetails{
		URL:           normalized,
		Hostname:      hostname,
		Whois:         whoisRec,
		Certificate:   certRec,
		Hosting:       hostRec,
		ScreenshotURL: screenshotURL,
		Page:          summary,
		AIVerdict:     verdict,
		Lookalikes:    lookalikes,
	}

	if verdict != nil && verdict.BrandName != "" && verdict.LegitimateURL != "" {
		assessment.TechnicalDetails.Impersonation = o.referenceScreenshot(ctx, verdict)
	}

	if o.history != nil {
		if herr := o.history.Save(ctx, assessment); herr != nil {
			o.logger.Warn("history save failed",
				interfaces.Field{Key: "id", Value: assessment.ID},
				interfaces.Field{Key: "error", Value: herr.Error()})
		}
	}

	o.logger.Info("assessment complete",
		interfaces.Field{Key: "url", Value: normalized},
		interfaces.Field{Key: "result", Value: string(assessment.Result)},
		interfaces.Field{Key: "trust_score", Value: assessment.TrustScore},
		interfaces.Field{Key: "took", Value: time.Since(start).String()})

	return assessment, nil
}

// classify asks the oracle for a verdict. A nil return is the error marker:
// the visual scorer then falls back to its neutral default.
func (o *Orchestrator) classify(ctx context.Context, req *model.ClassifyRequest) *model.AIVerdict {
	if o.classifier == nil {
		return nil
	}
	verdict, err := o.classifier.Classify(ctx, req)
	if err != nil {
		o.logger.Warn("ai classification failed, scoring without it",
			interfaces.Field{Key: "url", Value: req.URL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}
	return verdict
}

// referenceScreenshot captures the impersonated brand's real site so a
// report can show both pages side by side. Best effort: a capture or store
// failure leaves the screenshot URL null, the brand report itself survives.
func (o *Orchestrator) referenceScreenshot(ctx context.Context, v *model.AIVerdict) *model.ImpersonationDetails {
	details := &model.ImpersonationDetails{
		BrandName:     v.BrandName,
		LegitimateURL: v.LegitimateURL,
	}

	cctx, cancel := context.WithTimeout(ctx, o.captureTimeout)
	defer cancel()

	page, err := o.capturer.Capture(cctx, v.LegitimateURL)
	if err != nil {
		o.logger.Warn("reference capture failed",
			interfaces.Field{Key: "url", Value: v.LegitimateURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return details
	}
	if page == nil || len(page.PNG) == 0 {
		return details
	}

	url, err := o.images.Store(page.PNG)
	if err != nil {
		o.logger.Warn("reference screenshot store failed",
			interfaces.Field{Key: "url", Value: v.LegitimateURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return details
	}
	details.ScreenshotURL = &url
	return details
}

// History exposes the assessment store for the listing endpoints; nil when
// history is disabled.
func (o *Orchestrator) History() interfaces.AssessmentStore { return o.history }

func emit(progress ProgressFunc, stage Stage) {
	if progress != nil {
		progress(stage)
	}
}

func screenshotBytes(page *model.PageCapture) []byte {
	if page == nil {
		return nil
	}
	return page.PNG
}
