package scoring

import (
	"time"

	"github.com/ravik808/sitetrust/internal/model"
)

// Engine runs the five component scorers and assembles a TrustAssessment.
// It holds only the injected lookup tables; every evaluation is a pure
// transformation of its Input.
type Engine struct {
	tables *Tables
}

// NewEngine creates an Engine. nil tables means DefaultTables.
func NewEngine(tables *Tables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{tables: tables}
}

// Tables exposes the engine's lookup tables to collaborators that need the
// same data (lookalike hints, AI context).
func (e *Engine) Tables() *Tables { return e.tables }

// Input carries one request's raw observations. Probe records are nil when
// the corresponding probe failed; Verdict nil is the oracle error marker.
// Now pins the reference time for age banding; zero means time.Now().
type Input struct {
	URL      string
	Hostname string

	Whois       *model.WhoisRecord
	Certificate *model.CertificateRecord
	Hosting     *model.HostingRecord
	Verdict     *model.AIVerdict

	Now time.Time
}

// Evaluate scores all five components, clamps the total into [0,100],
// derives the verdict and assembles key factors and warnings. It never
// fails: every component has a defined output for absent input.
func (e *Engine) Evaluate(in Input) *model.TrustAssessment {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	creationDate := ""
	if in.Whois != nil {
		creationDate = in.Whois.CreationDate
	}

	urlRes := AnalyzeURL(in.URL, in.Hostname, e.tables)
	age := ScoreDomainAge(creationDate, now)
	cert := ScoreCertificate(in.Certificate, e.tables)
	hosting := ScoreHosting(in.Hosting, e.tables)
	visual := ScoreVisual(in.Verdict)

	total := clamp(urlRes.Score+age.Score+cert.Score+hosting.Score+visual.Score, 0, 100)

	return &model.TrustAssessment{
		URL:        in.URL,
		Result:     VerdictFor(total),
		TrustScore: total,
		ScoreBreakdown: &model.ScoreBreakdown{
			URLStructure:   urlRes,
			DomainAge:      age,
			SSLCertificate: cert,
			Hosting:        hosting,
			VisualAnalysis: visual,
		},
		KeyFactors: keyFactors(urlRes, age, cert, visual),
		Warnings:   collectWarnings(urlRes, in.Verdict),
	}
}

// VerdictFor derives the three-way verdict from the trust score. Thresholds
// are evaluated in this order; the numeric result supersedes whatever the AI
// oracle said.
func VerdictFor(score int) model.Verdict {
	if score >= 70 {
		return model.VerdictSafe
	}
	if score >= 40 {
		return model.VerdictSuspicious
	}
	return model.VerdictDangerous
}

// keyFactors picks the headline notes. Conditions are independent, not
// bands: a midrange component contributes nothing.
func keyFactors(urlRes *model.URLAnalysis, age, cert, visual *model.ScoreComponent) []string {
	factors := []string{}
	if age.Score >= 15 {
		factors = append(factors, "✓ Established domain age")
	}
	if age.Score < 5 {
		factors = append(factors, "⚠ Domain is very new or age unknown")
	}
	if cert.Score == certMaxScore {
		factors = append(factors, "✓ Certificate from trusted issuer")
	}
	if cert.Score == 0 {
		factors = append(factors, "⚠ Missing or invalid certificate")
	}
	if urlRes.Score < 15 {
		factors = append(factors, "⚠ URL contains suspicious patterns")
	}
	if visual.Score == visualMaxScore {
		factors = append(factors, "✓ Visual analysis found no deception")
	}
	if visual.Score == 0 {
		factors = append(factors, "⚠ Visual analysis flagged deception")
	}
	return factors
}

// collectWarnings concatenates URL issues, URL warnings, then AI reasons.
// Order is part of the output contract.
func collectWarnings(urlRes *model.URLAnalysis, v *model.AIVerdict) []string {
	warnings := []string{}
	warnings = append(warnings, urlRes.Issues...)
	warnings = append(warnings, urlRes.Warnings...)
	if v != nil {
		warnings = append(warnings, v.Reasons...)
	}
	return warnings
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
