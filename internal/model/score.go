package model

import "time"

// Verdict is the three-way trustworthiness classification of a website.
// It is derived from the numeric trust score, never taken directly from the
// AI oracle: when the two disagree, the numeric aggregation wins.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictDangerous  Verdict = "dangerous"
)

// ScoreComponent is one weighted factor of the total trust score.
// Invariant: 0 <= Score <= MaxScore. Components are constructed fresh per
// request and never mutated afterwards.
type ScoreComponent struct {
	// Score is the points awarded for this factor.
	Score int `json:"score"`

	// MaxScore is the ceiling for this factor (20/20/20/10/30 across the five).
	MaxScore int `json:"max_score"`

	// Reason is a human-readable explanation of the awarded score.
	Reason string `json:"reason"`
}

// URLAnalysis is the URL-structure component. On top of the plain score it
// carries the individual findings that produced the penalties.
type URLAnalysis struct {
	ScoreComponent

	// Issues are hard negative findings (suspicious TLD, brand impersonation,
	// IP-as-hostname, double hyphens/dots).
	Issues []string `json:"issues"`

	// Warnings are soft negative findings (keywords, deep subdomains, length,
	// digit count).
	Warnings []string `json:"warnings"`

	// ImpersonatedBrand and LegitimateURL are set only when the hostname
	// contains a known brand token without being that brand's own domain.
	ImpersonatedBrand string `json:"impersonated_brand,omitempty"`
	LegitimateURL     string `json:"legitimate_url,omitempty"`
}

// ScoreBreakdown names the five components of the trust score.
type ScoreBreakdown struct {
	URLStructure   *URLAnalysis    `json:"url_structure"`
	DomainAge      *ScoreComponent `json:"domain_age"`
	SSLCertificate *ScoreComponent `json:"ssl_certificate"`
	Hosting        *ScoreComponent `json:"hosting"`
	VisualAnalysis *ScoreComponent `json:"visual_analysis"`
}

// LookalikeMatch is an informational hint that the hostname's registrable
// label sits within a small edit distance of a known brand. It never affects
// the score; it feeds the AI context and the technical details.
type LookalikeMatch struct {
	Brand         string `json:"brand"`
	Distance      int    `json:"distance"`
	LegitimateURL string `json:"legitimate_url"`
}

// ImpersonationDetails reports an AI-confirmed impersonation target together
// with a best-effort reference screenshot of the legitimate site. The
// screenshot URL stays null when capture failed; the brand report survives.
type ImpersonationDetails struct {
	BrandName     string  `json:"brand_name"`
	LegitimateURL string  `json:"legitimate_url"`
	ScreenshotURL *string `json:"screenshot_url"`
}

// TechnicalDetails aggregates the raw observations an assessment was based
// on. Probe records are nil when the corresponding probe failed.
type TechnicalDetails struct {
	URL      string `json:"url"`
	Hostname string `json:"hostname"`

	Whois       *WhoisRecord       `json:"whois"`
	Certificate *CertificateRecord `json:"ssl_certificate"`
	Hosting     *HostingRecord     `json:"hosting"`

	// ScreenshotURL is the stored screenshot of the assessed page, null when
	// capture or storage failed.
	ScreenshotURL *string `json:"screenshot_url"`

	// Page summarizes the rendered HTML (title, forms, password inputs).
	Page *PageSummary `json:"page,omitempty"`

	// AIVerdict is the oracle's raw output, null when the oracle errored.
	AIVerdict *AIVerdict `json:"ai_verdict"`

	Lookalikes    []LookalikeMatch      `json:"lookalikes,omitempty"`
	Impersonation *ImpersonationDetails `json:"impersonation,omitempty"`
}

// TrustAssessment is the final scoring output for one URL.
// Example:
//
//	{
//	  "result": "dangerous",
//	  "trust_score": 12,
//	  "score_breakdown": { "url_structure": {...}, "domain_age": {...}, ... },
//	  "key_factors": ["⚠ Domain is very new", ...],
//	  "warnings": ["Suspicious TLD: .tk", ...],
//	  "technical_details": { ... }
//	}
type TrustAssessment struct {
	// ID is a server-assigned identifier used by the assessment history.
	ID string `json:"id,omitempty"`

	// URL is the normalized URL that was assessed.
	URL string `json:"url"`

	// Result is derived from TrustScore via fixed thresholds: >=70 safe,
	// >=40 suspicious, otherwise dangerous.
	Result Verdict `json:"result"`

	// TrustScore is the clamped [0,100] sum of the five component scores.
	TrustScore int `json:"trust_score"`

	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown"`

	// KeyFactors are the headline positives/negatives, each prefixed with
	// "✓ " or "⚠ ".
	KeyFactors []string `json:"key_factors"`

	// Warnings concatenates URL issues, URL warnings and AI reasons, in that
	// order.
	Warnings []string `json:"warnings"`

	TechnicalDetails *TechnicalDetails `json:"technical_details"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AssessmentSummary is the compact listing row the history store returns.
type AssessmentSummary struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Result     Verdict   `json:"result"`
	TrustScore int       `json:"trust_score"`
	CreatedAt  time.Time `json:"created_at"`
}
