package model

// WhoisRecord holds parsed WHOIS registration data. Raw is always present;
// on lookup or parse failure it carries a placeholder and the optional fields
// stay empty, which lands the age scorer in its "unknown" band.
type WhoisRecord struct {
	Raw            string `json:"raw"`
	DomainName     string `json:"domainName,omitempty"`
	Registrar      string `json:"registrar,omitempty"`
	CreationDate   string `json:"creationDate,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// CertificateRecord summarizes the leaf TLS certificate served by a host.
// Valid reflects the time window and hostname match, not full chain
// verification.
type CertificateRecord struct {
	Valid         bool              `json:"valid"`
	Subject       map[string]string `json:"subject"`
	Issuer        map[string]string `json:"issuer"`
	ValidFrom     string            `json:"validFrom"`
	ValidTo       string            `json:"validTo"`
	DaysRemaining int               `json:"daysRemaining"`
}

// HostingRecord holds the resolved IP and, when available, its reverse-DNS
// name.
type HostingRecord struct {
	IP      string `json:"ip"`
	Reverse string `json:"reverse,omitempty"`
}

// AIVerdict is the oracle's categorical output. LegitimateURL and BrandName
// form the impersonation hint that triggers the reference screenshot.
type AIVerdict struct {
	Result        string   `json:"result"`
	Reasons       []string `json:"reasons"`
	LegitimateURL string   `json:"legitimate_url,omitempty"`
	BrandName     string   `json:"brand_name,omitempty"`
}

// PageCapture is the in-memory result of rendering a page: screenshot bytes
// (may be empty for HTML-only backends) and the rendered document.
type PageCapture struct {
	PNG  []byte
	HTML string
}

// PageSummary is the goquery digest of the rendered HTML.
type PageSummary struct {
	Title          string `json:"title"`
	FormCount      int    `json:"form_count"`
	PasswordFields int    `json:"password_fields"`
	LinkCount      int    `json:"link_count"`
}

// ClassifyRequest is everything the AI oracle gets to see: the technical
// summary of the four probes plus the rendered page, and optionally the raw
// screenshot for vision models.
type ClassifyRequest struct {
	URL      string
	Hostname string

	Whois       *WhoisRecord
	Certificate *CertificateRecord
	Hosting     *HostingRecord
	Page        *PageSummary

	URLFindings *URLAnalysis
	Lookalikes  []LookalikeMatch

	// Screenshot is the captured PNG, nil when capture failed or the backend
	// is HTML-only.
	Screenshot []byte
}
