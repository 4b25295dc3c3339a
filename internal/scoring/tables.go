package scoring

// BrandEntry pairs a brand token with the brand's canonical URL.
type BrandEntry struct {
	Name string
	URL  string
}

// Tables holds the static lookup data the scorers run against. Build once
// (DefaultTables) and inject; scorers never read package globals, which keeps
// them independently testable with trimmed-down tables.
//
// Brands is an ordered slice, not a map: impersonation detection walks it in
// order and stops at the first hit, so entry order is part of the scoring
// policy and must stay deterministic.
type Tables struct {
	SuspiciousTLDs     []string
	Brands             []BrandEntry
	SuspiciousKeywords []string
	TrustedIssuers     []string
	ReputableHosts     []string
}

// DefaultTables returns the production lookup tables.
func DefaultTables() *Tables {
	return &Tables{
		SuspiciousTLDs: []string{
			".tk", ".ml", ".ga", ".cf", ".gq",
			".top", ".xyz", ".icu", ".click", ".loan",
		},
		Brands: []BrandEntry{
			{"paypal", "https://www.paypal.com"},
			{"google", "https://www.google.com"},
			{"facebook", "https://www.facebook.com"},
			{"amazon", "https://www.amazon.com"},
			{"apple", "https://www.apple.com"},
			{"microsoft", "https://www.microsoft.com"},
			{"netflix", "https://www.netflix.com"},
			{"instagram", "https://www.instagram.com"},
			{"whatsapp", "https://www.whatsapp.com"},
			{"twitter", "https://twitter.com"},
			{"linkedin", "https://www.linkedin.com"},
			{"coinbase", "https://www.coinbase.com"},
			{"binance", "https://www.binance.com"},
			{"chase", "https://www.chase.com"},
			{"wellsfargo", "https://www.wellsfargo.com"},
		},
		SuspiciousKeywords: []string{
			"login", "signin", "verify", "secure", "account",
			"update", "confirm", "suspended", "banking", "password",
			"billing", "wallet",
		},
		TrustedIssuers: []string{
			"Let's Encrypt", "DigiCert", "Sectigo", "GlobalSign",
			"Google Trust Services", "Amazon", "GoDaddy", "Entrust",
			"Comodo", "Cloudflare",
		},
		ReputableHosts: []string{
			"amazonaws", "cloudflare", "googleusercontent", "google",
			"akamai", "azure", "microsoft", "fastly", "digitalocean",
			"hetzner", "linode", "ovh",
		},
	}
}
