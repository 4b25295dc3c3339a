package scoring_test

import (
	"testing"

	"github.com/ravik808/sitetrust/internal/scoring"
)

func TestFindLookalikes_SingleCharacterSwap(t *testing.T) {
	t.Parallel()
	matches := scoring.FindLookalikes("paypa1.com", scoring.DefaultTables())

	if len(matches) != 1 {
		t.Fatalf("expected one match, got %v", matches)
	}
	if matches[0].Brand != "paypal" || matches[0].Distance != 1 {
		t.Errorf("expected paypal at distance 1, got %+v", matches[0])
	}
	if matches[0].LegitimateURL == "" {
		t.Errorf("match must carry the legitimate URL")
	}
}

func TestFindLookalikes_DigitSubstitutionAcrossSubdomain(t *testing.T) {
	t.Parallel()
	matches := scoring.FindLookalikes("www.g00gle.com", scoring.DefaultTables())

	found := false
	for _, m := range matches {
		if m.Brand == "google" {
			found = true
			if m.Distance != 2 {
				t.Errorf("expected distance 2 for g00gle, got %d", m.Distance)
			}
		}
	}
	if !found {
		t.Errorf("expected google among matches, got %v", matches)
	}
}

func TestFindLookalikes_HyphenatedPartMatches(t *testing.T) {
	t.Parallel()
	matches := scoring.FindLookalikes("amaz0n-support.xyz", scoring.DefaultTables())

	found := false
	for _, m := range matches {
		if m.Brand == "amazon" && m.Distance == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected amazon at distance 1 via the hyphen part, got %v", matches)
	}
}

func TestFindLookalikes_VerbatimBrandSkipped(t *testing.T) {
	t.Parallel()
	// A verbatim brand embed is the impersonation issue AnalyzeURL raises;
	// lookalike matching must not double-report it.
	for _, host := range []string{"secure-paypal-login.tk", "paypal.com", "www.google.com"} {
		for _, m := range scoring.FindLookalikes(host, scoring.DefaultTables()) {
			if m.Brand == "paypal" || m.Brand == "google" {
				t.Errorf("%s: verbatim brand reported as lookalike: %+v", host, m)
			}
		}
	}
}

func TestFindLookalikes_NoNearbyBrand(t *testing.T) {
	t.Parallel()
	if matches := scoring.FindLookalikes("example.com", scoring.DefaultTables()); len(matches) != 0 {
		t.Errorf("expected no matches for example.com, got %v", matches)
	}
}

func TestFindLookalikes_IPLiteral(t *testing.T) {
	t.Parallel()
	if matches := scoring.FindLookalikes("192.168.1.1", scoring.DefaultTables()); matches != nil {
		t.Errorf("expected nil for an IP literal, got %v", matches)
	}
}
