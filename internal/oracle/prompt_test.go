package oracle

import (
	"strings"
	"testing"

	"github.com/ravik808/sitetrust/internal/model"
)

func TestParseVerdict_PlainJSON(t *testing.T) {
	t.Parallel()
	v, err := parseVerdict(`{"result":"dangerous","reasons":["Clones a login page"],"legitimate_url":"https://www.paypal.com","brand_name":"PayPal"}`)
	if err != nil {
		t.Fatalf("parseVerdict: %v", err)
	}
	if v.Result != "dangerous" || v.BrandName != "PayPal" || v.LegitimateURL != "https://www.paypal.com" {
		t.Errorf("unexpected verdict %+v", v)
	}
	if len(v.Reasons) != 1 {
		t.Errorf("expected one reason, got %v", v.Reasons)
	}
}

func TestParseVerdict_FencedReply(t *testing.T) {
	t.Parallel()
	reply := "```json\n{\"result\":\"safe\",\"reasons\":[]}\n```"
	v, err := parseVerdict(reply)
	if err != nil {
		t.Fatalf("parseVerdict: %v", err)
	}
	if v.Result != "safe" {
		t.Errorf("expected safe, got %q", v.Result)
	}
}

func TestParseVerdict_NormalizesCase(t *testing.T) {
	t.Parallel()
	v, err := parseVerdict(`{"result":" Suspicious ","reasons":[]}`)
	if err != nil {
		t.Fatalf("parseVerdict: %v", err)
	}
	if v.Result != "suspicious" {
		t.Errorf("expected normalized result, got %q", v.Result)
	}
}

func TestParseVerdict_RejectsUnknownResult(t *testing.T) {
	t.Parallel()
	if _, err := parseVerdict(`{"result":"banana","reasons":[]}`); err == nil {
		t.Errorf("expected an error for an out-of-schema result")
	}
}

func TestParseVerdict_RejectsProse(t *testing.T) {
	t.Parallel()
	if _, err := parseVerdict("This site looks fine to me!"); err == nil {
		t.Errorf("expected an error for a non-JSON reply")
	}
}

func TestCleanJSONReply(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := cleanJSONReply(tc.in); got != tc.want {
			t.Errorf("cleanJSONReply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildPrompt_QuotesEvidence(t *testing.T) {
	t.Parallel()
	prompt := buildPrompt(&model.ClassifyRequest{
		URL:      "http://paypa1-secure.top/login",
		Hostname: "paypa1-secure.top",
		Whois:    &model.WhoisRecord{Raw: "...", Registrar: "NameCheap, Inc.", CreationDate: "2026-01-02T00:00:00Z"},
		Certificate: &model.CertificateRecord{
			Valid:   true,
			Issuer:  map[string]string{"organization": "Let's Encrypt"},
			ValidTo: "2026-04-02T00:00:00Z",
		},
		Hosting: &model.HostingRecord{IP: "203.0.113.7", Reverse: "static.203-0-113-7.example"},
		URLFindings: &model.URLAnalysis{
			Issues: []string{"Suspicious top-level domain: .top"},
		},
		Lookalikes: []model.LookalikeMatch{{Brand: "paypal", Distance: 1, LegitimateURL: "https://www.paypal.com"}},
		Page:       &model.PageSummary{Title: "PayPal Login", FormCount: 1, PasswordFields: 1, LinkCount: 3},
	})

	for _, want := range []string{
		"paypa1-secure.top",
		"NameCheap, Inc.",
		"Let's Encrypt",
		"203.0.113.7",
		"Suspicious top-level domain: .top",
		"edit distance 1",
		"PayPal Login",
		"password fields: 1",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_StatesMissingEvidence(t *testing.T) {
	t.Parallel()
	prompt := buildPrompt(&model.ClassifyRequest{URL: "https://example.com", Hostname: "example.com"})

	for _, want := range []string{
		"no registration data available",
		"none served",
		"unresolved",
		"No screenshot could be captured",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
