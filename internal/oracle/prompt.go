package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ravik808/sitetrust/internal/model"
)

const systemPrompt = `You are a website trust analyst specialized in phishing and brand impersonation detection.

You receive technical evidence about one website (WHOIS, TLS certificate, hosting, URL findings) and usually a full-page screenshot. Judge whether the page is what it claims to be.

RULES:
- Base reasons ONLY on the evidence provided, never invent data
- A login or payment form on a young domain with a lookalike hostname is the classic phishing shape
- Official brand sites are "safe" even when they collect passwords
- Reply with a single JSON object and nothing else, matching exactly:
{
  "result": "safe" | "suspicious" | "dangerous",
  "reasons": ["short, user-readable findings; empty when safe"],
  "legitimate_url": "canonical URL of the real site when this page impersonates a brand, otherwise empty",
  "brand_name": "name of the impersonated brand, otherwise empty"
}`

// buildPrompt flattens the collected evidence into the user message. Missing
// probes are stated as missing; the model should weigh absence, not guess.
func buildPrompt(req *model.ClassifyRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assess this website.\n\nURL: %s\nHostname: %s\n", req.URL, req.Hostname)

	b.WriteString("\nWHOIS:\n")
	if req.Whois == nil || req.Whois.CreationDate == "" {
		b.WriteString("- no registration data available\n")
	} else {
		fmt.Fprintf(&b, "- registrar: %s\n- created: %s\n", req.Whois.Registrar, req.Whois.CreationDate)
	}

	b.WriteString("\nTLS certificate:\n")
	if req.Certificate == nil {
		b.WriteString("- none served\n")
	} else {
		fmt.Fprintf(&b, "- valid: %t\n- issuer: %s %s\n- expires: %s\n",
			req.Certificate.Valid,
			req.Certificate.Issuer["organization"], req.Certificate.Issuer["common_name"],
			req.Certificate.ValidTo)
	}

	b.WriteString("\nHosting:\n")
	if req.Hosting == nil {
		b.WriteString("- unresolved\n")
	} else {
		fmt.Fprintf(&b, "- ip: %s\n- reverse dns: %s\n", req.Hosting.IP, req.Hosting.Reverse)
	}

	if req.URLFindings != nil && (len(req.URLFindings.Issues) > 0 || len(req.URLFindings.Warnings) > 0) {
		b.WriteString("\nURL findings:\n")
		for _, s := range req.URLFindings.Issues {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		for _, s := range req.URLFindings.Warnings {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if len(req.Lookalikes) > 0 {
		b.WriteString("\nHostname is close to known brands:\n")
		for _, m := range req.Lookalikes {
			fmt.Fprintf(&b, "- %s (edit distance %d, real site %s)\n", m.Brand, m.Distance, m.LegitimateURL)
		}
	}

	if req.Page != nil {
		fmt.Fprintf(&b, "\nRendered page:\n- title: %q\n- forms: %d\n- password fields: %d\n- links: %d\n",
			req.Page.Title, req.Page.FormCount, req.Page.PasswordFields, req.Page.LinkCount)
	}

	if len(req.Screenshot) > 0 {
		b.WriteString("\nA full-page screenshot is attached.\n")
	} else {
		b.WriteString("\nNo screenshot could be captured; judge from the evidence above.\n")
	}

	return b.String()
}

// cleanJSONReply strips markdown code fences. Models wrap JSON in fences
// despite the response MIME type, especially under high load.
func cleanJSONReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		if i := strings.LastIndex(reply, "```"); i >= 0 {
			reply = reply[:i]
		}
	}
	return strings.TrimSpace(reply)
}

// parseVerdict decodes the model's JSON reply and normalizes the result. A
// result outside the three known categories is a protocol failure, not a
// verdict.
func parseVerdict(reply string) (*model.AIVerdict, error) {
	var v model.AIVerdict
	if err := json.Unmarshal([]byte(cleanJSONReply(reply)), &v); err != nil {
		return nil, fmt.Errorf("parse verdict %q: %w", reply, err)
	}

	v.Result = strings.ToLower(strings.TrimSpace(v.Result))
	switch v.Result {
	case "safe", "suspicious", "dangerous":
	default:
		return nil, fmt.Errorf("verdict result %q is not one of safe/suspicious/dangerous", v.Result)
	}

	return &v, nil
}
