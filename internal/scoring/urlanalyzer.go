package scoring

import (
	"fmt"
	"strings"

	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/utils"
)

const urlMaxScore = 20

// AnalyzeURL scores the structural risk of a URL. It starts at the ceiling
// and subtracts a penalty for every signal it detects; signals are
// independent and compound, and the score is clamped to [0,20] once at the
// end, not per step. Pure function: identical input yields identical output.
func AnalyzeURL(rawURL, hostname string, t *Tables) *model.URLAnalysis {
	res := &model.URLAnalysis{
		ScoreComponent: model.ScoreComponent{MaxScore: urlMaxScore},
		Issues:         []string{},
		Warnings:       []string{},
	}

	host := strings.ToLower(strings.TrimSpace(hostname))
	score := urlMaxScore

	// Throwaway TLDs favored by phishing kits.
	for _, tld := range t.SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			score -= 8
			res.Issues = append(res.Issues, fmt.Sprintf("Suspicious top-level domain: %s", tld))
			break
		}
	}

	// Brand token embedded in the hostname without being the brand's own
	// .com domain. First matching table entry wins; later entries are not
	// aggregated even if they would also match.
	hostNoDots := strings.ReplaceAll(host, ".", "")
	for _, b := range t.Brands {
		if strings.Contains(hostNoDots, b.Name) && !strings.Contains(host, b.Name+".com") {
			score -= 10
			res.Issues = append(res.Issues, fmt.Sprintf("Possible %s impersonation in hostname", b.Name))
			res.ImpersonatedBrand = b.Name
			res.LegitimateURL = b.URL
			break
		}
	}

	// Phishing vocabulary: 3 points per keyword, capped at 10.
	matched := 0
	for _, kw := range t.SuspiciousKeywords {
		if strings.Contains(host, kw) {
			matched++
			res.Warnings = append(res.Warnings, fmt.Sprintf("Contains suspicious keyword: %q", kw))
		}
	}
	if matched > 0 {
		penalty := 3 * matched
		if penalty > 10 {
			penalty = 10
		}
		score -= penalty
	}

	if depth := len(strings.Split(host, ".")) - 2; depth > 2 {
		score -= 5
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unusually deep subdomain nesting (%d levels)", depth))
	}

	if strings.Contains(host, "--") || strings.Contains(host, "..") {
		score -= 5
		res.Issues = append(res.Issues, "Hostname contains doubled separators")
	}

	// Raw IPs are the strongest single structural signal.
	if utils.IsIPv4Literal(host) {
		score -= 15
		res.Issues = append(res.Issues, "Raw IP address used instead of a domain name")
	}

	if len(host) > 40 {
		score -= 3
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unusually long hostname (%d characters)", len(host)))
	}

	if digitCount(host) > 3 {
		score -= 2
		res.Warnings = append(res.Warnings, "Hostname contains many digits")
	}

	res.Score = clamp(score, 0, urlMaxScore)
	res.Reason = urlReason(res)
	return res
}

func urlReason(res *model.URLAnalysis) string {
	if len(res.Issues) == 0 && len(res.Warnings) == 0 {
		return "URL structure looks clean"
	}
	return fmt.Sprintf("URL structure raised %d issue(s) and %d warning(s)", len(res.Issues), len(res.Warnings))
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
