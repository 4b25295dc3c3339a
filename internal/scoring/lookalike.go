package scoring

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/utils"
)

// maxLookalikeDistance bounds how far a label may drift from a brand name
// and still be reported ("paypa1" is 1 from "paypal", "g00gle" is 2 from
// "google").
const maxLookalikeDistance = 2

// FindLookalikes reports brands whose name sits within a small edit distance
// of the hostname's registrable label or one of its hyphen-separated parts.
// Hostnames that contain a brand verbatim are skipped; that case is the
// impersonation issue AnalyzeURL already raises. Lookalike matches never
// affect the score, they only enrich the AI context and technical details.
func FindLookalikes(hostname string, t *Tables) []model.LookalikeMatch {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if host == "" || utils.IsIPv4Literal(host) {
		return nil
	}

	label := utils.RegistrableLabel(host)
	parts := strings.Split(label, "-")
	hostNoDots := strings.ReplaceAll(host, ".", "")

	dmp := diffmatchpatch.New()
	var matches []model.LookalikeMatch
	for _, b := range t.Brands {
		if strings.Contains(hostNoDots, b.Name) {
			continue
		}
		d := levenshtein(dmp, label, b.Name)
		for _, part := range parts {
			if pd := levenshtein(dmp, part, b.Name); pd < d {
				d = pd
			}
		}
		if d > 0 && d <= maxLookalikeDistance {
			matches = append(matches, model.LookalikeMatch{
				Brand:         b.Name,
				Distance:      d,
				LegitimateURL: b.URL,
			})
		}
	}
	return matches
}

func levenshtein(dmp *diffmatchpatch.DiffMatchPatch, a, b string) int {
	if a == b {
		return 0
	}
	return dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
}
