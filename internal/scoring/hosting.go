package scoring

import (
	"fmt"
	"strings"

	"github.com/ravik808/sitetrust/internal/model"
)

const hostingMaxScore = 10

// ScoreHosting rates the hosting provider from the reverse-DNS name.
// Unavailable hosting data scores the neutral 5, not 0: plenty of honest
// sites resolve without a PTR record.
func ScoreHosting(rec *model.HostingRecord, t *Tables) *model.ScoreComponent {
	c := &model.ScoreComponent{MaxScore: hostingMaxScore}

	if rec == nil || rec.IP == "" {
		c.Score = 5
		c.Reason = "Hosting information unavailable"
		return c
	}

	reverse := strings.ToLower(rec.Reverse)
	for _, token := range t.ReputableHosts {
		if strings.Contains(reverse, token) {
			c.Score = hostingMaxScore
			c.Reason = fmt.Sprintf("Hosted on recognized infrastructure (%s)", token)
			return c
		}
	}

	c.Score = 5
	c.Reason = "Hosting provider not in the recognized set"
	return c
}
