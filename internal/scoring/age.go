package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/ravik808/sitetrust/internal/model"
)

const ageMaxScore = 20

// creationDateLayouts are tried in order; WHOIS servers format dates loosely.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// ScoreDomainAge bands the domain's age into a 0-20 subscore. The arithmetic
// is deliberately calendar-naive: whole days by truncation, months as
// days/30, years as days/365. Changing this to calendar math would move
// domains across band edges, so it stays as is.
func ScoreDomainAge(creationDate string, now time.Time) *model.ScoreComponent {
	c := &model.ScoreComponent{MaxScore: ageMaxScore}

	created, ok := parseCreationDate(creationDate)
	if !ok {
		c.Reason = "Domain age unknown (no usable creation date)"
		return c
	}

	days := int(now.Sub(created).Hours() / 24)
	months := days / 30
	years := days / 365

	switch {
	case days < 30:
		c.Score = 0
		c.Reason = fmt.Sprintf("Domain created %d days ago: very new, high risk", days)
	case months < 6:
		c.Score = 5
		c.Reason = fmt.Sprintf("Domain is only %d months old", months)
	case months < 12:
		c.Score = 10
		c.Reason = fmt.Sprintf("Domain is %d months old", months)
	case years < 2:
		c.Score = 15
		c.Reason = fmt.Sprintf("Domain is over a year old (%d days)", days)
	default:
		c.Score = 20
		c.Reason = fmt.Sprintf("Domain is %d years old: well established", years)
	}
	return c
}

func parseCreationDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
