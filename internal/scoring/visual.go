package scoring

import "github.com/ravik808/sitetrust/internal/model"

const visualMaxScore = 30

// ScoreVisual maps the AI oracle's categorical verdict onto the 0-30 visual
// component. A nil verdict is the oracle error marker and scores the neutral
// midpoint rather than punishing the site for our outage; unrecognized
// result strings fall through to the same default.
func ScoreVisual(v *model.AIVerdict) *model.ScoreComponent {
	c := &model.ScoreComponent{MaxScore: visualMaxScore}

	if v == nil {
		c.Score = 15
		c.Reason = "AI analysis unavailable"
		return c
	}

	switch model.Verdict(v.Result) {
	case model.VerdictSafe:
		c.Score = 30
		c.Reason = "AI found no signs of impersonation or deception"
	case model.VerdictSuspicious:
		c.Score = 15
		c.Reason = "AI flagged suspicious visual elements"
	case model.VerdictDangerous:
		c.Score = 0
		c.Reason = "AI identified the page as deceptive"
	default:
		c.Score = 15
		c.Reason = "AI analysis unavailable"
	}
	return c
}
