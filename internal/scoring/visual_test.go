package scoring_test

import (
	"testing"

	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/scoring"
)

func TestScoreVisual_OracleUnavailable(t *testing.T) {
	t.Parallel()
	c := scoring.ScoreVisual(nil)
	if c.Score != 15 {
		t.Errorf("expected neutral 15 when the oracle is unavailable, got %d", c.Score)
	}
	if c.Reason != "AI analysis unavailable" {
		t.Errorf("expected exact unavailable reason, got %q", c.Reason)
	}
	if c.MaxScore != 30 {
		t.Errorf("expected max 30, got %d", c.MaxScore)
	}
}

func TestScoreVisual_VerdictMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		result string
		want   int
	}{
		{"safe", 30},
		{"suspicious", 15},
		{"dangerous", 0},
	}
	for _, tc := range cases {
		c := scoring.ScoreVisual(&model.AIVerdict{Result: tc.result})
		if c.Score != tc.want {
			t.Errorf("verdict %q: expected %d, got %d", tc.result, tc.want, c.Score)
		}
	}
}

func TestScoreVisual_UnknownResultFallsThrough(t *testing.T) {
	t.Parallel()
	c := scoring.ScoreVisual(&model.AIVerdict{Result: "meh"})
	if c.Score != 15 {
		t.Errorf("unrecognized result maps to the unavailable default, got %d", c.Score)
	}
	if c.Reason != "AI analysis unavailable" {
		t.Errorf("expected unavailable reason, got %q", c.Reason)
	}
}
