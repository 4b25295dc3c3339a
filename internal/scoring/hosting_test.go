package scoring_test

import (
	"strings"
	"testing"

	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/scoring"
)

func TestScoreHosting_Absent(t *testing.T) {
	t.Parallel()
	c := scoring.ScoreHosting(nil, scoring.DefaultTables())
	if c.Score != 5 {
		t.Errorf("missing hosting data is neutral, expected 5, got %d", c.Score)
	}
	if !strings.Contains(c.Reason, "unavailable") {
		t.Errorf("expected unavailable reason, got %q", c.Reason)
	}
}

func TestScoreHosting_MissingIP(t *testing.T) {
	t.Parallel()
	c := scoring.ScoreHosting(&model.HostingRecord{}, scoring.DefaultTables())
	if c.Score != 5 {
		t.Errorf("expected neutral 5 for empty IP, got %d", c.Score)
	}
}

func TestScoreHosting_ReputableProvider(t *testing.T) {
	t.Parallel()
	rec := &model.HostingRecord{
		IP:      "3.85.120.4",
		Reverse: "ec2-3-85-120-4.compute-1.amazonaws.com",
	}
	c := scoring.ScoreHosting(rec, scoring.DefaultTables())
	if c.Score != 10 {
		t.Errorf("expected 10 for amazonaws reverse, got %d (%s)", c.Score, c.Reason)
	}
}

func TestScoreHosting_ReverseMatchIgnoresCase(t *testing.T) {
	t.Parallel()
	rec := &model.HostingRecord{
		IP:      "142.250.80.36",
		Reverse: "EDGE.GOOGLEUSERCONTENT.COM",
	}
	c := scoring.ScoreHosting(rec, scoring.DefaultTables())
	if c.Score != 10 {
		t.Errorf("reverse names are lowercased before matching, got %d", c.Score)
	}
}

func TestScoreHosting_UnknownProvider(t *testing.T) {
	t.Parallel()
	rec := &model.HostingRecord{
		IP:      "185.22.11.3",
		Reverse: "vps-318842.shady-colo.example",
	}
	c := scoring.ScoreHosting(rec, scoring.DefaultTables())
	if c.Score != 5 {
		t.Errorf("expected 5 for unknown provider, got %d", c.Score)
	}
}

func TestScoreHosting_NoReverseRecord(t *testing.T) {
	t.Parallel()
	rec := &model.HostingRecord{IP: "203.0.113.9"}
	c := scoring.ScoreHosting(rec, scoring.DefaultTables())
	if c.Score != 5 {
		t.Errorf("expected 5 when PTR is missing, got %d", c.Score)
	}
}
