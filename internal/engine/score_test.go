package engine_test

import (
	"testing"
	"veriweb/internal/engine"
	"veriweb/pkg/domain"
)

func TestScore_NoSignals(t *testing.T) {
	if got := engine.Score(nil); got != 100 {
		t.Errorf("empty signal list: got %d, want 100", got)
	}
}

func TestScore_SubtractsWeights(t *testing.T) {
	signals := []engine.Signal{
		{ID: engine.SignalIPHost, Weight: 25},
		{ID: engine.SignalSensitiveKeyword, Weight: 20},
		{ID: engine.SignalInsecureScheme, Weight: 10},
	}
	if got := engine.Score(signals); got != 45 {
		t.Errorf("got %d, want 45", got)
	}
}

func TestScore_ClampsAtZero(t *testing.T) {
	signals := []engine.Signal{
		{Weight: 30}, {Weight: 30}, {Weight: 30}, {Weight: 30},
	}
	if got := engine.Score(signals); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestScore_Monotonic(t *testing.T) {
	// adding any fired signal to a fixed base never increases the score
	base := []engine.Signal{{Weight: 10}, {Weight: 15}}
	baseScore := engine.Score(base)

	extras := []engine.Signal{
		{ID: engine.SignalLongURL, Weight: 10},
		{ID: engine.SignalIPHost, Weight: 25},
		{ID: engine.SignalEmptyHost, Weight: 30},
	}
	for _, extra := range extras {
		got := engine.Score(append(append([]engine.Signal{}, base...), extra))
		if got > baseScore {
			t.Errorf("adding %s increased score: %d > %d", extra.ID, got, baseScore)
		}
	}
}

func TestClassifyScore_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  domain.Verdict
	}{
		{100, domain.VerdictSafe},
		{80, domain.VerdictSafe}, // boundary belongs to the safer band
		{79, domain.VerdictSuspicious},
		{50, domain.VerdictSuspicious}, // same rule on the lower boundary
		{49, domain.VerdictMalicious},
		{0, domain.VerdictMalicious},
	}

	for _, tc := range cases {
		if got := engine.ClassifyScore(tc.score); got != tc.want {
			t.Errorf("score %d: got %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestClassifyScore_Total(t *testing.T) {
	// every score in range maps to exactly one band
	for score := 0; score <= 100; score++ {
		v := engine.ClassifyScore(score)
		if v != domain.VerdictSafe && v != domain.VerdictSuspicious && v != domain.VerdictMalicious {
			t.Fatalf("score %d: unexpected verdict %q", score, v)
		}
	}
}
