package engine

import "veriweb/pkg/domain"

const (
	// maxScore is the starting (fully safe) score.
	maxScore = 100

	// safeThreshold is the lowest score still classified SAFE.
	safeThreshold = 80
	// suspiciousThreshold is the lowest score still classified SUSPICIOUS.
	suspiciousThreshold = 50
)

// Score maps a sequence of fired signals to a safety score. Every signal
// subtracts its fixed weight from 100 and the result is clamped to [0, 100]
// once at the end, not per step. The additive model keeps the score
// auditable: every point lost maps to exactly one visible threat.
func Score(signals []Signal) int {
	score := maxScore
	for _, s := range signals {
		score -= s.Weight
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	return score
}

// ClassifyScore maps a score to its verdict band. The mapping is total over
// integers and boundary values belong to the safer band: exactly 80 is SAFE,
// exactly 50 is SUSPICIOUS.
func ClassifyScore(score int) domain.Verdict {
	switch {
	case score >= safeThreshold:
		return domain.VerdictSafe
	case score >= suspiciousThreshold:
		return domain.VerdictSuspicious
	default:
		return domain.VerdictMalicious
	}
}
