// Package engine implements the deterministic URL risk engine. A raw URL is
// parsed, checked against a fixed table of heuristic indicators, scored and
// classified into a verdict band. The whole pipeline is pure: no I/O, no
// shared mutable state, and the same input always produces the same report,
// so it is safe to call concurrently from any number of requests.
package engine

import (
	"context"
	"fmt"
	"veriweb/pkg/domain"
	"veriweb/pkg/logger"

	"go.uber.org/zap"
)

// Analyze runs the full pipeline on a raw URL string and assembles the final
// report. Malformed input never fails: an unparsable URL degrades to an
// empty-host parse, which is itself a high-risk indicator. The context is
// used only for stage-level debug logging.
func Analyze(ctx context.Context, rawURL string) domain.Report {
	parsed := Parse(rawURL)
	logger.Debug(ctx, "parsed URL",
		zap.String("scheme", parsed.Scheme),
		zap.String("host", parsed.Host),
		zap.Bool("ipLiteral", parsed.IsIPLiteral))

	signals := Extract(parsed)
	logger.Debug(ctx, "extracted signals", zap.Int("fired", len(signals)))

	score := Score(signals)
	verdict := ClassifyScore(score)
	logger.Debug(ctx, "classified URL",
		zap.Int("score", score),
		zap.String("verdict", string(verdict)))

	threats := make([]string, 0, len(signals))
	for _, s := range signals {
		threats = append(threats, s.Description)
	}

	return domain.Report{
		Score:           score,
		Verdict:         verdict,
		Threats:         threats,
		Recommendations: recommendationsFor(verdict),
		Explanation:     explain(signals),
	}
}

// recommendationsFor returns the fixed set of user-facing advice for a verdict.
func recommendationsFor(v domain.Verdict) []string {
	switch v {
	case domain.VerdictSafe:
		return []string{
			"no risk indicators stand out, but always double-check unfamiliar links before entering personal data",
		}
	case domain.VerdictSuspicious:
		return []string{
			"avoid entering credentials on this page",
			"verify the domain manually before proceeding",
		}
	default:
		return []string{
			"do not click this link",
			"report this URL to your security team",
		}
	}
}

// explain builds the deterministic one-sentence summary: the number of fired
// indicators and the most significant one. On equal weights the earlier
// detection wins, keeping the sentence stable across runs.
func explain(signals []Signal) string {
	if len(signals) == 0 {
		return "No risk indicators were detected for this URL."
	}

	top := signals[0]
	for _, s := range signals[1:] {
		if s.Weight > top.Weight {
			top = s
		}
	}

	return fmt.Sprintf("%d risk indicator(s) detected; most significant: %s.", len(signals), top.Description)
}
