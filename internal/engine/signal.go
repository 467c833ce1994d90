package engine

import "strings"

// SignalID identifies a heuristic risk indicator.
type SignalID string

const (
	// SignalLongURL fires when the raw URL is longer than longURLThreshold.
	SignalLongURL SignalID = "LONG_URL"
	// SignalAtSymbol fires when the raw URL contains an '@'.
	SignalAtSymbol SignalID = "AT_SYMBOL"
	// SignalIPHost fires when the host is a dotted-quad IP literal.
	SignalIPHost SignalID = "IP_HOST"
	// SignalExcessHyphens fires when the host contains "--" or at least three hyphens.
	SignalExcessHyphens SignalID = "EXCESS_HYPHENS"
	// SignalSensitiveKeyword fires when host or path contains a phishing-bait keyword.
	SignalSensitiveKeyword SignalID = "SENSITIVE_KEYWORD"
	// SignalInsecureScheme fires when the scheme is "http" or missing.
	SignalInsecureScheme SignalID = "INSECURE_SCHEME"
	// SignalEmptyHost fires when no host could be parsed at all.
	SignalEmptyHost SignalID = "EMPTY_HOST"
)

// Signal is a single fired risk indicator. Description is used verbatim as a
// threat string in the final report.
type Signal struct {
	ID          SignalID
	Weight      int
	Description string
}

const (
	longURLThreshold = 75
	hyphenThreshold  = 3
)

// sensitiveKeywords are matched case-insensitively as substrings of the host
// and path. The list is intentionally small and fixed; extending it does not
// touch any control flow.
var sensitiveKeywords = []string{"login", "verify", "bank", "secure", "account", "update"}

// weights maps every indicator to its fixed score penalty.
var weights = map[SignalID]int{
	SignalLongURL:          10,
	SignalAtSymbol:         15,
	SignalIPHost:           25,
	SignalExcessHyphens:    10,
	SignalSensitiveKeyword: 20,
	SignalInsecureScheme:   10,
	SignalEmptyHost:        30,
}

// descriptions holds the fixed threat text per indicator.
var descriptions = map[SignalID]string{
	SignalLongURL:          "URL is unusually long",
	SignalAtSymbol:         "URL contains an '@' symbol that can mask the real destination",
	SignalIPHost:           "host is a raw IP address instead of a domain name",
	SignalExcessHyphens:    "hostname contains an excessive number of hyphens",
	SignalSensitiveKeyword: "URL contains a sensitive keyword commonly used in phishing",
	SignalInsecureScheme:   "connection does not use HTTPS",
	SignalEmptyHost:        "URL has no identifiable host",
}

// newSignal builds a Signal from the static tables.
func newSignal(id SignalID) Signal {
	return Signal{ID: id, Weight: weights[id], Description: descriptions[id]}
}

// Extract evaluates every indicator against the parsed URL and returns the
// fired ones in detection order. All checks are independent: none short-
// circuits another, and each produces at most one Signal. The function is
// pure and deterministic, so identical input always yields the identical
// sequence.
func Extract(u ParsedURL) []Signal {
	var fired []Signal

	if len(u.Raw) > longURLThreshold {
		fired = append(fired, newSignal(SignalLongURL))
	}

	if strings.Contains(u.Raw, "@") {
		fired = append(fired, newSignal(SignalAtSymbol))
	}

	if u.IsIPLiteral {
		fired = append(fired, newSignal(SignalIPHost))
	}

	if strings.Contains(u.Host, "--") || strings.Count(u.Host, "-") >= hyphenThreshold {
		fired = append(fired, newSignal(SignalExcessHyphens))
	}

	if containsSensitiveKeyword(u.Host) || containsSensitiveKeyword(u.Path) {
		fired = append(fired, newSignal(SignalSensitiveKeyword))
	}

	if u.Scheme == "" || u.Scheme == "http" {
		fired = append(fired, newSignal(SignalInsecureScheme))
	}

	if u.Host == "" {
		fired = append(fired, newSignal(SignalEmptyHost))
	}

	return fired
}

func containsSensitiveKeyword(s string) bool {
	lowered := strings.ToLower(s)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}
