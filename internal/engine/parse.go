package engine

import "strings"

// ParsedURL is the structural view of a raw URL used by the signal extractor.
// It is produced once per analysis and never mutated afterwards.
type ParsedURL struct {
	// Scheme is the lower-cased scheme, or empty when the input has no "://".
	Scheme string
	// Host is the lower-cased authority part (everything between the scheme
	// and the first '/', '?' or '#'). Empty for unparsable input.
	Host string
	// IsIPLiteral reports whether Host is a strict dotted-quad IPv4 literal.
	IsIPLiteral bool
	// Path is the part after the host up to the query or fragment.
	Path string
	// Query is the part after '?' up to the fragment, without the '?'.
	Query string
	// Raw is the trimmed input string the parse was made from.
	Raw string
}

// Parse splits a raw URL string into its parts. Unlike net/url.Parse it never
// fails: inputs the standard parser would reject still need to be classified,
// so anything that cannot be split simply degrades to an empty host, which
// the extractor treats as a risk indicator in its own right.
func Parse(raw string) ParsedURL {
	trimmed := strings.TrimSpace(raw)
	p := ParsedURL{Raw: trimmed}

	rest := trimmed
	if i := strings.Index(trimmed, "://"); i >= 0 {
		p.Scheme = strings.ToLower(trimmed[:i])
		rest = trimmed[i+len("://"):]
	}

	host := rest
	var tail string
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		host, tail = rest[:i], rest[i:]
	}
	p.Host = strings.ToLower(host)
	p.IsIPLiteral = isDottedQuad(p.Host)

	// split the tail into path and query, dropping any fragment
	if i := strings.Index(tail, "#"); i >= 0 {
		tail = tail[:i]
	}
	if i := strings.Index(tail, "?"); i >= 0 {
		p.Path, p.Query = tail[:i], tail[i+1:]
	} else {
		p.Path = tail
	}

	return p
}

// isDottedQuad reports whether host is exactly four dot-separated, all-digit
// octets in [0, 255]. Partial matches (trailing ports, alphanumeric labels,
// fewer octets) do not count.
func isDottedQuad(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		n := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}

	return true
}
