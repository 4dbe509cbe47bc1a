// Package suffix extracts the registerable apex domain from an input that
// may be a bare hostname, a URL, or an IP literal, using ICANN-only
// public-suffix rules.
package suffix

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Extractor reduces an arbitrary input string to its registerable apex
// domain. It returns ("", false) when the input cannot be reduced to a
// registerable name — e.g. it is empty, an IP literal, or itself a public
// suffix. A TLD absent from the public-suffix list counts as a one-label
// suffix, so "foo.zzz" reduces to "foo.zzz".
type Extractor interface {
	Apex(input string) (apex string, ok bool)
	// Tld extracts the ICANN public suffix of an already-registerable apex
	// (e.g. "co.uk" for "example.co.uk"), used by WhoisHeuristic's TLD-to-
	// WHOIS-server lookup.
	Tld(apex string) (tld string, ok bool)
}

type defaultExtractor struct{}

// New returns the default Extractor, backed by golang.org/x/net/publicsuffix
// restricted to ICANN suffixes (private suffixes such as "github.io" are
// deliberately not registerable apexes under this policy).
func New() Extractor {
	return defaultExtractor{}
}

func (defaultExtractor) Apex(input string) (string, bool) {
	host := extractHostname(input)
	if host == "" {
		return "", false
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", false
	}

	// detectIp: true — IP literals have no registerable apex.
	if net.ParseIP(host) != nil {
		return "", false
	}
	if isBracketedIPv6(host) {
		return "", false
	}

	if strings.HasPrefix(host, ".") || strings.Contains(host, "..") {
		return "", false
	}
	// PublicSuffix also honours private PSL entries (e.g. "github.io"); walk
	// up to the nearest ICANN suffix so only ICANN rules decide the apex.
	suffix, icann := publicsuffix.PublicSuffix(host)
	for !icann && strings.Contains(suffix, ".") {
		suffix, icann = publicsuffix.PublicSuffix(suffix[strings.IndexByte(suffix, '.')+1:])
	}
	rest := strings.TrimSuffix(host, "."+suffix)
	if rest == host {
		return "", false
	}
	return rest[strings.LastIndexByte(rest, '.')+1:] + "." + suffix, true
}

func (defaultExtractor) Tld(apex string) (string, bool) {
	apex = strings.TrimSuffix(strings.ToLower(apex), ".")
	if apex == "" {
		return "", false
	}
	suffix, icann := publicsuffix.PublicSuffix(apex)
	if !icann || suffix == "" {
		return "", false
	}
	return suffix, true
}

// extractHostname implements mixedInputs: true — input may be a bare
// hostname or a scheme://host[:port][/path] URL. Userinfo and ports are
// stripped; a bare "host:port" (no scheme) is also unwrapped.
func extractHostname(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err == nil && u.Host != "" {
			s = u.Host
		}
	}

	if at := strings.LastIndexByte(s, '@'); at != -1 {
		s = s[at+1:]
	}

	if isBracketedIPv6(s) {
		return s
	}

	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}

	return s
}

func isBracketedIPv6(s string) bool {
	return len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']' && net.ParseIP(s[1:len(s)-1]) != nil
}
