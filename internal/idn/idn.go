// Package idn normalizes domain names to their ASCII-compatible A-label
// form.
package idn

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Normalizer converts a raw domain name into its canonical A-label form:
// lowercased, IDNA-encoded when it contains non-ASCII labels, with any
// trailing root dot stripped.
type Normalizer interface {
	ToALabel(raw string) (string, error)
}

// defaultNormalizer is the built-in Normalizer backed by golang.org/x/net/idna.
// ASCII-only input skips IDNA encoding entirely (same fast path as
// AmrkaAyt's domain normalizer) — idna.Lookup.ToASCII is conservative about
// label syntax and would otherwise reject some bare hostnames that never
// needed IDNA in the first place.
type defaultNormalizer struct{}

// New returns the default Normalizer.
func New() Normalizer {
	return defaultNormalizer{}
}

func (defaultNormalizer) ToALabel(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", fmt.Errorf("idn: empty domain")
	}

	if isASCII(s) {
		return strings.ToLower(s), nil
	}

	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("idn: %w", err)
	}
	return strings.ToLower(ascii), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
