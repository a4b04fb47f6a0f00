package feature

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain lowercases a raw target and strips scheme, www prefix,
// path and trailing slash, leaving a bare domain.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimSuffix(d, ".")
	return d
}

// SplitDomain separates the name part from the TLD. A bare label defaults
// to .com so variant generation always has a TLD to work with.
func SplitDomain(domain string) (name, tld string) {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain, "com"
	}
	return strings.Join(parts[:len(parts)-1], "."), parts[len(parts)-1]
}

// registeredDomain returns the eTLD+1 for a host, falling back to the host
// itself when the public suffix list cannot decide (IPs, single labels).
func registeredDomain(host string) string {
	reg, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return reg
}

// ValidDomain reports whether a string looks like a resolvable DNS name:
// 3-63 characters, alphanumeric plus hyphen/dot, no leading or trailing
// hyphen or dot.
func ValidDomain(s string) bool {
	if len(s) < 3 || len(s) > 63 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '.':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
