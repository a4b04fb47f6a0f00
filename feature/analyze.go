package feature

import (
	"strings"

	"scamgraph/intel"
)

// AnalyzeDomain computes the structural statistics of a normalized domain.
// It is shared by the live and synthetic extractors; the age estimate is
// deterministic and replaced by a WHOIS-derived value when one is available.
func AnalyzeDomain(domain string) DomainAnalysis {
	parts := strings.Split(domain, ".")
	tld := parts[len(parts)-1]
	sld := ""
	if len(parts) >= 2 {
		sld = parts[len(parts)-2]
	}
	subdomain := ""
	if len(parts) > 2 {
		subdomain = strings.Join(parts[:len(parts)-2], ".")
	}

	flat := strings.ReplaceAll(domain, ".", "")
	distinct := map[rune]bool{}
	for _, r := range flat {
		distinct[r] = true
	}
	entropy := 0.0
	if len(flat) > 0 {
		entropy = float64(len(distinct)) / float64(len([]rune(flat)))
	}

	dashCount := strings.Count(sld, "-")
	numberCount := 0
	for _, r := range sld {
		if r >= '0' && r <= '9' {
			numberCount++
		}
	}

	return DomainAnalysis{
		TLD:           tld,
		SLD:           sld,
		Subdomain:     subdomain,
		SuspiciousTLD: intel.SuspiciousTLDs[tld],
		Legitimate:    intel.LegitimateDomains[domain],
		HasNumbers:    numberCount > 0,
		HasDashes:     dashCount > 0,
		DashCount:     dashCount,
		NumberCount:   numberCount,
		Length:        len(domain),
		IsSubdomain:   len(parts) > 2,
		Entropy:       entropy,
		Age:           EstimateAge(domain),
	}
}

// EstimateAge derives a deterministic registration-age estimate from the
// domain string. Whitelisted domains always read as long established;
// anything under 90 days is flagged risky.
func EstimateAge(domain string) DomainAge {
	if intel.LegitimateDomains[domain] {
		return DomainAge{Days: deterministicInt(domain, 3000, 8000), Label: "Established", Risky: false}
	}
	days := deterministicInt(domain+":age", 1, 2000)
	return ageFromDays(days)
}

// ageFromDays maps a concrete day count onto the shared label/risk scheme.
func ageFromDays(days int) DomainAge {
	label := "Established"
	switch {
	case days < 30:
		label = "Very New"
	case days < 180:
		label = "New"
	case days < 365:
		label = "Moderate"
	}
	return DomainAge{Days: days, Label: label, Risky: days < 90}
}
