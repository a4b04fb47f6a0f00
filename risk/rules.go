package risk

import (
	"fmt"
	"strings"

	"scamgraph/feature"
	"scamgraph/intel"
)

// buildRules assembles the ordered rule list for a weight set. Order matters
// only for explanation stability; every rule is evaluated exactly once.
func buildRules(w RuleWeights) []rule {
	return []rule{
		{
			name: "legitimate_domain",
			evaluate: func(f *feature.Record) *firing {
				if !f.Analysis.Legitimate {
					return nil
				}
				return &firing{
					score:       w.LegitimateDomain,
					explanation: fmt.Sprintf("%s is a verified legitimate domain", f.Domain),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "suspicious_tld",
			evaluate: func(f *feature.Record) *firing {
				if !f.Analysis.SuspiciousTLD {
					return nil
				}
				return &firing{
					score:       w.SuspiciousTLD,
					explanation: fmt.Sprintf("TLD %q is commonly associated with malicious sites", "."+f.Analysis.TLD),
					typ:         "infrastructure",
				}
			},
		},
		keywordRule("gambling_keywords", intel.GamblingKeywords, w.GamblingPerMatch, w.GamblingCap,
			CategoryCasino, "Domain contains gambling keywords: %s"),
		keywordRule("phishing_keywords", intel.PhishingKeywords, w.PhishingPerMatch, w.PhishingCap,
			CategoryPhishing, "Domain contains phishing indicators: %s"),
		keywordRule("scam_keywords", intel.ScamKeywords, w.ScamPerMatch, w.ScamCap,
			CategoryScam, "Domain contains scam-related terms: %s"),
		keywordRule("pyramid_keywords", intel.PyramidKeywords, w.PyramidPerMatch, w.PyramidCap,
			CategoryPyramid, "Domain contains investment/MLM patterns: %s"),
		{
			name: "brand_impersonation",
			evaluate: func(f *feature.Record) *firing {
				domain := strings.ToLower(f.Domain)
				for _, brand := range intel.BrandNames {
					if strings.Contains(domain, brand) && !intel.LegitimateDomains[f.Domain] {
						return &firing{
							score:       w.BrandImpersonation,
							explanation: fmt.Sprintf("Domain impersonates brand %q, likely phishing attempt", brand),
							typ:         "content",
							category:    CategoryPhishing,
						}
					}
				}
				return nil
			},
		},
		{
			name: "excessive_dashes",
			evaluate: func(f *feature.Record) *firing {
				if f.Analysis.DashCount < dashAnomalyMin {
					return nil
				}
				return &firing{
					score:       w.ExcessiveDashes,
					explanation: fmt.Sprintf("Domain uses %d dashes, common in generated malicious domains", f.Analysis.DashCount),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "excessive_numbers",
			evaluate: func(f *feature.Record) *firing {
				if f.Analysis.NumberCount < numberAnomalyMin {
					return nil
				}
				return &firing{
					score:       w.ExcessiveNumbers,
					explanation: fmt.Sprintf("Domain contains %d numeric characters, suspicious pattern", f.Analysis.NumberCount),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "long_domain",
			evaluate: func(f *feature.Record) *firing {
				if f.Analysis.Length < longDomainMin {
					return nil
				}
				return &firing{
					score:       w.LongDomain,
					explanation: fmt.Sprintf("Unusually long domain name (%d chars)", f.Analysis.Length),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "new_domain",
			evaluate: func(f *feature.Record) *firing {
				if !f.Analysis.Age.Risky {
					return nil
				}
				return &firing{
					score:       w.NewDomain,
					explanation: fmt.Sprintf("Domain is very new (~%d days old), high risk indicator", f.Analysis.Age.Days),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "self_signed_cert",
			evaluate: func(f *feature.Record) *firing {
				if !f.TLS.SelfSigned {
					return nil
				}
				return &firing{
					score:       w.SelfSignedCert,
					explanation: "TLS certificate is self-signed, no trusted CA verification",
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "free_cert_on_suspicious",
			evaluate: func(f *feature.Record) *firing {
				if f.TLS.Issuer != "Let's Encrypt" || !f.Analysis.SuspiciousTLD {
					return nil
				}
				return &firing{
					score:       w.FreeCertSuspicious,
					explanation: "Free Let's Encrypt certificate on suspicious TLD, minimal investment in legitimacy",
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "suspicious_hosting",
			evaluate: func(f *feature.Record) *firing {
				provider := strings.ToLower(f.Hosting.Provider)
				bad := false
				for _, p := range intel.KnownBadHostingProviders {
					if strings.Contains(provider, p) {
						bad = true
						break
					}
				}
				if !bad && f.Hosting.Type != "Bulletproof" && f.Hosting.Type != "Offshore" {
					return nil
				}
				return &firing{
					score:       w.SuspiciousHosting,
					explanation: fmt.Sprintf("Hosted on %s (%s), %s hosting provider", f.Hosting.Provider, f.Hosting.Country, f.Hosting.Type),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "known_bad_asn",
			evaluate: func(f *feature.Record) *firing {
				if !intel.KnownBadASNs[f.Hosting.ASN] {
					return nil
				}
				return &firing{
					score:       w.KnownBadASN,
					explanation: fmt.Sprintf("Hosting ASN %s is associated with malicious activity", f.Hosting.ASN),
					typ:         "infrastructure",
				}
			},
		},
		{
			name: "has_affiliate_params",
			evaluate: func(f *feature.Record) *firing {
				if f.Trackers.Affiliate == nil {
					return nil
				}
				return &firing{
					score:       w.AffiliateParams,
					explanation: fmt.Sprintf("Affiliate tracking parameters detected (aff_id=%s)", f.Trackers.Affiliate.AffID),
					typ:         "tracking",
				}
			},
		},
		{
			name: "multiple_trackers",
			evaluate: func(f *feature.Record) *firing {
				count := 0
				for _, id := range []string{f.Trackers.GAID, f.Trackers.FBPixel, f.Trackers.TTPixel} {
					if id != "" {
						count++
					}
				}
				if count < 2 {
					return nil
				}
				return &firing{
					score:       w.MultipleTrackers,
					explanation: fmt.Sprintf("%d tracking pixels detected, aggressive marketing instrumentation", count),
					typ:         "tracking",
				}
			},
		},
		{
			name: "crypto_wallet",
			evaluate: func(f *feature.Record) *firing {
				if f.Financial.CryptoWallet == "" {
					return nil
				}
				return &firing{
					score:       w.CryptoWallet,
					explanation: fmt.Sprintf("Cryptocurrency wallet address detected (%s: %s...)", f.Financial.WalletType, truncate(f.Financial.CryptoWallet, 12)),
					typ:         "financial",
				}
			},
		},
		{
			name: "unlicensed_payment",
			evaluate: func(f *feature.Record) *firing {
				if f.Financial.PaymentGateway == "" || f.Financial.GatewayLicensed {
					return nil
				}
				return &firing{
					score:       w.UnlicensedPayment,
					explanation: fmt.Sprintf("Unlicensed payment gateway %q detected", f.Financial.PaymentGateway),
					typ:         "financial",
				}
			},
		},
		{
			name: "complex_redirect",
			evaluate: func(f *feature.Record) *firing {
				if len(f.RedirectChain) < 3 {
					return nil
				}
				return &firing{
					score:       w.ComplexRedirect,
					explanation: fmt.Sprintf("Complex redirect chain with %d steps, conversion funnel detected", len(f.RedirectChain)),
					typ:         "funnel",
				}
			},
		},
		{
			name: "tracker_redirect",
			evaluate: func(f *feature.Record) *firing {
				for _, step := range f.RedirectChain {
					if step.Type == feature.RedirectTypeTracker {
						return &firing{
							score:       w.TrackerRedirect,
							explanation: "Redirect chain includes external tracker hop, affiliate funnel pattern",
							typ:         "funnel",
						}
					}
				}
				return nil
			},
		},
		{
			name: "dns_resolution_failed",
			evaluate: func(f *feature.Record) *firing {
				if f.DNS.Success {
					return nil
				}
				return &firing{
					score:       w.DNSResolutionFailed,
					explanation: "Domain DNS resolution failed, domain may be recently registered or parked",
					typ:         "infrastructure",
				}
			},
		},
	}
}

// keywordRule builds a vocabulary-membership rule. Whitelisted domains never
// fire keyword rules; the score is capped regardless of match count.
func keywordRule(name string, vocab []string, perMatch, capWeight int, category Category, format string) rule {
	return rule{
		name: name,
		evaluate: func(f *feature.Record) *firing {
			if f.Analysis.Legitimate {
				return nil
			}
			domain := strings.ToLower(f.Domain)
			var matches []string
			for _, kw := range vocab {
				if strings.Contains(domain, kw) {
					matches = append(matches, kw)
				}
			}
			if len(matches) == 0 {
				return nil
			}
			score := len(matches) * perMatch
			if score > capWeight {
				score = capWeight
			}
			return &firing{
				score:       score,
				explanation: fmt.Sprintf(format, strings.Join(matches, ", ")),
				typ:         "content",
				category:    category,
			}
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
