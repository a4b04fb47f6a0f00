package risk

// RuleWeights holds the per-rule score deltas. Hand-tuned against observed
// scam infrastructure; kept as plain data so they can be adjusted without
// touching rule logic.
type RuleWeights struct {
	LegitimateDomain int `json:"legitimate_domain"` // negative, dominates the clamp

	SuspiciousTLD int `json:"suspicious_tld"`

	GamblingPerMatch int `json:"gambling_per_match"`
	GamblingCap      int `json:"gambling_cap"`
	PhishingPerMatch int `json:"phishing_per_match"`
	PhishingCap      int `json:"phishing_cap"`
	ScamPerMatch     int `json:"scam_per_match"`
	ScamCap          int `json:"scam_cap"`
	PyramidPerMatch  int `json:"pyramid_per_match"`
	PyramidCap       int `json:"pyramid_cap"`

	BrandImpersonation int `json:"brand_impersonation"`

	ExcessiveDashes  int `json:"excessive_dashes"`
	ExcessiveNumbers int `json:"excessive_numbers"`
	LongDomain       int `json:"long_domain"`
	NewDomain        int `json:"new_domain"`

	SelfSignedCert      int `json:"self_signed_cert"`
	FreeCertSuspicious  int `json:"free_cert_on_suspicious"`
	SuspiciousHosting   int `json:"suspicious_hosting"`
	KnownBadASN         int `json:"known_bad_asn"`
	AffiliateParams     int `json:"has_affiliate_params"`
	MultipleTrackers    int `json:"multiple_trackers"`
	CryptoWallet        int `json:"crypto_wallet"`
	UnlicensedPayment   int `json:"unlicensed_payment"`
	ComplexRedirect     int `json:"complex_redirect"`
	TrackerRedirect     int `json:"tracker_redirect"`
	DNSResolutionFailed int `json:"dns_resolution_failed"`
}

// DefaultWeights returns the production weight set.
func DefaultWeights() RuleWeights {
	return RuleWeights{
		LegitimateDomain:    -80,
		SuspiciousTLD:       12,
		GamblingPerMatch:    10,
		GamblingCap:         30,
		PhishingPerMatch:    12,
		PhishingCap:         35,
		ScamPerMatch:        10,
		ScamCap:             30,
		PyramidPerMatch:     10,
		PyramidCap:          25,
		BrandImpersonation:  25,
		ExcessiveDashes:     10,
		ExcessiveNumbers:    8,
		LongDomain:          6,
		NewDomain:           15,
		SelfSignedCert:      12,
		FreeCertSuspicious:  5,
		SuspiciousHosting:   18,
		KnownBadASN:         15,
		AffiliateParams:     10,
		MultipleTrackers:    5,
		CryptoWallet:        15,
		UnlicensedPayment:   12,
		ComplexRedirect:     10,
		TrackerRedirect:     8,
		DNSResolutionFailed: 5,
	}
}

// Thresholds that shape the non-weight parts of scoring.
const (
	safeScoreCeiling = 5    // clamped scores at or below this are Safe
	dashAnomalyMin   = 3    // dashes in the label before the structure rule fires
	numberAnomalyMin = 3    // digits in the label before the structure rule fires
	longDomainMin    = 31   // characters before the length rule fires
	generalSignalCut = 0.3  // share of general score spread across detected categories
	maxConfidence    = 0.99
)
