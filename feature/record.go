// Package feature defines the Feature Record — the structured snapshot of a
// domain's observable properties that feeds risk scoring and the graph store —
// and the extractors that produce it. Every sub-section of the record is
// optional: a zero value means the signal was not observed, and consumers
// must treat it as absent rather than as an error.
package feature

import "time"

// Record is one immutable feature snapshot per analyzed domain.
type Record struct {
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Hostname string `json:"hostname"`

	DNS      DNSResult      `json:"dns"`
	TLS      TLSSummary     `json:"tls"`
	Hosting  Hosting        `json:"hosting"`
	Analysis DomainAnalysis `json:"domain_analysis"`

	Trackers      Trackers       `json:"trackers"`
	Financial     Financial      `json:"financial"`
	Contacts      Contacts       `json:"contacts"`
	RedirectChain []RedirectStep `json:"redirect_chain"`

	ExtractedAt time.Time `json:"extracted_at"`
}

// DNSResult is the outcome of A-record resolution. Success=false with an
// empty IP means the domain did not resolve.
type DNSResult struct {
	IP      string   `json:"ip,omitempty"`
	AllIPs  []string `json:"all_ips,omitempty"`
	Reverse string   `json:"reverse,omitempty"`
	Success bool     `json:"success"`
}

// TLSSummary describes the presented leaf certificate. An empty fingerprint
// means no certificate was observed.
type TLSSummary struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	Subject     string `json:"subject,omitempty"`
	SelfSigned  bool   `json:"self_signed"`
	Real        bool   `json:"real"` // false when fabricated by the synthetic extractor
}

// Hosting describes where the resolved address lives.
type Hosting struct {
	ASN      string `json:"asn,omitempty"`
	Provider string `json:"provider,omitempty"`
	Country  string `json:"country,omitempty"`
	Type     string `json:"type,omitempty"` // CDN, Cloud, VPS, Bulletproof, Offshore
}

// DomainAnalysis holds structural statistics of the domain name itself.
type DomainAnalysis struct {
	TLD           string    `json:"tld"`
	SLD           string    `json:"sld"`
	Subdomain     string    `json:"subdomain,omitempty"`
	SuspiciousTLD bool      `json:"is_suspicious_tld"`
	Legitimate    bool      `json:"is_legitimate"`
	HasNumbers    bool      `json:"has_numbers"`
	HasDashes     bool      `json:"has_dashes"`
	DashCount     int       `json:"dash_count"`
	NumberCount   int       `json:"number_count"`
	Length        int       `json:"length"`
	IsSubdomain   bool      `json:"is_subdomain"`
	Entropy       float64   `json:"entropy"`
	Age           DomainAge `json:"domain_age"`
}

// DomainAge is an estimate of registration age with a coarse risk label.
type DomainAge struct {
	Days  int    `json:"days"`
	Label string `json:"label"` // Very New, New, Moderate, Established
	Risky bool   `json:"risky"`
}

// Trackers are marketing/analytics instrumentation markers found on the site.
type Trackers struct {
	GAID      string           `json:"ga_id,omitempty"`
	FBPixel   string           `json:"fb_pixel,omitempty"`
	TTPixel   string           `json:"tt_pixel,omitempty"`
	Affiliate *AffiliateParams `json:"affiliate_params,omitempty"`
}

// AffiliateParams are affiliate-network tracking parameters.
type AffiliateParams struct {
	AffID string `json:"aff_id"`
	SubID string `json:"subid,omitempty"`
}

// Financial holds payment-related markers.
type Financial struct {
	CryptoWallet    string `json:"crypto_wallet,omitempty"`
	WalletType      string `json:"wallet_type,omitempty"`
	PaymentGateway  string `json:"payment_gateway,omitempty"`
	GatewayLicensed bool   `json:"gateway_licensed"`
}

// Contacts holds operator contact markers.
type Contacts struct {
	Telegram string `json:"telegram,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
}

// RedirectStep is one hop in the observed redirect chain.
type RedirectStep struct {
	Step   int    `json:"step"`
	URL    string `json:"url"`
	Type   string `json:"type"` // Landing Page, Tracker Redirect, Pre-Landing, Conversion Page
	Status int    `json:"status"`
}

// RedirectTypeTracker marks a redirect hop through an external tracker.
const RedirectTypeTracker = "Tracker Redirect"
