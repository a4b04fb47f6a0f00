package feature

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"scamgraph/intel"
)

// LiveExtractor builds a Feature Record from real lookups: DNS, TLS, WHOIS,
// hosting geolocation and a page-content probe. Every lookup degrades to an
// absent signal on failure; Extract never returns an error for a well-formed
// domain.
type LiveExtractor struct {
	// DNSServer is the resolver used for A/PTR queries, host:port.
	DNSServer string
	// Content is the page probe used to find tracking, financial and
	// contact markers. Nil disables content-based markers.
	Content *ContentProbe

	HTTPClient *http.Client
}

// NewLiveExtractor wires a live extractor against the given DNS server
// (host:port; defaults to Google public DNS).
func NewLiveExtractor(dnsServer string, content *ContentProbe) *LiveExtractor {
	if dnsServer == "" {
		dnsServer = "8.8.8.8:53"
	}
	return &LiveExtractor{
		DNSServer:  dnsServer,
		Content:    content,
		HTTPClient: &http.Client{Timeout: 6 * time.Second},
	}
}

// Extract runs the independent lookups in parallel and assembles the record.
func (e *LiveExtractor) Extract(ctx context.Context, target string) (*Record, error) {
	domain := NormalizeDomain(target)
	if domain == "" {
		return nil, fmt.Errorf("empty domain")
	}

	rec := &Record{
		URL:      "https://" + domain,
		Domain:   domain,
		Hostname: domain,
		Analysis: AnalyzeDomain(domain),
	}

	var markers PageMarkers
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec.DNS = e.resolveDNS(gctx, domain)
		return nil
	})
	g.Go(func() error {
		rec.TLS = probeTLS(domain)
		return nil
	})
	g.Go(func() error {
		if days, ok := whoisAgeDays(domain); ok {
			rec.Analysis.Age = ageFromDays(days)
		}
		return nil
	})
	g.Go(func() error {
		if e.Content != nil {
			markers = e.Content.Probe(gctx, domain)
		}
		return nil
	})
	_ = g.Wait()

	if rec.DNS.Success {
		rec.Hosting = e.lookupHosting(ctx, rec.DNS.IP)
	}
	rec.Trackers = markers.Trackers
	rec.Financial = markers.Financial
	rec.Contacts = markers.Contacts
	rec.RedirectChain = markers.RedirectChain
	rec.ExtractedAt = time.Now().UTC()
	return rec, nil
}

// resolveDNS queries an A record plus a PTR for the first address. Failure
// of any kind yields Success=false with no fabricated address.
func (e *LiveExtractor) resolveDNS(ctx context.Context, domain string) DNSResult {
	c := &dns.Client{Timeout: 3 * time.Second}
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	resp, _, err := c.ExchangeContext(ctx, m, e.DNSServer)
	if err != nil || resp == nil || resp.Rcode != dns.RcodeSuccess {
		return DNSResult{Success: false}
	}
	var ips []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	if len(ips) == 0 {
		return DNSResult{Success: false}
	}

	res := DNSResult{IP: ips[0], AllIPs: ips, Success: true}
	if rev, err := dns.ReverseAddr(ips[0]); err == nil {
		pm := new(dns.Msg)
		pm.SetQuestion(rev, dns.TypePTR)
		if pr, _, err := c.ExchangeContext(ctx, pm, e.DNSServer); err == nil && pr != nil {
			for _, rr := range pr.Answer {
				if ptr, ok := rr.(*dns.PTR); ok {
					res.Reverse = strings.TrimSuffix(ptr.Ptr, ".")
					break
				}
			}
		}
	}
	return res
}

// probeTLS dials :443 and summarizes the leaf certificate. The fingerprint
// is the truncated sha256 of the DER bytes.
func probeTLS(domain string) TLSSummary {
	d := &net.Dialer{Timeout: 3 * time.Second}
	conn, err := tls.DialWithDialer(d, "tcp", domain+":443", &tls.Config{
		ServerName:         domain,
		InsecureSkipVerify: true, // self-signed certs are a signal, not an error
	})
	if err != nil {
		return TLSSummary{}
	}
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return TLSSummary{}
	}
	cert := certs[0]
	sum := sha256.Sum256(cert.Raw)
	return TLSSummary{
		Fingerprint: hex.EncodeToString(sum[:])[:16],
		Issuer:      firstNonEmpty(cert.Issuer.Organization, cert.Issuer.CommonName),
		Subject:     firstNonEmpty(nil, cert.Subject.CommonName),
		SelfSigned:  cert.Issuer.CommonName == cert.Subject.CommonName && cert.Issuer.CommonName != "",
		Real:        true,
	}
}

func firstNonEmpty(list []string, fallback string) string {
	for _, s := range list {
		if s != "" {
			return s
		}
	}
	return fallback
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// whoisAgeDays looks up the WHOIS creation date. Subdomains fall back to
// their registered domain; any failure reports ok=false so the caller keeps
// the deterministic estimate.
func whoisAgeDays(domain string) (int, bool) {
	raw, err := whois.Whois(domain)
	if err != nil {
		return 0, false
	}
	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		if reg := registeredDomain(domain); reg != domain {
			return whoisAgeDays(reg)
		}
		return 0, false
	}
	created := strings.TrimSpace(p.Domain.CreatedDate)
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, created); err == nil {
			return int(time.Since(t).Hours() / 24), true
		}
	}
	return 0, false
}

// lookupHosting resolves provider/country/ASN for an address via ip-api.com.
// The hosting class is inferred from the provider name against the
// bad-reputation list; anything else is reported as generic hosting.
func (e *LiveExtractor) lookupHosting(ctx context.Context, ip string) Hosting {
	if ip == "" {
		return Hosting{}
	}
	url := fmt.Sprintf("http://ip-api.com/json/%s?fields=status,country,isp,as,asname", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Hosting{}
	}
	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		slog.Debug("hosting lookup failed", "ip", ip, "error", err)
		return Hosting{}
	}
	defer resp.Body.Close()

	var data struct {
		Status  string `json:"status"`
		Country string `json:"country"`
		ISP     string `json:"isp"`
		AS      string `json:"as"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data.Status != "success" {
		return Hosting{}
	}

	asn := ""
	if fields := strings.Fields(data.AS); len(fields) > 0 {
		asn = fields[0]
	}
	return Hosting{
		ASN:      asn,
		Provider: data.ISP,
		Country:  data.Country,
		Type:     classifyHosting(data.ISP),
	}
}

func classifyHosting(provider string) string {
	p := strings.ToLower(provider)
	for _, bad := range intel.KnownBadHostingProviders {
		if strings.Contains(p, bad) {
			return "Bulletproof"
		}
	}
	switch {
	case strings.Contains(p, "cloudflare"), strings.Contains(p, "akamai"), strings.Contains(p, "fastly"):
		return "CDN"
	case strings.Contains(p, "amazon"), strings.Contains(p, "google"), strings.Contains(p, "microsoft"):
		return "Cloud"
	default:
		return "VPS"
	}
}
