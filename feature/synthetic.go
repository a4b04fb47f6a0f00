package feature

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SyntheticExtractor fabricates a complete Feature Record from deterministic
// hashes of the domain string. It exists for demos and offline operation:
// same domain in, same record out, no network at all. It is selected by
// configuration and never mixed with live data inside one record.
type SyntheticExtractor struct{}

// Extract builds the fabricated record. The error is always nil; it is part
// of the Extractor contract.
func (SyntheticExtractor) Extract(_ context.Context, target string) (*Record, error) {
	domain := NormalizeDomain(target)
	if domain == "" {
		return nil, fmt.Errorf("empty domain")
	}

	analysis := AnalyzeDomain(domain)
	dns := syntheticDNS(domain)

	return &Record{
		URL:           "https://" + domain,
		Domain:        domain,
		Hostname:      domain,
		DNS:           dns,
		TLS:           syntheticTLS(domain),
		Hosting:       syntheticHosting(dns.IP, domain),
		Analysis:      analysis,
		Trackers:      syntheticTrackers(domain),
		Financial:     syntheticFinancial(domain),
		Contacts:      syntheticContacts(domain),
		RedirectChain: syntheticRedirectChain(domain),
		ExtractedAt:   time.Now().UTC(),
	}, nil
}

// deterministicHash returns the first n hex chars of sha256(input).
func deterministicHash(input string, n int) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:n]
}

// deterministicInt maps input onto [min,max] uniformly from sha256(input).
func deterministicInt(input string, min, max int) int {
	sum := sha256.Sum256([]byte(input))
	n := binary.BigEndian.Uint32(sum[:4])
	return min + int(n%uint32(max-min+1))
}

func syntheticDNS(domain string) DNSResult {
	if deterministicInt(domain+":dns", 0, 10) > 8 {
		return DNSResult{Success: false}
	}
	h := deterministicHash(domain, 16)
	ip := fmt.Sprintf("%d.%d.%d.%d",
		hexByte(h[0:2]), hexByte(h[2:4]), hexByte(h[4:6]), hexByte(h[6:8]))
	return DNSResult{IP: ip, AllIPs: []string{ip}, Success: true}
}

func hexByte(s string) int {
	b, _ := hex.DecodeString(s)
	if len(b) == 0 {
		return 0
	}
	return int(b[0])
}

func syntheticTLS(domain string) TLSSummary {
	issuer := "Sectigo Limited"
	if deterministicInt(domain+":issuer", 0, 3) < 2 {
		issuer = "Let's Encrypt"
	}
	return TLSSummary{
		Fingerprint: deterministicHash(domain+":tls", 16),
		Issuer:      issuer,
		Subject:     domain,
		SelfSigned:  deterministicInt(domain+":selfSigned", 0, 10) > 8,
		Real:        false,
	}
}

// syntheticProviders is the fixed pool the fabricated hosting info draws
// from; the last two entries are the bad-reputation ones.
var syntheticProviders = []Hosting{
	{Provider: "Cloudflare", Country: "US", Type: "CDN"},
	{Provider: "Amazon AWS", Country: "US", Type: "Cloud"},
	{Provider: "Google Cloud", Country: "US", Type: "Cloud"},
	{Provider: "DigitalOcean", Country: "NL", Type: "VPS"},
	{Provider: "Hetzner", Country: "DE", Type: "VPS"},
	{Provider: "OVH", Country: "FR", Type: "VPS"},
	{Provider: "BlueVPS", Country: "NL", Type: "VPS"},
	{Provider: "Hostkey", Country: "NL", Type: "Bulletproof"},
	{Provider: "AlexHost", Country: "MD", Type: "Offshore"},
}

func syntheticHosting(ip, domain string) Hosting {
	asn := fmt.Sprintf("AS%d", deterministicInt(ip, 10000, 99999))
	var h Hosting
	if AnalyzeDomain(domain).Legitimate {
		h = syntheticProviders[deterministicInt(domain, 0, 2)]
	} else {
		h = syntheticProviders[deterministicInt(ip+":provider", 0, len(syntheticProviders)-1)]
	}
	h.ASN = asn
	return h
}

func syntheticTrackers(domain string) Trackers {
	h := deterministicHash(domain+":trackers", 32)
	t := Trackers{}
	if deterministicInt(domain+":ga", 0, 10) > 3 {
		t.GAID = fmt.Sprintf("UA-%d-1", hexUint(h[0:8])%99999999)
	}
	if deterministicInt(domain+":fb", 0, 10) > 5 {
		t.FBPixel = fmt.Sprintf("%d", hexUint(h[8:16])%999999999999)
	}
	if deterministicInt(domain+":tt", 0, 10) > 7 {
		t.TTPixel = strings.ToUpper(h[16:24])
	}
	if deterministicInt(domain+":aff", 0, 10) > 4 {
		t.Affiliate = &AffiliateParams{
			AffID: fmt.Sprintf("%d", deterministicInt(domain+":affid", 1000, 9999)),
			SubID: fmt.Sprintf("%s_%d", strings.Split(domain, ".")[0], deterministicInt(domain+":subid", 1, 99)),
		}
	}
	return t
}

func hexUint(s string) uint64 {
	var n uint64
	for i := 0; i < len(s); i++ {
		n <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			n |= uint64(c - '0')
		case c >= 'a' && c <= 'f':
			n |= uint64(c-'a') + 10
		}
	}
	return n
}

var syntheticGateways = []string{"PayKassma", "Piastrix", "FreekKassa", "Capitalist", "Payeer"}

func syntheticFinancial(domain string) Financial {
	f := Financial{}
	if deterministicInt(domain+":crypto", 0, 10) > 5 {
		f.CryptoWallet = "bc1q" + deterministicHash(domain+":wallet", 20)
		f.WalletType = "BTC"
	}
	if deterministicInt(domain+":paygate", 0, 10) > 4 {
		f.PaymentGateway = syntheticGateways[deterministicInt(domain+":gateway", 0, len(syntheticGateways)-1)]
		f.GatewayLicensed = deterministicInt(domain+":licensed", 0, 10) > 7
	}
	return f
}

func syntheticContacts(domain string) Contacts {
	h := deterministicHash(domain+":contact", 16)
	c := Contacts{}
	if deterministicInt(domain+":tg", 0, 10) > 4 {
		c.Telegram = "@" + strings.Split(domain, ".")[0] + "_support"
	}
	if deterministicInt(domain+":wa", 0, 10) > 6 {
		c.WhatsApp = fmt.Sprintf("+7 (7%s) %s-%s-%s", h[0:2], h[2:5], h[5:7], h[7:9])
	}
	if deterministicInt(domain+":email", 0, 10) > 3 {
		c.Email = "support@" + domain
	}
	return c
}

func syntheticRedirectChain(domain string) []RedirectStep {
	chain := []RedirectStep{{Step: 1, URL: domain, Type: "Landing Page", Status: 200}}
	if deterministicInt(domain+":redir-trk", 0, 10) > 4 {
		trk := fmt.Sprintf("trk.%s.click", deterministicHash(domain+":trkdomain", 6))
		chain = append(chain, RedirectStep{
			Step:   len(chain) + 1,
			URL:    fmt.Sprintf("%s/r/%d", trk, deterministicInt(domain+":trkid", 1000, 9999)),
			Type:   RedirectTypeTracker,
			Status: 302,
		})
	}
	if deterministicInt(domain+":redir-pre", 0, 10) > 5 {
		chain = append(chain, RedirectStep{Step: len(chain) + 1, URL: "promo." + domain + "/bonus", Type: "Pre-Landing", Status: 200})
	}
	chain = append(chain, RedirectStep{Step: len(chain) + 1, URL: domain + "/register", Type: "Conversion Page", Status: 200})
	return chain
}
