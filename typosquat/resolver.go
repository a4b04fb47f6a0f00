package typosquat

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

// Resolver answers whether a candidate domain exists. A transient lookup
// failure (timeout, transport error, SERVFAIL) is indistinguishable from
// non-existence by contract: found=false, never an error.
type Resolver interface {
	Lookup(ctx context.Context, domain string) (addr string, found bool)
}

// DNSResolver verifies candidates with plain A queries against a single
// upstream resolver.
type DNSResolver struct {
	Server string // host:port
	client *dns.Client
}

// NewDNSResolver builds a resolver against the given server (defaults to
// Cloudflare public DNS) with a per-lookup timeout.
func NewDNSResolver(server string) *DNSResolver {
	if server == "" {
		server = "1.1.1.1:53"
	}
	return &DNSResolver{
		Server: server,
		client: &dns.Client{Timeout: 3 * time.Second},
	}
}

// Lookup reports existence of an A record. NOERROR with an empty answer
// section still counts as existing: the name is registered even if nothing
// is published under it.
func (r *DNSResolver) Lookup(ctx context.Context, domain string) (string, bool) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	resp, _, err := r.client.ExchangeContext(ctx, m, r.Server)
	if err != nil || resp == nil {
		return "", false
	}
	switch resp.Rcode {
	case dns.RcodeSuccess:
		for _, rr := range resp.Answer {
			if a, ok := rr.(*dns.A); ok {
				return a.A.String(), true
			}
		}
		return "no-A-record", true
	default:
		// NXDOMAIN and everything else: does not exist
		return "", false
	}
}
