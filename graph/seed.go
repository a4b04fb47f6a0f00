package graph

import "fmt"

// seedClusterCounter is where fresh cluster ids start, so the first live
// cluster becomes CLS-0043 and slots in after the seeded ones.
const seedClusterCounter = 42

type seedSite struct {
	domain   string
	category string
	risk     int
}

var seedSites = []seedSite{
	{"lucky-spin-777.bet", "Casino", 92},
	{"mega-jackpot-win.net", "Casino", 91},
	{"slot-empire-vip.casino", "Casino", 88},
	{"golden-slots-kz.com", "Casino", 85},
	{"spin-bonus-pro.bet", "Casino", 79},
	{"invest-gold-pro.xyz", "Pyramid", 87},
	{"secure-bank-verify.com", "Phishing", 95},
	{"crypto-double-fast.io", "Scam", 89},
	{"account-verify-now.org", "Phishing", 96},
	{"fast-money-guru.biz", "Scam", 84},
}

// seed pre-populates the store with a known-bad campaign: ten confirmed
// scam sites, the infrastructure they share and two cluster assignments.
// Queries against a fresh store return a realistic graph instead of an
// empty one.
func (s *Store) seed() {
	for i, site := range seedSites {
		id := seedWebsiteID(i)
		s.addNode(id, site.domain, NodeWebsite, site.risk, map[string]any{
			"category": site.category,
			"seeded":   true,
		})
		s.domainIndex[site.domain] = id
	}

	// Marker ids use the same type-prefixed value keys attachMarkers
	// derives, so live analyses hitting seeded infrastructure dedupe onto
	// these nodes instead of creating parallel ones.
	s.addNode("ip-185-234-72-18", "185.234.72.18", NodeAddress, 70, nil)
	s.addNode("ip-91-215-85-102", "91.215.85.102", NodeAddress, 65, nil)
	s.addNode("ga-UA-38291746", "UA-38291746", NodeTracker, 60, nil)
	s.addNode("fb-948271635", "FB:948271635", NodeTracker, 55, nil)
	s.addNode("cert-a3f8c91d", "TLS:a3f8c91d", NodeCertificate, 50, nil)
	s.addNode("cert-b7e284fa", "TLS:b7e284fa", NodeCertificate, 45, nil)
	s.addNode("wallet-bc1qxy2kgdyg", "bc1qxy2kgdyg...", NodeWallet, 40, nil)
	s.addNode("tg-@lucky_support_bot", "@lucky_support_bot", NodeContact, 35, nil)

	s.addEdge("seed-w1", "ip-185-234-72-18", "hosted on")
	s.addEdge("seed-w2", "ip-185-234-72-18", "hosted on")
	s.addEdge("seed-w4", "ip-185-234-72-18", "hosted on")
	s.addEdge("seed-w3", "ip-91-215-85-102", "hosted on")
	s.addEdge("seed-w5", "ip-91-215-85-102", "hosted on")
	s.addEdge("seed-w1", "ga-UA-38291746", "uses tracker")
	s.addEdge("seed-w2", "ga-UA-38291746", "uses tracker")
	s.addEdge("seed-w4", "ga-UA-38291746", "uses tracker")
	s.addEdge("seed-w1", "fb-948271635", "uses pixel")
	s.addEdge("seed-w3", "fb-948271635", "uses pixel")
	s.addEdge("seed-w1", "cert-a3f8c91d", "shares cert")
	s.addEdge("seed-w2", "cert-a3f8c91d", "shares cert")
	s.addEdge("seed-w3", "cert-b7e284fa", "shares cert")
	s.addEdge("seed-w5", "cert-b7e284fa", "shares cert")
	s.addEdge("seed-w1", "wallet-bc1qxy2kgdyg", "uses wallet")
	s.addEdge("seed-w4", "wallet-bc1qxy2kgdyg", "uses wallet")
	s.addEdge("seed-w1", "tg-@lucky_support_bot", "same operator")
	s.addEdge("seed-w2", "tg-@lucky_support_bot", "same operator")
	s.addEdge("seed-w5", "tg-@lucky_support_bot", "same operator")

	for _, id := range []string{"seed-w1", "seed-w2", "seed-w3", "seed-w4", "seed-w5"} {
		s.clusters[id] = "CLS-0042"
	}
	// The second campaign was clustered before its marker nodes were
	// migrated in; the assignment survives without local edges.
	for _, id := range []string{"seed-w6", "seed-w7", "seed-w10"} {
		s.clusters[id] = "CLS-0038"
	}
}

func seedWebsiteID(i int) string {
	return fmt.Sprintf("seed-w%d", i+1)
}
