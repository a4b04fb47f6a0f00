package feature

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.COM/path?x=1": "example.com",
		"http://casino-win.xyz/":           "casino-win.xyz",
		"sub.shop.example.com":             "sub.shop.example.com",
		"  example.com.  ":                 "example.com",
		"example.com#frag":                 "example.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDomain(in), "input %q", in)
	}
}

func TestSplitDomain(t *testing.T) {
	name, tld := SplitDomain("casino-win.xyz")
	assert.Equal(t, "casino-win", name)
	assert.Equal(t, "xyz", tld)

	name, tld = SplitDomain("localhost")
	assert.Equal(t, "localhost", name)
	assert.Equal(t, "com", tld)

	name, tld = SplitDomain("a.b.co.uk")
	assert.Equal(t, "a.b.co", name)
	assert.Equal(t, "uk", tld)
}

func TestValidDomain(t *testing.T) {
	assert.True(t, ValidDomain("example.com"))
	assert.True(t, ValidDomain("a1-b2.io"))
	assert.False(t, ValidDomain("ab"))                             // too short
	assert.False(t, ValidDomain("-example.com"))                   // leading hyphen
	assert.False(t, ValidDomain("example.com-"))                   // trailing hyphen
	assert.False(t, ValidDomain("exаmple.com"))                    // cyrillic а
	assert.False(t, ValidDomain(strings.Repeat("a", 64)+".com")) // too long
}

func TestAnalyzeDomain(t *testing.T) {
	a := AnalyzeDomain("win-big777.xyz")
	assert.Equal(t, "xyz", a.TLD)
	assert.Equal(t, "win-big777", a.SLD)
	assert.True(t, a.SuspiciousTLD)
	assert.False(t, a.Legitimate)
	assert.True(t, a.HasDashes)
	assert.Equal(t, 1, a.DashCount)
	assert.True(t, a.HasNumbers)
	assert.Equal(t, 3, a.NumberCount)
	assert.False(t, a.IsSubdomain)

	b := AnalyzeDomain("login.paypal.com.secure-verify.tk")
	assert.True(t, b.IsSubdomain)
	assert.Equal(t, "tk", b.TLD)
	assert.Equal(t, "secure-verify", b.SLD)
	assert.Equal(t, "login.paypal.com", b.Subdomain)
}

func TestAnalyzeDomainLegitimate(t *testing.T) {
	a := AnalyzeDomain("google.com")
	assert.True(t, a.Legitimate)
	assert.Equal(t, "Established", a.Age.Label)
	assert.False(t, a.Age.Risky)
	assert.GreaterOrEqual(t, a.Age.Days, 3000)
}

func TestAgeFromDays(t *testing.T) {
	assert.Equal(t, DomainAge{Days: 5, Label: "Very New", Risky: true}, ageFromDays(5))
	assert.Equal(t, DomainAge{Days: 100, Label: "New", Risky: false}, ageFromDays(100))
	assert.Equal(t, DomainAge{Days: 200, Label: "Moderate", Risky: false}, ageFromDays(200))
	assert.Equal(t, DomainAge{Days: 2000, Label: "Established", Risky: false}, ageFromDays(2000))
}

func TestSyntheticDeterministic(t *testing.T) {
	ex := &SyntheticExtractor{}
	ctx := context.Background()

	first, err := ex.Extract(ctx, "shady-casino.xyz")
	require.NoError(t, err)
	second, err := ex.Extract(ctx, "shady-casino.xyz")
	require.NoError(t, err)

	// timestamps aside, two runs over the same domain must agree exactly
	second.ExtractedAt = first.ExtractedAt
	assert.Equal(t, first, second)
}

func TestSyntheticSections(t *testing.T) {
	ex := &SyntheticExtractor{}
	rec, err := ex.Extract(context.Background(), "shady-casino.xyz")
	require.NoError(t, err)

	assert.Equal(t, "shady-casino.xyz", rec.Domain)
	assert.False(t, rec.TLS.Real)
	if rec.DNS.Success {
		assert.NotEmpty(t, rec.DNS.IP)
	} else {
		assert.Empty(t, rec.DNS.IP)
	}
	require.NotEmpty(t, rec.RedirectChain)
	assert.Equal(t, "Landing Page", rec.RedirectChain[0].Type)
	assert.Equal(t, "Conversion Page", rec.RedirectChain[len(rec.RedirectChain)-1].Type)
	for i, step := range rec.RedirectChain {
		assert.Equal(t, i+1, step.Step)
	}
}

func TestExtractMarkers(t *testing.T) {
	html := `<html><head>
		<script src="https://www.googletagmanager.com/gtag/js?id=G-AB12CD34EF"></script>
		<script>fbq('init', '123456789012345');</script>
		<script>ttq.load('ABCDEF123456');</script>
	</head><body>
		<a href="https://offers.example?aff_id=net44&subid=tiktok_7">claim</a>
		<p>send to bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4</p>
		<script src="https://nowpayments.io/embed.js"></script>
		<a href="https://t.me/fastpayouts_vip">support</a>
		<a href="mailto:admin@shady-casino.xyz">mail</a>
	</body></html>`

	m := extractMarkers(html)
	assert.Equal(t, "G-AB12CD34EF", m.Trackers.GAID)
	assert.Equal(t, "123456789012345", m.Trackers.FBPixel)
	assert.Equal(t, "ABCDEF123456", m.Trackers.TTPixel)
	require.NotNil(t, m.Trackers.Affiliate)
	assert.Equal(t, "net44", m.Trackers.Affiliate.AffID)
	assert.Equal(t, "tiktok_7", m.Trackers.Affiliate.SubID)
	assert.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", m.Financial.CryptoWallet)
	assert.Equal(t, "BTC", m.Financial.WalletType)
	assert.Equal(t, "NOWPayments", m.Financial.PaymentGateway)
	assert.False(t, m.Financial.GatewayLicensed)
	assert.Equal(t, "@fastpayouts_vip", m.Contacts.Telegram)
	assert.Equal(t, "admin@shady-casino.xyz", m.Contacts.Email)
}
