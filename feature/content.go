package feature

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// ContentProbe fetches a site's landing page and pulls tracking, financial
// and contact markers from the HTML. HTTP first (fast, handles most cases),
// chromedp as fallback for JS-rendered pages. Set SKIP_CHROMEDP=true to
// disable the browser fallback in low-resource environments.
type ContentProbe struct {
	Client *http.Client
}

// PageMarkers is everything the probe found on the page, plus the redirect
// chain it followed to get there. Zero value means no page was reachable.
type PageMarkers struct {
	Trackers      Trackers
	Financial     Financial
	Contacts      Contacts
	RedirectChain []RedirectStep
}

func NewContentProbe() *ContentProbe {
	return &ContentProbe{
		Client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

var (
	gaIDRe      = regexp.MustCompile(`\b(G-[A-Z0-9]{6,12}|UA-\d{4,10}-\d{1,4})\b`)
	fbPixelRe   = regexp.MustCompile(`fbq\(\s*['"]init['"]\s*,\s*['"](\d{8,18})['"]`)
	ttPixelRe   = regexp.MustCompile(`ttq\.load\(\s*['"]([A-Z0-9]{8,24})['"]`)
	affIDRe     = regexp.MustCompile(`[?&](?:aff_id|affid|affiliate_id)=([A-Za-z0-9_-]+)`)
	subIDRe     = regexp.MustCompile(`[?&](?:sub_id|subid|s1)=([A-Za-z0-9_-]+)`)
	btcWalletRe = regexp.MustCompile(`\b(bc1[a-z0-9]{25,62}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})\b`)
	ethWalletRe = regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`)
	telegramRe  = regexp.MustCompile(`t\.me/([A-Za-z0-9_]{4,32})`)
	whatsappRe  = regexp.MustCompile(`(?:wa\.me|api\.whatsapp\.com/send\?phone=)[/]?(\+?\d{7,15})`)
	emailRe     = regexp.MustCompile(`mailto:([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
)

// payment gateway markers found in checkout scripts
var gatewayMarkers = map[string]struct {
	name     string
	licensed bool
}{
	"js.stripe.com":       {"Stripe", true},
	"paypal.com/sdk":      {"PayPal", true},
	"checkout.razorpay":   {"Razorpay", true},
	"coinpayments.net":    {"CoinPayments", false},
	"pay.cryptocloud":     {"CryptoCloud", false},
	"nowpayments.io":      {"NOWPayments", false},
	"perfectmoney.com":    {"Perfect Money", false},
	"payeer.com/merchant": {"Payeer", false},
}

// Probe fetches the page and extracts markers. Every failure degrades to an
// empty PageMarkers; the probe never blocks analysis.
func (p *ContentProbe) Probe(ctx context.Context, domain string) PageMarkers {
	html, chain := p.fetchWithChain(ctx, domain)
	if html == "" && os.Getenv("SKIP_CHROMEDP") != "true" {
		html = fetchRendered(ctx, domain)
	}
	if html == "" {
		return PageMarkers{RedirectChain: chain}
	}
	m := extractMarkers(html)
	m.RedirectChain = chain
	return m
}

// fetchWithChain records every redirect hop so the chain shape itself can be
// scored. The first hop is always the landing page; hops through known
// tracker hosts are labeled as tracker redirects.
func (p *ContentProbe) fetchWithChain(ctx context.Context, domain string) (string, []RedirectStep) {
	var chain []RedirectStep
	url := "https://" + domain
	for step := 1; step <= 10; step++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", chain
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

		resp, err := p.noRedirectClient().Do(req)
		if err != nil {
			slog.Debug("content fetch failed", "url", url, "error", err)
			return "", chain
		}

		chain = append(chain, RedirectStep{
			Step:   step,
			URL:    url,
			Type:   stepType(step, url, resp.StatusCode),
			Status: resp.StatusCode,
		})

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" {
				return "", chain
			}
			if strings.HasPrefix(loc, "/") {
				loc = "https://" + domain + loc
			}
			url = loc
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
		resp.Body.Close()
		if err != nil {
			return "", chain
		}
		if len(chain) > 0 {
			chain[len(chain)-1].Type = finalStepType(len(chain))
		}
		return string(body), chain
	}
	return "", chain
}

func (p *ContentProbe) noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: p.Client.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

var trackerHosts = []string{"track", "click", "redirect", "go.", "aff", "offer"}

func stepType(step int, url string, status int) string {
	if step == 1 {
		return "Landing Page"
	}
	lower := strings.ToLower(url)
	for _, h := range trackerHosts {
		if strings.Contains(lower, h) {
			return RedirectTypeTracker
		}
	}
	return "Pre-Landing"
}

func finalStepType(steps int) string {
	if steps == 1 {
		return "Landing Page"
	}
	return "Conversion Page"
}

// fetchRendered drives headless Chrome to get the post-JS HTML. Uses
// CHROME_PATH when set for Docker/cloud environments.
func fetchRendered(ctx context.Context, domain string) string {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
	)
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("https://"+domain),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		slog.Debug("chromedp fetch failed", "domain", domain, "error", err)
		return ""
	}
	return html
}

func extractMarkers(html string) PageMarkers {
	var m PageMarkers

	if match := gaIDRe.FindString(html); match != "" {
		m.Trackers.GAID = match
	}
	if match := fbPixelRe.FindStringSubmatch(html); match != nil {
		m.Trackers.FBPixel = match[1]
	}
	if match := ttPixelRe.FindStringSubmatch(html); match != nil {
		m.Trackers.TTPixel = match[1]
	}
	if match := affIDRe.FindStringSubmatch(html); match != nil {
		aff := &AffiliateParams{AffID: match[1]}
		if sub := subIDRe.FindStringSubmatch(html); sub != nil {
			aff.SubID = sub[1]
		}
		m.Trackers.Affiliate = aff
	}

	if match := btcWalletRe.FindString(html); match != "" {
		m.Financial.CryptoWallet = match
		m.Financial.WalletType = "BTC"
	} else if match := ethWalletRe.FindString(html); match != "" {
		m.Financial.CryptoWallet = match
		m.Financial.WalletType = "ETH"
	}
	lower := strings.ToLower(html)
	for marker, gw := range gatewayMarkers {
		if strings.Contains(lower, marker) {
			m.Financial.PaymentGateway = gw.name
			m.Financial.GatewayLicensed = gw.licensed
			break
		}
	}

	if match := telegramRe.FindStringSubmatch(html); match != nil {
		m.Contacts.Telegram = "@" + match[1]
	}
	if match := whatsappRe.FindStringSubmatch(html); match != nil {
		m.Contacts.WhatsApp = match[1]
	}
	if match := emailRe.FindStringSubmatch(html); match != nil {
		m.Contacts.Email = match[1]
	}
	return m
}
