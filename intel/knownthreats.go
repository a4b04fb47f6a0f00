// Package intel holds the static threat-pattern data used by feature
// extraction and risk scoring: suspicious TLDs, threat vocabularies,
// protected brand names, whitelisted domains and bad-reputation hosting.
// All of it is plain configuration data, tuned by hand.
package intel

// SuspiciousTLDs are top-level domains disproportionately used by
// malicious sites.
var SuspiciousTLDs = map[string]bool{
	"bet": true, "casino": true, "poker": true, "slots": true, "bingo": true, "games": true,
	"xyz": true, "top": true, "click": true, "club": true, "buzz": true, "surf": true, "fun": true,
	"icu": true, "cyou": true, "cfd": true, "sbs": true, "rest": true, "bond": true,
	"win": true, "vip": true, "pro": true, "biz": true, "info": true, "site": true, "online": true,
	"live": true, "store": true, "shop": true, "work": true, "monster": true, "beauty": true,
}

// Threat vocabularies. Matching is substring-based against the normalized
// domain, so short stems ("gambl", "bet") intentionally catch derived forms.

var GamblingKeywords = []string{
	"casino", "slot", "slots", "poker", "blackjack", "roulette",
	"jackpot", "spin", "bet", "betting", "gambl", "wager",
	"lucky", "fortune", "bonus", "freespin", "megawin", "bigwin",
	"playwin", "goldslot", "keno", "baccarat", "dice",
}

var PhishingKeywords = []string{
	"login", "signin", "sign-in", "verify", "verification",
	"account", "secure", "update", "confirm", "bank",
	"paypal", "amazon", "microsoft", "apple", "google",
	"netflix", "facebook", "instagram", "whatsapp",
	"password", "credential", "suspend", "locked", "urgent",
	"alert", "recover", "restore", "wallet",
}

var ScamKeywords = []string{
	"crypto", "bitcoin", "double", "invest", "profit",
	"earn", "money", "cash", "income", "passive",
	"rich", "wealth", "fast-money", "guaranteed", "return",
	"yield", "multiplier", "airdrop", "giveaway", "free-bitcoin",
	"mining", "trader", "trading", "forex", "binary",
}

var PyramidKeywords = []string{
	"invest", "fund", "capital", "profit", "return",
	"diamond", "gold", "platinum", "premium", "elite",
	"partner", "referral", "affiliate", "network", "mlm",
	"passive-income", "financial-freedom", "opportunity",
	"master", "academy", "trading", "forex",
}

// KnownBadASNs are autonomous systems associated with malicious activity.
var KnownBadASNs = map[string]bool{
	"AS62005": true, "AS202685": true, "AS44477": true, "AS209605": true, "AS57724": true,
	"AS48693": true, "AS213371": true, "AS208091": true, "AS44592": true, "AS62282": true,
}

// KnownBadHostingProviders is matched as substrings against the lowercased
// provider name.
var KnownBadHostingProviders = []string{
	"bulletproof", "offshore", "anonymous", "privacy",
	"bluevps", "hostkey", "alexhost", "itldc",
}

// LegitimateDomains is the whitelist of verified legitimate domains,
// keyed by normalized domain.
var LegitimateDomains = map[string]bool{
	"google.com": true, "youtube.com": true, "facebook.com": true, "twitter.com": true, "x.com": true,
	"instagram.com": true, "linkedin.com": true, "reddit.com": true, "wikipedia.org": true,
	"amazon.com": true, "apple.com": true, "microsoft.com": true, "github.com": true,
	"stackoverflow.com": true, "netflix.com": true, "spotify.com": true, "twitch.tv": true,
	"yahoo.com": true, "bing.com": true, "whatsapp.com": true, "telegram.org": true,
	"zoom.us": true, "slack.com": true, "dropbox.com": true, "adobe.com": true,
	"cloudflare.com": true, "aws.amazon.com": true, "azure.microsoft.com": true,
	"gov.kz": true, "egov.kz": true, "edu.kz": true, "mail.ru": true, "yandex.ru": true,
	"bbc.com": true, "cnn.com": true, "nytimes.com": true, "reuters.com": true,
}

// BrandNames are brands commonly impersonated by phishing domains.
var BrandNames = []string{
	"google", "facebook", "apple", "microsoft", "amazon",
	"netflix", "paypal", "instagram", "whatsapp", "telegram",
	"twitter", "linkedin", "spotify", "zoom", "slack",
	"kaspi", "halyk", "forte", "jusan",
}
