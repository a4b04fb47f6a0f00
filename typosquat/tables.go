// Package typosquat generates near-duplicate domain candidates (homoglyphs,
// typos, TLD swaps) for a target domain and verifies which of them resolve
// to a live host.
package typosquat

// homoglyphs maps each letter to visually confusable replacements. Multi
// character entries ("rn" for m, "cl" for d) imitate letter pairs; the
// accented forms survive generation but are dropped by the ASCII syntax
// filter, mirroring what a DNS A-label can actually carry.
var homoglyphs = map[rune][]string{
	'a': {"4", "@", "à", "á", "â", "ã", "ä", "å", "ā", "ă"},
	'b': {"d", "6", "ḃ"},
	'c': {"k", "ç", "ć", "č"},
	'd': {"b", "cl", "ď"},
	'e': {"3", "è", "é", "ê", "ë", "ē", "ĕ", "ė"},
	'f': {"ph"},
	'g': {"9", "q", "ğ", "ġ"},
	'h': {"n", "ħ"},
	'i': {"1", "l", "!", "|", "í", "ì", "î", "ï", "ı"},
	'j': {"ĵ"},
	'k': {"c", "ķ"},
	'l': {"1", "i", "|", "ł"},
	'm': {"rn", "nn", "ṁ"},
	'n': {"m", "ñ", "ń", "ņ"},
	'o': {"0", "ø", "ö", "ò", "ó", "ô", "õ", "ō"},
	'p': {"q", "ṗ"},
	'q': {"p", "g"},
	'r': {"ŗ", "ř"},
	's': {"5", "$", "ś", "š", "ş", "ṡ"},
	't': {"7", "+", "ţ", "ť", "ṫ"},
	'u': {"v", "ù", "ú", "û", "ü", "ū", "ŭ"},
	'v': {"u", "ṿ"},
	'w': {"vv", "ŵ", "ẁ", "ẃ"},
	'x': {"×", "ẋ"},
	'y': {"ý", "ÿ", "ŷ"},
	'z': {"2", "ź", "ž", "ż"},
}

// qwertyAdjacent maps each letter to its physical keyboard neighbors.
var qwertyAdjacent = map[rune][]string{
	'a': {"q", "w", "s", "z"},
	'b': {"v", "g", "h", "n"},
	'c': {"x", "d", "f", "v"},
	'd': {"s", "e", "r", "f", "c", "x"},
	'e': {"w", "s", "d", "r"},
	'f': {"d", "r", "t", "g", "v", "c"},
	'g': {"f", "t", "y", "h", "b", "v"},
	'h': {"g", "y", "u", "j", "n", "b"},
	'i': {"u", "j", "k", "o"},
	'j': {"h", "u", "i", "k", "m", "n"},
	'k': {"j", "i", "o", "l", "m"},
	'l': {"k", "o", "p"},
	'm': {"n", "j", "k"},
	'n': {"b", "h", "j", "m"},
	'o': {"i", "k", "l", "p"},
	'p': {"o", "l"},
	'q': {"w", "a"},
	'r': {"e", "d", "f", "t"},
	's': {"a", "w", "e", "d", "x", "z"},
	't': {"r", "f", "g", "y"},
	'u': {"y", "h", "j", "i"},
	'v': {"c", "f", "g", "b"},
	'w': {"q", "a", "s", "e"},
	'x': {"z", "s", "d", "c"},
	'y': {"t", "g", "h", "u"},
	'z': {"a", "s", "x"},
}

// swapTLDs are the TLDs tried for swap and cross strategies, cheap and
// commonly abused ones first.
var swapTLDs = []string{
	"com", "net", "org", "info", "xyz", "top", "ru", "cn", "tk",
	"ml", "ga", "cf", "gq", "io", "co", "me", "biz", "pro",
	"site", "online", "live", "club", "app", "dev", "store",
	"shop", "tech", "space", "fun", "website", "link", "click",
	"win", "bid", "trade", "loan", "download", "stream", "racing",
	"review", "party", "date", "faith", "science", "work", "rocks",
	"pw", "cc", "ws", "mobi", "asia", "in", "uk", "de", "fr",
	"es", "it", "br", "kz", "ua", "by",
}

var prefixes = []string{
	"secure-", "login-", "my-", "www-", "official-", "real-",
	"account-", "verify-", "auth-", "signin-", "update-",
}

var suffixes = []string{
	"-login", "-secure", "-verify", "-official", "-online",
	"-app", "-portal", "-web", "-site", "-info", "-help",
}

// Strategy labels.
const (
	StrategyHomoglyph        = "Homoglyph"
	StrategyOmission         = "Omission"
	StrategyKeyboardTypo     = "Keyboard typo"
	StrategyTransposition    = "Transposition"
	StrategyDuplication      = "Duplication"
	StrategyHyphenInsertion  = "Hyphen insertion"
	StrategyPrefixSuffix     = "Prefix/Suffix"
	StrategyDoubleHomoglyph  = "Double homoglyph"
	StrategyVowelSwap        = "Vowel swap"
	StrategyTLDSwap          = "TLD swap"
	StrategyHomoglyphTLD     = "Homoglyph + TLD"
	StrategyTypoTLD          = "Typo + TLD"
	StrategyOmissionTLD      = "Omission + TLD"
	StrategyDuplicationTLD   = "Duplication + TLD"
	StrategyTranspositionTLD = "Transposition + TLD"
	StrategyVowelTLD         = "Vowel + TLD"
)

// DefaultStrategyWeights is the base risk per generation strategy: the less
// visually distinguishable a variant is from the original, the higher the
// weight. Hand-tuned display heuristic, not a security-critical figure;
// kept as configuration data.
func DefaultStrategyWeights() map[string]int {
	return map[string]int{
		StrategyHomoglyph:        85,
		StrategyOmission:         70,
		StrategyKeyboardTypo:     65,
		StrategyTransposition:    60,
		StrategyDuplication:      55,
		StrategyHyphenInsertion:  50,
		StrategyTLDSwap:          75,
		StrategyPrefixSuffix:     80,
		StrategyDoubleHomoglyph:  90,
		StrategyVowelSwap:        60,
		StrategyHomoglyphTLD:     92,
		StrategyTypoTLD:          72,
		StrategyOmissionTLD:      68,
		StrategyDuplicationTLD:   58,
		StrategyTranspositionTLD: 62,
		StrategyVowelTLD:         58,
	}
}
