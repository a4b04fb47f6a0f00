package typosquat

import (
	"scamgraph/feature"
)

// MaxCandidates bounds generation so verification cost stays predictable.
// Strategies run in priority order, so the cap always favors the cheaper
// single-transform variants.
const MaxCandidates = 10000

// crossTLD counts: how many swap TLDs each cross strategy pairs with.
const (
	homoglyphCrossTLDs = 20
	otherCrossTLDs     = 15
)

// Candidate is one generated variant, ephemeral to a single scan.
type Candidate struct {
	Domain   string `json:"domain"`
	Strategy string `json:"strategy"`
}

// GenerateCandidates produces typosquat candidates for a domain. Candidates
// are deduplicated keeping the first strategy that produced them, filtered
// through the domain-syntax check, never include the original and never
// exceed MaxCandidates.
func GenerateCandidates(domain string) []Candidate {
	return generateCandidates(domain, MaxCandidates)
}

func generateCandidates(domain string, maxCount int) []Candidate {
	name, tld := feature.SplitDomain(domain)

	g := &candidateSet{
		seen: map[string]struct{}{domain: {}},
		max:  maxCount,
	}

	type namedStrategy struct {
		label    string
		variants []string
	}
	singles := []namedStrategy{
		{StrategyHomoglyph, genHomoglyphs(name)},
		{StrategyOmission, genOmissions(name)},
		{StrategyKeyboardTypo, genKeyboardTypos(name)},
		{StrategyTransposition, genTranspositions(name)},
		{StrategyDuplication, genDuplications(name)},
		{StrategyHyphenInsertion, genHyphenInsertions(name)},
		{StrategyPrefixSuffix, genPrefixSuffix(name)},
		{StrategyDoubleHomoglyph, genDoubleHomoglyphs(name)},
		{StrategyVowelSwap, genVowelSwaps(name)},
	}
	for _, s := range singles {
		for _, v := range s.variants {
			if g.add(v+"."+tld, s.label) {
				return g.out
			}
		}
	}

	for _, swap := range swapTLDs {
		if swap == tld {
			continue
		}
		if g.add(name+"."+swap, StrategyTLDSwap) {
			return g.out
		}
	}

	crosses := []struct {
		label    string
		variants []string
		tldCount int
	}{
		{StrategyHomoglyphTLD, genHomoglyphs(name), homoglyphCrossTLDs},
		{StrategyTypoTLD, genKeyboardTypos(name), otherCrossTLDs},
		{StrategyOmissionTLD, genOmissions(name), otherCrossTLDs},
		{StrategyDuplicationTLD, genDuplications(name), otherCrossTLDs},
		{StrategyTranspositionTLD, genTranspositions(name), otherCrossTLDs},
		{StrategyVowelTLD, genVowelSwaps(name), otherCrossTLDs},
	}
	for _, c := range crosses {
		for _, v := range c.variants {
			for _, swap := range swapTLDs[:c.tldCount] {
				if swap == tld {
					continue
				}
				if g.add(v+"."+swap, c.label) {
					return g.out
				}
			}
		}
	}

	return g.out
}

// candidateSet accumulates candidates with dedup, syntax filtering and the
// generation cap. add reports true once the cap is hit.
type candidateSet struct {
	seen map[string]struct{}
	out  []Candidate
	max  int
}

func (g *candidateSet) add(domain, strategy string) bool {
	if _, ok := g.seen[domain]; ok {
		return len(g.out) >= g.max
	}
	if !feature.ValidDomain(domain) {
		return len(g.out) >= g.max
	}
	g.seen[domain] = struct{}{}
	g.out = append(g.out, Candidate{Domain: domain, Strategy: strategy})
	return len(g.out) >= g.max
}

func genHomoglyphs(name string) []string {
	var out []string
	runes := []rune(name)
	for i, r := range runes {
		for _, sub := range homoglyphs[r] {
			out = append(out, string(runes[:i])+sub+string(runes[i+1:]))
		}
	}
	return out
}

func genOmissions(name string) []string {
	var out []string
	runes := []rune(name)
	for i, r := range runes {
		if r == '.' || r == '-' {
			continue
		}
		out = append(out, string(runes[:i])+string(runes[i+1:]))
	}
	return out
}

func genKeyboardTypos(name string) []string {
	var out []string
	runes := []rune(name)
	for i, r := range runes {
		for _, swap := range qwertyAdjacent[r] {
			out = append(out, string(runes[:i])+swap+string(runes[i+1:]))
		}
	}
	return out
}

func genTranspositions(name string) []string {
	var out []string
	runes := []rune(name)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == runes[i+1] {
			continue
		}
		swapped := make([]rune, len(runes))
		copy(swapped, runes)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		out = append(out, string(swapped))
	}
	return out
}

func genDuplications(name string) []string {
	var out []string
	runes := []rune(name)
	for i, r := range runes {
		if r == '.' || r == '-' {
			continue
		}
		out = append(out, string(runes[:i+1])+string(r)+string(runes[i+1:]))
	}
	return out
}

func genHyphenInsertions(name string) []string {
	var out []string
	runes := []rune(name)
	for i := 1; i < len(runes); i++ {
		if runes[i] == '.' || runes[i-1] == '.' || runes[i] == '-' || runes[i-1] == '-' {
			continue
		}
		out = append(out, string(runes[:i])+"-"+string(runes[i:]))
	}
	return out
}

func genPrefixSuffix(name string) []string {
	out := make([]string, 0, len(prefixes)+len(suffixes))
	for _, p := range prefixes {
		out = append(out, p+name)
	}
	for _, s := range suffixes {
		out = append(out, name+s)
	}
	return out
}

// genDoubleHomoglyphs combines two independent substitutions, taking only
// the first replacement per position to limit the combinatorial blowup.
func genDoubleHomoglyphs(name string) []string {
	runes := []rune(name)
	var positions []int
	for i, r := range runes {
		if len(homoglyphs[r]) > 0 {
			positions = append(positions, i)
		}
	}
	var out []string
	for a := 0; a < len(positions); a++ {
		for b := a + 1; b < len(positions); b++ {
			ia, ib := positions[a], positions[b]
			variant := make([]string, len(runes))
			for i, r := range runes {
				variant[i] = string(r)
			}
			variant[ia] = homoglyphs[runes[ia]][0]
			variant[ib] = homoglyphs[runes[ib]][0]
			joined := ""
			for _, s := range variant {
				joined += s
			}
			out = append(out, joined)
		}
	}
	return out
}

func genVowelSwaps(name string) []string {
	const vowels = "aeiou"
	var out []string
	runes := []rune(name)
	for i, r := range runes {
		if !isVowel(r) {
			continue
		}
		for _, v := range vowels {
			if v == r {
				continue
			}
			out = append(out, string(runes[:i])+string(v)+string(runes[i+1:]))
		}
	}
	return out
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
