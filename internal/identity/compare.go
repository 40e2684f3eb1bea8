// Package identity provides pure comparison functions for candidate identity
// fields: name normalization, fuzzy name matching, exact field matching, and
// address similarity. No ML, no I/O - rule-based comparison only. Every
// function is total: empty or missing inputs degrade to "no match" results.
package identity

import (
	"strings"
)

// MatchThreshold is the fuzzy score at or above which two names are
// considered the same person.
const MatchThreshold = 85

// honorificTokens are dropped during name normalization. KUMAR/KUMARI are
// kept in the list for compatibility with stored comparisons even though
// they are frequently genuine name components.
var honorificTokens = map[string]struct{}{
	"MR":     {},
	"MRS":    {},
	"MS":     {},
	"DR":     {},
	"SHRI":   {},
	"SMT":    {},
	"KUMAR":  {},
	"KUMARI": {},
}

// AddressMatch classifies how closely two addresses agree.
type AddressMatch string

const (
	AddressMatchFull        AddressMatch = "full"
	AddressMatchPartial     AddressMatch = "partial"
	AddressMatchNone        AddressMatch = "none"
	AddressMatchNotProvided AddressMatch = "not_provided"
)

// ComparisonResult is the transient output of comparing a candidate's
// declared identity against a provider-verified one.
type ComparisonResult struct {
	NameMatch    bool         `json:"name_match"`
	NameScore    int          `json:"name_score"`
	DOBMatch     bool         `json:"dob_match"`
	AddressMatch AddressMatch `json:"address_match"`
}

// NormalizeName uppercases a name, strips honorific tokens and any
// non-alphabetic characters (spaces preserved), and collapses whitespace.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	upper := strings.ToUpper(name)

	words := strings.Fields(upper)
	kept := words[:0]
	for _, w := range words {
		if _, drop := honorificTokens[w]; !drop {
			kept = append(kept, w)
		}
	}

	var b strings.Builder
	for _, r := range strings.Join(kept, " ") {
		if (r >= 'A' && r <= 'Z') || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// FuzzyNameMatch scores the similarity of two names on a 0-100 scale.
// A score of MatchThreshold or higher is considered a match.
//
// The score is 0 when either name is empty after normalization, 100 on exact
// normalized equality, and otherwise the higher of character-sequence
// similarity and token-set Jaccard overlap (which tolerates word reordering).
func FuzzyNameMatch(name1, name2 string) int {
	if name1 == "" || name2 == "" {
		return 0
	}

	n1 := NormalizeName(name1)
	n2 := NormalizeName(name2)

	if n1 == "" || n2 == "" {
		return 0
	}
	if n1 == n2 {
		return 100
	}

	score := int(sequenceRatio(n1, n2) * 100)

	if jaccard := tokenJaccard(n1, n2); jaccard > score {
		score = jaccard
	}

	return score
}

// Similarity is the raw character-sequence similarity of two strings on a
// 0-100 scale, after uppercasing and collapsing whitespace. Unlike
// FuzzyNameMatch it applies no honorific stripping and no token-set
// fallback, making it suitable for comparing names as different sources
// recorded them.
func Similarity(value1, value2 string) float64 {
	s1 := strings.Join(strings.Fields(strings.ToUpper(value1)), " ")
	s2 := strings.Join(strings.Fields(strings.ToUpper(value2)), " ")
	if s1 == "" || s2 == "" {
		return 0
	}
	return sequenceRatio(s1, s2) * 100
}

// tokenJaccard computes intersection/union of whitespace-split token sets,
// scaled to 0-100.
func tokenJaccard(a, b string) int {
	set1 := tokenSet(a)
	set2 := tokenSet(b)
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}

	intersection := 0
	for t := range set1 {
		if _, ok := set2[t]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return int(float64(intersection) / float64(union) * 100)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

// ExactMatch reports case-insensitive, trim-insensitive equality.
// Empty values never match.
func ExactMatch(value1, value2 string) bool {
	if value1 == "" || value2 == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value1), strings.TrimSpace(value2))
}

// addressAbbreviations are applied in order during address normalization so
// both sides collapse onto the same short forms.
var addressAbbreviations = []struct{ full, abbr string }{
	{"ROAD", "RD"},
	{"STREET", "ST"},
	{"AVENUE", "AVE"},
	{"FLOOR", "FLR"},
	{"BLOCK", "BLK"},
	{"BUILDING", "BLDG"},
	{"APARTMENT", "APT"},
	{"SECTOR", "SEC"},
	{"PHASE", "PH"},
}

// NormalizeAddress uppercases an address, collapses common abbreviations,
// strips punctuation, and normalizes whitespace.
func NormalizeAddress(address string) string {
	if address == "" {
		return ""
	}

	addr := strings.ToUpper(address)
	for _, r := range addressAbbreviations {
		addr = strings.ReplaceAll(addr, r.full, r.abbr)
	}

	var b strings.Builder
	for _, r := range addr {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// AddressSimilarity compares two addresses. Classification is full at >= 0.80
// sequence similarity, partial at >= 0.50, none below that, and not_provided
// when either side is empty. Similarity is boosted to at least 0.70 when the
// addresses share three or more tokens of length four or more, since
// district / city / PIN tokens matching outweighs formatting noise.
func AddressSimilarity(address1, address2 string) AddressMatch {
	if address1 == "" || address2 == "" {
		return AddressMatchNotProvided
	}

	a1 := NormalizeAddress(address1)
	a2 := NormalizeAddress(address2)
	if a1 == "" || a2 == "" {
		return AddressMatchNotProvided
	}

	ratio := sequenceRatio(a1, a2)

	set1 := tokenSet(a1)
	set2 := tokenSet(a2)
	importantMatches := 0
	for t := range set1 {
		if _, ok := set2[t]; ok && len(t) >= 4 {
			importantMatches++
		}
	}
	if importantMatches >= 3 && ratio < 0.70 {
		ratio = 0.70
	}

	switch {
	case ratio >= 0.80:
		return AddressMatchFull
	case ratio >= 0.50:
		return AddressMatchPartial
	default:
		return AddressMatchNone
	}
}

// Compare runs the full identity comparison between a candidate's declared
// fields and a provider's verified fields.
func Compare(declaredName, verifiedName, declaredDOB, verifiedDOB, declaredAddress, verifiedAddress string) ComparisonResult {
	nameScore := FuzzyNameMatch(declaredName, verifiedName)
	return ComparisonResult{
		NameMatch:    nameScore >= MatchThreshold,
		NameScore:    nameScore,
		DOBMatch:     ExactMatch(declaredDOB, verifiedDOB),
		AddressMatch: AddressSimilarity(declaredAddress, verifiedAddress),
	}
}
