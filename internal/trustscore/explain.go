package trustscore

import (
	"strings"

	platstrings "clearhire/pkg/platform/strings"
)

// Flag categories for the explainability view.
const (
	CategoryIdentity   = "identity"
	CategoryFace       = "face"
	CategoryDocuments  = "documents"
	CategoryEmployment = "employment"
)

// categoryKeywords buckets a flag into the first category whose keyword it
// contains. Order matters: AADHAAR/PAN flags land in identity even when
// they also mention a mismatch kind another category would claim.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryIdentity, []string{"AADHAAR", "PAN"}},
	{CategoryFace, []string{"FACE", "LIVENESS"}},
	{CategoryDocuments, []string{"DOC", "DOCUMENT", "EDUCATION", "EXPERIENCE"}},
	{CategoryEmployment, []string{"UAN", "EMPLOYMENT", "GAP"}},
}

// Deduction is one display-only line item in the explainability view.
// Points is a heuristic estimate keyed off the flag's wording; it is never
// an input to the score itself, which only the weighted combine in
// Calculate produces.
type Deduction struct {
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
	Points   float64 `json:"points"`
}

// Explanation is the categorized, human-oriented reading of a Result.
type Explanation struct {
	Score           float64             `json:"score"`
	Status          Status              `json:"status"`
	Deductions      []Deduction         `json:"deductions"`
	FlagsByCategory map[string][]string `json:"flags_by_category"`
}

// Explain buckets a result's flags into categories and attaches estimated
// deduction points for display.
func Explain(r Result) Explanation {
	flagsByCategory := map[string][]string{
		CategoryIdentity:   {},
		CategoryFace:       {},
		CategoryDocuments:  {},
		CategoryEmployment: {},
	}

	var deductions []Deduction
	for _, flag := range r.Flags {
		category, ok := categorize(flag)
		if !ok {
			continue
		}
		flagsByCategory[category] = append(flagsByCategory[category], flag)
		deductions = append(deductions, Deduction{
			Category: category,
			Reason:   flagReason(flag),
			Points:   estimatePoints(flag),
		})
	}

	return Explanation{
		Score:           round1(r.Score),
		Status:          r.Status,
		Deductions:      deductions,
		FlagsByCategory: flagsByCategory,
	}
}

func categorize(flag string) (string, bool) {
	for _, bucket := range categoryKeywords {
		for _, kw := range bucket.keywords {
			if strings.Contains(flag, kw) {
				return bucket.category, true
			}
		}
	}
	return "", false
}

// estimatePoints guesses how many points a flag cost, for display only.
func estimatePoints(flag string) float64 {
	switch {
	case strings.Contains(flag, "MISMATCH"):
		return 10
	case strings.Contains(flag, "LOW"):
		return 5
	case strings.Contains(flag, "MISSING"):
		return 15
	case strings.Contains(flag, "SUSPICIOUS"):
		return 15
	default:
		return 5
	}
}

// flagReason renders a flag code as a readable sentence fragment:
// "AADHAAR_NAME_MISMATCH" becomes "Aadhaar Name Mismatch".
func flagReason(flag string) string {
	words := strings.Split(flag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// dedupeFlags removes duplicate flags preserving first-seen order.
func dedupeFlags(flags []string) []string {
	return platstrings.DedupeAndTrim(flags)
}

// recommendations derives the HR action list from the raised flags.
func recommendations(flags []string) []string {
	var recs []string

	if platstrings.ContainsFold(flags, "AADHAAR") {
		recs = append(recs, "Review Aadhaar verification details")
	}
	if platstrings.ContainsFold(flags, "FACE") {
		recs = append(recs, "Conduct manual face verification with candidate")
	}
	if platstrings.ContainsFold(flags, "DOC") || platstrings.ContainsFold(flags, "DOCUMENT") {
		recs = append(recs, "Request original documents for verification")
	}
	if platstrings.ContainsFold(flags, "MISMATCH") {
		recs = append(recs, "Verify name/DOB discrepancies with candidate")
	}
	if platstrings.ContainsFold(flags, "UAN") {
		recs = append(recs, "Request additional employment proof")
	}
	if platstrings.ContainsFold(flags, "PAN") {
		recs = append(recs, "Verify PAN details with candidate")
	}

	if len(recs) == 0 {
		return []string{"No specific recommendations"}
	}
	return recs
}
