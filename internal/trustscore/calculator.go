// Package trustscore turns heterogeneous verification signals into a single
// explainable 0-100 trust score. The calculation is pure domain logic - no
// I/O, no side effects: every call consumes an immutable Data snapshot and
// produces a fresh Result, so it is safe to run concurrently from any number
// of goroutines.
package trustscore

import (
	"fmt"
	"math"
	"time"

	"clearhire/internal/identity"
)

// componentWeights drives the combine step and fixes the breakdown keys.
var componentWeights = []struct {
	name   string
	weight int
}{
	{"aadhaar", WeightAadhaar},
	{"pan", WeightPAN},
	{"uan", WeightUAN},
	{"face", WeightFace},
	{"documents", WeightDocuments},
	{"cross_match", WeightCrossMatch},
}

// Calculator evaluates verification data into a trust score. It is
// stateless; the struct exists so a composition root can construct and
// inject it once.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate scores one verification snapshot. The score starts at 100 and
// each component's shortfall deducts in proportion to its weight; the result
// is deterministic for identical input, and now is recorded as CalculatedAt
// untouched.
func (c *Calculator) Calculate(data Data, now time.Time) Result {
	completionRate := completion(data)
	if completionRate < MinCompletionRate {
		return Result{
			Score:           0,
			Status:          StatusIncomplete,
			Flags:           []string{"INCOMPLETE_VERIFICATION"},
			CompletionRate:  completionRate,
			Recommendations: []string{"Complete all mandatory verification steps"},
			CalculatedAt:    now,
		}
	}

	experienceYears := data.experienceYears()

	score := 100.0
	var flags []string
	breakdown := make(map[string]float64, len(componentWeights))

	for _, comp := range componentWeights {
		var compScore float64
		var compFlags []string

		switch comp.name {
		case "aadhaar":
			compScore, compFlags = evaluateAadhaar(data.Aadhaar)
		case "pan":
			compScore, compFlags = evaluatePAN(data.PAN)
		case "uan":
			compScore, compFlags = evaluateUAN(data.UAN, experienceYears)
		case "face":
			compScore, compFlags = evaluateFace(data.Face)
		case "documents":
			compScore, compFlags = evaluateDocuments(data.Documents, experienceYears)
		case "cross_match":
			compScore, compFlags = evaluateCrossMatch(data)
		}

		score -= (100 - compScore) * float64(comp.weight) / 100
		flags = append(flags, compFlags...)
		breakdown[comp.name] = compScore
	}

	finalScore := round2(math.Max(0, score))
	deduped := dedupeFlags(flags)

	return Result{
		Score:           finalScore,
		Status:          classify(finalScore),
		Flags:           deduped,
		Breakdown:       breakdown,
		CompletionRate:  completionRate,
		Recommendations: recommendations(deduped),
		CalculatedAt:    now,
	}
}

// completion measures how many of the five verification sources produced a
// result: primary identity, financial identity, employment, biometric, and
// at least one document.
func completion(data Data) float64 {
	present := 0
	if data.Aadhaar != nil {
		present++
	}
	if data.UAN != nil {
		present++
	}
	if data.PAN != nil {
		present++
	}
	if data.Face != nil {
		present++
	}
	if len(data.Documents) > 0 {
		present++
	}
	return float64(present) / 5
}

// evaluateAadhaar scores the primary identity document verification.
func evaluateAadhaar(r *IdentityResult) (float64, []string) {
	if r == nil {
		return 0, []string{"AADHAAR_NOT_VERIFIED"}
	}
	if r.Status == ProviderFailed {
		return 0, []string{"AADHAAR_VERIFICATION_FAILED"}
	}

	score := 100.0
	var flags []string

	if r.MatchScore < aadhaarLowMatchBelow {
		score -= aadhaarLowMatch
		flags = append(flags, fmt.Sprintf("AADHAAR_LOW_MATCH_%d%%", r.MatchScore))
	}

	if cmp := r.Comparison; cmp != nil {
		if !cmp.NameMatch {
			score -= aadhaarNameMismatch
			flags = append(flags, "AADHAAR_NAME_MISMATCH")
		}
		if !cmp.DOBMatch {
			score -= aadhaarDOBMismatch
			flags = append(flags, "AADHAAR_DOB_MISMATCH")
		}
	}
	if r.GenderMatch != nil && !*r.GenderMatch {
		score -= aadhaarGenderMismatch
		flags = append(flags, "AADHAAR_GENDER_MISMATCH")
	}

	return math.Max(0, score), flags
}

// evaluatePAN scores the financial identity verification.
func evaluatePAN(r *PANResult) (float64, []string) {
	if r == nil {
		return 0, []string{"PAN_NOT_VERIFIED"}
	}
	if !r.Valid {
		return 0, []string{"PAN_INVALID"}
	}

	score := 100.0
	var flags []string

	if r.NameMatch != nil && !*r.NameMatch {
		score -= panNameMismatch
		flags = append(flags, "PAN_NAME_MISMATCH")
	}
	if r.DOBMatch != nil && !*r.DOBMatch {
		score -= panDOBMismatch
		flags = append(flags, "PAN_DOB_MISMATCH")
	}
	if r.AadhaarLinked != nil && !*r.AadhaarLinked {
		score -= panNotLinked
		flags = append(flags, "PAN_AADHAAR_NOT_LINKED")
	}

	return math.Max(0, score), flags
}

// evaluateUAN scores employment verification, gated on claimed experience.
// Freshers owe no employment history. When the provider produced a valid
// result, the employment history analyzer's verdict is the component score.
func evaluateUAN(r *EmploymentResult, experienceYears int) (float64, []string) {
	if experienceYears < uanJuniorYears {
		return 100, nil
	}

	if r == nil {
		if experienceYears < uanSeniorYears {
			return 100 - uanMissingJunior, []string{"UAN_NOT_PROVIDED_JUNIOR"}
		}
		return 0, []string{"UAN_NOT_PROVIDED_SENIOR"}
	}

	if !r.Valid {
		return 0, []string{"UAN_INVALID"}
	}

	score := float64(r.Analysis.Score)
	return math.Max(0, math.Min(100, score)), r.Analysis.Flags
}

// evaluateFace scores the biometric verification. Decisions that produced
// no usable comparison zero the component with a flag naming the cause
// rather than aborting the whole calculation.
func evaluateFace(r *FaceResult) (float64, []string) {
	if r == nil {
		return 0, []string{"FACE_NOT_VERIFIED"}
	}

	switch r.Decision {
	case FaceMismatch:
		return 0, []string{"FACE_MISMATCH"}
	case FacePendingReference:
		return 0, []string{"FACE_REFERENCE_PENDING"}
	case FaceNotAvailable:
		return 0, []string{"FACE_NOT_VERIFIED"}
	case FaceError:
		return 0, []string{"FACE_VERIFICATION_ERROR"}
	}

	score := 100.0
	var flags []string

	if r.Decision == FaceLowConfidence {
		score -= faceLowConfidence
		flags = append(flags, fmt.Sprintf("FACE_LOW_CONFIDENCE_%d%%", r.Confidence))
	} else if r.Confidence < faceModerateBelow {
		score -= faceModerateConfidence
		flags = append(flags, fmt.Sprintf("FACE_MODERATE_CONFIDENCE_%d%%", r.Confidence))
	}

	if !r.LivenessPassed {
		score -= faceLivenessFailed
		flags = append(flags, "LIVENESS_FAILED")
	}

	return math.Max(0, score), flags
}

// evaluateDocuments scores uploaded document legitimacy: required category
// coverage, average legitimacy, and individually flagged documents.
func evaluateDocuments(docs []DocumentResult, experienceYears int) (float64, []string) {
	if len(docs) == 0 {
		return 0, []string{"NO_DOCUMENTS_UPLOADED"}
	}

	score := 100.0
	var flags []string

	var hasEducation, hasExperience bool
	total := 0
	for _, d := range docs {
		switch d.DocumentType {
		case "education":
			hasEducation = true
		case "experience", "payslip":
			hasExperience = true
		}
		total += d.LegitimacyScore
	}

	if !hasEducation {
		score -= docMissingEducation
		flags = append(flags, "MISSING_EDUCATION_DOCUMENTS")
	}
	if experienceYears > 0 && !hasExperience {
		score -= docMissingExperience
		flags = append(flags, "MISSING_EXPERIENCE_DOCUMENTS")
	}

	avg := float64(total) / float64(len(docs))
	switch {
	case avg < docModerateAt:
		score -= docLowLegitimacy
		flags = append(flags, fmt.Sprintf("DOCUMENTS_LOW_LEGITIMACY_%.0f%%", avg))
	case avg < docAcceptableAt:
		score -= docModerateLegitimacy
		flags = append(flags, fmt.Sprintf("DOCUMENTS_MODERATE_LEGITIMACY_%.0f%%", avg))
	case avg < docExcellentAt:
		score -= docAcceptableLegitimacy
		flags = append(flags, fmt.Sprintf("DOCUMENTS_ACCEPTABLE_LEGITIMACY_%.0f%%", avg))
	}

	for _, d := range docs {
		switch d.Status {
		case DocumentSuspicious:
			score -= docSuspiciousEach
			flags = append(flags, "SUSPICIOUS_DOC_"+docLabel(d))
		case DocumentReviewRequired:
			score -= docReviewEach
			flags = append(flags, "REVIEW_DOC_"+docLabel(d))
		}
	}

	return math.Max(0, score), flags
}

func docLabel(d DocumentResult) string {
	if d.DocumentType == "" {
		return "unknown"
	}
	return d.DocumentType
}

// evaluateCrossMatch checks consistency of names and dates of birth across
// sources. Thresholds are asymmetric: the two government documents must
// agree within 90% and match DOB exactly, while employment data only needs
// 80% name agreement.
func evaluateCrossMatch(data Data) (float64, []string) {
	score := 100.0
	var flags []string

	if data.Aadhaar != nil && data.PAN != nil {
		if data.Aadhaar.FullName != "" && data.PAN.FullName != "" {
			similarity := identity.Similarity(data.Aadhaar.FullName, data.PAN.FullName)
			if similarity < crossAadhaarPANThreshold {
				score -= crossAadhaarPANName
				flags = append(flags, fmt.Sprintf("AADHAAR_PAN_NAME_DIFF_%.0f%%", similarity))
			}
		}
		if data.Aadhaar.DOB != "" && data.PAN.DOB != "" && data.Aadhaar.DOB != data.PAN.DOB {
			score -= crossAadhaarPANDOB
			flags = append(flags, "AADHAAR_PAN_DOB_MISMATCH")
		}
	}

	if data.Aadhaar != nil && data.UAN != nil {
		if data.Aadhaar.FullName != "" && data.UAN.Name != "" {
			similarity := identity.Similarity(data.Aadhaar.FullName, data.UAN.Name)
			if similarity < crossAadhaarUANThreshold {
				score -= crossAadhaarUANName
				flags = append(flags, fmt.Sprintf("AADHAAR_UAN_NAME_DIFF_%.0f%%", similarity))
			}
		}
	}

	return math.Max(0, score), flags
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
