package trustscore

// Status classifies a calculated trust score.
type Status string

const (
	StatusVerified       Status = "VERIFIED"        // score >= 85
	StatusReviewRequired Status = "REVIEW_REQUIRED" // score 70-84
	StatusHighRisk       Status = "HIGH_RISK"       // score 50-69
	StatusFlagged        Status = "FLAGGED"         // score < 50
	StatusIncomplete     Status = "INCOMPLETE"      // completion < 70%
)

// Component weights. They sum to 100.
const (
	WeightAadhaar    = 20
	WeightPAN        = 10
	WeightUAN        = 10
	WeightFace       = 25
	WeightDocuments  = 25
	WeightCrossMatch = 10
)

// Status thresholds.
const (
	ThresholdVerified       = 85.0
	ThresholdReviewRequired = 70.0
	ThresholdHighRisk       = 50.0
)

// MinCompletionRate is the fraction of required inputs that must be present
// before a score is calculated at all.
const MinCompletionRate = 0.70

// Aadhaar deductions.
const (
	aadhaarNameMismatch   = 30
	aadhaarDOBMismatch    = 40
	aadhaarGenderMismatch = 10
	aadhaarLowMatch       = 20 // match score below aadhaarLowMatchBelow

	aadhaarLowMatchBelow = 80
)

// PAN deductions.
const (
	panNameMismatch = 50
	panDOBMismatch  = 30
	panNotLinked    = 20
)

// UAN deductions and the experience bands that gate them.
const (
	uanMissingJunior = 50 // 1-3 years claimed, no UAN result

	uanJuniorYears = 1
	uanSeniorYears = 3
)

// Face deductions.
const (
	faceLowConfidence      = 40
	faceModerateConfidence = 15 // confidence below faceModerateBelow
	faceLivenessFailed     = 30

	faceModerateBelow = 85
)

// Document deductions.
const (
	docMissingEducation     = 50
	docMissingExperience    = 30 // only when experience is claimed
	docLowLegitimacy        = 40 // average below docModerateAt
	docModerateLegitimacy   = 20 // average below docAcceptableAt
	docAcceptableLegitimacy = 10 // average below docExcellentAt
	docSuspiciousEach       = 15
	docReviewEach           = 5

	docExcellentAt  = 85
	docAcceptableAt = 75
	docModerateAt   = 60
)

// Cross-match deductions and the per-pair similarity thresholds. Thresholds
// are asymmetric: government sources are held to a stricter standard than
// employment data.
const (
	crossAadhaarPANName = 30
	crossAadhaarPANDOB  = 50
	crossAadhaarUANName = 20

	crossAadhaarPANThreshold = 90
	crossAadhaarUANThreshold = 80
)

// classify maps a final score onto a status. StatusIncomplete never comes
// from here; only the completion gate produces it.
func classify(score float64) Status {
	switch {
	case score >= ThresholdVerified:
		return StatusVerified
	case score >= ThresholdReviewRequired:
		return StatusReviewRequired
	case score >= ThresholdHighRisk:
		return StatusHighRisk
	default:
		return StatusFlagged
	}
}
