package trustscore

import (
	"clearhire/internal/employment"
	"clearhire/internal/identity"
	"clearhire/internal/verification/models"
)

// ProviderStatus is the outcome an external verification collaborator
// reports for a source.
type ProviderStatus string

const (
	ProviderVerified     ProviderStatus = "VERIFIED"
	ProviderPartial      ProviderStatus = "PARTIAL"
	ProviderFailed       ProviderStatus = "FAILED"
	ProviderNotAvailable ProviderStatus = "NOT_AVAILABLE"
)

// IdentityResult is the primary identity document verification outcome
// (Aadhaar), including the fields the provider verified and how they
// compared against the candidate's declared identity.
type IdentityResult struct {
	Status     ProviderStatus
	MatchScore int

	// Comparison against the declared profile. Nil when no comparison was
	// performed; absent comparisons deduct nothing.
	Comparison  *identity.ComparisonResult
	GenderMatch *bool

	// Provider-verified fields, used for cross-source consistency checks.
	FullName string
	DOB      string
}

// PANResult is the financial identity document verification outcome.
// Tri-state match fields are nil when the provider did not report them.
type PANResult struct {
	Status        ProviderStatus
	Valid         bool
	NameMatch     *bool
	DOBMatch      *bool
	AadhaarLinked *bool

	FullName string
	DOB      string
}

// EmploymentResult is the UAN employment verification outcome. Analysis is
// the employment history analyzer's verdict over the provider's records.
type EmploymentResult struct {
	Status   ProviderStatus
	Valid    bool
	Analysis employment.Analysis

	// Name the provider has on file for the account holder.
	Name string
}

// FaceDecision is the biometric collaborator's verdict.
type FaceDecision string

const (
	FaceMatch            FaceDecision = "MATCH"
	FaceLowConfidence    FaceDecision = "LOW_CONFIDENCE"
	FaceMismatch         FaceDecision = "MISMATCH"
	FacePendingReference FaceDecision = "PENDING_REFERENCE"
	FaceNotAvailable     FaceDecision = "NOT_AVAILABLE"
	FaceError            FaceDecision = "ERROR"
)

// FaceResult is the biometric verification outcome.
type FaceResult struct {
	Decision       FaceDecision
	Confidence     int
	LivenessPassed bool
}

// DocumentStatus is the legitimacy verdict for one uploaded document.
type DocumentStatus string

const (
	DocumentLegitimate     DocumentStatus = "LEGITIMATE"
	DocumentReviewRequired DocumentStatus = "REVIEW_REQUIRED"
	DocumentSuspicious     DocumentStatus = "SUSPICIOUS"
)

// DocumentResult is one document's legitimacy assessment.
type DocumentResult struct {
	DocumentType    string
	LegitimacyScore int
	Status          DocumentStatus
}

// Data is the immutable input snapshot for one calculation. Nil pointers
// and an empty document list mean the corresponding verification never
// produced a result; the calculator degrades those components rather than
// failing. All upstream I/O happens before this snapshot is assembled.
type Data struct {
	Candidate *models.CandidateProfile
	Aadhaar   *IdentityResult
	PAN       *PANResult
	UAN       *EmploymentResult
	Face      *FaceResult
	Documents []DocumentResult
}

// experienceYears returns the candidate's claimed experience, zero when the
// profile is absent.
func (d Data) experienceYears() int {
	if d.Candidate == nil {
		return 0
	}
	return d.Candidate.ExperienceYears
}
