package trustscore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearhire/internal/employment"
	"clearhire/internal/identity"
	"clearhire/internal/verification/models"
)

var calcNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

// cleanData returns a snapshot where every verification passed cleanly.
func cleanData() Data {
	return Data{
		Candidate: &models.CandidateProfile{
			ID:              uuid.New(),
			FullName:        "Rajesh Kumar Sharma",
			Email:           "rajesh@example.com",
			DateOfBirth:     "1992-04-18",
			ExperienceYears: 5,
		},
		Aadhaar: &IdentityResult{
			Status:     ProviderVerified,
			MatchScore: 96,
			Comparison: &identity.ComparisonResult{
				NameMatch: true,
				NameScore: 100,
				DOBMatch:  true,
			},
			GenderMatch: boolPtr(true),
			FullName:    "RAJESH KUMAR SHARMA",
			DOB:         "1992-04-18",
		},
		PAN: &PANResult{
			Status:        ProviderVerified,
			Valid:         true,
			NameMatch:     boolPtr(true),
			DOBMatch:      boolPtr(true),
			AadhaarLinked: boolPtr(true),
			FullName:      "RAJESH KUMAR SHARMA",
			DOB:           "1992-04-18",
		},
		UAN: &EmploymentResult{
			Status: ProviderVerified,
			Valid:  true,
			Analysis: employment.Analysis{
				Status: employment.StatusVerified,
				Score:  100,
			},
			Name: "RAJESH KUMAR SHARMA",
		},
		Face: &FaceResult{
			Decision:       FaceMatch,
			Confidence:     97,
			LivenessPassed: true,
		},
		Documents: []DocumentResult{
			{DocumentType: "education", LegitimacyScore: 95, Status: DocumentLegitimate},
			{DocumentType: "experience", LegitimacyScore: 92, Status: DocumentLegitimate},
		},
	}
}

func TestCalculateCleanDataScoresFull(t *testing.T) {
	result := NewCalculator().Calculate(cleanData(), calcNow)

	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, StatusVerified, result.Status)
	assert.Empty(t, result.Flags)
	assert.Equal(t, 1.0, result.CompletionRate)
	assert.Equal(t, []string{"No specific recommendations"}, result.Recommendations)
	assert.Equal(t, calcNow, result.CalculatedAt)

	for name, score := range result.Breakdown {
		assert.Equalf(t, 100.0, score, "component %s", name)
	}
}

// Missing documents and employment data leaves three of the five sources
// present, failing the completion gate.
func TestCalculateIncompleteShortCircuits(t *testing.T) {
	data := cleanData()
	data.Documents = nil
	data.UAN = nil

	result := NewCalculator().Calculate(data, calcNow)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, StatusIncomplete, result.Status)
	assert.Equal(t, []string{"INCOMPLETE_VERIFICATION"}, result.Flags)
	assert.InDelta(t, 0.6, result.CompletionRate, 1e-9)
	assert.Empty(t, result.Breakdown)
	assert.Equal(t, []string{"Complete all mandatory verification steps"}, result.Recommendations)
}

// A biometric component at 60 with weight 25 alone brings the score to
// exactly 90.
func TestCalculateWeightedCombine(t *testing.T) {
	data := cleanData()
	data.Face = &FaceResult{Decision: FaceLowConfidence, Confidence: 60, LivenessPassed: true}

	result := NewCalculator().Calculate(data, calcNow)

	assert.Equal(t, 60.0, result.Breakdown["face"])
	assert.Equal(t, 90.0, result.Score)
	assert.Equal(t, StatusVerified, result.Status)
	assert.Contains(t, result.Flags, "FACE_LOW_CONFIDENCE_60%")
}

func TestCalculateIdempotent(t *testing.T) {
	data := cleanData()
	data.Face.Decision = FaceLowConfidence
	data.Documents[1].Status = DocumentReviewRequired
	calc := NewCalculator()

	first := calc.Calculate(data, calcNow)
	second := calc.Calculate(data, calcNow)

	assert.Equal(t, first, second)
}

// Worsening one component's signal never raises the final score.
func TestCalculateMonotonicDeduction(t *testing.T) {
	calc := NewCalculator()
	baseline := calc.Calculate(cleanData(), calcNow)

	worsen := []func(*Data){
		func(d *Data) { d.Aadhaar.MatchScore = 60 },
		func(d *Data) { d.Aadhaar.Comparison.NameMatch = false },
		func(d *Data) { d.PAN.AadhaarLinked = boolPtr(false) },
		func(d *Data) { d.UAN.Analysis.Score = 70 },
		func(d *Data) { d.Face.LivenessPassed = false },
		func(d *Data) { d.Documents[0].Status = DocumentSuspicious },
		func(d *Data) { d.PAN.FullName = "SURESH VERMA" },
	}

	for i, mutate := range worsen {
		data := cleanData()
		mutate(&data)
		result := calc.Calculate(data, calcNow)
		assert.LessOrEqualf(t, result.Score, baseline.Score, "mutation %d raised the score", i)
	}
}

func TestCalculateBounds(t *testing.T) {
	// every signal at its worst
	data := cleanData()
	data.Aadhaar = &IdentityResult{Status: ProviderFailed}
	data.PAN = &PANResult{Valid: false}
	data.UAN = &EmploymentResult{Valid: false}
	data.Face = &FaceResult{Decision: FaceMismatch}
	data.Documents = []DocumentResult{
		{DocumentType: "other", LegitimacyScore: 10, Status: DocumentSuspicious},
	}

	result := NewCalculator().Calculate(data, calcNow)

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.Equal(t, StatusFlagged, result.Status)
	for name, score := range result.Breakdown {
		assert.GreaterOrEqualf(t, score, 0.0, "component %s", name)
		assert.LessOrEqualf(t, score, 100.0, "component %s", name)
	}
}

func TestClassifyThresholds(t *testing.T) {
	assert.Equal(t, StatusVerified, classify(85))
	assert.Equal(t, StatusReviewRequired, classify(84.99))
	assert.Equal(t, StatusReviewRequired, classify(70))
	assert.Equal(t, StatusHighRisk, classify(69.99))
	assert.Equal(t, StatusHighRisk, classify(50))
	assert.Equal(t, StatusFlagged, classify(49.99))
}

func TestEvaluateAadhaar(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		score, flags := evaluateAadhaar(nil)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"AADHAAR_NOT_VERIFIED"}, flags)
	})

	t.Run("provider failure", func(t *testing.T) {
		score, flags := evaluateAadhaar(&IdentityResult{Status: ProviderFailed, MatchScore: 95})
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"AADHAAR_VERIFICATION_FAILED"}, flags)
	})

	t.Run("low match", func(t *testing.T) {
		score, flags := evaluateAadhaar(&IdentityResult{Status: ProviderVerified, MatchScore: 72})
		assert.Equal(t, 80.0, score)
		assert.Equal(t, []string{"AADHAAR_LOW_MATCH_72%"}, flags)
	})

	t.Run("stacked mismatches", func(t *testing.T) {
		score, flags := evaluateAadhaar(&IdentityResult{
			Status:      ProviderVerified,
			MatchScore:  95,
			Comparison:  &identity.ComparisonResult{NameMatch: false, DOBMatch: false},
			GenderMatch: boolPtr(false),
		})
		// 100 - 30 - 40 - 10
		assert.Equal(t, 20.0, score)
		assert.ElementsMatch(t, []string{
			"AADHAAR_NAME_MISMATCH", "AADHAAR_DOB_MISMATCH", "AADHAAR_GENDER_MISMATCH",
		}, flags)
	})

	t.Run("no comparison deducts nothing", func(t *testing.T) {
		score, flags := evaluateAadhaar(&IdentityResult{Status: ProviderVerified, MatchScore: 95})
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})
}

func TestEvaluatePAN(t *testing.T) {
	t.Run("invalid zeroes", func(t *testing.T) {
		score, flags := evaluatePAN(&PANResult{Valid: false, NameMatch: boolPtr(true)})
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"PAN_INVALID"}, flags)
	})

	t.Run("unlinked", func(t *testing.T) {
		score, flags := evaluatePAN(&PANResult{Valid: true, AadhaarLinked: boolPtr(false)})
		assert.Equal(t, 80.0, score)
		assert.Equal(t, []string{"PAN_AADHAAR_NOT_LINKED"}, flags)
	})

	t.Run("name and dob mismatch floor at zero", func(t *testing.T) {
		score, flags := evaluatePAN(&PANResult{
			Valid:         true,
			NameMatch:     boolPtr(false),
			DOBMatch:      boolPtr(false),
			AadhaarLinked: boolPtr(false),
		})
		assert.Equal(t, 0.0, score)
		assert.Len(t, flags, 3)
	})
}

func TestEvaluateUAN(t *testing.T) {
	t.Run("fresher needs no result", func(t *testing.T) {
		score, flags := evaluateUAN(nil, 0)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("missing junior", func(t *testing.T) {
		score, flags := evaluateUAN(nil, 2)
		assert.Equal(t, 50.0, score)
		assert.Equal(t, []string{"UAN_NOT_PROVIDED_JUNIOR"}, flags)
	})

	t.Run("missing senior", func(t *testing.T) {
		score, flags := evaluateUAN(nil, 3)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"UAN_NOT_PROVIDED_SENIOR"}, flags)
	})

	t.Run("invalid", func(t *testing.T) {
		score, flags := evaluateUAN(&EmploymentResult{Valid: false}, 5)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"UAN_INVALID"}, flags)
	})

	t.Run("analyzer verdict carries through", func(t *testing.T) {
		r := &EmploymentResult{
			Valid: true,
			Analysis: employment.Analysis{
				Status: employment.StatusPartial,
				Score:  70,
				Flags:  []string{"OVERLAPPING_EMPLOYMENT"},
			},
		}
		score, flags := evaluateUAN(r, 5)
		assert.Equal(t, 70.0, score)
		assert.Equal(t, []string{"OVERLAPPING_EMPLOYMENT"}, flags)
	})
}

func TestEvaluateFace(t *testing.T) {
	tests := []struct {
		name      string
		result    *FaceResult
		wantScore float64
		wantFlags []string
	}{
		{"missing", nil, 0, []string{"FACE_NOT_VERIFIED"}},
		{"mismatch", &FaceResult{Decision: FaceMismatch, Confidence: 99, LivenessPassed: true}, 0, []string{"FACE_MISMATCH"}},
		{"reference pending", &FaceResult{Decision: FacePendingReference}, 0, []string{"FACE_REFERENCE_PENDING"}},
		{"provider error", &FaceResult{Decision: FaceError}, 0, []string{"FACE_VERIFICATION_ERROR"}},
		{"low confidence", &FaceResult{Decision: FaceLowConfidence, Confidence: 55, LivenessPassed: true}, 60, []string{"FACE_LOW_CONFIDENCE_55%"}},
		{"moderate confidence", &FaceResult{Decision: FaceMatch, Confidence: 80, LivenessPassed: true}, 85, []string{"FACE_MODERATE_CONFIDENCE_80%"}},
		{"liveness failed", &FaceResult{Decision: FaceMatch, Confidence: 95, LivenessPassed: false}, 70, []string{"LIVENESS_FAILED"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, flags := evaluateFace(tt.result)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func TestEvaluateDocuments(t *testing.T) {
	t.Run("none uploaded", func(t *testing.T) {
		score, flags := evaluateDocuments(nil, 5)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, []string{"NO_DOCUMENTS_UPLOADED"}, flags)
	})

	t.Run("missing categories", func(t *testing.T) {
		docs := []DocumentResult{
			{DocumentType: "other", LegitimacyScore: 95, Status: DocumentLegitimate},
		}
		score, flags := evaluateDocuments(docs, 5)
		// 100 - 50 (education) - 30 (experience)
		assert.Equal(t, 20.0, score)
		assert.ElementsMatch(t, []string{"MISSING_EDUCATION_DOCUMENTS", "MISSING_EXPERIENCE_DOCUMENTS"}, flags)
	})

	t.Run("fresher owes no experience documents", func(t *testing.T) {
		docs := []DocumentResult{
			{DocumentType: "education", LegitimacyScore: 95, Status: DocumentLegitimate},
		}
		score, flags := evaluateDocuments(docs, 0)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("payslip counts as experience proof", func(t *testing.T) {
		docs := []DocumentResult{
			{DocumentType: "education", LegitimacyScore: 95, Status: DocumentLegitimate},
			{DocumentType: "payslip", LegitimacyScore: 95, Status: DocumentLegitimate},
		}
		_, flags := evaluateDocuments(docs, 5)
		assert.NotContains(t, flags, "MISSING_EXPERIENCE_DOCUMENTS")
	})

	t.Run("average legitimacy bands", func(t *testing.T) {
		band := func(legitimacy int) (float64, []string) {
			return evaluateDocuments([]DocumentResult{
				{DocumentType: "education", LegitimacyScore: legitimacy, Status: DocumentLegitimate},
			}, 0)
		}

		score, flags := band(55)
		assert.Equal(t, 60.0, score)
		assert.Equal(t, []string{"DOCUMENTS_LOW_LEGITIMACY_55%"}, flags)

		score, flags = band(70)
		assert.Equal(t, 80.0, score)
		assert.Equal(t, []string{"DOCUMENTS_MODERATE_LEGITIMACY_70%"}, flags)

		score, flags = band(80)
		assert.Equal(t, 90.0, score)
		assert.Equal(t, []string{"DOCUMENTS_ACCEPTABLE_LEGITIMACY_80%"}, flags)

		score, flags = band(90)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("per-document verdicts", func(t *testing.T) {
		docs := []DocumentResult{
			{DocumentType: "education", LegitimacyScore: 90, Status: DocumentSuspicious},
			{DocumentType: "payslip", LegitimacyScore: 90, Status: DocumentReviewRequired},
		}
		score, flags := evaluateDocuments(docs, 5)
		// 100 - 15 - 5
		assert.Equal(t, 80.0, score)
		assert.Contains(t, flags, "SUSPICIOUS_DOC_education")
		assert.Contains(t, flags, "REVIEW_DOC_payslip")
	})
}

func TestEvaluateCrossMatch(t *testing.T) {
	t.Run("consistent sources", func(t *testing.T) {
		score, flags := evaluateCrossMatch(cleanData())
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("government dob mismatch", func(t *testing.T) {
		data := cleanData()
		data.PAN.DOB = "1992-04-19"
		score, flags := evaluateCrossMatch(data)
		assert.Equal(t, 50.0, score)
		assert.Equal(t, []string{"AADHAAR_PAN_DOB_MISMATCH"}, flags)
	})

	t.Run("divergent government names", func(t *testing.T) {
		data := cleanData()
		data.PAN.FullName = "SURESH VERMA"
		score, flags := evaluateCrossMatch(data)
		assert.Equal(t, 70.0, score)
		require.Len(t, flags, 1)
		assert.Contains(t, flags[0], "AADHAAR_PAN_NAME_DIFF_")
	})

	t.Run("employment name tolerance is looser", func(t *testing.T) {
		data := cleanData()
		// 88% similar: below the 90% government bar, above the 80%
		// employment bar
		data.UAN.Name = "RAJESH K SHARMA"
		score, flags := evaluateCrossMatch(data)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("absent sources check nothing", func(t *testing.T) {
		score, flags := evaluateCrossMatch(Data{})
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})
}
