package models

import "github.com/google/uuid"

// CandidateProfile is the declared identity a verification session is
// opened for. Declared fields are what providers' verified data is compared
// against; they are never treated as truth.
type CandidateProfile struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	Phone           string    `json:"phone,omitempty"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	Address         string    `json:"address,omitempty"`
	ExperienceYears int       `json:"experience_years" validate:"gte=0"`
}

// IsFresher reports whether the candidate claims no professional
// experience. Freshers skip employment verification entirely.
func (c CandidateProfile) IsFresher() bool {
	return c.ExperienceYears < 1
}
