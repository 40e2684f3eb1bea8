// Package models holds the verification session aggregate: the session and
// step state machines, audit trail entries, and the candidate profile the
// session is opened for.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "clearhire/pkg/domain-errors"
)

// StepType identifies one verification step. Exactly one step per type may
// exist within a session.
type StepType string

const (
	StepPersonalInfo StepType = "PERSONAL_INFO"
	StepFaceLiveness StepType = "FACE_LIVENESS"
	StepAadhaar      StepType = "AADHAAR"
	StepPAN          StepType = "PAN"
	StepUAN          StepType = "UAN"
	StepEducation    StepType = "EDUCATION"
	StepExperience   StepType = "EXPERIENCE"
)

// StepOrder is the presentation order candidates walk through. Also drives
// NextPendingStep.
var StepOrder = []StepType{
	StepPersonalInfo,
	StepFaceLiveness,
	StepAadhaar,
	StepPAN,
	StepUAN,
	StepEducation,
	StepExperience,
}

// MandatoryStepTypes must all reach COMPLETED before a session can be
// submitted. The remaining types are conditional on the candidate profile.
var MandatoryStepTypes = []StepType{
	StepPersonalInfo,
	StepFaceLiveness,
	StepAadhaar,
	StepPAN,
}

var mandatorySet = func() map[StepType]struct{} {
	m := make(map[StepType]struct{}, len(MandatoryStepTypes))
	for _, t := range MandatoryStepTypes {
		m[t] = struct{}{}
	}
	return m
}()

var knownStepTypes = func() map[StepType]struct{} {
	m := make(map[StepType]struct{}, len(StepOrder))
	for _, t := range StepOrder {
		m[t] = struct{}{}
	}
	return m
}()

// ParseStepType validates a wire value against the closed step type set.
func ParseStepType(s string) (StepType, error) {
	t := StepType(s)
	if _, ok := knownStepTypes[t]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid step type: %s", s)
	}
	return t, nil
}

// IsMandatoryType reports whether steps of this type are mandatory.
func IsMandatoryType(t StepType) bool {
	_, ok := mandatorySet[t]
	return ok
}

// StepStatus is the step sub-state machine: PENDING is the only initial
// state, and every other status is terminal.
type StepStatus string

const (
	StepPending   StepStatus = "PENDING"
	StepCompleted StepStatus = "COMPLETED"
	StepFailed    StepStatus = "FAILED"
	StepSkipped   StepStatus = "SKIPPED"
)

// IsTerminal reports whether the status is final. Terminal steps are
// immutable: transition methods on a terminal step are no-ops.
func (s StepStatus) IsTerminal() bool {
	return s == StepCompleted || s == StepFailed || s == StepSkipped
}

// Step is one verification step within a session.
//
// Invariants:
//   - Status starts PENDING and is mutated exactly once into a terminal state
//   - IsMandatory is fixed by Type at construction
//   - SKIPPED is only reachable for non-mandatory steps
//   - AuditTrail is append-only and never carries raw identifiers
type Step struct {
	ID                uuid.UUID    `json:"id"`
	Type              StepType     `json:"step_type"`
	IsMandatory       bool         `json:"is_mandatory"`
	Status            StepStatus   `json:"status"`
	ScoreContribution *int         `json:"score_contribution,omitempty"`
	Flags             []string     `json:"flags,omitempty"`
	VerifiedAt        *time.Time   `json:"verified_at,omitempty"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
	AuditTrail        []AuditEntry `json:"audit_trail"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NewStep creates a PENDING step of the given type.
func NewStep(t StepType, now time.Time) *Step {
	return &Step{
		ID:          uuid.New(),
		Type:        t,
		IsMandatory: IsMandatoryType(t),
		Status:      StepPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// StepOutcome carries the data recorded when a step reaches a terminal
// state. Details are sanitized before entering the audit trail.
type StepOutcome struct {
	ScoreContribution *int
	Flags             []string
	Details           map[string]any
	Actor             string
}

// Complete transitions the step to COMPLETED. The transition is guarded on
// the current status being PENDING: completing an already-terminal step is a
// no-op that returns the existing terminal state, so duplicate submissions
// never re-derive a different outcome.
func (s *Step) Complete(outcome StepOutcome, now time.Time) (StepStatus, bool) {
	return s.terminalize(StepCompleted, AuditActionVerified, outcome, now)
}

// Fail transitions the step to FAILED under the same PENDING guard as
// Complete.
func (s *Step) Fail(outcome StepOutcome, now time.Time) (StepStatus, bool) {
	return s.terminalize(StepFailed, AuditActionFailed, outcome, now)
}

// Skip transitions a non-mandatory step to SKIPPED. Skipping a mandatory
// step is a state conflict carrying the violating step type. Skipping an
// already-terminal step is a no-op.
func (s *Step) Skip(actor string, now time.Time) (StepStatus, bool, error) {
	if s.IsMandatory {
		return s.Status, false, dErrors.Newf(dErrors.CodeStateConflict, "cannot skip mandatory step %s", s.Type).
			WithMeta(dErrors.MetaBlockingSteps, []StepType{s.Type})
	}
	status, applied := s.terminalize(StepSkipped, AuditActionSkipped, StepOutcome{Actor: actor}, now)
	return status, applied, nil
}

// terminalize applies the compare-and-set transition keyed on
// "current status == PENDING".
func (s *Step) terminalize(target StepStatus, action string, outcome StepOutcome, now time.Time) (StepStatus, bool) {
	if s.Status != StepPending {
		return s.Status, false
	}

	s.Status = target
	s.CompletedAt = &now
	s.UpdatedAt = now
	if outcome.ScoreContribution != nil {
		s.ScoreContribution = outcome.ScoreContribution
	}
	if len(outcome.Flags) > 0 {
		s.Flags = append(s.Flags, outcome.Flags...)
	}
	if target == StepCompleted || target == StepFailed {
		s.VerifiedAt = &now
	}

	actor := outcome.Actor
	if actor == "" {
		actor = AuditActorSystem
	}
	s.appendAudit(action, actor, outcome.Details, now)

	return s.Status, true
}

// appendAudit appends a sanitized entry to the step's audit trail.
func (s *Step) appendAudit(action, actor string, details map[string]any, now time.Time) {
	s.AuditTrail = append(s.AuditTrail, NewAuditEntry(action, actor, details, now))
}
