package models

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	dErrors "clearhire/pkg/domain-errors"
)

// TokenTTL is how long a verification link stays usable after creation.
const TokenTTL = 7 * 24 * time.Hour

// SessionStatus is the session state machine. Transitions are strictly
// forward; no state is revisited.
type SessionStatus string

const (
	SessionCreated    SessionStatus = "CREATED"
	SessionLinkSent   SessionStatus = "LINK_SENT"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionSubmitted  SessionStatus = "SUBMITTED"
	SessionScored     SessionStatus = "SCORED"
)

// ScoreRecord is the session's stored view of a trust score calculation.
// The session never holds the calculator's full result type; the caller
// decides what to persist.
type ScoreRecord struct {
	Score        float64        `json:"score"`
	Status       string         `json:"status"`
	CalculatedAt time.Time      `json:"calculated_at"`
	Details      map[string]any `json:"details,omitempty"`
}

// Session is the aggregate root for one candidate's verification lifecycle.
//
// Invariants:
//   - Status moves CREATED -> LINK_SENT -> IN_PROGRESS -> SUBMITTED -> SCORED
//     only forward
//   - At most one Step per StepType
//   - TokenExpiresAt is fixed at creation time + TokenTTL
//   - Steps are never deleted except with the owning session
type Session struct {
	ID             uuid.UUID     `json:"id"`
	CandidateID    uuid.UUID     `json:"candidate_id"`
	Token          string        `json:"-"`
	TokenExpiresAt time.Time     `json:"token_expires_at"`
	Status         SessionStatus `json:"status"`
	SubmittedAt    *time.Time    `json:"submitted_at,omitempty"`
	Steps          []*Step       `json:"steps"`
	Score          *ScoreRecord  `json:"score,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewSession creates a CREATED session with a fresh opaque token and no
// steps. Step creation is the service's concern so conditional steps can be
// derived from the candidate profile.
func NewSession(candidateID uuid.UUID, now time.Time) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		Token:          token,
		TokenExpiresAt: now.Add(TokenTTL),
		Status:         SessionCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// newToken returns a 64-character URL-safe random token.
func newToken() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// IsExpired reports whether the token is past expiry as of now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.TokenExpiresAt)
}

// CanBeModified reports whether the session still accepts step updates.
func (s *Session) CanBeModified(now time.Time) bool {
	return !s.IsExpired(now) &&
		s.Status != SessionSubmitted && s.Status != SessionScored
}

// MarkLinkSent transitions CREATED -> LINK_SENT.
func (s *Session) MarkLinkSent(now time.Time) error {
	if s.Status != SessionCreated {
		return dErrors.Newf(dErrors.CodeStateConflict, "cannot mark link sent from status %s", s.Status)
	}
	s.Status = SessionLinkSent
	s.UpdatedAt = now
	return nil
}

// BeginProgress transitions LINK_SENT -> IN_PROGRESS on first candidate
// access. Calling it in any other state is a no-op; resolution is
// idempotent once the candidate is in progress.
func (s *Session) BeginProgress(now time.Time) bool {
	if s.Status != SessionLinkSent {
		return false
	}
	s.Status = SessionInProgress
	s.UpdatedAt = now
	return true
}

// AddStep appends a step, enforcing the one-step-per-type invariant.
func (s *Session) AddStep(t StepType, now time.Time) (*Step, error) {
	if _, ok := s.StepByType(t); ok {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "step %s already exists in session", t)
	}
	step := NewStep(t, now)
	s.Steps = append(s.Steps, step)
	s.UpdatedAt = now
	return step, nil
}

// StepByType returns the session's step of the given type.
func (s *Session) StepByType(t StepType) (*Step, bool) {
	for _, step := range s.Steps {
		if step.Type == t {
			return step, true
		}
	}
	return nil, false
}

// EnsureMandatorySteps self-heals a session that has zero steps while in an
// initial state, (re)creating the mandatory step set in PENDING. Returns
// true when healing ran.
func (s *Session) EnsureMandatorySteps(now time.Time) bool {
	if len(s.Steps) > 0 {
		return false
	}
	switch s.Status {
	case SessionCreated, SessionLinkSent, SessionInProgress:
	default:
		return false
	}
	for _, t := range MandatoryStepTypes {
		s.Steps = append(s.Steps, NewStep(t, now))
	}
	s.UpdatedAt = now
	return true
}

// NextPendingStep returns the first PENDING step in presentation order, or
// nil when none remain.
func (s *Session) NextPendingStep() *StepType {
	for _, t := range StepOrder {
		if step, ok := s.StepByType(t); ok && step.Status == StepPending {
			next := t
			return &next
		}
	}
	return nil
}

// CanSubmit reports whether every mandatory step is COMPLETED. Mandatory
// steps cannot be skipped by contract, so a mandatory step in PENDING or
// FAILED blocks submission.
func (s *Session) CanSubmit() bool {
	return len(s.BlockingSteps()) == 0
}

// BlockingSteps lists the mandatory step types not yet COMPLETED, in
// presentation order.
func (s *Session) BlockingSteps() []StepType {
	var blocking []StepType
	for _, t := range MandatoryStepTypes {
		step, ok := s.StepByType(t)
		if !ok || step.Status != StepCompleted {
			blocking = append(blocking, t)
		}
	}
	return blocking
}

// Submit transitions the session to SUBMITTED and stamps SubmittedAt. When
// mandatory steps are incomplete it fails with a state conflict enumerating
// the blocking step types, leaving the session unchanged.
func (s *Session) Submit(now time.Time) error {
	if s.Status == SessionSubmitted || s.Status == SessionScored {
		return dErrors.New(dErrors.CodeStateConflict, "verification has already been submitted")
	}
	if blocking := s.BlockingSteps(); len(blocking) > 0 {
		return dErrors.New(dErrors.CodeStateConflict, "cannot submit: mandatory steps are pending").
			WithMeta(dErrors.MetaBlockingSteps, blocking)
	}
	s.Status = SessionSubmitted
	s.SubmittedAt = &now
	s.UpdatedAt = now
	return nil
}

// AttachScore stores a calculated trust score and transitions
// SUBMITTED -> SCORED. The calculator itself never performs this transition.
func (s *Session) AttachScore(record ScoreRecord, now time.Time) error {
	if s.Status != SessionSubmitted {
		return dErrors.Newf(dErrors.CodeStateConflict, "cannot attach score in status %s", s.Status)
	}
	rec := record
	s.Score = &rec
	s.Status = SessionScored
	s.UpdatedAt = now
	return nil
}

// Progress is the presentation-layer snapshot of a session: step states,
// the next pending step, and whether submission is possible.
type Progress struct {
	Status         SessionStatus `json:"status"`
	TokenExpiresAt time.Time     `json:"token_expires_at"`
	Steps          []*Step       `json:"steps"`
	NextStep       *StepType     `json:"next_step,omitempty"`
	CanSubmit      bool          `json:"can_submit"`
}

// Snapshot builds the Progress view of the session.
func (s *Session) Snapshot() Progress {
	return Progress{
		Status:         s.Status,
		TokenExpiresAt: s.TokenExpiresAt,
		Steps:          s.Steps,
		NextStep:       s.NextPendingStep(),
		CanSubmit:      s.CanSubmit(),
	}
}
