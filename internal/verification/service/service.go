// Package service orchestrates the verification session lifecycle: opening
// sessions, resolving candidate tokens, recording step outcomes, and
// finalizing submission. It owns no business rules beyond sequencing; the
// state machines live in the models package and storage behind Store.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"clearhire/internal/verification/models"
	dErrors "clearhire/pkg/domain-errors"
	"clearhire/pkg/platform/sentinel"
	"clearhire/pkg/validate"
)

// Store abstracts session persistence. Update and UpdateByToken run fn
// atomically with respect to other updates of the same session, which is
// what makes the step PENDING compare-and-set safe under concurrent
// completions. The core ships an in-memory implementation; anything durable
// is the embedding application's concern.
type Store interface {
	Save(ctx context.Context, sess *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) (*models.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*models.Session) error) (*models.Session, error)
	UpdateByToken(ctx context.Context, token string, fn func(*models.Session) error) (*models.Session, error)
}

// Service coordinates session and step transitions over a Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires the verification service. The logger may be nil.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Start opens a verification session for a candidate: mandatory steps plus
// the conditional steps implied by the profile (EDUCATION always; UAN and
// EXPERIENCE only when experience is claimed). A candidate can have only one
// session.
func (s *Service) Start(ctx context.Context, profile models.CandidateProfile, now time.Time) (*models.Session, error) {
	if err := validate.Struct(profile); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByCandidate(ctx, profile.ID); err == nil {
		return nil, dErrors.New(dErrors.CodeStateConflict, "candidate already has a verification session")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "candidate lookup failed", err)
	}

	sess, err := models.NewSession(profile.ID, now)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create session", err)
	}

	for _, t := range models.MandatoryStepTypes {
		if _, err := sess.AddStep(t, now); err != nil {
			return nil, err
		}
	}
	if _, err := sess.AddStep(models.StepEducation, now); err != nil {
		return nil, err
	}
	if !profile.IsFresher() {
		for _, t := range []models.StepType{models.StepUAN, models.StepExperience} {
			if _, err := sess.AddStep(t, now); err != nil {
				return nil, err
			}
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save session", err)
	}

	s.log(ctx, "verification session started",
		"session_id", sess.ID, "candidate_id", profile.ID, "steps", len(sess.Steps))

	return sess, nil
}

// MarkLinkSent records that the verification link went out to the candidate.
func (s *Service) MarkLinkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := s.store.Update(ctx, id, func(sess *models.Session) error {
		return sess.MarkLinkSent(now)
	})
	return s.translate(err)
}

// Resolve looks up a session by its candidate token and applies the access
// side effects: self-healing an empty step set and moving LINK_SENT to
// IN_PROGRESS on first access.
//
// It fails with CodeNotFound when no session matches, CodeExpired when the
// token is past expiry (the session is permanently inaccessible via that
// token from then on), and CodeStateConflict when the session was already
// submitted or scored.
func (s *Service) Resolve(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	sess, err := s.store.UpdateByToken(ctx, token, func(sess *models.Session) error {
		return applyAccess(sess, now)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return sess, nil
}

// applyAccess enforces token access rules and performs the access side
// effects. Runs inside the store's atomic update.
func applyAccess(sess *models.Session, now time.Time) error {
	if sess.IsExpired(now) {
		return dErrors.New(dErrors.CodeExpired, "verification link has expired")
	}
	if sess.Status == models.SessionSubmitted || sess.Status == models.SessionScored {
		return dErrors.New(dErrors.CodeStateConflict, "verification has already been submitted")
	}
	sess.EnsureMandatorySteps(now)
	sess.BeginProgress(now)
	return nil
}

// Progress returns the candidate-facing view of a session.
func (s *Service) Progress(ctx context.Context, token string, now time.Time) (models.Progress, error) {
	sess, err := s.Resolve(ctx, token, now)
	if err != nil {
		return models.Progress{}, err
	}
	return sess.Snapshot(), nil
}

// CompleteStep records a successful step outcome. Completing an
// already-terminal step is a no-op returning the existing terminal status.
func (s *Service) CompleteStep(ctx context.Context, token string, stepType models.StepType, outcome models.StepOutcome, now time.Time) (models.StepStatus, error) {
	return s.terminalizeStep(ctx, token, stepType, func(step *models.Step) (models.StepStatus, bool, error) {
		status, applied := step.Complete(outcome, now)
		return status, applied, nil
	}, now)
}

// FailStep records a failed step outcome under the same guard as
// CompleteStep.
func (s *Service) FailStep(ctx context.Context, token string, stepType models.StepType, outcome models.StepOutcome, now time.Time) (models.StepStatus, error) {
	return s.terminalizeStep(ctx, token, stepType, func(step *models.Step) (models.StepStatus, bool, error) {
		status, applied := step.Fail(outcome, now)
		return status, applied, nil
	}, now)
}

// SkipStep skips an optional step. Skipping a mandatory step is a state
// conflict.
func (s *Service) SkipStep(ctx context.Context, token string, stepType models.StepType, actor string, now time.Time) (models.StepStatus, error) {
	return s.terminalizeStep(ctx, token, stepType, func(step *models.Step) (models.StepStatus, bool, error) {
		return step.Skip(actor, now)
	}, now)
}

func (s *Service) terminalizeStep(ctx context.Context, token string, stepType models.StepType, apply func(*models.Step) (models.StepStatus, bool, error), now time.Time) (models.StepStatus, error) {
	var status models.StepStatus
	var applied bool

	sess, err := s.store.UpdateByToken(ctx, token, func(sess *models.Session) error {
		if err := applyAccess(sess, now); err != nil {
			return err
		}
		step, ok := sess.StepByType(stepType)
		if !ok {
			return dErrors.Newf(dErrors.CodeNotFound, "step %s not found in this verification", stepType)
		}
		var err error
		status, applied, err = apply(step)
		return err
	})
	if err != nil {
		return "", s.translate(err)
	}

	if applied {
		s.log(ctx, "verification step finalized",
			"session_id", sess.ID, "step_type", stepType, "status", status)
	}

	return status, nil
}

// Submit finalizes the session. Fails with a state conflict listing the
// blocking mandatory step types when any is not COMPLETED, leaving the
// session unchanged.
func (s *Service) Submit(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	sess, err := s.store.UpdateByToken(ctx, token, func(sess *models.Session) error {
		if err := applyAccess(sess, now); err != nil {
			return err
		}
		return sess.Submit(now)
	})
	if err != nil {
		return nil, s.translate(err)
	}

	s.log(ctx, "verification submitted", "session_id", sess.ID)

	return sess, nil
}

// AttachResult stores a calculated trust score against a submitted session
// and transitions it to SCORED. Serializing calculations per session is the
// caller's responsibility; the session refuses a second attach regardless.
func (s *Service) AttachResult(ctx context.Context, id uuid.UUID, record models.ScoreRecord, now time.Time) error {
	_, err := s.store.Update(ctx, id, func(sess *models.Session) error {
		return sess.AttachScore(record, now)
	})
	if err != nil {
		return s.translate(err)
	}

	s.log(ctx, "trust score attached",
		"session_id", id, "score", record.Score, "status", record.Status)

	return nil
}

// translate maps store sentinel errors onto coded domain errors and passes
// domain errors through untouched.
func (s *Service) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "verification not found; the link may be invalid")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeStateConflict, "verification was modified concurrently")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(dErrors.CodeInternal, "session store failed", err)
	}
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}
