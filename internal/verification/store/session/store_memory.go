// Package session provides storage for verification sessions. The in-memory
// implementation backs token resolution in tests and single-process
// deployments; durable storage is the embedding application's concern.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"clearhire/internal/verification/models"
	"clearhire/pkg/platform/sentinel"
)

// InMemorySessionStore implements the verification service's Store over a
// process-local map. Sessions are indexed by ID and by token. All access is
// serialized by the mutex, which also makes step compare-and-set transitions
// race-free within one process.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
	byToken  map[string]uuid.UUID
}

// New creates an empty in-memory session store.
func New() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[uuid.UUID]*models.Session),
		byToken:  make(map[string]uuid.UUID),
	}
}

// Save inserts or replaces a session. A token may only ever map to one
// session; colliding tokens return sentinel.ErrConflict.
func (s *InMemorySessionStore) Save(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byToken[sess.Token]; ok && existingID != sess.ID {
		return sentinel.ErrConflict
	}
	s.sessions[sess.ID] = sess
	s.byToken[sess.Token] = sess.ID
	return nil
}

// FindByID returns the session with the given ID, or sentinel.ErrNotFound.
func (s *InMemorySessionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return sess, nil
}

// FindByToken returns the session behind a verification token, or
// sentinel.ErrNotFound. Expiry is a service concern, not a storage fact.
func (s *InMemorySessionStore) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.sessions[id], nil
}

// FindByCandidate returns the candidate's session, or sentinel.ErrNotFound.
// One candidate has at most one session.
func (s *InMemorySessionStore) FindByCandidate(ctx context.Context, candidateID uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.CandidateID == candidateID {
			return sess, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Update applies fn to the session with the given ID while holding the
// store lock, making read-check-write transitions (like the step PENDING
// compare-and-set) atomic within the process. fn errors roll nothing back;
// fn must leave the session unchanged when it fails.
func (s *InMemorySessionStore) Update(ctx context.Context, id uuid.UUID, fn func(*models.Session) error) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// UpdateByToken is Update keyed by the candidate token.
func (s *InMemorySessionStore) UpdateByToken(ctx context.Context, token string, fn func(*models.Session) error) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	sess := s.sessions[id]
	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session and its token mapping. Steps live inside the
// aggregate, so they are removed with it.
func (s *InMemorySessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byToken, sess.Token)
	delete(s.sessions, id)
	return nil
}
