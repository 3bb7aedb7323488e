package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SessionBackend is a backend's transactional edit-session API.
type SessionBackend interface {
	// Open creates a new session and returns its identifier.
	Open(ctx context.Context) (string, error)
	// Commit makes the session's mutations visible.
	Commit(ctx context.Context, id string) error
	// Discard throws the session away along with its mutations.
	Discard(ctx context.Context, id string) error
}

// SessionState is the lifecycle state of a Session.
type SessionState string

const (
	SessionClosed    SessionState = "closed"
	SessionOpen      SessionState = "open"
	SessionCommitted SessionState = "committed"
	SessionDiscarded SessionState = "discarded"
	// SessionAbandoned follows a failed commit: commit was invoked, so no
	// discard is sent, and the backend expires the session on its own.
	SessionAbandoned SessionState = "abandoned"
)

// Session is an exclusively owned edit session. Exactly one of Commit or
// Discard reaches the backend per opened session.
type Session struct {
	backend SessionBackend
	logger  *zap.Logger
	id      string
	state   SessionState
}

// OpenSession opens a new session on backend.
func OpenSession(ctx context.Context, backend SessionBackend, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	id, err := backend.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open edit session: %w", err)
	}
	logger.Debug("Edit session opened", zap.String("session_id", id))
	return &Session{backend: backend, logger: logger, id: id, state: SessionOpen}, nil
}

// ID returns the backend's session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Commit commits an open session.
func (s *Session) Commit(ctx context.Context) error {
	if s.state != SessionOpen {
		return fmt.Errorf("cannot commit edit session %s in state %s", s.id, s.state)
	}
	if err := s.backend.Commit(ctx, s.id); err != nil {
		s.state = SessionAbandoned
		return &CommitFailure{SessionID: s.id, Err: err}
	}
	s.state = SessionCommitted
	s.logger.Debug("Edit session committed", zap.String("session_id", s.id))
	return nil
}

// Discard discards an open session. It is best-effort: a failing discard is
// logged and swallowed so it never masks the error that caused the rollback.
func (s *Session) Discard(ctx context.Context) {
	if s.state != SessionOpen {
		return
	}
	s.state = SessionDiscarded
	// The caller's context may already be cancelled; the discard must still go out.
	if err := s.backend.Discard(context.WithoutCancel(ctx), s.id); err != nil {
		s.logger.Warn("Failed to discard edit session", zap.String("session_id", s.id), zap.Error(err))
		return
	}
	s.logger.Debug("Edit session discarded", zap.String("session_id", s.id))
}

// Close discards the session if neither Commit nor Discard ran. Defer it
// right after OpenSession.
func (s *Session) Close(ctx context.Context) {
	s.Discard(ctx)
}

// WithSession opens a session, runs fn inside it and guarantees release on
// every exit path, panics included. The session is committed only when commit
// is true and fn succeeded; otherwise it is discarded.
func WithSession(ctx context.Context, backend SessionBackend, logger *zap.Logger, commit bool, fn func(ctx context.Context, sessionID string) error) error {
	s, err := OpenSession(ctx, backend, logger)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if err := fn(ctx, s.ID()); err != nil {
		s.Discard(ctx)
		return err
	}
	if !commit {
		s.Discard(ctx)
		return nil
	}
	return s.Commit(ctx)
}
