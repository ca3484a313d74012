package usecase

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/utils"
)

// SessionStore is the slice of the session repository the guard needs.
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	InvalidateUserSessions(ctx context.Context, userID string) (int64, error)
	GetActiveSession(ctx context.Context, userID string) (*model.Session, error)
	EndSession(ctx context.Context, token string) error
}

// SessionStatus is the advisory freshness report for the boundary. The
// check never writes; a stale session stays active in storage until the
// next login supersedes it or the store TTL removes it.
type SessionStatus struct {
	IsActive bool           `json:"isActive"`
	Expired  bool           `json:"expired,omitempty"`
	Session  *SessionDetail `json:"session,omitempty"`
}

type SessionDetail struct {
	IPAddress         string    `json:"ipAddress"`
	LastActivity      time.Time `json:"lastActivity"`
	TimeSinceActivity string    `json:"timeSinceActivity"`
}

// RegistrationResult reports the new token plus how many prior sessions
// the login superseded, for observability.
type RegistrationResult struct {
	SessionToken        string `json:"sessionToken"`
	InvalidatedSessions int64  `json:"invalidatedSessions"`
}

// SessionGuard enforces at most one active login session per student.
type SessionGuard struct {
	Sessions        SessionStore
	InactivityLimit time.Duration

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

func (g *SessionGuard) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// RegisterSession invalidates every prior active session of the user and
// creates the replacement. Failures surface as hard errors: masking a
// failed invalidation could leave two sessions active.
func (g *SessionGuard) RegisterSession(ctx context.Context, userID, requestOrigin, userAgent string) (*RegistrationResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID: %w", ErrValidation)
	}

	invalidated, err := g.Sessions.InvalidateUserSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to supersede previous sessions: %w", err)
	}
	if invalidated > 0 {
		utils.SessionsSuperseded.Add(float64(invalidated))
	}

	now := g.now()
	session := &model.Session{
		SessionToken:   utils.GenerateSessionToken(userID),
		UserID:         userID,
		IPAddress:      requestOrigin,
		UserAgent:      userAgent,
		DeviceInfo:     utils.DescribeDevice(userAgent),
		IsActive:       true,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := g.Sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return &RegistrationResult{
		SessionToken:        session.SessionToken,
		InvalidatedSessions: invalidated,
	}, nil
}

// CheckActive reports whether the user's most recent session is still
// fresh. Only students are session-guarded; professors and the
// superadmin short-circuit to active without a storage read.
func (g *SessionGuard) CheckActive(ctx context.Context, userID string, role model.Role) (*SessionStatus, error) {
	switch role {
	case model.RoleAluno:
	case model.RoleProfessor, model.RoleSuperadmin:
		return &SessionStatus{IsActive: true}, nil
	default:
		return nil, fmt.Errorf("role %q: %w", role, ErrValidation)
	}

	session, err := g.Sessions.GetActiveSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	if session == nil {
		return &SessionStatus{IsActive: false}, nil
	}

	elapsed := g.now().Sub(session.LastActivityAt)
	if elapsed > g.InactivityLimit {
		return &SessionStatus{IsActive: false, Expired: true}, nil
	}

	return &SessionStatus{
		IsActive: true,
		Session: &SessionDetail{
			IPAddress:         session.IPAddress,
			LastActivity:      session.LastActivityAt,
			TimeSinceActivity: elapsed.Round(time.Second).String(),
		},
	}, nil
}

// Logout deactivates the session identified by token.
func (g *SessionGuard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session token: %w", ErrValidation)
	}
	return g.Sessions.EndSession(ctx, token)
}
