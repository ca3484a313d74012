package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"codearena/model"
)

// fakeSessionStore mimics the repository's supersession semantics in
// memory.
type fakeSessionStore struct {
	sessions      []*model.Session
	invalidateErr error
	createErr     error
	lookupErr     error
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, session *model.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionStore) InvalidateUserSessions(ctx context.Context, userID string) (int64, error) {
	if f.invalidateErr != nil {
		return 0, f.invalidateErr
	}
	var count int64
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			s.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeSessionStore) GetActiveSession(ctx context.Context, userID string) (*model.Session, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var latest *model.Session
	for _, s := range f.sessions {
		if s.UserID != userID || !s.IsActive {
			continue
		}
		if latest == nil || s.LastActivityAt.After(latest.LastActivityAt) {
			latest = s
		}
	}
	return latest, nil
}

func (f *fakeSessionStore) EndSession(ctx context.Context, token string) error {
	for _, s := range f.sessions {
		if s.SessionToken == token {
			s.IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeSessionStore) activeCount(userID string) int {
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			n++
		}
	}
	return n
}

func TestRegisterSessionSupersedesPrevious(t *testing.T) {
	store := &fakeSessionStore{}
	guard := &SessionGuard{Sessions: store, InactivityLimit: 30 * time.Minute}

	first, err := guard.RegisterSession(context.Background(), "s1", "10.0.0.5", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("RegisterSession() error = %v", err)
	}
	if first.InvalidatedSessions != 0 {
		t.Errorf("first login invalidatedSessions = %d, want 0", first.InvalidatedSessions)
	}

	second, err := guard.RegisterSession(context.Background(), "s1", "10.0.0.6", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("RegisterSession() error = %v", err)
	}
	if second.InvalidatedSessions != 1 {
		t.Errorf("second login invalidatedSessions = %d, want 1", second.InvalidatedSessions)
	}
	if second.SessionToken == first.SessionToken {
		t.Error("second login reused the first session token")
	}

	if got := store.activeCount("s1"); got != 1 {
		t.Errorf("active sessions after re-login = %d, want exactly 1", got)
	}
	active, _ := store.GetActiveSession(context.Background(), "s1")
	if active == nil || active.SessionToken != second.SessionToken {
		t.Error("surviving session is not the most recent login")
	}
}

func TestRegisterSessionIsolatedPerUser(t *testing.T) {
	store := &fakeSessionStore{}
	guard := &SessionGuard{Sessions: store, InactivityLimit: 30 * time.Minute}

	if _, err := guard.RegisterSession(context.Background(), "s1", "10.0.0.5", "ua"); err != nil {
		t.Fatalf("RegisterSession(s1) error = %v", err)
	}
	result, err := guard.RegisterSession(context.Background(), "s2", "10.0.0.6", "ua")
	if err != nil {
		t.Fatalf("RegisterSession(s2) error = %v", err)
	}
	if result.InvalidatedSessions != 0 {
		t.Errorf("login of s2 invalidated %d sessions, want 0", result.InvalidatedSessions)
	}
	if store.activeCount("s1") != 1 {
		t.Error("login of s2 disturbed the session of s1")
	}
}

func TestRegisterSessionFailuresAreHard(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeSessionStore
	}{
		{"invalidation failure", &fakeSessionStore{invalidateErr: errors.New("write conflict")}},
		{"creation failure", &fakeSessionStore{createErr: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := &SessionGuard{Sessions: tt.store, InactivityLimit: 30 * time.Minute}
			if _, err := guard.RegisterSession(context.Background(), "s1", "10.0.0.5", "ua"); err == nil {
				t.Fatal("RegisterSession() error = nil, want storage failure surfaced")
			}
		})
	}
}

func TestRegisterSessionRequiresUser(t *testing.T) {
	guard := &SessionGuard{Sessions: &fakeSessionStore{}, InactivityLimit: 30 * time.Minute}
	_, err := guard.RegisterSession(context.Background(), "", "10.0.0.5", "ua")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("RegisterSession(\"\") error = %v, want ErrValidation", err)
	}
}

func TestCheckActiveStalenessBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	limit := 30 * time.Minute

	tests := []struct {
		name         string
		lastActivity time.Time
		wantActive   bool
		wantExpired  bool
	}{
		{
			name:         "just inside the window",
			lastActivity: now.Add(-limit + time.Second),
			wantActive:   true,
		},
		{
			name:         "exactly at the limit",
			lastActivity: now.Add(-limit),
			wantActive:   true,
		},
		{
			name:         "just past the limit",
			lastActivity: now.Add(-limit - time.Second),
			wantActive:   false,
			wantExpired:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeSessionStore{sessions: []*model.Session{{
				SessionToken:   "tok",
				UserID:         "s1",
				IPAddress:      "10.0.0.5",
				IsActive:       true,
				LastActivityAt: tt.lastActivity,
			}}}
			guard := &SessionGuard{
				Sessions:        store,
				InactivityLimit: limit,
				Now:             func() time.Time { return now },
			}

			status, err := guard.CheckActive(context.Background(), "s1", model.RoleAluno)
			if err != nil {
				t.Fatalf("CheckActive() error = %v", err)
			}
			if status.IsActive != tt.wantActive {
				t.Errorf("CheckActive() isActive = %v, want %v", status.IsActive, tt.wantActive)
			}
			if status.Expired != tt.wantExpired {
				t.Errorf("CheckActive() expired = %v, want %v", status.Expired, tt.wantExpired)
			}

			// Advisory check only. The stored session must be untouched.
			if !store.sessions[0].IsActive {
				t.Error("CheckActive() deactivated the stored session")
			}
			if !store.sessions[0].LastActivityAt.Equal(tt.lastActivity) {
				t.Error("CheckActive() advanced last activity")
			}
		})
	}
}

func TestCheckActiveDetail(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	last := now.Add(-5 * time.Minute)
	store := &fakeSessionStore{sessions: []*model.Session{{
		SessionToken:   "tok",
		UserID:         "s1",
		IPAddress:      "192.168.1.42",
		IsActive:       true,
		LastActivityAt: last,
	}}}
	guard := &SessionGuard{
		Sessions:        store,
		InactivityLimit: 30 * time.Minute,
		Now:             func() time.Time { return now },
	}

	status, err := guard.CheckActive(context.Background(), "s1", model.RoleAluno)
	if err != nil {
		t.Fatalf("CheckActive() error = %v", err)
	}
	if status.Session == nil {
		t.Fatal("CheckActive() session detail missing for fresh session")
	}
	if status.Session.IPAddress != "192.168.1.42" {
		t.Errorf("CheckActive() ipAddress = %q, want 192.168.1.42", status.Session.IPAddress)
	}
	if !status.Session.LastActivity.Equal(last) {
		t.Errorf("CheckActive() lastActivity = %v, want %v", status.Session.LastActivity, last)
	}
	if status.Session.TimeSinceActivity != "5m0s" {
		t.Errorf("CheckActive() timeSinceActivity = %q, want 5m0s", status.Session.TimeSinceActivity)
	}
}

func TestCheckActiveNoSession(t *testing.T) {
	guard := &SessionGuard{Sessions: &fakeSessionStore{}, InactivityLimit: 30 * time.Minute}

	status, err := guard.CheckActive(context.Background(), "s1", model.RoleAluno)
	if err != nil {
		t.Fatalf("CheckActive() error = %v", err)
	}
	if status.IsActive {
		t.Error("CheckActive() isActive = true with no stored session")
	}
	if status.Expired {
		t.Error("CheckActive() expired = true with no stored session, want plain inactive")
	}
}

func TestCheckActiveRoleShortCircuit(t *testing.T) {
	// A failing store proves the guard never reads storage for staff.
	store := &fakeSessionStore{lookupErr: errors.New("connection reset")}
	guard := &SessionGuard{Sessions: store, InactivityLimit: 30 * time.Minute}

	for _, role := range []model.Role{model.RoleProfessor, model.RoleSuperadmin} {
		status, err := guard.CheckActive(context.Background(), "u1", role)
		if err != nil {
			t.Fatalf("CheckActive(%s) error = %v", role, err)
		}
		if !status.IsActive {
			t.Errorf("CheckActive(%s) isActive = false, want true without storage read", role)
		}
	}

	if _, err := guard.CheckActive(context.Background(), "u1", model.Role("ghost")); !errors.Is(err, ErrValidation) {
		t.Errorf("CheckActive(unknown role) error = %v, want ErrValidation", err)
	}
}

func TestLogout(t *testing.T) {
	store := &fakeSessionStore{sessions: []*model.Session{{
		SessionToken: "tok",
		UserID:       "s1",
		IsActive:     true,
	}}}
	guard := &SessionGuard{Sessions: store, InactivityLimit: 30 * time.Minute}

	if err := guard.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if store.sessions[0].IsActive {
		t.Error("Logout() left the session active")
	}

	if err := guard.Logout(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Logout(\"\") error = %v, want ErrValidation", err)
	}
}
