package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codearena/model"
	"codearena/usecase"

	"github.com/gin-gonic/gin"
)

type fakeSessionStore struct {
	sessions []*model.Session
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, session *model.Session) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionStore) InvalidateUserSessions(ctx context.Context, userID string) (int64, error) {
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
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) EndSession(ctx context.Context, token string) error {
	for _, s := range f.sessions {
		if s.SessionToken == token {
			s.IsActive = false
			return nil
		}
	}
	return usecase.ErrNotFound
}

func setupSessionRouter(guard *usecase.SessionGuard, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	inject := func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
	}
	router.GET("/api/session/check-active", func(c *gin.Context) {
		inject(c)
		CheckActiveHandler(c, guard)
	})
	router.POST("/api/user/logout", func(c *gin.Context) {
		inject(c)
		LogoutHandler(c, guard)
	})
	return router
}

func TestCheckActiveHandler(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastActivity time.Time
		wantActive   bool
		wantExpired  bool
	}{
		{"fresh session", now.Add(-10 * time.Minute), true, false},
		{"stale session", now.Add(-45 * time.Minute), false, true},
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
			guard := &usecase.SessionGuard{
				Sessions:        store,
				InactivityLimit: 30 * time.Minute,
				Now:             func() time.Time { return now },
			}
			router := setupSessionRouter(guard, &model.User{UserID: "s1", Role: model.RoleAluno})

			req := httptest.NewRequest(http.MethodGet, "/api/session/check-active", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
			}

			var resp struct {
				Data usecase.SessionStatus `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Data.IsActive != tt.wantActive {
				t.Errorf("isActive = %v, want %v", resp.Data.IsActive, tt.wantActive)
			}
			if resp.Data.Expired != tt.wantExpired {
				t.Errorf("expired = %v, want %v", resp.Data.Expired, tt.wantExpired)
			}
			if tt.wantActive && resp.Data.Session == nil {
				t.Error("session detail missing for an active session")
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	store := &fakeSessionStore{sessions: []*model.Session{{
		SessionToken: "tok",
		UserID:       "s1",
		IsActive:     true,
	}}}
	guard := &usecase.SessionGuard{Sessions: store, InactivityLimit: 30 * time.Minute}
	router := setupSessionRouter(guard, &model.User{UserID: "s1", Role: model.RoleAluno})

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	req.Header.Set("X-Session-Token", "tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if store.sessions[0].IsActive {
		t.Error("logout left the session active")
	}
}

func TestLogoutHandlerMissingToken(t *testing.T) {
	guard := &usecase.SessionGuard{Sessions: &fakeSessionStore{}, InactivityLimit: 30 * time.Minute}
	router := setupSessionRouter(guard, &model.User{UserID: "s1", Role: model.RoleAluno})

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
