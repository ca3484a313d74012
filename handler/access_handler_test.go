package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codearena/model"
	"codearena/usecase"

	"github.com/gin-gonic/gin"
)

type fakeAssignmentFinder struct {
	assignments map[string]*model.Assignment
}

func (f *fakeAssignmentFinder) FindByID(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	return f.assignments[assignmentID], nil
}

// setupAccessRouter registers the check-access route behind a stub auth
// layer that injects the given user.
func setupAccessRouter(gate *usecase.AccessGate, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/assignments/:id/check-access", func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
		CheckAccessHandler(c, gate)
	})
	return router
}

func TestCheckAccessHandler(t *testing.T) {
	gate := &usecase.AccessGate{Assignments: &fakeAssignmentFinder{assignments: map[string]*model.Assignment{
		"exam": {
			AssignmentID:    "exam",
			Type:            model.AssignmentProva,
			EnabledStudents: []string{"s1"},
			RequireLabIP:    true,
			AllowedIPRanges: []string{"192.168.1.0/24"},
		},
	}}}
	student := &model.User{UserID: "s1", Role: model.RoleAluno}

	tests := []struct {
		name          string
		remoteAddr    string
		wantHasAccess bool
		wantIPValid   bool
	}{
		{"lab address granted", "192.168.1.42:51234", true, true},
		{"outside address denied", "10.0.0.5:51234", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAccessRouter(gate, student)
			req := httptest.NewRequest(http.MethodGet, "/api/assignments/exam/check-access", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
			}

			var resp struct {
				Success bool                  `json:"success"`
				Data    usecase.AccessDecision `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if !resp.Success {
				t.Error("response success = false")
			}
			if resp.Data.HasAccess != tt.wantHasAccess {
				t.Errorf("hasAccess = %v, want %v", resp.Data.HasAccess, tt.wantHasAccess)
			}
			if resp.Data.IPValid != tt.wantIPValid {
				t.Errorf("ipValid = %v, want %v", resp.Data.IPValid, tt.wantIPValid)
			}
			if !resp.Data.IsEnabled {
				t.Error("isEnabled = false, student is on the list")
			}
			if !resp.Data.IsProva {
				t.Error("isProva = false, want true")
			}
		})
	}
}

func TestCheckAccessHandlerUnknownAssignment(t *testing.T) {
	gate := &usecase.AccessGate{Assignments: &fakeAssignmentFinder{assignments: map[string]*model.Assignment{}}}
	router := setupAccessRouter(gate, &model.User{UserID: "s1", Role: model.RoleAluno})

	req := httptest.NewRequest(http.MethodGet, "/api/assignments/missing/check-access", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCheckAccessHandlerUnauthenticated(t *testing.T) {
	gate := &usecase.AccessGate{Assignments: &fakeAssignmentFinder{assignments: map[string]*model.Assignment{}}}
	router := setupAccessRouter(gate, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assignments/exam/check-access", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
