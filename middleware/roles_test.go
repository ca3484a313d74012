package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codearena/model"

	"github.com/gin-gonic/gin"
)

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       interface{}
		allowed    []model.Role
		wantStatus int
	}{
		{"allowed role", model.RoleProfessor, []model.Role{model.RoleProfessor, model.RoleSuperadmin}, http.StatusOK},
		{"second allowed role", model.RoleSuperadmin, []model.Role{model.RoleProfessor, model.RoleSuperadmin}, http.StatusOK},
		{"disallowed role", model.RoleAluno, []model.Role{model.RoleProfessor}, http.StatusForbidden},
		{"missing role", nil, []model.Role{model.RoleProfessor}, http.StatusUnauthorized},
		{"role wrong type", "professor", []model.Role{model.RoleProfessor}, http.StatusUnauthorized},
		{"role outside the enum", model.Role("ghost"), []model.Role{model.RoleProfessor}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/guarded", func(c *gin.Context) {
				if tt.role != nil {
					c.Set("role", tt.role)
				}
				c.Next()
			}, RequireRoles(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
