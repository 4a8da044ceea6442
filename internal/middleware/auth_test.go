package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/auth"
	"github.com/code1379/bookmark/internal/store"
)

func gatedRouter(t *testing.T, sessions *auth.SessionManager) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewSQLiteStore()
	require.NoError(t, err)

	router := gin.New()
	router.GET("/whoami", SessionAuth(sessions, repository.NewUserRepository(s)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})
	return router, func() { s.Close() }
}

func TestSessionAuth(t *testing.T) {
	sessions := auth.NewSessionManager("gate-secret", time.Hour)
	router, cleanup := gatedRouter(t, sessions)
	defer cleanup()

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no cookie",
			cookie:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			cookie:     auth.CookieName + "=not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token for a deleted user",
			cookie:     auth.CookieName + "=" + sessions.Issue(99),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			cookie:     auth.CookieName + "=" + sessions.Issue(1),
			wantStatus: http.StatusOK,
			wantBody:   `"userId":1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSessionAuthRejectsExpired(t *testing.T) {
	expired := auth.NewSessionManager("gate-secret", -time.Minute)
	router, cleanup := gatedRouter(t, expired)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Cookie", auth.CookieName+"="+expired.Issue(1))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
