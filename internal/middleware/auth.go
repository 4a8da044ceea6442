package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/api/response"
	"github.com/code1379/bookmark/internal/auth"
)

// ContextUserIDKey is where the gate stores the resolved user id.
const ContextUserIDKey = "userID"

// SessionAuth resolves the session cookie to a live user. It fails with a
// uniform 401 when the cookie is absent, the token is invalid or expired,
// or the embedded user no longer exists. Only the user id is exposed to
// handlers; the credential hash never leaves the repository.
func SessionAuth(sessions *auth.SessionManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ReadCookieValue(c.GetHeader("Cookie"), auth.CookieName)
		if !ok {
			response.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		session, err := sessions.Validate(token)
		if err != nil {
			response.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), session.UserID)
		if err != nil || user == nil {
			response.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the user id stored by SessionAuth. Zero when the
// gate did not run.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserIDKey)
}
