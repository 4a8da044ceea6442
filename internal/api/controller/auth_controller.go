package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/response"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/auth"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	userService service.UserService
	secure      bool
}

// NewAuthController creates a new AuthController. secure controls the
// Secure attribute on the session cookie (on in production).
func NewAuthController(userService service.UserService, secure bool) *AuthController {
	return &AuthController{
		userService: userService,
		secure:      secure,
	}
}

// Register handles the user registration endpoint.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"data": user})
}

// Login verifies credentials and sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := ac.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setSessionCookie(c, token, int(auth.SessionTTL.Seconds()))
	response.SuccessResponse(c, gin.H{"data": gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}})
}

// Logout clears the session cookie. Tokens keep their validity until
// expiry; logout is purely client-side discarding.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, "", -1)
	response.SuccessResponse(c, gin.H{"loggedOut": true})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", ac.secure, true)
}
