package handlers

import (
	"net/http"

	"github.com/alimgiray/shiftledger/internal/middleware"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type registerRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Department      string `json:"department" form:"department"`
}

// Login accepts JSON or form credentials and starts a cookie session
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if services.KindOf(err) == services.KindAuthorization {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "kind": services.KindAuthorization})
			return
		}
		respondError(c, err)
		return
	}

	if err := middleware.SetSession(c, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Principal()})
}

// Register creates an employee account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid registration request")
		return
	}

	user, err := h.userService.Register(req.Username, req.Password, req.ConfirmPassword, req.Department)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user.Principal()})
}

// Logout ends the cookie session
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CurrentUser returns the authenticated caller
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, principal(c))
}

// IssueToken exchanges credentials for a bearer token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if services.KindOf(err) == services.KindAuthorization {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "kind": services.KindAuthorization})
			return
		}
		respondError(c, err)
		return
	}

	token, expiresAt, err := middleware.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiresAt": expiresAt})
}
