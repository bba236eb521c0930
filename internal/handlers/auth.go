package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fryegg/api/internal/models"
	"fryegg/api/internal/security"
	"fryegg/api/internal/service"
)

type signUpRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
	Seat        int    `json:"seat" binding:"required"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Status      string `json:"status"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Seat:        req.Seat,
		Title:       req.Title,
		URL:         req.URL,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.seatService.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func (h HandlerSet) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func (h HandlerSet) SignOut(c *gin.Context) {
	claims := c.MustGet("access_claims").(security.AccessClaims)
	if err := h.authService.Logout(c.Request.Context(), claims.SessionID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

func (h HandlerSet) Me(c *gin.Context) {
	user := c.MustGet("current_user").(models.User)
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}
	// Always the same answer so the endpoint cannot be used to probe
	// which addresses are registered.
	c.JSON(http.StatusOK, gin.H{"status": "reset_requested"})
}

func (h HandlerSet) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verification_sent"})
}
