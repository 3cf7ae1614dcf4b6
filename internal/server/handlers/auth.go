package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/notify"
	"github.com/obsidiancapital/investor-portal/internal/session"
)

// AuthHandler exposes the session operations over HTTP.
type AuthHandler struct {
	store   *session.Store
	notices *notify.Recorder
	logger  *zap.Logger
}

// NewAuthHandler constructs the HTTP adapter for the session store.
func NewAuthHandler(store *session.Store, notices *notify.Recorder, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{store: store, notices: notices, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a persisted session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if !h.store.Login(c.Request.Context(), req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"authenticated": false,
			"notices":       h.notices.Drain(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          h.store.CurrentUser(),
		"notices":       h.notices.Drain(),
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account. The client is expected to route to login
// afterwards; no session is established here.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	if !h.store.Register(c.Request.Context(), req.Email, req.Password, req.Name) {
		c.JSON(http.StatusBadGateway, gin.H{
			"registered": false,
			"notices":    h.notices.Drain(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"registered": true,
		"notices":    h.notices.Drain(),
	})
}

// Logout clears the session. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.JSON(http.StatusOK, gin.H{
		"authenticated": false,
		"notices":       h.notices.Drain(),
	})
}

// Session reports the current authentication state, restored from durable
// storage at startup.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": h.store.IsAuthenticated(),
		"user":          h.store.CurrentUser(),
	})
}
