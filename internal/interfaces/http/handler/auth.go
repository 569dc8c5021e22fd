package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	accessapp "github.com/fieldserve/backend/internal/application/access"
	"github.com/fieldserve/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles token exchange and session endpoints
type AuthHandler struct {
	BaseHandler
	access *accessapp.AccessService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(access *accessapp.AccessService) *AuthHandler {
	return &AuthHandler{access: access}
}

// ExchangeToken trades a provider-issued session token for an internal
// access token carrying the resolved role
func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	var req accessapp.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.access.ExchangeToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.Unauthorized(c, "Authorization header with Bearer token required")
		return
	}

	if err := h.access.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Profile returns the caller's own profile and resolved role
func (h *AuthHandler) Profile(c *gin.Context) {
	identityID, err := getIdentityID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.access.GetProfile(c.Request.Context(), identityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// bearerToken extracts the raw token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader(middleware.AuthHeaderKey)
	if !strings.HasPrefix(header, middleware.BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, middleware.BearerPrefix)
}
