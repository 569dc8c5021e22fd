package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fieldserve/backend/internal/domain/access"
)

// Authorizer evaluates a permission requirement against a caller and
// records denials in the audit log
type Authorizer interface {
	Authorize(ctx context.Context, req access.PermissionRequirement, role access.Role, actor, resource string) access.Decision
}

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional)
	OnDenied func(c *gin.Context, decision access.Decision)
}

// Require creates middleware that enforces a permission requirement
// against the caller's resolved role. Denials are recorded by the
// authorizer before the request is rejected.
func Require(authorizer Authorizer, req access.PermissionRequirement) gin.HandlerFunc {
	return RequireWithConfig(authorizer, req, PermissionConfig{})
}

// RequireWithConfig creates permission middleware with custom config
func RequireWithConfig(authorizer Authorizer, req access.PermissionRequirement, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		actor := GetIdentityID(c)
		resource := c.Request.Method + " " + c.FullPath()

		decision := authorizer.Authorize(c.Request.Context(), req, role, actor, resource)
		if decision.Allowed {
			c.Next()
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Warn("Permission denied",
				zap.String("actor", actor),
				zap.String("role", role.String()),
				zap.String("resource", resource),
				zap.String("reason", decision.Reason),
			)
		}

		if cfg.OnDenied != nil {
			cfg.OnDenied(c, decision)
			return
		}

		status := http.StatusForbidden
		code := "FORBIDDEN"
		if !role.IsAuthenticated() {
			status = http.StatusUnauthorized
			code = "UNAUTHORIZED"
		}

		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": decision.Reason,
			},
		})
	}
}

// RequireStaff is shorthand for the admin-technician gate that guards
// staff-only surfaces such as customer search and on-behalf-of intake
func RequireStaff(authorizer Authorizer) gin.HandlerFunc {
	return Require(authorizer, access.AdminTechnicianOnly)
}
