package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/constants"
)

// RequireAuth checks for an authenticated session. Unauthenticated
// requests are redirected to the login path, never served data.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		workerID := session.Get(constants.ContextKeyWorkerID)

		if workerID == nil {
			c.Redirect(http.StatusFound, constants.LoginPath)
			c.Abort()
			return
		}

		// Store worker ID in context for easy access in handlers
		c.Set(constants.ContextKeyWorkerID, workerID)
		c.Next()
	}
}

// GetWorkerID retrieves the current worker ID from context
func GetWorkerID(c *gin.Context) (uint64, bool) {
	workerID, exists := c.Get(constants.ContextKeyWorkerID)
	if !exists {
		return 0, false
	}

	switch v := workerID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
