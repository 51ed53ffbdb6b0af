package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"content-studio-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, echoing the client's
// own id when one is supplied, and threads it into the request context so
// log lines from deeper layers can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		ctx := logger.ContextWithFields(c.Request.Context(), map[string]interface{}{
			"request_id": requestID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
