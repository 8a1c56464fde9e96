package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/customeros/replycraft/internal/utils"
)

const RequestIdHeader = "X-Request-ID"

// RequestIdMiddleware keeps the caller's request id or assigns a new one, and
// echoes it back on the response.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := strings.TrimSpace(c.GetHeader(RequestIdHeader))
		if requestId == "" {
			requestId = uuid.New().String()
		}

		c.Set(utils.RequestIdKey, requestId)
		c.Header(RequestIdHeader, requestId)

		c.Next()
	}
}
