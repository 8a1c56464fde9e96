package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/tracing"
	"github.com/customeros/replycraft/internal/utils"
)

// LoggingMiddleware writes one line per request. Bodies are never logged.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestId", utils.GetRequestIdFromContext(c.Request.Context())),
		}
		if span := opentracing.SpanFromContext(c.Request.Context()); span != nil {
			if traceId := tracing.GetTraceId(span); traceId != "" {
				fields = append(fields, zap.String("traceId", traceId))
			}
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Logger().Error("request failed", fields...)
		case status >= 400:
			log.Logger().Warn("request rejected", fields...)
		default:
			log.Logger().Info("request completed", fields...)
		}
	}
}
