package emails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/internal/tracing"
)

// Generate handles POST /api/email/generate
func (h *EmailsHandler) Generate() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.Generate")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.GenerateReplyRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		span.LogKV("messages.count", len(request.Messages))

		h.generate(ctx, c, span, request)
	}
}
