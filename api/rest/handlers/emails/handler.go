package emails

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/dto"
	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/tracing"
)

const textPlainUTF8 = "text/plain; charset=utf-8"

type EmailsHandler struct {
	replyService interfaces.EmailReplyService
	parser       interfaces.RawEmailParser
}

func NewEmailsHandler(replyService interfaces.EmailReplyService, parser interfaces.RawEmailParser) *EmailsHandler {
	return &EmailsHandler{
		replyService: replyService,
		parser:       parser,
	}
}

// generate runs the reply flow and writes the reply as plain text.
func (h *EmailsHandler) generate(ctx context.Context, c *gin.Context, span opentracing.Span, request dto.GenerateReplyRequest) {
	reply, err := h.replyService.GenerateReply(ctx, request)
	if err != nil {
		if errors.Is(err, replycraft_errors.ErrGeminiNotConfigured) {
			respondWithError(c, span, http.StatusInternalServerError, err.Error(), err)
			return
		}
		respondWithError(c, span, http.StatusInternalServerError, "Failed to generate reply", err)
		return
	}

	c.Data(http.StatusOK, textPlainUTF8, []byte(reply))
}

// respondWithError only echoes error details back for client errors.
func respondWithError(c *gin.Context, span opentracing.Span, statusCode int, message string, err error) {
	tracing.TraceErr(span, err)
	if err != nil && statusCode < http.StatusInternalServerError {
		c.JSON(statusCode, gin.H{"error": message, "details": err.Error()})
		return
	}
	c.JSON(statusCode, gin.H{"error": message})
}
