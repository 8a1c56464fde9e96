package threads

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/dto"
	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/internal/tracing"
)

type ThreadsHandler struct {
	repositories *repository.Repositories
	archive      interfaces.ResponseArchive
}

func NewThreadsHandler(repos *repository.Repositories, archive interfaces.ResponseArchive) *ThreadsHandler {
	return &ThreadsHandler{
		repositories: repos,
		archive:      archive,
	}
}

// Get handles GET /api/threads/:id
func (h *ThreadsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ThreadsHandler.Get")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		threadID := c.Param("id")
		tracing.TagEntity(span, threadID)

		thread, err := h.repositories.EmailThreadRepository.GetByID(ctx, threadID)
		if err != nil {
			if errors.Is(err, replycraft_errors.ErrThreadNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cannot find thread with id " + threadID})
				return
			}
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error retrieving thread"})
			return
		}

		messages, err := h.repositories.EmailMessageRepository.ListByThread(ctx, threadID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error retrieving thread messages"})
			return
		}
		thread.Messages = make([]models.EmailMessage, 0, len(messages))
		for _, message := range messages {
			thread.Messages = append(thread.Messages, *message)
		}

		replies, err := h.repositories.GeneratedReplyRepository.ListByThread(ctx, threadID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error retrieving generated replies"})
			return
		}

		response := dto.ThreadResponse{
			EmailThread: thread,
			Replies:     make([]dto.ReplyResponse, 0, len(replies)),
		}
		for _, reply := range replies {
			response.Replies = append(response.Replies, dto.ReplyResponse{
				GeneratedReply: reply,
				RawResponse:    h.rawResponse(ctx, span, threadID, reply),
			})
		}

		c.JSON(http.StatusOK, response)
	}
}

// rawResponse looks up the archived API body of a degraded reply. A missing
// or unreachable archive leaves the field out of the response.
func (h *ThreadsHandler) rawResponse(ctx context.Context, span opentracing.Span, threadID string, reply *models.GeneratedReply) *string {
	if !reply.Degraded || h.archive == nil {
		return nil
	}

	body, err := h.archive.RawResponse(ctx, threadID, reply.ID)
	if err != nil {
		span.LogKV("archive.error", err.Error(), "reply.id", reply.ID)
		return nil
	}
	if body == nil {
		return nil
	}
	raw := string(body)
	return &raw
}
