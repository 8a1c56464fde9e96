package interfaces

import (
	"context"

	"github.com/customeros/replycraft/internal/models"
)

type EmailMessageRepository interface {
	ListByThread(ctx context.Context, threadID string) ([]*models.EmailMessage, error)
}

type GeneratedReplyRepository interface {
	Create(ctx context.Context, reply *models.GeneratedReply) (string, error)
	ListByThread(ctx context.Context, threadID string) ([]*models.GeneratedReply, error)
}
