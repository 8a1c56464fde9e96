package interfaces

import (
	"context"

	"github.com/customeros/replycraft/internal/models"
)

type EmailThreadRepository interface {
	Create(ctx context.Context, thread *models.EmailThread) (string, error)
	GetByID(ctx context.Context, id string) (*models.EmailThread, error)
}
