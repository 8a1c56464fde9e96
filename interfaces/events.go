package interfaces

import (
	"context"

	"github.com/customeros/replycraft/dto"
)

type EventPublisher interface {
	PublishReplyGenerated(ctx context.Context, event dto.ReplyGenerated) error
	Close() error
}
