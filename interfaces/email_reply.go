package interfaces

import (
	"context"
	"io"

	"github.com/customeros/replycraft/dto"
)

type EmailReplyService interface {
	GenerateReply(ctx context.Context, request dto.GenerateReplyRequest) (string, error)
}

type RawEmailParser interface {
	Parse(ctx context.Context, raw io.Reader) (*dto.GenerateReplyRequest, error)
}
