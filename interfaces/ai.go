package interfaces

import (
	"context"

	"github.com/customeros/replycraft/dto"
)

// ReplyGenerator sends a prompt to the generative-language API.
type ReplyGenerator interface {
	GenerateText(ctx context.Context, prompt string) (*dto.GeneratedText, error)
}
