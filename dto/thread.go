package dto

import "github.com/customeros/replycraft/internal/models"

// ThreadResponse is returned by GET /api/threads/:id.
type ThreadResponse struct {
	*models.EmailThread
	Replies []ReplyResponse `json:"replies"`
}

// ReplyResponse carries the archived API body for degraded replies.
type ReplyResponse struct {
	*models.GeneratedReply
	RawResponse *string `json:"rawResponse,omitempty"`
}
