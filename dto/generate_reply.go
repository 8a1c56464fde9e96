package dto

// GenerateReplyRequest is the body of POST /api/email/generate.
type GenerateReplyRequest struct {
	Subject      *string        `json:"subject"`
	Messages     []EmailMessage `json:"messages"`
	EmailContent *string        `json:"emailContent"`
	Tone         *string        `json:"tone"`
}

// EmailMessage is one entry of the submitted thread, oldest first. SentAt and
// PositionInThread are accepted from clients but the list index decides order.
type EmailMessage struct {
	Sender           *string `json:"sender"`
	Recipient        *string `json:"recipient"`
	Body             *string `json:"body"`
	SentAt           *string `json:"sentAt,omitempty"`
	PositionInThread *int    `json:"positionInThread,omitempty"`
}

func (r *GenerateReplyRequest) HasMessages() bool {
	return r != nil && len(r.Messages) > 0
}
