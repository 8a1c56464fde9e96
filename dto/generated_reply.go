package dto

// GeneratedText is what the reply generator hands back to the orchestrator.
// Degraded is set when the API answered but its body could not be read; Text
// then carries the "Error processing request: ..." placeholder and RawResponse
// the body as received.
type GeneratedText struct {
	Text        string
	Degraded    bool
	RawResponse []byte
}

// ReplyGenerated is published after a reply has been stored.
type ReplyGenerated struct {
	ThreadID     string  `json:"threadId"`
	ReplyID      string  `json:"replyId"`
	Tone         *string `json:"tone"`
	MessageCount int     `json:"messageCount"`
	Degraded     bool    `json:"degraded"`
	CreatedAt    string  `json:"createdAt"`
}
